// Package anoncreds is the command which generates the AnonCreds test
// vectors with the libindy engine.
package anoncreds

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/findy-network/findy-test-vectors/agent/fixture"
	"github.com/findy-network/findy-test-vectors/agent/vectors"
	"github.com/findy-network/findy-test-vectors/cmds"
	"github.com/findy-network/findy-test-vectors/indy"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

type GenerateCmd struct {
	VectorsDir    string
	TailsDir      string
	WorkDir       string
	RegistryIndex int
	IssuanceDate  time.Time
	ExportKey     string
	KeepWallets   bool
}

// Result lists the written vectors. The private material they reference is
// in the wallet exports, which open with ExportKey.
type Result struct {
	Dir       string   `json:"dir"`
	Files     []string `json:"files"`
	ExportKey string   `json:"exportKey"`
	KeyFile   string   `json:"keyFile"`
}

func (r *Result) JSON() ([]byte, error) {
	return json.Marshal(r)
}

func (c GenerateCmd) Validate() (err error) {
	defer err2.Handle(&err)

	try.To(cmds.ValidateDir("vectors dir", c.VectorsDir))
	try.To(cmds.ValidateDir("tails dir", c.TailsDir))
	try.To(cmds.ValidateDir("work dir", c.WorkDir))
	try.To(cmds.ValidateKey(c.ExportKey))

	maxNum := fixture.DefaultParams().RevReg.MaxCredNum
	if c.RegistryIndex < 1 || c.RegistryIndex > maxNum {
		return fmt.Errorf("%w: registry index must be in [1, %d]", cmds.ErrInvalid, maxNum)
	}
	if c.IssuanceDate.IsZero() {
		return fmt.Errorf("%w: issuance date cannot be empty", cmds.ErrInvalid)
	}
	return nil
}

// Params returns the pipeline parameters of the command.
func (c GenerateCmd) Params() fixture.Params {
	p := fixture.DefaultParams()
	p.RevReg.TailsDir = c.TailsDir
	p.RegistryIndex = c.RegistryIndex
	p.IssuanceDate = c.IssuanceDate
	return p
}

func (c GenerateCmd) Exec(w io.Writer) (r cmds.Result, err error) {
	defer err2.Handle(&err, "generate anoncreds")

	engine := try.To1(indy.New(indy.Config{
		WorkDir:     c.WorkDir,
		ExportDir:   c.VectorsDir,
		ExportKey:   c.ExportKey,
		KeepWallets: c.KeepWallets,
	}))
	defer func() {
		if cerr := engine.Close(); cerr != nil {
			glog.Error(cerr)
			if err == nil {
				err = cerr
			}
		}
	}()

	store := vectors.New(c.VectorsDir)
	a := &fixture.AnonCreds{Engine: engine, Store: store, Params: c.Params()}
	try.To(a.Run())

	res := &Result{
		Dir:       store.Dir(),
		Files:     store.Written(),
		ExportKey: engine.ExportKey(),
		KeyFile:   store.Path(indy.ExportKeyFile),
	}
	for _, f := range res.Files {
		cmds.Fprintln(w, store.Path(f))
	}
	cmds.Fprintln(w, res.KeyFile)
	return res, nil
}

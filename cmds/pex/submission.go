// Package pex is the command which generates the presentation submission
// test vector from the definition and credential vectors.
package pex

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/findy-network/findy-test-vectors/agent/fixture"
	"github.com/findy-network/findy-test-vectors/agent/pex"
	"github.com/findy-network/findy-test-vectors/agent/vectors"
	"github.com/findy-network/findy-test-vectors/agent/w3c"
	"github.com/findy-network/findy-test-vectors/cmds"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

type SubmissionCmd struct {
	VectorsDir string
	Definition string
	Credential string
	Out        string

	LimitDisclosureSuites []string
}

type Result struct {
	File string `json:"file"`
}

func (r *Result) JSON() ([]byte, error) {
	return json.Marshal(r)
}

func (c SubmissionCmd) Validate() (err error) {
	defer err2.Handle(&err)

	try.To(cmds.ValidateDir("vectors dir", c.VectorsDir))
	for name, file := range map[string]string{
		"definition": c.Definition,
		"credential": c.Credential,
		"out":        c.Out,
	} {
		if file == "" {
			return fmt.Errorf("%w: %s file cannot be empty", cmds.ErrInvalid, name)
		}
	}
	if c.Out == c.Definition || c.Out == c.Credential {
		return fmt.Errorf("%w: out would overwrite an input", cmds.ErrInvalid)
	}
	return nil
}

func (c SubmissionCmd) Exec(w io.Writer) (r cmds.Result, err error) {
	defer err2.Handle(&err, "generate pex submission")

	loader := try.To1(w3c.NewDocumentLoader(nil))
	var opts []pex.Option
	if len(c.LimitDisclosureSuites) > 0 {
		opts = append(opts, pex.WithLimitDisclosureSuites(c.LimitDisclosureSuites...))
	}
	store := vectors.New(c.VectorsDir)
	s := &fixture.Submission{
		Evaluator:  pex.New(loader, opts...),
		Store:      store,
		Definition: c.Definition,
		Credential: c.Credential,
		Out:        c.Out,
	}
	try.To(s.Run())

	cmds.Fprintln(w, store.Path(c.Out))
	return &Result{File: c.Out}, nil
}

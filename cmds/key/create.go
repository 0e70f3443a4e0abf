package key

import (
	"encoding/json"
	"io"

	"github.com/findy-network/findy-test-vectors/agent/ssi"
	"github.com/findy-network/findy-test-vectors/cmds"
	"github.com/findy-network/findy-wrapper-go/wallet"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// CreateCmd creates a RAW wallet key, e.g. for the wallet exports.
type CreateCmd struct {
	Seed string
}

type Result struct {
	Key string `json:"key"`
}

func (r *Result) JSON() ([]byte, error) {
	return json.Marshal(r)
}

func (c CreateCmd) Validate() error {
	return cmds.ValidateSeed(c.Seed)
}

func (c CreateCmd) Exec(w io.Writer) (r cmds.Result, err error) {
	defer err2.Handle(&err, "create key")

	key := try.To1(ssi.NewFuture(wallet.GenerateKey(c.Seed)).Str1())
	cmds.Fprintln(w, key)
	return &Result{Key: key}, nil
}

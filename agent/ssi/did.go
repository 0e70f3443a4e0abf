package ssi

import (
	"github.com/findy-network/findy-wrapper-go/did"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// DID is an indy DID and its verkey stored in a wallet.
type DID struct {
	did    string
	verKey string
}

// NewDIDFromSeed creates and stores the DID to the wallet. Same seed gives the
// same DID.
func NewDIDFromSeed(w *Wallet, seed string) (d *DID, err error) {
	defer err2.Handle(&err, "create did")

	ds, vk, _ := try.To3(NewFuture(did.CreateAndStore(w.Handle(), did.Did{Seed: seed})).Strs())
	return &DID{did: ds, verKey: vk}, nil
}

func NewDid(did, verkey string) *DID {
	return &DID{did: did, verKey: verkey}
}

func (d *DID) Did() string {
	return d.did
}

func (d *DID) URI() string {
	return "did:sov:" + d.did
}

func (d *DID) VerKey() string {
	return d.verKey
}

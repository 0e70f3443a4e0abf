package method

import (
	"github.com/hyperledger/aries-framework-go/pkg/vdr/fingerprint"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/mr-tron/base58"
)

// KeyFromVerKey returns the did:key of the base58 encoded ED25519 verkey
// which libindy uses.
func KeyFromVerKey(verKey string) (didKey string, err error) {
	defer err2.Handle(&err, "did:key from verkey")

	pk := try.To1(base58.Decode(verKey))
	didKey, _ = fingerprint.CreateDIDKey(pk)
	return didKey, nil
}

// VerKeyFromKey is the inverse of KeyFromVerKey.
func VerKeyFromKey(didKey string) (verKey string, err error) {
	defer err2.Handle(&err, "verkey from did:key")

	pk := try.To1(fingerprint.PubKeyFromDIDKey(didKey))
	return base58.Encode(pk), nil
}

package method

import (
	"bytes"
	"fmt"

	"github.com/hyperledger/aries-framework-go/pkg/doc/did"
	vdrapi "github.com/hyperledger/aries-framework-go/pkg/framework/aries/api/vdr"
	registry "github.com/hyperledger/aries-framework-go/pkg/vdr"
	"github.com/hyperledger/aries-framework-go/pkg/vdr/key"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/mr-tron/base58"
)

var keyRegistry vdrapi.Registry = registry.New(registry.WithVDR(&key.VDR{}))

// Resolve resolves the did:key to its DID document.
func Resolve(didKey string) (doc *did.Doc, err error) {
	defer err2.Handle(&err, "resolve %s", didKey)

	res := try.To1(keyRegistry.Resolve(didKey))
	return res.DIDDocument, nil
}

// CheckVerKey checks that the DID document of the did:key has the verkey as
// its verification method.
func CheckVerKey(didKey, verKey string) (err error) {
	defer err2.Handle(&err, "check verkey")

	pk := try.To1(base58.Decode(verKey))
	doc := try.To1(Resolve(didKey))
	for _, vm := range doc.VerificationMethod {
		if bytes.Equal(vm.Value, pk) {
			return nil
		}
	}
	return fmt.Errorf("%s has no verification method for %s", didKey, verKey)
}

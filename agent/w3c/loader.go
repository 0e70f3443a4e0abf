package w3c

import (
	_ "embed"
	"fmt"

	ldcontext "github.com/hyperledger/aries-framework-go/component/models/ld/context"
	"github.com/hyperledger/aries-framework-go/component/models/ld/documentloader"
	ldstore "github.com/hyperledger/aries-framework-go/component/models/ld/store"
	"github.com/hyperledger/aries-framework-go/component/models/verifiable"
	"github.com/hyperledger/aries-framework-go/component/storageutil/mem"
	"github.com/hyperledger/aries-framework-go/spi/storage"
	jsonld "github.com/piprate/json-gold/ld"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

//nolint:gochecknoglobals // required for go:embed
var (
	//go:embed contexts/anoncreds-w3c-context.json
	anonCredsContext []byte
	//go:embed contexts/credentials-v2.jsonld
	credentialsV2Context []byte
)

// ExtraContexts are the contexts which aries doesn't embed itself.
func ExtraContexts() []ldcontext.Document {
	return []ldcontext.Document{
		{
			URL:     AnonCredsContextURI,
			Content: anonCredsContext,
		},
		{
			URL:     CredentialsV2ContextURI,
			Content: credentialsV2Context,
		},
	}
}

type loaderProvider struct {
	contextStore        ldstore.ContextStore
	remoteProviderStore ldstore.RemoteProviderStore
}

func (p *loaderProvider) JSONLDContextStore() ldstore.ContextStore {
	return p.contextStore
}

func (p *loaderProvider) JSONLDRemoteProviderStore() ldstore.RemoteProviderStore {
	return p.remoteProviderStore
}

// NewDocumentLoader returns an offline JSON-LD loader which has the aries
// embedded contexts and ours. Nil provider means in-memory storage.
func NewDocumentLoader(sp storage.Provider) (jsonld.DocumentLoader, error) {
	if sp == nil {
		sp = mem.NewProvider()
	}
	contextStore, err := ldstore.NewContextStore(sp)
	if err != nil {
		return nil, fmt.Errorf("create JSON-LD context store: %w", err)
	}
	remoteProviderStore, err := ldstore.NewRemoteProviderStore(sp)
	if err != nil {
		return nil, fmt.Errorf("create remote provider store: %w", err)
	}
	p := &loaderProvider{
		contextStore:        contextStore,
		remoteProviderStore: remoteProviderStore,
	}
	loader, err := documentloader.NewDocumentLoader(p,
		documentloader.WithExtraContexts(ExtraContexts()...))
	if err != nil {
		return nil, fmt.Errorf("create document loader: %w", err)
	}
	return loader, nil
}

// ParseCredential parses a W3C 1.1 AnonCreds credential to the aries model.
// AnonCreds proofs cannot be checked by aries, they are left for the engine.
// The aries model requires an id for the credential schema, the definition ID
// is used when the credential has none.
func ParseCredential(data []byte, loader jsonld.DocumentLoader) (_ *verifiable.Credential, err error) {
	schema := gjson.GetBytes(data, "credentialSchema")
	if schema.IsObject() && !schema.Get("id").Exists() {
		data, err = sjson.SetBytes(data, "credentialSchema.id", schema.Get("definition").String())
		if err != nil {
			return nil, fmt.Errorf("credential schema id: %w", err)
		}
	}
	return verifiable.ParseCredential(data,
		verifiable.WithDisabledProofCheck(),
		verifiable.WithJSONLDDocumentLoader(loader),
		verifiable.WithNoCustomSchemaCheck(),
		verifiable.WithBaseContextExtendedValidation(
			[]string{CredentialsV1ContextURI, AnonCredsContextURI},
			[]string{VerifiableCredentialType, AnonCredsCredentialType}),
	)
}

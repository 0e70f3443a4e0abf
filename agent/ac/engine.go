package ac

// SchemaConfig is the input of a schema.
type SchemaConfig struct {
	Name      string
	Version   string
	AttrNames []string
}

type CredDefConfig struct {
	Tag               string
	SignatureType     string
	SupportRevocation bool
}

type RevRegConfig struct {
	Tag        string
	Type       string
	MaxCredNum int
	TailsDir   string
}

type StatusListConfig struct {
	IssuanceByDefault bool
	Timestamp         uint64
}

// IssueConfig has the inputs of the credential issuance. Registry and
// StatusList are nil for non revocable credentials.
type IssueConfig struct {
	CredDef       *CredentialDefinition
	Offer         *CredentialOffer
	Request       *CredentialRequest
	Values        map[string]string
	Registry      *RevocationRegistry
	StatusList    *RevocationStatusList
	RegistryIndex int
}

// ProveCredential is a credential to present with its revocation state.
type ProveCredential struct {
	Credential *Credential
	State      *RevocationState
	Timestamp  uint64
}

// ProveItem tells how a request referent is proven with the credential at
// EntryIndex.
type ProveItem struct {
	EntryIndex  int
	Referent    string
	IsPredicate bool
	Reveal      bool
}

type PresentationInput struct {
	Request     *PresentationRequest
	Credentials []ProveCredential
	Prove       []ProveItem
	LinkSecret  *LinkSecret
	Schemas     map[string]*Schema
	CredDefs    map[string]*CredentialDefinition
}

type VerifyInput struct {
	Presentation *Presentation
	Request      *PresentationRequest
	Schemas      map[string]*Schema
	CredDefs     map[string]*CredentialDefinition
	RevRegDefs   map[string]*RevocationRegistry
	StatusLists  []*RevocationStatusList
	Overrides    []NonRevokedIntervalOverride
}

//go:generate mockgen -destination=../fixture/engine_mock_test.go -package=fixture . Engine

// Engine is the AnonCreds engine. Every call maps to one library call and
// the returned objects are immutable.
type Engine interface {
	CreateIssuer(seed string) (*Issuer, error)
	CreateSchema(issuer *Issuer, cfg SchemaConfig) (*Schema, error)
	CreateCredentialDefinition(issuer *Issuer, schema *Schema,
		cfg CredDefConfig) (*CredentialDefinition, error)
	CreateRevocationRegistry(issuer *Issuer, credDef *CredentialDefinition,
		cfg RevRegConfig) (*RevocationRegistry, error)
	CreateRevocationStatusList(issuer *Issuer, reg *RevocationRegistry,
		cfg StatusListConfig) (*RevocationStatusList, error)
	CreateCredentialOffer(credDef *CredentialDefinition) (*CredentialOffer, error)
	CreateLinkSecret(id string) (*LinkSecret, error)
	CreateCredentialRequest(credDef *CredentialDefinition,
		offer *CredentialOffer, ls *LinkSecret,
		entropy string) (*CredentialRequest, error)
	IssueCredential(cfg IssueConfig) (*Credential, error)
	ProcessCredential(cred *Credential, req *CredentialRequest,
		credDef *CredentialDefinition, reg *RevocationRegistry,
		ls *LinkSecret) (*Credential, error)
	CreateRevocationState(reg *RevocationRegistry,
		list *RevocationStatusList, index int) (*RevocationState, error)
	CreatePresentation(in PresentationInput) (*Presentation, error)
	VerifyPresentation(in VerifyInput) (bool, error)
	Close() error
}

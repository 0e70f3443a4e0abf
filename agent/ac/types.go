package ac

import "encoding/json"

// Issuer identifies the issuer. ID is the identifier used in W3C documents,
// LegacyID the one the engine uses for the objects it creates.
type Issuer struct {
	ID       string
	LegacyID string
	VerKey   string
}

type Schema struct {
	ID   string
	JSON json.RawMessage
}

type CredentialDefinition struct {
	ID                  string
	SchemaID            string
	JSON                json.RawMessage
	Private             json.RawMessage
	KeyCorrectnessProof json.RawMessage
}

type RevocationRegistry struct {
	ID            string
	CredDefID     string
	JSON          json.RawMessage // registry definition
	Private       json.RawMessage
	Entry         json.RawMessage // initial accumulator entry
	TailsLocation string
	TailsHash     string
	MaxCredNum    int
}

type RevocationStatusList struct {
	RevRegDefID string
	Timestamp   uint64
	JSON        json.RawMessage
}

type CredentialOffer struct {
	SchemaID  string
	CredDefID string
	JSON      json.RawMessage
}

// LinkSecret is the holder secret. Value is whatever the engine can reveal of
// it: the secret itself or a reference to where it's kept.
type LinkSecret struct {
	ID    string
	Value json.RawMessage
}

type CredentialRequest struct {
	JSON     json.RawMessage
	Metadata json.RawMessage
}

// Credential is a credential in legacy AnonCreds form. Referent is set after
// the holder has processed and stored the credential.
type Credential struct {
	Referent      string
	SchemaID      string
	CredDefID     string
	RevRegID      string
	RegistryIndex int
	JSON          json.RawMessage
}

type RevocationState struct {
	RevRegID  string
	Timestamp uint64
	JSON      json.RawMessage
}

// Presentation is a presentation (proof) in legacy AnonCreds form.
type Presentation struct {
	JSON json.RawMessage
}

// ParseProof parses the legacy presentation.
func (p Presentation) ParseProof() (*Proof, error) {
	proof := new(Proof)
	if err := json.Unmarshal(p.JSON, proof); err != nil {
		return nil, err
	}
	return proof, nil
}

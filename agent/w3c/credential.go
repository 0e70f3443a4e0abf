// Package w3c converts AnonCreds credentials and presentations between the
// legacy form of the engine and the W3C Verifiable Credentials data model.
// The signatures and proofs travel as multibase encoded proof values.
package w3c

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/findy-network/findy-test-vectors/agent/ac"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/multiformats/go-multibase"
)

const (
	CredentialsV1ContextURI = "https://www.w3.org/2018/credentials/v1"
	CredentialsV2ContextURI = "https://www.w3.org/ns/credentials/v2"
	AnonCredsContextURI     = "https://raw.githubusercontent.com/hyperledger/anoncreds-spec/main/data/anoncreds-w3c-context.json"

	VerifiableCredentialType   = "VerifiableCredential"
	VerifiablePresentationType = "VerifiablePresentation"
	AnonCredsCredentialType    = "AnonCredsCredential"
	AnonCredsPresentationType  = "AnonCredsPresentation"
	AnonCredsDefinitionType    = "AnonCredsDefinition"
	AnonCredsPredicateType     = "AnonCredsPredicate"

	DataIntegrityProofType = "DataIntegrityProof"
	CredentialCryptosuite  = "anoncreds-2023"
	PresVCCryptosuite      = "anoncredspresvc-2023"
	PresVPCryptosuite      = "anoncredspresvp-2023"

	Version1_1 = "1.1"
	Version2_0 = "2.0"
)

var ErrFormat = errors.New("not an AnonCreds W3C document")

// Options are the inputs the legacy form doesn't have.
type Options struct {
	IssuerID     string
	Version      string // Version1_1 is default
	IssuanceDate time.Time
}

func (o Options) context() []string {
	if o.Version == Version2_0 {
		return []string{CredentialsV2ContextURI, AnonCredsContextURI}
	}
	return []string{CredentialsV1ContextURI, AnonCredsContextURI}
}

func (o Options) envelope(id ac.Identifier, types ...string) Envelope {
	e := Envelope{
		Context: o.context(),
		Type:    append([]string{VerifiableCredentialType}, types...),
		Issuer:  o.IssuerID,
		CredentialSchema: CredentialSchema{
			Type:       AnonCredsDefinitionType,
			Definition: id.CredDefID,
			Schema:     id.SchemaID,
			Revocation: id.RevRegID,
		},
	}
	date := o.IssuanceDate.UTC().Format(time.RFC3339)
	if o.Version == Version2_0 {
		e.ValidFrom = date
	} else {
		e.IssuanceDate = date
	}
	return e
}

type CredentialSchema struct {
	Type       string `json:"type"`
	Definition string `json:"definition"`
	Schema     string `json:"schema"`
	Revocation string `json:"revocation,omitempty"`
}

// Envelope is the part which is common to issued and presented credentials.
type Envelope struct {
	Context           []string         `json:"@context"`
	Type              []string         `json:"type"`
	Issuer            string           `json:"issuer"`
	IssuanceDate      string           `json:"issuanceDate,omitempty"`
	ValidFrom         string           `json:"validFrom,omitempty"`
	CredentialSchema  CredentialSchema `json:"credentialSchema"`
	CredentialSubject map[string]any   `json:"credentialSubject"`
}

type DataIntegrityProof struct {
	Type               string `json:"type"`
	Cryptosuite        string `json:"cryptosuite"`
	ProofPurpose       string `json:"proofPurpose"`
	VerificationMethod string `json:"verificationMethod,omitempty"`
	Challenge          string `json:"challenge,omitempty"`
	ProofValue         string `json:"proofValue"`
}

// Credential is an issued AnonCreds credential in W3C form.
type Credential struct {
	Envelope
	Proof []DataIntegrityProof `json:"proof"`
}

type legacyCredential struct {
	SchemaID                  string                  `json:"schema_id"`
	CredDefID                 string                  `json:"cred_def_id"`
	RevRegID                  *string                 `json:"rev_reg_id"`
	Values                    map[string]ac.AttrValue `json:"values"`
	Signature                 json.RawMessage         `json:"signature"`
	SignatureCorrectnessProof json.RawMessage         `json:"signature_correctness_proof"`
	RevReg                    json.RawMessage         `json:"rev_reg"`
	Witness                   json.RawMessage         `json:"witness"`
}

// credentialProofValue is everything of the legacy credential but values.
type credentialProofValue struct {
	SchemaID                  string          `json:"schema_id"`
	CredDefID                 string          `json:"cred_def_id"`
	RevRegID                  *string         `json:"rev_reg_id"`
	Signature                 json.RawMessage `json:"signature"`
	SignatureCorrectnessProof json.RawMessage `json:"signature_correctness_proof"`
	RevReg                    json.RawMessage `json:"rev_reg"`
	Witness                   json.RawMessage `json:"witness"`
}

// FromLegacy converts the legacy credential to the W3C form.
func FromLegacy(cred *ac.Credential, opts Options) (c *Credential, err error) {
	defer err2.Handle(&err, "credential to W3C")

	var legacy legacyCredential
	try.To(json.Unmarshal(cred.JSON, &legacy))

	id := ac.Identifier{SchemaID: legacy.SchemaID, CredDefID: legacy.CredDefID}
	if legacy.RevRegID != nil {
		id.RevRegID = *legacy.RevRegID
	}
	c = &Credential{Envelope: opts.envelope(id, AnonCredsCredentialType)}
	c.CredentialSubject = make(map[string]any, len(legacy.Values))
	for name, v := range legacy.Values {
		c.CredentialSubject[name] = subjectValue(v.Raw)
	}
	proofValue := try.To1(encodeProofValue(credentialProofValue{
		SchemaID:                  legacy.SchemaID,
		CredDefID:                 legacy.CredDefID,
		RevRegID:                  legacy.RevRegID,
		Signature:                 legacy.Signature,
		SignatureCorrectnessProof: legacy.SignatureCorrectnessProof,
		RevReg:                    legacy.RevReg,
		Witness:                   legacy.Witness,
	}))
	c.Proof = []DataIntegrityProof{{
		Type:               DataIntegrityProofType,
		Cryptosuite:        CredentialCryptosuite,
		ProofPurpose:       "assertionMethod",
		VerificationMethod: legacy.CredDefID,
		ProofValue:         proofValue,
	}}
	return c, nil
}

// ParseW3CCredential parses the JSON. Numbers of the subject stay as
// json.Number to keep the raw values exact.
func ParseW3CCredential(data []byte) (*Credential, error) {
	c := new(Credential)
	d := json.NewDecoder(bytes.NewReader(data))
	d.UseNumber()
	if err := d.Decode(c); err != nil {
		return nil, err
	}
	return c, nil
}

// ToLegacy converts the W3C credential back to the legacy form.
func (c *Credential) ToLegacy() (cred *ac.Credential, err error) {
	defer err2.Handle(&err, "credential from W3C")

	p := c.proof(CredentialCryptosuite)
	if p == nil {
		return nil, fmt.Errorf("%w: no %s proof", ErrFormat, CredentialCryptosuite)
	}
	var pv credentialProofValue
	try.To(decodeProofValue(p.ProofValue, &pv))

	legacy := legacyCredential{
		SchemaID:                  pv.SchemaID,
		CredDefID:                 pv.CredDefID,
		RevRegID:                  pv.RevRegID,
		Values:                    make(map[string]ac.AttrValue, len(c.CredentialSubject)),
		Signature:                 pv.Signature,
		SignatureCorrectnessProof: pv.SignatureCorrectnessProof,
		RevReg:                    pv.RevReg,
		Witness:                   pv.Witness,
	}
	for name, v := range c.CredentialSubject {
		raw, ok := rawValue(v)
		if !ok {
			return nil, fmt.Errorf("%w: attribute %s is not a value", ErrFormat, name)
		}
		legacy.Values[name] = ac.AttrValue{Raw: raw, Encoded: ac.EncodeValue(raw)}
	}
	cred = &ac.Credential{
		SchemaID:  pv.SchemaID,
		CredDefID: pv.CredDefID,
		JSON:      try.To1(json.Marshal(legacy)),
	}
	if pv.RevRegID != nil {
		cred.RevRegID = *pv.RevRegID
	}
	return cred, nil
}

func (c *Credential) proof(cryptosuite string) *DataIntegrityProof {
	for i := range c.Proof {
		if c.Proof[i].Cryptosuite == cryptosuite {
			return &c.Proof[i]
		}
	}
	return nil
}

// subjectValue returns the JSON value of the raw AnonCreds value. Integers
// which survive the round trip are numbers.
func subjectValue(raw string) any {
	i, err := strconv.ParseInt(raw, 10, 32)
	if err == nil && strconv.FormatInt(i, 10) == raw {
		return i
	}
	return raw
}

func rawValue(v any) (string, bool) {
	switch v := v.(type) {
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case int:
		return strconv.Itoa(v), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	}
	return "", false
}

func encodeProofValue(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return multibase.Encode(multibase.Base64url, data)
}

func decodeProofValue(s string, v any) error {
	_, data, err := multibase.Decode(s)
	if err != nil {
		return fmt.Errorf("%w: proof value: %v", ErrFormat, err)
	}
	return json.Unmarshal(data, v)
}

func sortedNames[T any](m map[string]T) []string {
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

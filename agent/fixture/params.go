package fixture

import (
	"time"

	"github.com/findy-network/findy-test-vectors/agent/ac"
)

const (
	DefaultRegistryIndex = 9
	DefaultTailsDir      = "temp"
)

// DefaultIssuanceDate is the issuance date of the W3C credentials. The
// AnonCreds credential itself has none.
var DefaultIssuanceDate = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// Params are the fixed inputs of the AnonCreds vectors.
type Params struct {
	IssuerSeed string

	Schema     ac.SchemaConfig
	CredDef    ac.CredDefConfig
	RevReg     ac.RevRegConfig
	StatusList ac.StatusListConfig

	LinkSecretID  string
	Entropy       string
	Values        map[string]string
	RegistryIndex int
	IssuanceDate  time.Time

	// Request is the presentation request and VerifyRequest the one the
	// presentation is verified with. Requested attributes without
	// restrictions are restricted to the created credential definition.
	Request       *ac.PresentationRequest
	VerifyRequest *ac.PresentationRequest
	Prove         []ac.ProveItem

	// OverrideFrom is the requested from timestamp which the status list
	// timestamp overrides at verification.
	OverrideFrom uint64
}

func DefaultParams() Params {
	const (
		nonce    = "726216211516745824455642"
		from, to = 13, 200
	)
	return Params{
		IssuerSeed: "000000000000000000000000Issuer01",
		Schema: ac.SchemaConfig{
			Name:      "schema-1",
			Version:   "1",
			AttrNames: []string{"id", "name", "age", "sex", "height"},
		},
		CredDef: ac.CredDefConfig{
			Tag:               "default",
			SignatureType:     "CL",
			SupportRevocation: true,
		},
		RevReg: ac.RevRegConfig{
			Tag:        "default",
			Type:       "CL_ACCUM",
			MaxCredNum: 10,
			TailsDir:   DefaultTailsDir,
		},
		StatusList: ac.StatusListConfig{
			IssuanceByDefault: true,
			Timestamp:         12,
		},
		LinkSecretID: "link secret id",
		Entropy:      "8709812d-64e9-49ae-80a4-3c911209062b",
		Values: map[string]string{
			"id":     "did:key:z6MkkwiqX7BvkBbi37aNx2vJkCEYSKgHd2Jcgh4AUhi4YY1u",
			"name":   "Alex",
			"height": "175",
			"age":    "28",
			"sex":    "male",
		},
		RegistryIndex: DefaultRegistryIndex,
		IssuanceDate:  DefaultIssuanceDate,
		Request: &ac.PresentationRequest{
			Name:       "pres_req_1",
			Version:    "0.1",
			Nonce:      nonce,
			NonRevoked: ac.NewInterval(from, to),
			RequestedAttributes: map[string]ac.AttributeInfo{
				"attr2_referent": {Names: []string{"name", "height"}},
			},
			RequestedPredicates: map[string]ac.PredicateInfo{
				"predicate1_referent": {Name: "age", PType: ">=", PValue: 18},
			},
			Ver: "1.0",
		},
		VerifyRequest: &ac.PresentationRequest{
			Name:       "pres_req_1",
			Version:    "0.1",
			Nonce:      nonce,
			NonRevoked: ac.NewInterval(from, to),
			RequestedAttributes: map[string]ac.AttributeInfo{
				"random_key_1": {Names: []string{"height", "name"}},
			},
			RequestedPredicates: map[string]ac.PredicateInfo{},
			Ver:                 "1.0",
		},
		Prove: []ac.ProveItem{
			{EntryIndex: 0, Referent: "attr2_referent", Reveal: true},
			{EntryIndex: 0, Referent: "predicate1_referent", IsPredicate: true, Reveal: true},
		},
		OverrideFrom: from,
	}
}

// restricted returns a copy of the request where attributes without
// restrictions are restricted to the credential definition.
func restricted(req *ac.PresentationRequest, credDefID string) *ac.PresentationRequest {
	r := *req
	r.RequestedAttributes = make(map[string]ac.AttributeInfo, len(req.RequestedAttributes))
	for ref, a := range req.RequestedAttributes {
		if a.Restrictions == nil {
			a.Restrictions = ac.CredDefRestriction(credDefID)
		}
		r.RequestedAttributes[ref] = a
	}
	return &r
}

package w3c

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/findy-network/findy-test-vectors/agent/ac"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

const (
	issuerID  = "did:key:z6MkwXG2WjeQnNxSoynSGYU8V9j3QzP3JSqhdmkHc6SaVWoT"
	schemaID  = issuerID + "/schema"
	credDefID = issuerID + "/credential-definition"
	revRegID  = issuerID + "/revocation-registry"
)

var issuanceDate = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newLegacyCredential(t *testing.T) *ac.Credential {
	values := ac.EncodeValues(map[string]string{
		"id":     "did:key:z6MkkwiqX7BvkBbi37aNx2vJkCEYSKgHd2Jcgh4AUhi4YY1u",
		"name":   "Alex",
		"height": "175",
		"age":    "28",
		"sex":    "male",
	})
	rev := revRegID
	data, err := json.Marshal(legacyCredential{
		SchemaID:                  schemaID,
		CredDefID:                 credDefID,
		RevRegID:                  &rev,
		Values:                    values,
		Signature:                 json.RawMessage(`{"p_credential":{"m_2":"1"},"r_credential":{"i":9}}`),
		SignatureCorrectnessProof: json.RawMessage(`{"se":"2","c":"3"}`),
		RevReg:                    json.RawMessage(`{"accum":"4"}`),
		Witness:                   json.RawMessage(`{"omega":"5"}`),
	})
	require.NoError(t, err)
	return &ac.Credential{SchemaID: schemaID, CredDefID: credDefID, RevRegID: revRegID, JSON: data}
}

func TestFromLegacy_RoundTrip(t *testing.T) {
	for _, version := range []string{Version1_1, Version2_0} {
		t.Run(version, func(t *testing.T) {
			legacy := newLegacyCredential(t)
			c, err := FromLegacy(legacy, Options{
				IssuerID:     issuerID,
				Version:      version,
				IssuanceDate: issuanceDate,
			})
			require.NoError(t, err)
			require.Equal(t, issuerID, c.Issuer)
			require.Equal(t, AnonCredsDefinitionType, c.CredentialSchema.Type)
			require.Equal(t, revRegID, c.CredentialSchema.Revocation)
			require.Len(t, c.Proof, 1)
			require.Equal(t, CredentialCryptosuite, c.Proof[0].Cryptosuite)
			require.Equal(t, byte('u'), c.Proof[0].ProofValue[0])
			require.Equal(t, int64(175), c.CredentialSubject["height"])
			require.Equal(t, "Alex", c.CredentialSubject["name"])
			if version == Version2_0 {
				require.Equal(t, CredentialsV2ContextURI, c.Context[0])
				require.Equal(t, "2024-01-01T00:00:00Z", c.ValidFrom)
				require.Empty(t, c.IssuanceDate)
			} else {
				require.Equal(t, CredentialsV1ContextURI, c.Context[0])
				require.Equal(t, "2024-01-01T00:00:00Z", c.IssuanceDate)
			}

			data, err := json.Marshal(c)
			require.NoError(t, err)
			parsed, err := ParseW3CCredential(data)
			require.NoError(t, err)
			back, err := parsed.ToLegacy()
			require.NoError(t, err)
			require.Equal(t, revRegID, back.RevRegID)
			require.JSONEq(t, string(legacy.JSON), string(back.JSON))
		})
	}
}

func TestToLegacy_NoProof(t *testing.T) {
	c := &Credential{}
	_, err := c.ToLegacy()
	require.ErrorIs(t, err, ErrFormat)
}

func TestParseCredential(t *testing.T) {
	loader, err := NewDocumentLoader(nil)
	require.NoError(t, err)

	c, err := FromLegacy(newLegacyCredential(t), Options{
		IssuerID:     issuerID,
		IssuanceDate: issuanceDate,
	})
	require.NoError(t, err)
	data, err := json.Marshal(c)
	require.NoError(t, err)
	require.False(t, gjson.GetBytes(data, "credentialSchema.id").Exists())
	require.ElementsMatch(t, []string{"type", "definition", "schema", "revocation"},
		objectKeys(t, data, "credentialSchema"))

	vc, err := ParseCredential(data, loader)
	require.NoError(t, err)
	require.Contains(t, vc.Types, AnonCredsCredentialType)
	require.Equal(t, issuerID, vc.Issuer.ID)
	require.Len(t, vc.Schemas, 1)
	require.Equal(t, credDefID, vc.Schemas[0].ID)
}

func objectKeys(t *testing.T, data []byte, path string) []string {
	t.Helper()
	var keys []string
	gjson.GetBytes(data, path).ForEach(func(k, _ gjson.Result) bool {
		keys = append(keys, k.String())
		return true
	})
	require.NotEmpty(t, keys)
	return keys
}

func ts(v uint64) *uint64 { return &v }

func testProof() *ac.Proof {
	rp := ac.NewRequestedProof()
	rp.RevealedAttrGroups["attr2_referent"] = ac.RevealedAttrGroup{
		SubProofIndex: 0,
		Values: ac.EncodeValues(map[string]string{
			"name":   "Alex",
			"height": "175",
		}),
	}
	rp.Predicates["predicate1_referent"] = ac.SubProofReferent{SubProofIndex: 0}
	return &ac.Proof{
		Proof: ac.ProofData{
			Proofs:          []json.RawMessage{json.RawMessage(`{"primary_proof":{"eq_proof":{}}}`)},
			AggregatedProof: json.RawMessage(`{"c_hash":"1","c_list":[]}`),
		},
		RequestedProof: rp,
		Identifiers: []ac.Identifier{{
			SchemaID:  schemaID,
			CredDefID: credDefID,
			RevRegID:  revRegID,
			Timestamp: ts(12),
		}},
	}
}

func testRequest() *ac.PresentationRequest {
	return &ac.PresentationRequest{
		Name:       "pres_req_1",
		Version:    "0.1",
		Nonce:      "726216211516745824455642",
		NonRevoked: ac.NewInterval(13, 200),
		RequestedAttributes: map[string]ac.AttributeInfo{
			"attr2_referent": {
				Names:        []string{"name", "height"},
				Restrictions: ac.CredDefRestriction(credDefID),
			},
		},
		RequestedPredicates: map[string]ac.PredicateInfo{
			"predicate1_referent": {Name: "age", PType: ">=", PValue: 18},
		},
		Ver: "1.0",
	}
}

func presentationRoundTrip(t *testing.T) *Presentation {
	p, err := FromProof(testProof(), testRequest(), Options{
		IssuerID:     issuerID,
		IssuanceDate: issuanceDate,
	})
	require.NoError(t, err)
	require.Len(t, p.VerifiableCredential, 1)
	subject := p.VerifiableCredential[0].CredentialSubject
	require.Equal(t, "Alex", subject["name"])
	require.Equal(t, int64(175), subject["height"])
	require.Equal(t, Predicate{Type: AnonCredsPredicateType, Predicate: ">=", Value: 18},
		subject["age"])
	require.Equal(t, "726216211516745824455642", p.Proof.Challenge)

	data, err := json.Marshal(p)
	require.NoError(t, err)
	parsed, err := ParsePresentation(data)
	require.NoError(t, err)
	return parsed
}

func TestToProof_DifferentReferents(t *testing.T) {
	p := presentationRoundTrip(t)

	req := testRequest()
	req.RequestedAttributes = map[string]ac.AttributeInfo{
		"random_key_1": {
			Names:        []string{"height", "name"},
			Restrictions: ac.CredDefRestriction(credDefID),
		},
	}
	req.RequestedPredicates = map[string]ac.PredicateInfo{}

	proof, verReq, err := p.ToProof(req)
	require.NoError(t, err)

	orig := testProof()
	require.Equal(t, orig.Identifiers, proof.Identifiers)
	require.JSONEq(t, string(orig.Proof.AggregatedProof), string(proof.Proof.AggregatedProof))

	group, ok := proof.RequestedProof.RevealedAttrGroups["random_key_1"]
	require.True(t, ok)
	require.Equal(t, orig.RequestedProof.RevealedAttrGroups["attr2_referent"].Values, group.Values)

	// the age predicate is in the proof, so it's asked under a new referent
	require.Len(t, verReq.RequestedPredicates, 1)
	for ref, pred := range verReq.RequestedPredicates {
		require.Equal(t, "age", pred.Name)
		require.Equal(t, int32(18), pred.PValue)
		require.Contains(t, proof.RequestedProof.Predicates, ref)
	}
	require.Len(t, req.RequestedPredicates, 0)

	require.NoError(t, ac.CheckNonRevoked(verReq, proof, []ac.NonRevokedIntervalOverride{{
		RevRegDefID:                           revRegID,
		RequestedFromTimestamp:                13,
		OverrideRevocationStatusListTimestamp: 12,
	}}))
	require.Error(t, ac.CheckNonRevoked(verReq, proof, nil))
}

func TestToProof_Unsatisfied(t *testing.T) {
	p := presentationRoundTrip(t)

	req := testRequest()
	req.RequestedAttributes["attr3_referent"] = ac.AttributeInfo{Name: "sex"}
	_, _, err := p.ToProof(req)
	require.ErrorIs(t, err, ErrNotSatisfied)

	req = testRequest()
	req.RequestedPredicates["predicate1_referent"] = ac.PredicateInfo{Name: "age", PType: ">=", PValue: 21}
	_, _, err = p.ToProof(req)
	require.ErrorIs(t, err, ErrNotSatisfied)

	req = testRequest()
	req.Nonce = "1"
	_, _, err = p.ToProof(req)
	require.ErrorIs(t, err, ErrNotSatisfied)
}

func TestFromProof_UnknownReferent(t *testing.T) {
	proof := testProof()
	proof.RequestedProof.Predicates["unknown"] = ac.SubProofReferent{}
	_, err := FromProof(proof, testRequest(), Options{IssuerID: issuerID})
	require.ErrorIs(t, err, ErrFormat)
}

func TestToProof_InMemory(t *testing.T) {
	p, err := FromProof(testProof(), testRequest(), Options{IssuerID: issuerID})
	require.NoError(t, err)

	proof, _, err := p.ToProof(testRequest())
	require.NoError(t, err)
	require.Contains(t, proof.RequestedProof.Predicates, "predicate1_referent")
}

package ac

import "encoding/json"

// Proof is the legacy AnonCreds presentation. The cryptographic parts are
// kept as raw JSON.
type Proof struct {
	Proof          ProofData      `json:"proof"`
	RequestedProof RequestedProof `json:"requested_proof"`
	Identifiers    []Identifier   `json:"identifiers"`
}

type ProofData struct {
	Proofs          []json.RawMessage `json:"proofs"`
	AggregatedProof json.RawMessage   `json:"aggregated_proof"`
}

type RequestedProof struct {
	RevealedAttrs      map[string]RevealedAttr      `json:"revealed_attrs"`
	RevealedAttrGroups map[string]RevealedAttrGroup `json:"revealed_attr_groups,omitempty"`
	SelfAttestedAttrs  map[string]string            `json:"self_attested_attrs"`
	UnrevealedAttrs    map[string]SubProofReferent  `json:"unrevealed_attrs"`
	Predicates         map[string]SubProofReferent  `json:"predicates"`
}

type RevealedAttr struct {
	SubProofIndex int    `json:"sub_proof_index"`
	Raw           string `json:"raw"`
	Encoded       string `json:"encoded"`
}

type AttrValue struct {
	Raw     string `json:"raw"`
	Encoded string `json:"encoded"`
}

type RevealedAttrGroup struct {
	SubProofIndex int                  `json:"sub_proof_index"`
	Values        map[string]AttrValue `json:"values"`
}

type SubProofReferent struct {
	SubProofIndex int `json:"sub_proof_index"`
}

type Identifier struct {
	SchemaID  string  `json:"schema_id"`
	CredDefID string  `json:"cred_def_id"`
	RevRegID  string  `json:"rev_reg_id,omitempty"`
	Timestamp *uint64 `json:"timestamp,omitempty"`
}

// NewRequestedProof returns an empty requested proof where all the maps
// exist.
func NewRequestedProof() RequestedProof {
	return RequestedProof{
		RevealedAttrs:      make(map[string]RevealedAttr),
		RevealedAttrGroups: make(map[string]RevealedAttrGroup),
		SelfAttestedAttrs:  make(map[string]string),
		UnrevealedAttrs:    make(map[string]SubProofReferent),
		Predicates:         make(map[string]SubProofReferent),
	}
}

// Identifier returns the identifier of the sub proof or nil.
func (p *Proof) Identifier(subProofIndex int) *Identifier {
	if subProofIndex < 0 || subProofIndex >= len(p.Identifiers) {
		return nil
	}
	return &p.Identifiers[subProofIndex]
}

// AttrSubProofIndex returns the sub proof index of the attribute referent.
func (p *Proof) AttrSubProofIndex(referent string) (int, bool) {
	rp := p.RequestedProof
	if a, ok := rp.RevealedAttrs[referent]; ok {
		return a.SubProofIndex, true
	}
	if g, ok := rp.RevealedAttrGroups[referent]; ok {
		return g.SubProofIndex, true
	}
	if u, ok := rp.UnrevealedAttrs[referent]; ok {
		return u.SubProofIndex, true
	}
	return 0, false
}

func (p *Proof) JSON() ([]byte, error) {
	return json.Marshal(p)
}

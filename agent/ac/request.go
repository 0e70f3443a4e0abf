package ac

import (
	"encoding/json"
	"sort"
)

type NonRevokedInterval struct {
	From *uint64 `json:"from,omitempty"`
	To   *uint64 `json:"to,omitempty"`
}

// NewInterval returns interval [from, to].
func NewInterval(from, to uint64) *NonRevokedInterval {
	return &NonRevokedInterval{From: &from, To: &to}
}

// IsValid tells if the timestamp is inside the interval. Open ends accept
// everything.
func (i *NonRevokedInterval) IsValid(ts uint64) bool {
	if i == nil {
		return true
	}
	if i.From != nil && ts < *i.From {
		return false
	}
	if i.To != nil && ts > *i.To {
		return false
	}
	return true
}

type AttributeInfo struct {
	Name         string              `json:"name,omitempty"`
	Names        []string            `json:"names,omitempty"`
	Restrictions json.RawMessage     `json:"restrictions,omitempty"`
	NonRevoked   *NonRevokedInterval `json:"non_revoked,omitempty"`
}

// AttrNames returns the attribute names of the single attribute or the group.
func (a AttributeInfo) AttrNames() []string {
	if a.Name != "" {
		return []string{a.Name}
	}
	return a.Names
}

type PredicateInfo struct {
	Name         string              `json:"name"`
	PType        string              `json:"p_type"`
	PValue       int32               `json:"p_value"`
	Restrictions json.RawMessage     `json:"restrictions,omitempty"`
	NonRevoked   *NonRevokedInterval `json:"non_revoked,omitempty"`
}

type PresentationRequest struct {
	Name                string                   `json:"name"`
	Version             string                   `json:"version"`
	Nonce               string                   `json:"nonce"`
	RequestedAttributes map[string]AttributeInfo `json:"requested_attributes"`
	RequestedPredicates map[string]PredicateInfo `json:"requested_predicates"`
	NonRevoked          *NonRevokedInterval      `json:"non_revoked,omitempty"`
	Ver                 string                   `json:"ver,omitempty"`
}

// ParsePresentationRequest parses the request JSON. Unknown top level members
// are dropped.
func ParsePresentationRequest(data []byte) (*PresentationRequest, error) {
	req := new(PresentationRequest)
	if err := json.Unmarshal(data, req); err != nil {
		return nil, err
	}
	if req.RequestedAttributes == nil {
		req.RequestedAttributes = make(map[string]AttributeInfo)
	}
	if req.RequestedPredicates == nil {
		req.RequestedPredicates = make(map[string]PredicateInfo)
	}
	return req, nil
}

func (r *PresentationRequest) JSON() ([]byte, error) {
	return json.Marshal(r)
}

// AttrInterval returns the effective non-revoked interval of the attribute
// referent: the referent's own or the request level one.
func (r *PresentationRequest) AttrInterval(referent string) *NonRevokedInterval {
	if a, ok := r.RequestedAttributes[referent]; ok && a.NonRevoked != nil {
		return a.NonRevoked
	}
	return r.NonRevoked
}

// PredicateInterval is AttrInterval for predicates.
func (r *PresentationRequest) PredicateInterval(referent string) *NonRevokedInterval {
	if p, ok := r.RequestedPredicates[referent]; ok && p.NonRevoked != nil {
		return p.NonRevoked
	}
	return r.NonRevoked
}

// AttrReferents returns the attribute referents in stable order.
func (r *PresentationRequest) AttrReferents() []string {
	return sortedKeys(r.RequestedAttributes)
}

// PredicateReferents returns the predicate referents in stable order.
func (r *PresentationRequest) PredicateReferents() []string {
	return sortedKeys(r.RequestedPredicates)
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// CredDefRestriction is the `$or` restriction to the credential definitions.
func CredDefRestriction(credDefIDs ...string) json.RawMessage {
	type credDef struct {
		CredDefID string `json:"cred_def_id"`
	}
	or := struct {
		Or []credDef `json:"$or"`
	}{}
	for _, id := range credDefIDs {
		or.Or = append(or.Or, credDef{CredDefID: id})
	}
	data, _ := json.Marshal(or)
	return data
}

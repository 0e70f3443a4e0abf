package w3c

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/findy-network/findy-test-vectors/agent/ac"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

var ErrNotSatisfied = errors.New("presentation doesn't satisfy the request")

// Predicate is the credential subject value of a proven predicate.
type Predicate struct {
	Type      string `json:"type"`
	Predicate string `json:"predicate"`
	Value     int32  `json:"value"`
}

// PresentedCredential is a derived credential inside a presentation.
type PresentedCredential struct {
	Envelope
	Proof DataIntegrityProof `json:"proof"`
}

type Presentation struct {
	Context              []string              `json:"@context"`
	Type                 []string              `json:"type"`
	VerifiableCredential []PresentedCredential `json:"verifiableCredential"`
	Proof                DataIntegrityProof    `json:"proof"`
}

type presVCProofValue struct {
	SchemaID  string          `json:"schema_id"`
	CredDefID string          `json:"cred_def_id"`
	RevRegID  string          `json:"rev_reg_id,omitempty"`
	Timestamp *uint64         `json:"timestamp,omitempty"`
	SubProof  json.RawMessage `json:"sub_proof"`
}

type presVPProofValue struct {
	Aggregated json.RawMessage `json:"aggregated"`
}

// FromProof converts the legacy presentation created for the request to the
// W3C form. Every sub proof becomes one credential.
func FromProof(
	proof *ac.Proof,
	req *ac.PresentationRequest,
	opts Options,
) (p *Presentation, err error) {
	defer err2.Handle(&err, "presentation to W3C")

	n := len(proof.Identifiers)
	if len(proof.Proof.Proofs) != n {
		return nil, fmt.Errorf("%w: %d sub proofs for %d identifiers",
			ErrFormat, len(proof.Proof.Proofs), n)
	}
	subjects := make([]map[string]any, n)
	for i := range subjects {
		subjects[i] = make(map[string]any)
	}
	set := func(idx int, name string, v any) error {
		if idx < 0 || idx >= n {
			return fmt.Errorf("%w: sub proof index %d", ErrFormat, idx)
		}
		if _, exists := subjects[idx][name]; exists {
			return fmt.Errorf("%w: attribute %s proven twice", ErrFormat, name)
		}
		subjects[idx][name] = v
		return nil
	}

	rp := proof.RequestedProof
	for _, ref := range sortedNames(rp.RevealedAttrs) {
		a := rp.RevealedAttrs[ref]
		info, ok := req.RequestedAttributes[ref]
		if !ok || info.Name == "" {
			return nil, fmt.Errorf("%w: unknown attribute referent %s", ErrFormat, ref)
		}
		try.To(set(a.SubProofIndex, info.Name, subjectValue(a.Raw)))
	}
	for _, ref := range sortedNames(rp.RevealedAttrGroups) {
		g := rp.RevealedAttrGroups[ref]
		for _, name := range sortedNames(g.Values) {
			try.To(set(g.SubProofIndex, name, subjectValue(g.Values[name].Raw)))
		}
	}
	for _, ref := range sortedNames(rp.Predicates) {
		info, ok := req.RequestedPredicates[ref]
		if !ok {
			return nil, fmt.Errorf("%w: unknown predicate referent %s", ErrFormat, ref)
		}
		try.To(set(rp.Predicates[ref].SubProofIndex, info.Name, Predicate{
			Type:      AnonCredsPredicateType,
			Predicate: info.PType,
			Value:     info.PValue,
		}))
	}

	p = &Presentation{
		Context:              opts.context(),
		Type:                 []string{VerifiablePresentationType, AnonCredsPresentationType},
		VerifiableCredential: make([]PresentedCredential, n),
	}
	for i, id := range proof.Identifiers {
		vc := PresentedCredential{Envelope: opts.envelope(id, AnonCredsCredentialType)}
		vc.CredentialSubject = subjects[i]
		vc.Proof = DataIntegrityProof{
			Type:               DataIntegrityProofType,
			Cryptosuite:        PresVCCryptosuite,
			ProofPurpose:       "assertionMethod",
			VerificationMethod: id.CredDefID,
			ProofValue: try.To1(encodeProofValue(presVCProofValue{
				SchemaID:  id.SchemaID,
				CredDefID: id.CredDefID,
				RevRegID:  id.RevRegID,
				Timestamp: id.Timestamp,
				SubProof:  proof.Proof.Proofs[i],
			})),
		}
		p.VerifiableCredential[i] = vc
	}
	p.Proof = DataIntegrityProof{
		Type:         DataIntegrityProofType,
		Cryptosuite:  PresVPCryptosuite,
		ProofPurpose: "authentication",
		Challenge:    req.Nonce,
		ProofValue: try.To1(encodeProofValue(presVPProofValue{
			Aggregated: proof.Proof.AggregatedProof,
		})),
	}
	return p, nil
}

// ParsePresentation parses the W3C presentation JSON.
func ParsePresentation(data []byte) (*Presentation, error) {
	p := new(Presentation)
	d := json.NewDecoder(bytes.NewReader(data))
	d.UseNumber()
	if err := d.Decode(p); err != nil {
		return nil, err
	}
	return p, nil
}

// presented is what one presented credential proves.
type presented struct {
	revealed   map[string]string
	predicates map[string][]Predicate
	used       map[string]bool
}

func (p *Presentation) presented() (list []presented, err error) {
	list = make([]presented, len(p.VerifiableCredential))
	for i, vc := range p.VerifiableCredential {
		pr := presented{
			revealed:   make(map[string]string),
			predicates: make(map[string][]Predicate),
			used:       make(map[string]bool),
		}
		for name, v := range vc.CredentialSubject {
			if raw, ok := rawValue(v); ok {
				pr.revealed[name] = raw
				continue
			}
			pred, err := toPredicate(v)
			if err != nil {
				return nil, fmt.Errorf("attribute %s: %w", name, err)
			}
			pr.predicates[name] = append(pr.predicates[name], pred)
		}
		list[i] = pr
	}
	return list, nil
}

func toPredicate(v any) (pred Predicate, err error) {
	switch v := v.(type) {
	case Predicate:
		return v, nil
	case *Predicate:
		return *v, nil
	}
	m, ok := v.(map[string]any)
	if !ok || m["type"] != AnonCredsPredicateType {
		return pred, fmt.Errorf("%w: unknown subject value", ErrFormat)
	}
	pred.Type = AnonCredsPredicateType
	pred.Predicate, _ = m["predicate"].(string)
	value, ok := rawValue(m["value"])
	if !ok {
		return pred, fmt.Errorf("%w: predicate value", ErrFormat)
	}
	i, err := strconv.ParseInt(value, 10, 32)
	if err != nil {
		return pred, fmt.Errorf("%w: predicate value: %v", ErrFormat, err)
	}
	pred.Value = int32(i)
	return pred, nil
}

// ToProof rebuilds the legacy presentation for the verification request. The
// request may use other referents than the one the presentation was created
// for, so attributes and predicates are matched by name. Whatever the
// request doesn't ask is still part of the zero knowledge proof, and it's
// added to the returned request under generated referents.
func (p *Presentation) ToProof(
	req *ac.PresentationRequest,
) (proof *ac.Proof, verReq *ac.PresentationRequest, err error) {
	defer err2.Handle(&err, "presentation from W3C")

	if p.Proof.Cryptosuite != PresVPCryptosuite {
		return nil, nil, fmt.Errorf("%w: presentation cryptosuite %s",
			ErrFormat, p.Proof.Cryptosuite)
	}
	if p.Proof.Challenge != req.Nonce {
		return nil, nil, fmt.Errorf("%w: challenge doesn't match nonce", ErrNotSatisfied)
	}
	var vp presVPProofValue
	try.To(decodeProofValue(p.Proof.ProofValue, &vp))

	proof = &ac.Proof{
		Proof:          ac.ProofData{AggregatedProof: vp.Aggregated},
		RequestedProof: ac.NewRequestedProof(),
	}
	for _, vc := range p.VerifiableCredential {
		var pv presVCProofValue
		try.To(decodeProofValue(vc.Proof.ProofValue, &pv))
		proof.Proof.Proofs = append(proof.Proof.Proofs, pv.SubProof)
		proof.Identifiers = append(proof.Identifiers, ac.Identifier{
			SchemaID:  pv.SchemaID,
			CredDefID: pv.CredDefID,
			RevRegID:  pv.RevRegID,
			Timestamp: pv.Timestamp,
		})
	}
	list := try.To1(p.presented())

	verReq = copyRequest(req)
	rp := proof.RequestedProof
	for _, ref := range req.AttrReferents() {
		info := req.RequestedAttributes[ref]
		names := info.AttrNames()
		idx := findRevealed(list, names)
		if idx < 0 {
			return nil, nil, fmt.Errorf("%w: attributes %v of %s not revealed",
				ErrNotSatisfied, names, ref)
		}
		if info.Name != "" {
			raw := list[idx].revealed[info.Name]
			rp.RevealedAttrs[ref] = ac.RevealedAttr{
				SubProofIndex: idx,
				Raw:           raw,
				Encoded:       ac.EncodeValue(raw),
			}
		} else {
			values := make(map[string]ac.AttrValue, len(names))
			for _, name := range names {
				raw := list[idx].revealed[name]
				values[name] = ac.AttrValue{Raw: raw, Encoded: ac.EncodeValue(raw)}
			}
			rp.RevealedAttrGroups[ref] = ac.RevealedAttrGroup{
				SubProofIndex: idx,
				Values:        values,
			}
		}
		for _, name := range names {
			list[idx].used[name] = true
		}
	}
	for _, ref := range req.PredicateReferents() {
		info := req.RequestedPredicates[ref]
		idx := findPredicate(list, info)
		if idx < 0 {
			return nil, nil, fmt.Errorf("%w: predicate %s %s %d of %s not proven",
				ErrNotSatisfied, info.Name, info.PType, info.PValue, ref)
		}
		rp.Predicates[ref] = ac.SubProofReferent{SubProofIndex: idx}
		list[idx].used[predicateKey(info.Name, info.PType, info.PValue)] = true
	}

	// the rest of the sub proofs is asked under generated referents
	for idx, pr := range list {
		for _, name := range sortedNames(pr.revealed) {
			if pr.used[name] {
				continue
			}
			ref := fmt.Sprintf("%s_%d_attr", name, idx)
			raw := pr.revealed[name]
			verReq.RequestedAttributes[ref] = ac.AttributeInfo{Name: name}
			rp.RevealedAttrs[ref] = ac.RevealedAttr{
				SubProofIndex: idx,
				Raw:           raw,
				Encoded:       ac.EncodeValue(raw),
			}
		}
		for _, name := range sortedNames(pr.predicates) {
			for i, pred := range pr.predicates[name] {
				if pr.used[predicateKey(name, pred.Predicate, pred.Value)] {
					continue
				}
				ref := fmt.Sprintf("%s_%d_%d_predicate", name, idx, i)
				verReq.RequestedPredicates[ref] = ac.PredicateInfo{
					Name:   name,
					PType:  pred.Predicate,
					PValue: pred.Value,
				}
				rp.Predicates[ref] = ac.SubProofReferent{SubProofIndex: idx}
			}
		}
	}
	return proof, verReq, nil
}

func findRevealed(list []presented, names []string) int {
	for idx, pr := range list {
		all := len(names) > 0
		for _, name := range names {
			if _, ok := pr.revealed[name]; !ok {
				all = false
				break
			}
		}
		if all {
			return idx
		}
	}
	return -1
}

func findPredicate(list []presented, info ac.PredicateInfo) int {
	for idx, pr := range list {
		for _, pred := range pr.predicates[info.Name] {
			if pred.Predicate == info.PType && pred.Value == info.PValue {
				return idx
			}
		}
	}
	return -1
}

func predicateKey(name, pType string, value int32) string {
	return fmt.Sprintf("%s %s %d", name, pType, value)
}

func copyRequest(req *ac.PresentationRequest) *ac.PresentationRequest {
	c := *req
	c.RequestedAttributes = make(map[string]ac.AttributeInfo, len(req.RequestedAttributes))
	for k, v := range req.RequestedAttributes {
		c.RequestedAttributes[k] = v
	}
	c.RequestedPredicates = make(map[string]ac.PredicateInfo, len(req.RequestedPredicates))
	for k, v := range req.RequestedPredicates {
		c.RequestedPredicates[k] = v
	}
	return &c
}

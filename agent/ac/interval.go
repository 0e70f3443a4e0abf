package ac

import (
	"errors"
	"fmt"
)

var ErrInvalidTimestamp = errors.New("invalid non-revoked timestamp")

// NonRevokedIntervalOverride lets the verifier accept a status list which is
// older than the requested interval start. It is matched by the registry and
// the requested from timestamp.
type NonRevokedIntervalOverride struct {
	RevRegDefID                           string `json:"revocationRegistryDefinitionId"`
	RequestedFromTimestamp                uint64 `json:"requestedFromTimestamp"`
	OverrideRevocationStatusListTimestamp uint64 `json:"overrideRevocationStatusListTimestamp"`
}

type overrideKey struct {
	revRegID string
	from     uint64
}

type overrides map[overrideKey]uint64

func newOverrides(list []NonRevokedIntervalOverride) overrides {
	m := make(overrides, len(list))
	for _, o := range list {
		m[overrideKey{o.RevRegDefID, o.RequestedFromTimestamp}] =
			o.OverrideRevocationStatusListTimestamp
	}
	return m
}

// apply returns the interval where the start is replaced by the override if
// one exists for the registry.
func (o overrides) apply(revRegID string, i *NonRevokedInterval) *NonRevokedInterval {
	if i == nil || i.From == nil {
		return i
	}
	ts, ok := o[overrideKey{revRegID, *i.From}]
	if !ok {
		return i
	}
	return &NonRevokedInterval{From: &ts, To: i.To}
}

// CheckNonRevoked checks that every revocable sub proof used for a referent
// which asks non-revocation has a timestamp inside the effective interval.
func CheckNonRevoked(
	req *PresentationRequest,
	proof *Proof,
	list []NonRevokedIntervalOverride,
) error {
	ovr := newOverrides(list)

	for _, ref := range req.AttrReferents() {
		interval := req.AttrInterval(ref)
		if interval == nil {
			continue
		}
		if _, self := proof.RequestedProof.SelfAttestedAttrs[ref]; self {
			continue
		}
		idx, ok := proof.AttrSubProofIndex(ref)
		if !ok {
			return fmt.Errorf("%w: attribute referent %s not in proof",
				ErrInvalidTimestamp, ref)
		}
		if err := ovr.check(ref, proof.Identifier(idx), interval); err != nil {
			return err
		}
	}
	for _, ref := range req.PredicateReferents() {
		interval := req.PredicateInterval(ref)
		if interval == nil {
			continue
		}
		p, ok := proof.RequestedProof.Predicates[ref]
		if !ok {
			return fmt.Errorf("%w: predicate referent %s not in proof",
				ErrInvalidTimestamp, ref)
		}
		if err := ovr.check(ref, proof.Identifier(p.SubProofIndex), interval); err != nil {
			return err
		}
	}
	return nil
}

func (o overrides) check(ref string, id *Identifier, interval *NonRevokedInterval) error {
	switch {
	case id == nil:
		return fmt.Errorf("%w: no identifier for %s", ErrInvalidTimestamp, ref)
	case id.RevRegID == "":
		return nil
	case id.Timestamp == nil:
		return fmt.Errorf("%w: no timestamp for %s", ErrInvalidTimestamp, ref)
	}
	if !o.apply(id.RevRegID, interval).IsValid(*id.Timestamp) {
		return fmt.Errorf("%w: %d for %s", ErrInvalidTimestamp, *id.Timestamp, ref)
	}
	return nil
}

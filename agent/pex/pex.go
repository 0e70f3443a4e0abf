// Package pex evaluates DIF Presentation Exchange definitions against W3C
// AnonCreds credentials with the aries presexch package and builds the
// presentation with its submission.
package pex

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/findy-network/findy-test-vectors/agent/w3c"
	"github.com/golang/glog"
	"github.com/hyperledger/aries-framework-go/component/models/presexch"
	"github.com/hyperledger/aries-framework-go/component/models/verifiable"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	jsonld "github.com/piprate/json-gold/ld"
)

type Status string

const (
	StatusInfo  Status = "info"
	StatusWarn  Status = "warn"
	StatusError Status = "error"
)

const SubmissionLocationPresentation = "PRESENTATION"

var (
	ErrInvalidDefinition = errors.New("invalid presentation definition")
	ErrNotSatisfied      = errors.New("presentation definition not satisfied")
)

// Checked is a single validation or evaluation result.
type Checked struct {
	Tag     string `json:"tag"`
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
}

// Match tells which credentials satisfy a submission requirement or an input
// descriptor.
type Match struct {
	Name   string   `json:"name"`
	ID     string   `json:"id,omitempty"`
	Rule   string   `json:"rule"`
	VCPath []string `json:"vc_path"`
}

// Results are the results of EvaluateCredentials and SelectFrom.
type Results struct {
	AreRequiredCredentialsPresent Status            `json:"areRequiredCredentialsPresent"`
	VerifiableCredential          []json.RawMessage `json:"verifiableCredential"`
	Matches                       []Match           `json:"matches,omitempty"`
	Errors                        []Checked         `json:"errors,omitempty"`
	Warnings                      []Checked         `json:"warnings,omitempty"`
}

// PresentationResult is the presentation and the submission it carries.
type PresentationResult struct {
	Presentation                   json.RawMessage `json:"presentation"`
	PresentationSubmission         json.RawMessage `json:"presentationSubmission"`
	PresentationSubmissionLocation string          `json:"presentationSubmissionLocation"`
}

// Evaluator is a PEX evaluator. Create it with New.
type Evaluator struct {
	loader                jsonld.DocumentLoader
	limitDisclosureSuites []string
}

type Option func(*Evaluator)

// WithLimitDisclosureSuites sets the proof types for which limit_disclosure
// is honoured. Default is DataIntegrityProof.
func WithLimitDisclosureSuites(suites ...string) Option {
	return func(e *Evaluator) {
		e.limitDisclosureSuites = suites
	}
}

func New(loader jsonld.DocumentLoader, opts ...Option) *Evaluator {
	e := &Evaluator{
		loader:                loader,
		limitDisclosureSuites: []string{w3c.DataIntegrityProofType},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ValidateDefinition validates the definition JSON. There is always exactly
// one result.
func (e *Evaluator) ValidateDefinition(def []byte) []Checked {
	def, _, err := stripLimitDisclosure(def)
	var pd *presexch.PresentationDefinition
	if err == nil {
		pd, err = parseDefinition(def)
	}
	if err == nil {
		err = pd.ValidateSchema()
	}
	if err != nil {
		return []Checked{{
			Tag:     "presentation_definition",
			Status:  StatusError,
			Message: err.Error(),
		}}
	}
	return []Checked{{Tag: "root", Status: StatusInfo, Message: "ok"}}
}

// CheckValidated returns ErrInvalidDefinition if any of the results is an
// error.
func CheckValidated(checked []Checked) error {
	for _, c := range checked {
		if c.Status == StatusError {
			return fmt.Errorf("%w: %s: %s", ErrInvalidDefinition, c.Tag, c.Message)
		}
	}
	return nil
}

// CheckResults returns ErrNotSatisfied if the results have an error status.
func CheckResults(r *Results) error {
	if r.AreRequiredCredentialsPresent != StatusError && len(r.Errors) == 0 {
		return nil
	}
	msg := "no matching credentials"
	if len(r.Errors) > 0 {
		msg = r.Errors[0].Message
	}
	return fmt.Errorf("%w: %s", ErrNotSatisfied, msg)
}

func parseDefinition(def []byte) (*presexch.PresentationDefinition, error) {
	pd := new(presexch.PresentationDefinition)
	if err := json.Unmarshal(def, pd); err != nil {
		return nil, err
	}
	return pd, nil
}

type evaluation struct {
	pd        *presexch.PresentationDefinition
	limited   map[string]bool // descriptors with limit_disclosure required
	creds     []*verifiable.Credential
	raws      [][]byte
	matched   []*presexch.MatchedSubmissionRequirement
	satisfied bool
	errs      []Checked
}

// evaluate runs the aries matching. limit_disclosure is removed before
// matching, since aries only supports it for BBS+ and SD-JWT credentials.
func (e *Evaluator) evaluate(def []byte, creds [][]byte) (ev *evaluation, err error) {
	defer err2.Handle(&err, "evaluate credentials")

	def = try.To1(OverrideFormat(def))
	def, limited := try.To2(stripLimitDisclosure(def))

	ev = &evaluation{
		pd:      try.To1(parseDefinition(def)),
		limited: limited,
	}
	for i, c := range creds {
		raw := try.To1(NormalizeProof(c))
		vc, err := w3c.ParseCredential(raw, e.loader)
		if err != nil {
			ev.errs = append(ev.errs, Checked{
				Tag:     vcPath(i),
				Status:  StatusError,
				Message: err.Error(),
			})
			continue
		}
		ev.creds = append(ev.creds, vc)
		ev.raws = append(ev.raws, raw)
	}
	if len(ev.errs) > 0 {
		return ev, nil
	}

	ev.matched, err = ev.pd.MatchSubmissionRequirement(ev.creds, e.loader)
	if errors.Is(err, presexch.ErrNoCredentials) {
		ev.errs = append(ev.errs, Checked{
			Tag:     "input_descriptors",
			Status:  StatusError,
			Message: err.Error(),
		})
		return ev, nil
	}
	try.To(err)

	ev.satisfied = true
	for _, req := range ev.matched {
		if ok, msg := satisfied(req); !ok {
			ev.satisfied = false
			ev.errs = append(ev.errs, Checked{
				Tag:     req.Name,
				Status:  StatusError,
				Message: msg,
			})
		}
	}
	if glog.V(3) {
		glog.Infof("%d credentials, %d requirements, satisfied: %v",
			len(ev.creds), len(ev.matched), ev.satisfied)
	}
	return ev, nil
}

func satisfied(req *presexch.MatchedSubmissionRequirement) (bool, string) {
	count := 0
	for _, d := range req.Descriptors {
		if len(d.MatchedVCs) > 0 {
			count++
		} else if req.Rule != presexch.Pick {
			return false, fmt.Sprintf("no credential for input descriptor %s", d.ID)
		}
	}
	for _, n := range req.Nested {
		if ok, _ := satisfied(n); ok {
			count++
		} else if req.Rule != presexch.Pick {
			return false, fmt.Sprintf("nested requirement %s not satisfied", n.Name)
		}
	}
	if req.Rule == presexch.Pick && count == 0 {
		return false, fmt.Sprintf("nothing picked for %s", req.Name)
	}
	return true, ""
}

func vcPath(i int) string {
	return fmt.Sprintf("$.verifiableCredential[%d]", i)
}

// matches returns which credential indexes each descriptor matched.
func (ev *evaluation) matches() (ms []Match, used []int) {
	index := make(map[*verifiable.Credential]int, len(ev.creds))
	for i, vc := range ev.creds {
		index[vc] = i
	}
	seen := map[int]bool{}
	var walk func(req *presexch.MatchedSubmissionRequirement)
	walk = func(req *presexch.MatchedSubmissionRequirement) {
		for _, d := range req.Descriptors {
			m := Match{Name: d.Name, ID: d.ID, Rule: string(presexch.All)}
			if req.Rule != "" {
				m.Rule = string(req.Rule)
			}
			for _, vc := range d.MatchedVCs {
				i, ok := index[vc]
				if !ok {
					i, ok = ev.lookup(vc)
				}
				if !ok {
					continue
				}
				m.VCPath = append(m.VCPath, vcPath(i))
				if !seen[i] {
					seen[i] = true
					used = append(used, i)
				}
			}
			ms = append(ms, m)
		}
		for _, n := range req.Nested {
			walk(n)
		}
	}
	for _, req := range ev.matched {
		walk(req)
	}
	return ms, used
}

// lookup finds the credential by content when aries has made a copy of it.
func (ev *evaluation) lookup(vc *verifiable.Credential) (int, bool) {
	data, err := json.Marshal(vc)
	if err != nil {
		return 0, false
	}
	for i, c := range ev.creds {
		cd, err := json.Marshal(c)
		if err == nil && string(cd) == string(data) {
			return i, true
		}
	}
	return 0, false
}

func (ev *evaluation) results(creds [][]byte) *Results {
	r := &Results{
		AreRequiredCredentialsPresent: StatusInfo,
		Errors:                        ev.errs,
	}
	if !ev.satisfied {
		r.AreRequiredCredentialsPresent = StatusError
	}
	for _, c := range creds {
		r.VerifiableCredential = append(r.VerifiableCredential, c)
	}
	return r
}

// EvaluateCredentials tells if the credentials satisfy the definition.
func (e *Evaluator) EvaluateCredentials(def []byte, creds [][]byte) (*Results, error) {
	ev, err := e.evaluate(def, creds)
	if err != nil {
		return nil, err
	}
	r := ev.results(ev.raws)
	r.Matches, _ = ev.matches()
	return r, nil
}

// SelectFrom returns the credentials which satisfy the definition. Limit
// disclosure is applied to them.
func (e *Evaluator) SelectFrom(def []byte, creds [][]byte) (_ *Results, err error) {
	defer err2.Handle(&err, "select from")

	ev := try.To1(e.evaluate(def, creds))
	if !ev.satisfied {
		return ev.results(nil), nil
	}
	matches, used := ev.matches()
	selected := make([][]byte, 0, len(used))
	paths := make(map[string]string, len(used))
	for i, idx := range used {
		selected = append(selected, try.To1(e.limitDisclosure(ev, ev.raws[idx])))
		paths[vcPath(idx)] = vcPath(i)
	}
	for _, m := range matches {
		for k, p := range m.VCPath {
			m.VCPath[k] = paths[p]
		}
	}
	r := ev.results(selected)
	r.Matches = matches
	return r, nil
}

// PresentationFrom builds the presentation and its presentation submission
// from the selected credentials.
func (e *Evaluator) PresentationFrom(def []byte, creds [][]byte) (_ *PresentationResult, err error) {
	defer err2.Handle(&err, "presentation from")

	def = try.To1(OverrideFormat(def))
	def, _ = try.To2(stripLimitDisclosure(def))
	pd := try.To1(parseDefinition(def))

	vcs := make([]*verifiable.Credential, 0, len(creds))
	for _, c := range creds {
		raw := try.To1(NormalizeProof(c))
		vcs = append(vcs, try.To1(w3c.ParseCredential(raw, e.loader)))
	}
	vp, err := pd.CreateVP(vcs, e.loader,
		verifiable.WithDisabledProofCheck(),
		verifiable.WithJSONLDDocumentLoader(e.loader))
	if errors.Is(err, presexch.ErrNoCredentials) {
		return nil, fmt.Errorf("%w: %v", ErrNotSatisfied, err)
	}
	try.To(err)

	presentation := try.To1(json.Marshal(vp))
	submission := try.To1(json.Marshal(vp.CustomFields["presentation_submission"]))
	return &PresentationResult{
		Presentation:                   presentation,
		PresentationSubmission:         submission,
		PresentationSubmissionLocation: SubmissionLocationPresentation,
	}, nil
}

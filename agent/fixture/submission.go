package fixture

import (
	"encoding/json"
	"fmt"

	"github.com/findy-network/findy-test-vectors/agent/pex"
	"github.com/findy-network/findy-test-vectors/agent/vectors"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// Evaluator is the PEX evaluator the submission pipeline uses.
type Evaluator interface {
	ValidateDefinition(def []byte) []pex.Checked
	EvaluateCredentials(def []byte, creds [][]byte) (*pex.Results, error)
	SelectFrom(def []byte, creds [][]byte) (*pex.Results, error)
	PresentationFrom(def []byte, creds [][]byte) (*pex.PresentationResult, error)
}

// Submission generates the PEX presentation submission vector from the
// definition and credential vectors.
type Submission struct {
	Evaluator Evaluator
	Store     *vectors.Store

	Definition string // file names in the store
	Credential string
	Out        string
}

// Run runs the pipeline. It stops at the first error status.
func (s *Submission) Run() (err error) {
	defer err2.Handle(&err, "pex submission")

	if s.Definition == vectors.PresentationDefinitionFile {
		if try.To1(s.Store.EnsureDefinition()) {
			glog.V(1).Infoln("default presentation definition written")
		}
	}
	def := try.To1(pex.OverrideFormat(try.To1(s.Store.Read(s.Definition))))
	cred := try.To1(pex.NormalizeProof(try.To1(s.Store.Read(s.Credential))))
	creds := [][]byte{cred}

	validated := s.Evaluator.ValidateDefinition(def)
	if len(validated) != 1 {
		return fmt.Errorf("%w: %d validation results", pex.ErrInvalidDefinition, len(validated))
	}
	try.To(pex.CheckValidated(validated))

	evaluated := try.To1(s.Evaluator.EvaluateCredentials(def, creds))
	if glog.V(3) {
		data, _ := json.Marshal(evaluated.VerifiableCredential)
		glog.Infof("evaluated credentials: %s", data)
	}
	try.To(pex.CheckResults(evaluated))

	selected := try.To1(s.Evaluator.SelectFrom(def, creds))
	try.To(pex.CheckResults(selected))

	selectedCreds := make([][]byte, 0, len(selected.VerifiableCredential))
	for _, c := range selected.VerifiableCredential {
		selectedCreds = append(selectedCreds, c)
	}
	vp := try.To1(s.Evaluator.PresentationFrom(def, selectedCreds))
	try.To(s.Store.Write(s.Out, vp))
	glog.V(1).Infoln("presentation submission written to", s.Out)
	return nil
}

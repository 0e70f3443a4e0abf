package pex

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/findy-network/findy-test-vectors/agent/w3c"
	"github.com/golang/glog"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// DataIntegrityFormat is the only claim format AnonCreds W3C credentials
// have.
const DataIntegrityFormat = `{"ldp_vc":{"proof_type":["DataIntegrityProof"]}}`

// OverrideFormat replaces the format of the definition with
// DataIntegrityFormat.
func OverrideFormat(def []byte) ([]byte, error) {
	return sjson.SetRawBytes(def, "format", []byte(DataIntegrityFormat))
}

// NormalizeProof replaces a proof array of the credential with its first
// proof.
func NormalizeProof(cred []byte) ([]byte, error) {
	proof := gjson.GetBytes(cred, "proof")
	if !proof.IsArray() {
		return cred, nil
	}
	first := proof.Get("0")
	if !first.Exists() {
		return nil, fmt.Errorf("%w: empty proof array", w3c.ErrFormat)
	}
	return sjson.SetRawBytes(cred, "proof", []byte(first.Raw))
}

// stripLimitDisclosure removes limit_disclosure from the input descriptors
// and returns the IDs of the descriptors which required it.
func stripLimitDisclosure(def []byte) (_ []byte, limited map[string]bool, err error) {
	limited = make(map[string]bool)
	descriptors := gjson.GetBytes(def, "input_descriptors").Array()
	for i := len(descriptors) - 1; i >= 0; i-- {
		ld := descriptors[i].Get("constraints.limit_disclosure")
		if !ld.Exists() {
			continue
		}
		switch {
		case ld.String() == "required" || ld.Type == gjson.True:
			limited[descriptors[i].Get("id").String()] = true
		case ld.String() == "preferred" || ld.Type == gjson.False:
		default:
			return nil, nil, fmt.Errorf("%w: limit_disclosure: %s",
				ErrInvalidDefinition, ld.Raw)
		}
		path := fmt.Sprintf("input_descriptors.%d.constraints.limit_disclosure", i)
		if def, err = sjson.DeleteBytes(def, path); err != nil {
			return nil, nil, err
		}
	}
	return def, limited, nil
}

func (e *Evaluator) disclosureSuite(cred []byte) bool {
	typ := gjson.GetBytes(cred, "proof.type").String()
	for _, s := range e.limitDisclosureSuites {
		if s == typ {
			return true
		}
	}
	return false
}

// limitDisclosure keeps only the credential subject fields the limited
// descriptors ask for. Other credentials are returned as is.
func (e *Evaluator) limitDisclosure(ev *evaluation, cred []byte) ([]byte, error) {
	if len(ev.limited) == 0 || !e.disclosureSuite(cred) {
		return cred, nil
	}
	var doc any
	if err := json.Unmarshal(cred, &doc); err != nil {
		return nil, err
	}
	out, err := sjson.SetRawBytes(cred, "credentialSubject", []byte("{}"))
	if err != nil {
		return nil, err
	}
	for _, d := range ev.pd.InputDescriptors {
		if !ev.limited[d.ID] || d.Constraints == nil {
			continue
		}
		for _, f := range d.Constraints.Fields {
			for _, p := range f.Path {
				if _, err := jsonpath.Get(p, doc); err != nil {
					continue
				}
				gp, ok := gjsonPath(p)
				if !ok || !strings.HasPrefix(gp, "credentialSubject.") {
					glog.V(3).Infoln("path not disclosed:", p)
					continue
				}
				value := gjson.GetBytes(cred, gp)
				if out, err = sjson.SetRawBytes(out, gp, []byte(value.Raw)); err != nil {
					return nil, err
				}
				break
			}
		}
	}
	return out, nil
}

var bracketRe = regexp.MustCompile(`\[['"]([^'"]+)['"]\]`)

// gjsonPath converts a plain member JSONPath like $.a.b or $['a']['b'] to
// the gjson path. Paths with wildcards, filters or indexes aren't plain.
func gjsonPath(p string) (string, bool) {
	if !strings.HasPrefix(p, "$") || strings.Contains(p, "..") {
		return "", false
	}
	p = bracketRe.ReplaceAllString(p[1:], ".$1")
	p = strings.TrimPrefix(p, ".")
	if p == "" || strings.ContainsAny(p, "[]*?@()") {
		return "", false
	}
	return p, true
}

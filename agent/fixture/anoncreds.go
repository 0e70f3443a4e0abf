// Package fixture runs the test vector pipelines. Every step's output is
// written to the vectors directory before the next step runs.
package fixture

import (
	"encoding/json"
	"errors"

	"github.com/findy-network/findy-test-vectors/agent/ac"
	"github.com/findy-network/findy-test-vectors/agent/vectors"
	"github.com/findy-network/findy-test-vectors/agent/w3c"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

var ErrNotVerified = errors.New("presentation not verified")

// AnonCreds generates the AnonCreds vectors with the engine.
type AnonCreds struct {
	Engine ac.Engine
	Store  *vectors.Store
	Params Params
}

type credDefVector struct {
	CredentialDefinition        json.RawMessage `json:"credentialDefinition"`
	KeyCorrectnessProof         json.RawMessage `json:"keyCorrectnessProof"`
	CredentialDefinitionPrivate json.RawMessage `json:"credentialDefinitionPrivate"`
}

type revRegVector struct {
	RevocationRegistryDefinition        json.RawMessage `json:"revocationRegistryDefinition"`
	RevocationRegistryDefinitionPrivate json.RawMessage `json:"revocationRegistryDefinitionPrivate"`
}

type linkSecretVector struct {
	LinkSecret   json.RawMessage `json:"linkSecret"`
	LinkSecretID string          `json:"linkSecretId"`
}

type credReqVector struct {
	CredentialRequest         json.RawMessage `json:"credentialRequest"`
	CredentialRequestMetadata json.RawMessage `json:"credentialRequestMetadata"`
}

// Run runs the pipeline. It returns ErrNotVerified if the presentation
// doesn't verify with the verification request.
func (a *AnonCreds) Run() (err error) {
	defer err2.Handle(&err, "anoncreds vectors")

	e, s, p := a.Engine, a.Store, a.Params

	glog.V(1).Infoln("creating issuer")
	issuer := try.To1(e.CreateIssuer(p.IssuerSeed))

	glog.V(1).Infoln("creating schema", p.Schema.Name)
	schema := try.To1(e.CreateSchema(issuer, p.Schema))
	try.To(s.Write(vectors.SchemaFile, schema.JSON))

	glog.V(1).Infoln("creating credential definition")
	credDef := try.To1(e.CreateCredentialDefinition(issuer, schema, p.CredDef))
	try.To(s.Write(vectors.CredentialDefinitionFile, credDefVector{
		CredentialDefinition:        credDef.JSON,
		KeyCorrectnessProof:         credDef.KeyCorrectnessProof,
		CredentialDefinitionPrivate: credDef.Private,
	}))

	// the request is restricted to the definition, so it exists only now
	presReq := restricted(p.Request, credDef.ID)
	try.To(s.Write(vectors.PresentationRequestFile, presReq))

	glog.V(1).Infoln("creating revocation registry")
	reg := try.To1(e.CreateRevocationRegistry(issuer, credDef, p.RevReg))
	try.To(s.Write(vectors.RevocationRegistryFile, revRegVector{
		RevocationRegistryDefinition:        reg.JSON,
		RevocationRegistryDefinitionPrivate: reg.Private,
	}))
	try.To(s.Copy(vectors.TailsFile, reg.TailsLocation))

	list := try.To1(e.CreateRevocationStatusList(issuer, reg, p.StatusList))
	try.To(s.Write(vectors.RevocationStatusListFile, list.JSON))

	offer := try.To1(e.CreateCredentialOffer(credDef))
	try.To(s.Write(vectors.CredentialOfferFile, offer.JSON))

	ls := try.To1(e.CreateLinkSecret(p.LinkSecretID))
	try.To(s.Write(vectors.LinkSecretFile, linkSecretVector{
		LinkSecret:   ls.Value,
		LinkSecretID: p.LinkSecretID,
	}))

	credReq := try.To1(e.CreateCredentialRequest(credDef, offer, ls, p.Entropy))
	try.To(s.Write(vectors.CredentialRequestFile, credReqVector{
		CredentialRequest:         credReq.JSON,
		CredentialRequestMetadata: credReq.Metadata,
	}))

	glog.V(1).Infoln("issuing credential to registry index", p.RegistryIndex)
	cred := try.To1(e.IssueCredential(ac.IssueConfig{
		CredDef:       credDef,
		Offer:         offer,
		Request:       credReq,
		Values:        p.Values,
		Registry:      reg,
		StatusList:    list,
		RegistryIndex: p.RegistryIndex,
	}))

	opts := w3c.Options{IssuerID: issuer.ID, IssuanceDate: p.IssuanceDate}
	w3cCred := try.To1(w3c.FromLegacy(cred, opts))
	try.To(s.Write(vectors.W3CCredentialFile, w3cCred))

	opts.Version = w3c.Version2_0
	try.To(s.Write(vectors.W3CV2CredentialFile, try.To1(w3c.FromLegacy(cred, opts))))

	try.To(s.Write(vectors.LegacyCredentialFile, cred.JSON))

	// the holder receives the W3C credential
	received := try.To1(w3cCred.ToLegacy())
	received.RegistryIndex = cred.RegistryIndex
	received = try.To1(e.ProcessCredential(received, credReq, credDef, reg, ls))

	state := try.To1(e.CreateRevocationState(reg, list, received.RegistryIndex))

	glog.V(1).Infoln("creating presentation")
	pres := try.To1(e.CreatePresentation(ac.PresentationInput{
		Request: presReq,
		Credentials: []ac.ProveCredential{{
			Credential: received,
			State:      state,
			Timestamp:  list.Timestamp,
		}},
		Prove:      p.Prove,
		LinkSecret: ls,
		Schemas:    map[string]*ac.Schema{schema.ID: schema},
		CredDefs:   map[string]*ac.CredentialDefinition{credDef.ID: credDef},
	}))
	proof := try.To1(pres.ParseProof())
	opts.Version = w3c.Version1_1
	w3cPres := try.To1(w3c.FromProof(proof, presReq, opts))
	try.To(s.Write(vectors.W3CPresentationFile, w3cPres))

	glog.V(1).Infoln("verifying presentation")
	verReq := restricted(p.VerifyRequest, credDef.ID)
	legacyProof, verReq := try.To2(w3cPres.ToProof(verReq))
	ok := try.To1(e.VerifyPresentation(ac.VerifyInput{
		Presentation: &ac.Presentation{JSON: try.To1(legacyProof.JSON())},
		Request:      verReq,
		Schemas:      map[string]*ac.Schema{schema.ID: schema},
		CredDefs:     map[string]*ac.CredentialDefinition{credDef.ID: credDef},
		RevRegDefs:   map[string]*ac.RevocationRegistry{reg.ID: reg},
		StatusLists:  []*ac.RevocationStatusList{list},
		Overrides: []ac.NonRevokedIntervalOverride{{
			RevRegDefID:                           reg.ID,
			RequestedFromTimestamp:                p.OverrideFrom,
			OverrideRevocationStatusListTimestamp: list.Timestamp,
		}},
	}))
	if !ok {
		return ErrNotVerified
	}
	glog.V(1).Infoln("presentation verified")
	return nil
}

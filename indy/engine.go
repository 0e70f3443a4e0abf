// Package indy implements the AnonCreds engine with libindy. The issuer and
// the holder have their own wallets which are exported when the engine is
// closed. The secret material libindy never reveals is referenced by its
// wallet record in the exports.
package indy

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/findy-network/findy-test-vectors/agent/ac"
	"github.com/findy-network/findy-test-vectors/agent/ssi"
	"github.com/findy-network/findy-test-vectors/agent/utils"
	"github.com/findy-network/findy-test-vectors/method"
	"github.com/findy-network/findy-wrapper-go"
	"github.com/findy-network/findy-wrapper-go/anoncreds"
	"github.com/findy-network/findy-wrapper-go/dto"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
	"github.com/tidwall/gjson"
)

const (
	IssuerWalletExport = "anoncreds-issuer-wallet.export"
	HolderWalletExport = "anoncreds-holder-wallet.export"

	CredDefPrivateRecord = "Indy::CredentialDefinitionPrivateKey"
	RevRegPrivateRecord  = "Indy::RevocationRegistryDefinitionPrivate"
	MasterSecretRecord   = "Indy::MasterSecret"

	defaultSignatureType = "CL"
	defaultRevRegType    = "CL_ACCUM"
)

var (
	ErrRegistryIndex = errors.New("registry index already used")
	ErrUnsupported   = errors.New("not supported by libindy")
)

// WalletRecord references a record in the exported wallet.
type WalletRecord struct {
	Wallet string `json:"wallet"`
	Record string `json:"record"`
	Type   string `json:"type"`
}

type Config struct {
	WorkDir   string // wallet storage
	WalletKey string // RAW key of the wallets, ExportKey or random if not set

	ExportDir string // where wallets are exported on close, no export if empty
	ExportKey string // RAW key of the exports, WalletKey if not set

	KeepWallets bool
}

// Engine is an ac.Engine running on libindy. It isn't safe for concurrent
// use.
type Engine struct {
	cfg Config

	issuerWallet *ssi.Wallet
	holderWallet *ssi.Wallet

	nextIndex map[string]int    // next free credential index per registry
	readers   map[string]int    // tails reader handles per tails dir
	tailsDirs map[string]string // registry ID -> tails dir
}

var _ ac.Engine = (*Engine)(nil)

// New creates new wallets for the run and opens them. Wallets created before
// a failure are closed and removed.
func New(cfg Config) (e *Engine, err error) {
	defer func() {
		if err != nil && e != nil {
			if rerr := e.release(false, false); rerr != nil {
				glog.Errorln("release wallets:", rerr)
			}
			e = nil
		}
	}()
	defer err2.Handle(&err, "new indy engine")

	if cfg.WalletKey == "" {
		cfg.WalletKey = cfg.ExportKey
	}
	if cfg.WalletKey == "" {
		cfg.WalletKey = utils.RawKey(utils.UUID())
	}
	if cfg.ExportKey == "" {
		cfg.ExportKey = cfg.WalletKey
	}
	try.To(os.MkdirAll(cfg.WorkDir, 0o700))

	e = &Engine{
		cfg:          cfg,
		issuerWallet: ssi.NewRawWalletCfg("issuer-"+utils.UUID(), cfg.WalletKey, cfg.WorkDir),
		holderWallet: ssi.NewRawWalletCfg("holder-"+utils.UUID(), cfg.WalletKey, cfg.WorkDir),
		nextIndex:    make(map[string]int),
		readers:      make(map[string]int),
		tailsDirs:    make(map[string]string),
	}
	try.To1(e.issuerWallet.Open())
	try.To1(e.holderWallet.Open())
	return e, nil
}

// ExportKey returns the RAW key the exports are encrypted with.
func (e *Engine) ExportKey() string {
	return e.cfg.ExportKey
}

// Close exports the wallets and writes the export key file if configured,
// closes the wallets, and removes them unless they are kept. Every wallet is
// released even if another one fails.
func (e *Engine) Close() error {
	err := e.release(e.cfg.ExportDir != "", e.cfg.KeepWallets)
	if e.cfg.ExportDir != "" {
		err = errors.Join(err, WriteExportKey(e.cfg.ExportDir, e.cfg.ExportKey))
	}
	if err != nil {
		return fmt.Errorf("close indy engine: %w", err)
	}
	return nil
}

func (e *Engine) release(export, keep bool) error {
	wallets := []struct {
		w      *ssi.Wallet
		export string
	}{
		{e.issuerWallet, IssuerWalletExport},
		{e.holderWallet, HolderWalletExport},
	}
	var errs []error
	for _, w := range wallets {
		if w.w == nil {
			continue
		}
		if w.w.Handle() != 0 {
			if export {
				errs = append(errs, e.export(w.w, w.export))
			}
			errs = append(errs, w.w.Close())
		}
		if !keep {
			errs = append(errs, w.w.Remove())
		}
	}
	return errors.Join(errs...)
}

func (e *Engine) export(w *ssi.Wallet, name string) (err error) {
	defer err2.Handle(&err, "export %s", name)

	try.To(os.MkdirAll(e.cfg.ExportDir, 0o755))
	try.To(w.Export(filepath.Join(e.cfg.ExportDir, name), e.cfg.ExportKey))
	return nil
}

// seed32 returns the seed as libindy wants it: 32 characters.
func seed32(seed string) string {
	if len(seed) == 32 {
		return seed
	}
	sum := sha256.Sum256([]byte(seed))
	return hex.EncodeToString(sum[:16])
}

func (e *Engine) CreateIssuer(seed string) (_ *ac.Issuer, err error) {
	defer err2.Handle(&err, "create issuer")

	d := try.To1(ssi.NewDIDFromSeed(e.issuerWallet, seed32(seed)))
	id := try.To1(method.KeyFromVerKey(d.VerKey()))
	try.To(method.CheckVerKey(id, d.VerKey()))
	glog.V(1).Infoln("issuer:", d.Did(), id)
	return &ac.Issuer{ID: id, LegacyID: d.Did(), VerKey: d.VerKey()}, nil
}

func (e *Engine) CreateSchema(issuer *ac.Issuer, cfg ac.SchemaConfig) (_ *ac.Schema, err error) {
	defer err2.Handle(&err, "create schema")

	s := &ssi.Schema{Name: cfg.Name, Version: cfg.Version, Attrs: cfg.AttrNames}
	s.Create(issuer.LegacyID)
	id := try.To1(s.ValidID())
	return &ac.Schema{ID: id, JSON: json.RawMessage(try.To1(s.JSON()))}, nil
}

func (e *Engine) CreateCredentialDefinition(
	issuer *ac.Issuer,
	schema *ac.Schema,
	cfg ac.CredDefConfig,
) (_ *ac.CredentialDefinition, err error) {
	defer err2.Handle(&err, "create cred def")

	sigType := cfg.SignatureType
	if sigType == "" {
		sigType = defaultSignatureType
	}
	config := dto.ToJSON(map[string]bool{"support_revocation": cfg.SupportRevocation})
	id, credDef, _ := try.To3(ssi.NewFuture(anoncreds.IssuerCreateAndStoreCredentialDef(
		e.issuerWallet.Handle(), issuer.LegacyID, string(schema.JSON), cfg.Tag,
		sigType, config)).Strs())

	// key correctness proof is only available through the offer
	offer := try.To1(ssi.NewFuture(anoncreds.IssuerCreateCredentialOffer(
		e.issuerWallet.Handle(), id)).Str1())

	return &ac.CredentialDefinition{
		ID:                  id,
		SchemaID:            schema.ID,
		JSON:                json.RawMessage(credDef),
		Private:             e.record(IssuerWalletExport, id, CredDefPrivateRecord),
		KeyCorrectnessProof: json.RawMessage(gjson.Get(offer, "key_correctness_proof").Raw),
	}, nil
}

func (e *Engine) CreateRevocationRegistry(
	issuer *ac.Issuer,
	credDef *ac.CredentialDefinition,
	cfg ac.RevRegConfig,
) (_ *ac.RevocationRegistry, err error) {
	defer err2.Handle(&err, "create rev reg")

	typ := cfg.Type
	if typ == "" {
		typ = defaultRevRegType
	}
	try.To(os.MkdirAll(cfg.TailsDir, 0o755))
	writer := try.To1(ssi.NewFuture(openBlobStorageWriter(cfg.TailsDir)).Handle())

	config := fmt.Sprintf(`{"max_cred_num":%d,"issuance_type":"ISSUANCE_BY_DEFAULT"}`,
		cfg.MaxCredNum)
	id, def, entry := try.To3(ssi.NewFuture(issuerCreateAndStoreRevocReg(
		e.issuerWallet.Handle(), issuer.LegacyID, typ, cfg.Tag, credDef.ID,
		config, writer)).Strs())

	e.tailsDirs[id] = cfg.TailsDir
	e.nextIndex[id] = 1

	return &ac.RevocationRegistry{
		ID:            id,
		CredDefID:     credDef.ID,
		JSON:          json.RawMessage(def),
		Private:       e.record(IssuerWalletExport, id, RevRegPrivateRecord),
		Entry:         json.RawMessage(entry),
		TailsLocation: gjson.Get(def, "value.tailsLocation").String(),
		TailsHash:     gjson.Get(def, "value.tailsHash").String(),
		MaxCredNum:    cfg.MaxCredNum,
	}, nil
}

type statusList struct {
	IssuerID           string `json:"issuerId"`
	RevRegDefID        string `json:"revRegDefId"`
	RevocationList     []int  `json:"revocationList"`
	CurrentAccumulator string `json:"currentAccumulator"`
	Timestamp          uint64 `json:"timestamp"`
}

// CreateRevocationStatusList returns the status list of the registry's
// initial state. libindy registries are always issuance by default.
func (e *Engine) CreateRevocationStatusList(
	issuer *ac.Issuer,
	reg *ac.RevocationRegistry,
	cfg ac.StatusListConfig,
) (_ *ac.RevocationStatusList, err error) {
	defer err2.Handle(&err, "create status list")

	if !cfg.IssuanceByDefault {
		return nil, fmt.Errorf("%w: issuance on demand", ErrUnsupported)
	}
	list := statusList{
		IssuerID:           issuer.ID,
		RevRegDefID:        reg.ID,
		RevocationList:     make([]int, reg.MaxCredNum),
		CurrentAccumulator: gjson.GetBytes(reg.Entry, "value.accum").String(),
		Timestamp:          cfg.Timestamp,
	}
	return &ac.RevocationStatusList{
		RevRegDefID: reg.ID,
		Timestamp:   cfg.Timestamp,
		JSON:        try.To1(json.Marshal(list)),
	}, nil
}

func (e *Engine) CreateCredentialOffer(credDef *ac.CredentialDefinition) (_ *ac.CredentialOffer, err error) {
	defer err2.Handle(&err, "create offer")

	offer := try.To1(ssi.NewFuture(anoncreds.IssuerCreateCredentialOffer(
		e.issuerWallet.Handle(), credDef.ID)).Str1())
	return &ac.CredentialOffer{
		SchemaID:  gjson.Get(offer, "schema_id").String(),
		CredDefID: credDef.ID,
		JSON:      json.RawMessage(offer),
	}, nil
}

func (e *Engine) CreateLinkSecret(id string) (_ *ac.LinkSecret, err error) {
	defer err2.Handle(&err, "create link secret")

	id = try.To1(ssi.NewFuture(anoncreds.ProverCreateMasterSecret(
		e.holderWallet.Handle(), id)).Str1())
	return &ac.LinkSecret{
		ID:    id,
		Value: e.record(HolderWalletExport, id, MasterSecretRecord),
	}, nil
}

// CreateCredentialRequest creates the request. The prover DID is derived
// from the entropy.
func (e *Engine) CreateCredentialRequest(
	credDef *ac.CredentialDefinition,
	offer *ac.CredentialOffer,
	ls *ac.LinkSecret,
	entropy string,
) (_ *ac.CredentialRequest, err error) {
	defer err2.Handle(&err, "create cred req")

	req, meta, _ := try.To3(ssi.NewFuture(anoncreds.ProverCreateCredentialReq(
		e.holderWallet.Handle(), utils.ShortDID(entropy), string(offer.JSON),
		string(credDef.JSON), ls.ID)).Strs())
	return &ac.CredentialRequest{
		JSON:     json.RawMessage(req),
		Metadata: json.RawMessage(meta),
	}, nil
}

// IssueCredential issues the credential. libindy takes the registry indexes
// in order, so the indexes before the wanted one are issued first and thrown
// away.
func (e *Engine) IssueCredential(cfg ac.IssueConfig) (_ *ac.Credential, err error) {
	defer err2.Handle(&err, "issue credential")

	values := dto.ToJSON(ac.EncodeValues(cfg.Values))
	cred := &ac.Credential{
		SchemaID:  cfg.Offer.SchemaID,
		CredDefID: cfg.CredDef.ID,
	}
	if cfg.Registry == nil {
		cred.JSON = json.RawMessage(try.To1(ssi.NewFuture(anoncreds.IssuerCreateCredential(
			e.issuerWallet.Handle(), string(cfg.Offer.JSON), string(cfg.Request.JSON),
			values, findy.NullString, findy.NullHandle)).Str1()))
		return cred, nil
	}

	reg := cfg.Registry
	reader := try.To1(e.reader(reg.ID))
	next := e.nextIndex[reg.ID]
	index := cfg.RegistryIndex
	if index == 0 {
		index = next
	}
	if index < next || index > reg.MaxCredNum {
		return nil, fmt.Errorf("%w: %d (next free %d)", ErrRegistryIndex, index, next)
	}
	for ; next <= index; next++ {
		c, revID, _ := try.To3(ssi.NewFuture(anoncreds.IssuerCreateCredential(
			e.issuerWallet.Handle(), string(cfg.Offer.JSON), string(cfg.Request.JSON),
			values, reg.ID, reader)).Strs())
		e.nextIndex[reg.ID] = next + 1
		if next < index {
			glog.V(3).Infoln("skipped registry index", revID)
			continue
		}
		if revID != strconv.Itoa(index) {
			return nil, fmt.Errorf("%w: libindy gave %s, expected %d",
				ErrRegistryIndex, revID, index)
		}
		cred.JSON = json.RawMessage(c)
	}
	cred.RevRegID = reg.ID
	cred.RegistryIndex = index
	return cred, nil
}

// ProcessCredential stores the credential to the holder wallet. The
// returned credential has the wallet referent.
func (e *Engine) ProcessCredential(
	cred *ac.Credential,
	req *ac.CredentialRequest,
	credDef *ac.CredentialDefinition,
	reg *ac.RevocationRegistry,
	ls *ac.LinkSecret,
) (_ *ac.Credential, err error) {
	defer err2.Handle(&err, "process credential")

	revRegDef := findy.NullString
	if reg != nil {
		revRegDef = string(reg.JSON)
	}
	referent := try.To1(ssi.NewFuture(anoncreds.ProverStoreCredential(
		e.holderWallet.Handle(), findy.NullString, string(req.Metadata),
		string(cred.JSON), string(credDef.JSON), revRegDef)).Str1())

	glog.V(3).Infof("credential stored with link secret %s: %s", ls.ID, referent)
	processed := *cred
	processed.Referent = referent
	return &processed, nil
}

// registryDelta is the delta from the empty registry to the status list.
func registryDelta(list *ac.RevocationStatusList) string {
	accum := gjson.GetBytes(list.JSON, "currentAccumulator").String()
	return fmt.Sprintf(`{"ver":"1.0","value":{"accum":%q,"issued":[],"revoked":[]}}`,
		accum)
}

// registryValue is the registry entry of the status list.
func registryValue(list *ac.RevocationStatusList) json.RawMessage {
	accum := gjson.GetBytes(list.JSON, "currentAccumulator").String()
	return json.RawMessage(fmt.Sprintf(`{"ver":"1.0","value":{"accum":%q}}`, accum))
}

func (e *Engine) CreateRevocationState(
	reg *ac.RevocationRegistry,
	list *ac.RevocationStatusList,
	index int,
) (_ *ac.RevocationState, err error) {
	defer err2.Handle(&err, "create rev state")

	reader := try.To1(e.reader(reg.ID))
	state := try.To1(ssi.NewFuture(createRevocationState(reader, string(reg.JSON),
		registryDelta(list), list.Timestamp, index)).Str1())
	return &ac.RevocationState{
		RevRegID:  reg.ID,
		Timestamp: list.Timestamp,
		JSON:      json.RawMessage(state),
	}, nil
}

type requestedCred struct {
	CredID    string  `json:"cred_id"`
	Revealed  *bool   `json:"revealed,omitempty"`
	Timestamp *uint64 `json:"timestamp,omitempty"`
}

type requestedCreds struct {
	SelfAttested map[string]string        `json:"self_attested_attributes"`
	Attributes   map[string]requestedCred `json:"requested_attributes"`
	Predicates   map[string]requestedCred `json:"requested_predicates"`
}

func (e *Engine) CreatePresentation(in ac.PresentationInput) (_ *ac.Presentation, err error) {
	defer err2.Handle(&err, "create presentation")

	reqCreds := requestedCreds{
		SelfAttested: map[string]string{},
		Attributes:   map[string]requestedCred{},
		Predicates:   map[string]requestedCred{},
	}
	revStates := map[string]map[string]json.RawMessage{}
	for _, item := range in.Prove {
		if item.EntryIndex < 0 || item.EntryIndex >= len(in.Credentials) {
			return nil, fmt.Errorf("no credential entry %d for %s",
				item.EntryIndex, item.Referent)
		}
		entry := in.Credentials[item.EntryIndex]
		rc := requestedCred{CredID: entry.Credential.Referent}
		if entry.State != nil {
			ts := entry.Timestamp
			rc.Timestamp = &ts
			states, ok := revStates[entry.State.RevRegID]
			if !ok {
				states = map[string]json.RawMessage{}
				revStates[entry.State.RevRegID] = states
			}
			states[strconv.FormatUint(ts, 10)] = entry.State.JSON
		}
		if item.IsPredicate {
			reqCreds.Predicates[item.Referent] = rc
		} else {
			reveal := item.Reveal
			rc.Revealed = &reveal
			reqCreds.Attributes[item.Referent] = rc
		}
	}
	schemas := map[string]json.RawMessage{}
	for id, s := range in.Schemas {
		schemas[id] = s.JSON
	}
	credDefs := map[string]json.RawMessage{}
	for id, cd := range in.CredDefs {
		credDefs[id] = cd.JSON
	}
	reqJSON := try.To1(in.Request.JSON())

	proof := try.To1(ssi.NewFuture(anoncreds.ProverCreateProof(e.holderWallet.Handle(),
		string(reqJSON), dto.ToJSON(reqCreds), in.LinkSecret.ID,
		dto.ToJSON(schemas), dto.ToJSON(credDefs), dto.ToJSON(revStates))).Str1())
	return &ac.Presentation{JSON: json.RawMessage(proof)}, nil
}

// VerifyPresentation checks the non-revoked intervals with the overrides
// first. libindy only checks that the timestamps exist. A timestamp outside
// the interval isn't an error, the result is false.
func (e *Engine) VerifyPresentation(in ac.VerifyInput) (ok bool, err error) {
	defer err2.Handle(&err, "verify presentation")

	proof := try.To1(in.Presentation.ParseProof())
	if err := ac.CheckNonRevoked(in.Request, proof, in.Overrides); err != nil {
		if errors.Is(err, ac.ErrInvalidTimestamp) {
			glog.V(1).Infoln("presentation not verified:", err)
			return false, nil
		}
		return false, err
	}

	schemas := map[string]json.RawMessage{}
	for id, s := range in.Schemas {
		schemas[id] = s.JSON
	}
	credDefs := map[string]json.RawMessage{}
	for id, cd := range in.CredDefs {
		credDefs[id] = cd.JSON
	}
	revRegDefs := map[string]json.RawMessage{}
	for id, r := range in.RevRegDefs {
		revRegDefs[id] = r.JSON
	}
	revRegs := map[string]map[string]json.RawMessage{}
	for _, list := range in.StatusLists {
		entries, ok := revRegs[list.RevRegDefID]
		if !ok {
			entries = map[string]json.RawMessage{}
			revRegs[list.RevRegDefID] = entries
		}
		entries[strconv.FormatUint(list.Timestamp, 10)] = registryValue(list)
	}
	reqJSON := try.To1(in.Request.JSON())

	return ssi.NewFuture(anoncreds.VerifierVerifyProof(string(reqJSON),
		string(in.Presentation.JSON), dto.ToJSON(schemas), dto.ToJSON(credDefs),
		dto.ToJSON(revRegDefs), dto.ToJSON(revRegs))).Yes()
}

// reader returns the tails reader of the registry. Readers are opened once
// per tails dir.
func (e *Engine) reader(revRegID string) (h int, err error) {
	dir, ok := e.tailsDirs[revRegID]
	if !ok {
		return 0, fmt.Errorf("unknown revocation registry: %s", revRegID)
	}
	if h, ok := e.readers[dir]; ok {
		return h, nil
	}
	h, err = ssi.NewFuture(openBlobStorageReader(dir)).Handle()
	if err != nil {
		return 0, err
	}
	e.readers[dir] = h
	return h, nil
}

func (e *Engine) record(export, id, typ string) json.RawMessage {
	data, _ := json.Marshal(WalletRecord{
		Wallet: strings.TrimSuffix(export, filepath.Ext(export)),
		Record: id,
		Type:   typ,
	})
	return data
}

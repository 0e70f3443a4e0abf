package indy

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/findy-network/findy-test-vectors/agent/ac"
	"github.com/findy-network/findy-test-vectors/agent/ssi"
	"github.com/findy-network/findy-test-vectors/agent/utils"
	"github.com/lainio/err2/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed32(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	const exact = "000000000000000000000000Issuer01"
	assert.Equal(seed32(exact), exact)
	assert.Equal(len(seed32("issuer")), 32)
	assert.Equal(seed32("issuer"), seed32("issuer"))
	assert.That(seed32("issuer") != seed32("holder"))
}

func TestRegistryDelta(t *testing.T) {
	list := &ac.RevocationStatusList{
		RevRegDefID: "rev-reg",
		Timestamp:   12,
		JSON:        json.RawMessage(`{"currentAccumulator":"21 1A"}`),
	}
	require.JSONEq(t, `{"ver":"1.0","value":{"accum":"21 1A","issued":[],"revoked":[]}}`,
		registryDelta(list))
	require.JSONEq(t, `{"ver":"1.0","value":{"accum":"21 1A"}}`,
		string(registryValue(list)))
}

func TestRecord(t *testing.T) {
	e := &Engine{}
	var r WalletRecord
	require.NoError(t, json.Unmarshal(e.record(IssuerWalletExport, "cred-def", CredDefPrivateRecord), &r))
	require.Equal(t, WalletRecord{
		Wallet: "anoncreds-issuer-wallet",
		Record: "cred-def",
		Type:   CredDefPrivateRecord,
	}, r)
}

func TestReader_UnknownRegistry(t *testing.T) {
	e := &Engine{tailsDirs: map[string]string{}, readers: map[string]int{}}
	_, err := e.reader("unknown")
	require.Error(t, err)
}

func TestExportKey(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	dir := filepath.Join(t.TempDir(), "vectors")
	key := utils.RawKey("export")
	assert.NoError(WriteExportKey(dir, key))
	got, err := ReadExportKey(dir)
	assert.NoError(err)
	assert.Equal(got, key)

	assert.Error(WriteExportKey(dir, ""))
	_, err = ReadExportKey(t.TempDir())
	assert.Error(err)
}

func walletDirs(t *testing.T, workDir string) (*ssi.Wallet, *ssi.Wallet) {
	t.Helper()
	key := utils.RawKey("wallet")
	issuer := ssi.NewRawWalletCfg("issuer-test", key, workDir)
	holder := ssi.NewRawWalletCfg("holder-test", key, workDir)
	for _, w := range []*ssi.Wallet{issuer, holder} {
		require.NoError(t, os.MkdirAll(w.UniqueID(), 0o700))
	}
	return issuer, holder
}

func TestClose_ReleasesEveryWallet(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(file, nil, 0o600))

	issuer, holder := walletDirs(t, filepath.Join(dir, "wallets"))
	e := &Engine{
		cfg: Config{
			ExportDir: filepath.Join(file, "vectors"),
			ExportKey: utils.RawKey("export"),
		},
		issuerWallet: issuer,
		holderWallet: holder,
	}
	require.Error(t, e.Close())
	require.False(t, issuer.Exists())
	require.False(t, holder.Exists())
}

func TestRelease_KeepWallets(t *testing.T) {
	issuer, holder := walletDirs(t, t.TempDir())
	e := &Engine{
		cfg:          Config{KeepWallets: true},
		issuerWallet: issuer,
		holderWallet: holder,
	}
	require.NoError(t, e.release(false, true))
	require.True(t, issuer.Exists())
	require.True(t, holder.Exists())

	// failed creation removes the wallets whatever the config says
	require.NoError(t, e.release(false, false))
	require.False(t, issuer.Exists())
	require.False(t, holder.Exists())
}

func TestNew_WorkDirIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0o600))

	e, err := New(Config{WorkDir: file})
	require.Error(t, err)
	require.Nil(t, e)
}

// TestEngine_GeneratedExportKey checks that the random key of the run can be
// read back next to the exports.
func TestEngine_GeneratedExportKey(t *testing.T) {
	if testing.Short() {
		t.Skip("libindy needed")
	}
	dir := t.TempDir()
	workDir := filepath.Join(dir, "wallets")
	exportDir := filepath.Join(dir, "export")
	e, err := New(Config{WorkDir: workDir, ExportDir: exportDir})
	require.NoError(t, err)
	key := e.ExportKey()
	require.NotEmpty(t, key)
	require.NoError(t, e.Close())

	got, err := ReadExportKey(exportDir)
	require.NoError(t, err)
	require.Equal(t, key, got)
	for _, name := range []string{IssuerWalletExport, HolderWalletExport} {
		require.FileExists(t, filepath.Join(exportDir, name))
	}
	entries, err := os.ReadDir(workDir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

// TestEngine runs the whole credential life cycle with libindy.
func TestEngine(t *testing.T) {
	if testing.Short() {
		t.Skip("libindy needed")
	}
	dir := t.TempDir()
	e, err := New(Config{
		WorkDir:   filepath.Join(dir, "wallets"),
		ExportDir: filepath.Join(dir, "export"),
		ExportKey: "6cih1cVgRH8yHD54nEYyPKLmdv67o8QbufxaTHot3Qxp",
	})
	require.NoError(t, err)
	defer func() { require.NoError(t, e.Close()) }()

	issuer, err := e.CreateIssuer("issuer")
	require.NoError(t, err)
	require.Contains(t, issuer.ID, "did:key:z6Mk")

	schema, err := e.CreateSchema(issuer, ac.SchemaConfig{
		Name: "schema-1", Version: "1.0", AttrNames: []string{"name", "age"},
	})
	require.NoError(t, err)

	credDef, err := e.CreateCredentialDefinition(issuer, schema, ac.CredDefConfig{
		Tag: "default", SupportRevocation: true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, credDef.KeyCorrectnessProof)

	reg, err := e.CreateRevocationRegistry(issuer, credDef, ac.RevRegConfig{
		Tag: "default", MaxCredNum: 10, TailsDir: filepath.Join(dir, "tails"),
	})
	require.NoError(t, err)
	require.NotEmpty(t, reg.TailsHash)

	list, err := e.CreateRevocationStatusList(issuer, reg, ac.StatusListConfig{
		IssuanceByDefault: true, Timestamp: 12,
	})
	require.NoError(t, err)

	offer, err := e.CreateCredentialOffer(credDef)
	require.NoError(t, err)
	require.Equal(t, schema.ID, offer.SchemaID)

	ls, err := e.CreateLinkSecret("link secret id")
	require.NoError(t, err)

	req, err := e.CreateCredentialRequest(credDef, offer, ls, "entropy")
	require.NoError(t, err)

	cred, err := e.IssueCredential(ac.IssueConfig{
		CredDef: credDef, Offer: offer, Request: req,
		Values:   map[string]string{"name": "Alex", "age": "28"},
		Registry: reg, StatusList: list, RegistryIndex: 3,
	})
	require.NoError(t, err)
	require.Equal(t, 3, cred.RegistryIndex)

	_, err = e.IssueCredential(ac.IssueConfig{
		CredDef: credDef, Offer: offer, Request: req,
		Values:   map[string]string{"name": "Alex", "age": "28"},
		Registry: reg, StatusList: list, RegistryIndex: 2,
	})
	require.ErrorIs(t, err, ErrRegistryIndex)

	cred, err = e.ProcessCredential(cred, req, credDef, reg, ls)
	require.NoError(t, err)
	require.NotEmpty(t, cred.Referent)

	state, err := e.CreateRevocationState(reg, list, cred.RegistryIndex)
	require.NoError(t, err)

	presReq := &ac.PresentationRequest{
		Name: "pres_req_1", Version: "0.1", Nonce: "726216211516745824455642",
		NonRevoked: ac.NewInterval(13, 200),
		RequestedAttributes: map[string]ac.AttributeInfo{
			"attr1_referent": {Name: "name"},
		},
		RequestedPredicates: map[string]ac.PredicateInfo{
			"predicate1_referent": {Name: "age", PType: ">=", PValue: 18},
		},
	}
	pres, err := e.CreatePresentation(ac.PresentationInput{
		Request: presReq,
		Credentials: []ac.ProveCredential{{
			Credential: cred, State: state, Timestamp: list.Timestamp,
		}},
		Prove: []ac.ProveItem{
			{Referent: "attr1_referent", Reveal: true},
			{Referent: "predicate1_referent", IsPredicate: true},
		},
		LinkSecret: ls,
		Schemas:    map[string]*ac.Schema{schema.ID: schema},
		CredDefs:   map[string]*ac.CredentialDefinition{credDef.ID: credDef},
	})
	require.NoError(t, err)

	in := ac.VerifyInput{
		Presentation: pres,
		Request:      presReq,
		Schemas:      map[string]*ac.Schema{schema.ID: schema},
		CredDefs:     map[string]*ac.CredentialDefinition{credDef.ID: credDef},
		RevRegDefs:   map[string]*ac.RevocationRegistry{reg.ID: reg},
		StatusLists:  []*ac.RevocationStatusList{list},
	}
	ok, err := e.VerifyPresentation(in)
	require.NoError(t, err)
	require.False(t, ok)

	in.Overrides = []ac.NonRevokedIntervalOverride{{
		RevRegDefID:                           reg.ID,
		RequestedFromTimestamp:                13,
		OverrideRevocationStatusListTimestamp: 12,
	}}
	ok, err = e.VerifyPresentation(in)
	require.NoError(t, err)
	require.True(t, ok)
}

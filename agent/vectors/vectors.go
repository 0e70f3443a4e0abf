// Package vectors reads and writes the test vector files.
package vectors

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

const (
	PresentationRequestFile    = "anoncreds-presentation-request.json"
	SchemaFile                 = "anoncreds-schema.json"
	CredentialDefinitionFile   = "anoncreds-credential-definition.json"
	RevocationRegistryFile     = "anoncreds-revocation-registry-definition.json"
	TailsFile                  = "anoncreds-tails-file"
	RevocationStatusListFile   = "anoncreds-revocation-status-list.json"
	CredentialOfferFile        = "anoncreds-credential-offer.json"
	LinkSecretFile             = "anoncreds-link-secret.json"
	CredentialRequestFile      = "anoncreds-credential-request.json"
	W3CCredentialFile          = "w3c-credential-anoncreds.json"
	W3CV2CredentialFile        = "w3c-v2-credential-anoncreds.json"
	LegacyCredentialFile       = "anoncreds-legacy-credential.json"
	W3CPresentationFile        = "w3c-presentation-anoncreds.json"
	PresentationDefinitionFile = "dif-presentation-definition.json"
	PresentationSubmissionFile = "pex-presentation-submission.json"
)

//go:embed dif-presentation-definition.json
var defaultDefinition []byte

// DefaultDefinition returns the presentation definition which is written
// when the vectors directory has none.
func DefaultDefinition() []byte {
	return bytes.Clone(defaultDefinition)
}

// Store is a vectors directory. Files are written with 2 space indentation.
type Store struct {
	dir string

	l       sync.Mutex
	written []string
}

func New(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// Written returns the names of the files written so far in order.
func (s *Store) Written() []string {
	s.l.Lock()
	defer s.l.Unlock()
	return append([]string(nil), s.written...)
}

// Write writes v as indented JSON. Raw JSON (json.RawMessage or []byte) is
// indented as is, everything else is marshaled first.
func (s *Store) Write(name string, v any) (err error) {
	defer err2.Handle(&err, "write vector %s", name)

	var data []byte
	switch v := v.(type) {
	case json.RawMessage:
		data = try.To1(indent(v))
	case []byte:
		data = try.To1(indent(v))
	default:
		data = try.To1(json.MarshalIndent(v, "", "  "))
	}
	try.To(s.writeFile(name, append(data, '\n')))
	return nil
}

func indent(raw []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Copy copies the file as is, e.g. a tails file.
func (s *Store) Copy(name, src string) (err error) {
	defer err2.Handle(&err, "copy vector %s", name)

	in := try.To1(os.Open(src))
	defer in.Close()

	var buf bytes.Buffer
	try.To1(io.Copy(&buf, in))
	try.To(s.writeFile(name, buf.Bytes()))
	return nil
}

func (s *Store) writeFile(name string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(s.Path(name), data, 0o644); err != nil {
		return err
	}
	glog.V(1).Infoln("wrote", s.Path(name))

	s.l.Lock()
	s.written = append(s.written, name)
	s.l.Unlock()
	return nil
}

// Read reads the vector file.
func (s *Store) Read(name string) ([]byte, error) {
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		return nil, fmt.Errorf("read vector %s: %w", name, err)
	}
	return data, nil
}

// Exists tells if the vector file exists.
func (s *Store) Exists(name string) bool {
	_, err := os.Stat(s.Path(name))
	return err == nil
}

// EnsureDefinition writes the default presentation definition if the
// directory has none. It returns true if the file was written.
func (s *Store) EnsureDefinition() (bool, error) {
	if s.Exists(PresentationDefinitionFile) {
		return false, nil
	}
	if err := s.Write(PresentationDefinitionFile, json.RawMessage(defaultDefinition)); err != nil {
		return false, err
	}
	return true, nil
}

package ssi

import (
	"github.com/findy-network/findy-wrapper-go/anoncreds"
	"github.com/findy-network/findy-wrapper-go/dto"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

type Schema struct {
	ID      string   `json:"id,omitempty"`      // ID from libindy
	Name    string   `json:"name,omitempty"`    // name of the schema
	Version string   `json:"version,omitempty"` // version number in string
	Attrs   []string `json:"attrs,omitempty"`   // attribute string list
	Stored  *Future  `json:"-"`                 // libindy result: id, json
}

// Create starts the schema creation for the issuer DID. Results are read from
// the Stored future.
func (s *Schema) Create(DID string) {
	s.Stored = NewFuture(anoncreds.IssuerCreateSchema(DID, s.Name, s.Version,
		dto.ToJSON(s.Attrs)))
}

func (s *Schema) ValidID() (string, error) {
	if s.ID != "" {
		return s.ID, nil
	}
	if s.Stored == nil {
		return "", nil
	}
	id, err := s.Stored.Str1()
	s.ID = id
	return id, err
}

// JSON returns the schema JSON created by libindy.
func (s *Schema) JSON() (sch string, err error) {
	defer err2.Handle(&err, "schema json")

	if s.Stored == nil {
		return "", nil
	}
	_, sch, _ = try.To3(s.Stored.Strs())
	return sch, nil
}

package indy

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// ExportKeyFile is written next to the wallet exports. Without it the
// private material the vectors reference cannot be opened.
const ExportKeyFile = "anoncreds-wallet-key.json"

var ErrNoExportKey = errors.New("no export key")

// ExportKeyInfo tells how the wallet exports are opened.
type ExportKeyInfo struct {
	Key                 string   `json:"key"`
	KeyDerivationMethod string   `json:"keyDerivationMethod"`
	Exports             []string `json:"exports"`
}

// WriteExportKey writes the RAW export key to ExportKeyFile in the dir.
func WriteExportKey(dir, key string) (err error) {
	defer err2.Handle(&err, "write export key")

	if key == "" {
		return ErrNoExportKey
	}
	data := try.To1(json.MarshalIndent(ExportKeyInfo{
		Key:                 key,
		KeyDerivationMethod: "RAW",
		Exports:             []string{IssuerWalletExport, HolderWalletExport},
	}, "", "  "))
	try.To(os.MkdirAll(dir, 0o755))
	try.To(os.WriteFile(filepath.Join(dir, ExportKeyFile), append(data, '\n'), 0o644))
	return nil
}

// ReadExportKey returns the RAW export key written by WriteExportKey.
func ReadExportKey(dir string) (_ string, err error) {
	defer err2.Handle(&err, "read export key")

	var info ExportKeyInfo
	try.To(json.Unmarshal(try.To1(os.ReadFile(filepath.Join(dir, ExportKeyFile))), &info))
	if info.Key == "" {
		return "", ErrNoExportKey
	}
	return info.Key, nil
}

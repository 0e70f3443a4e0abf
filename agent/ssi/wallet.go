package ssi

import (
	"os"
	"path/filepath"

	"github.com/findy-network/findy-wrapper-go/wallet"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// Wallet is a libindy wallet living under its own storage path. Generator
// wallets use RAW keys only.
type Wallet struct {
	Config      wallet.Config
	Credentials wallet.Credentials

	handle int
}

const WalletAlreadyExistsError = 203

func NewRawWalletCfg(name, key, path string) *Wallet {
	return &Wallet{
		Config: wallet.Config{
			ID:            name,
			StorageConfig: &wallet.StorageConfig{Path: path},
		},
		Credentials: wallet.Credentials{
			Key:                 key,
			KeyDerivationMethod: "RAW",
		},
	}
}

// Create creates the wallet. It returns true if the wallet existed already,
// which isn't an error.
func (w *Wallet) Create() (exist bool, err error) {
	r := <-wallet.Create(w.Config, w.Credentials)
	if r.Err() != nil {
		if r.ErrCode() != WalletAlreadyExistsError {
			return false, r.Err()
		}
		return true, nil
	}
	return false, nil
}

// Open creates the wallet if needed and opens it.
func (w *Wallet) Open() (h int, err error) {
	defer err2.Handle(&err, "open wallet")

	exist := try.To1(w.Create())
	if glog.V(3) {
		glog.Infof("opening wallet %s (existed: %v)", w.Config.ID, exist)
	}
	w.handle = try.To1(NewFuture(wallet.Open(w.Config, w.Credentials)).Handle())
	return w.handle, nil
}

func (w *Wallet) Handle() int {
	return w.handle
}

func (w *Wallet) Close() (err error) {
	if w.handle == 0 {
		return nil
	}
	if glog.V(3) {
		glog.Infof("closing wallet(%d): %s", w.handle, w.Config.ID)
	}
	_, err = NewFuture(wallet.Close(w.handle)).Result()
	w.handle = 0
	return err
}

// Export writes an encrypted export of the open wallet to the file. The file
// is encrypted with the RAW key.
func (w *Wallet) Export(filename, key string) (err error) {
	defer err2.Handle(&err, "export wallet")

	// libindy refuses to overwrite an existing export
	if err := os.Remove(filename); err != nil && !os.IsNotExist(err) {
		return err
	}
	exportCreds := wallet.Credentials{
		Path:                filename,
		Key:                 key,
		KeyDerivationMethod: "RAW",
	}
	try.To1(NewFuture(wallet.Export(w.handle, exportCreds)).Result())
	return nil
}

// Remove deletes the wallet storage. The wallet must be closed.
func (w *Wallet) Remove() error {
	return os.RemoveAll(w.UniqueID())
}

func (w *Wallet) Exists() bool {
	_, err := os.Stat(w.UniqueID())
	return !os.IsNotExist(err)
}

func (w *Wallet) UniqueID() string {
	return filepath.Join(w.Config.StorageConfig.Path, w.Config.ID)
}

func (w *Wallet) ID() string {
	return w.Config.ID
}

func (w *Wallet) Key() string {
	return w.Credentials.Key
}

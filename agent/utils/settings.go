package utils

import (
	"path/filepath"

	"github.com/golang/glog"
)

const (
	defaultVectorsDir = "test-vectors"
	defaultTailsDir   = "temp"
)

var Settings = &Hub{}

type Hub struct {
	vectorsDir string // directory where the test vectors are written and read
	tailsDir   string // directory where the tails files are generated
	workDir    string // libindy wallet storage for the generator runs

	keepWallets bool // wallets are deleted after the run unless set
	versionInfo string
}

// VectorsDir returns the directory of the test vectors. It's the relative
// test-vectors directory if nothing is set.
func (h *Hub) VectorsDir() string {
	if h.vectorsDir == "" {
		return defaultVectorsDir
	}
	return h.vectorsDir
}

func (h *Hub) SetVectorsDir(dir string) {
	h.vectorsDir = dir
}

func (h *Hub) TailsDir() string {
	if h.tailsDir == "" {
		return defaultTailsDir
	}
	return h.tailsDir
}

func (h *Hub) SetTailsDir(dir string) {
	h.tailsDir = dir
}

// WorkDir returns the path where generator wallets live. Default is under the
// indy client directory of the user's home.
func (h *Hub) WorkDir() string {
	if h.workDir == "" {
		const workSubPath = "/.indy_client/test-vectors"
		return filepath.Join(IndyBaseDir(), workSubPath)
	}
	return h.workDir
}

func (h *Hub) SetWorkDir(dir string) {
	if glog.V(3) {
		glog.Info("work dir: ", dir)
	}
	h.workDir = dir
}

func (h *Hub) KeepWallets() bool {
	return h.keepWallets
}

func (h *Hub) SetKeepWallets(keep bool) {
	h.keepWallets = keep
}

// SetVersionInfo sets current version info of the tool. It's written to the
// command results.
func (h *Hub) SetVersionInfo(info string) {
	h.versionInfo = info
}

func (h *Hub) VersionInfo() string {
	if h.versionInfo == "" {
		return Version
	}
	return h.versionInfo
}

package indy

/*
#cgo LDFLAGS: -lindy
#include <stdint.h>
#include <stdlib.h>

typedef int32_t indy_handle_t;
typedef int32_t indy_error_t;

extern void revocHandleCb(indy_handle_t, indy_error_t, indy_handle_t);
extern void revocRegCb(indy_handle_t, indy_error_t, char*, char*, char*);
extern void revocStateCb(indy_handle_t, indy_error_t, char*);

indy_error_t indy_open_blob_storage_writer(indy_handle_t command_handle,
	const char* type_, const char* config_json,
	void (*cb)(indy_handle_t, indy_error_t, indy_handle_t));

indy_error_t indy_open_blob_storage_reader(indy_handle_t command_handle,
	const char* type_, const char* config_json,
	void (*cb)(indy_handle_t, indy_error_t, indy_handle_t));

indy_error_t indy_issuer_create_and_store_revoc_reg(indy_handle_t command_handle,
	indy_handle_t wallet_handle, const char* issuer_did,
	const char* revoc_def_type, const char* tag, const char* cred_def_id,
	const char* config_json, indy_handle_t tails_writer_handle,
	void (*cb)(indy_handle_t, indy_error_t, char*, char*, char*));

indy_error_t indy_create_revocation_state(indy_handle_t command_handle,
	indy_handle_t blob_storage_reader_handle, const char* rev_reg_def_json,
	const char* rev_reg_delta_json, long long timestamp,
	const char* cred_rev_id,
	void (*cb)(indy_handle_t, indy_error_t, char*));
*/
import "C"

import (
	"fmt"
	"strconv"
	"sync"
	"unsafe"

	"github.com/findy-network/findy-wrapper-go"
	"github.com/findy-network/findy-wrapper-go/dto"
	"github.com/golang/glog"
)

// blobStorageType is the only blob storage libindy has built in.
const blobStorageType = "default"

// commands maps the libindy command handles of the calls below to their
// result channels. The handles are ours, libindy only passes them back.
var commands = struct {
	sync.Mutex
	next C.indy_handle_t
	m    map[C.indy_handle_t]findy.Channel
}{m: make(map[C.indy_handle_t]findy.Channel)}

func newCommand() (C.indy_handle_t, findy.Channel) {
	commands.Lock()
	defer commands.Unlock()

	commands.next++
	ch := make(findy.Channel, 1)
	commands.m[commands.next] = ch
	return commands.next, ch
}

func popCommand(h C.indy_handle_t) findy.Channel {
	commands.Lock()
	defer commands.Unlock()

	ch := commands.m[h]
	delete(commands.m, h)
	return ch
}

func complete(h C.indy_handle_t, code C.indy_error_t, r dto.Result) {
	ch := popCommand(h)
	if ch == nil {
		glog.Errorf("libindy callback for unknown command %d", h)
		return
	}
	if code != 0 {
		r = dto.Result{Er: dto.Err{
			Code:  int(code),
			Error: fmt.Sprintf("libindy error code: %d", code),
		}}
	}
	ch <- r
}

// started checks the immediate return code of the libindy call. When the call
// didn't start the callback never comes.
func started(h C.indy_handle_t, code C.indy_error_t) {
	if code == 0 {
		return
	}
	complete(h, code, dto.Result{})
}

//export revocHandleCb
func revocHandleCb(h C.indy_handle_t, code C.indy_error_t, handle C.indy_handle_t) {
	r := dto.Result{}
	r.SetHandle(int(handle))
	complete(h, code, r)
}

//export revocRegCb
func revocRegCb(h C.indy_handle_t, code C.indy_error_t, id, def, entry *C.char) {
	complete(h, code, dto.Result{Data: dto.Data{
		Str1: goString(id),
		Str2: goString(def),
		Str3: goString(entry),
	}})
}

//export revocStateCb
func revocStateCb(h C.indy_handle_t, code C.indy_error_t, state *C.char) {
	complete(h, code, dto.Result{Data: dto.Data{Str1: goString(state)}})
}

func goString(s *C.char) string {
	if s == nil {
		return ""
	}
	return C.GoString(s)
}

// blobConfig is the config of the default blob storage.
func blobConfig(tailsDir string) string {
	return dto.ToJSON(map[string]string{
		"base_dir":    tailsDir,
		"uri_pattern": "",
	})
}

// openBlobStorageWriter opens a tails file writer to the directory. Result
// is the writer handle.
func openBlobStorageWriter(tailsDir string) findy.Channel {
	h, ch := newCommand()
	typ := C.CString(blobStorageType)
	defer C.free(unsafe.Pointer(typ))
	cfg := C.CString(blobConfig(tailsDir))
	defer C.free(unsafe.Pointer(cfg))

	started(h, C.indy_open_blob_storage_writer(h, typ, cfg,
		(*[0]byte)(unsafe.Pointer(C.revocHandleCb))))
	return ch
}

// openBlobStorageReader opens a tails file reader to the directory. Result
// is the reader handle.
func openBlobStorageReader(tailsDir string) findy.Channel {
	h, ch := newCommand()
	typ := C.CString(blobStorageType)
	defer C.free(unsafe.Pointer(typ))
	cfg := C.CString(blobConfig(tailsDir))
	defer C.free(unsafe.Pointer(cfg))

	started(h, C.indy_open_blob_storage_reader(h, typ, cfg,
		(*[0]byte)(unsafe.Pointer(C.revocHandleCb))))
	return ch
}

// issuerCreateAndStoreRevocReg creates the revocation registry of the
// credential definition and generates its tails file with the writer. Results
// are id, definition JSON and the initial entry JSON.
func issuerCreateAndStoreRevocReg(
	wallet int,
	issuerDID, revocDefType, tag, credDefID, config string,
	tailsWriter int,
) findy.Channel {
	h, ch := newCommand()
	did := C.CString(issuerDID)
	defer C.free(unsafe.Pointer(did))
	typ := C.CString(revocDefType)
	defer C.free(unsafe.Pointer(typ))
	t := C.CString(tag)
	defer C.free(unsafe.Pointer(t))
	cd := C.CString(credDefID)
	defer C.free(unsafe.Pointer(cd))
	cfg := C.CString(config)
	defer C.free(unsafe.Pointer(cfg))

	started(h, C.indy_issuer_create_and_store_revoc_reg(h,
		C.indy_handle_t(wallet), did, typ, t, cd, cfg,
		C.indy_handle_t(tailsWriter),
		(*[0]byte)(unsafe.Pointer(C.revocRegCb))))
	return ch
}

// createRevocationState creates the revocation state (the witness) of the
// credential at the registry index for the timestamp.
func createRevocationState(
	tailsReader int,
	revRegDef, revRegDelta string,
	timestamp uint64,
	credRevID int,
) findy.Channel {
	h, ch := newCommand()
	def := C.CString(revRegDef)
	defer C.free(unsafe.Pointer(def))
	delta := C.CString(revRegDelta)
	defer C.free(unsafe.Pointer(delta))
	id := C.CString(strconv.Itoa(credRevID))
	defer C.free(unsafe.Pointer(id))

	started(h, C.indy_create_revocation_state(h,
		C.indy_handle_t(tailsReader), def, delta, C.longlong(timestamp), id,
		(*[0]byte)(unsafe.Pointer(C.revocStateCb))))
	return ch
}

//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly || solaris || aix || illumos

package dl

/*
#cgo LDFLAGS: -ldl
#include <dlfcn.h>
#include <stdlib.h>
*/
import "C"

import (
	"unsafe"

	cerrors "coreu/errors"
)

// posixBackend wraps dlopen/dlsym/dlclose/dlerror. There is no pure-Go
// binding for the dl* family, so this file is the one place coreu's
// loader reaches into libc via cgo, per spec.md section 4.8's POSIX
// column.
type posixBackend struct {
	handle  unsafe.Pointer
	lastMsg string
}

func newBackend(path string) (backend, error) {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))

	h := C.dlopen(cpath, C.RTLD_NOW)
	if h == nil {
		return nil, cerrors.New(cerrors.IOFailed, dlerror())
	}
	return &posixBackend{handle: h}, nil
}

func dlerror() string {
	msg := C.dlerror()
	if msg == nil {
		return "dlopen failed"
	}
	return C.GoString(msg)
}

func (b *posixBackend) symbol(name string) (uintptr, error) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))

	C.dlerror() // clear any pending error
	sym := C.dlsym(b.handle, cname)
	if sym == nil {
		if msg := C.dlerror(); msg != nil {
			b.lastMsg = C.GoString(msg)
			return 0, cerrors.New(cerrors.IONotExists, b.lastMsg)
		}
	}
	return uintptr(sym), nil
}

func (b *posixBackend) lastError() string {
	return b.lastMsg
}

func (b *posixBackend) close() error {
	if C.dlclose(b.handle) != 0 {
		return cerrors.New(cerrors.IOFailed, dlerror())
	}
	return nil
}

// refCounted is true on every POSIX target coreu compiles for; the only
// non-ref-counted backend (HP-UX shl_*) has its own file, dl_other.go's
// fallback, not this one.
func (b *posixBackend) refCounted() bool { return true }

//go:build windows

package dl

import (
	"syscall"

	cerrors "coreu/errors"
)

// windowsBackend wraps LoadLibraryA/GetProcAddress/FreeLibrary through
// the standard library's syscall package, matching the teacher's own
// precedent of driving Win32 APIs directly from syscall rather than cgo.
type windowsBackend struct {
	handle  syscall.Handle
	lastMsg string
}

func newBackend(path string) (backend, error) {
	h, err := syscall.LoadLibrary(path)
	if err != nil {
		return nil, cerrors.WithNative(cerrors.IOFailed, int32(errnoOf(err)), "LoadLibraryA failed: "+err.Error())
	}
	return &windowsBackend{handle: h}, nil
}

func (b *windowsBackend) symbol(name string) (uintptr, error) {
	addr, err := syscall.GetProcAddress(b.handle, name)
	if err != nil {
		b.lastMsg = err.Error()
		return 0, cerrors.WithNative(cerrors.IONotExists, int32(errnoOf(err)), "GetProcAddress failed: "+err.Error())
	}
	return addr, nil
}

// lastError formats the most recent backend error the way FormatMessageA
// would: syscall.Errno's own Error() already resolves the Win32 message
// table, so there is no separate formatting step to perform.
func (b *windowsBackend) lastError() string {
	return b.lastMsg
}

func (b *windowsBackend) close() error {
	if err := syscall.FreeLibrary(b.handle); err != nil {
		b.lastMsg = err.Error()
		return cerrors.WithNative(cerrors.IOFailed, int32(errnoOf(err)), "FreeLibrary failed: "+err.Error())
	}
	return nil
}

// refCounted is true on Windows: LoadLibrary increments a per-process
// reference count that FreeLibrary decrements.
func (b *windowsBackend) refCounted() bool { return true }

func errnoOf(err error) uintptr {
	if errno, ok := err.(syscall.Errno); ok {
		return uintptr(errno)
	}
	return 0
}

//go:build windows

package sema

import (
	"golang.org/x/sys/windows"

	cerrors "coreu/errors"
)

// windowsBackend wraps a Win32 named semaphore object (CreateSemaphoreW),
// per spec.md section 4.3's Windows column.
type windowsBackend struct {
	handle windows.Handle
}

func newBackend(platformKey string, initial int, mode Mode) (backend, bool, error) {
	name, err := windows.UTF16PtrFromString(platformKey)
	if err != nil {
		return nil, false, cerrors.Wrap(cerrors.IPCInvalidArgument, "encode semaphore name", err)
	}

	h, createErr := windows.CreateSemaphore(nil, int32(initial), 0x7fffffff, name)
	if createErr != nil {
		return nil, false, cerrors.WithNative(cerrors.IPCFailed, int32(errnoOf(createErr)), "CreateSemaphoreW failed")
	}
	// CreateSemaphoreW succeeds whether or not the object already existed;
	// GetLastError distinguishes the two the way the teacher's Win32
	// wrappers already do for CreateFile/CreateMutex.
	created := windows.GetLastError() != windows.ERROR_ALREADY_EXISTS
	return &windowsBackend{handle: h}, created, nil
}

func (b *windowsBackend) acquire() error {
	ev, err := windows.WaitForSingleObject(b.handle, windows.INFINITE)
	if ev != windows.WAIT_OBJECT_0 {
		if err == nil {
			err = cerrors.New(cerrors.IPCFailed, "WaitForSingleObject failed")
		}
		return err
	}
	return nil
}

func (b *windowsBackend) release() error {
	if err := windows.ReleaseSemaphore(b.handle, 1, nil); err != nil {
		return cerrors.WithNative(cerrors.IPCFailed, int32(errnoOf(err)), "ReleaseSemaphore failed")
	}
	return nil
}

func (b *windowsBackend) close() error {
	if err := windows.CloseHandle(b.handle); err != nil {
		return cerrors.WithNative(cerrors.IPCFailed, int32(errnoOf(err)), "CloseHandle failed")
	}
	return nil
}

// unlink is a no-op on Windows: named kernel objects are reference counted
// by the OS and vanish automatically once every handle to them is closed.
func (b *windowsBackend) unlink() error { return nil }

// needsRecreate is always false: Win32 semaphores have no System-V style
// "removed out from under us" failure mode.
func (b *windowsBackend) needsRecreate(err error) bool { return false }

func errnoOf(err error) uintptr {
	if errno, ok := err.(windows.Errno); ok {
		return uintptr(errno)
	}
	return 0
}

//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package sema

/*
#include <fcntl.h>
#include <semaphore.h>
#include <stdlib.h>
*/
import "C"

import (
	"syscall"
	"unsafe"

	cerrors "coreu/errors"
)

// posixBackend wraps a POSIX named semaphore obtained through sem_open(3).
// There is no pure-Go binding for sem_open/sem_wait/sem_post/sem_close/
// sem_unlink, so this file is the one place coreu reaches into libc via
// cgo, per spec.md section 4.3's POSIX column.
type posixBackend struct {
	name string
	sem  *C.sem_t
}

func newBackend(platformKey string, initial int, mode Mode) (backend, bool, error) {
	cname := C.CString(platformKey)
	defer C.free(unsafe.Pointer(cname))

	if mode == Create {
		C.sem_unlink(cname)
	}

	created := true
	sem, errno := semOpenCreate(cname, initial)
	if sem == nil {
		if errno != syscall.EEXIST {
			return nil, false, cerrors.NewSystemIPC(int(errno), "semaphore operation failed")
		}
		created = false
		sem, errno = semOpenExisting(cname)
		if sem == nil {
			return nil, false, cerrors.NewSystemIPC(int(errno), "semaphore operation failed")
		}
	}
	return &posixBackend{name: platformKey, sem: sem}, created, nil
}

func semOpenCreate(cname *C.char, initial int) (*C.sem_t, syscall.Errno) {
	sem, err := C.sem_open(cname, C.int(C.O_CREAT|C.O_EXCL), C.mode_t(0660), C.uint(initial))
	if sem == nil {
		if errno, ok := err.(syscall.Errno); ok {
			return nil, errno
		}
		return nil, syscall.EIO
	}
	return sem, 0
}

func semOpenExisting(cname *C.char) (*C.sem_t, syscall.Errno) {
	sem, err := C.sem_open(cname, C.int(0))
	if sem == nil {
		if errno, ok := err.(syscall.Errno); ok {
			return nil, errno
		}
		return nil, syscall.EIO
	}
	return sem, 0
}

func (b *posixBackend) acquire() error {
	for {
		_, err := C.sem_wait(b.sem)
		if err == nil {
			return nil
		}
		if errno, ok := err.(syscall.Errno); ok {
			if errno == syscall.EINTR {
				continue
			}
			return cerrors.NewSystemIPC(int(errno), "semaphore operation failed")
		}
		return cerrors.New(cerrors.IPCFailed, "sem_wait failed")
	}
}

func (b *posixBackend) release() error {
	_, err := C.sem_post(b.sem)
	if err == nil {
		return nil
	}
	if errno, ok := err.(syscall.Errno); ok {
		return cerrors.NewSystemIPC(int(errno), "semaphore operation failed")
	}
	return cerrors.New(cerrors.IPCFailed, "sem_post failed")
}

func (b *posixBackend) close() error {
	_, err := C.sem_close(b.sem)
	if err == nil {
		return nil
	}
	if errno, ok := err.(syscall.Errno); ok {
		return cerrors.NewSystemIPC(int(errno), "semaphore operation failed")
	}
	return cerrors.New(cerrors.IPCFailed, "sem_close failed")
}

func (b *posixBackend) unlink() error {
	cname := C.CString(b.name)
	defer C.free(unsafe.Pointer(cname))
	_, err := C.sem_unlink(cname)
	if err == nil {
		return nil
	}
	if errno, ok := err.(syscall.Errno); ok && errno != syscall.ENOENT {
		return cerrors.NewSystemIPC(int(errno), "semaphore operation failed")
	}
	return nil
}

// needsRecreate is always false: POSIX named semaphores are reference
// counted by the kernel, not subject to the System-V "identifier reused"
// failure mode.
func (b *posixBackend) needsRecreate(err error) bool { return false }

//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package shm

/*
#include <fcntl.h>
#include <sys/mman.h>
#include <stdlib.h>
*/
import "C"

import (
	"syscall"
	"unsafe"

	"golang.org/x/sys/unix"

	cerrors "coreu/errors"
)

// posixBackend wraps a POSIX shared-memory object obtained through
// shm_open(3) and mapped with mmap(2). shm_open has no pure-Go binding,
// so this file reaches into libc via cgo the same way sema's POSIX
// backend does for sem_open; the mmap/munmap/ftruncate calls that follow
// are ordinary syscalls already wrapped by golang.org/x/sys/unix.
type posixBackend struct {
	name string
	data []byte
}

func newBackend(platformKey string, size int, mode Mode) (backend, bool, error) {
	cname := C.CString(platformKey)
	defer C.free(unsafe.Pointer(cname))

	if mode == Create {
		C.shm_unlink(cname)
	}

	created := true
	fd, err := C.shm_open(cname, C.int(unix.O_CREAT|unix.O_EXCL|unix.O_RDWR), C.mode_t(0660))
	if fd < 0 {
		errno, ok := err.(syscall.Errno)
		if !ok || errno != syscall.EEXIST {
			return nil, false, cerrors.NewSystemIPC(int(errno), "shm_open failed")
		}
		created = false
		fd, err = C.shm_open(cname, C.int(unix.O_RDWR), C.mode_t(0660))
		if fd < 0 {
			if errno, ok := err.(syscall.Errno); ok {
				return nil, false, cerrors.NewSystemIPC(int(errno), "shm_open failed")
			}
			return nil, false, cerrors.New(cerrors.IPCFailed, "shm_open failed")
		}
	}
	goFd := int(fd)
	defer unix.Close(goFd)

	if created {
		if err := unix.Ftruncate(goFd, int64(size)); err != nil {
			return nil, false, cerrors.NewSystemIPC(int(err.(unix.Errno)), "ftruncate failed")
		}
	} else {
		// The segment already exists: spec.md section 4.4 requires reporting
		// its actual mapped size via fstat rather than trusting the
		// caller's requested size, which may exceed (or undershoot) the
		// real object and SIGBUS on access.
		var st unix.Stat_t
		if err := unix.Fstat(goFd, &st); err != nil {
			return nil, false, cerrors.NewSystemIPC(int(err.(unix.Errno)), "fstat failed")
		}
		size = int(st.Size)
	}

	data, mmapErr := unix.Mmap(goFd, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if mmapErr != nil {
		return nil, false, cerrors.NewSystemIPC(int(mmapErr.(unix.Errno)), "mmap failed")
	}

	return &posixBackend{name: platformKey, data: data}, created, nil
}

func (b *posixBackend) bytes() []byte { return b.data }

func (b *posixBackend) unmap() error {
	if err := unix.Munmap(b.data); err != nil {
		return cerrors.NewSystemIPC(int(err.(unix.Errno)), "munmap failed")
	}
	return nil
}

func (b *posixBackend) unlink() error {
	cname := C.CString(b.name)
	defer C.free(unsafe.Pointer(cname))
	if _, err := C.shm_unlink(cname); err != nil {
		if errno, ok := err.(syscall.Errno); ok && errno != syscall.ENOENT {
			return cerrors.NewSystemIPC(int(errno), "shm_unlink failed")
		}
	}
	return nil
}

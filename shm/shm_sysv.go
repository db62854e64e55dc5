//go:build solaris || aix || illumos

package shm

/*
#include <sys/types.h>
#include <sys/ipc.h>
#include <sys/shm.h>

static int coreu_shmctl_rmid(int shmid) {
	struct shmid_ds ds;
	return shmctl(shmid, IPC_RMID, &ds);
}

static long coreu_shmctl_segsz(int shmid) {
	struct shmid_ds ds;
	if (shmctl(shmid, IPC_STAT, &ds) != 0) {
		return -1;
	}
	return (long)ds.shm_segsz;
}
*/
import "C"

import (
	"syscall"
	"unsafe"

	cerrors "coreu/errors"
	"coreu/key"
)

// sysvBackend wraps a System V shared-memory segment (shmget/shmat/shmdt/
// shmctl), identified by an ftok()-style key derived from a zero-byte
// anchor file, per spec.md section 4.4's System-V column. There is no
// pure-Go binding for these calls on these targets, so this backend
// reaches into libc via cgo the same way sema_sysv.go does.
type sysvBackend struct {
	keyFile string
	shmid   C.int
	addr    unsafe.Pointer
	data    []byte
}

const shmProjectID = 'M'

func newBackend(platformKey string, size int, mode Mode) (backend, bool, error) {
	keyFile := key.DeriveSystemVKeyFilePath(platformKey)
	fileCreated, err := key.EnsureKeyFile(keyFile)
	if err != nil {
		return nil, false, err
	}

	ipcKey, err := key.Ftok(keyFile, shmProjectID)
	if err != nil {
		return nil, false, err
	}

	flags := C.int(0660)
	if mode == Create || fileCreated {
		flags |= C.IPC_CREAT | C.IPC_EXCL
	}

	shmid, errno := cShmget(C.key_t(ipcKey), C.size_t(size), flags)
	created := errno == 0
	if errno != 0 {
		if errno == syscall.EEXIST {
			shmid, errno = cShmget(C.key_t(ipcKey), C.size_t(size), C.int(0660))
		}
		if errno != 0 {
			return nil, false, cerrors.NewSystemIPC(int(errno), "shmget failed")
		}
	}

	addr, attachErr := C.shmat(shmid, nil, 0)
	if attachErr != nil {
		if errno, ok := attachErr.(syscall.Errno); ok {
			return nil, false, cerrors.NewSystemIPC(int(errno), "shmat failed")
		}
		return nil, false, cerrors.New(cerrors.IPCFailed, "shmat failed")
	}

	actual := size
	if !created {
		// The segment already exists: query its real size via IPC_STAT
		// rather than trusting the caller's requested size, per spec.md
		// section 4.4.
		segsz := C.coreu_shmctl_segsz(shmid)
		if segsz < 0 {
			C.shmdt(addr)
			return nil, false, cerrors.New(cerrors.IPCFailed, "shmctl IPC_STAT failed")
		}
		actual = int(segsz)
	}

	data := unsafe.Slice((*byte)(addr), actual)
	return &sysvBackend{keyFile: keyFile, shmid: shmid, addr: addr, data: data}, created, nil
}

func cShmget(key C.key_t, size C.size_t, flags C.int) (C.int, syscall.Errno) {
	id, err := C.shmget(key, size, flags)
	if id < 0 {
		if errno, ok := err.(syscall.Errno); ok {
			return id, errno
		}
		return id, syscall.EIO
	}
	return id, 0
}

func (b *sysvBackend) bytes() []byte { return b.data }

func (b *sysvBackend) unmap() error {
	if _, err := C.shmdt(b.addr); err != nil {
		if errno, ok := err.(syscall.Errno); ok {
			return cerrors.NewSystemIPC(int(errno), "shmdt failed")
		}
	}
	return nil
}

func (b *sysvBackend) unlink() error {
	if _, err := C.coreu_shmctl_rmid(b.shmid); err != nil {
		if errno, ok := err.(syscall.Errno); ok && errno != syscall.EINVAL {
			return cerrors.NewSystemIPC(int(errno), "shmctl IPC_RMID failed")
		}
	}
	return key.RemoveKeyFile(b.keyFile)
}

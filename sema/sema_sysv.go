//go:build solaris || aix || illumos

package sema

/*
#include <sys/types.h>
#include <sys/ipc.h>
#include <sys/sem.h>

static int coreu_semctl_setval(int semid, int val) {
	union semun arg;
	arg.val = val;
	return semctl(semid, 0, SETVAL, arg);
}

static int coreu_semctl_rmid(int semid) {
	union semun arg;
	return semctl(semid, 0, IPC_RMID, arg);
}
*/
import "C"

import (
	"syscall"

	cerrors "coreu/errors"
	"coreu/key"
)

// sysvBackend wraps a single-member System V semaphore set, identified by
// an ftok()-style key derived from a zero-byte anchor file. System V
// objects persist in the kernel independent of any process, so a stale
// set left behind by a crashed owner must be detected and transparently
// recreated — the self-heal path in sema.go — per spec.md sections 4.3
// and 9. libc's semget/semop/semctl have no pure-Go binding on these
// targets, so this backend reaches into libc through cgo the same way
// sema_posix.go does for sem_open.
type sysvBackend struct {
	keyFile string
	semid   C.int
}

const sysvProjectID = 'S'

func newBackend(platformKey string, initial int, mode Mode) (backend, bool, error) {
	keyFile := key.DeriveSystemVKeyFilePath(platformKey)
	fileCreated, err := key.EnsureKeyFile(keyFile)
	if err != nil {
		return nil, false, err
	}

	ipcKey, err := key.Ftok(keyFile, sysvProjectID)
	if err != nil {
		return nil, false, err
	}

	flags := C.int(0660)
	if mode == Create || fileCreated {
		flags |= C.IPC_CREAT | C.IPC_EXCL
	}

	semid, errno := cSemget(C.key_t(ipcKey), 1, flags)
	created := errno == 0
	if errno != 0 {
		if errno == syscall.EEXIST {
			semid, errno = cSemget(C.key_t(ipcKey), 1, C.int(0660))
		}
		if errno != 0 {
			return nil, false, cerrors.NewSystemIPC(int(errno), "semget failed")
		}
	}

	b := &sysvBackend{keyFile: keyFile, semid: semid}
	if created || mode == Create {
		if err := b.setValue(initial); err != nil {
			return nil, false, err
		}
	}
	return b, created, nil
}

func cSemget(key C.key_t, nsems, flags C.int) (C.int, syscall.Errno) {
	id, err := C.semget(key, nsems, flags)
	if id < 0 {
		if errno, ok := err.(syscall.Errno); ok {
			return id, errno
		}
		return id, syscall.EIO
	}
	return id, 0
}

func (b *sysvBackend) setValue(value int) error {
	if _, err := C.coreu_semctl_setval(b.semid, C.int(value)); err != nil {
		if errno, ok := err.(syscall.Errno); ok {
			return cerrors.NewSystemIPC(int(errno), "semctl SETVAL failed")
		}
	}
	return nil
}

func (b *sysvBackend) acquire() error { return b.semop(-1) }
func (b *sysvBackend) release() error { return b.semop(1) }

func (b *sysvBackend) semop(delta int16) error {
	var op C.struct_sembuf
	op.sem_num = 0
	op.sem_op = C.short(delta)
	op.sem_flg = 0
	for {
		_, err := C.semop(b.semid, &op, 1)
		if err == nil {
			return nil
		}
		errno, ok := err.(syscall.Errno)
		if !ok {
			return cerrors.New(cerrors.IPCFailed, "semop failed")
		}
		if errno == syscall.EINTR {
			continue
		}
		return cerrors.NewSystemIPC(int(errno), "semop failed")
	}
}

func (b *sysvBackend) close() error {
	// System V semaphore sets have no per-process close handle; the set
	// lives in the kernel until explicitly removed with IPC_RMID.
	return nil
}

func (b *sysvBackend) unlink() error {
	if _, err := C.coreu_semctl_rmid(b.semid); err != nil {
		if errno, ok := err.(syscall.Errno); ok && errno != syscall.EINVAL {
			return cerrors.NewSystemIPC(int(errno), "semctl IPC_RMID failed")
		}
	}
	return key.RemoveKeyFile(b.keyFile)
}

// needsRecreate reports the two errno values that mean "this semaphore
// set was removed out from under us": EIDRM once the set is gone, EINVAL
// once its slot has been reused for something else entirely.
func (b *sysvBackend) needsRecreate(err error) bool {
	kind, ok := cerrors.GetKind(err)
	if !ok {
		return false
	}
	return kind == cerrors.IPCNotExists || kind == cerrors.IPCInvalidArgument
}

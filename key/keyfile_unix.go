//go:build !windows

package key

import (
	"os"
	"syscall"

	cerrors "coreu/errors"
)

// EnsureKeyFile creates the zero-byte anchor file System-V backends ftok()
// against, at 0640 per spec.md section 6, if it does not already exist.
// It reports whether this call created the file (the spec.md "created"
// flag that controls whether Free should remove the key file too).
func EnsureKeyFile(path string) (created bool, err error) {
	f, openErr := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0640)
	if openErr == nil {
		f.Close()
		return true, nil
	}
	if !os.IsExist(openErr) {
		return false, cerrors.Wrap(cerrors.IPCFailed, "create key file", openErr)
	}
	if _, statErr := os.Stat(path); statErr != nil {
		return false, cerrors.Wrap(cerrors.IPCNotExists, "stat key file", statErr)
	}
	return false, nil
}

// RemoveKeyFile removes a System-V key file created by EnsureKeyFile.
func RemoveKeyFile(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return cerrors.Wrap(cerrors.IPCFailed, "remove key file", err)
	}
	return nil
}

// Ftok reproduces the POSIX ftok() algorithm: combine the low bits of a
// file's device and inode number with a caller-supplied project id into a
// single System-V IPC key. There is no third-party Go binding for this —
// it is a one-line arithmetic formula standardized by POSIX, not a
// library concern (see DESIGN.md).
func Ftok(path string, projectID byte) (int32, error) {
	var st syscall.Stat_t
	if err := syscall.Stat(path, &st); err != nil {
		return 0, cerrors.Wrap(cerrors.IPCNotExists, "stat key file", err)
	}
	key := (int32(projectID) << 24) |
		((int32(st.Dev) & 0xff) << 16) |
		(int32(st.Ino) & 0xffff)
	return key, nil
}

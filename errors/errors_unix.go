//go:build !windows

package errors

import "golang.org/x/sys/unix"

// FromSystemIO maps a POSIX errno to an I/O Kind. Unknown codes collapse
// to IOFailed rather than being surfaced as a raw integer, per spec.md
// section 4.1.
func FromSystemIO(native int) Kind {
	switch unix.Errno(native) {
	case 0:
		return KindNone
	case unix.ENOMEM, unix.ENOBUFS:
		return IONoResources
	case unix.ENODEV, unix.ENXIO:
		return IONotAvailable
	case unix.EACCES, unix.EPERM:
		return IOAccessDenied
	case unix.EISCONN:
		return IOConnected
	case unix.EINPROGRESS, unix.EALREADY:
		return IOInProgress
	case unix.ECONNABORTED:
		return IOAborted
	case unix.EINVAL:
		return IOInvalidArgument
	case unix.EOPNOTSUPP, unix.EPROTONOSUPPORT, unix.EAFNOSUPPORT:
		return IONotSupported
	case unix.ETIMEDOUT:
		return IOTimedOut
	case unix.EWOULDBLOCK:
		return IOWouldBlock
	case unix.EADDRINUSE:
		return IOAddressInUse
	case unix.ECONNREFUSED:
		return IOConnectionRefused
	case unix.ENOTCONN:
		return IONotConnected
	case unix.EDQUOT:
		return IOQuota
	case unix.EISDIR:
		return IOIsDirectory
	case unix.ENOTDIR:
		return IONotDirectory
	case unix.ENAMETOOLONG:
		return IONameTooLong
	case unix.EEXIST:
		return IOExists
	case unix.ENOENT:
		return IONotExists
	case unix.ENFILE, unix.EMFILE:
		return IONoMore
	default:
		// ENOTSUP shares EOPNOTSUPP's value on some hosts (Linux), so it
		// cannot be a case of its own above.
		if unix.Errno(native) == unix.ENOTSUP {
			return IONotSupported
		}
		return IOFailed
	}
}

// FromSystemIPC maps a POSIX errno to an IPC Kind.
func FromSystemIPC(native int) Kind {
	switch unix.Errno(native) {
	case 0:
		return KindNone
	case unix.EACCES, unix.EPERM:
		return IPCAccess
	case unix.EEXIST:
		return IPCExists
	case unix.ENOENT, unix.EIDRM:
		return IPCNotExists
	case unix.ENOMEM, unix.ENOSPC:
		return IPCNoResources
	case unix.EOVERFLOW:
		return IPCOverflow
	case unix.ENAMETOOLONG:
		return IPCNameTooLong
	case unix.EINVAL:
		return IPCInvalidArgument
	case unix.ENOSYS, unix.ENOTSUP:
		return IPCNotImplemented
	case unix.EDEADLK:
		return IPCDeadlock
	default:
		return IPCFailed
	}
}

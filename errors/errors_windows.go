//go:build windows

package errors

import "golang.org/x/sys/windows"

// FromSystemIO maps a Win32/Winsock error code to an I/O Kind.
func FromSystemIO(native int) Kind {
	switch windows.Errno(native) {
	case 0:
		return KindNone
	case windows.ERROR_NOT_ENOUGH_MEMORY, windows.ERROR_OUTOFMEMORY:
		return IONoResources
	case windows.ERROR_FILE_NOT_FOUND, windows.ERROR_DEV_NOT_EXIST:
		return IONotAvailable
	case windows.ERROR_ACCESS_DENIED:
		return IOAccessDenied
	case windows.WSAEISCONN:
		return IOConnected
	case windows.WSAEINPROGRESS, windows.WSAEALREADY:
		return IOInProgress
	case windows.WSAECONNABORTED:
		return IOAborted
	case windows.ERROR_INVALID_PARAMETER, windows.WSAEINVAL:
		return IOInvalidArgument
	case windows.WSAEOPNOTSUPP, windows.WSAEPROTONOSUPPORT, windows.WSAEAFNOSUPPORT:
		return IONotSupported
	case windows.WSAETIMEDOUT:
		return IOTimedOut
	case windows.WSAEWOULDBLOCK:
		return IOWouldBlock
	case windows.WSAEADDRINUSE:
		return IOAddressInUse
	case windows.WSAECONNREFUSED:
		return IOConnectionRefused
	case windows.WSAENOTCONN:
		return IONotConnected
	case windows.ERROR_DISK_QUOTA_EXCEEDED:
		return IOQuota
	case windows.ERROR_DIRECTORY:
		return IONotDirectory
	case windows.ERROR_FILENAME_EXCED_RANGE:
		return IONameTooLong
	case windows.ERROR_FILE_EXISTS, windows.ERROR_ALREADY_EXISTS:
		return IOExists
	case windows.ERROR_PATH_NOT_FOUND:
		return IONotExists
	case windows.ERROR_TOO_MANY_OPEN_FILES:
		return IONoMore
	case windows.ERROR_CALL_NOT_IMPLEMENTED:
		return IONotImplemented
	default:
		return IOFailed
	}
}

// FromSystemIPC maps a Win32 error code to an IPC Kind. Windows has no
// distinct IPC errno space; named-object creation failures surface
// through the same GetLastError() register as ordinary I/O.
func FromSystemIPC(native int) Kind {
	switch windows.Errno(native) {
	case 0:
		return KindNone
	case windows.ERROR_ACCESS_DENIED:
		return IPCAccess
	case windows.ERROR_ALREADY_EXISTS:
		return IPCExists
	case windows.ERROR_FILE_NOT_FOUND:
		return IPCNotExists
	case windows.ERROR_NOT_ENOUGH_MEMORY, windows.ERROR_OUTOFMEMORY:
		return IPCNoResources
	case windows.ERROR_FILENAME_EXCED_RANGE:
		return IPCNameTooLong
	case windows.ERROR_INVALID_PARAMETER:
		return IPCInvalidArgument
	case windows.ERROR_CALL_NOT_IMPLEMENTED:
		return IPCNotImplemented
	default:
		return IPCFailed
	}
}

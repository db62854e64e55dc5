// Package errors implements the two-domain error taxonomy shared by every
// component of coreu: a closed set of domain-tagged Kind values, a mapping
// from native platform error codes to kinds (FromSystemIO/FromSystemIPC;
// there is no mapping from a Kind back to a native code), and the
// "set-if-empty" propagation rule that lets the innermost failing frame
// stay authoritative.
package errors

import (
	"errors"
	"fmt"
)

// Domain partitions the Kind space. It is derived from a Kind's numeric
// code, never stored directly on an Error.
type Domain int

const (
	// DomainNone is the domain of the zero Kind.
	DomainNone Domain = iota
	// DomainIO is the domain of socket, file and general I/O failures.
	DomainIO
	// DomainIPC is the domain of semaphore, shared-memory and ring-buffer failures.
	DomainIPC
)

func (d Domain) String() string {
	switch d {
	case DomainIO:
		return "io"
	case DomainIPC:
		return "ipc"
	default:
		return "none"
	}
}

// Kind is a closed, domain-tagged error classification. Code 0 means no
// error; 500..599 is the I/O domain; 600..699 is the IPC domain. Unknown
// native codes always collapse to the domain's *_FAILED kind rather than
// being reported as a miscellaneous code.
type Kind int32

// Domain returns the domain this Kind belongs to, derived from its range.
func (k Kind) Domain() Domain {
	switch {
	case k == KindNone:
		return DomainNone
	case k >= 500 && k <= 599:
		return DomainIO
	case k >= 600 && k <= 699:
		return DomainIPC
	default:
		return DomainNone
	}
}

// I/O domain kinds, per spec.md section 4.1.
const (
	KindNone Kind = 0

	IONoResources Kind = 500 + iota
	IONotAvailable
	IOAccessDenied
	IOConnected
	IOInProgress
	IOAborted
	IOInvalidArgument
	IONotSupported
	IOTimedOut
	IOWouldBlock
	IOAddressInUse
	IOConnectionRefused
	IONotConnected
	IOQuota
	IOIsDirectory
	IONotDirectory
	IONameTooLong
	IOExists
	IONotExists
	IONoMore
	IONotImplemented
	IOFailed
)

// IPC domain kinds, per spec.md section 4.1.
const (
	IPCAccess Kind = 600 + iota
	IPCExists
	IPCNotExists
	IPCNoResources
	IPCOverflow
	IPCNameTooLong
	IPCInvalidArgument
	IPCNotImplemented
	IPCDeadlock
	IPCFailed
)

var kindNames = map[Kind]string{
	KindNone: "none",

	IONoResources:       "io_no_resources",
	IONotAvailable:      "io_not_available",
	IOAccessDenied:      "io_access_denied",
	IOConnected:         "io_connected",
	IOInProgress:        "io_in_progress",
	IOAborted:           "io_aborted",
	IOInvalidArgument:   "io_invalid_argument",
	IONotSupported:      "io_not_supported",
	IOTimedOut:          "io_timed_out",
	IOWouldBlock:        "io_would_block",
	IOAddressInUse:      "io_address_in_use",
	IOConnectionRefused: "io_connection_refused",
	IONotConnected:      "io_not_connected",
	IOQuota:             "io_quota",
	IOIsDirectory:       "io_is_directory",
	IONotDirectory:      "io_not_directory",
	IONameTooLong:       "io_nametoolong",
	IOExists:            "io_exists",
	IONotExists:         "io_not_exists",
	IONoMore:            "io_no_more",
	IONotImplemented:    "io_not_implemented",
	IOFailed:            "io_failed",

	IPCAccess:          "ipc_access",
	IPCExists:          "ipc_exists",
	IPCNotExists:       "ipc_not_exists",
	IPCNoResources:     "ipc_no_resources",
	IPCOverflow:        "ipc_overflow",
	IPCNameTooLong:     "ipc_nametoolong",
	IPCInvalidArgument: "ipc_invalid_argument",
	IPCNotImplemented:  "ipc_not_implemented",
	IPCDeadlock:        "ipc_deadlock",
	IPCFailed:          "ipc_failed",
}

// String returns a stable, lowercase name for the kind. Unknown kinds
// report "unknown" rather than panicking, matching the "collapse to
// *_FAILED" philosophy applied one level up.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Error is the value every fallible coreu call reports on failure. Message
// is always English and never localized, per spec.md section 7.
type Error struct {
	Code       Kind
	NativeCode int32
	Message    string

	// wrapped is an optional underlying cause, used the way the teacher's
	// ContainerError.Err chains into the originating error.
	wrapped error
}

// New creates an Error with no native code and no wrapped cause.
func New(kind Kind, message string) *Error {
	return &Error{Code: kind, Message: message}
}

// WithNative creates an Error carrying the native platform code that
// produced it.
func WithNative(kind Kind, nativeCode int32, message string) *Error {
	return &Error{Code: kind, NativeCode: nativeCode, Message: message}
}

// Wrap creates an Error of the given kind around an underlying cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Code: kind, Message: message, wrapped: cause}
}

// Domain reports the domain of this error's Kind.
func (e *Error) Domain() Domain {
	if e == nil {
		return DomainNone
	}
	return e.Code.Domain()
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.NativeCode != 0 {
		msg += fmt.Sprintf(" (native=%d)", e.NativeCode)
	}
	if e.wrapped != nil {
		msg += fmt.Sprintf(": %v", e.wrapped)
	}
	return msg
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.wrapped
}

// Is reports whether target is an *Error with the same Kind.
func (e *Error) Is(target error) bool {
	if e == nil {
		return target == nil
	}
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// IsKind reports whether err is a coreu Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == kind
	}
	return false
}

// GetKind extracts the Kind of a coreu Error, if err is one.
func GetKind(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return KindNone, false
}

// NewSystemIO builds an Error from a native I/O errno, classifying it via
// FromSystemIO.
func NewSystemIO(native int, message string) *Error {
	return WithNative(FromSystemIO(native), int32(native), message)
}

// NewSystemIPC builds an Error from a native IPC errno, classifying it via
// FromSystemIPC.
func NewSystemIPC(native int, message string) *Error {
	return WithNative(FromSystemIPC(native), int32(native), message)
}

// SetIfEmpty implements the "set-if-empty" out-pointer protocol of
// spec.md sections 4.1 and 7: the first error produced in a call chain
// wins, so an outer frame must never clobber a cause an inner frame
// already recorded.
func SetIfEmpty(dst *error, err error) {
	if dst == nil || err == nil {
		return
	}
	if *dst == nil {
		*dst = err
	}
}

// Re-exported for callers that want to use errors.Is/As/Unwrap against
// coreu errors without importing the standard library package separately,
// matching the teacher's own re-export convention.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
)

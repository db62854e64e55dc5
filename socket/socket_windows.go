//go:build windows

package socket

import (
	"time"

	"golang.org/x/sys/windows"

	cerrors "coreu/errors"
	"coreu/sockaddr"
)

// descriptor is a Winsock socket handle.
type descriptor = windows.Handle

const ioBackendName = "windows"

func newIO() netIO { return windowsIO{} }
func newWaiter() conditionWaiter { return wsaPollWaiter{} }

type windowsIO struct{}

func toSockType(t Type) int32 {
	switch t {
	case Datagram:
		return windows.SOCK_DGRAM
	case SeqPacket:
		return windows.SOCK_SEQPACKET
	default:
		return windows.SOCK_STREAM
	}
}

func toFamily(f Family) int32 {
	if f == sockaddr.FamilyInet6 {
		return windows.AF_INET6
	}
	return windows.AF_INET
}

func errnoOf(err error) uintptr {
	if errno, ok := err.(windows.Errno); ok {
		return uintptr(errno)
	}
	return 0
}

func (windowsIO) socket(family Family, typ Type, protocol int) (descriptor, error) {
	fd, err := windows.Socket(int(toFamily(family)), int(toSockType(typ)), protocol)
	if err != nil {
		return windows.InvalidHandle, cerrors.WithNative(cerrors.FromSystemIO(int(errnoOf(err))), int32(errnoOf(err)), "socket failed")
	}
	return fd, nil
}

// setCloseOnExec is a no-op: Winsock sockets do not inherit into child
// processes unless bInheritHandle is explicitly requested at creation,
// which this package never does.
func (windowsIO) setCloseOnExec(d descriptor) error { return nil }

// setNoSigpipe is a no-op: SIGPIPE does not exist on Windows.
func (windowsIO) setNoSigpipe(d descriptor) error { return nil }

func (windowsIO) setNonblocking(d descriptor) error {
	mode := uint32(1)
	if err := windows.IoctlSocket(d, windows.FIONBIO, &mode); err != nil {
		return cerrors.WithNative(cerrors.IOFailed, int32(errnoOf(err)), "ioctlsocket FIONBIO failed")
	}
	return nil
}

func (windowsIO) bind(d descriptor, addr *sockaddr.Address, allowReuse bool) error {
	if allowReuse && addr.Family != 0 {
		// SO_REUSEADDR only applies to datagram sockets on Windows; the
		// socket type is not visible here, so Socket.Bind passes
		// allowReuse as false for every non-datagram socket.
		windows.SetsockoptInt(d, windows.SOL_SOCKET, windows.SO_REUSEADDR, 1)
	}
	native, err := addr.ToNative()
	if err != nil {
		return err
	}
	if err := windows.Bind(d, native); err != nil {
		return cerrors.WithNative(cerrors.FromSystemIO(int(errnoOf(err))), int32(errnoOf(err)), "bind failed")
	}
	return nil
}

func (windowsIO) listen(d descriptor, backlog int) error {
	if err := windows.Listen(d, backlog); err != nil {
		return cerrors.WithNative(cerrors.FromSystemIO(int(errnoOf(err))), int32(errnoOf(err)), "listen failed")
	}
	return nil
}

func (windowsIO) accept(d descriptor) (descriptor, *sockaddr.Address, error) {
	nfd, sa, err := windows.Accept(d)
	if err != nil {
		return windows.InvalidHandle, nil, cerrors.WithNative(cerrors.FromSystemIO(int(errnoOf(err))), int32(errnoOf(err)), "accept failed")
	}
	mode := uint32(1)
	if err := windows.IoctlSocket(nfd, windows.FIONBIO, &mode); err != nil {
		windows.Closesocket(nfd)
		return windows.InvalidHandle, nil, cerrors.WithNative(cerrors.IOFailed, int32(errnoOf(err)), "ioctlsocket FIONBIO failed")
	}
	peer, convErr := sockaddr.NewFromNative(sa)
	if convErr != nil {
		return nfd, nil, nil
	}
	return nfd, peer, nil
}

func (windowsIO) connect(d descriptor, addr *sockaddr.Address) error {
	native, err := addr.ToNative()
	if err != nil {
		return err
	}
	if err := windows.Connect(d, native); err != nil {
		return cerrors.WithNative(cerrors.FromSystemIO(int(errnoOf(err))), int32(errnoOf(err)), "connect failed")
	}
	return nil
}

func (windowsIO) checkConnectResult(d descriptor) error {
	errno, err := windows.GetsockoptInt(d, windows.SOL_SOCKET, windows.SO_ERROR)
	if err != nil {
		return cerrors.WithNative(cerrors.IOFailed, int32(errnoOf(err)), "getsockopt SO_ERROR failed")
	}
	if errno != 0 {
		return cerrors.WithNative(cerrors.FromSystemIO(errno), int32(errno), "connect failed asynchronously")
	}
	return nil
}

func (windowsIO) send(d descriptor, buf []byte) (int, error) {
	n, err := windows.Send(d, buf, 0)
	if err != nil {
		return -1, cerrors.WithNative(cerrors.FromSystemIO(int(errnoOf(err))), int32(errnoOf(err)), "send failed")
	}
	return n, nil
}

func (windowsIO) sendTo(d descriptor, addr *sockaddr.Address, buf []byte) (int, error) {
	native, err := addr.ToNative()
	if err != nil {
		return -1, err
	}
	if err := windows.Sendto(d, buf, 0, native); err != nil {
		return -1, cerrors.WithNative(cerrors.FromSystemIO(int(errnoOf(err))), int32(errnoOf(err)), "sendto failed")
	}
	return len(buf), nil
}

func (windowsIO) receive(d descriptor, buf []byte) (int, error) {
	n, err := windows.Recv(d, buf, 0)
	if err != nil {
		return -1, cerrors.WithNative(cerrors.FromSystemIO(int(errnoOf(err))), int32(errnoOf(err)), "receive failed")
	}
	return n, nil
}

func (windowsIO) receiveFrom(d descriptor, buf []byte) (int, *sockaddr.Address, error) {
	n, sa, err := windows.Recvfrom(d, buf, 0)
	if err != nil {
		return -1, nil, cerrors.WithNative(cerrors.FromSystemIO(int(errnoOf(err))), int32(errnoOf(err)), "recvfrom failed")
	}
	from, convErr := sockaddr.NewFromNative(sa)
	if convErr != nil {
		return n, nil, nil
	}
	return n, from, nil
}

func (windowsIO) shutdown(d descriptor, read, write bool) error {
	how := windows.SHUT_RDWR
	switch {
	case read && !write:
		how = windows.SHUT_RD
	case write && !read:
		how = windows.SHUT_WR
	}
	if err := windows.Shutdown(d, how); err != nil {
		return cerrors.WithNative(cerrors.FromSystemIO(int(errnoOf(err))), int32(errnoOf(err)), "shutdown failed")
	}
	return nil
}

func (windowsIO) close(d descriptor) error {
	if err := windows.Closesocket(d); err != nil {
		return cerrors.WithNative(cerrors.FromSystemIO(int(errnoOf(err))), int32(errnoOf(err)), "closesocket failed")
	}
	return nil
}

func (windowsIO) setKeepalive(d descriptor, on bool) error {
	v := 0
	if on {
		v = 1
	}
	if err := windows.SetsockoptInt(d, windows.SOL_SOCKET, windows.SO_KEEPALIVE, v); err != nil {
		return cerrors.WithNative(cerrors.IOFailed, int32(errnoOf(err)), "setsockopt SO_KEEPALIVE failed")
	}
	return nil
}

func (windowsIO) setBufferSize(d descriptor, dir Direction, bytes int) error {
	opt := windows.SO_RCVBUF
	if dir == DirWrite {
		opt = windows.SO_SNDBUF
	}
	if err := windows.SetsockoptInt(d, windows.SOL_SOCKET, opt, bytes); err != nil {
		return cerrors.WithNative(cerrors.IOFailed, int32(errnoOf(err)), "setsockopt buffer size failed")
	}
	return nil
}

func (windowsIO) isWouldBlock(err error) bool {
	return cerrors.IsKind(err, cerrors.IOWouldBlock) || cerrors.IsKind(err, cerrors.IOFailed) && errnoOf(err) == uintptr(windows.WSAEWOULDBLOCK)
}

func (windowsIO) isInProgress(err error) bool {
	return cerrors.IsKind(err, cerrors.IOInProgress)
}

func (windowsIO) isInterrupted(err error) bool {
	e, ok := err.(*cerrors.Error)
	return ok && e.NativeCode == int32(windows.WSAEINTR)
}

// wsaPollWaiter implements io_condition_wait via WSAPoll, the real
// ecosystem-wrapped equivalent of the WSAEventSelect/WSAWaitForMultipleEvents
// pair: golang.org/x/sys/windows already exposes WSAPoll, so coreu uses it
// instead of hand-rolling a syscall.NewLazyDLL binding for the lower-level
// event API (see DESIGN.md).
type wsaPollWaiter struct{}

func (wsaPollWaiter) wait(d descriptor, dir Direction, timeout time.Duration) error {
	events := int16(windows.POLLRDNORM)
	if dir == DirWrite {
		events = windows.POLLWRNORM
	}
	ms := int32(-1)
	if timeout > 0 {
		ms = int32(timeout / time.Millisecond)
	}
	fds := []windows.WSAPollFd{{Fd: d, Events: events}}
	n, err := windows.WSAPoll(fds, ms)
	if err != nil {
		return cerrors.WithNative(cerrors.IOFailed, int32(errnoOf(err)), "WSAPoll failed")
	}
	if n == 0 {
		return cerrors.New(cerrors.IOTimedOut, "io_condition_wait timed out")
	}
	return nil
}

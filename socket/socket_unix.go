//go:build !windows

package socket

import (
	"time"
	"unsafe"

	"golang.org/x/sys/unix"

	cerrors "coreu/errors"
	"coreu/platform"
	"coreu/sockaddr"
)

// descriptor is a raw file descriptor on every non-Windows target.
type descriptor = int

const ioBackendName = "unix"

func newIO() netIO { return unixIO{} }

func newWaiter() conditionWaiter {
	if platform.Features().HasPoll {
		return pollWaiter{}
	}
	return selectWaiter{}
}

type unixIO struct{}

func toSockType(t Type) int {
	switch t {
	case Datagram:
		return unix.SOCK_DGRAM
	case SeqPacket:
		return unix.SOCK_SEQPACKET
	default:
		return unix.SOCK_STREAM
	}
}

func toFamily(f Family) int {
	if f == sockaddr.FamilyInet6 {
		return unix.AF_INET6
	}
	return unix.AF_INET
}

func (unixIO) socket(family Family, typ Type, protocol int) (descriptor, error) {
	sockType := toSockType(typ)
	if platform.Features().HasSockCloexec {
		sockType |= unix.SOCK_CLOEXEC
	}
	fd, err := unix.Socket(toFamily(family), sockType, protocol)
	if err != nil {
		return -1, cerrors.NewSystemIO(int(err.(unix.Errno)), "socket failed")
	}
	return fd, nil
}

func (unixIO) setNonblocking(d descriptor) error {
	if err := unix.SetNonblock(d, true); err != nil {
		return cerrors.NewSystemIO(int(err.(unix.Errno)), "set nonblocking failed")
	}
	return nil
}

func (unixIO) setCloseOnExec(d descriptor) error {
	_, err := unix.FcntlInt(uintptr(d), unix.F_SETFD, unix.FD_CLOEXEC)
	if err != nil {
		return cerrors.NewSystemIO(int(err.(unix.Errno)), "fcntl FD_CLOEXEC failed")
	}
	return nil
}

func (unixIO) setNoSigpipe(d descriptor) error {
	if !platform.Features().HasSoNoSigpipe {
		return nil
	}
	if err := unix.SetsockoptInt(d, unix.SOL_SOCKET, soNoSigpipe, 1); err != nil {
		return cerrors.NewSystemIO(int(err.(unix.Errno)), "setsockopt SO_NOSIGPIPE failed")
	}
	return nil
}

func (unixIO) bind(d descriptor, addr *sockaddr.Address, allowReuse bool) error {
	if allowReuse {
		unix.SetsockoptInt(d, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
		if platform.Features().HasSoReuseport {
			unix.SetsockoptInt(d, unix.SOL_SOCKET, unix.SO_REUSEPORT, 1)
		}
	}
	native, err := addr.ToNative()
	if err != nil {
		return err
	}
	if err := unix.Bind(d, native); err != nil {
		return cerrors.NewSystemIO(int(err.(unix.Errno)), "bind failed")
	}
	return nil
}

func (unixIO) listen(d descriptor, backlog int) error {
	if err := unix.Listen(d, backlog); err != nil {
		return cerrors.NewSystemIO(int(err.(unix.Errno)), "listen failed")
	}
	return nil
}

func (io unixIO) accept(d descriptor) (descriptor, *sockaddr.Address, error) {
	nfd, sa, err := unix.Accept(d)
	if err != nil {
		return -1, nil, cerrors.NewSystemIO(int(err.(unix.Errno)), "accept failed")
	}
	if err := unix.SetNonblock(nfd, true); err != nil {
		unix.Close(nfd)
		return -1, nil, cerrors.NewSystemIO(int(err.(unix.Errno)), "set nonblocking failed")
	}
	peer, err := sockaddr.NewFromNative(sa)
	if err != nil {
		return nfd, nil, nil
	}
	return nfd, peer, nil
}

func (unixIO) connect(d descriptor, addr *sockaddr.Address) error {
	native, err := addr.ToNative()
	if err != nil {
		return err
	}
	if err := unix.Connect(d, native); err != nil {
		return cerrors.NewSystemIO(int(err.(unix.Errno)), "connect failed")
	}
	return nil
}

func (unixIO) checkConnectResult(d descriptor) error {
	errno, err := unix.GetsockoptInt(d, unix.SOL_SOCKET, unix.SO_ERROR)
	if err != nil {
		return cerrors.NewSystemIO(int(err.(unix.Errno)), "getsockopt SO_ERROR failed")
	}
	if errno != 0 {
		return cerrors.NewSystemIO(errno, "connect failed asynchronously")
	}
	return nil
}

func (unixIO) send(d descriptor, buf []byte) (int, error) {
	n, err := unix.Write(d, buf)
	if err != nil {
		return -1, cerrors.NewSystemIO(int(err.(unix.Errno)), "send failed")
	}
	return n, nil
}

func (unixIO) sendTo(d descriptor, addr *sockaddr.Address, buf []byte) (int, error) {
	native, err := addr.ToNative()
	if err != nil {
		return -1, err
	}
	if err := unix.Sendto(d, buf, 0, native); err != nil {
		return -1, cerrors.NewSystemIO(int(err.(unix.Errno)), "sendto failed")
	}
	return len(buf), nil
}

func (unixIO) receive(d descriptor, buf []byte) (int, error) {
	n, err := unix.Read(d, buf)
	if err != nil {
		return -1, cerrors.NewSystemIO(int(err.(unix.Errno)), "receive failed")
	}
	return n, nil
}

func (unixIO) receiveFrom(d descriptor, buf []byte) (int, *sockaddr.Address, error) {
	n, sa, err := unix.Recvfrom(d, buf, 0)
	if err != nil {
		return -1, nil, cerrors.NewSystemIO(int(err.(unix.Errno)), "recvfrom failed")
	}
	from, convErr := sockaddr.NewFromNative(sa)
	if convErr != nil {
		return n, nil, nil
	}
	return n, from, nil
}

func (unixIO) shutdown(d descriptor, read, write bool) error {
	how := unix.SHUT_RDWR
	switch {
	case read && !write:
		how = unix.SHUT_RD
	case write && !read:
		how = unix.SHUT_WR
	}
	if err := unix.Shutdown(d, how); err != nil {
		return cerrors.NewSystemIO(int(err.(unix.Errno)), "shutdown failed")
	}
	return nil
}

func (unixIO) close(d descriptor) error {
	for {
		err := unix.Close(d)
		if err == nil || err != unix.EINTR {
			if err != nil {
				return cerrors.NewSystemIO(int(err.(unix.Errno)), "close failed")
			}
			return nil
		}
	}
}

func (unixIO) setKeepalive(d descriptor, on bool) error {
	v := 0
	if on {
		v = 1
	}
	if err := unix.SetsockoptInt(d, unix.SOL_SOCKET, unix.SO_KEEPALIVE, v); err != nil {
		return cerrors.NewSystemIO(int(err.(unix.Errno)), "setsockopt SO_KEEPALIVE failed")
	}
	return nil
}

func (unixIO) setBufferSize(d descriptor, dir Direction, bytes int) error {
	opt := unix.SO_RCVBUF
	if dir == DirWrite {
		opt = unix.SO_SNDBUF
	}
	if err := unix.SetsockoptInt(d, unix.SOL_SOCKET, opt, bytes); err != nil {
		return cerrors.NewSystemIO(int(err.(unix.Errno)), "setsockopt buffer size failed")
	}
	return nil
}

func (unixIO) isWouldBlock(err error) bool {
	return cerrors.IsKind(err, cerrors.IOWouldBlock)
}

func (unixIO) isInProgress(err error) bool {
	return cerrors.IsKind(err, cerrors.IOInProgress)
}

func (unixIO) isInterrupted(err error) bool {
	e, ok := err.(*cerrors.Error)
	return ok && e.NativeCode == int32(unix.EINTR)
}

// pollWaiter implements io_condition_wait via poll(2), the Linux/Unix
// column of spec.md section 4.6.
type pollWaiter struct{}

func (pollWaiter) wait(d descriptor, dir Direction, timeout time.Duration) error {
	events := int16(unix.POLLIN)
	if dir == DirWrite {
		events = unix.POLLOUT
	}
	deadline := deadlineFrom(timeout)
	for {
		remaining := remainingMillis(deadline, timeout)
		fds := []unix.PollFd{{Fd: int32(d), Events: events}}
		n, err := unix.Poll(fds, remaining)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return cerrors.NewSystemIO(int(err.(unix.Errno)), "poll failed")
		}
		if n == 0 {
			return cerrors.New(cerrors.IOTimedOut, "io_condition_wait timed out")
		}
		return nil
	}
}

// selectWaiter implements io_condition_wait via select(2), the Darwin/
// other-BSD column of spec.md section 4.6.
type selectWaiter struct{}

func (selectWaiter) wait(d descriptor, dir Direction, timeout time.Duration) error {
	deadline := deadlineFrom(timeout)
	for {
		remaining := remainingMillis(deadline, timeout)
		var tv *unix.Timeval
		if timeout > 0 {
			t := unix.NsecToTimeval(int64(remaining) * int64(time.Millisecond))
			tv = &t
		}
		var rfds, wfds unix.FdSet
		set := &rfds
		if dir == DirWrite {
			set = &wfds
		}
		fdSetBit(set, d)
		n, err := unix.Select(d+1, &rfds, &wfds, nil, tv)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return cerrors.NewSystemIO(int(err.(unix.Errno)), "select failed")
		}
		if n == 0 {
			return cerrors.New(cerrors.IOTimedOut, "io_condition_wait timed out")
		}
		return nil
	}
}

// fdSetBit sets fd's bit in an unix.FdSet, whose Bits layout is an array
// of word-sized bitmasks (int64 words on Linux, int32 on Darwin/BSD);
// x/sys/unix exposes the struct but no helper to populate it.
func fdSetBit(set *unix.FdSet, fd int) {
	wordBits := int(unsafe.Sizeof(set.Bits[0])) * 8
	set.Bits[fd/wordBits] |= 1 << (uint(fd) % uint(wordBits))
}

func deadlineFrom(timeout time.Duration) time.Time {
	if timeout <= 0 {
		return time.Time{}
	}
	return time.Now().Add(timeout)
}

// remainingMillis converts the remaining wait into poll(2)/select(2)'s
// millisecond timeout, honoring a monotonic deadline so a run of EINTR
// retries does not reset the total wait.
func remainingMillis(deadline time.Time, timeout time.Duration) int {
	if timeout <= 0 {
		return -1
	}
	remaining := time.Until(deadline)
	if remaining < 0 {
		return 0
	}
	return int(remaining / time.Millisecond)
}

// Package socket implements the BSD-style socket abstraction of spec.md
// section 4.6: a Socket type that presents blocking semantics to the
// caller by default (SetBlocking(false) turns the emulation off) while the
// descriptor underneath is always kept in non-blocking mode, with waits implemented through a per-platform io_condition_wait
// backend.
package socket

import (
	"log/slog"
	"time"

	cerrors "coreu/errors"
	"coreu/logging"
	"coreu/platform"
	"coreu/sockaddr"
)

// State is the socket's position in the spec.md state machine:
// Fresh -> Bound -> Listening, or Fresh -> Connected, or
// Fresh -> Bound -> Connected. Any state can transition to Closed.
type State int

const (
	StateFresh State = iota
	StateBound
	StateListening
	StateConnected
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateFresh:
		return "fresh"
	case StateBound:
		return "bound"
	case StateListening:
		return "listening"
	case StateConnected:
		return "connected"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Family mirrors sockaddr.Family for the socket() call itself.
type Family = sockaddr.Family

// Type is the socket type passed to socket().
type Type int

const (
	Stream Type = iota
	Datagram
	SeqPacket
)

// Direction selects which half of a connection an operation waits on.
type Direction int

const (
	DirRead Direction = iota
	DirWrite
)

const defaultListenBacklog = 5

// netIO is the per-platform raw descriptor operations a Socket drives.
// Exactly one implementation is compiled in, selected by build tags in
// socket_unix.go / socket_windows.go.
type netIO interface {
	socket(family Family, typ Type, protocol int) (descriptor, error)
	setNonblocking(d descriptor) error
	setCloseOnExec(d descriptor) error
	setNoSigpipe(d descriptor) error
	bind(d descriptor, addr *sockaddr.Address, allowReuse bool) error
	listen(d descriptor, backlog int) error
	accept(d descriptor) (descriptor, *sockaddr.Address, error)
	connect(d descriptor, addr *sockaddr.Address) error
	checkConnectResult(d descriptor) error
	send(d descriptor, buf []byte) (int, error)
	sendTo(d descriptor, addr *sockaddr.Address, buf []byte) (int, error)
	receive(d descriptor, buf []byte) (int, error)
	receiveFrom(d descriptor, buf []byte) (int, *sockaddr.Address, error)
	shutdown(d descriptor, read, write bool) error
	close(d descriptor) error
	setKeepalive(d descriptor, on bool) error
	setBufferSize(d descriptor, dir Direction, bytes int) error
	isWouldBlock(err error) bool
	isInProgress(err error) bool
	isInterrupted(err error) bool
}

// conditionWaiter is the per-platform io_condition_wait implementation.
type conditionWaiter interface {
	wait(d descriptor, dir Direction, timeout time.Duration) error
}

// Socket is a BSD-style socket presenting blocking semantics above a
// non-blocking kernel descriptor.
type Socket struct {
	fd       descriptor
	family   Family
	typ      Type
	protocol int

	state     State
	blocking  bool
	timeout   time.Duration
	backlog   int
	keepalive bool

	shutdownRead  bool
	shutdownWrite bool

	io     netIO
	waiter conditionWaiter
	logger *slog.Logger
}

// New creates a socket of the given family/type/protocol, per spec.md
// section 4.6's creation sequence: SOCK_CLOEXEC where available (else an
// explicit close-on-exec flag), SO_NOSIGPIPE where available, then an
// immediate switch to a non-blocking descriptor with blocking emulated at
// the user level.
func New(family Family, typ Type, protocol int) (*Socket, error) {
	io := newIO()
	waiter := newWaiter()

	fd, err := io.socket(family, typ, protocol)
	if err != nil {
		return nil, err
	}

	if !platform.Features().HasSockCloexec {
		if err := io.setCloseOnExec(fd); err != nil {
			io.close(fd)
			return nil, err
		}
	}
	if platform.Features().HasSoNoSigpipe {
		if err := io.setNoSigpipe(fd); err != nil {
			io.close(fd)
			return nil, err
		}
	}
	if err := io.setNonblocking(fd); err != nil {
		io.close(fd)
		return nil, err
	}

	s := &Socket{
		fd:       fd,
		family:   family,
		typ:      typ,
		protocol: protocol,
		state:    StateFresh,
		blocking: true,
		backlog:  defaultListenBacklog,
		io:       io,
		waiter:   waiter,
		logger:   logging.WithBackend(logging.Default(), ioBackendName),
	}
	return s, nil
}

// State returns the socket's current state.
func (s *Socket) State() State { return s.state }

// SetBlocking toggles user-level blocking emulation.
func (s *Socket) SetBlocking(blocking bool) { s.blocking = blocking }

// SetTimeout sets the maximum wait for a blocking operation. Zero means
// wait indefinitely.
func (s *Socket) SetTimeout(d time.Duration) { s.timeout = d }

// SetListenBacklog sets the backlog Listen will apply.
func (s *Socket) SetListenBacklog(n int) { s.backlog = n }

func (s *Socket) checkOpen() error {
	if s.state == StateClosed {
		return cerrors.New(cerrors.IONotAvailable, "socket is closed")
	}
	return nil
}

// Bind applies SO_REUSEADDR (datagram-only on Windows, unconditional
// elsewhere) and SO_REUSEPORT where defined, then binds the descriptor.
func (s *Socket) Bind(addr *sockaddr.Address, allowReuse bool) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	reuse := allowReuse
	if platform.OS() == platform.Windows && s.typ != Datagram {
		reuse = false
	}
	if err := s.io.bind(s.fd, addr, reuse); err != nil {
		return err
	}
	s.state = StateBound
	return nil
}

// Listen marks the socket listening with the configured backlog.
func (s *Socket) Listen() error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if err := s.io.listen(s.fd, s.backlog); err != nil {
		return err
	}
	s.state = StateListening
	return nil
}

// Accept waits for and accepts a new connection, returning a Socket that
// inherits this socket's family/type/protocol.
func (s *Socket) Accept() (*Socket, *sockaddr.Address, error) {
	if err := s.checkOpen(); err != nil {
		return nil, nil, err
	}

	var newFd descriptor
	var peer *sockaddr.Address
	_, err := s.withBlockingRetry(DirRead, func() (int, error) {
		fd, p, err := s.io.accept(s.fd)
		if err != nil {
			return -1, err
		}
		newFd, peer = fd, p
		return 0, nil
	})
	if err != nil {
		return nil, nil, err
	}

	child := &Socket{
		fd:       newFd,
		family:   s.family,
		typ:      s.typ,
		protocol: s.protocol,
		state:    StateConnected,
		blocking: true,
		backlog:  defaultListenBacklog,
		io:       s.io,
		waiter:   s.waiter,
		logger:   s.logger,
	}
	return child, peer, nil
}

// Connect establishes (or, for connectionless sockets, binds the default
// peer for) a connection to addr.
func (s *Socket) Connect(addr *sockaddr.Address) error {
	if err := s.checkOpen(); err != nil {
		return err
	}

	err := s.io.connect(s.fd, addr)
	if err == nil {
		s.state = StateConnected
		return nil
	}
	if !(s.blocking && (s.io.isWouldBlock(err) || s.io.isInProgress(err))) {
		return err
	}

	if waitErr := s.waiter.wait(s.fd, DirWrite, s.timeout); waitErr != nil {
		return waitErr
	}
	if err := s.io.checkConnectResult(s.fd); err != nil {
		return err
	}
	s.state = StateConnected
	return nil
}

// Send writes buf on a connected socket.
func (s *Socket) Send(buf []byte) (int, error) {
	if err := s.checkOpen(); err != nil {
		return 0, err
	}
	return s.withBlockingRetry(DirWrite, func() (int, error) {
		return s.io.send(s.fd, buf)
	})
}

// SendTo writes buf to addr on a connectionless socket.
func (s *Socket) SendTo(addr *sockaddr.Address, buf []byte) (int, error) {
	if err := s.checkOpen(); err != nil {
		return 0, err
	}
	return s.withBlockingRetry(DirWrite, func() (int, error) {
		return s.io.sendTo(s.fd, addr, buf)
	})
}

// Receive reads into buf from a connected socket.
func (s *Socket) Receive(buf []byte) (int, error) {
	if err := s.checkOpen(); err != nil {
		return 0, err
	}
	return s.withBlockingRetry(DirRead, func() (int, error) {
		return s.io.receive(s.fd, buf)
	})
}

// ReceiveFrom reads into buf, reporting the sender's address.
func (s *Socket) ReceiveFrom(buf []byte) (int, *sockaddr.Address, error) {
	if err := s.checkOpen(); err != nil {
		return 0, nil, err
	}
	var from *sockaddr.Address
	n, err := s.withBlockingRetry(DirRead, func() (int, error) {
		read, addr, err := s.io.receiveFrom(s.fd, buf)
		from = addr
		return read, err
	})
	return n, from, err
}

// Shutdown shuts down the read and/or write half of the connection. A
// full bidirectional shutdown clears the connected flag, but the socket
// is not Closed until Close is called.
func (s *Socket) Shutdown(read, write bool) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if err := s.io.shutdown(s.fd, read, write); err != nil {
		return err
	}
	s.shutdownRead = s.shutdownRead || read
	s.shutdownWrite = s.shutdownWrite || write
	if s.shutdownRead && s.shutdownWrite {
		s.state = StateFresh // half-dead: not Closed, no longer Connected
	}
	return nil
}

// Close closes the descriptor. After Close, every operation fails with
// IONotAvailable.
func (s *Socket) Close() error {
	if s.state == StateClosed {
		return nil
	}
	err := s.io.close(s.fd)
	s.state = StateClosed
	return err
}

// SetKeepalive toggles SO_KEEPALIVE.
func (s *Socket) SetKeepalive(on bool) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if err := s.io.setKeepalive(s.fd, on); err != nil {
		return err
	}
	s.keepalive = on
	return nil
}

// SetBufferSize writes SO_RCVBUF or SO_SNDBUF depending on dir.
func (s *Socket) SetBufferSize(dir Direction, bytes int) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	return s.io.setBufferSize(s.fd, dir, bytes)
}

// withBlockingRetry is the single combinator every read/write/accept/
// connect path funnels through: EINTR always retries, and EWOULDBLOCK/
// EAGAIN/EINPROGRESS retries only after waiting on the relevant direction
// when the socket is in user-level blocking mode.
func (s *Socket) withBlockingRetry(dir Direction, op func() (int, error)) (int, error) {
	for {
		n, err := op()
		if err == nil {
			return n, nil
		}
		if s.io.isInterrupted(err) {
			continue
		}
		if s.blocking && (s.io.isWouldBlock(err) || s.io.isInProgress(err)) {
			if waitErr := s.waiter.wait(s.fd, dir, s.timeout); waitErr != nil {
				return -1, waitErr
			}
			continue
		}
		return -1, err
	}
}

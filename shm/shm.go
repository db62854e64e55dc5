// Package shm implements the named shared-memory segment of spec.md
// section 4.4: a fixed-size region of memory visible to any process that
// opens the same logical name, with a companion named semaphore (package
// sema) providing the Lock/Unlock mutual exclusion the segment itself
// does not enforce.
package shm

import (
	"log/slog"

	cerrors "coreu/errors"
	"coreu/key"
	"coreu/logging"
	"coreu/sema"
)

// Mode selects whether a named segment must be freshly created or may be
// opened if it already exists, mirroring sema.Mode.
type Mode int

const (
	// Open opens an existing segment, creating it only if absent.
	Open Mode = iota
	// Create requires a fresh segment, replacing any existing one of the
	// same name.
	Create
)

// backend is the per-platform memory-mapping implementation a Segment
// drives. Exactly one implementation of newBackend is compiled into any
// given binary, selected by build tags in shm_windows.go / shm_posix.go /
// shm_sysv.go / shm_other.go.
type backend interface {
	bytes() []byte
	unmap() error
	unlink() error
}

// Segment is a named shared-memory region plus its companion lock.
type Segment struct {
	platformKey string
	created     bool
	owned       bool
	backend     backend
	lock        *sema.Handle
	logger      *slog.Logger
}

// Option configures a Segment at construction time.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger overrides the package default logger for this segment.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New creates or opens a named shared-memory segment of size bytes, along
// with its companion named semaphore used as the segment's mutex.
func New(name string, size int, mode Mode, opts ...Option) (*Segment, error) {
	if size <= 0 {
		return nil, cerrors.New(cerrors.IPCInvalidArgument, "shared memory size must be > 0")
	}
	cfg := options{logger: logging.Default()}
	for _, o := range opts {
		o(&cfg)
	}

	pk := key.Derive(name, true)

	semMode := sema.Open
	if mode == Create {
		semMode = sema.Create
	}
	lock, err := sema.New(name+".lock", 1, semMode)
	if err != nil {
		return nil, cerrors.Wrap(cerrors.IPCFailed, "open companion lock", err)
	}

	b, created, err := newBackend(pk, size, mode)
	if err != nil {
		lock.Free()
		return nil, err
	}

	s := &Segment{
		platformKey: pk,
		created:     created,
		backend:     b,
		lock:        lock,
		logger:      logging.WithKey(cfg.logger, pk),
	}
	s.logger.Debug("shared memory opened", "created", created, "size", len(b.bytes()))
	return s, nil
}

// Lock acquires the segment's companion semaphore.
func (s *Segment) Lock() error {
	return s.lock.Acquire()
}

// Unlock releases the segment's companion semaphore.
func (s *Segment) Unlock() error {
	return s.lock.Release()
}

// Address returns the mapped region. Callers must hold Lock while reading
// or writing bytes another process might touch concurrently.
func (s *Segment) Address() []byte {
	return s.backend.bytes()
}

// Size returns the actually-mapped segment size in bytes, which may
// exceed the size originally requested by the creator.
func (s *Segment) Size() int {
	return len(s.backend.bytes())
}

// TakeOwnership flags that Free should unlink the underlying object even
// though this process did not create it.
func (s *Segment) TakeOwnership() {
	s.owned = true
	s.lock.TakeOwnership()
}

// Free unmaps the segment and, if this process created it or took
// ownership of it, unlinks the underlying kernel object and its companion
// lock.
func (s *Segment) Free() error {
	unmapErr := s.backend.unmap()
	var unlinkErr error
	if s.created || s.owned {
		unlinkErr = s.backend.unlink()
	}
	lockErr := s.lock.Free()

	if unmapErr != nil {
		return unmapErr
	}
	if unlinkErr != nil {
		return unlinkErr
	}
	return lockErr
}

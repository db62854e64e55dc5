// Package sema implements the named counting semaphore of spec.md section
// 4.3: P/V with cross-process visibility over three backends (Windows
// kernel semaphores, POSIX sem_open, System V semget/semop), selected at
// compile time by build tags.
package sema

import (
	"log/slog"

	cerrors "coreu/errors"
	"coreu/key"
	"coreu/logging"
)

// Mode selects whether a named semaphore must be freshly created or may
// be opened if it already exists.
type Mode int

const (
	// Open opens an existing semaphore, creating it only if absent.
	Open Mode = iota
	// Create requires a fresh semaphore; an existing one with the same
	// name is unlinked and recreated (POSIX) or simply reset (System V).
	Create
)

// backend is the per-platform implementation a Handle drives. Exactly one
// implementation of newBackend is compiled into any given binary, selected
// by build tags in sema_windows.go / sema_posix.go / sema_sysv.go /
// sema_other.go.
type backend interface {
	acquire() error
	release() error
	close() error
	unlink() error
	// needsRecreate reports whether err indicates the kernel object was
	// removed out from under us (System-V EIDRM/EINVAL self-healing, per
	// spec.md sections 4.3 and 9). Backends other than System V always
	// return false.
	needsRecreate(err error) bool
}

// Handle is a named semaphore. Exactly one backend is active at a time,
// per the data-model invariant in spec.md section 3.
type Handle struct {
	platformKey string
	initial     int
	mode        Mode
	created     bool // true if this process created the underlying object
	owned       bool // true if TakeOwnership was called
	selfHeal    bool
	backend     backend
	logger      *slog.Logger
}

// Option configures a Handle at construction time.
type Option func(*options)

type options struct {
	disableSelfHeal bool
	logger          *slog.Logger
}

// DisableSelfHeal turns off the System-V recreate-and-retry behavior so a
// caller can observe EIDRM/EINVAL directly, per the DESIGN NOTES mode flag.
func DisableSelfHeal() Option {
	return func(o *options) { o.disableSelfHeal = true }
}

// WithLogger overrides the package default logger for this handle.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New creates or opens a named semaphore. name is a logical, caller-chosen
// identifier; the platform key it is derived into is what actually
// addresses the kernel object, so two processes naming the same logical
// semaphore always rendezvous on the same object.
func New(name string, initial int, mode Mode, opts ...Option) (*Handle, error) {
	if initial < 0 {
		return nil, cerrors.New(cerrors.IPCInvalidArgument, "semaphore initial value must be >= 0")
	}
	cfg := options{logger: logging.Default()}
	for _, o := range opts {
		o(&cfg)
	}

	pk := key.Derive(name, true)
	b, created, err := newBackend(pk, initial, mode)
	if err != nil {
		return nil, err
	}

	h := &Handle{
		platformKey: pk,
		initial:     initial,
		mode:        mode,
		created:     created,
		selfHeal:    !cfg.disableSelfHeal,
		backend:     b,
		logger:      logging.WithKey(cfg.logger, pk),
	}
	h.logger.Debug("semaphore opened", "created", created, "initial", initial)
	return h, nil
}

// Acquire blocks (cooperatively suspending the calling goroutine) until
// the counter is positive, then atomically decrements it.
func (h *Handle) Acquire() error {
	err := h.backend.acquire()
	if err != nil && h.selfHeal && h.backend.needsRecreate(err) {
		if rerr := h.recreate(); rerr != nil {
			return rerr
		}
		h.logger.Debug("semaphore recreated after self-heal, retrying acquire")
		err = h.backend.acquire()
	}
	return err
}

// Release increments the counter and wakes at most one waiter.
func (h *Handle) Release() error {
	err := h.backend.release()
	if err != nil && h.selfHeal && h.backend.needsRecreate(err) {
		if rerr := h.recreate(); rerr != nil {
			return rerr
		}
		h.logger.Debug("semaphore recreated after self-heal, retrying release")
		err = h.backend.release()
	}
	return err
}

// TakeOwnership flags that Free should unlink the underlying object on
// UNIX even though this process did not create it.
func (h *Handle) TakeOwnership() {
	h.owned = true
}

// Free closes the backend handle and, if this process created the object
// or took ownership of it, unlinks it.
func (h *Handle) Free() error {
	closeErr := h.backend.close()
	var unlinkErr error
	if h.created || h.owned {
		unlinkErr = h.backend.unlink()
	}
	if closeErr != nil {
		return closeErr
	}
	return unlinkErr
}

func (h *Handle) recreate() error {
	b, created, err := newBackend(h.platformKey, h.initial, Create)
	if err != nil {
		return cerrors.Wrap(cerrors.IPCFailed, "self-heal recreate", err)
	}
	h.backend = b
	h.created = created
	return nil
}

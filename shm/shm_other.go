//go:build !windows && !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly && !solaris && !aix && !illumos

package shm

import cerrors "coreu/errors"

// otherBackend is the fallback for hosts with no named shared-memory
// mechanism wired in coreu: a plain process-local buffer, unable to
// rendezvous with any other process. Documented as a deliberate
// platform-reality gap rather than a silent lie, matching the sema
// package's own fallback.
type otherBackend struct {
	data []byte
}

func newBackend(platformKey string, size int, mode Mode) (backend, bool, error) {
	return &otherBackend{data: make([]byte, size)}, true, nil
}

func (b *otherBackend) bytes() []byte { return b.data }

func (b *otherBackend) unmap() error { return nil }

func (b *otherBackend) unlink() error {
	return cerrors.New(cerrors.IPCNotImplemented, "named shared memory is not supported on this platform")
}

// Package dl implements the dynamic-library loader of spec.md section
// 4.8: load a shared library by path, resolve symbols by name, and report
// backend-native errors through a handle-scoped last-error slot.
package dl

import (
	"os"

	cerrors "coreu/errors"
)

// backend is the per-platform loader implementation a Library drives.
// Exactly one implementation of newBackend is compiled into any given
// binary, selected by build tags in dl_posix.go / dl_windows.go /
// dl_other.go.
type backend interface {
	symbol(name string) (uintptr, error)
	lastError() string
	close() error
	refCounted() bool
}

// Library is a loaded shared-library image.
type Library struct {
	path      string
	backend   backend
	lastError string
}

// New loads the shared library at path. The path is checked to name an
// existing file before the backend is invoked, avoiding the loader-crash
// bugs some platforms exhibit when asked to load a zero-byte or missing
// file.
func New(path string) (*Library, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, cerrors.Wrap(cerrors.IONotExists, "library file does not exist", err)
	}

	b, err := newBackend(path)
	if err != nil {
		return nil, err
	}
	return &Library{path: path, backend: b}, nil
}

// GetSymbol resolves name to a function address. A zero return does not
// by itself mean failure — the symbol may legitimately resolve to a null
// address — callers must consult LastError to disambiguate.
func (l *Library) GetSymbol(name string) (uintptr, error) {
	addr, err := l.backend.symbol(name)
	if err != nil {
		l.lastError = l.backend.lastError()
		return 0, err
	}
	return addr, nil
}

// LastError returns the most recent backend error message recorded for
// this handle, or "" if none has occurred.
func (l *Library) LastError() string {
	return l.lastError
}

// IsRefCounted reports whether the backend reference-counts repeated
// loads of the same image. True everywhere coreu can build; false is
// reserved for HP-UX PA-RISC 32-bit's shl_* API, which always drops the
// image on first close — a target Go does not compile for, so the value
// is never actually observed, but the constant is preserved for shape
// fidelity with the original taxonomy.
func (l *Library) IsRefCounted() bool {
	return l.backend.refCounted()
}

// Free closes the library image.
func (l *Library) Free() error {
	return l.backend.close()
}

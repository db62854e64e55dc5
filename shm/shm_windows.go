//go:build windows

package shm

import (
	"unsafe"

	"golang.org/x/sys/windows"

	cerrors "coreu/errors"
)

// windowsBackend wraps a Win32 file-mapping object backed by the paging
// file (CreateFileMappingW with INVALID_HANDLE_VALUE), per spec.md
// section 4.4's Windows column.
type windowsBackend struct {
	mapping windows.Handle
	data    []byte
}

func newBackend(platformKey string, size int, mode Mode) (backend, bool, error) {
	name, err := windows.UTF16PtrFromString(platformKey)
	if err != nil {
		return nil, false, cerrors.Wrap(cerrors.IPCInvalidArgument, "encode segment name", err)
	}

	hi := uint32(uint64(size) >> 32)
	lo := uint32(uint64(size) & 0xffffffff)

	h, createErr := windows.CreateFileMapping(windows.InvalidHandle, nil, windows.PAGE_READWRITE, hi, lo, name)
	if createErr != nil {
		return nil, false, cerrors.WithNative(cerrors.IPCFailed, int32(errnoOf(createErr)), "CreateFileMappingW failed")
	}
	created := windows.GetLastError() != windows.ERROR_ALREADY_EXISTS

	// When opening an existing mapping, map the whole view (size 0) and
	// use VirtualQuery to learn its actual committed size, per spec.md
	// section 4.4: the creator's size is authoritative, and a later
	// opener must not assume its own requested size matches it.
	mapSize := uintptr(size)
	if !created {
		mapSize = 0
	}

	addr, mapErr := windows.MapViewOfFile(h, windows.FILE_MAP_READ|windows.FILE_MAP_WRITE, 0, 0, mapSize)
	if mapErr != nil {
		windows.CloseHandle(h)
		return nil, false, cerrors.WithNative(cerrors.IPCFailed, int32(errnoOf(mapErr)), "MapViewOfFile failed")
	}

	actual := size
	if !created {
		var mbi windows.MemoryBasicInformation
		if err := windows.VirtualQuery(addr, &mbi, unsafe.Sizeof(mbi)); err != nil {
			windows.UnmapViewOfFile(addr)
			windows.CloseHandle(h)
			return nil, false, cerrors.WithNative(cerrors.IPCFailed, int32(errnoOf(err)), "VirtualQuery failed")
		}
		actual = int(mbi.RegionSize)
	}

	data := unsafe.Slice((*byte)(unsafe.Pointer(addr)), actual)
	return &windowsBackend{mapping: h, data: data}, created, nil
}

func (b *windowsBackend) bytes() []byte { return b.data }

func (b *windowsBackend) unmap() error {
	addr := uintptr(unsafe.Pointer(&b.data[0]))
	if err := windows.UnmapViewOfFile(addr); err != nil {
		return cerrors.WithNative(cerrors.IPCFailed, int32(errnoOf(err)), "UnmapViewOfFile failed")
	}
	if err := windows.CloseHandle(b.mapping); err != nil {
		return cerrors.WithNative(cerrors.IPCFailed, int32(errnoOf(err)), "CloseHandle failed")
	}
	return nil
}

// unlink is a no-op on Windows: the paging-file mapping is reference
// counted by the OS and vanishes once every handle to it is closed.
func (b *windowsBackend) unlink() error { return nil }

func errnoOf(err error) uintptr {
	if errno, ok := err.(windows.Errno); ok {
		return uintptr(errno)
	}
	return 0
}

package ring

import (
	"fmt"
	"testing"
	"time"

	"coreu/shm"
)

func uniqueName(t *testing.T) string {
	return fmt.Sprintf("coreu-test-%s-%d", t.Name(), time.Now().UnixNano())
}

func TestWriteThenRead(t *testing.T) {
	b, err := New(uniqueName(t), 16, shm.Create)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer b.Free()

	n, err := b.Write([]byte("hello"))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if n != 5 {
		t.Fatalf("Write returned %d, want 5", n)
	}

	dst := make([]byte, 5)
	n, err = b.Read(dst)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if n != 5 || string(dst) != "hello" {
		t.Fatalf("Read returned %d bytes %q, want 5 bytes %q", n, dst, "hello")
	}
}

func TestReadEmptyReturnsZero(t *testing.T) {
	b, err := New(uniqueName(t), 16, shm.Create)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer b.Free()

	dst := make([]byte, 8)
	n, err := b.Read(dst)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if n != 0 {
		t.Fatalf("Read on empty buffer returned %d, want 0", n)
	}
}

func TestWriteBeyondCapacityIsAllOrNothing(t *testing.T) {
	b, err := New(uniqueName(t), 4, shm.Create)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer b.Free()

	n, err := b.Write([]byte("toolong"))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if n != 0 {
		t.Fatalf("Write over capacity returned %d, want 0", n)
	}

	used, err := b.UsedSpace()
	if err != nil {
		t.Fatalf("UsedSpace: %v", err)
	}
	if used != 0 {
		t.Fatalf("UsedSpace = %d, want 0 after rejected write", used)
	}
}

func TestWrapAround(t *testing.T) {
	b, err := New(uniqueName(t), 4, shm.Create)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer b.Free()

	if _, err := b.Write([]byte("ab")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	dst := make([]byte, 2)
	if _, err := b.Read(dst); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if _, err := b.Write([]byte("cdef")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	out := make([]byte, 4)
	n, err := b.Read(out)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if n != 4 || string(out) != "cdef" {
		t.Fatalf("Read returned %d bytes %q, want 4 bytes %q", n, out, "cdef")
	}
}

func TestFreeSpaceAndClear(t *testing.T) {
	b, err := New(uniqueName(t), 8, shm.Create)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer b.Free()

	if _, err := b.Write([]byte("abc")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	free, err := b.FreeSpace()
	if err != nil {
		t.Fatalf("FreeSpace: %v", err)
	}
	if free != 5 {
		t.Fatalf("FreeSpace = %d, want 5", free)
	}

	if err := b.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	used, err := b.UsedSpace()
	if err != nil {
		t.Fatalf("UsedSpace: %v", err)
	}
	if used != 0 {
		t.Fatalf("UsedSpace after Clear = %d, want 0", used)
	}
	free, err = b.FreeSpace()
	if err != nil {
		t.Fatalf("FreeSpace: %v", err)
	}
	if free != 8 {
		t.Fatalf("FreeSpace after Clear = %d, want 8", free)
	}
}

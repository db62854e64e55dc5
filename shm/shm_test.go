package shm

import (
	"fmt"
	"testing"
	"time"
)

func uniqueName(t *testing.T) string {
	return fmt.Sprintf("coreu-test-%s-%d", t.Name(), time.Now().UnixNano())
}

func TestNewCreateThenFree(t *testing.T) {
	s, err := New(uniqueName(t), 4096, Create)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Free()

	if s.Size() != 4096 {
		t.Errorf("Size() = %d, want 4096", s.Size())
	}
	if len(s.Address()) != 4096 {
		t.Errorf("len(Address()) = %d, want 4096", len(s.Address()))
	}
}

func TestWriteIsVisibleAfterLockUnlock(t *testing.T) {
	s, err := New(uniqueName(t), 64, Create)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Free()

	if err := s.Lock(); err != nil {
		t.Fatalf("Lock: %v", err)
	}
	copy(s.Address(), []byte("hello"))
	if err := s.Unlock(); err != nil {
		t.Fatalf("Unlock: %v", err)
	}

	if err := s.Lock(); err != nil {
		t.Fatalf("Lock again: %v", err)
	}
	defer s.Unlock()
	if got := string(s.Address()[:5]); got != "hello" {
		t.Errorf("Address() = %q, want %q", got, "hello")
	}
}

func TestNewRejectsNonPositiveSize(t *testing.T) {
	if _, err := New(uniqueName(t), 0, Create); err == nil {
		t.Fatal("expected error for zero size")
	}
	if _, err := New(uniqueName(t), -1, Create); err == nil {
		t.Fatal("expected error for negative size")
	}
}

func TestTwoHandlesShareMemory(t *testing.T) {
	name := uniqueName(t)
	a, err := New(name, 32, Create)
	if err != nil {
		t.Fatalf("New a: %v", err)
	}
	defer a.Free()

	b, err := New(name, 32, Open)
	if err != nil {
		t.Fatalf("New b: %v", err)
	}
	b.TakeOwnership()
	defer b.Free()

	a.Lock()
	copy(a.Address(), []byte("shared"))
	a.Unlock()

	b.Lock()
	defer b.Unlock()
	if got := string(b.Address()[:6]); got != "shared" {
		t.Errorf("second handle sees %q, want %q", got, "shared")
	}
}

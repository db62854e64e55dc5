package sema

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func uniqueName(t *testing.T) string {
	return fmt.Sprintf("coreu-test-%s-%d", t.Name(), time.Now().UnixNano())
}

func TestNewCreateThenFree(t *testing.T) {
	h, err := New(uniqueName(t), 1, Create)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer h.Free()

	if err := h.Acquire(); err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if err := h.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}
}

func TestAcquireBlocksUntilRelease(t *testing.T) {
	name := uniqueName(t)
	h, err := New(name, 0, Create)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer h.Free()

	acquired := make(chan struct{})
	go func() {
		if err := h.Acquire(); err != nil {
			t.Error(err)
		}
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("Acquire returned before Release")
	case <-time.After(50 * time.Millisecond):
	}

	if err := h.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("Acquire never unblocked after Release")
	}
}

func TestConcurrentAcquireRelease(t *testing.T) {
	h, err := New(uniqueName(t), 3, Create)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer h.Free()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := h.Acquire(); err != nil {
				t.Error(err)
				return
			}
			time.Sleep(time.Millisecond)
			if err := h.Release(); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()
}

func TestNewRejectsNegativeInitial(t *testing.T) {
	if _, err := New(uniqueName(t), -1, Create); err == nil {
		t.Fatal("expected error for negative initial value")
	}
}

func TestTakeOwnershipUnlinksOnFree(t *testing.T) {
	name := uniqueName(t)
	h1, err := New(name, 1, Create)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	h2, err := New(name, 1, Open)
	if err != nil {
		t.Fatalf("New (open): %v", err)
	}
	h2.TakeOwnership()

	if err := h1.Free(); err != nil {
		t.Fatalf("Free h1: %v", err)
	}
	if err := h2.Free(); err != nil {
		t.Fatalf("Free h2: %v", err)
	}
}

package socket

import (
	"testing"
	"time"

	"coreu/sockaddr"
)

func TestBindAndListen(t *testing.T) {
	listener, err := New(sockaddr.FamilyInet4, Stream, 0)
	if err != nil {
		t.Fatalf("New listener: %v", err)
	}
	defer listener.Close()

	addr := sockaddr.NewLoopback(sockaddr.FamilyInet4, 0)
	if err := listener.Bind(addr, true); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if err := listener.Listen(); err != nil {
		t.Fatalf("Listen: %v", err)
	}
	if listener.State() != StateListening {
		t.Fatalf("State() = %v, want StateListening", listener.State())
	}
}

func TestStateTransitionsFreshToClosed(t *testing.T) {
	s, err := New(sockaddr.FamilyInet4, Stream, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if s.State() != StateFresh {
		t.Fatalf("State() = %v, want StateFresh", s.State())
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if s.State() != StateClosed {
		t.Fatalf("State() = %v, want StateClosed", s.State())
	}
}

func TestOperationsFailAfterClose(t *testing.T) {
	s, err := New(sockaddr.FamilyInet4, Stream, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := s.Send([]byte("x")); err == nil {
		t.Fatal("expected error sending on closed socket")
	}
}

func TestSetBlockingAndTimeout(t *testing.T) {
	s, err := New(sockaddr.FamilyInet4, Datagram, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer s.Close()

	s.SetBlocking(false)
	s.SetTimeout(10 * time.Millisecond)
	s.SetListenBacklog(16)
}

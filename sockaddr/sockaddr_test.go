package sockaddr

import (
	"net"
	"testing"
)

func TestNewDetectsIPv4(t *testing.T) {
	a, err := New("127.0.0.1", 8080)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if a.Family != FamilyInet4 {
		t.Errorf("Family = %v, want FamilyInet4", a.Family)
	}
	if a.Port != 8080 {
		t.Errorf("Port = %d, want 8080", a.Port)
	}
}

func TestNewDetectsIPv6(t *testing.T) {
	a, err := New("::1", 443)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if a.Family != FamilyInet6 {
		t.Errorf("Family = %v, want FamilyInet6", a.Family)
	}
}

func TestNewRejectsGarbage(t *testing.T) {
	if _, err := New("not-an-ip", 0); err == nil {
		t.Fatal("expected error for invalid address")
	}
}

func TestNewAnyAndNewLoopback(t *testing.T) {
	any4 := NewAny(FamilyInet4, 80)
	if !any4.IP.Equal(net.IPv4zero) {
		t.Errorf("NewAny(Inet4) = %v", any4.IP)
	}
	lo4 := NewLoopback(FamilyInet4, 80)
	if lo4.IP.String() != "127.0.0.1" {
		t.Errorf("NewLoopback(Inet4) = %v", lo4.IP)
	}
	any6 := NewAny(FamilyInet6, 80)
	if any6.Family != FamilyInet6 {
		t.Errorf("NewAny(Inet6).Family = %v", any6.Family)
	}
	lo6 := NewLoopback(FamilyInet6, 80)
	if lo6.IP.String() != "::1" {
		t.Errorf("NewLoopback(Inet6) = %v", lo6.IP)
	}
}

func TestString(t *testing.T) {
	a, _ := New("10.0.0.1", 22)
	if got, want := a.String(), "10.0.0.1:22"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

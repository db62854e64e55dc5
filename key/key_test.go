package key

import (
	"strings"
	"testing"
)

func TestDerivePosixSemaphoreName(t *testing.T) {
	k := DerivePosixSemaphoreName("my-semaphore")
	if !strings.HasPrefix(k, "/") {
		t.Errorf("expected leading '/', got %q", k)
	}
	if len(k) != 14 {
		t.Errorf("expected length 14, got %d (%q)", len(k), k)
	}
}

func TestDeriveIsStable(t *testing.T) {
	a := DerivePosixSemaphoreName("same-name")
	b := DerivePosixSemaphoreName("same-name")
	if a != b {
		t.Errorf("same logical name produced different keys: %q vs %q", a, b)
	}
	c := DerivePosixSemaphoreName("different-name")
	if a == c {
		t.Errorf("different logical names collided: %q", a)
	}
}

func TestDeriveSystemVKeyFilePath(t *testing.T) {
	p := DeriveSystemVKeyFilePath("ring-buffer")
	if !strings.Contains(p, "/") {
		t.Errorf("expected a path, got %q", p)
	}
	if strings.HasSuffix(p, "//") {
		t.Errorf("path should not double up the trailing slash: %q", p)
	}
}

func TestDeriveObjectName(t *testing.T) {
	n := DeriveObjectName("win32-object")
	if len(n) != 40 {
		t.Errorf("expected a 40-char hex sha1 digest, got %d chars (%q)", len(n), n)
	}
}

package dl

import (
	"os"
	"runtime"
	"testing"
)

func TestNewRejectsMissingFile(t *testing.T) {
	if _, err := New("/no/such/library.so"); err == nil {
		t.Fatal("expected error for missing library file")
	}
}

func TestLoadAndResolveSymbol(t *testing.T) {
	path := libcPathForTest(t)
	if path == "" {
		t.Skip("no known libc path on this platform")
	}

	lib, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer lib.Free()

	if _, err := lib.GetSymbol("malloc"); err != nil {
		t.Fatalf("GetSymbol(malloc): %v", err)
	}

	if _, err := lib.GetSymbol("definitely_not_a_real_symbol_xyz"); err == nil {
		t.Fatal("expected error resolving a nonexistent symbol")
	}
	if lib.LastError() == "" {
		t.Error("LastError() should be non-empty after a failed GetSymbol")
	}
}

func libcPathForTest(t *testing.T) string {
	t.Helper()
	if runtime.GOOS != "linux" {
		return ""
	}
	for _, candidate := range []string{
		"/lib/x86_64-linux-gnu/libc.so.6",
		"/usr/lib/x86_64-linux-gnu/libc.so.6",
		"/lib64/libc.so.6",
	} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

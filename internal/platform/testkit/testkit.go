// Package testkit holds the stdlib-only helpers platform tests share
package testkit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// MustPanic fails t unless fn panics
func MustPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic")
		}
	}()
	fn()
}

// MustContain fails t unless out contains want; long outputs are dumped to a
// temp file so the failure line stays readable
func MustContain(t *testing.T, out, want string) {
	t.Helper()
	if strings.Contains(out, want) {
		return
	}
	if len(out) < 512 {
		t.Fatalf("missing %q in %q", want, out)
	}
	dump := filepath.Join(t.TempDir(), "output.txt")
	_ = os.WriteFile(dump, []byte(out), 0o600)
	t.Fatalf("missing %q; output written to %s", want, dump)
}

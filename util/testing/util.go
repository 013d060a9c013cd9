package testing_util

import (
	"os"
	"testing"
)

// MkdirTemp creates a scratch directory for file fixtures; call cleanup to remove it.
func MkdirTemp(t *testing.T, prefix string) (path string, cleanup func()) {
	t.Helper()

	out, err := os.MkdirTemp(os.TempDir(), prefix)
	if err != nil {
		t.Fatalf("failed to create temporary directory: %v", err)
	}

	return out, func() {
		os.RemoveAll(out)
	}
}

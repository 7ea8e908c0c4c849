package util

import (
	"path/filepath"
	"testing"
)

// CreateTempFile returns a database file path inside a per-test temp
// directory; the directory is removed when the test finishes.
func CreateTempFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "framedb.dat")
}

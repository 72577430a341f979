package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// CreateTree creates a temp directory holding the given slash-separated
// relative file paths, each with a short placeholder body. Returns the
// directory path.
func CreateTree(t *testing.T, files ...string) string {
	t.Helper()
	dir := t.TempDir()
	WriteFiles(t, dir, files...)
	return dir
}

// WriteFiles creates the given slash-separated relative file paths under dir,
// along with any missing parent directories.
func WriteFiles(t *testing.T, dir string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(dir, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil { //nolint:gosec // test dir
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("# "+f+"\n"), 0644); err != nil { //nolint:gosec // test file
			t.Fatal(err)
		}
	}
}

// ReadFile returns the content of path, failing the test on error.
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path) //nolint:gosec // test file
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

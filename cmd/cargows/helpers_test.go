package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/fbkclanna/cargows/internal/testutil"
)

// setupProject creates a project with the given files under it and returns its dir.
func setupProject(t *testing.T, files ...string) string {
	t.Helper()
	return testutil.CreateTree(t, files...)
}

// execute runs the CLI with args and returns stdout and the error.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func manifestOf(t *testing.T, dir string) string {
	t.Helper()
	return testutil.ReadFile(t, filepath.Join(dir, "Cargo.toml"))
}

package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fbkclanna/cargows/internal/fsutil"
	"github.com/fbkclanna/cargows/internal/testutil"
	"github.com/google/go-cmp/cmp"
)

// writeConfig is a test helper that writes a cargows.yaml to the given dir.
func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, ConfigFile), []byte(content), 0600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
}

func TestLoad_defaults(t *testing.T) {
	dir := t.TempDir()

	ctx, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if ctx.ConfigPath != "" {
		t.Errorf("ConfigPath = %q, want empty", ctx.ConfigPath)
	}
	if ctx.SourceRoot != filepath.Join(ctx.Root, "src") {
		t.Errorf("SourceRoot = %q, unexpected", ctx.SourceRoot)
	}
	if ctx.ManifestPath != filepath.Join(ctx.Root, "Cargo.toml") {
		t.Errorf("ManifestPath = %q, unexpected", ctx.ManifestPath)
	}
	if ctx.Config.Marker != "Cargo.toml" {
		t.Errorf("Marker = %q, want Cargo.toml", ctx.Config.Marker)
	}
}

func TestLoad_withConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `version: 1
source_root: examples
output: build/Cargo.toml
exclude: [target]
`)

	ctx, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if ctx.ConfigPath != filepath.Join(ctx.Root, ConfigFile) {
		t.Errorf("ConfigPath = %q, unexpected", ctx.ConfigPath)
	}
	if ctx.SourceRoot != filepath.Join(ctx.Root, "examples") {
		t.Errorf("SourceRoot = %q, unexpected", ctx.SourceRoot)
	}
	if ctx.ManifestPath != filepath.Join(ctx.Root, "build", "Cargo.toml") {
		t.Errorf("ManifestPath = %q, unexpected", ctx.ManifestPath)
	}
	if ctx.Config.Marker != "Cargo.toml" {
		t.Errorf("unset marker should keep default, got %q", ctx.Config.Marker)
	}
}

func TestLoad_invalidConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ":::invalid")

	if _, err := Load(dir); err == nil {
		t.Fatal("Load() should fail with invalid YAML")
	}
}

func TestParseConfig_validation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing version", "source_root: src\n"},
		{"wrong version", "version: 2\n"},
		{"absolute source", "version: 1\nsource_root: /abs\n"},
		{"escaping output", "version: 1\noutput: ../Cargo.toml\n"},
		{"marker with slash", "version: 1\nmarker: a/Cargo.toml\n"},
		{"empty exclude", "version: 1\nexclude: [\"\"]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseConfig([]byte(tt.yaml)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestGenerate(t *testing.T) {
	dir := testutil.CreateTree(t,
		"src/a/Cargo.toml",
		"src/b/nested/Cargo.toml",
		"src/c/readme.txt",
	)
	ctx, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}

	res, err := ctx.Generate()
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if len(res.Members) != 2 {
		t.Errorf("members = %d, want 2", len(res.Members))
	}

	want := "[workspace]\nmembers = [\n  \"src/a\",\n  \"src/b/nested\",\n]\n"
	if diff := cmp.Diff(want, testutil.ReadFile(t, ctx.ManifestPath)); diff != "" {
		t.Errorf("manifest mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_sourceRootIsProjectRoot(t *testing.T) {
	dir := testutil.CreateTree(t,
		"a/Cargo.toml",
		"b/nested/Cargo.toml",
		"c/readme.txt",
	)
	writeConfig(t, dir, "version: 1\nsource_root: .\n")
	ctx, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}

	// Run twice: the second run must not pick up the manifest it wrote.
	for i := 0; i < 2; i++ {
		if _, err := ctx.Generate(); err != nil {
			t.Fatalf("Generate() run %d error: %v", i+1, err)
		}
	}

	want := "[workspace]\nmembers = [\n  \"a\",\n  \"b/nested\",\n]\n"
	if diff := cmp.Diff(want, testutil.ReadFile(t, ctx.ManifestPath)); diff != "" {
		t.Errorf("manifest mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_idempotent(t *testing.T) {
	dir := testutil.CreateTree(t, "src/x/Cargo.toml", "src/y/Cargo.toml")
	ctx, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ctx.Generate(); err != nil {
		t.Fatal(err)
	}
	first := testutil.ReadFile(t, ctx.ManifestPath)
	if _, err := ctx.Generate(); err != nil {
		t.Fatal(err)
	}
	second := testutil.ReadFile(t, ctx.ManifestPath)

	if first != second {
		t.Errorf("output changed between runs:\n%s\n---\n%s", first, second)
	}
}

func TestGenerate_tracksAddAndRemove(t *testing.T) {
	dir := testutil.CreateTree(t, "src/keep/Cargo.toml", "src/gone/Cargo.toml")
	ctx, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ctx.Generate(); err != nil {
		t.Fatal(err)
	}

	if err := os.RemoveAll(filepath.Join(dir, "src", "gone")); err != nil {
		t.Fatal(err)
	}
	testutil.WriteFiles(t, dir, "src/new/Cargo.toml")

	if _, err := ctx.Generate(); err != nil {
		t.Fatal(err)
	}
	want := "[workspace]\nmembers = [\n  \"src/keep\",\n  \"src/new\",\n]\n"
	if diff := cmp.Diff(want, testutil.ReadFile(t, ctx.ManifestPath)); diff != "" {
		t.Errorf("manifest mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerate_noMembers(t *testing.T) {
	dir := testutil.CreateTree(t, "src/notes.md")
	ctx, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ctx.Generate(); err != nil {
		t.Fatal(err)
	}
	if got := testutil.ReadFile(t, ctx.ManifestPath); got != "[workspace]\nmembers = [\n]\n" {
		t.Errorf("manifest = %q", got)
	}
}

func TestGenerate_missingSourceRoot(t *testing.T) {
	dir := t.TempDir()
	ctx, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}

	_, err = ctx.Generate()
	if !fsutil.IsFileSystemError(err) {
		t.Fatalf("Generate() error = %v, want FileSystemError", err)
	}
	if _, statErr := os.Stat(ctx.ManifestPath); !os.IsNotExist(statErr) {
		t.Error("manifest must not be written when the source root is missing")
	}
}

func TestGenerate_missingSourceRootKeepsExisting(t *testing.T) {
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "Cargo.toml")
	if err := os.WriteFile(manifestPath, []byte("existing\n"), 0600); err != nil {
		t.Fatal(err)
	}
	ctx, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ctx.Generate(); err == nil {
		t.Fatal("expected error")
	}
	if got := testutil.ReadFile(t, manifestPath); got != "existing\n" {
		t.Errorf("manifest modified: %q", got)
	}
}

func TestCheck(t *testing.T) {
	dir := testutil.CreateTree(t, "src/a/Cargo.toml")
	ctx, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ctx.Check(); !fsutil.IsFileSystemError(err) {
		t.Fatalf("Check() without manifest error = %v, want FileSystemError", err)
	}

	if _, err := ctx.Generate(); err != nil {
		t.Fatal(err)
	}
	st, err := ctx.Check()
	if err != nil {
		t.Fatalf("Check() error: %v", err)
	}
	if !st.UpToDate || !st.Empty() {
		t.Errorf("fresh manifest should be up to date: %+v", st)
	}

	testutil.WriteFiles(t, dir, "src/b/Cargo.toml")
	st, err = ctx.Check()
	if err != nil {
		t.Fatal(err)
	}
	if st.UpToDate {
		t.Error("manifest should be stale after adding a sub-project")
	}
	if diff := cmp.Diff([]string{"src/b"}, st.Added); diff != "" {
		t.Errorf("Added mismatch (-want +got):\n%s", diff)
	}
}

func TestCheck_reorderedIsStale(t *testing.T) {
	dir := testutil.CreateTree(t, "src/a/Cargo.toml", "src/b/Cargo.toml")
	ctx, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	content := "[workspace]\nmembers = [\"src/b\", \"src/a\"]\n"
	if err := os.WriteFile(ctx.ManifestPath, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	st, err := ctx.Check()
	if err != nil {
		t.Fatal(err)
	}
	if !st.Empty() {
		t.Errorf("same member set should have an empty diff: %+v", st.Diff)
	}
	if st.UpToDate {
		t.Error("reformatted manifest should not be up to date")
	}
}

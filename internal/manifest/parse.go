package manifest

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fbkclanna/cargows/internal/fsutil"
	"github.com/pelletier/go-toml/v2"
)

// Render writes ws in the fixed workspace manifest layout:
//
//	[workspace]
//	members = [
//	  "a",
//	  "b/nested",
//	]
//
// Each member must be representable as a plain quoted string.
func Render(w io.Writer, ws *Workspace) error {
	if err := Validate(ws); err != nil {
		return err
	}
	var buf bytes.Buffer
	buf.WriteString("[workspace]\nmembers = [\n")
	for _, m := range ws.Members {
		buf.WriteString("  \"")
		buf.WriteString(m)
		buf.WriteString("\",\n")
	}
	buf.WriteString("]\n")
	_, err := w.Write(buf.Bytes())
	return err
}

// Validate checks that every member can be written without escaping.
func Validate(ws *Workspace) error {
	for i, m := range ws.Members {
		if err := validateMember(m); err != nil {
			return &fsutil.FileSystemError{
				Op:   "encode",
				Path: m,
				Err:  fmt.Errorf("manifest: members[%d]: %w", i, err),
			}
		}
	}
	return nil
}

func validateMember(m string) error {
	if m == "" {
		return fmt.Errorf("empty path")
	}
	if !utf8.ValidString(m) {
		return fmt.Errorf("path is not valid UTF-8")
	}
	if strings.ContainsAny(m, `"\`) {
		return fmt.Errorf("path contains a quote or backslash")
	}
	for _, r := range m {
		if unicode.IsControl(r) {
			return fmt.Errorf("path contains control character %U", r)
		}
	}
	return nil
}

// Save renders ws and atomically replaces the file at path.
func Save(path string, ws *Workspace) error {
	if err := Validate(ws); err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(path, func(w io.Writer) error {
		return Render(w, ws)
	})
}

// Load reads an existing workspace manifest.
func Load(path string) (*Workspace, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is the configured manifest path
	if err != nil {
		return nil, fsutil.Wrap("read", path, err)
	}
	return Parse(data)
}

// Parse extracts workspace.members from manifest content. Other tables and keys
// are ignored, so hand-edited manifests with extra sections still parse.
func Parse(data []byte) (*Workspace, error) {
	var doc struct {
		Workspace *Workspace `toml:"workspace"`
	}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing manifest TOML: %w", err)
	}
	if doc.Workspace == nil {
		return nil, fmt.Errorf("manifest: [workspace] table is missing")
	}
	return doc.Workspace, nil
}

// Package discover finds sub-projects by walking a source tree for marker files.
package discover

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/fbkclanna/cargows/internal/fsutil"
	"github.com/rs/zerolog/log"
)

// DefaultMarker is the file whose presence makes a directory a workspace member.
const DefaultMarker = "Cargo.toml"

// Options configures a scan.
type Options struct {
	// Root is the directory to walk. It must exist and be readable.
	Root string
	// Marker is the file base name to look for. Defaults to DefaultMarker.
	Marker string
	// RelativeTo is the directory member paths are expressed against,
	// normally the directory holding the manifest. Defaults to Root.
	RelativeTo string
	// Ignore lists files that never count as markers, such as the
	// manifest being generated.
	Ignore []string
	// Exclude lists directory base names that are not descended into.
	Exclude []string
}

// Member is one discovered sub-project.
type Member struct {
	Path   string `json:"path"`   // slash-separated, relative to Options.RelativeTo
	Marker string `json:"marker"` // marker file path, same base as Path
}

// Scan walks opts.Root and returns one Member per directory that contains a
// marker file, in walk order. A directory is reported once even if it is
// reached through more than one route.
func Scan(opts Options) ([]Member, error) {
	marker := opts.Marker
	if marker == "" {
		marker = DefaultMarker
	}

	if err := fsutil.RequireDir(opts.Root); err != nil {
		return nil, err
	}
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fsutil.Wrap("resolve", opts.Root, err)
	}
	base := root
	if opts.RelativeTo != "" {
		if base, err = filepath.Abs(opts.RelativeTo); err != nil {
			return nil, fsutil.Wrap("resolve", opts.RelativeTo, err)
		}
	}

	ignore := make(map[string]bool, len(opts.Ignore))
	for _, p := range opts.Ignore {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fsutil.Wrap("resolve", p, err)
		}
		ignore[abs] = true
	}
	exclude := make(map[string]bool, len(opts.Exclude))
	for _, name := range opts.Exclude {
		exclude[name] = true
	}

	var members []Member
	seen := make(map[string]bool)
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fsutil.Wrap("walk", path, err)
		}
		if d.IsDir() {
			if path != root && exclude[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() != marker || ignore[path] {
			return nil
		}

		m, err := newMember(base, path)
		if err != nil {
			return err
		}
		if seen[m.Path] {
			return nil
		}
		seen[m.Path] = true
		log.Debug().Str("member", m.Path).Str("marker", m.Marker).Msg("found sub-project")
		members = append(members, m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return members, nil
}

func newMember(base, markerPath string) (Member, error) {
	dir, err := filepath.Rel(base, filepath.Dir(markerPath))
	if err != nil {
		return Member{}, fsutil.Wrap("resolve", markerPath, fmt.Errorf("relative to %s: %w", base, err))
	}
	file, err := filepath.Rel(base, markerPath)
	if err != nil {
		return Member{}, fsutil.Wrap("resolve", markerPath, fmt.Errorf("relative to %s: %w", base, err))
	}
	return Member{Path: filepath.ToSlash(dir), Marker: filepath.ToSlash(file)}, nil
}

// Paths returns the member paths in order.
func Paths(members []Member) []string {
	out := make([]string, len(members))
	for i, m := range members {
		out[i] = m.Path
	}
	return out
}

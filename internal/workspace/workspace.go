package workspace

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fbkclanna/cargows/internal/discover"
	"github.com/fbkclanna/cargows/internal/fsutil"
	"github.com/fbkclanna/cargows/internal/manifest"
	"github.com/rs/zerolog/log"
)

// Context holds the resolved paths and loaded settings for a project.
type Context struct {
	Root         string
	ConfigPath   string // empty when no cargows.yaml exists
	SourceRoot   string
	ManifestPath string
	Config       Config
}

// Load resolves project paths, reading cargows.yaml from root if present.
func Load(root string) (*Context, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving project root: %w", err)
	}

	cfg := DefaultConfig()
	configPath := filepath.Join(root, ConfigFile)
	if _, statErr := os.Stat(configPath); statErr == nil {
		if cfg, err = LoadConfig(configPath); err != nil {
			return nil, err
		}
		log.Debug().Str("path", configPath).Msg("loaded config")
	} else {
		configPath = ""
	}

	return &Context{
		Root:         root,
		ConfigPath:   configPath,
		SourceRoot:   filepath.Join(root, cfg.SourceRoot),
		ManifestPath: filepath.Join(root, cfg.Output),
		Config:       cfg,
	}, nil
}

// ScanOptions returns discovery options whose member paths are relative to
// the manifest's directory and which never count the manifest as a marker.
func (c *Context) ScanOptions() discover.Options {
	return discover.Options{
		Root:       c.SourceRoot,
		Marker:     c.Config.Marker,
		RelativeTo: filepath.Dir(c.ManifestPath),
		Ignore:     []string{c.ManifestPath},
		Exclude:    c.Config.Exclude,
	}
}

// Discover scans the source root for members.
func (c *Context) Discover() ([]discover.Member, error) {
	return discover.Scan(c.ScanOptions())
}

// Result summarizes one regeneration.
type Result struct {
	ManifestPath string
	Members      []discover.Member
}

// Generate scans the source root and replaces the manifest with the
// discovered members. The manifest is untouched when the scan fails.
func (c *Context) Generate() (*Result, error) {
	members, err := c.Discover()
	if err != nil {
		return nil, err
	}
	ws := &manifest.Workspace{Members: discover.Paths(members)}
	if err := manifest.Save(c.ManifestPath, ws); err != nil {
		return nil, err
	}
	log.Info().
		Str("manifest", c.ManifestPath).
		Int("members", len(members)).
		Msg("workspace manifest regenerated")
	return &Result{ManifestPath: c.ManifestPath, Members: members}, nil
}

// Status is the outcome of comparing the manifest on disk with a fresh scan.
type Status struct {
	manifest.Diff
	// UpToDate is true when the file is byte-identical to what Generate
	// would write. Reordered or reformatted members make it false even
	// when Diff is empty.
	UpToDate bool
}

// Check compares the manifest on disk with a fresh scan without writing.
func (c *Context) Check() (*Status, error) {
	members, err := c.Discover()
	if err != nil {
		return nil, err
	}
	want := &manifest.Workspace{Members: discover.Paths(members)}
	var buf bytes.Buffer
	if err := manifest.Render(&buf, want); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(c.ManifestPath) //nolint:gosec // configured manifest path
	if err != nil {
		return nil, fsutil.Wrap("read", c.ManifestPath, err)
	}
	current, err := manifest.Parse(data)
	if err != nil {
		return nil, err
	}
	return &Status{
		Diff:     manifest.Compare(current.Members, want.Members),
		UpToDate: bytes.Equal(data, buf.Bytes()),
	}, nil
}

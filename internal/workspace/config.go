package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fbkclanna/cargows/internal/discover"
	"gopkg.in/yaml.v3"
)

// ConfigFile is the optional per-project settings file.
const ConfigFile = "cargows.yaml"

// Defaults used when no config file is present.
const (
	DefaultSourceRoot = "src"
	DefaultOutput     = "Cargo.toml"
)

// Config represents cargows.yaml. Paths are relative to the project root.
type Config struct {
	Version    int      `yaml:"version"`
	SourceRoot string   `yaml:"source_root,omitempty"`
	Output     string   `yaml:"output,omitempty"`
	Marker     string   `yaml:"marker,omitempty"`
	Exclude    []string `yaml:"exclude,omitempty"`
}

// DefaultConfig returns the settings used without a config file.
func DefaultConfig() Config {
	return Config{
		Version:    1,
		SourceRoot: DefaultSourceRoot,
		Output:     DefaultOutput,
		Marker:     discover.DefaultMarker,
	}
}

// LoadConfig reads and validates a cargows.yaml file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is the project config file
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses cargows.yaml content, filling unset fields with defaults.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	cfg.Version = 0
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config YAML: %w", err)
	}
	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg Config) error {
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported config version: %d (expected 1)", cfg.Version)
	}
	if err := validatePath(cfg.SourceRoot, "source_root"); err != nil {
		return err
	}
	if err := validatePath(cfg.Output, "output"); err != nil {
		return err
	}
	if cfg.Marker == "" || strings.ContainsAny(cfg.Marker, `/\`) {
		return fmt.Errorf("config: marker must be a plain file name: %q", cfg.Marker)
	}
	for i, name := range cfg.Exclude {
		if name == "" || strings.ContainsAny(name, `/\`) {
			return fmt.Errorf("config: exclude[%d] must be a directory name: %q", i, name)
		}
	}
	return nil
}

// validatePath ensures a path is relative and does not escape the project.
func validatePath(p, label string) error {
	if p == "" {
		return fmt.Errorf("config: %s is required", label)
	}
	if filepath.IsAbs(p) {
		return fmt.Errorf("config: %s: absolute path is not allowed: %s", label, p)
	}
	cleaned := filepath.Clean(p)
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return fmt.Errorf("config: %s: path must not escape the project (contains ..): %s", label, p)
	}
	return nil
}

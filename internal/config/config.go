// Package config loads the stoat command line configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/stoat/pkg/loader"
	"github.com/aretw0/stoat/pkg/metadata"
	"github.com/aretw0/stoat/pkg/render"
)

// Config holds the settings shared by every command. Flags override it.
type Config struct {
	Format       string        `yaml:"format"`
	Strict       bool          `yaml:"strict"`
	Pattern      string        `yaml:"pattern"`
	MetadataKeys metadata.Keys `yaml:"metadata_keys"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Format:       render.Markdown.String(),
		Pattern:      loader.DefaultPattern,
		MetadataKeys: metadata.DefaultKeys(),
	}
}

// ConfigPath returns the default location of the config file.
// Can be overridden for testing.
var ConfigPath = func() string {
	return filepath.Join(xdg.ConfigHome, "stoat", "config.yaml")
}

// Load reads the file at path, or at ConfigPath when path is empty.
// A missing file yields the defaults. Fields absent from the file keep their default.
func Load(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the format name and the pattern.
func (c *Config) Validate() error {
	if _, err := render.ParseFormat(c.Format); err != nil {
		return err
	}
	if !doublestar.ValidatePattern(c.Pattern) {
		return fmt.Errorf("%w: %q", loader.ErrBadPattern, c.Pattern)
	}
	return nil
}

// RenderFormat returns the parsed Format. Call Validate first.
func (c *Config) RenderFormat() render.Format {
	f, _ := render.ParseFormat(c.Format)
	return f
}

// Package config loads jsinspect configuration from .jsinspectrc-style
// files and provides defaults.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all configuration options for jsinspect.
type Config struct {
	// Threshold is the number of pre-order nodes a subtree must span to be
	// a duplicate candidate.
	Threshold int `koanf:"threshold"`

	// Matches is the minimum number of instances to report a match.
	Matches int `koanf:"matches"`

	// Identifiers requires identifier names to correspond, not just
	// structure.
	Identifiers bool `koanf:"identifiers"`

	// Diff attaches unified diffs to reported matches.
	Diff bool `koanf:"diff"`

	// Truncate limits the source lines shown per instance (0 = all).
	Truncate int `koanf:"truncate"`

	// Reporter selects the output format: default, json or pmd.
	Reporter string `koanf:"reporter"`

	// Ignore lists doublestar patterns excluded from scanning.
	Ignore []string `koanf:"ignore"`

	// Gitignore honors .gitignore files during scanning.
	Gitignore bool `koanf:"gitignore"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Threshold: 15,
		Matches:   2,
		Diff:      true,
		Reporter:  "default",
		Ignore: []string{
			"**/.git/**",
			"**/node_modules/**",
			"**/bower_components/**",
			"**/dist/**",
			"**/build/**",
			"**/coverage/**",
			"**/*.min.js",
		},
		Gitignore: true,
	}
}

// Load loads configuration from a file, layered over the defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	var parser koanf.Parser
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		parser = toml.Parser()
	case ".yaml", ".yml":
		parser = yaml.Parser()
	default:
		// .jsinspectrc and .json are both JSON.
		parser = json.Parser()
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.Normalize()
	return cfg, nil
}

// LoadOrDefault tries standard config locations or returns defaults.
func LoadOrDefault() *Config {
	configNames := []string{
		".jsinspectrc",
		".jsinspectrc.json",
		".jsinspectrc.yaml",
		".jsinspectrc.yml",
		".jsinspectrc.toml",
		"jsinspect.toml",
	}

	for _, name := range configNames {
		if _, err := os.Stat(name); err == nil {
			cfg, err := Load(name)
			if err == nil {
				return cfg
			}
		}
	}

	return DefaultConfig()
}

// Normalize clamps values to their minimum meaningful bounds.
func (c *Config) Normalize() {
	if c.Threshold < 1 {
		c.Threshold = 1
	}
	if c.Matches < 2 {
		c.Matches = 2
	}
	if c.Truncate < 0 {
		c.Truncate = 0
	}
	if c.Reporter == "" {
		c.Reporter = "default"
	}
}

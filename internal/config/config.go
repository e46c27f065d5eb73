// Package config handles loading configuration from .pathlenrc files.
// Both YAML (.pathlenrc.yaml) and TOML (.pathlenrc.toml) are supported;
// when both exist in the same directory the YAML file wins.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config file names, in precedence order.
const (
	YAMLConfigFileName = ".pathlenrc.yaml"
	TOMLConfigFileName = ".pathlenrc.toml"
)

// Config represents the complete configuration structure. Zero values
// mean "not set"; Threshold is a pointer so an explicit 0 survives.
type Config struct {
	Threshold *int     `yaml:"threshold" toml:"threshold"`
	Unit      string   `yaml:"unit" toml:"unit"`
	Include   []string `yaml:"include" toml:"include"`
	Exclude   []string `yaml:"exclude" toml:"exclude"`
}

// Load reads configuration from the current directory.
// Returns an empty config if no file exists (not an error).
func Load() (*Config, error) {
	return FindAndLoad(".")
}

// LoadFrom reads configuration from a specific path, choosing the parser
// by extension. Returns an empty config if the file doesn't exist.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	default:
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// FindAndLoad searches for a config file starting from the given
// directory and walking up to parent directories until it finds one or
// reaches the filesystem root.
func FindAndLoad(startDir string) (*Config, error) {
	dir := startDir

	for {
		for _, name := range []string{YAMLConfigFileName, TOMLConfigFileName} {
			configPath := filepath.Join(dir, name)
			if _, err := os.Stat(configPath); err == nil {
				return LoadFrom(configPath)
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return &Config{}, nil
		}
		dir = parent
	}
}

// IsEmpty returns true if nothing was configured.
func (c *Config) IsEmpty() bool {
	return c.Threshold == nil &&
		c.Unit == "" &&
		len(c.Include) == 0 &&
		len(c.Exclude) == 0
}

// Merge overlays another config onto this one: scalars from other win
// when set, pattern lists are additive.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.Threshold != nil {
		c.Threshold = other.Threshold
	}
	if other.Unit != "" {
		c.Unit = other.Unit
	}
	c.Include = append(c.Include, other.Include...)
	c.Exclude = append(c.Exclude, other.Exclude...)
}

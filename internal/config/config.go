// Package config loads the optional .govlint.yml configuration file.
// Flags always win over file values; the file exists so repositories
// can pin a profile and ignore patterns without wrapper scripts.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file name looked up in the working
// directory when no --config flag is given.
const DefaultFile = ".govlint.yml"

// Config mirrors the YAML file. Zero values mean "not set".
type Config struct {
	Profile           string   `yaml:"profile"`
	Format            string   `yaml:"format"`
	SeverityThreshold string   `yaml:"severity_threshold"`
	Ignore            []string `yaml:"ignore"`
	Jobs              int      `yaml:"jobs"`
	Redact            *bool    `yaml:"redact"`
}

// Load reads a config file. With an empty path it tries DefaultFile and
// returns an empty config when the file does not exist; an explicit
// path that does not exist is an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &cfg, nil
}

// Ignored reports whether path matches any of the configured ignore
// globs. Patterns support doublestar (**) matching against the
// slash-normalized path and its base name.
func (c *Config) Ignored(path string) bool {
	slashed := filepath.ToSlash(path)
	base := filepath.Base(path)
	for _, pattern := range c.Ignore {
		if ok, err := doublestar.Match(pattern, slashed); err == nil && ok {
			return true
		}
		if ok, err := doublestar.Match(pattern, base); err == nil && ok {
			return true
		}
	}
	return false
}

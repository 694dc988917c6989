// Package config handles ember.toml project configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the project configuration file looked up by Load.
const FileName = "ember.toml"

// Config represents an ember.toml configuration.
type Config struct {
	Repl  Repl  `toml:"repl"`
	Cache Cache `toml:"cache"`
	Debug Debug `toml:"debug"`

	// Dir is the directory the config was loaded from (set at load time).
	Dir string `toml:"-"`
}

// Repl configures the interactive session.
type Repl struct {
	History string `toml:"history"`
}

// Cache configures the compile cache.
type Cache struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Debug configures diagnostic output.
type Debug struct {
	Disassemble bool `toml:"disassemble"`
	Trace       bool `toml:"trace"`
}

// Default returns the configuration used when no ember.toml exists.
func Default() *Config {
	return &Config{
		Repl:  Repl{History: ".ember_history"},
		Cache: Cache{Enabled: true, Path: ".ember_cache.db"},
	}
}

// Load parses ember.toml from the given directory. A missing file is not
// an error: the defaults are returned.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := Default()
			cfg.Dir = dir
			return cfg, nil
		}
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	cfg.Dir = dir
	return cfg, nil
}

// HistoryPath resolves the REPL history file relative to the config dir.
func (c *Config) HistoryPath() string {
	return c.resolve(c.Repl.History)
}

// CachePath resolves the compile cache database relative to the config dir.
func (c *Config) CachePath() string {
	return c.resolve(c.Cache.Path)
}

func (c *Config) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || c.Dir == "" {
		return path
	}
	return filepath.Join(c.Dir, path)
}

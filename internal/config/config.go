// Package config loads kiln's optional user configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds user defaults read from config.toml. Flags override
// every field; the zero value is a valid configuration.
type Config struct {
	// Prefix is the default installation prefix.
	Prefix string `toml:"prefix"`
	// Verbose flips the default output mode. Nil means unset.
	Verbose *bool `toml:"verbose"`
	// CacheDir overrides the clone cache root.
	CacheDir string `toml:"cache_dir"`
}

// Path returns the config file location under the user config dir.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "kiln", "config.toml"), nil
}

// Load reads the config file at path. A missing file yields the zero
// Config without error.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Package config loads clawtrack's user preferences.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const configFileName = "config.yaml"

// Config holds user preferences.
type Config struct {
	// DataDir overrides where the inventory store lives. Empty means the
	// config directory itself.
	DataDir string `yaml:"data_dir"`

	// Store selects the persistence backend: "file", "sqlite" or "memory".
	Store string `yaml:"store"`

	// Theme is "auto", "light" or "dark".
	Theme string `yaml:"theme"`

	// SaveDelayMS is the debounce delay before a change is written.
	SaveDelayMS int `yaml:"save_delay_ms"`

	// SavedNoticeMS is how long the "saved" indicator stays visible.
	SavedNoticeMS int `yaml:"saved_notice_ms"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Store:         "file",
		Theme:         "auto",
		SaveDelayMS:   500,
		SavedNoticeMS: 3000,
	}
}

// SaveDelay returns the debounce delay as a duration.
func (c Config) SaveDelay() time.Duration {
	return time.Duration(c.SaveDelayMS) * time.Millisecond
}

// SavedNotice returns the indicator display time as a duration.
func (c Config) SavedNotice() time.Duration {
	return time.Duration(c.SavedNoticeMS) * time.Millisecond
}

// ResolveDataDir returns the directory the store lives in.
func (c Config) ResolveDataDir() (string, error) {
	if c.DataDir != "" {
		return c.DataDir, nil
	}
	return Dir()
}

// Dir returns the directory where config is stored. A project-local
// .clawtrack directory is preferred if present; otherwise the home-level
// one is used.
func Dir() (string, error) {
	if cwd, err := os.Getwd(); err == nil {
		localDir := filepath.Join(cwd, ".clawtrack")
		if stat, err := os.Stat(localDir); err == nil && stat.IsDir() {
			return localDir, nil
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".clawtrack"), nil
}

// File returns the full path to the config file.
func File() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Load reads the configuration from disk. A missing file yields defaults;
// a malformed one is an error so a typo never silently resets preferences.
func Load() (Config, error) {
	path, err := File()
	if err != nil {
		return DefaultConfig(), err
	}
	return LoadFrom(path)
}

// LoadFrom reads the configuration from an explicit path.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.SaveDelayMS <= 0 {
		cfg.SaveDelayMS = 500
	}
	if cfg.SavedNoticeMS <= 0 {
		cfg.SavedNoticeMS = 3000
	}
	return cfg, nil
}

// Save writes the configuration to disk.
func Save(cfg Config) error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	path := filepath.Join(dir, configFileName)
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

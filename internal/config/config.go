// Package config loads user-overridable settings from a .codescout.yaml
// dotfile, with environment overrides for deployment.
package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds user-overridable server settings.
// Loaded from .codescout.yaml in the working directory, or from the file
// named by CODESCOUT_CONFIG.
type Config struct {
	Cache CacheConfig `yaml:"cache"`
	Scan  ScanConfig  `yaml:"scan"`
	Tools ToolsConfig `yaml:"tools"`
}

// CacheConfig holds repository cache settings.
type CacheConfig struct {
	// Dir is where cached clones live.
	// Default: <tempdir>/code-scout-cache.
	Dir string `yaml:"dir"`

	// MaxAgeHours is the clone TTL in hours.
	// Default: 24.
	MaxAgeHours *int `yaml:"max_age_hours"`

	// MaxSizeMiB is the cache size ceiling.
	// Default: 5000.
	MaxSizeMiB *int64 `yaml:"max_size_mib"`

	// CloneTimeoutSeconds bounds a single git clone.
	// Default: 300.
	CloneTimeoutSeconds *int `yaml:"clone_timeout_seconds"`
}

// ScanConfig holds symbol scanner settings.
type ScanConfig struct {
	// FilePattern is the default glob for files to scan.
	// Default: *.py.
	FilePattern string `yaml:"file_pattern"`
}

// ToolsConfig holds subprocess tool settings.
type ToolsConfig struct {
	// GrepTimeoutSeconds bounds a grep run.
	// Default: 30.
	GrepTimeoutSeconds *int `yaml:"grep_timeout_seconds"`

	// BlameTimeoutSeconds bounds a git blame run.
	// Default: 30.
	BlameTimeoutSeconds *int `yaml:"blame_timeout_seconds"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{}
}

// Load reads the config file. The CODESCOUT_CONFIG environment variable
// names an explicit file; otherwise .codescout.yaml in dir is tried.
// Returns defaults if no file exists or it fails to parse.
func Load(dir string) *Config {
	cfg := Default()

	path := os.Getenv("CODESCOUT_CONFIG")
	if path == "" {
		path = filepath.Join(dir, ".codescout.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg // file not found or unreadable — use defaults
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return Default() // invalid YAML — use defaults
	}

	return cfg
}

// EffectiveCacheDir returns the configured cache directory, or the default
// under the system temp dir if not set.
func (c *Config) EffectiveCacheDir() string {
	if c.Cache.Dir != "" {
		return c.Cache.Dir
	}
	return filepath.Join(os.TempDir(), "code-scout-cache")
}

// EffectiveMaxAge returns the configured clone TTL, or the default (24h)
// if not set.
func (c *Config) EffectiveMaxAge() time.Duration {
	if c.Cache.MaxAgeHours != nil {
		return time.Duration(*c.Cache.MaxAgeHours) * time.Hour
	}
	return 24 * time.Hour
}

// EffectiveMaxSizeMiB returns the configured cache ceiling, or the default
// (5000 MiB) if not set.
func (c *Config) EffectiveMaxSizeMiB() int64 {
	if c.Cache.MaxSizeMiB != nil {
		return *c.Cache.MaxSizeMiB
	}
	return 5000
}

// EffectiveCloneTimeout returns the configured clone timeout, or the
// default (300s) if not set.
func (c *Config) EffectiveCloneTimeout() time.Duration {
	if c.Cache.CloneTimeoutSeconds != nil {
		return time.Duration(*c.Cache.CloneTimeoutSeconds) * time.Second
	}
	return 300 * time.Second
}

// EffectiveFilePattern returns the configured scan glob, or the default
// (*.py) if not set.
func (c *Config) EffectiveFilePattern() string {
	if c.Scan.FilePattern != "" {
		return c.Scan.FilePattern
	}
	return "*.py"
}

// EffectiveGrepTimeout returns the configured grep timeout, or the default
// (30s) if not set.
func (c *Config) EffectiveGrepTimeout() time.Duration {
	if c.Tools.GrepTimeoutSeconds != nil {
		return time.Duration(*c.Tools.GrepTimeoutSeconds) * time.Second
	}
	return 30 * time.Second
}

// EffectiveBlameTimeout returns the configured blame timeout, or the
// default (30s) if not set.
func (c *Config) EffectiveBlameTimeout() time.Duration {
	if c.Tools.BlameTimeoutSeconds != nil {
		return time.Duration(*c.Tools.BlameTimeoutSeconds) * time.Second
	}
	return 30 * time.Second
}

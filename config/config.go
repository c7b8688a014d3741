// Package config handles verdict.toml configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/chazu/verdict/cache"
	"github.com/chazu/verdict/loader"
)

// Config represents a verdict.toml file.
type Config struct {
	Cache CacheConfig `toml:"cache"`
	Pool  PoolConfig  `toml:"pool"`
}

// CacheConfig selects the snippet-blob cache backend.
type CacheConfig struct {
	// Backend is "memory", "sqlite", "file" or "none".
	Backend string `toml:"backend"`

	// Path is the database file (sqlite) or directory (file).
	Path string `toml:"path"`
}

// PoolConfig overrides the relationship node-pool minimums per loader
// category. Zero means use the built-in heuristic.
type PoolConfig struct {
	System      int `toml:"system"`
	Extension   int `toml:"extension"`
	Application int `toml:"application"`
	Custom      int `toml:"custom"`
}

// Default returns the configuration used when no verdict.toml exists.
func Default() *Config {
	return &Config{
		Cache: CacheConfig{Backend: "memory"},
	}
}

// Load parses a verdict.toml file from the given directory. A missing
// file is not an error; defaults are returned.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, "verdict.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	c := Default()
	if err := toml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	return c, nil
}

// OpenStore creates the configured cache backend. Returns nil (and no
// error) for backend "none": verification then always takes the fresh
// path.
func (c *Config) OpenStore() (cache.Store, error) {
	switch c.Cache.Backend {
	case "", "memory":
		return cache.NewMemoryStore(), nil
	case "sqlite":
		return cache.NewSQLiteStore(c.Cache.Path)
	case "file":
		return cache.NewFileStore(c.Cache.Path)
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %q", c.Cache.Backend)
	}
}

// PoolMinimum returns the node-pool minimum for a loader category,
// honoring any configured override.
func (c *Config) PoolMinimum(category loader.Category) int {
	var override int
	switch category {
	case loader.CategorySystem:
		override = c.Pool.System
	case loader.CategoryExtension:
		override = c.Pool.Extension
	case loader.CategoryApplication:
		override = c.Pool.Application
	default:
		override = c.Pool.Custom
	}
	if override > 0 {
		return override
	}
	return category.PoolMinimum()
}

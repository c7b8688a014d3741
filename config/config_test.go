package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chazu/verdict/cache"
	"github.com/chazu/verdict/loader"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "verdict.toml"), []byte(content), 0644); err != nil {
		t.Fatalf("writing verdict.toml: %v", err)
	}
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	c, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Cache.Backend != "memory" {
		t.Errorf("Backend = %q, want memory", c.Cache.Backend)
	}
}

func TestLoad_ParsesFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
[cache]
backend = "sqlite"
path = "snippets.db"

[pool]
system = 512
`)

	c, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Cache.Backend != "sqlite" || c.Cache.Path != "snippets.db" {
		t.Errorf("Cache = %+v", c.Cache)
	}
	if c.Pool.System != 512 {
		t.Errorf("Pool.System = %d, want 512", c.Pool.System)
	}
}

func TestLoad_RejectsBadTOML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "[cache\nbackend =")
	if _, err := Load(dir); err == nil {
		t.Error("Load accepted malformed TOML")
	}
}

func TestOpenStore_Backends(t *testing.T) {
	dir := t.TempDir()

	mem, err := (&Config{Cache: CacheConfig{Backend: "memory"}}).OpenStore()
	if err != nil || mem == nil {
		t.Errorf("memory backend: store=%v err=%v", mem, err)
	}

	none, err := (&Config{Cache: CacheConfig{Backend: "none"}}).OpenStore()
	if err != nil || none != nil {
		t.Errorf("none backend: store=%v err=%v", none, err)
	}

	fileStore, err := (&Config{Cache: CacheConfig{Backend: "file", Path: filepath.Join(dir, "blobs")}}).OpenStore()
	if err != nil {
		t.Fatalf("file backend: %v", err)
	}
	if _, ok := fileStore.(*cache.FileStore); !ok {
		t.Errorf("file backend returned %T", fileStore)
	}

	if _, err := (&Config{Cache: CacheConfig{Backend: "bogus"}}).OpenStore(); err == nil {
		t.Error("unknown backend accepted")
	}
}

func TestPoolMinimum_OverridesAndFallback(t *testing.T) {
	c := Default()
	if got := c.PoolMinimum(loader.CategorySystem); got != loader.CategorySystem.PoolMinimum() {
		t.Errorf("unconfigured minimum = %d, want heuristic %d", got, loader.CategorySystem.PoolMinimum())
	}

	c.Pool.System = 999
	if got := c.PoolMinimum(loader.CategorySystem); got != 999 {
		t.Errorf("override = %d, want 999", got)
	}
	if got := c.PoolMinimum(loader.CategoryCustom); got != loader.CategoryCustom.PoolMinimum() {
		t.Errorf("custom minimum = %d, want heuristic", got)
	}
}

package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/vouchjs/pkg/cache"
	"github.com/matzehuels/vouchjs/pkg/config"
)

func TestCacheDir(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	dir, err := cacheDir(config.CacheConfig{})
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(xdg, "vouch-js"); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}

	dir, err = cacheDir(config.CacheConfig{Dir: "/srv/cache"})
	if err != nil || dir != "/srv/cache" {
		t.Errorf("cacheDir() = %q, %v; want the configured directory", dir, err)
	}
}

func TestNewCache(t *testing.T) {
	store, err := newCache(context.Background(), config.CacheConfig{Backend: config.CacheNone})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := store.(*cache.NullCache); !ok {
		t.Errorf("none backend = %T, want *cache.NullCache", store)
	}

	dir := t.TempDir()
	store, err = newCache(context.Background(), config.CacheConfig{Backend: config.CacheFile, Dir: dir})
	if err != nil {
		t.Fatal(err)
	}
	fc, ok := store.(*cache.FileCache)
	if !ok || fc.Dir() != dir {
		t.Errorf("file backend = %T, want *cache.FileCache in %s", store, dir)
	}
}

func TestCachePathCommand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "docs")
	path := writeTestConfig(t, t.TempDir(), "[cache]\nbackend = \"file\"\ndir = \""+filepath.ToSlash(dir)+"\"\n")

	out, err := execute(t, New(io.Discard, LogInfo), "--config", path, "cache", "path")
	if err != nil {
		t.Fatalf("cache path error: %v", err)
	}
	if strings.TrimSpace(out) != filepath.ToSlash(dir) {
		t.Errorf("cache path = %q, want %q", out, dir)
	}
}

func TestCacheClearCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeTestConfig(t, t.TempDir(), "[cache]\nbackend = \"file\"\ndir = \""+filepath.ToSlash(dir)+"\"\n")

	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if err := fc.Set(ctx, "npm:registry:npmjs.com:left-pad", []byte(`{}`), time.Hour); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, New(io.Discard, LogInfo), "--config", path, "cache", "clear")
	if err != nil {
		t.Fatalf("cache clear error: %v", err)
	}
	if !strings.Contains(out, "Cleared the file cache") {
		t.Errorf("cache clear output = %q", out)
	}

	if _, ok, _ := fc.Get(ctx, "npm:registry:npmjs.com:left-pad"); ok {
		t.Error("entry should be gone after cache clear")
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("cache directory should still exist: %v", err)
	}
}

func TestCacheClearDisabled(t *testing.T) {
	path := writeTestConfig(t, t.TempDir(), "")

	out, err := execute(t, New(io.Discard, LogInfo), "--config", path, "cache", "clear")
	if err != nil {
		t.Fatalf("cache clear error: %v", err)
	}
	if !strings.Contains(out, "Caching is disabled") {
		t.Errorf("cache clear output = %q", out)
	}
}

func TestMetadataCommandUsesFileCache(t *testing.T) {
	dir := t.TempDir()
	base := registryConfig(t)
	data, err := os.ReadFile(base)
	if err != nil {
		t.Fatal(err)
	}
	path := writeTestConfig(t, t.TempDir(), string(data)+"\n[cache]\nbackend = \"file\"\ndir = \""+filepath.ToSlash(dir)+"\"\n")

	if _, err := execute(t, New(io.Discard, LogInfo), "--config", path, "metadata", "left-pad"); err != nil {
		t.Fatalf("metadata error: %v", err)
	}

	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := fc.Get(context.Background(), cacheNamespace+cache.Key("registry", "npm.example", "left-pad")); !ok {
		t.Error("registry document should be cached under the npm namespace")
	}
}

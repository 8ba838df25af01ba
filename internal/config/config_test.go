package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.URL != "http://localhost:3001" {
		t.Errorf("Server.URL = %q, want default", cfg.Server.URL)
	}
	if !cfg.UI.VimMode {
		t.Error("VimMode default should be true")
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.Server.URL = "http://example.test:9000"
	cfg.UI.VimMode = false
	cfg.UI.ListHeight = 25

	if err := Save(cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Server.URL != "http://example.test:9000" {
		t.Errorf("Server.URL = %q", loaded.Server.URL)
	}
	if loaded.UI.VimMode {
		t.Error("VimMode not persisted as false")
	}
	if loaded.UI.ListHeight != 25 {
		t.Errorf("ListHeight = %d, want 25", loaded.UI.ListHeight)
	}
}

func TestConfigFilePermissions(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if err := Save(DefaultConfig()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	path, err := ConfigPath()
	if err != nil {
		t.Fatalf("ConfigPath() error = %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("config file mode = %o, want 0600", perm)
	}
	if filepath.Base(path) != "config.yaml" {
		t.Errorf("config file name = %s", filepath.Base(path))
	}
}

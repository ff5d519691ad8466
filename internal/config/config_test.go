package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.ViewerURL != "https://chaturbate.com/%s/" {
		t.Fatalf("viewer url = %q", cfg.ViewerURL)
	}
	if cfg.GridColumns != 3 {
		t.Fatalf("grid columns = %d", cfg.GridColumns)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("log level = %q", cfg.LogLevel)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("STREAMWALL_VIEWER_URL", "https://example.com/%s")
	t.Setenv("STREAMWALL_GRID_COLUMNS", "5")
	t.Setenv("STREAMWALL_LOG_LEVEL", "debug")

	cfg := DefaultConfig()
	if cfg.ViewerURL != "https://example.com/%s" {
		t.Fatalf("viewer url = %q", cfg.ViewerURL)
	}
	if cfg.GridColumns != 5 {
		t.Fatalf("grid columns = %d", cfg.GridColumns)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("log level = %q", cfg.LogLevel)
	}
}

func TestEnvOverrideBadInt(t *testing.T) {
	t.Setenv("STREAMWALL_GRID_COLUMNS", "lots")
	if cfg := DefaultConfig(); cfg.GridColumns != 3 {
		t.Fatalf("grid columns = %d, want default 3", cfg.GridColumns)
	}
}

func TestLoadFileMissing(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should fall back to defaults: %v", err)
	}
	if cfg.GridColumns != 3 {
		t.Fatalf("grid columns = %d", cfg.GridColumns)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "viewer_url: https://example.com/%s\ngrid_columns: 4\nlog_level: info\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ViewerURL != "https://example.com/%s" {
		t.Fatalf("viewer url = %q", cfg.ViewerURL)
	}
	if cfg.GridColumns != 4 {
		t.Fatalf("grid columns = %d", cfg.GridColumns)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("log level = %q", cfg.LogLevel)
	}
	// Fields the file omits keep their defaults.
	if cfg.DBPath != "" {
		t.Fatalf("db_path should stay at its default: %+v", cfg)
	}
}

func TestLoadFileInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("grid_columns: [broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected parse error")
	}
}

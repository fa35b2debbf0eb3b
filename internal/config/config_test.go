package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("TASKCHAT_DB", "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBPath == "" {
		t.Error("expected a default db path")
	}
	if cfg.Listen != ":8080" {
		t.Errorf("expected default listen :8080, got %q", cfg.Listen)
	}
	if len(cfg.AllowedOrigins) == 0 {
		t.Error("expected default allowed origins")
	}
}

func TestLoadFile(t *testing.T) {
	t.Setenv("TASKCHAT_DB", "")

	path := filepath.Join(t.TempDir(), "taskchat.toml")
	data := `
db_path = "/tmp/board.db"
listen = ":9000"
allowed_origins = ["https://example.com"]
debug = true
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBPath != "/tmp/board.db" {
		t.Errorf("db_path = %q", cfg.DBPath)
	}
	if cfg.Listen != ":9000" {
		t.Errorf("listen = %q", cfg.Listen)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "https://example.com" {
		t.Errorf("allowed_origins = %v", cfg.AllowedOrigins)
	}
	if !cfg.Debug {
		t.Error("expected debug true")
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskchat.toml")
	os.WriteFile(path, []byte(`db_path = "/tmp/from-file.db"`), 0o644)

	t.Setenv("TASKCHAT_DB", "/tmp/from-env.db")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBPath != "/tmp/from-env.db" {
		t.Errorf("expected env to win, got %q", cfg.DBPath)
	}
}

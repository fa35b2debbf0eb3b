// Package config loads taskchat settings from a TOML file with
// environment and built-in fallbacks.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config holds every tunable of the binary. Zero values are filled with
// defaults by Load.
type Config struct {
	// DBPath is the SQLite database location.
	DBPath string `toml:"db_path"`
	// Listen is the HTTP server bind address.
	Listen string `toml:"listen"`
	// AllowedOrigins is the CORS allowlist for the chat API.
	AllowedOrigins []string `toml:"allowed_origins"`
	// Debug enables verbose logging.
	Debug bool `toml:"debug"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DBPath:         defaultDBPath(),
		Listen:         ":8080",
		AllowedOrigins: []string{"http://localhost:5173", "http://localhost:3000"},
	}
}

// Load reads a TOML config file and overlays it on the defaults. An
// empty path means defaults only; a missing file at an explicit path is
// an error. TASKCHAT_DB overrides the database path either way.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	if env := os.Getenv("TASKCHAT_DB"); env != "" {
		cfg.DBPath = env
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath()
	}
	if cfg.Listen == "" {
		cfg.Listen = ":8080"
	}
	return cfg, nil
}

func defaultDBPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".taskchat", "taskchat.db")
}

// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Layouts.QueueSize != 64 {
		t.Errorf("Layouts.QueueSize = %d, want 64", cfg.Layouts.QueueSize)
	}
	if cfg.Editor.SessionTTL != 30*time.Minute {
		t.Errorf("Editor.SessionTTL = %v, want 30m", cfg.Editor.SessionTTL)
	}
	if !reflect.DeepEqual(cfg.Security.CORSOrigins, []string{"*"}) {
		t.Errorf("Security.CORSOrigins = %v", cfg.Security.CORSOrigins)
	}

	// Defaults are complete except for the secret.
	cfg.Security.JWTSecret = testSecret
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() on defaults = %v", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"HTTP_PORT":           "server.port",
		"DUCKDB_PATH":         "database.path",
		"BADGER_PATH":         "layouts.path",
		"JWT_SECRET":          "security.jwt_secret",
		"EDITOR_POINTER_RATE": "editor.pointer_move_rate",
		"LOG_LEVEL":           "logging.level",
		"HOME":                "",
		"PATH":                "",
	}
	for in, want := range tests {
		if got := envTransformFunc(in); got != want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", in, got, want)
		}
	}
}

// t.Setenv forbids t.Parallel in the tests below.

func TestLoadWithKoanf_EnvOverrides(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("CORS_ORIGINS", "https://a.example.org, https://b.example.org")
	t.Setenv("EDITOR_SESSION_TTL", "5m")
	t.Setenv("SEED_DATA", "true")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if want := []string{"https://a.example.org", "https://b.example.org"}; !reflect.DeepEqual(cfg.Security.CORSOrigins, want) {
		t.Errorf("CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, want)
	}
	if cfg.Editor.SessionTTL != 5*time.Minute {
		t.Errorf("Editor.SessionTTL = %v, want 5m", cfg.Editor.SessionTTL)
	}
	if !cfg.Database.Seed {
		t.Error("Database.Seed = false, want true")
	}
}

func TestLoadWithKoanf_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := []byte(`
server:
  port: 7000
layouts:
  path: /tmp/layouts
logging:
  level: debug
security:
  jwt_secret: ` + testSecret + `
`)
	if err := os.WriteFile(path, yaml, 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("Server.Port = %d, want 7000 from file", cfg.Server.Port)
	}
	if cfg.Layouts.Path != "/tmp/layouts" {
		t.Errorf("Layouts.Path = %q", cfg.Layouts.Path)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want env to win over file", cfg.Logging.Level)
	}
}

func TestLoadWithKoanf_MissingSecret(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("JWT_SECRET", "")

	if _, err := LoadWithKoanf(); err == nil {
		t.Fatal("LoadWithKoanf() without JWT_SECRET succeeded")
	}
}

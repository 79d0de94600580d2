package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/pulse/internal/constants"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	cfg := NewDefault("/tmp/pulse")
	if err := LoadOrDefault(filepath.Join(t.TempDir(), "absent.yaml"), cfg); err != nil {
		t.Fatalf("LoadOrDefault() error = %v", err)
	}
	if cfg.Storage.Backend != constants.BackendJSON || cfg.Scheduler.Interval != time.Minute {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.StoragePath() != "/tmp/pulse/data" {
		t.Errorf("StoragePath() = %q", cfg.StoragePath())
	}
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("PULSE_TEST_PORT", "9999")
	path := writeConfig(t, `
storage:
  backend: sqlite
scheduler:
  interval: 30s
http:
  port: ${PULSE_TEST_PORT}
log:
  debug: true
`)
	cfg := NewDefault("/tmp/pulse")
	if err := LoadOrDefault(path, cfg); err != nil {
		t.Fatalf("LoadOrDefault() error = %v", err)
	}
	if cfg.HTTP.Port != 9999 || cfg.Scheduler.Interval != 30*time.Second || !cfg.Log.Debug {
		t.Errorf("cfg = %+v", cfg)
	}
	if !cfg.Tray.Enabled {
		t.Error("unset keys should keep defaults")
	}
	if cfg.StoragePath() != "/tmp/pulse/pulse.db" {
		t.Errorf("StoragePath() = %q", cfg.StoragePath())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"bad backend", "storage:\n  backend: redis\n", "storage"},
		{"dsn with password", "storage:\n  backend: postgres\n  dsn: postgres://u:pw@localhost/pulse\n", "storage.dsn"},
		{"interval too small", "scheduler:\n  interval: 10ms\n", "scheduler"},
		{"port out of range", "http:\n  port: 70000\n", "http"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := LoadOrDefault(writeConfig(t, tt.body), NewDefault("/tmp/pulse"))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("LoadOrDefault() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestPostgresDSNWithoutPassword(t *testing.T) {
	path := writeConfig(t, "storage:\n  backend: postgres\n  dsn: postgres://pulse@localhost/pulse\n")
	if err := LoadOrDefault(path, NewDefault("/tmp/pulse")); err != nil {
		t.Errorf("LoadOrDefault() error = %v", err)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandPath("~/pulse"); got != filepath.Join(home, "pulse") {
		t.Errorf("ExpandPath(~/pulse) = %q", got)
	}
	if got := ExpandPath("/abs/path"); got != "/abs/path" {
		t.Errorf("ExpandPath(/abs/path) = %q", got)
	}
}

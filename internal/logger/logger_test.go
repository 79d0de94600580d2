package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Options{Dir: configDir, Command: "note add"}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}
	if Logger.GetLevel() != log.InfoLevel {
		t.Errorf("expected info level, got %v", Logger.GetLevel())
	}

	want := filepath.Join(configDir, "logs", "pulse.log")
	if Path() != want {
		t.Errorf("Path() = %q, want %q", Path(), want)
	}

	Debug("hidden at info level")
	Info("note added", "id", "n1")
	Warn("warning message", "count", 2)

	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	got := string(data)
	if !strings.Contains(got, "note added") || !strings.Contains(got, "cmd=\"note add\"") {
		t.Errorf("log file = %q", got)
	}
	if strings.Contains(got, "hidden at info level") {
		t.Errorf("debug line written at info level: %q", got)
	}
}

func TestInitDebugMode(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Options{Debug: true, Dir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger in debug mode: %v", err)
	}
	if Logger.GetLevel() != log.DebugLevel {
		t.Errorf("expected debug level, got %v", Logger.GetLevel())
	}
}

func TestMirrored(t *testing.T) {
	tests := []struct {
		command string
		want    bool
	}{
		{"watch", true},
		{"serve", true},
		{"note add", false},
		{"mark <activity>", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := Mirrored(tt.command); got != tt.want {
			t.Errorf("Mirrored(%q) = %v, want %v", tt.command, got, tt.want)
		}
	}
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	// Must not panic before Init
	Debug("debug")
	Info("info")
	Warn("warn")
	Error("error")
	if Path() != "" {
		t.Errorf("Path() before Init = %q", Path())
	}
}

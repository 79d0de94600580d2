package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/pulse/internal/constants"
)

// The marker file remembers the active account between CLI invocations.

func markerPath(configDir string) string {
	return filepath.Join(configDir, constants.SessionFileName)
}

// SaveMarker records email as the active account.
func SaveMarker(configDir, email string) error {
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(markerPath(configDir), []byte(email+"\n"), 0600); err != nil {
		return fmt.Errorf("failed to write session marker: %w", err)
	}
	return nil
}

// ReadMarker returns the active account, or "" when nobody is logged in.
func ReadMarker(configDir string) (string, error) {
	data, err := os.ReadFile(markerPath(configDir))
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read session marker: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func ClearMarker(configDir string) error {
	err := os.Remove(markerPath(configDir))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session marker: %w", err)
	}
	return nil
}

// Package backup exports and imports account payloads as JSON files.
package backup

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/pulse/internal/constants"
	"github.com/julianstephens/pulse/internal/logger"
	"github.com/julianstephens/pulse/internal/models"
	"github.com/julianstephens/pulse/internal/session"
	"github.com/julianstephens/pulse/internal/storage"
)

const (
	// MaxBackups is the number of exports kept per account in the backup directory
	MaxBackups = 14
	// BackupDirName is the name of the backup directory
	BackupDirName = "backups"
	// BackupFileSuffix is the suffix for backup files
	BackupFileSuffix = ".json"

	timestampFormat = "20060102-150405"
)

// BackupInfo describes one export file.
type BackupInfo struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

// Manager writes exports for one account into a backup directory.
type Manager struct {
	backupDir string
	email     string
	now       func() time.Time
}

// NewManager creates a manager keeping exports under <configDir>/backups.
func NewManager(configDir, email string) *Manager {
	return &Manager{
		backupDir: filepath.Join(configDir, BackupDirName),
		email:     models.NormalizeEmail(email),
		now:       time.Now,
	}
}

func (m *Manager) BackupDir() string {
	return m.backupDir
}

func (m *Manager) prefix() string {
	return constants.BackupFilePrefix + strings.ReplaceAll(m.email, "@", "_at_") + "-"
}

// Marshal renders a payload the way exports are written to disk.
func Marshal(p models.Payload) ([]byte, error) {
	data, err := storage.EncodePayload(p)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return nil, fmt.Errorf("failed to format payload: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// Export writes the session's payload to path. An empty path writes a new
// timestamped file into the backup directory and rotates old ones.
func (m *Manager) Export(sess *session.Session, path string) (string, error) {
	p, err := sess.Snapshot()
	if err != nil {
		return "", err
	}
	data, err := Marshal(p)
	if err != nil {
		return "", err
	}

	rotate := false
	if path == "" {
		if err := os.MkdirAll(m.backupDir, 0700); err != nil {
			return "", fmt.Errorf("failed to create backup directory: %w", err)
		}
		if path, err = m.nextPath(); err != nil {
			return "", err
		}
		rotate = true
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}
	logger.Info("Exported account data", "account", m.email, "path", path)

	if rotate {
		if err := m.rotateBackups(); err != nil {
			logger.Warn("Failed to rotate old backups", "error", err)
		}
	}
	return path, nil
}

func (m *Manager) nextPath() (string, error) {
	timestamp := m.now().Format(timestampFormat)
	path := filepath.Join(m.backupDir, m.prefix()+timestamp+BackupFileSuffix)
	for counter := 1; ; counter++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		path = filepath.Join(m.backupDir, fmt.Sprintf("%s%s-%d%s", m.prefix(), timestamp, counter, BackupFileSuffix))
	}
}

// ListBackups returns this account's exports, newest first.
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	entries, err := os.ReadDir(m.backupDir)
	if os.IsNotExist(err) {
		return []BackupInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []BackupInfo{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, m.prefix()) || !strings.HasSuffix(name, BackupFileSuffix) {
			continue
		}
		stamp := strings.TrimSuffix(strings.TrimPrefix(name, m.prefix()), BackupFileSuffix)
		if len(stamp) > len(timestampFormat) {
			stamp = stamp[:len(timestampFormat)]
		}
		timestamp, err := time.ParseInLocation(timestampFormat, stamp, time.Local)
		if err != nil {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, BackupInfo{
			Path:      filepath.Join(m.backupDir, name),
			Timestamp: timestamp,
			Size:      info.Size(),
		})
	}

	sort.SliceStable(backups, func(i, j int) bool {
		if backups[i].Timestamp.Equal(backups[j].Timestamp) {
			return backups[i].Path > backups[j].Path
		}
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

func (m *Manager) rotateBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}
	for i := MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// Read decodes an export file for the account email. Decoding is as
// tolerant as the stores; the resulting profile must still be valid.
func Read(path, email string) (models.Payload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Payload{}, fmt.Errorf("failed to read backup: %w", err)
	}
	key := models.NormalizeEmail(email)
	p, err := storage.DecodePayload(key, data)
	if err != nil {
		return models.Payload{}, err
	}
	p.User.Email = key
	if err := p.User.Validate(); err != nil {
		return models.Payload{}, fmt.Errorf("backup has an invalid profile: %w", err)
	}
	return p, nil
}

// Import replaces the session's account data with the contents of path.
func Import(sess *session.Session, path string) error {
	p, err := Read(path, sess.Email())
	if err != nil {
		return err
	}
	if err := sess.Restore(p); err != nil {
		return fmt.Errorf("failed to restore backup: %w", err)
	}
	logger.Info("Imported account data", "account", sess.Email(), "path", path)
	return nil
}

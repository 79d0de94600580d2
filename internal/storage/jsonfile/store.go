// Package jsonfile stores each account payload as a JSON document in a
// directory, next to a shared account index.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/julianstephens/pulse/internal/constants"
	"github.com/julianstephens/pulse/internal/models"
	"github.com/julianstephens/pulse/internal/storage"
)

type Store struct {
	dir string
	mu  sync.Mutex
}

var _ storage.Gateway = (*Store)(nil)

func New(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) Init() error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

func (s *Store) Close() error { return nil }

func (s *Store) Location() string { return s.dir }

// PayloadPath is the file holding key's payload.
func (s *Store) PayloadPath(key string) string {
	return filepath.Join(s.dir, constants.PayloadFilePrefix+url.PathEscape(key)+".json")
}

func (s *Store) accountsPath() string {
	return filepath.Join(s.dir, constants.AccountsFileName)
}

func (s *Store) Load(key string) (models.Payload, error) {
	data, err := os.ReadFile(s.PayloadPath(key))
	if errors.Is(err, os.ErrNotExist) {
		return models.Payload{}, storage.ErrNotFound
	}
	if err != nil {
		return models.Payload{}, fmt.Errorf("failed to read payload: %w", err)
	}
	return storage.DecodePayload(key, data)
}

func (s *Store) Save(key string, p models.Payload) error {
	data, err := storage.EncodePayload(p)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeAtomic(s.PayloadPath(key), data)
}

func (s *Store) Accounts() ([]models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	accounts, err := s.readAccounts()
	if err != nil {
		return nil, err
	}
	storage.SortAccounts(accounts)
	return accounts, nil
}

// TouchAccount inserts or replaces the index entry with a matching email.
func (s *Store) TouchAccount(a models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := s.readAccounts()
	if err != nil {
		return err
	}
	out := []models.Account{a}
	for _, existing := range accounts {
		if existing.Email != a.Email {
			out = append(out, existing)
		}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode accounts: %w", err)
	}
	return writeAtomic(s.accountsPath(), data)
}

func (s *Store) readAccounts() ([]models.Account, error) {
	data, err := os.ReadFile(s.accountsPath())
	if errors.Is(err, os.ErrNotExist) {
		return []models.Account{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read accounts: %w", err)
	}
	var accounts []models.Account
	if err := json.Unmarshal(data, &accounts); err != nil {
		return nil, fmt.Errorf("failed to parse accounts: %w", err)
	}
	return accounts, nil
}

// writeAtomic replaces path with data via a temp file in the same directory.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".pulse-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", filepath.Base(path), err)
	}
	return nil
}

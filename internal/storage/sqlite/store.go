// Package sqlite stores account payloads in a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/pulse/internal/migration"
	"github.com/julianstephens/pulse/internal/models"
	"github.com/julianstephens/pulse/internal/storage"
	"github.com/julianstephens/pulse/migrations"
)

type Store struct {
	path string
	db   *sql.DB
}

var _ storage.Gateway = (*Store)(nil)

func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Init() error {
	if s.db != nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite allows a single writer at a time.
	db.SetMaxOpenConns(1)
	s.db = db

	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	if _, err := migration.NewRunner(db, subFS).Apply(context.Background()); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) Location() string { return s.path }

func (s *Store) Load(key string) (models.Payload, error) {
	var data string
	err := s.db.QueryRow("SELECT data FROM payloads WHERE account_key = ?", key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Payload{}, storage.ErrNotFound
	}
	if err != nil {
		return models.Payload{}, fmt.Errorf("failed to load payload: %w", err)
	}
	return storage.DecodePayload(key, []byte(data))
}

func (s *Store) Save(key string, p models.Payload) error {
	data, err := storage.EncodePayload(p)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO payloads (account_key, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(account_key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		key, string(data), time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to save payload: %w", err)
	}
	return nil
}

func (s *Store) Accounts() ([]models.Account, error) {
	rows, err := s.db.Query("SELECT name, email, last_login FROM accounts ORDER BY last_login DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		var a models.Account
		if err := rows.Scan(&a.Name, &a.Email, &a.LastLogin); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (s *Store) TouchAccount(a models.Account) error {
	_, err := s.db.Exec(`
		INSERT INTO accounts (email, name, last_login) VALUES (?, ?, ?)
		ON CONFLICT(email) DO UPDATE SET name = excluded.name, last_login = excluded.last_login`,
		a.Email, a.Name, a.LastLogin)
	if err != nil {
		return fmt.Errorf("failed to update account index: %w", err)
	}
	return nil
}

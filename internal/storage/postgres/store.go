// Package postgres stores account payloads as jsonb rows in PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	pq "github.com/lib/pq"

	"github.com/julianstephens/pulse/internal/constants"
	"github.com/julianstephens/pulse/internal/logger"
	"github.com/julianstephens/pulse/internal/migration"
	"github.com/julianstephens/pulse/internal/models"
	"github.com/julianstephens/pulse/internal/storage"
	"github.com/julianstephens/pulse/migrations"
)

var (
	ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = errors.New("connection string must not contain a password")
)

type Store struct {
	connStr string
	db      *sql.DB
}

var _ storage.Gateway = (*Store)(nil)

// New returns a store for connStr, pinned to the pulse schema unless the
// string already sets search_path.
func New(connStr string) *Store {
	return &Store{connStr: withSearchPath(connStr)}
}

func withSearchPath(connStr string) string {
	if isURL(connStr) {
		u, err := url.Parse(connStr)
		if err != nil {
			logger.Warn("Failed to parse Postgres connection string", "error", err)
			return connStr
		}
		q := u.Query()
		if q.Get("search_path") == "" {
			q.Set("search_path", constants.AppName)
			u.RawQuery = q.Encode()
		}
		return u.String()
	}
	if _, ok := dsnParam(connStr, "search_path"); ok {
		return connStr
	}
	return strings.TrimSpace(connStr) + " search_path=" + constants.AppName
}

func isURL(connStr string) bool {
	return strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://")
}

// dsnParam finds a key=value pair in a DSN-style string, ignoring key case.
func dsnParam(connStr, key string) (string, bool) {
	for _, part := range strings.Fields(connStr) {
		k, v, ok := strings.Cut(part, "=")
		if ok && strings.EqualFold(strings.TrimSpace(k), key) {
			return v, true
		}
	}
	return "", false
}

func hasSSLMode(connStr string) bool {
	if u, err := url.Parse(connStr); err == nil && u.Scheme != "" {
		for k := range u.Query() {
			if strings.EqualFold(k, "sslmode") {
				return true
			}
		}
	}
	_, ok := dsnParam(connStr, "sslmode")
	return ok
}

// ValidateConnString checks that connStr parses as a PostgreSQL URL or DSN and
// carries no password. Passwords belong in .pgpass, PGPASSWORD or the keyring
// entry, never in config files.
func ValidateConnString(connStr string) error {
	if strings.TrimSpace(connStr) == "" {
		return fmt.Errorf("%w: connection string cannot be empty", ErrInvalidConnectionString)
	}
	if _, err := pq.NewConnector(connStr); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConnectionString, err)
	}
	if isURL(connStr) {
		u, err := url.Parse(connStr)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConnectionString, err)
		}
		if _, set := u.User.Password(); set {
			return ErrEmbeddedCredentials
		}
		if u.Host == "" && u.User == nil && (u.Path == "" || u.Path == "/") {
			return fmt.Errorf("%w: connection URL is incomplete", ErrInvalidConnectionString)
		}
		return nil
	}
	if _, ok := dsnParam(connStr, "password"); ok {
		return ErrEmbeddedCredentials
	}
	return nil
}

func (s *Store) Init() error {
	if s.db != nil {
		return nil
	}
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		if strings.Contains(err.Error(), "SSL is not enabled on the server") && !hasSSLMode(s.connStr) {
			return fmt.Errorf("failed to connect to database: %w (hint: add sslmode=disable to the connection string)", err)
		}
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.Exec("CREATE SCHEMA IF NOT EXISTS " + constants.AppName); err != nil {
		db.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}
	s.db = db

	subFS, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		return fmt.Errorf("failed to access postgres migrations: %w", err)
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

// Location hides the connection string; it may name hosts and users.
func (s *Store) Location() string { return "postgresql" }

func (s *Store) Load(key string) (models.Payload, error) {
	var data []byte
	err := s.db.QueryRow("SELECT data FROM payloads WHERE account_key = $1", key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Payload{}, storage.ErrNotFound
	}
	if err != nil {
		return models.Payload{}, fmt.Errorf("failed to load payload: %w", err)
	}
	return storage.DecodePayload(key, data)
}

func (s *Store) Save(key string, p models.Payload) error {
	data, err := storage.EncodePayload(p)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO payloads (account_key, data, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (account_key) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`,
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
		INSERT INTO accounts (email, name, last_login) VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name, last_login = EXCLUDED.last_login`,
		a.Email, a.Name, a.LastLogin)
	if err != nil {
		return fmt.Errorf("failed to update account index: %w", err)
	}
	return nil
}

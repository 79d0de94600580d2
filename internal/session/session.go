// Package session owns the live state of one logged-in account.
//
// A Session is created by Login or Resume and holds the user profile,
// history and notes together with the gateway they persist to. Every
// mutation updates memory and then writes the whole payload through the
// gateway. The scheduler, file watcher and outer surfaces share one Session
// from different goroutines, so all access goes through its mutex.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/julianstephens/pulse/internal/logger"
	"github.com/julianstephens/pulse/internal/models"
	"github.com/julianstephens/pulse/internal/storage"
)

var (
	ErrClosed          = errors.New("session is closed")
	ErrNoteNotFound    = errors.New("note not found")
	ErrUnknownActivity = errors.New("unknown activity")
	ErrInvalidDate     = errors.New("invalid date")
	ErrUnknownAccount  = errors.New("no stored data for account")
	ErrInvalidEmail    = errors.New("invalid email")
)

// Option configures a Session.
type Option func(*Session)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

type Session struct {
	mu      sync.Mutex
	gw      storage.Gateway
	key     string
	user    models.User
	history models.HistoryData
	notes   []models.Note
	closed  bool
	now     func() time.Time
}

func newSession(gw storage.Gateway, key string, p models.Payload, opts []Option) *Session {
	s := &Session{gw: gw, key: key, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	s.replace(p)
	return s
}

func (s *Session) replace(p models.Payload) {
	p = p.Clone()
	p.User.Email = s.key
	s.user = p.User
	s.history = p.History
	s.notes = p.Notes
}

// Login opens the account for email, creating it with defaults when no
// payload exists. A stored profile is kept except for the name, which is
// updated when given. The account index and payload are written at once.
func Login(gw storage.Gateway, name, email string, opts ...Option) (*Session, error) {
	key := models.NormalizeEmail(email)
	if !models.IsEmail(key) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}

	p, err := gw.Load(key)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		if name == "" {
			name = key
		}
		p = models.NewPayload(name, key)
		logger.Info("Creating account", "account", key)
	case err != nil:
		return nil, fmt.Errorf("failed to load account: %w", err)
	case name != "":
		p.User.Name = name
	}

	s := newSession(gw, key, p, opts)
	if err := gw.TouchAccount(models.Account{Name: s.user.Name, Email: key, LastLogin: s.now().UnixMilli()}); err != nil {
		return nil, fmt.Errorf("failed to update account index: %w", err)
	}
	if err := s.persistLocked(); err != nil {
		return nil, err
	}
	return s, nil
}

// Resume opens an existing account without touching the account index.
func Resume(gw storage.Gateway, email string, opts ...Option) (*Session, error) {
	key := models.NormalizeEmail(email)
	p, err := gw.Load(key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAccount, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	return newSession(gw, key, p, opts), nil
}

// Email is the account key.
func (s *Session) Email() string { return s.key }

// Now returns the session clock.
func (s *Session) Now() time.Time { return s.now() }

// Close detaches the session. Later calls fail with ErrClosed. The gateway
// belongs to the caller and stays open.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// persistLocked writes the current state. Callers hold s.mu.
func (s *Session) persistLocked() error {
	p := models.Payload{User: s.user, History: s.history, Notes: s.notes}
	if err := s.gw.Save(s.key, p); err != nil {
		logger.Error("Failed to persist session", "account", s.key, "error", err)
		return fmt.Errorf("failed to save: %w", err)
	}
	return nil
}

// update runs fn under the lock and persists when it succeeds.
func (s *Session) update(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if err := fn(); err != nil {
		return err
	}
	return s.persistLocked()
}

func (s *Session) read(fn func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	fn()
	return nil
}

// Snapshot returns a deep copy of the whole payload.
func (s *Session) Snapshot() (models.Payload, error) {
	var p models.Payload
	err := s.read(func() {
		p = models.Payload{User: s.user, History: s.history, Notes: s.notes}.Clone()
	})
	return p, err
}

func (s *Session) User() (models.User, error) {
	p, err := s.Snapshot()
	return p.User, err
}

func (s *Session) History() (models.HistoryData, error) {
	var h models.HistoryData
	err := s.read(func() { h = s.history.Clone() })
	return h, err
}

// Reload replaces in-memory state with what the gateway has stored, picking
// up writes made by another process.
func (s *Session) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	p, err := s.gw.Load(s.key)
	if err != nil {
		return fmt.Errorf("failed to reload: %w", err)
	}
	s.replace(p)
	return nil
}

// Restore replaces the account state with p and persists it. The account
// email is kept regardless of what p carries.
func (s *Session) Restore(p models.Payload) error {
	return s.update(func() error {
		if p.History == nil {
			p.History = models.HistoryData{}
		}
		if p.Notes == nil {
			p.Notes = []models.Note{}
		}
		s.replace(p)
		return nil
	})
}

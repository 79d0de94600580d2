// Package cli holds the state shared by every command: configuration, the
// storage gateway and the active session.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/pulse/internal/config"
	"github.com/julianstephens/pulse/internal/constants"
	pulseerrors "github.com/julianstephens/pulse/internal/errors"
	"github.com/julianstephens/pulse/internal/keyring"
	"github.com/julianstephens/pulse/internal/logger"
	"github.com/julianstephens/pulse/internal/notifier"
	"github.com/julianstephens/pulse/internal/session"
	"github.com/julianstephens/pulse/internal/storage"
	"github.com/julianstephens/pulse/internal/storage/jsonfile"
	"github.com/julianstephens/pulse/internal/storage/postgres"
	"github.com/julianstephens/pulse/internal/storage/sqlite"
)

// PostgresDSNEnv is consulted for the postgres DSN when neither the config
// file nor the keyring provides one.
const PostgresDSNEnv = "PULSE_DB_CONNECTION"

type Context struct {
	Config *config.Config
	Out    io.Writer

	gw   storage.Gateway
	sess *session.Session
	opts []session.Option
}

func NewContext(cfg *config.Config, opts ...session.Option) *Context {
	return &Context{Config: cfg, Out: os.Stdout, opts: opts}
}

// Gateway opens the configured store on first use.
func (c *Context) Gateway() (storage.Gateway, error) {
	if c.gw != nil {
		return c.gw, nil
	}
	gw, err := c.openGateway()
	if err != nil {
		return nil, err
	}
	if err := gw.Init(); err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", c.Config.Storage.Backend, err)
	}
	logger.Debug("Opened store", "backend", c.Config.Storage.Backend, "location", gw.Location())
	c.gw = gw
	return gw, nil
}

func (c *Context) openGateway() (storage.Gateway, error) {
	switch c.Config.Storage.Backend {
	case constants.BackendSQLite:
		return sqlite.New(c.Config.StoragePath()), nil
	case constants.BackendPostgres:
		dsn, err := c.postgresDSN()
		if err != nil {
			return nil, err
		}
		return postgres.New(dsn), nil
	default:
		return jsonfile.New(c.Config.StoragePath()), nil
	}
}

// postgresDSN resolves the DSN from the config file, the OS keyring and then
// the environment. The config file may not carry a password; the other two
// may.
func (c *Context) postgresDSN() (string, error) {
	if dsn := c.Config.Storage.DSN; dsn != "" {
		return dsn, nil
	}
	dsn, err := keyring.Get(keyring.PostgresDSN)
	if err == nil {
		return dsn, nil
	}
	if env := os.Getenv(PostgresDSNEnv); env != "" {
		return env, nil
	}
	return "", fmt.Errorf("no postgres DSN configured (set storage.dsn, run 'pulse keyring set postgres-dsn' or export %s): %w", PostgresDSNEnv, err)
}

// WatchPath is the file another process writes when it changes the active
// account, or "" for stores that cannot be watched.
func (c *Context) WatchPath() string {
	switch gw := c.gw.(type) {
	case *jsonfile.Store:
		if c.sess != nil {
			return gw.PayloadPath(c.sess.Email())
		}
	case *sqlite.Store:
		return gw.Location()
	}
	return ""
}

// Session resumes the account recorded by the last login.
func (c *Context) Session() (*session.Session, error) {
	if c.sess != nil {
		return c.sess, nil
	}
	email, err := session.ReadMarker(c.Config.Dir)
	if err != nil {
		return nil, err
	}
	if email == "" {
		return nil, pulseerrors.ErrNotLoggedIn
	}
	gw, err := c.Gateway()
	if err != nil {
		return nil, err
	}
	sess, err := session.Resume(gw, email, c.opts...)
	if err != nil {
		return nil, err
	}
	c.sess = sess
	return sess, nil
}

// Login opens or creates the account and makes it the active one.
func (c *Context) Login(name, email string) (*session.Session, error) {
	gw, err := c.Gateway()
	if err != nil {
		return nil, err
	}
	sess, err := session.Login(gw, name, email, c.opts...)
	if err != nil {
		return nil, err
	}
	if err := session.SaveMarker(c.Config.Dir, sess.Email()); err != nil {
		return nil, err
	}
	if c.sess != nil {
		_ = c.sess.Close()
	}
	c.sess = sess
	return sess, nil
}

// Logout forgets the active account. It returns the email that was active.
func (c *Context) Logout() (string, error) {
	email, err := session.ReadMarker(c.Config.Dir)
	if err != nil {
		return "", err
	}
	if c.sess != nil {
		_ = c.sess.Close()
		c.sess = nil
	}
	return email, session.ClearMarker(c.Config.Dir)
}

// Sink is where alerts go outside the dashboard and HTTP clients: the log,
// and the tray app when enabled.
func (c *Context) Sink() notifier.Sink {
	sinks := notifier.Multi{notifier.LogSink{}}
	if c.Config.Tray.Enabled {
		sinks = append(sinks, trayOptional{notifier.NewTray()})
	}
	return sinks
}

// trayOptional drops the error for a tray app that is simply not running.
type trayOptional struct {
	tray *notifier.Tray
}

func (t trayOptional) Notify(title, body string) error {
	err := t.tray.Notify(title, body)
	if err != nil && errors.Is(err, notifier.ErrTrayNotRunning) {
		logger.Debug("Tray app not running, skipping", "title", title)
		return nil
	}
	return err
}

// Close releases the session and the store.
func (c *Context) Close() error {
	if c.sess != nil {
		_ = c.sess.Close()
	}
	if c.gw != nil {
		return c.gw.Close()
	}
	return nil
}

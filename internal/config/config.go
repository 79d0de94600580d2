// Package config loads pulse settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/pulse/internal/constants"
	"github.com/julianstephens/pulse/internal/storage/postgres"
)

// Validator is implemented by configs that check themselves after loading.
type Validator interface {
	Validate() error
}

// Load reads filename into target, expanding ${VAR} references from the
// environment first, then validates target if it can.
func Load[T any](filename string, target *T) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", filename, err)
	}
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), target); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", filename, err)
	}
	if v, ok := any(target).(Validator); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("config validation failed: %w", err)
		}
	}
	return nil
}

// LoadOrDefault is Load, except a missing file leaves target untouched and
// still validates it.
func LoadOrDefault[T any](filename string, target *T) error {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		if v, ok := any(target).(Validator); ok {
			return v.Validate()
		}
		return nil
	}
	return Load(filename, target)
}

type Config struct {
	Storage   StorageConfig   `yaml:"storage"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	HTTP      HTTPConfig      `yaml:"http"`
	Tray      TrayConfig      `yaml:"tray"`
	Log       LogConfig       `yaml:"log"`

	// Dir is the configuration directory; it holds the log, the session
	// marker and the default data location.
	Dir string `yaml:"-"`
}

type StorageConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
	DSN     string `yaml:"dsn"`
}

type SchedulerConfig struct {
	Interval time.Duration `yaml:"interval"`
}

type HTTPConfig struct {
	Port  int    `yaml:"port"`
	Token string `yaml:"token"`
}

func (c HTTPConfig) Address() string {
	return fmt.Sprintf("127.0.0.1:%d", c.Port)
}

type TrayConfig struct {
	Enabled bool `yaml:"enabled"`
}

type LogConfig struct {
	Debug bool `yaml:"debug"`
}

// NewDefault returns the configuration used when no file exists.
func NewDefault(dir string) *Config {
	return &Config{
		Storage:   StorageConfig{Backend: constants.BackendJSON},
		Scheduler: SchedulerConfig{Interval: constants.SchedulerInterval},
		HTTP:      HTTPConfig{Port: constants.DefaultHTTPPort},
		Tray:      TrayConfig{Enabled: true},
		Dir:       dir,
	}
}

func (c *Config) Validate() error {
	if err := validation.ValidateStruct(&c.Storage,
		validation.Field(&c.Storage.Backend, validation.Required,
			validation.In(constants.BackendJSON, constants.BackendSQLite, constants.BackendPostgres)),
	); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if c.Storage.Backend == constants.BackendPostgres && c.Storage.DSN != "" {
		if err := postgres.ValidateConnString(c.Storage.DSN); err != nil {
			return fmt.Errorf("storage.dsn: %w (store credentials with 'pulse keyring set postgres-dsn' instead)", err)
		}
	}
	if err := validation.ValidateStruct(&c.Scheduler,
		validation.Field(&c.Scheduler.Interval, validation.Required, validation.Min(time.Second)),
	); err != nil {
		return fmt.Errorf("scheduler: %w", err)
	}
	if err := validation.ValidateStruct(&c.HTTP,
		validation.Field(&c.HTTP.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	); err != nil {
		return fmt.Errorf("http: %w", err)
	}
	return nil
}

// StoragePath resolves the file-backed store location for the backend.
func (c *Config) StoragePath() string {
	if c.Storage.Path != "" {
		return ExpandPath(c.Storage.Path)
	}
	if c.Storage.Backend == constants.BackendSQLite {
		return filepath.Join(c.Dir, constants.SQLiteFileName)
	}
	return filepath.Join(c.Dir, "data")
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

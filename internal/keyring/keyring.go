// Package keyring keeps pulse secrets in the OS credential store.
package keyring

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/pulse/internal/constants"
)

// Secret names an entry under the pulse service.
type Secret string

const (
	PostgresDSN Secret = "postgres-dsn"
	HTTPToken   Secret = "http-token"
)

var (
	ErrNotFound    = errors.New("secret not found in keyring")
	ErrUnavailable = errors.New("OS keyring is not available")
)

// Secrets lists every known secret name.
func Secrets() []Secret {
	return []Secret{PostgresDSN, HTTPToken}
}

// ParseSecret resolves a user-supplied secret name.
func ParseSecret(name string) (Secret, error) {
	for _, s := range Secrets() {
		if strings.EqualFold(string(s), strings.TrimSpace(name)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("unknown secret %q", name)
}

func Get(s Secret) (string, error) {
	v, err := keyring.Get(constants.AppName, string(s))
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return v, nil
}

func Set(s Secret, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s cannot be empty", s)
	}
	if err := keyring.Set(constants.AppName, string(s), value); err != nil {
		return fmt.Errorf("failed to store %s in keyring: %w", s, err)
	}
	return nil
}

func Delete(s Secret) error {
	err := keyring.Delete(constants.AppName, string(s))
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete %s from keyring: %w", s, err)
	}
	return nil
}

// Lookup returns the secret or "" when it is absent or the keyring is
// unavailable. Callers that treat the secret as optional use this.
func Lookup(s Secret) string {
	v, err := Get(s)
	if err != nil {
		return ""
	}
	return v
}

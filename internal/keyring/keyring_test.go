package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestSetGetDelete(t *testing.T) {
	gokeyring.MockInit()

	dsn := "postgres://pulse@localhost:5432/pulse?sslmode=disable"
	if err := Set(PostgresDSN, dsn); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err := Get(PostgresDSN)
	if err != nil || got != dsn {
		t.Fatalf("Get() = %q, %v", got, err)
	}
	if Lookup(PostgresDSN) != dsn {
		t.Error("Lookup() mismatch")
	}
	if err := Delete(PostgresDSN); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := Get(PostgresDSN); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after delete = %v, want ErrNotFound", err)
	}
	if err := Delete(PostgresDSN); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete() = %v, want ErrNotFound", err)
	}
	if Lookup(HTTPToken) != "" {
		t.Error("Lookup() of unset secret should be empty")
	}
}

func TestSetEmpty(t *testing.T) {
	gokeyring.MockInit()
	if err := Set(HTTPToken, "  "); err == nil {
		t.Error("Set() with blank value should fail")
	}
}

func TestParseSecret(t *testing.T) {
	if s, err := ParseSecret("Postgres-DSN"); err != nil || s != PostgresDSN {
		t.Errorf("ParseSecret() = %q, %v", s, err)
	}
	if _, err := ParseSecret("api-key"); err == nil {
		t.Error("ParseSecret(api-key) should fail")
	}
}

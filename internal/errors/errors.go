// Package errors turns command failures into the message printed by main.
package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/pulse/internal/keyring"
	"github.com/julianstephens/pulse/internal/logger"
	"github.com/julianstephens/pulse/internal/migration"
	"github.com/julianstephens/pulse/internal/session"
	"github.com/julianstephens/pulse/internal/storage"
	"github.com/julianstephens/pulse/internal/storage/postgres"
)

// ErrNotLoggedIn is returned by commands that need an active account.
var ErrNotLoggedIn = stderrors.New("not logged in")

var hints = []struct {
	target error
	hint   string
}{
	{ErrNotLoggedIn, "run 'pulse login --name <name> <email>' first"},
	{session.ErrUnknownAccount, "run 'pulse accounts' to see stored accounts, or 'pulse login' to create one"},
	{session.ErrUnknownActivity, "run 'pulse activities list' to see valid activity ids"},
	{session.ErrInvalidDate, "dates are written YYYY-MM-DD"},
	{session.ErrNoteNotFound, "run 'pulse note list --all' to see note ids"},
	{storage.ErrMalformed, "the stored data is not a JSON object; restore it with 'pulse import <file>'"},
	{postgres.ErrEmbeddedCredentials, "store the DSN with 'pulse keyring set postgres-dsn <dsn>' or use .pgpass"},
	{migration.ErrSchemaTooNew, "this database was written by a newer pulse; upgrade pulse"},
	{keyring.ErrUnavailable, "export PULSE_DB_CONNECTION or use .pgpass instead"},
}

// Hint returns a suggestion for fixing err, or "" when none applies.
func Hint(err error) string {
	for _, h := range hints {
		if stderrors.Is(err, h.target) {
			return h.hint
		}
	}
	return ""
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Report writes err and its hint, if any, to w.
func Report(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(w, Format(err))
	if hint := Hint(err); hint != "" {
		fmt.Fprintf(w, "Hint: %s\n", hint)
	}
}

// Fatal logs err, reports it on stderr and exits with code 1.
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		Report(os.Stderr, err)
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintln(os.Stderr, Formatf(format, args...))
	os.Exit(1)
}

package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/pulse/internal/cli"
	"github.com/julianstephens/pulse/internal/keyring"
	"github.com/julianstephens/pulse/internal/storage/postgres"
)

// KeyringSetCmd stores a secret in the OS keyring.
type KeyringSetCmd struct {
	Secret string `arg:"" help:"Secret name: postgres-dsn or http-token."`
	Value  string `arg:"" help:"Value to store."`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	secret, err := keyring.ParseSecret(cmd.Secret)
	if err != nil {
		return err
	}

	if secret == keyring.PostgresDSN {
		if !isConnString(cmd.Value) {
			return errors.New("connection string must be a valid PostgreSQL connection string")
		}
		if err := postgres.ValidateConnString(cmd.Value); err != nil {
			if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return fmt.Errorf("invalid connection string: %w", err)
			}
			fmt.Fprintln(ctx.Out, "⚠️  Warning: Connection string contains embedded credentials.")
			fmt.Fprintln(ctx.Out, "   It will be stored as-is in the encrypted OS keyring.")
			fmt.Fprintln(ctx.Out, "   To keep the password separate, use .pgpass instead.")
		}
	}

	if err := keyring.Set(secret, cmd.Value); err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "✓ %s stored in OS keyring\n", secret)
	return nil
}

// KeyringGetCmd prints a stored secret with any password masked.
type KeyringGetCmd struct {
	Secret string `arg:"" help:"Secret name: postgres-dsn or http-token."`
}

func (cmd *KeyringGetCmd) Run(ctx *cli.Context) error {
	secret, err := keyring.ParseSecret(cmd.Secret)
	if err != nil {
		return err
	}
	value, err := keyring.Get(secret)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("no %s found in keyring. Use 'pulse keyring set %s' to store one", secret, secret)
		}
		return err
	}
	if secret == keyring.PostgresDSN {
		fmt.Fprintln(ctx.Out, maskPassword(value))
	} else {
		fmt.Fprintln(ctx.Out, maskToken(value))
	}
	return nil
}

type KeyringDeleteCmd struct {
	Secret string `arg:"" help:"Secret name: postgres-dsn or http-token."`
}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	secret, err := keyring.ParseSecret(cmd.Secret)
	if err != nil {
		return err
	}
	if err := keyring.Delete(secret); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("no %s found in keyring", secret)
		}
		return err
	}
	fmt.Fprintf(ctx.Out, "✓ %s deleted from OS keyring\n", secret)
	return nil
}

func isConnString(s string) bool {
	return strings.HasPrefix(s, "postgres://") ||
		strings.HasPrefix(s, "postgresql://") ||
		strings.Contains(s, "host=")
}

// maskPassword hides the password of a URL or key=value connection string.
func maskPassword(connStr string) string {
	if scheme, rest, ok := strings.Cut(connStr, "://"); ok && strings.HasPrefix(scheme, "postgres") {
		at := strings.LastIndex(rest, "@")
		if at < 0 {
			return connStr
		}
		user, _, hasPassword := strings.Cut(rest[:at], ":")
		if !hasPassword {
			return connStr
		}
		return scheme + "://" + user + ":****" + rest[at:]
	}

	if !strings.Contains(connStr, "password=") {
		return connStr
	}
	parts := strings.Fields(connStr)
	for i, part := range parts {
		if strings.HasPrefix(part, "password=") {
			parts[i] = "password=****"
		}
	}
	return strings.Join(parts, " ")
}

func maskToken(token string) string {
	if len(token) <= 4 {
		return "****"
	}
	return token[:4] + strings.Repeat("*", len(token)-4)
}

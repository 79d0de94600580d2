package account

import (
	"fmt"
	"time"

	"github.com/julianstephens/pulse/internal/cli"
)

type LoginCmd struct {
	Email string `arg:"" help:"Account email."`
	Name  string `help:"Display name. Defaults to the stored name, or the email for a new account."`
}

func (c *LoginCmd) Run(ctx *cli.Context) error {
	sess, err := ctx.Login(c.Name, c.Email)
	if err != nil {
		return err
	}
	user, err := sess.User()
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "✓ Logged in as %s <%s>\n", user.Name, user.Email)
	if user.NeedsSetup() {
		fmt.Fprintln(ctx.Out, "  No activities selected yet. Run 'pulse activities select' to choose some.")
	}
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *cli.Context) error {
	email, err := ctx.Logout()
	if err != nil {
		return err
	}
	if email == "" {
		fmt.Fprintln(ctx.Out, "Not logged in.")
		return nil
	}
	fmt.Fprintf(ctx.Out, "✓ Logged out of %s\n", email)
	return nil
}

type WhoamiCmd struct{}

func (c *WhoamiCmd) Run(ctx *cli.Context) error {
	sess, err := ctx.Session()
	if err != nil {
		return err
	}
	user, err := sess.User()
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "%s <%s>\n", user.Name, user.Email)
	fmt.Fprintf(ctx.Out, "  Tracking %d activities\n", len(user.SelectedActivityIDs))
	return nil
}

// AccountsCmd lists known accounts, most recent login first.
type AccountsCmd struct{}

func (c *AccountsCmd) Run(ctx *cli.Context) error {
	gw, err := ctx.Gateway()
	if err != nil {
		return err
	}
	accounts, err := gw.Accounts()
	if err != nil {
		return fmt.Errorf("failed to list accounts: %w", err)
	}
	if len(accounts) == 0 {
		fmt.Fprintln(ctx.Out, "No accounts yet. Run 'pulse login <email>' to create one.")
		return nil
	}
	for _, a := range accounts {
		fmt.Fprintf(ctx.Out, "%-30s %-20s last login %s\n", a.Email, a.Name, a.LastLoginTime().Format(time.DateTime))
	}
	return nil
}

package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/julianstephens/pulse/internal/backup"
	"github.com/julianstephens/pulse/internal/catalog"
	"github.com/julianstephens/pulse/internal/cli"
	"github.com/julianstephens/pulse/internal/constants"
	"github.com/julianstephens/pulse/internal/keyring"
	"github.com/julianstephens/pulse/internal/logger"
	"github.com/julianstephens/pulse/internal/notifier"
)

type DoctorCmd struct{}

type check struct {
	name string
	// warn marks a check whose failure is reported but not fatal.
	warn bool
	run  func(*cli.Context) error
}

var checks = []check{
	{name: "Configuration", run: checkConfig},
	{name: "Store reachable", run: checkStore},
	{name: "Active account", run: checkAccount},
	{name: "Data validation", run: checkData},
	{name: "Clock/timezone", run: func(*cli.Context) error { return checkClockTimezone() }},
	{name: "Backups present", warn: true, run: checkBackups},
	{name: "OS keyring", warn: true, run: checkKeyring},
	{name: "Tray app", warn: true, run: checkTray},
	{name: "Log file", warn: true, run: func(*cli.Context) error { return checkLogFile() }},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Fprintln(ctx.Out, "Running diagnostics...")
	fmt.Fprintln(ctx.Out)

	failed := 0
	for _, c := range checks {
		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Fprintf(ctx.Out, "✓ %s: OK\n", c.name)
		case c.warn:
			fmt.Fprintf(ctx.Out, "⚠ %s: WARNING\n   %v\n", c.name, err)
		default:
			fmt.Fprintf(ctx.Out, "❌ %s: FAIL\n   Error: %v\n", c.name, err)
			failed++
		}
	}

	fmt.Fprintln(ctx.Out)
	if failed > 0 {
		return fmt.Errorf("%d checks failed", failed)
	}
	fmt.Fprintln(ctx.Out, "All checks passed.")
	return nil
}

func checkConfig(ctx *cli.Context) error {
	return ctx.Config.Validate()
}

func checkStore(ctx *cli.Context) error {
	gw, err := ctx.Gateway()
	if err != nil {
		return err
	}
	if _, err := gw.Accounts(); err != nil {
		return fmt.Errorf("failed to read account index: %w", err)
	}
	return nil
}

func checkAccount(ctx *cli.Context) error {
	_, err := ctx.Session()
	return err
}

func checkData(ctx *cli.Context) error {
	sess, err := ctx.Session()
	if err != nil {
		return fmt.Errorf("skipped: %w", err)
	}
	p, err := sess.Snapshot()
	if err != nil {
		return err
	}
	if err := p.User.Validate(); err != nil {
		return fmt.Errorf("profile: %w", err)
	}
	for _, n := range p.Notes {
		if err := n.Validate(); err != nil {
			return fmt.Errorf("note %s: %w", n.ID, err)
		}
	}
	for _, date := range p.History.Dates() {
		if _, err := time.Parse(constants.DateFormat, date); err != nil {
			return fmt.Errorf("history key %q is not a date", date)
		}
	}
	stale := 0
	for _, id := range p.User.SelectedActivityIDs {
		if !catalog.Exists(id) {
			stale++
		}
	}
	if stale > 0 {
		return fmt.Errorf("%d selected activities are not in the catalog", stale)
	}
	return nil
}

func checkClockTimezone() error {
	now := time.Now()
	if now.Year() < 2020 {
		return fmt.Errorf("system clock looks wrong: %s", now.Format(time.RFC3339))
	}
	if zone, _ := now.Zone(); zone == "" {
		return errors.New("local timezone has no name; check TZ")
	}
	return nil
}

func checkBackups(ctx *cli.Context) error {
	sess, err := ctx.Session()
	if err != nil {
		return fmt.Errorf("skipped: %w", err)
	}
	backups, err := backup.NewManager(ctx.Config.Dir, sess.Email()).ListBackups()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return errors.New("no backups found. Run 'pulse export' to create one")
	}
	return nil
}

func checkKeyring(ctx *cli.Context) error {
	_, err := keyring.Get(keyring.HTTPToken)
	if errors.Is(err, keyring.ErrUnavailable) {
		return err
	}
	return nil
}

func checkTray(ctx *cli.Context) error {
	if !ctx.Config.Tray.Enabled {
		return nil
	}
	dir, err := notifier.TrayConfigDir()
	if err != nil {
		return err
	}
	if _, err := os.Stat(filepath.Join(dir, constants.NotifierLockfileName)); err != nil {
		return notifier.ErrTrayNotRunning
	}
	return nil
}

func checkLogFile() error {
	path := logger.Path()
	if path == "" {
		return errors.New("logging is not initialized")
	}
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		return fmt.Errorf("log directory unavailable: %w", err)
	}
	return nil
}

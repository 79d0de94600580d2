package main

import (
	"path/filepath"

	"github.com/alecthomas/kong"
	_ "github.com/joho/godotenv/autoload"

	"github.com/julianstephens/pulse/internal/cli"
	"github.com/julianstephens/pulse/internal/cli/account"
	"github.com/julianstephens/pulse/internal/cli/backups"
	"github.com/julianstephens/pulse/internal/cli/habits"
	"github.com/julianstephens/pulse/internal/cli/notes"
	"github.com/julianstephens/pulse/internal/cli/settings"
	"github.com/julianstephens/pulse/internal/cli/system"
	"github.com/julianstephens/pulse/internal/config"
	"github.com/julianstephens/pulse/internal/constants"
	"github.com/julianstephens/pulse/internal/errors"
	"github.com/julianstephens/pulse/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"string" default:"${config_file}"`
	Data    string `help:"Override the data location (directory for json, file for sqlite)." type:"string"`
	Debug   bool   `help:"Log debug output to stderr."`

	Tui      system.TuiCmd       `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Login    account.LoginCmd    `cmd:"" help:"Log in to an account, creating it if needed."`
	Logout   account.LogoutCmd   `cmd:"" help:"Forget the active account."`
	Whoami   account.WhoamiCmd   `cmd:"" help:"Show the active account."`
	Accounts account.AccountsCmd `cmd:"" help:"List known accounts."`

	Activities struct {
		List   habits.ActivitiesListCmd   `cmd:"" help:"List the activity catalog." default:"1"`
		Select habits.ActivitiesSelectCmd `cmd:"" help:"Choose which activities to track."`
	} `cmd:"" help:"Manage tracked activities."`
	Mark   habits.MarkCmd   `cmd:"" help:"Mark an activity done for a day."`
	Day    habits.DayCmd    `cmd:"" help:"Show the checklist for a day."`
	Stats  habits.StatsCmd  `cmd:"" help:"Show completion statistics."`
	Streak habits.StreakCmd `cmd:"" help:"Show the current and longest streaks."`
	Report habits.ReportCmd `cmd:"" help:"Write the insights PDF."`

	Note struct {
		Add    notes.NoteAddCmd    `cmd:"" help:"Add a reminder note."`
		List   notes.NoteListCmd   `cmd:"" help:"List notes." default:"1"`
		Done   notes.NoteDoneCmd   `cmd:"" help:"Toggle a note's completion."`
		Delete notes.NoteDeleteCmd `cmd:"" help:"Delete a note."`
		Snooze notes.NoteSnoozeCmd `cmd:"" help:"Snooze a note."`
	} `cmd:"" help:"Manage reminder notes."`

	Settings settings.SettingsCmd `cmd:"" help:"Manage account settings."`

	Export  backups.ExportCmd     `cmd:"" help:"Export account data as JSON."`
	Import  backups.ImportCmd     `cmd:"" help:"Replace account data from a JSON export."`
	Backups backups.BackupListCmd `cmd:"" help:"List exported backups."`

	Watch  system.WatchCmd  `cmd:"" help:"Run reminders in the foreground."`
	Serve  system.ServeCmd  `cmd:"" help:"Serve the HTTP API."`
	Mcp    system.McpCmd    `cmd:"" help:"Serve MCP tools on stdio."`
	Doctor system.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
	Notify system.NotifyCmd `cmd:"" hidden:"" help:"Run one reminder check (for cron)."`

	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a secret in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show a stored secret, masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove a secret from the OS keyring."`
	} `cmd:"" help:"Manage secrets in the OS keyring."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit tracking and reminders"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_file": filepath.Join(constants.DefaultConfigDir, constants.DefaultConfigFile),
		},
	)

	cfgPath := config.ExpandPath(CLI.Config)
	cfg := config.NewDefault(filepath.Dir(cfgPath))
	if err := config.LoadOrDefault(cfgPath, cfg); err != nil {
		errors.Fatal(err)
	}
	if CLI.Data != "" {
		cfg.Storage.Path = CLI.Data
	}

	if err := logger.Init(logger.Options{
		Dir:     cfg.Dir,
		Debug:   CLI.Debug || cfg.Log.Debug,
		Command: ctx.Command(),
	}); err != nil {
		errors.Fatalf("failed to initialize logger: %v", err)
	}
	logger.Debug("Starting", "command", ctx.Command(), "config", cfgPath, "log", logger.Path(), "backend", cfg.Storage.Backend)

	appCtx := cli.NewContext(cfg)
	err := ctx.Run(appCtx)
	if cerr := appCtx.Close(); cerr != nil {
		logger.Warn("Failed to close store", "error", cerr)
	}
	errors.Fatal(err)
}

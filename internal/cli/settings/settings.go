package settings

import (
	"fmt"
	"strings"

	"github.com/julianstephens/pulse/internal/catalog"
	"github.com/julianstephens/pulse/internal/cli"
	"github.com/julianstephens/pulse/internal/constants"
	"github.com/julianstephens/pulse/internal/models"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Notifications   *bool    `help:"Enable or disable reminders."`
	MorningReminder *bool    `help:"Remind at 09:00 when nothing is done yet."`
	EveningSummary  *bool    `help:"Send the 21:00 progress summary."`
	ReminderTime    *string  `help:"Preferred reminder time (HH:MM)."`
	Theme           *string  `help:"Accent color: a palette name or #rrggbb."`
	ToggleDarkMode  bool     `help:"Flip dark mode."`
	Widgets         []string `help:"Dashboard widgets to show (streak, progress, weekly, notes)."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	sess, err := ctx.Session()
	if err != nil {
		return err
	}
	user, err := sess.User()
	if err != nil {
		return err
	}

	if c.List {
		printSettings(ctx, user)
		return nil
	}

	updated := false
	ns := user.NotificationSettings
	if c.Notifications != nil {
		ns.Enabled = *c.Notifications
		updated = true
	}
	if c.MorningReminder != nil {
		ns.MorningReminder = *c.MorningReminder
		updated = true
	}
	if c.EveningSummary != nil {
		ns.EveningSummary = *c.EveningSummary
		updated = true
	}
	if c.ReminderTime != nil {
		ns.ReminderTime = *c.ReminderTime
		updated = true
	}
	if ns != user.NotificationSettings {
		if err := sess.SetNotificationSettings(ns); err != nil {
			return fmt.Errorf("failed to save notification settings: %w", err)
		}
	}
	if c.Theme != nil {
		if err := sess.SetTheme(*c.Theme); err != nil {
			return err
		}
		updated = true
	}
	if c.ToggleDarkMode {
		if _, err := sess.ToggleDarkMode(); err != nil {
			return err
		}
		updated = true
	}
	if c.Widgets != nil {
		if err := sess.SetWidgets(c.Widgets); err != nil {
			return err
		}
		updated = true
	}

	if updated {
		fmt.Fprintln(ctx.Out, "Settings updated successfully.")
	} else {
		fmt.Fprintln(ctx.Out, "No changes specified. Use --list to view settings or flags to update them.")
	}
	return nil
}

func printSettings(ctx *cli.Context, u models.User) {
	theme := u.ThemeColor
	for _, t := range catalog.Themes() {
		if strings.EqualFold(t.Color, u.ThemeColor) {
			theme = fmt.Sprintf("%s (%s)", t.Name, t.Color)
		}
	}
	ns := u.NotificationSettings
	fmt.Fprintln(ctx.Out, "Current Settings:")
	fmt.Fprintf(ctx.Out, "  Theme:                 %s\n", theme)
	fmt.Fprintf(ctx.Out, "  Dark Mode:             %v\n", u.IsDarkMode)
	fmt.Fprintf(ctx.Out, "  Widgets:               %s\n", strings.Join(u.ActiveWidgets, ", "))
	fmt.Fprintln(ctx.Out, "\nNotification Settings:")
	fmt.Fprintf(ctx.Out, "  Notifications Enabled: %v\n", ns.Enabled)
	fmt.Fprintf(ctx.Out, "  Morning Reminder:      %v (%s)\n", ns.MorningReminder, constants.MorningTrigger)
	fmt.Fprintf(ctx.Out, "  Evening Summary:       %v (%s)\n", ns.EveningSummary, constants.EveningTrigger)
	fmt.Fprintf(ctx.Out, "  Reminder Time:         %s\n", ns.ReminderTime)
}

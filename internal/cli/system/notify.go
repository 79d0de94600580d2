package system

import (
	"fmt"
	"strings"

	"github.com/julianstephens/pulse/internal/cli"
	"github.com/julianstephens/pulse/internal/notifier"
	"github.com/julianstephens/pulse/internal/scheduler"
)

// NotifyCmd runs a single scheduler check, for use from cron.
type NotifyCmd struct {
	DryRun bool `help:"Print notifications to stdout instead of sending them."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	sess, err := ctx.Session()
	if err != nil {
		return err
	}
	user, err := sess.User()
	if err != nil {
		return err
	}
	if !user.NotificationSettings.Enabled {
		if c.DryRun {
			fmt.Fprintln(ctx.Out, "Notifications are disabled in settings.")
		}
		return nil
	}

	var sink notifier.Sink = ctx.Sink()
	if c.DryRun {
		sink = notifier.NewWriter(ctx.Out)
	}
	res, err := scheduler.New(sess, sink).Tick(sess.Now())
	if err != nil {
		return err
	}
	if c.DryRun {
		var triggers []string
		for _, t := range res.Triggers {
			triggers = append(triggers, string(t))
		}
		fmt.Fprintf(ctx.Out, "Fired %d notes, triggers: [%s]\n", res.Notes, strings.Join(triggers, ", "))
	}
	return nil
}

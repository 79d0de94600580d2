package habits

import (
	"fmt"

	"github.com/julianstephens/pulse/internal/catalog"
	"github.com/julianstephens/pulse/internal/cli"
	"github.com/julianstephens/pulse/internal/session"
	"github.com/julianstephens/pulse/internal/stats"
)

type MarkCmd struct {
	Activity string `arg:"" help:"Activity id."`
	Date     string `help:"Day to record (YYYY-MM-DD). Defaults to today."`
	Undo     bool   `help:"Mark the activity as not done."`
}

func (c *MarkCmd) Run(ctx *cli.Context) error {
	sess, err := ctx.Session()
	if err != nil {
		return err
	}
	date, err := cli.ResolveDate(sess, c.Date)
	if err != nil {
		return err
	}
	a, ok := catalog.ByID(c.Activity)
	if !ok {
		return fmt.Errorf("%w: %q", session.ErrUnknownActivity, c.Activity)
	}
	if err := sess.RecordCompletion(date, a.ID, !c.Undo); err != nil {
		return err
	}
	verb := "done"
	if c.Undo {
		verb = "not done"
	}
	fmt.Fprintf(ctx.Out, "✓ %s marked %s for %s\n", activityLabel(a), verb, date)
	return nil
}

// DayCmd shows the checklist for one day.
type DayCmd struct {
	Date string `help:"Day to show (YYYY-MM-DD). Defaults to today."`
}

func (c *DayCmd) Run(ctx *cli.Context) error {
	sess, err := ctx.Session()
	if err != nil {
		return err
	}
	date, err := cli.ResolveDate(sess, c.Date)
	if err != nil {
		return err
	}
	user, err := sess.User()
	if err != nil {
		return err
	}
	day, err := sess.GetDay(date)
	if err != nil {
		return err
	}
	tracked := catalog.Filter(user.SelectedActivityIDs)
	if len(tracked) == 0 {
		fmt.Fprintln(ctx.Out, "No activities selected. Run 'pulse activities select' first.")
		return nil
	}
	selected := user.SelectedActivityIDs
	fmt.Fprintf(ctx.Out, "%s: %d/%d done (%d%%)\n", date,
		stats.CompletedCount(day, selected), len(tracked), stats.CompletionPercentage(day, selected))
	for _, a := range tracked {
		mark := " "
		if day[a.ID] {
			mark = "✓"
		}
		fmt.Fprintf(ctx.Out, "  [%s] %-20s %s\n", mark, a.ID, activityLabel(a))
	}
	return nil
}

package habits

import (
	"fmt"
	"strings"

	"github.com/julianstephens/pulse/internal/cli"
	"github.com/julianstephens/pulse/internal/report"
	"github.com/julianstephens/pulse/internal/stats"
)

type StatsCmd struct {
	Range string `help:"Window to chart." enum:"weekly,monthly" default:"weekly"`
	End   string `help:"Last day of the window (YYYY-MM-DD). Defaults to today."`
}

func rangeWindow(name string) int {
	if name == "monthly" {
		return stats.Monthly
	}
	return stats.Weekly
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	sess, err := ctx.Session()
	if err != nil {
		return err
	}
	end, err := cli.ResolveDate(sess, c.End)
	if err != nil {
		return err
	}
	user, err := sess.User()
	if err != nil {
		return err
	}
	history, err := sess.History()
	if err != nil {
		return err
	}
	ins, err := report.Build(user, history, end, rangeWindow(c.Range))
	if err != nil {
		return err
	}

	fmt.Fprintf(ctx.Out, "Summary (%s, ending %s)\n", c.Range, end)
	fmt.Fprintf(ctx.Out, "  Total completions: %d\n", ins.Summary.TotalCompletions)
	fmt.Fprintf(ctx.Out, "  Average per day:   %.1f\n", ins.Summary.AveragePerDay)
	fmt.Fprintf(ctx.Out, "  Days tracked:      %d\n", ins.Summary.DaysTracked)
	fmt.Fprintf(ctx.Out, "  Efficiency:        %d%%\n", ins.Summary.Efficiency)
	fmt.Fprintf(ctx.Out, "  Focus today:       %s (week %s)\n", ins.Productivity.TodayTime, ins.Productivity.WeeklyTime)
	fmt.Fprintf(ctx.Out, "  %s\n", ins.Productivity.Motivation)

	fmt.Fprintln(ctx.Out, "\nCategories")
	for _, share := range ins.Categories {
		fmt.Fprintf(ctx.Out, "  %-10s %3d%% (%d)\n", share.Label, share.Percentage, share.Count)
	}

	fmt.Fprintln(ctx.Out, "\nDaily completions")
	for _, p := range ins.Series {
		fmt.Fprintf(ctx.Out, "  %s %-4s %s %d\n", p.Date, p.Label, strings.Repeat("█", p.Count), p.Count)
	}
	return nil
}

type StreakCmd struct{}

func (c *StreakCmd) Run(ctx *cli.Context) error {
	sess, err := ctx.Session()
	if err != nil {
		return err
	}
	p, err := sess.Snapshot()
	if err != nil {
		return err
	}
	info, err := stats.Streaks(p.History, p.User.SelectedActivityIDs, sess.Today())
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "🔥 Current streak: %d days\n", info.Current)
	fmt.Fprintf(ctx.Out, "🏆 Longest streak: %d days\n", info.Longest)
	return nil
}

// ReportCmd writes the insights PDF.
type ReportCmd struct {
	Range string `help:"Window to chart." enum:"weekly,monthly" default:"monthly"`
	Dir   string `help:"Directory for the PDF. Defaults to the current directory." type:"path" default:"."`
}

func (c *ReportCmd) Run(ctx *cli.Context) error {
	sess, err := ctx.Session()
	if err != nil {
		return err
	}
	p, err := sess.Snapshot()
	if err != nil {
		return err
	}
	ins, err := report.Build(p.User, p.History, sess.Today(), rangeWindow(c.Range))
	if err != nil {
		return err
	}
	path, err := report.WriteFile(c.Dir, ins)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "✓ Report written to %s\n", path)
	return nil
}

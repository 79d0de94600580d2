package habits

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/pulse/internal/catalog"
	"github.com/julianstephens/pulse/internal/cli"
	"github.com/julianstephens/pulse/internal/models"
)

type ActivitiesListCmd struct {
	Selected bool `help:"Only show tracked activities."`
}

func (c *ActivitiesListCmd) Run(ctx *cli.Context) error {
	sess, err := ctx.Session()
	if err != nil {
		return err
	}
	user, err := sess.User()
	if err != nil {
		return err
	}
	selected := user.Selected()
	for _, cat := range catalog.Categories() {
		var lines []string
		for _, a := range catalog.ByCategory(cat.ID) {
			mark := " "
			if selected[a.ID] {
				mark = "✓"
			} else if c.Selected {
				continue
			}
			lines = append(lines, fmt.Sprintf("  [%s] %-20s %s", mark, a.ID, a.Name))
		}
		if len(lines) == 0 {
			continue
		}
		fmt.Fprintf(ctx.Out, "%s\n%s\n", cat.Label, strings.Join(lines, "\n"))
	}
	return nil
}

// pickActivities asks for a selection interactively. Tests replace it.
var pickActivities = func(current []string) ([]string, error) {
	chosen := append([]string{}, current...)
	set := make(map[string]bool, len(current))
	for _, id := range current {
		set[id] = true
	}
	var opts []huh.Option[string]
	for _, a := range catalog.All() {
		label := fmt.Sprintf("%s %s (%s)", a.Icon, a.Name, a.Category)
		opts = append(opts, huh.NewOption(label, a.ID).Selected(set[a.ID]))
	}
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Which activities do you want to track?").
				Options(opts...).
				Height(15).
				Value(&chosen),
		),
	).WithTheme(huh.ThemeDracula())
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return current, nil
		}
		return nil, err
	}
	return chosen, nil
}

// ActivitiesSelectCmd replaces the tracked selection.
type ActivitiesSelectCmd struct {
	IDs []string `arg:"" optional:"" name:"id" help:"Activity ids to track. Omit to choose interactively."`
}

func (c *ActivitiesSelectCmd) Run(ctx *cli.Context) error {
	sess, err := ctx.Session()
	if err != nil {
		return err
	}
	ids := c.IDs
	if len(ids) == 0 {
		user, err := sess.User()
		if err != nil {
			return err
		}
		if ids, err = pickActivities(user.SelectedActivityIDs); err != nil {
			return err
		}
	}
	if err := sess.SelectActivities(ids); err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "✓ Tracking %d activities\n", len(catalog.Filter(ids)))
	return nil
}

func activityLabel(a models.Activity) string {
	return strings.TrimSpace(a.Icon + " " + a.Name)
}

package notes

import (
	"fmt"
	"time"

	"github.com/julianstephens/pulse/internal/cli"
	"github.com/julianstephens/pulse/internal/models"
	"github.com/julianstephens/pulse/internal/session"
	"github.com/julianstephens/pulse/internal/utils"
)

type NoteAddCmd struct {
	Title     string `arg:"" help:"Reminder title."`
	Due       string `required:"" help:"Due time as \"YYYY-MM-DD HH:MM\" (local) or RFC 3339."`
	Text      string `help:"Optional details."`
	Priority  string `help:"Priority." enum:"low,medium,high" default:"medium"`
	Recurring string `help:"Repeat the reminder." enum:"none,daily,weekly" default:"none"`
}

func (c *NoteAddCmd) Run(ctx *cli.Context) error {
	sess, err := ctx.Session()
	if err != nil {
		return err
	}
	due, err := utils.ParseDue(c.Due)
	if err != nil {
		return err
	}
	n, err := sess.AddNote(session.NoteInput{
		Title:     c.Title,
		Text:      c.Text,
		DueTime:   due,
		Priority:  models.Priority(c.Priority),
		Recurring: models.Recurrence(c.Recurring),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "✓ Added note %s due %s\n", shortID(n.ID), n.DueTime.Local().Format(utils.DueLayout))
	return nil
}

type NoteListCmd struct {
	All bool `help:"Include completed notes."`
}

func (c *NoteListCmd) Run(ctx *cli.Context) error {
	sess, err := ctx.Session()
	if err != nil {
		return err
	}
	notes, err := sess.Notes()
	if err != nil {
		return err
	}
	shown := 0
	for _, n := range notes {
		if n.Completed && !c.All {
			continue
		}
		shown++
		status := "pending"
		switch {
		case n.Completed:
			status = "done"
		case n.Notified:
			status = "fired"
		}
		fmt.Fprintf(ctx.Out, "%s  %s  %-7s %-6s %s%s\n", shortID(n.ID), n.DueTime.Local().Format(utils.DueLayout),
			status, n.Priority, n.Title, recurrenceSuffix(n.Recurring))
	}
	if shown == 0 {
		fmt.Fprintln(ctx.Out, "No notes.")
	}
	return nil
}

func recurrenceSuffix(r models.Recurrence) string {
	if r == models.RecurrenceNone || r == "" {
		return ""
	}
	return fmt.Sprintf(" (%s)", r)
}

// shortID is the id suffix shown in listings. UUIDv7 prefixes are time-based
// and collide for notes created close together.
func shortID(id string) string {
	if len(id) > 8 {
		return id[len(id)-8:]
	}
	return id
}

// resolve maps a full id or a listed short id to the note id.
func resolve(sess *session.Session, ref string) (string, error) {
	notes, err := sess.Notes()
	if err != nil {
		return "", err
	}
	var match string
	for _, n := range notes {
		if n.ID == ref {
			return n.ID, nil
		}
		if shortID(n.ID) == ref {
			if match != "" {
				return "", fmt.Errorf("note id %q is ambiguous", ref)
			}
			match = n.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("%w: %s", session.ErrNoteNotFound, ref)
	}
	return match, nil
}

// NoteDoneCmd toggles completion.
type NoteDoneCmd struct {
	ID string `arg:"" help:"Note id."`
}

func (c *NoteDoneCmd) Run(ctx *cli.Context) error {
	sess, err := ctx.Session()
	if err != nil {
		return err
	}
	id, err := resolve(sess, c.ID)
	if err != nil {
		return err
	}
	n, err := sess.ToggleNote(id)
	if err != nil {
		return err
	}
	if n.Completed {
		fmt.Fprintf(ctx.Out, "✓ %s completed\n", n.Title)
	} else {
		fmt.Fprintf(ctx.Out, "✓ %s reopened\n", n.Title)
	}
	return nil
}

type NoteDeleteCmd struct {
	ID string `arg:"" help:"Note id."`
}

func (c *NoteDeleteCmd) Run(ctx *cli.Context) error {
	sess, err := ctx.Session()
	if err != nil {
		return err
	}
	id, err := resolve(sess, c.ID)
	if err != nil {
		return err
	}
	if err := sess.DeleteNote(id); err != nil {
		return err
	}
	fmt.Fprintln(ctx.Out, "✓ Note deleted")
	return nil
}

type NoteSnoozeCmd struct {
	ID      string `arg:"" help:"Note id."`
	Minutes int    `help:"Minutes to snooze for." default:"10"`
}

func (c *NoteSnoozeCmd) Run(ctx *cli.Context) error {
	sess, err := ctx.Session()
	if err != nil {
		return err
	}
	id, err := resolve(sess, c.ID)
	if err != nil {
		return err
	}
	n, err := sess.SnoozeNote(id, c.Minutes)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "✓ %s snoozed until %s\n", n.Title, n.DueTime.Local().Format(time.Kitchen))
	return nil
}

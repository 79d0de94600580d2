package notes

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/pulse/internal/cli"
	"github.com/julianstephens/pulse/internal/config"
	"github.com/julianstephens/pulse/internal/models"
	"github.com/julianstephens/pulse/internal/session"
)

var fixedNow = time.Date(2024, 6, 5, 10, 0, 0, 0, time.Local)

func setupContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	cfg := config.NewDefault(t.TempDir())
	cfg.Tray.Enabled = false
	ctx := cli.NewContext(cfg, session.WithClock(func() time.Time { return fixedNow }))
	out := &bytes.Buffer{}
	ctx.Out = out
	t.Cleanup(func() { _ = ctx.Close() })
	if _, err := ctx.Login("Ada", "ada@example.com"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	return ctx, out
}

func onlyNote(t *testing.T, ctx *cli.Context) models.Note {
	t.Helper()
	sess, err := ctx.Session()
	if err != nil {
		t.Fatal(err)
	}
	notes, err := sess.Notes()
	if err != nil {
		t.Fatal(err)
	}
	if len(notes) != 1 {
		t.Fatalf("expected 1 note, got %d", len(notes))
	}
	return notes[0]
}

func TestNoteLifecycle(t *testing.T) {
	ctx, out := setupContext(t)

	add := &NoteAddCmd{Title: "Call mom", Due: "2024-06-05 18:30", Priority: "high", Recurring: "daily"}
	if err := add.Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	n := onlyNote(t, ctx)
	if n.Priority != models.PriorityHigh || n.Recurring != models.RecurrenceDaily {
		t.Errorf("note = %+v", n)
	}
	if want := time.Date(2024, 6, 5, 18, 30, 0, 0, time.Local); !n.DueTime.Equal(want) {
		t.Errorf("DueTime = %v, want %v", n.DueTime, want)
	}

	out.Reset()
	if err := (&NoteListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out.String(), "Call mom (daily)") || !strings.Contains(out.String(), shortID(n.ID)) {
		t.Errorf("list output = %q", out.String())
	}

	if err := (&NoteSnoozeCmd{ID: shortID(n.ID), Minutes: 15}).Run(ctx); err != nil {
		t.Fatalf("snooze failed: %v", err)
	}
	if got := onlyNote(t, ctx).DueTime; !got.Equal(fixedNow.Add(15 * time.Minute)) {
		t.Errorf("snoozed DueTime = %v", got)
	}

	if err := (&NoteDoneCmd{ID: n.ID}).Run(ctx); err != nil {
		t.Fatalf("done failed: %v", err)
	}
	if !onlyNote(t, ctx).Completed {
		t.Error("expected note completed")
	}

	out.Reset()
	if err := (&NoteListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out.String(), "No notes.") {
		t.Errorf("completed note should be hidden, got %q", out.String())
	}
	out.Reset()
	if err := (&NoteListCmd{All: true}).Run(ctx); err != nil {
		t.Fatalf("list --all failed: %v", err)
	}
	if !strings.Contains(out.String(), "done") {
		t.Errorf("list --all output = %q", out.String())
	}

	if err := (&NoteDeleteCmd{ID: shortID(n.ID)}).Run(ctx); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	sess, _ := ctx.Session()
	if notes, _ := sess.Notes(); len(notes) != 0 {
		t.Errorf("expected no notes after delete, got %d", len(notes))
	}
}

func TestNoteErrors(t *testing.T) {
	ctx, _ := setupContext(t)

	if err := (&NoteAddCmd{Title: "x", Due: "soon", Priority: "medium", Recurring: "none"}).Run(ctx); err == nil {
		t.Error("expected bad due time error")
	}
	if err := (&NoteAddCmd{Title: "", Due: "2024-06-05 18:30", Priority: "medium", Recurring: "none"}).Run(ctx); err == nil {
		t.Error("expected missing title error")
	}
	if err := (&NoteDoneCmd{ID: "missing"}).Run(ctx); !errors.Is(err, session.ErrNoteNotFound) {
		t.Errorf("done on missing note error = %v", err)
	}
	if err := (&NoteAddCmd{Title: "x", Due: "2024-06-05 18:30", Priority: "medium", Recurring: "none"}).Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := (&NoteSnoozeCmd{ID: onlyNote(t, ctx).ID, Minutes: 0}).Run(ctx); err == nil {
		t.Error("expected non-positive snooze error")
	}
}

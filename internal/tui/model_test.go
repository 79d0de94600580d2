package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/pulse/internal/session"
	"github.com/julianstephens/pulse/internal/storage/jsonfile"
	"github.com/julianstephens/pulse/internal/tui/components/checklist"
	"github.com/julianstephens/pulse/internal/tui/components/notes"
)

var fixedNow = time.Date(2024, 1, 4, 10, 0, 0, 0, time.Local)

func newTestModel(t *testing.T) (Model, *session.Session) {
	t.Helper()
	store := jsonfile.New(filepath.Join(t.TempDir(), "data"))
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	sess, err := session.Login(store, "Ada", "ada@example.com", session.WithClock(func() time.Time { return fixedNow }))
	if err != nil {
		t.Fatal(err)
	}
	if err := sess.SelectActivities([]string{"run", "reading"}); err != nil {
		t.Fatal(err)
	}
	m, err := NewModel(sess)
	if err != nil {
		t.Fatal(err)
	}
	return m, sess
}

// send runs msg through Update and then any command it returns, one level
// deep, feeding the result back in.
func send(m Model, msg tea.Msg) Model {
	next, cmd := m.Update(msg)
	m = next.(Model)
	if cmd != nil {
		if out := cmd(); out != nil {
			if _, isBatch := out.(tea.BatchMsg); !isBatch {
				next, _ = m.Update(out)
				m = next.(Model)
			}
		}
	}
	return m
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestToggleActivity(t *testing.T) {
	m, sess := newTestModel(t)

	m = send(m, keyMsg("space"))
	day, _ := sess.GetDay("2024-01-04")
	if !day["run"] {
		t.Fatalf("space should complete the first activity, day = %v", day)
	}
	if m.percent != 50 || m.streaks.Current != 1 {
		t.Errorf("header = %d%%, streak %d", m.percent, m.streaks.Current)
	}

	m = send(m, checklist.ToggleMsg{ActivityID: "run", Completed: false})
	day, _ = sess.GetDay("2024-01-04")
	if day["run"] {
		t.Error("toggle message should clear the activity")
	}
}

func TestDateNavigation(t *testing.T) {
	m, sess := newTestModel(t)
	m = send(m, keyMsg("left"))
	if m.date != "2024-01-03" {
		t.Fatalf("date = %s", m.date)
	}
	m = send(m, keyMsg("space"))
	day, _ := sess.GetDay("2024-01-03")
	if !day["run"] {
		t.Error("toggle should apply to the shown date")
	}
	m = send(m, keyMsg("t"))
	if m.date != "2024-01-04" {
		t.Errorf("t should return to today, date = %s", m.date)
	}
}

func TestTabsAndNotes(t *testing.T) {
	m, sess := newTestModel(t)
	m = send(m, keyMsg("tab"))
	if m.state != StateNotes {
		t.Fatalf("state = %v", m.state)
	}

	next, _ := m.Update(notes.AddNoteMsg{})
	m = next.(Model)
	if m.state != StateAddNote || m.form == nil {
		t.Fatalf("add should open the form, state = %v", m.state)
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	if m.state != StateNotes {
		t.Errorf("esc should close the form, state = %v", m.state)
	}

	n, err := sess.AddNote(session.NoteInput{Title: "Stretch", DueTime: fixedNow.Add(time.Hour)})
	if err != nil {
		t.Fatal(err)
	}
	m = send(m, ReloadMsg{})
	if m.notes.Len() != 1 {
		t.Fatalf("notes = %d", m.notes.Len())
	}

	m = send(m, notes.SnoozeNoteMsg{ID: n.ID})
	if !strings.Contains(m.status, "Snoozed") {
		t.Errorf("status = %q", m.status)
	}
	m = send(m, notes.ToggleNoteMsg{ID: n.ID})
	if got, _ := sess.Note(n.ID); !got.Completed {
		t.Error("note was not completed")
	}
	m = send(m, notes.DeleteNoteMsg{ID: n.ID})
	if m.notes.Len() != 0 {
		t.Errorf("notes after delete = %d", m.notes.Len())
	}
	m = send(m, notes.DeleteNoteMsg{ID: n.ID})
	if m.err == "" {
		t.Error("deleting a missing note should surface an error")
	}
}

func TestAlertStatusAndView(t *testing.T) {
	m, _ := newTestModel(t)
	m = send(m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m = send(m, AlertMsg{Title: "Good Morning! ☀️", Body: "Time to check your daily goals."})
	if !strings.Contains(m.status, "Good Morning!") {
		t.Errorf("status = %q", m.status)
	}
	view := m.View()
	for _, want := range []string{"Ada", "Today", "Checklist", "Run"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)
	next, cmd := m.Update(keyMsg("q"))
	if !next.(Model).quitting || cmd == nil {
		t.Error("q should quit")
	}
	if next.(Model).View() != "" {
		t.Error("view should be empty after quitting")
	}
}

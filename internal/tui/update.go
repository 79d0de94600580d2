package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/pulse/internal/models"
	"github.com/julianstephens/pulse/internal/session"
	"github.com/julianstephens/pulse/internal/tui/components/checklist"
	"github.com/julianstephens/pulse/internal/tui/components/notes"
)

const dueLayout = "2006-01-02 15:04"

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == StateAddNote {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.notes.SetSize(msg.Width-4, max(1, msg.Height-8))
		return m, nil

	case tickMsg:
		m.setErr(m.refresh())
		return m, tickEvery()

	case AlertMsg:
		m.status = fmt.Sprintf("%s %s: %s", time.Now().Format("15:04"), msg.Title, msg.Body)
		m.setErr(m.refresh())
		return m, nil

	case ReloadMsg:
		m.setErr(m.refresh())
		return m, nil

	case checklist.ToggleMsg:
		m.setErr(m.sess.RecordCompletion(m.date, msg.ActivityID, msg.Completed))
		m.setErr(m.refresh())
		return m, nil

	case notes.AddNoteMsg:
		m.noteForm = &NoteFormModel{
			Due:       time.Now().Add(time.Hour).Format(dueLayout),
			Priority:  models.PriorityMedium,
			Recurring: models.RecurrenceNone,
		}
		m.form = NewNoteForm(m.noteForm)
		m.state = StateAddNote
		return m, m.form.Init()

	case notes.ToggleNoteMsg:
		_, err := m.sess.ToggleNote(msg.ID)
		m.setErr(err)
		m.setErr(m.refresh())
		return m, nil

	case notes.SnoozeNoteMsg:
		n, err := m.sess.SnoozeNote(msg.ID, snoozeMinutes)
		if err == nil {
			m.status = fmt.Sprintf("Snoozed %q until %s", n.Title, n.DueTime.Format("15:04"))
		}
		m.setErr(err)
		m.setErr(m.refresh())
		return m, nil

	case notes.DeleteNoteMsg:
		m.setErr(m.sess.DeleteNote(msg.ID))
		m.setErr(m.refresh())
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + tabCount) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
		if m.state == StateToday {
			switch {
			case key.Matches(msg, m.keys.PrevDay):
				m.shiftDay(-1)
				m.setErr(m.refresh())
				return m, nil
			case key.Matches(msg, m.keys.NextDay):
				m.shiftDay(1)
				m.setErr(m.refresh())
				return m, nil
			case key.Matches(msg, m.keys.Today):
				m.date = m.sess.Today()
				m.setErr(m.refresh())
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateToday:
		m.checklist, cmd = m.checklist.Update(msg)
	case StateNotes:
		m.notes, cmd = m.notes.Update(msg)
	}
	return m, cmd
}

func (m *Model) setErr(err error) {
	if err != nil {
		m.err = err.Error()
	}
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.Type == tea.KeyEsc {
		m.state = StateNotes
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		due, _ := time.ParseInLocation(dueLayout, strings.TrimSpace(m.noteForm.Due), time.Local)
		_, err := m.sess.AddNote(session.NoteInput{
			Title:     strings.TrimSpace(m.noteForm.Title),
			Text:      m.noteForm.Text,
			DueTime:   due,
			Priority:  m.noteForm.Priority,
			Recurring: m.noteForm.Recurring,
		})
		if err != nil {
			m.err = fmt.Sprintf("Failed to add note: %v", err)
		} else {
			m.err = ""
		}
		m.setErr(m.refresh())
		m.state = StateNotes
	case huh.StateAborted:
		m.state = StateNotes
	}
	return m, cmd
}

// NewNoteForm builds the add-note form bound to fm.
func NewNoteForm(fm *NoteFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&fm.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title is required")
					}
					return nil
				}),
			huh.NewText().
				Title("Details").
				Value(&fm.Text),
			huh.NewInput().
				Title("Due (YYYY-MM-DD HH:MM)").
				Value(&fm.Due).
				Validate(func(s string) error {
					_, err := time.ParseInLocation(dueLayout, strings.TrimSpace(s), time.Local)
					return err
				}),
			huh.NewSelect[models.Priority]().
				Title("Priority").
				Options(
					huh.NewOption("Low", models.PriorityLow),
					huh.NewOption("Medium", models.PriorityMedium),
					huh.NewOption("High", models.PriorityHigh),
				).
				Value(&fm.Priority),
			huh.NewSelect[models.Recurrence]().
				Title("Repeat").
				Options(
					huh.NewOption("Once", models.RecurrenceNone),
					huh.NewOption("Daily", models.RecurrenceDaily),
					huh.NewOption("Weekly", models.RecurrenceWeekly),
				).
				Value(&fm.Recurring),
		),
	).WithTheme(huh.ThemeDracula())
}

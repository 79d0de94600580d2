// Package notes lists reminder notes with bubbles/list.
package notes

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/pulse/internal/models"
)

type AddNoteMsg struct{}

type ToggleNoteMsg struct {
	ID string
}

type SnoozeNoteMsg struct {
	ID string
}

type DeleteNoteMsg struct {
	ID string
}

type Item struct {
	Note models.Note
}

func (i Item) Title() string {
	title := i.Note.Priority.Marker() + i.Note.Title
	if i.Note.Completed {
		title = "✓ " + title
	}
	return title
}

func (i Item) Description() string {
	desc := i.Note.DueTime.Local().Format("Mon Jan 2 15:04")
	if i.Note.Recurring != models.RecurrenceNone {
		desc += " | " + string(i.Note.Recurring)
	}
	if i.Note.Notified && !i.Note.Completed {
		desc += " | fired"
	}
	if i.Note.Text != "" {
		desc = fmt.Sprintf("%s | %s", desc, i.Note.Text)
	}
	return desc
}

func (i Item) FilterValue() string { return i.Note.Title }

type KeyMap struct {
	Add    key.Binding
	Toggle key.Binding
	Snooze key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "done"),
		),
		Snooze: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "snooze"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(notes []models.Note, width, height int) Model {
	l := list.New(items(notes), list.NewDefaultDelegate(), width, height)
	l.Title = "Notes"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Toggle, keys.Snooze, keys.Delete}
	}
	l.AdditionalFullHelpKeys = l.AdditionalShortHelpKeys

	return Model{list: l, keys: keys}
}

func items(notes []models.Note) []list.Item {
	out := make([]list.Item, len(notes))
	for i, n := range notes {
		out[i] = Item{Note: n}
	}
	return out
}

func (m *Model) SetNotes(notes []models.Note) {
	m.list.SetItems(items(notes))
}

func (m Model) Len() int {
	return len(m.list.Items())
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		if key.Matches(kmsg, m.keys.Add) {
			return m, func() tea.Msg { return AddNoteMsg{} }
		}
		if i, ok := m.list.SelectedItem().(Item); ok {
			switch {
			case key.Matches(kmsg, m.keys.Toggle):
				return m, func() tea.Msg { return ToggleNoteMsg{ID: i.Note.ID} }
			case key.Matches(kmsg, m.keys.Snooze):
				return m, func() tea.Msg { return SnoozeNoteMsg{ID: i.Note.ID} }
			case key.Matches(kmsg, m.keys.Delete):
				return m, func() tea.Msg { return DeleteNoteMsg{ID: i.Note.ID} }
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No notes yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

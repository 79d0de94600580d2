// Package checklist renders one day's tracked activities with a cursor.
package checklist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/pulse/internal/catalog"
	"github.com/julianstephens/pulse/internal/models"
)

var (
	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Bold(true).
			MarginTop(1)

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Strikethrough(true)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)
)

// ToggleMsg asks the parent to flip an activity on the shown date.
type ToggleMsg struct {
	ActivityID string
	Completed  bool
}

type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "toggle"),
		),
	}
}

type Model struct {
	activities []models.Activity
	day        models.DayProgress
	cursor     int
	keys       KeyMap
}

func New(selected []string, day models.DayProgress) Model {
	m := Model{keys: DefaultKeyMap()}
	m.SetSelection(selected)
	m.SetDay(day)
	return m
}

// SetSelection shows the given activity ids in catalog order.
func (m *Model) SetSelection(selected []string) {
	m.activities = catalog.Filter(selected)
	m.cursor = min(m.cursor, max(0, len(m.activities)-1))
}

func (m *Model) SetDay(day models.DayProgress) {
	m.day = day
}

// Selected returns the activity under the cursor.
func (m Model) Selected() (models.Activity, bool) {
	if len(m.activities) == 0 {
		return models.Activity{}, false
	}
	return m.activities[m.cursor], true
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.activities) == 0 {
		return m, nil
	}
	switch {
	case key.Matches(kmsg, m.keys.Up):
		m.cursor = (m.cursor - 1 + len(m.activities)) % len(m.activities)
	case key.Matches(kmsg, m.keys.Down):
		m.cursor = (m.cursor + 1) % len(m.activities)
	case key.Matches(kmsg, m.keys.Toggle):
		a := m.activities[m.cursor]
		done := !m.day[a.ID]
		return m, func() tea.Msg { return ToggleMsg{ActivityID: a.ID, Completed: done} }
	}
	return m, nil
}

func (m Model) View() string {
	if len(m.activities) == 0 {
		return "\n  No activities selected.\n  Run 'pulse activities select' to choose some."
	}
	var b strings.Builder
	var current models.Category
	for i, a := range m.activities {
		if a.Category != current {
			current = a.Category
			info, _ := catalog.Category(current)
			b.WriteString(categoryStyle.Foreground(lipgloss.Color(info.Color)).Render(info.Label))
			b.WriteString("\n")
		}
		box := "[ ]"
		name := a.Name
		if m.day[a.ID] {
			box = "[x]"
			name = doneStyle.Render(name)
		}
		line := fmt.Sprintf("  %s %s %s", box, a.Icon, name)
		if i == m.cursor {
			line = cursorStyle.Render(">") + line[1:]
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

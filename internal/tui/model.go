// Package tui is the interactive dashboard: today's checklist, notes and a
// stats header, with scheduler alerts shown in a status line.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/pulse/internal/models"
	"github.com/julianstephens/pulse/internal/session"
	"github.com/julianstephens/pulse/internal/stats"
	"github.com/julianstephens/pulse/internal/tui/components/checklist"
	"github.com/julianstephens/pulse/internal/tui/components/notes"
	"github.com/julianstephens/pulse/internal/utils"
)

type SessionState int

const (
	StateToday SessionState = iota
	StateNotes
	StateAddNote
)

// tabCount is the number of states reachable with tab.
const tabCount = 2

// snoozeMinutes is how far the snooze key pushes a note.
const snoozeMinutes = 10

type NoteFormModel struct {
	Title     string
	Text      string
	Due       string
	Priority  models.Priority
	Recurring models.Recurrence
}

// AlertMsg carries a scheduler alert into the program.
type AlertMsg struct {
	Title string
	Body  string
}

// ReloadMsg tells the model the session was reloaded from the store.
type ReloadMsg struct{}

type Model struct {
	sess      *session.Session
	state     SessionState
	keys      KeyMap
	help      help.Model
	checklist checklist.Model
	notes     notes.Model
	form      *huh.Form
	noteForm  *NoteFormModel
	date      string
	user      models.User
	percent   int
	streaks   stats.StreakInfo
	status    string
	err       string
	quitting  bool
	width     int
	height    int
}

func NewModel(sess *session.Session) (Model, error) {
	m := Model{
		sess:      sess,
		state:     StateToday,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		checklist: checklist.New(nil, nil),
		notes:     notes.New(nil, 0, 0),
		date:      sess.Today(),
	}
	if err := m.refresh(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// refresh reloads everything shown from the session.
func (m *Model) refresh() error {
	p, err := m.sess.Snapshot()
	if err != nil {
		return err
	}
	m.user = p.User
	selected := p.User.SelectedActivityIDs
	day := p.History.Day(m.date)
	m.checklist.SetSelection(selected)
	m.checklist.SetDay(day)
	m.notes.SetNotes(p.Notes)
	m.percent = stats.CompletionPercentage(day, selected)
	m.streaks, err = stats.Streaks(p.History, selected, m.sess.Today())
	return err
}

func (m *Model) shiftDay(days int) {
	if next, err := utils.ShiftDate(m.date, days); err == nil {
		m.date = next
	}
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	if m.state == StateToday {
		keys = append(keys, m.keys.PrevDay, m.keys.NextDay)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	return m.keys.FullHelp()
}

func (m Model) Init() tea.Cmd {
	return tickEvery()
}

type tickMsg time.Time

// tickEvery refreshes the header once a minute so the date rolls over.
func tickEvery() tea.Cmd {
	return tea.Every(time.Minute, func(t time.Time) tea.Msg { return tickMsg(t) })
}

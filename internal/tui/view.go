package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateToday:
		content = docStyle.Render(m.checklist.View())
	case StateNotes:
		content = docStyle.Render(m.notes.View())
	case StateAddNote:
		content = docStyle.Render(m.form.View())
	}

	parts := []string{m.viewHeader(), m.viewTabs(), content}
	if m.status != "" {
		parts = append(parts, alertStyle.Render(m.status))
	}
	if m.err != "" {
		parts = append(parts, errorStyle.Render(m.err))
	}
	parts = append(parts, m.help.View(m))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewHeader() string {
	day := m.date
	if day == m.sess.Today() {
		day = "Today"
	}
	return headerStyle.Render(fmt.Sprintf("%s  %s  %s  %s",
		accent(m.user.ThemeColor, "pulse"),
		m.user.Name,
		mutedStyle.Render(day),
		fmt.Sprintf("%d%% done · %d day streak (best %d)", m.percent, m.streaks.Current, m.streaks.Longest),
	))
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Checklist", fmt.Sprintf("Notes (%d)", m.notes.Len())} {
		if m.state == SessionState(i) || (m.state == StateAddNote && i == int(StateNotes)) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

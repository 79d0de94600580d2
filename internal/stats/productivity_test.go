package stats

import (
	"testing"

	"github.com/julianstephens/pulse/internal/models"
)

func TestMotivation(t *testing.T) {
	tests := []struct {
		pct  int
		want string
	}{
		{100, "Absolute Beast Mode! 🏆"},
		{75, "Main Character Energy ✨"},
		{40, "Keep the momentum! ⚡"},
		{1, "The pulse is rising... 📈"},
		{0, "Ready to start?"},
	}
	for _, tt := range tests {
		if got := Motivation(tt.pct); got != tt.want {
			t.Errorf("Motivation(%d) = %q, want %q", tt.pct, got, tt.want)
		}
	}
}

func TestProductivity(t *testing.T) {
	h := models.HistoryData{
		"2024-01-01": {"run": true},
		"2024-01-06": {"run": true, "water": true},
		"2024-01-07": {"run": true, "water": false},
	}
	got, err := Productivity(h, []string{"run", "water"}, "2024-01-07")
	if err != nil {
		t.Fatalf("Productivity() error = %v", err)
	}
	if got.TodayCompleted != 1 || got.GoalCount != 2 || got.Percentage != 50 {
		t.Errorf("today = %d/%d (%d%%)", got.TodayCompleted, got.GoalCount, got.Percentage)
	}
	if got.TodayMinutes != 45 || got.TodayTime != "0h 45m" {
		t.Errorf("today time = %d %q", got.TodayMinutes, got.TodayTime)
	}
	// 4 completions in the window, 180 minutes
	if got.WeeklyTime != "3h 0m" {
		t.Errorf("WeeklyTime = %q", got.WeeklyTime)
	}
	if len(got.LastSevenDays) != 7 || got.LastSevenDays[0].Date != "2024-01-01" {
		t.Errorf("LastSevenDays = %+v", got.LastSevenDays)
	}
	if got.Motivation != "Keep the momentum! ⚡" {
		t.Errorf("Motivation = %q", got.Motivation)
	}
}

package stats

import (
	"fmt"

	"github.com/julianstephens/pulse/internal/catalog"
	"github.com/julianstephens/pulse/internal/constants"
	"github.com/julianstephens/pulse/internal/models"
	"github.com/julianstephens/pulse/internal/utils"
)

// DayFocus is one day of the productivity week.
type DayFocus struct {
	Date    string `json:"date"`
	Weekday string `json:"weekday"`
	Count   int    `json:"count"`
	Minutes int    `json:"minutes"`
}

// ProductivityStats estimates focus time from completions.
type ProductivityStats struct {
	TodayCompleted int        `json:"todayCompleted"`
	GoalCount      int        `json:"goalCount"`
	Percentage     int        `json:"percentage"`
	TodayMinutes   int        `json:"todayMinutes"`
	TodayTime      string     `json:"todayTime"`
	WeeklyTime     string     `json:"weeklyTime"`
	LastSevenDays  []DayFocus `json:"lastSevenDays"`
	Motivation     string     `json:"motivation"`
}

// Motivation picks the encouragement line for a completion percentage.
func Motivation(percentage int) string {
	switch {
	case percentage >= 100:
		return "Absolute Beast Mode! 🏆"
	case percentage >= 75:
		return "Main Character Energy ✨"
	case percentage >= 40:
		return "Keep the momentum! ⚡"
	case percentage > 0:
		return "The pulse is rising... 📈"
	default:
		return "Ready to start?"
	}
}

// Productivity summarizes today and the seven days ending today.
func Productivity(history models.HistoryData, selected []string, today string) (ProductivityStats, error) {
	todayDate, err := utils.ParseDate(today)
	if err != nil {
		return ProductivityStats{}, fmt.Errorf("invalid date %q: %w", today, err)
	}

	tracked := catalog.Tracked(selected)
	done := history[today].CompletedIn(tracked)
	goals := max(1, len(tracked))
	pct := percent(done, goals)

	p := ProductivityStats{
		TodayCompleted: done,
		GoalCount:      goals,
		Percentage:     pct,
		TodayMinutes:   done * constants.FocusMinutesPerGoal,
		Motivation:     Motivation(pct),
	}
	p.TodayTime = utils.FormatDuration(p.TodayMinutes)

	weekly := 0
	for i := constants.WeeklyWindow - 1; i >= 0; i-- {
		d := todayDate.AddDate(0, 0, -i)
		key := utils.DateKey(d)
		n := history[key].CompletedIn(tracked)
		weekly += n
		p.LastSevenDays = append(p.LastSevenDays, DayFocus{
			Date:    key,
			Weekday: d.Format("Mon"),
			Count:   n,
			Minutes: n * constants.FocusMinutesPerGoal,
		})
	}
	p.WeeklyTime = utils.FormatDuration(weekly * constants.FocusMinutesPerGoal)
	return p, nil
}

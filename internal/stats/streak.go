package stats

import (
	"fmt"

	"github.com/julianstephens/pulse/internal/catalog"
	"github.com/julianstephens/pulse/internal/models"
	"github.com/julianstephens/pulse/internal/utils"
)

// StreakInfo holds the current and longest runs of progress days.
type StreakInfo struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// Streaks computes the current and longest streaks relative to today.
//
// A progress day has at least one tracked activity done. The current streak
// counts consecutive progress days walking back from today; an empty today is
// skipped, any earlier empty day ends the walk. The longest streak scans
// progress days in date order and restarts whenever two of them are not
// adjacent calendar days.
func Streaks(history models.HistoryData, selected []string, today string) (StreakInfo, error) {
	todayDate, err := utils.ParseDate(today)
	if err != nil {
		return StreakInfo{}, fmt.Errorf("invalid date %q: %w", today, err)
	}

	tracked := catalog.Tracked(selected)
	hasProgress := func(date string) bool {
		return history[date].CompletedIn(tracked) > 0
	}

	var info StreakInfo
	for d := todayDate; ; d = d.AddDate(0, 0, -1) {
		key := utils.DateKey(d)
		if hasProgress(key) {
			info.Current++
			continue
		}
		if key == today {
			continue
		}
		break
	}

	run := 0
	var last string
	for _, date := range history.Dates() {
		if !hasProgress(date) {
			continue
		}
		cur, err := utils.ParseDate(date)
		if err != nil {
			// malformed keys cannot be placed on the calendar
			continue
		}
		if last != "" {
			prev, _ := utils.ParseDate(last)
			if utils.IsNextDay(prev, cur) {
				run++
			} else {
				run = 1
			}
		} else {
			run = 1
		}
		info.Longest = max(info.Longest, run)
		last = date
	}
	return info, nil
}

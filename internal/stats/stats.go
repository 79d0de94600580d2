// Package stats derives progress figures from a history snapshot.
//
// Every function is pure: the same history, selection and reference date
// always produce the same result. Only catalog activities that appear in the
// selection ("tracked" activities) are counted; unknown ids in either the
// selection or the history are ignored.
package stats

import (
	"fmt"
	"math"

	"github.com/julianstephens/pulse/internal/catalog"
	"github.com/julianstephens/pulse/internal/constants"
	"github.com/julianstephens/pulse/internal/models"
	"github.com/julianstephens/pulse/internal/utils"
)

// Supported time series windows.
const (
	Weekly  = constants.WeeklyWindow
	Monthly = constants.MonthlyWindow
)

// percent rounds 100*num/den to the nearest integer with den floored at 1.
func percent(num, den int) int {
	if den < 1 {
		den = 1
	}
	return int(math.Round(float64(num) * 100 / float64(den)))
}

// CompletedCount returns how many tracked activities are done in day.
func CompletedCount(day models.DayProgress, selected []string) int {
	return day.CompletedIn(catalog.Tracked(selected))
}

// CompletionPercentage is the rounded share of tracked activities done in
// day. An empty selection yields 0.
func CompletionPercentage(day models.DayProgress, selected []string) int {
	tracked := catalog.Tracked(selected)
	if len(tracked) == 0 {
		return 0
	}
	return percent(day.CompletedIn(tracked), len(tracked))
}

// totalCompletions sums tracked completions over every date in history.
func totalCompletions(history models.HistoryData, tracked map[string]bool) int {
	total := 0
	for _, day := range history {
		total += day.CompletedIn(tracked)
	}
	return total
}

// Efficiency is total completions over every possible completion, as a
// percentage. Days tracked is the number of distinct dates in history.
func Efficiency(history models.HistoryData, selected []string) int {
	tracked := catalog.Tracked(selected)
	return percent(totalCompletions(history, tracked), max(1, len(history))*max(1, len(tracked)))
}

// SummaryStats is the headline block of the insights view.
type SummaryStats struct {
	TotalCompletions int     `json:"totalCompletions"`
	AveragePerDay    float64 `json:"averagePerDay"`
	DaysTracked      int     `json:"daysTracked"`
	Efficiency       int     `json:"efficiency"`
}

func Summary(history models.HistoryData, selected []string) SummaryStats {
	tracked := catalog.Tracked(selected)
	total := totalCompletions(history, tracked)
	days := max(1, len(history))
	return SummaryStats{
		TotalCompletions: total,
		AveragePerDay:    math.Round(float64(total)/float64(days)*10) / 10,
		DaysTracked:      days,
		Efficiency:       percent(total, days*max(1, len(tracked))),
	}
}

// DateRange bounds a query by inclusive YYYY-MM-DD keys. An empty bound is
// open on that side; the zero value covers all dates.
type DateRange struct {
	From string
	To   string
}

func (r DateRange) Contains(date string) bool {
	if r.From != "" && date < r.From {
		return false
	}
	if r.To != "" && date > r.To {
		return false
	}
	return true
}

// CategoryShare is one entry of the category mix.
type CategoryShare struct {
	Category   models.Category `json:"category"`
	Label      string          `json:"label"`
	Color      string          `json:"color"`
	Count      int             `json:"count"`
	Percentage int             `json:"percentage"`
}

// CategoryMix counts tracked completions per category within r. Categories
// with no completions are omitted; the rest follow catalog order.
func CategoryMix(history models.HistoryData, selected []string, r DateRange) []CategoryShare {
	tracked := catalog.Tracked(selected)
	counts := make(map[models.Category]int)
	total := 0
	for date, day := range history {
		if !r.Contains(date) {
			continue
		}
		for id, done := range day {
			if !done || !tracked[id] {
				continue
			}
			a, _ := catalog.ByID(id)
			counts[a.Category]++
			total++
		}
	}

	var out []CategoryShare
	for _, c := range catalog.Categories() {
		n := counts[c.ID]
		if n == 0 {
			continue
		}
		out = append(out, CategoryShare{
			Category:   c.ID,
			Label:      c.Label,
			Color:      c.Color,
			Count:      n,
			Percentage: percent(n, total),
		})
	}
	return out
}

// SeriesPoint is one day of a time series.
type SeriesPoint struct {
	Date  string `json:"date"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// TimeSeries returns window points ending at end (inclusive), oldest first.
func TimeSeries(history models.HistoryData, selected []string, end string, window int) ([]SeriesPoint, error) {
	if window < 1 {
		return nil, fmt.Errorf("window must be positive, got %d", window)
	}
	endDate, err := utils.ParseDate(end)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", end, err)
	}

	tracked := catalog.Tracked(selected)
	points := make([]SeriesPoint, 0, window)
	for i := window - 1; i >= 0; i-- {
		d := endDate.AddDate(0, 0, -i)
		key := utils.DateKey(d)
		points = append(points, SeriesPoint{
			Date:  key,
			Label: d.Format("Mon 2"),
			Count: history[key].CompletedIn(tracked),
		})
	}
	return points, nil
}

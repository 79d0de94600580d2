package models

import "sort"

// DayProgress maps activity id to completion for one calendar date.
// A missing key means "not completed".
type DayProgress map[string]bool

// HistoryData maps a YYYY-MM-DD date to that day's progress.
type HistoryData map[string]DayProgress

// Record sets the completion flag for an activity on a date, creating the
// date entry if needed. h must be non-nil.
func (h HistoryData) Record(date, activityID string, completed bool) {
	day, ok := h[date]
	if !ok || day == nil {
		day = make(DayProgress)
		h[date] = day
	}
	day[activityID] = completed
}

// Day returns a copy of the progress for date; never nil.
func (h HistoryData) Day(date string) DayProgress {
	out := make(DayProgress, len(h[date]))
	for id, done := range h[date] {
		out[id] = done
	}
	return out
}

// Dates returns all recorded dates in ascending order.
func (h HistoryData) Dates() []string {
	dates := make([]string, 0, len(h))
	for d := range h {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// Clone returns a deep copy.
func (h HistoryData) Clone() HistoryData {
	out := make(HistoryData, len(h))
	for date := range h {
		out[date] = h.Day(date)
	}
	return out
}

// CompletedIn counts the activities in ids that are marked done.
func (d DayProgress) CompletedIn(ids map[string]bool) int {
	count := 0
	for id, done := range d {
		if done && ids[id] {
			count++
		}
	}
	return count
}

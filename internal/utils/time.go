package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/pulse/internal/constants"
)

// DateKey returns the history key (YYYY-MM-DD) for t in its own location.
// Callers pass local time; no zone conversion happens here.
func DateKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// ClockKey returns the HH:MM minute-of-day for t.
func ClockKey(t time.Time) string {
	return t.Format(constants.TimeFormat)
}

// ParseDate parses a date string in the standard format (YYYY-MM-DD).
// The result is midnight UTC, which keeps AddDate arithmetic free of DST shifts.
func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse(constants.DateFormat, dateStr)
}

// ParseTime parses a time string in the standard format (HH:MM).
func ParseTime(timeStr string) (time.Time, error) {
	return time.Parse(constants.TimeFormat, timeStr)
}

// ValidateDateFormat checks if the string is a well-formed calendar date.
func ValidateDateFormat(dateStr string) bool {
	_, err := ParseDate(dateStr)
	return err == nil
}

// ValidateTimeFormat checks if the string matches the standard time format.
func ValidateTimeFormat(timeStr string) bool {
	_, err := ParseTime(timeStr)
	return err == nil
}

// ShiftDate moves a date key by the given number of calendar days.
func ShiftDate(dateStr string, days int) (string, error) {
	d, err := ParseDate(dateStr)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: %w", dateStr, err)
	}
	return d.AddDate(0, 0, days).Format(constants.DateFormat), nil
}

// IsNextDay reports whether b is exactly one calendar day after a.
func IsNextDay(a, b time.Time) bool {
	next := a.AddDate(0, 0, 1)
	return next.Year() == b.Year() && next.YearDay() == b.YearDay()
}

// FormatDuration renders minutes as "Xh Ym".
func FormatDuration(minutes int) string {
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// DueLayout is the local-time form accepted for note due times.
const DueLayout = "2006-01-02 15:04"

// ParseDue reads a note due time as "YYYY-MM-DD HH:MM" local time or RFC 3339.
func ParseDue(v string) (time.Time, error) {
	if t, err := time.ParseInLocation(DueLayout, v, time.Local); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("due must be YYYY-MM-DD HH:MM or RFC 3339, got %q", v)
	}
	return t, nil
}

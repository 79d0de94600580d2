package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Marker is the alert title prefix for the priority.
func (p Priority) Marker() string {
	switch p {
	case PriorityHigh:
		return "🚨 [URGENT] "
	case PriorityMedium:
		return "⚡ [PULSE] "
	default:
		return "📝 "
	}
}

type Recurrence string

const (
	RecurrenceNone   Recurrence = "none"
	RecurrenceDaily  Recurrence = "daily"
	RecurrenceWeekly Recurrence = "weekly"
)

// Note is a time-due reminder. Notified means the current DueTime occurrence
// has already fired.
type Note struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Text      string     `json:"text"`
	DueTime   time.Time  `json:"dueTime"`
	Priority  Priority   `json:"priority"`
	Recurring Recurrence `json:"recurring"`
	Completed bool       `json:"completed"`
	Notified  bool       `json:"notified"`
	CreatedAt int64      `json:"createdAt"` // unix milliseconds
}

// ApplyDefaults fills an empty priority or recurrence.
func (n *Note) ApplyDefaults() {
	if n.Priority == "" {
		n.Priority = PriorityMedium
	}
	if n.Recurring == "" {
		n.Recurring = RecurrenceNone
	}
}

func (n Note) Validate() error {
	return validation.ValidateStruct(&n,
		validation.Field(&n.Title, validation.Required),
		validation.Field(&n.DueTime, validation.Required),
		validation.Field(&n.Priority, validation.In(PriorityLow, PriorityMedium, PriorityHigh)),
		validation.Field(&n.Recurring, validation.In(RecurrenceNone, RecurrenceDaily, RecurrenceWeekly)),
	)
}

// IsDue reports whether the note should fire at now.
func (n *Note) IsDue(now time.Time) bool {
	return !n.Completed && !n.Notified && !n.DueTime.After(now)
}

// AlertTitle is the title shown when the note fires.
func (n *Note) AlertTitle() string {
	return n.Priority.Marker() + n.Title
}

// Rollover records that the current occurrence fired. Recurring notes move to
// their next occurrence in local calendar days and become pending again;
// one-off notes are marked notified.
func (n *Note) Rollover() {
	switch n.Recurring {
	case RecurrenceDaily:
		n.DueTime = n.DueTime.In(time.Local).AddDate(0, 0, 1)
		n.Notified = false
	case RecurrenceWeekly:
		n.DueTime = n.DueTime.In(time.Local).AddDate(0, 0, 7)
		n.Notified = false
	default:
		n.Notified = true
	}
}

// Snooze pushes the note to now+d and re-arms it.
func (n *Note) Snooze(now time.Time, d time.Duration) {
	n.DueTime = now.Add(d)
	n.Notified = false
}

// CreatedTime converts CreatedAt to a time.Time.
func (n *Note) CreatedTime() time.Time {
	return time.UnixMilli(n.CreatedAt)
}

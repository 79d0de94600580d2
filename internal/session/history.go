package session

import (
	"fmt"

	"github.com/julianstephens/pulse/internal/catalog"
	"github.com/julianstephens/pulse/internal/models"
	"github.com/julianstephens/pulse/internal/utils"
)

// RecordCompletion sets an activity's completion on date and persists,
// even when the value is unchanged.
func (s *Session) RecordCompletion(date, activityID string, completed bool) error {
	if !utils.ValidateDateFormat(date) {
		return fmt.Errorf("%w: %q (expected YYYY-MM-DD)", ErrInvalidDate, date)
	}
	if !catalog.Exists(activityID) {
		return fmt.Errorf("%w: %q", ErrUnknownActivity, activityID)
	}
	return s.update(func() error {
		s.history.Record(date, activityID, completed)
		return nil
	})
}

// GetDay returns the progress recorded for date; empty when none.
func (s *Session) GetDay(date string) (models.DayProgress, error) {
	var day models.DayProgress
	err := s.read(func() { day = s.history.Day(date) })
	return day, err
}

// Today is the session clock's local date key.
func (s *Session) Today() string {
	return utils.DateKey(s.now())
}

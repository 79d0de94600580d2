package cli

import (
	"fmt"

	"github.com/julianstephens/pulse/internal/session"
	"github.com/julianstephens/pulse/internal/utils"
)

// ResolveDate returns date, or the session's today when date is empty.
func ResolveDate(sess *session.Session, date string) (string, error) {
	if date == "" {
		return sess.Today(), nil
	}
	if !utils.ValidateDateFormat(date) {
		return "", fmt.Errorf("%w: %q (expected YYYY-MM-DD)", session.ErrInvalidDate, date)
	}
	return date, nil
}

package session

import (
	"fmt"
	"slices"

	"github.com/julianstephens/pulse/internal/catalog"
	"github.com/julianstephens/pulse/internal/constants"
	"github.com/julianstephens/pulse/internal/models"
)

// UpdateUser applies fn to a copy of the profile, validates the result and
// persists it. The email cannot be changed.
func (s *Session) UpdateUser(fn func(*models.User)) error {
	return s.update(func() error {
		u := models.Payload{User: s.user}.Clone().User
		fn(&u)
		u.Email = s.key
		if err := u.Validate(); err != nil {
			return fmt.Errorf("invalid profile: %w", err)
		}
		s.user = u
		return nil
	})
}

// SelectActivities replaces the tracked selection. Unknown ids are rejected
// and duplicates collapse, keeping first-seen order.
func (s *Session) SelectActivities(ids []string) error {
	selected := make([]string, 0, len(ids))
	for _, id := range ids {
		if !catalog.Exists(id) {
			return fmt.Errorf("%w: %q", ErrUnknownActivity, id)
		}
		if !slices.Contains(selected, id) {
			selected = append(selected, id)
		}
	}
	return s.UpdateUser(func(u *models.User) { u.SelectedActivityIDs = selected })
}

func (s *Session) SetNotificationSettings(ns models.NotificationSettings) error {
	return s.UpdateUser(func(u *models.User) { u.NotificationSettings = ns })
}

// SetTheme accepts a palette name or a #rrggbb color.
func (s *Session) SetTheme(theme string) error {
	color, ok := catalog.ThemeColor(theme)
	if !ok {
		if !models.IsHexColor(theme) {
			return fmt.Errorf("unknown theme %q", theme)
		}
		color = theme
	}
	return s.UpdateUser(func(u *models.User) { u.ThemeColor = color })
}

// ToggleDarkMode flips dark mode and returns the new value.
func (s *Session) ToggleDarkMode() (bool, error) {
	var dark bool
	err := s.UpdateUser(func(u *models.User) {
		u.IsDarkMode = !u.IsDarkMode
		dark = u.IsDarkMode
	})
	return dark, err
}

// SetWidgets replaces the active dashboard widgets.
func (s *Session) SetWidgets(ids []string) error {
	for _, id := range ids {
		if !slices.Contains(constants.Widgets, id) {
			return fmt.Errorf("unknown widget %q", id)
		}
	}
	return s.UpdateUser(func(u *models.User) { u.ActiveWidgets = append([]string{}, ids...) })
}

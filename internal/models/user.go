package models

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/julianstephens/pulse/internal/constants"
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+$`)
	hexPattern   = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
)

type NotificationSettings struct {
	Enabled         bool   `json:"enabled"`
	MorningReminder bool   `json:"morningReminder"`
	EveningSummary  bool   `json:"eveningSummary"`
	ReminderTime    string `json:"reminderTime"`
}

func (n NotificationSettings) Validate() error {
	return validation.ValidateStruct(&n,
		validation.Field(&n.ReminderTime, validation.Required, validation.Match(clockPattern)),
	)
}

// User is the account profile and its settings.
type User struct {
	Name                 string               `json:"name"`
	Email                string               `json:"email"`
	SelectedActivityIDs  []string             `json:"selectedActivityIds"`
	ThemeColor           string               `json:"themeColor"`
	IsDarkMode           bool                 `json:"isDarkMode"`
	ActiveWidgets        []string             `json:"activeWidgets"`
	NotificationSettings NotificationSettings `json:"notificationSettings"`
}

// NormalizeEmail trims and lower-cases an account handle.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NewUser returns a profile with the defaults a fresh account starts with.
func NewUser(name, email string) User {
	widgets := make([]string, len(constants.DefaultWidgets))
	copy(widgets, constants.DefaultWidgets)
	return User{
		Name:                strings.TrimSpace(name),
		Email:               NormalizeEmail(email),
		SelectedActivityIDs: []string{},
		ThemeColor:          constants.DefaultThemeColor,
		IsDarkMode:          constants.DefaultDarkMode,
		ActiveWidgets:       widgets,
		NotificationSettings: NotificationSettings{
			Enabled:         constants.DefaultNotifications,
			MorningReminder: constants.DefaultMorningReminder,
			EveningSummary:  constants.DefaultEveningSummary,
			ReminderTime:    constants.DefaultReminderTime,
		},
	}
}

func (u User) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.Name, validation.Required),
		validation.Field(&u.Email, validation.Required, validation.Match(emailPattern)),
		validation.Field(&u.ThemeColor, validation.Required, validation.Match(hexPattern)),
		validation.Field(&u.NotificationSettings),
	)
}

// Selected returns the selection as a set.
func (u *User) Selected() map[string]bool {
	set := make(map[string]bool, len(u.SelectedActivityIDs))
	for _, id := range u.SelectedActivityIDs {
		set[id] = true
	}
	return set
}

// NeedsSetup reports whether the user has not picked any activities yet.
func (u *User) NeedsSetup() bool {
	return len(u.SelectedActivityIDs) == 0
}

// IsEmail reports whether s looks like an account handle (local@domain).
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsHexColor reports whether s is a #rrggbb color.
func IsHexColor(s string) bool {
	return hexPattern.MatchString(s)
}

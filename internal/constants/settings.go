package constants

const (
	// Profile defaults for a brand-new account
	DefaultThemeColor      = "#4f46e5"
	DefaultDarkMode        = false
	DefaultReminderTime    = "09:00"
	DefaultNotifications   = false
	DefaultMorningReminder = true
	DefaultEveningSummary  = true

	// Widget ids
	WidgetStreak   = "streak"
	WidgetProgress = "progress"
	WidgetWeekly   = "weekly"
	WidgetNotes    = "notes"
)

// DefaultWidgets is the widget set enabled on account creation.
var DefaultWidgets = []string{WidgetStreak, WidgetProgress}

// Widgets lists every widget id a user may enable.
var Widgets = []string{WidgetStreak, WidgetProgress, WidgetWeekly, WidgetNotes}

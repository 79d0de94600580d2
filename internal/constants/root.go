package constants

import "time"

const (
	AppName           = "pulse"
	Version           = "v0.3.0"
	DefaultConfigDir  = "~/.config/pulse"
	DefaultConfigFile = "config.yaml"
	SessionFileName   = "session"

	// DateFormat is the history key format (YYYY-MM-DD, device-local calendar date)
	DateFormat = "2006-01-02"

	// TimeFormat is the clock format used for triggers and reminder times (HH:MM)
	TimeFormat = "15:04"

	// Storage backends
	BackendJSON     = "json"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"

	// JSON store file naming
	PayloadFilePrefix = "pulse_db_"
	AccountsFileName  = "pulse_accounts.json"
	SQLiteFileName    = "pulse.db"

	// Scheduler
	SchedulerInterval = 60 * time.Second
	MorningTrigger    = "09:00"
	EveningTrigger    = "21:00"
	AfternoonTrigger  = "14:00"

	// Statistics
	WeeklyWindow         = 7
	MonthlyWindow        = 30
	FocusMinutesPerGoal  = 45
	WatcherDebounce      = 200 * time.Millisecond
	SSEClientBufferSize  = 64
	DefaultHTTPPort      = 8787
	ReportFilePrefix     = "pulse-insights-"
	BackupFilePrefix     = "pulse-backup-"
	NotificationDuration = 5000

	// Tray notifier
	NotifyMaxRetries     = 3
	NotifyRetryDelay     = 100 * time.Millisecond
	NotifierLockfileName = "pulse-notifier.lock"
	TrayAppIdentifier    = "com.julianstephens.pulse"
	TrayExecutablePrefix = "pulse-tray"
)

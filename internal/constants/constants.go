package constants

const (
	AppName           = "tally"
	DefaultConfigPath = "~/.config/tally/tally.db"
	Version           = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// DefaultStatsWindowDays is the trailing window used for success-rate stats
	// when the caller does not specify one.
	DefaultStatsWindowDays = 30

	// MaxHistoryDays bounds longest-streak scans for habits with very long
	// histories. Ten years of daily entries is well past anything the UI shows.
	MaxHistoryDays = 3650
)

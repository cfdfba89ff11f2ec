package constants

const (
	// Timer Settings
	SettingWorkMin           = "work_min"
	SettingShortBreakMin     = "short_break_min"
	SettingLongBreakMin      = "long_break_min"
	SettingLongBreakInterval = "long_break_interval"
	SettingLongBreaksEnabled = "long_breaks_enabled"
	SettingPauseAllowed      = "pause_allowed"
	SettingAutoStartNext     = "auto_start_next"
	SettingAutoLogWork       = "auto_log_work"
	SettingLogBreaks         = "log_breaks"
	SettingLogOfflineExpiry  = "log_offline_expiry"
	SettingTickIntervalSec   = "tick_interval_sec"

	// Notification Settings
	SettingNotificationsEnabled = "notifications_enabled"
	SettingReminderIntervalMin  = "reminder_interval_min"
	SettingTimezone             = "timezone"

	// Default Settings Values
	DefaultWorkMin              = 25
	DefaultShortBreakMin        = 5
	DefaultLongBreakMin         = 15
	DefaultLongBreakInterval    = 4
	DefaultLongBreaksEnabled    = true
	DefaultPauseAllowed         = true
	DefaultAutoStartNext        = false
	DefaultAutoLogWork          = true
	DefaultLogBreaks            = false
	DefaultLogOfflineExpiry     = false
	DefaultTickIntervalSec      = 0 // ticks disabled
	DefaultNotificationsEnabled = true
	DefaultReminderIntervalMin  = 60
	DefaultTimezone             = "Local" // Use system local timezone by default
)

package models

// Settings represents application-wide settings. The timer fields are
// read-only parameters to the pomodoro engine, not engine state.
type Settings struct {
	WorkMin              int    `json:"work_min"`               // work phase duration in minutes
	ShortBreakMin        int    `json:"short_break_min"`        // short break duration in minutes
	LongBreakMin         int    `json:"long_break_min"`         // long break duration in minutes
	LongBreakInterval    int    `json:"long_break_interval"`    // completed sessions between long breaks
	LongBreaksEnabled    bool   `json:"long_breaks_enabled"`    // whether long breaks are granted at all
	PauseAllowed         bool   `json:"pause_allowed"`          // whether pausing a running phase is allowed
	AutoStartNext        bool   `json:"auto_start_next"`        // start the next work period when a break ends
	AutoLogWork          bool   `json:"auto_log_work"`          // log completed work sessions as entries
	LogBreaks            bool   `json:"log_breaks"`             // log completed breaks as entries
	LogOfflineExpiry     bool   `json:"log_offline_expiry"`     // auto-log work that expired while the host was down
	TickIntervalSec      int    `json:"tick_interval_sec"`      // advisory tick cadence during work, 0 disables
	NotificationsEnabled bool   `json:"notifications_enabled"`  // whether notifications are enabled
	ReminderIntervalMin  int    `json:"reminder_interval_min"`  // minutes between idle reminders during active hours
	Timezone             string `json:"timezone"`               // IANA timezone name, or "Local" for system timezone
}

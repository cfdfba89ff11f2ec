package constants

import "time"

const (
	AppName           = "tomate"
	DefaultConfigPath = "~/.config/tomate/tomate.db"
	Version           = "v0.3.0"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "tomate-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "tomate-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.fmeurer.tomate"

	// Entry sources
	EntrySourcePomodoro = "pomodoro"
	EntrySourceManual   = "manual"

	// Entry kinds
	EntryKindActivity = "activity"
	EntryKindBreak    = "break"

	// Abandoned work shorter than this is discarded without asking.
	AbandonSalvageThresholdMin = 2

	// DedupeWindow is how many recent entries the journal inspects
	// when suppressing duplicate auto-logged activities.
	DedupeWindow = 10
)

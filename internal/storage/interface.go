package storage

import (
	"github.com/fmeurer/tomate/internal/models"
	"github.com/fmeurer/tomate/internal/pomodoro"
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Schedule
	GetSchedule() (models.ScheduleConfig, error)
	SaveSchedule(models.ScheduleConfig) error

	// Entries
	AddEntry(models.Entry) error
	GetEntry(id string) (models.Entry, error)
	// GetEntries returns entries newest first. limit <= 0 returns all.
	GetEntries(limit int) ([]models.Entry, error)
	// GetEntriesForDay returns entries whose start falls on the given
	// day (constants.DateFormat), oldest first.
	GetEntriesForDay(day string) ([]models.Entry, error)
	DeleteEntry(id string) error

	// Engine snapshot. GetSnapshot's second return reports whether a
	// snapshot is stored at all.
	GetSnapshot() (pomodoro.Snapshot, bool, error)
	SaveSnapshot(pomodoro.Snapshot) error
	ClearSnapshot() error

	// Reminders
	AddReminder(models.Reminder) error
	GetReminder(id string) (models.Reminder, error)
	GetAllReminders() ([]models.Reminder, error)
	UpdateReminder(models.Reminder) error
	DeleteReminder(id string) error

	// Utils
	GetConfigPath() string
}

package storage

import (
	"database/sql"

	"github.com/fmeurer/tomate/internal/models"
	"github.com/fmeurer/tomate/internal/pomodoro"
	"github.com/fmeurer/tomate/internal/storage/sqlite"
)

// SQLiteStore adapts sqlite.Store to the Provider interface.
type SQLiteStore struct {
	store *sqlite.Store
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{store: sqlite.NewStore(path)}
}

// Lifecycle
func (s *SQLiteStore) Init() error  { return s.store.Init() }
func (s *SQLiteStore) Load() error  { return s.store.Load() }
func (s *SQLiteStore) Close() error { return s.store.Close() }

// Settings
func (s *SQLiteStore) GetSettings() (models.Settings, error)     { return s.store.GetSettings() }
func (s *SQLiteStore) SaveSettings(settings models.Settings) error {
	return s.store.SaveSettings(settings)
}

// Schedule
func (s *SQLiteStore) GetSchedule() (models.ScheduleConfig, error) { return s.store.GetSchedule() }
func (s *SQLiteStore) SaveSchedule(cfg models.ScheduleConfig) error {
	return s.store.SaveSchedule(cfg)
}

// Entries
func (s *SQLiteStore) AddEntry(entry models.Entry) error          { return s.store.AddEntry(entry) }
func (s *SQLiteStore) GetEntry(id string) (models.Entry, error)   { return s.store.GetEntry(id) }
func (s *SQLiteStore) GetEntries(limit int) ([]models.Entry, error) {
	return s.store.GetEntries(limit)
}
func (s *SQLiteStore) GetEntriesForDay(day string) ([]models.Entry, error) {
	return s.store.GetEntriesForDay(day)
}
func (s *SQLiteStore) DeleteEntry(id string) error { return s.store.DeleteEntry(id) }

// Snapshot
func (s *SQLiteStore) GetSnapshot() (pomodoro.Snapshot, bool, error) { return s.store.GetSnapshot() }
func (s *SQLiteStore) SaveSnapshot(snap pomodoro.Snapshot) error {
	return s.store.SaveSnapshot(snap)
}
func (s *SQLiteStore) ClearSnapshot() error { return s.store.ClearSnapshot() }

// Reminders
func (s *SQLiteStore) AddReminder(r models.Reminder) error        { return s.store.AddReminder(r) }
func (s *SQLiteStore) GetReminder(id string) (models.Reminder, error) {
	return s.store.GetReminder(id)
}
func (s *SQLiteStore) GetAllReminders() ([]models.Reminder, error) {
	return s.store.GetAllReminders()
}
func (s *SQLiteStore) UpdateReminder(r models.Reminder) error { return s.store.UpdateReminder(r) }
func (s *SQLiteStore) DeleteReminder(id string) error         { return s.store.DeleteReminder(id) }

// Utils
func (s *SQLiteStore) GetConfigPath() string { return s.store.GetConfigPath() }

// GetDB exposes the underlying connection for diagnostics.
func (s *SQLiteStore) GetDB() *sql.DB { return s.store.GetDB() }

package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fmeurer/tomate/internal/constants"
	"github.com/fmeurer/tomate/internal/models"
	"github.com/fmeurer/tomate/internal/pomodoro"
)

type document struct {
	Version   int                        `json:"version"`
	Settings  models.Settings            `json:"settings"`
	Schedule  models.ScheduleConfig      `json:"schedule"`
	Entries   map[string]models.Entry    `json:"entries"`
	Reminders map[string]models.Reminder `json:"reminders"`
	Snapshot  *pomodoro.Snapshot         `json:"snapshot,omitempty"`
}

// JSONStore keeps everything in a single JSON document. Useful for
// debugging and as a plain-text alternative to the SQLite store.
type JSONStore struct {
	path string
	doc  *document
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{path: configPath}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.doc = &document{
		Version:   1,
		Settings:  models.DefaultSettings(),
		Schedule:  models.DefaultScheduleConfig(),
		Entries:   make(map[string]models.Entry),
		Reminders: make(map[string]models.Reminder),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'tomate init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.doc = &document{}
	if err := json.Unmarshal(data, s.doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	if s.doc.Entries == nil {
		s.doc.Entries = make(map[string]models.Entry)
	}
	if s.doc.Reminders == nil {
		s.doc.Reminders = make(map[string]models.Reminder)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	if s.doc == nil {
		return models.Settings{}, fmt.Errorf("storage not loaded")
	}
	return s.doc.Settings, nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.doc.Settings = settings
	return s.save()
}

func (s *JSONStore) GetSchedule() (models.ScheduleConfig, error) {
	if s.doc == nil {
		return models.ScheduleConfig{}, fmt.Errorf("storage not loaded")
	}
	return s.doc.Schedule, nil
}

func (s *JSONStore) SaveSchedule(cfg models.ScheduleConfig) error {
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.doc.Schedule = cfg
	return s.save()
}

func (s *JSONStore) AddEntry(entry models.Entry) error {
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.doc.Entries[entry.ID] = entry
	return s.save()
}

func (s *JSONStore) GetEntry(id string) (models.Entry, error) {
	if s.doc == nil {
		return models.Entry{}, fmt.Errorf("storage not loaded")
	}
	entry, ok := s.doc.Entries[id]
	if !ok {
		return models.Entry{}, fmt.Errorf("entry not found: %s", id)
	}
	return entry, nil
}

func (s *JSONStore) GetEntries(limit int) ([]models.Entry, error) {
	if s.doc == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	entries := make([]models.Entry, 0, len(s.doc.Entries))
	for _, e := range s.doc.Entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Start.After(entries[j].Start)
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (s *JSONStore) GetEntriesForDay(day string) ([]models.Entry, error) {
	if s.doc == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	var entries []models.Entry
	for _, e := range s.doc.Entries {
		if e.Start.Format(constants.DateFormat) == day {
			entries = append(entries, e)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Start.Before(entries[j].Start)
	})
	return entries, nil
}

func (s *JSONStore) DeleteEntry(id string) error {
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}
	if _, ok := s.doc.Entries[id]; !ok {
		return fmt.Errorf("entry not found: %s", id)
	}
	delete(s.doc.Entries, id)
	return s.save()
}

func (s *JSONStore) GetSnapshot() (pomodoro.Snapshot, bool, error) {
	if s.doc == nil {
		return pomodoro.Snapshot{}, false, fmt.Errorf("storage not loaded")
	}
	if s.doc.Snapshot == nil {
		return pomodoro.Snapshot{}, false, nil
	}
	return *s.doc.Snapshot, true, nil
}

func (s *JSONStore) SaveSnapshot(snap pomodoro.Snapshot) error {
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.doc.Snapshot = &snap
	return s.save()
}

func (s *JSONStore) ClearSnapshot() error {
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.doc.Snapshot = nil
	return s.save()
}

func (s *JSONStore) AddReminder(r models.Reminder) error {
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.doc.Reminders[r.ID] = r
	return s.save()
}

func (s *JSONStore) GetReminder(id string) (models.Reminder, error) {
	if s.doc == nil {
		return models.Reminder{}, fmt.Errorf("storage not loaded")
	}
	r, ok := s.doc.Reminders[id]
	if !ok {
		return models.Reminder{}, fmt.Errorf("reminder not found: %s", id)
	}
	return r, nil
}

func (s *JSONStore) GetAllReminders() ([]models.Reminder, error) {
	if s.doc == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	reminders := make([]models.Reminder, 0, len(s.doc.Reminders))
	for _, r := range s.doc.Reminders {
		reminders = append(reminders, r)
	}
	sort.Slice(reminders, func(i, j int) bool {
		if reminders[i].Time != reminders[j].Time {
			return strings.Compare(reminders[i].Time, reminders[j].Time) < 0
		}
		return reminders[i].ID < reminders[j].ID
	})
	return reminders, nil
}

func (s *JSONStore) UpdateReminder(r models.Reminder) error {
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}
	if _, ok := s.doc.Reminders[r.ID]; !ok {
		return fmt.Errorf("reminder not found: %s", r.ID)
	}
	s.doc.Reminders[r.ID] = r
	return s.save()
}

func (s *JSONStore) DeleteReminder(id string) error {
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}
	if _, ok := s.doc.Reminders[id]; !ok {
		return fmt.Errorf("reminder not found: %s", id)
	}
	delete(s.doc.Reminders, id)
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/fmeurer/tomate/internal/models"
	"github.com/fmeurer/tomate/internal/pomodoro"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "tomate.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestInitSeedsDefaults(t *testing.T) {
	store := newTestStore(t)

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() error = %v", err)
	}
	if settings.WorkMin != 25 {
		t.Errorf("WorkMin = %d, want 25", settings.WorkMin)
	}
	if !settings.PauseAllowed {
		t.Error("PauseAllowed = false, want true")
	}

	schedule, err := store.GetSchedule()
	if err != nil {
		t.Fatalf("GetSchedule() error = %v", err)
	}
	if !schedule.WorkingDays["monday"] {
		t.Error("default schedule should include monday")
	}
	if schedule.WorkingDays["saturday"] {
		t.Error("default schedule should not include saturday")
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	store := newTestStore(t)

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() error = %v", err)
	}
	settings.WorkMin = 50
	settings.LongBreakInterval = 3
	settings.AutoStartNext = true
	settings.Timezone = "Europe/Berlin"

	if err := store.SaveSettings(settings); err != nil {
		t.Fatalf("SaveSettings() error = %v", err)
	}

	got, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() error = %v", err)
	}
	if got.WorkMin != 50 {
		t.Errorf("WorkMin = %d, want 50", got.WorkMin)
	}
	if got.LongBreakInterval != 3 {
		t.Errorf("LongBreakInterval = %d, want 3", got.LongBreakInterval)
	}
	if !got.AutoStartNext {
		t.Error("AutoStartNext = false, want true")
	}
	if got.Timezone != "Europe/Berlin" {
		t.Errorf("Timezone = %q, want Europe/Berlin", got.Timezone)
	}
}

func TestScheduleRoundTrip(t *testing.T) {
	store := newTestStore(t)

	cfg := models.DefaultScheduleConfig()
	cfg.UseComplexSchedule = true
	cfg.ComplexRanges = map[string][]models.TimeRange{
		"monday": {
			{Start: "09:00", End: "12:00"},
			{Start: "14:00", End: "18:00"},
		},
	}

	if err := store.SaveSchedule(cfg); err != nil {
		t.Fatalf("SaveSchedule() error = %v", err)
	}

	got, err := store.GetSchedule()
	if err != nil {
		t.Fatalf("GetSchedule() error = %v", err)
	}
	if !got.UseComplexSchedule {
		t.Error("UseComplexSchedule = false, want true")
	}
	ranges := got.ComplexRanges["monday"]
	if len(ranges) != 2 {
		t.Fatalf("len(ComplexRanges[monday]) = %d, want 2", len(ranges))
	}
	if ranges[1].Start != "14:00" || ranges[1].End != "18:00" {
		t.Errorf("second range = %+v, want 14:00-18:00", ranges[1])
	}
}

func TestEntryCRUD(t *testing.T) {
	store := newTestStore(t)

	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(25 * time.Minute)
	entry := models.Entry{
		ID:          "entry-1",
		Label:       "write report",
		Description: "quarterly numbers #reports",
		Start:       start,
		End:         &end,
		Tags:        []string{"reports"},
		Source:      "pomodoro",
		Kind:        "activity",
		DedupeKey:   "abc123",
		CreatedAt:   end,
	}

	if err := store.AddEntry(entry); err != nil {
		t.Fatalf("AddEntry() error = %v", err)
	}

	got, err := store.GetEntry("entry-1")
	if err != nil {
		t.Fatalf("GetEntry() error = %v", err)
	}
	if got.Label != "write report" {
		t.Errorf("Label = %q, want %q", got.Label, "write report")
	}
	if got.End == nil || !got.End.Equal(end) {
		t.Errorf("End = %v, want %v", got.End, end)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "reports" {
		t.Errorf("Tags = %v, want [reports]", got.Tags)
	}
	if got.DedupeKey != "abc123" {
		t.Errorf("DedupeKey = %q, want abc123", got.DedupeKey)
	}

	if err := store.DeleteEntry("entry-1"); err != nil {
		t.Fatalf("DeleteEntry() error = %v", err)
	}
	if _, err := store.GetEntry("entry-1"); err == nil {
		t.Error("GetEntry() after delete should return an error")
	}
	if err := store.DeleteEntry("entry-1"); err == nil {
		t.Error("DeleteEntry() on missing entry should return an error")
	}
}

func TestGetEntriesOrderingAndLimit(t *testing.T) {
	store := newTestStore(t)

	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		start := base.Add(time.Duration(i) * time.Hour)
		if err := store.AddEntry(models.Entry{
			ID:        string(rune('a' + i)),
			Label:     "session",
			Start:     start,
			Source:    "pomodoro",
			Kind:      "activity",
			CreatedAt: start,
		}); err != nil {
			t.Fatalf("AddEntry() error = %v", err)
		}
	}

	entries, err := store.GetEntries(2)
	if err != nil {
		t.Fatalf("GetEntries() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].ID != "c" || entries[1].ID != "b" {
		t.Errorf("entries order = %s,%s, want c,b", entries[0].ID, entries[1].ID)
	}

	all, err := store.GetEntries(0)
	if err != nil {
		t.Fatalf("GetEntries(0) error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("len(all) = %d, want 3", len(all))
	}
}

func TestGetEntriesForDay(t *testing.T) {
	store := newTestStore(t)

	day1 := time.Date(2026, 3, 10, 22, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 11, 8, 0, 0, 0, time.UTC)
	for id, start := range map[string]time.Time{"x": day1, "y": day2} {
		if err := store.AddEntry(models.Entry{
			ID: id, Label: "session", Start: start,
			Source: "pomodoro", Kind: "activity", CreatedAt: start,
		}); err != nil {
			t.Fatalf("AddEntry() error = %v", err)
		}
	}

	entries, err := store.GetEntriesForDay("2026-03-10")
	if err != nil {
		t.Fatalf("GetEntriesForDay() error = %v", err)
	}
	if len(entries) != 1 || entries[0].ID != "x" {
		t.Errorf("entries for 2026-03-10 = %v, want just x", entries)
	}
}

func TestSnapshotPersistence(t *testing.T) {
	store := newTestStore(t)

	if _, ok, err := store.GetSnapshot(); err != nil || ok {
		t.Fatalf("GetSnapshot() on fresh store = ok=%v err=%v, want no snapshot", ok, err)
	}

	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	snap := pomodoro.Snapshot{
		IsRunning:        true,
		CurrentPhase:     pomodoro.PhaseWork,
		SessionNumber:    2,
		StartTime:        start,
		OriginalDuration: 25 * time.Minute,
		RemainingTime:    25 * time.Minute,
		CycleCount:       1,
		TotalSessions:    1,
	}
	if err := store.SaveSnapshot(snap); err != nil {
		t.Fatalf("SaveSnapshot() error = %v", err)
	}

	got, ok, err := store.GetSnapshot()
	if err != nil || !ok {
		t.Fatalf("GetSnapshot() = ok=%v err=%v, want stored snapshot", ok, err)
	}
	if got.SessionNumber != 2 || got.CurrentPhase != pomodoro.PhaseWork {
		t.Errorf("snapshot = %+v, want session 2 work phase", got)
	}
	if !got.StartTime.Equal(start) {
		t.Errorf("StartTime = %v, want %v", got.StartTime, start)
	}

	// Overwrite replaces, never accumulates
	snap.SessionNumber = 3
	if err := store.SaveSnapshot(snap); err != nil {
		t.Fatalf("SaveSnapshot() overwrite error = %v", err)
	}
	got, _, _ = store.GetSnapshot()
	if got.SessionNumber != 3 {
		t.Errorf("SessionNumber after overwrite = %d, want 3", got.SessionNumber)
	}

	if err := store.ClearSnapshot(); err != nil {
		t.Fatalf("ClearSnapshot() error = %v", err)
	}
	if _, ok, _ := store.GetSnapshot(); ok {
		t.Error("snapshot still present after ClearSnapshot()")
	}
}

func TestReminderCRUD(t *testing.T) {
	store := newTestStore(t)

	r := models.Reminder{
		ID:        "rem-1",
		Message:   "stretch your legs",
		Time:      "10:30",
		Weekdays:  []time.Weekday{time.Monday, time.Wednesday},
		Active:    true,
		CreatedAt: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
	}
	if err := store.AddReminder(r); err != nil {
		t.Fatalf("AddReminder() error = %v", err)
	}

	got, err := store.GetReminder("rem-1")
	if err != nil {
		t.Fatalf("GetReminder() error = %v", err)
	}
	if got.Message != "stretch your legs" || got.Time != "10:30" {
		t.Errorf("reminder = %+v", got)
	}
	if len(got.Weekdays) != 2 || got.Weekdays[1] != time.Wednesday {
		t.Errorf("Weekdays = %v, want [Monday Wednesday]", got.Weekdays)
	}

	sent := time.Date(2026, 3, 11, 10, 30, 0, 0, time.UTC)
	got.LastSent = &sent
	got.Active = false
	if err := store.UpdateReminder(got); err != nil {
		t.Fatalf("UpdateReminder() error = %v", err)
	}

	updated, err := store.GetReminder("rem-1")
	if err != nil {
		t.Fatalf("GetReminder() error = %v", err)
	}
	if updated.Active {
		t.Error("Active = true after deactivation")
	}
	if updated.LastSent == nil || !updated.LastSent.Equal(sent) {
		t.Errorf("LastSent = %v, want %v", updated.LastSent, sent)
	}

	if err := store.DeleteReminder("rem-1"); err != nil {
		t.Fatalf("DeleteReminder() error = %v", err)
	}
	if err := store.UpdateReminder(updated); err == nil {
		t.Error("UpdateReminder() on deleted reminder should return an error")
	}
}

func TestLoadRequiresInit(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "missing.db"))
	if err := store.Load(); err == nil {
		t.Error("Load() without Init() should return an error")
	}
}

package journal

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/mitchellh/hashstructure/v2"

	"github.com/fmeurer/tomate/internal/constants"
	"github.com/fmeurer/tomate/internal/logger"
	"github.com/fmeurer/tomate/internal/models"
	"github.com/fmeurer/tomate/internal/pomodoro"
	"github.com/fmeurer/tomate/internal/storage"
	"github.com/fmeurer/tomate/internal/utils"
)

// Journal turns engine events into activity-log entries. Writes are
// idempotent within a recent window: an entry whose dedupe key matches
// one of the last few stored entries is silently dropped, so replaying
// an event after a crash or restore cannot double-log a session.
type Journal struct {
	store storage.Provider
	now   func() time.Time
}

func New(store storage.Provider) *Journal {
	return &Journal{
		store: store,
		now:   time.Now,
	}
}

// dedupeIdentity is what makes two auto-logged entries "the same
// session": label, kind, and the minute the session started.
type dedupeIdentity struct {
	Label       string
	Kind        string
	StartMinute int64
}

func dedupeKey(label, kind string, start time.Time) (string, error) {
	hash, err := hashstructure.Hash(dedupeIdentity{
		Label:       label,
		Kind:        kind,
		StartMinute: start.Truncate(time.Minute).Unix(),
	}, hashstructure.FormatV2, nil)
	if err != nil {
		return "", fmt.Errorf("failed to hash entry identity: %w", err)
	}
	return strconv.FormatUint(hash, 16), nil
}

// LogWorkComplete records a finished work period.
func (j *Journal) LogWorkComplete(ev pomodoro.Event) error {
	label := fmt.Sprintf("Pomodoro session %d", ev.SessionNumber)
	description := ""
	if ev.Activity != nil {
		if ev.Activity.Name != "" {
			label = ev.Activity.Name
		}
		description = ev.Activity.Description
	}
	return j.log(label, description, constants.EntryKindActivity, ev.At.Add(-ev.Duration), ev.At)
}

// LogBreakComplete records a finished break period.
func (j *Journal) LogBreakComplete(ev pomodoro.Event) error {
	label := "Short break"
	if ev.BreakKind == pomodoro.BreakLong {
		label = "Long break"
	}
	return j.log(label, "", constants.EntryKindBreak, ev.At.Add(-ev.Duration), ev.At)
}

// LogAbandoned records the salvaged portion of an abandoned work
// period. Unsaved abandonments leave no trace.
func (j *Journal) LogAbandoned(ev pomodoro.Event, label, description string) error {
	if !ev.Saved || ev.SpentMin <= 0 {
		return nil
	}
	if label == "" {
		label = fmt.Sprintf("Pomodoro session %d (abandoned)", ev.SessionNumber)
		if ev.Activity != nil && ev.Activity.Name != "" {
			label = ev.Activity.Name
		}
	}
	spent := time.Duration(ev.SpentMin) * time.Minute
	return j.log(label, description, constants.EntryKindActivity, ev.At.Add(-spent), ev.At)
}

// LogManual records a hand-entered entry. Manual entries skip
// deduplication; the user may genuinely log the same label twice.
func (j *Journal) LogManual(label, description string, start time.Time, end *time.Time) (models.Entry, error) {
	entry := models.Entry{
		ID:          uuid.NewString(),
		Label:       label,
		Description: description,
		Start:       start,
		End:         end,
		Tags:        utils.ExtractTags(label + " " + description),
		Source:      constants.EntrySourceManual,
		Kind:        constants.EntryKindActivity,
		CreatedAt:   j.now(),
	}
	if err := entry.Validate(); err != nil {
		return models.Entry{}, err
	}
	if err := j.store.AddEntry(entry); err != nil {
		return models.Entry{}, err
	}
	return entry, nil
}

func (j *Journal) log(label, description, kind string, start, end time.Time) error {
	key, err := dedupeKey(label, kind, start)
	if err != nil {
		return err
	}

	recent, err := j.store.GetEntries(constants.DedupeWindow)
	if err != nil {
		return fmt.Errorf("failed to check recent entries: %w", err)
	}
	for _, e := range recent {
		if e.DedupeKey == key {
			logger.Debug("skipping duplicate journal entry", "label", label, "key", key)
			return nil
		}
	}

	entry := models.Entry{
		ID:          uuid.NewString(),
		Label:       label,
		Description: description,
		Start:       start,
		End:         &end,
		Tags:        utils.ExtractTags(label + " " + description),
		Source:      constants.EntrySourcePomodoro,
		Kind:        kind,
		DedupeKey:   key,
		CreatedAt:   j.now(),
	}
	if err := entry.Validate(); err != nil {
		return err
	}
	return j.store.AddEntry(entry)
}

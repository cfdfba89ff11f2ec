package models

import (
	"fmt"
	"time"

	"github.com/fmeurer/tomate/internal/constants"
)

// Entry is one activity-log record. Entries are append-mostly; the
// engine never writes them directly, the host does after receiving
// engine events.
type Entry struct {
	ID          string     `json:"id"`
	Label       string     `json:"label"`
	Description string     `json:"description,omitempty"`
	Start       time.Time  `json:"start"`
	End         *time.Time `json:"end,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Source      string     `json:"source"` // "pomodoro" or "manual"
	Kind        string     `json:"kind"`   // "activity" or "break"
	DedupeKey   string     `json:"dedupe_key,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (e *Entry) Validate() error {
	if e.Label == "" {
		return fmt.Errorf("entry label cannot be empty")
	}
	if e.Start.IsZero() {
		return fmt.Errorf("entry start time cannot be zero")
	}
	if e.End != nil && e.End.Before(e.Start) {
		return fmt.Errorf("entry end time cannot precede start time")
	}
	switch e.Source {
	case constants.EntrySourcePomodoro, constants.EntrySourceManual:
	default:
		return fmt.Errorf("invalid entry source: %s", e.Source)
	}
	switch e.Kind {
	case constants.EntryKindActivity, constants.EntryKindBreak:
	default:
		return fmt.Errorf("invalid entry kind: %s", e.Kind)
	}
	return nil
}

// DurationMin returns the logged duration in whole minutes, 0 for
// open-ended entries.
func (e *Entry) DurationMin() int {
	if e.End == nil {
		return 0
	}
	return int(e.End.Sub(e.Start).Minutes())
}

package models

import (
	"fmt"
	"strings"
	"time"
)

// Reminder is a recurring activity-due notification. Reminders only
// fire inside active hours and never while a pomodoro phase is
// running.
type Reminder struct {
	ID        string         `json:"id"`
	Message   string         `json:"message"`
	Time      string         `json:"time"`               // HH:MM format
	Weekdays  []time.Weekday `json:"weekdays,omitempty"` // empty means every day
	Active    bool           `json:"active"`
	LastSent  *time.Time     `json:"last_sent,omitempty"` // RFC3339 timestamp
	CreatedAt time.Time      `json:"created_at"`
}

func (r *Reminder) Validate() error {
	if r.Message == "" {
		return fmt.Errorf("reminder message cannot be empty")
	}

	if r.Time == "" {
		return fmt.Errorf("reminder time cannot be empty")
	}

	if _, err := time.Parse("15:04", r.Time); err != nil {
		return fmt.Errorf("invalid time format (expected HH:MM): %w", err)
	}

	return nil
}

// IsDueAt reports whether the reminder should fire at the given
// instant: today is one of its weekdays, its time has been reached,
// and it has not already been sent today.
func (r *Reminder) IsDueAt(now time.Time) bool {
	if !r.Active {
		return false
	}

	if len(r.Weekdays) > 0 {
		match := false
		for _, wd := range r.Weekdays {
			if wd == now.Weekday() {
				match = true
				break
			}
		}
		if !match {
			return false
		}
	}

	due, err := time.Parse("15:04", r.Time)
	if err != nil {
		return false
	}
	nowMinutes := now.Hour()*60 + now.Minute()
	dueMinutes := due.Hour()*60 + due.Minute()
	if nowMinutes < dueMinutes {
		return false
	}

	// Already sent today?
	if r.LastSent != nil {
		sent := r.LastSent.In(now.Location())
		if sent.Year() == now.Year() && sent.YearDay() == now.YearDay() {
			return false
		}
	}

	return true
}

// FormatWeekdays returns a human-readable description of the
// reminder's schedule.
func (r *Reminder) FormatWeekdays() string {
	if len(r.Weekdays) == 0 {
		return "Daily"
	}
	days := make([]string, len(r.Weekdays))
	for i, wd := range r.Weekdays {
		days[i] = wd.String()[:3]
	}
	return strings.Join(days, ", ")
}

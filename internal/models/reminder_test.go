package models

import (
	"testing"
	"time"
)

func TestReminder_Validate(t *testing.T) {
	tests := []struct {
		name     string
		reminder Reminder
		wantErr  bool
	}{
		{
			name: "valid daily reminder",
			reminder: Reminder{
				ID:        "test-id",
				Message:   "Stretch",
				Time:      "10:00",
				Active:    true,
				CreatedAt: time.Now(),
			},
			wantErr: false,
		},
		{
			name: "valid weekday reminder",
			reminder: Reminder{
				ID:        "test-id",
				Message:   "Standup",
				Time:      "09:30",
				Weekdays:  []time.Weekday{time.Monday, time.Wednesday, time.Friday},
				Active:    true,
				CreatedAt: time.Now(),
			},
			wantErr: false,
		},
		{
			name: "empty message",
			reminder: Reminder{
				ID:     "test-id",
				Time:   "10:00",
				Active: true,
			},
			wantErr: true,
		},
		{
			name: "empty time",
			reminder: Reminder{
				ID:      "test-id",
				Message: "Stretch",
				Active:  true,
			},
			wantErr: true,
		},
		{
			name: "invalid time format",
			reminder: Reminder{
				ID:      "test-id",
				Message: "Stretch",
				Time:    "25:00",
				Active:  true,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.reminder.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestReminder_IsDueAt(t *testing.T) {
	// 2026-01-05 is a Monday.
	monday := func(hhmm string) time.Time {
		parsed, err := time.Parse("15:04", hhmm)
		if err != nil {
			t.Fatalf("bad test time %q: %v", hhmm, err)
		}
		return time.Date(2026, 1, 5, parsed.Hour(), parsed.Minute(), 0, 0, time.UTC)
	}
	sentEarlier := monday("09:05")

	tests := []struct {
		name     string
		reminder Reminder
		now      time.Time
		want     bool
	}{
		{
			name:     "due after its time",
			reminder: Reminder{Message: "x", Time: "09:00", Active: true},
			now:      monday("09:30"),
			want:     true,
		},
		{
			name:     "due at exactly its time",
			reminder: Reminder{Message: "x", Time: "09:00", Active: true},
			now:      monday("09:00"),
			want:     true,
		},
		{
			name:     "not due before its time",
			reminder: Reminder{Message: "x", Time: "09:00", Active: true},
			now:      monday("08:59"),
			want:     false,
		},
		{
			name:     "inactive never due",
			reminder: Reminder{Message: "x", Time: "09:00", Active: false},
			now:      monday("09:30"),
			want:     false,
		},
		{
			name: "weekday mismatch",
			reminder: Reminder{
				Message: "x", Time: "09:00", Active: true,
				Weekdays: []time.Weekday{time.Tuesday},
			},
			now:  monday("09:30"),
			want: false,
		},
		{
			name: "weekday match",
			reminder: Reminder{
				Message: "x", Time: "09:00", Active: true,
				Weekdays: []time.Weekday{time.Monday},
			},
			now:  monday("09:30"),
			want: true,
		},
		{
			name: "already sent today",
			reminder: Reminder{
				Message: "x", Time: "09:00", Active: true,
				LastSent: &sentEarlier,
			},
			now:  monday("11:00"),
			want: false,
		},
		{
			name:     "malformed time never due",
			reminder: Reminder{Message: "x", Time: "soon", Active: true},
			now:      monday("11:00"),
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.reminder.IsDueAt(tt.now); got != tt.want {
				t.Errorf("IsDueAt() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReminder_FormatWeekdays(t *testing.T) {
	daily := Reminder{Message: "x", Time: "09:00"}
	if got := daily.FormatWeekdays(); got != "Daily" {
		t.Errorf("FormatWeekdays() = %q, want %q", got, "Daily")
	}

	weekly := Reminder{
		Message:  "x",
		Time:     "09:00",
		Weekdays: []time.Weekday{time.Monday, time.Friday},
	}
	if got := weekly.FormatWeekdays(); got != "Mon, Fri" {
		t.Errorf("FormatWeekdays() = %q, want %q", got, "Mon, Fri")
	}
}

package models

import (
	"fmt"
	"strings"
	"time"
)

// TimeRange is a wall-clock window within a single day, minutes
// granularity, both ends inclusive. Start is not required to sort
// before End; a reversed range simply never matches.
type TimeRange struct {
	Start string `json:"start"` // HH:MM
	End   string `json:"end"`   // HH:MM
}

// ScheduleConfig describes the weekly active-hours schedule that gates
// reminders and break prompts.
type ScheduleConfig struct {
	// WorkingDays maps lowercase weekday names to whether the day is
	// active at all. A missing entry means inactive.
	WorkingDays map[string]bool `json:"working_days"`
	// SimpleRange is the single daily window used when
	// UseComplexSchedule is off.
	SimpleRange TimeRange `json:"simple_range"`
	// ComplexRanges maps lowercase weekday names to ordered windows.
	// An empty list means no active hours that day even when the day
	// is marked working.
	ComplexRanges map[string][]TimeRange `json:"complex_ranges"`
	// UseComplexSchedule switches between the two representations.
	UseComplexSchedule bool `json:"use_complex_schedule"`
}

// WeekdayKey returns the lowercase weekday name used as a map key in
// WorkingDays and ComplexRanges.
func WeekdayKey(d time.Weekday) string {
	return strings.ToLower(d.String())
}

// DefaultScheduleConfig returns a Monday-Friday 09:00-17:00 simple
// schedule.
func DefaultScheduleConfig() ScheduleConfig {
	return ScheduleConfig{
		WorkingDays: map[string]bool{
			"monday":    true,
			"tuesday":   true,
			"wednesday": true,
			"thursday":  true,
			"friday":    true,
			"saturday":  false,
			"sunday":    false,
		},
		SimpleRange:   TimeRange{Start: "09:00", End: "17:00"},
		ComplexRanges: map[string][]TimeRange{},
	}
}

// Validate checks the config for well-formed day names and time
// strings. The evaluator itself tolerates malformed configs (they
// evaluate as inactive); Validate exists so the CLI can reject bad
// input up front.
func (c *ScheduleConfig) Validate() error {
	for day := range c.WorkingDays {
		if !isWeekdayName(day) {
			return fmt.Errorf("unknown weekday %q", day)
		}
	}
	for day, ranges := range c.ComplexRanges {
		if !isWeekdayName(day) {
			return fmt.Errorf("unknown weekday %q", day)
		}
		for _, r := range ranges {
			if err := r.Validate(); err != nil {
				return fmt.Errorf("%s: %w", day, err)
			}
		}
	}
	if !c.UseComplexSchedule {
		if err := c.SimpleRange.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks that both endpoints parse as HH:MM.
func (r TimeRange) Validate() error {
	if _, err := time.Parse("15:04", r.Start); err != nil {
		return fmt.Errorf("invalid start time %q (expected HH:MM)", r.Start)
	}
	if _, err := time.Parse("15:04", r.End); err != nil {
		return fmt.Errorf("invalid end time %q (expected HH:MM)", r.End)
	}
	return nil
}

func isWeekdayName(name string) bool {
	switch name {
	case "sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday":
		return true
	}
	return false
}

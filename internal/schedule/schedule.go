// Package schedule evaluates weekly active-hours configurations.
// Everything here is a pure function over config + instant; malformed
// configs evaluate as "inactive" rather than erroring because the
// host calls these on a once-a-minute hot path.
package schedule

import (
	"time"

	"github.com/fmeurer/tomate/internal/models"
	"github.com/fmeurer/tomate/internal/utils"
)

// IsActive reports whether the instant falls inside active hours.
// The day-level gate always wins: a day not marked working is
// inactive no matter what ranges exist for it.
func IsActive(cfg models.ScheduleConfig, instant time.Time) bool {
	day := models.WeekdayKey(instant.Weekday())
	if !cfg.WorkingDays[day] {
		return false
	}

	minute := utils.MinuteOfDay(instant)

	if cfg.UseComplexSchedule {
		ranges := cfg.ComplexRanges[day]
		for _, r := range ranges {
			if rangeContains(r, minute) {
				return true
			}
		}
		return false
	}

	return rangeContains(cfg.SimpleRange, minute)
}

// NextActiveInstant returns the start of the next active window
// strictly after from, scanning at most one week ahead. ok is false
// when the schedule defines no active time at all.
func NextActiveInstant(cfg models.ScheduleConfig, from time.Time) (time.Time, bool) {
	// Remainder of from's own day first.
	day := models.WeekdayKey(from.Weekday())
	if cfg.WorkingDays[day] {
		if start, ok := earliestStartAfter(cfg, day, utils.MinuteOfDay(from)); ok {
			return utils.AtMinuteOfDay(from, start), true
		}
	}

	// Then day by day, wrapping around to the same weekday one week out.
	for offset := 1; offset <= 7; offset++ {
		candidate := from.AddDate(0, 0, offset)
		day := models.WeekdayKey(candidate.Weekday())
		if !cfg.WorkingDays[day] {
			continue
		}
		if start, ok := firstStart(cfg, day); ok {
			return utils.AtMinuteOfDay(candidate, start), true
		}
	}

	return time.Time{}, false
}

// rangeContains reports whether the minute-of-day falls within the
// range, inclusive of both ends. Unparsable endpoints and reversed
// ranges (end before start) never match.
func rangeContains(r models.TimeRange, minute int) bool {
	start, err := utils.ParseTimeToMinutes(r.Start)
	if err != nil {
		return false
	}
	end, err := utils.ParseTimeToMinutes(r.End)
	if err != nil {
		return false
	}
	if start > end {
		return false
	}
	return minute >= start && minute <= end
}

// earliestStartAfter finds the earliest valid range start strictly
// after the given minute-of-day on the named working day.
func earliestStartAfter(cfg models.ScheduleConfig, day string, afterMinute int) (int, bool) {
	best := -1
	for _, start := range validStarts(cfg, day) {
		if start > afterMinute && (best == -1 || start < best) {
			best = start
		}
	}
	if best == -1 {
		return 0, false
	}
	return best, true
}

// firstStart returns the day's first valid range start.
func firstStart(cfg models.ScheduleConfig, day string) (int, bool) {
	best := -1
	for _, start := range validStarts(cfg, day) {
		if best == -1 || start < best {
			best = start
		}
	}
	if best == -1 {
		return 0, false
	}
	return best, true
}

// validStarts returns the start minutes of every well-formed,
// non-reversed range configured for the day.
func validStarts(cfg models.ScheduleConfig, day string) []int {
	ranges := []models.TimeRange{cfg.SimpleRange}
	if cfg.UseComplexSchedule {
		ranges = cfg.ComplexRanges[day]
	}

	var starts []int
	for _, r := range ranges {
		start, err := utils.ParseTimeToMinutes(r.Start)
		if err != nil {
			continue
		}
		end, err := utils.ParseTimeToMinutes(r.End)
		if err != nil || start > end {
			continue
		}
		starts = append(starts, start)
	}
	return starts
}

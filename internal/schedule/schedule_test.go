package schedule

import (
	"testing"
	"time"

	"github.com/fmeurer/tomate/internal/models"
)

// 2026-01-05 is a Monday.
func mondayAt(t *testing.T, hhmm string) time.Time {
	t.Helper()
	parsed, err := time.Parse("15:04", hhmm)
	if err != nil {
		t.Fatalf("bad test time %q: %v", hhmm, err)
	}
	return time.Date(2026, 1, 5, parsed.Hour(), parsed.Minute(), 0, 0, time.UTC)
}

func simpleConfig(start, end string) models.ScheduleConfig {
	cfg := models.DefaultScheduleConfig()
	cfg.SimpleRange = models.TimeRange{Start: start, End: end}
	return cfg
}

func TestIsActive_SimpleRangeInclusive(t *testing.T) {
	cfg := simpleConfig("09:00", "17:00")

	tests := []struct {
		time string
		want bool
	}{
		{"09:00", true},
		{"17:00", true},
		{"08:59", false},
		{"17:01", false},
		{"12:30", true},
	}

	for _, tt := range tests {
		t.Run(tt.time, func(t *testing.T) {
			if got := IsActive(cfg, mondayAt(t, tt.time)); got != tt.want {
				t.Errorf("IsActive(%s) = %v, want %v", tt.time, got, tt.want)
			}
		})
	}
}

func TestIsActive_DayGateDominates(t *testing.T) {
	cfg := simpleConfig("00:00", "23:59")
	cfg.WorkingDays["monday"] = false

	for _, hhmm := range []string{"00:00", "09:00", "12:00", "23:59"} {
		if IsActive(cfg, mondayAt(t, hhmm)) {
			t.Errorf("IsActive(%s) = true on a non-working Monday", hhmm)
		}
	}

	// Complex ranges cannot override the day gate either.
	cfg.UseComplexSchedule = true
	cfg.ComplexRanges = map[string][]models.TimeRange{
		"monday": {{Start: "00:00", End: "23:59"}},
	}
	if IsActive(cfg, mondayAt(t, "12:00")) {
		t.Error("IsActive = true despite day gate with complex ranges")
	}
}

func TestIsActive_MissingDayEntryIsInactive(t *testing.T) {
	cfg := simpleConfig("09:00", "17:00")
	delete(cfg.WorkingDays, "monday")

	if IsActive(cfg, mondayAt(t, "12:00")) {
		t.Error("IsActive = true for a day missing from WorkingDays")
	}
}

func TestIsActive_SplitRanges(t *testing.T) {
	cfg := models.DefaultScheduleConfig()
	cfg.UseComplexSchedule = true
	cfg.ComplexRanges = map[string][]models.TimeRange{
		"monday": {
			{Start: "09:00", End: "12:00"},
			{Start: "14:00", End: "18:00"},
		},
	}

	tests := []struct {
		time string
		want bool
	}{
		{"10:00", true},
		{"12:00", true}, // inclusive end of first range
		{"13:00", false},
		{"13:59", false},
		{"14:00", true}, // inclusive start of second range
		{"15:00", true},
		{"18:01", false},
	}

	for _, tt := range tests {
		t.Run(tt.time, func(t *testing.T) {
			if got := IsActive(cfg, mondayAt(t, tt.time)); got != tt.want {
				t.Errorf("IsActive(%s) = %v, want %v", tt.time, got, tt.want)
			}
		})
	}
}

func TestIsActive_EmptyComplexDayIsInactive(t *testing.T) {
	cfg := models.DefaultScheduleConfig()
	cfg.UseComplexSchedule = true
	cfg.ComplexRanges = map[string][]models.TimeRange{
		"monday": {},
	}

	if IsActive(cfg, mondayAt(t, "12:00")) {
		t.Error("IsActive = true for a working day with no complex ranges")
	}
}

func TestIsActive_MalformedRangeNeverMatches(t *testing.T) {
	cfg := models.DefaultScheduleConfig()
	cfg.UseComplexSchedule = true
	cfg.ComplexRanges = map[string][]models.TimeRange{
		"monday": {
			{Start: "nine", End: "17:00"},
			{Start: "09:00", End: "five pm"},
		},
	}

	// Must not panic and must not match at any probe point.
	for _, hhmm := range []string{"00:00", "09:00", "12:00", "17:00", "23:59"} {
		if IsActive(cfg, mondayAt(t, hhmm)) {
			t.Errorf("IsActive(%s) = true with malformed ranges", hhmm)
		}
	}
}

func TestIsActive_ReversedRangeNeverMatches(t *testing.T) {
	cfg := simpleConfig("17:00", "09:00")

	for _, hhmm := range []string{"08:00", "12:00", "18:00"} {
		if IsActive(cfg, mondayAt(t, hhmm)) {
			t.Errorf("IsActive(%s) = true for a reversed range (no wrap-around)", hhmm)
		}
	}
}

func TestNextActiveInstant_SameDay(t *testing.T) {
	cfg := simpleConfig("09:00", "17:00")

	got, ok := NextActiveInstant(cfg, mondayAt(t, "07:30"))
	if !ok {
		t.Fatal("NextActiveInstant returned ok=false")
	}
	want := mondayAt(t, "09:00")
	if !got.Equal(want) {
		t.Errorf("NextActiveInstant = %v, want %v", got, want)
	}
}

func TestNextActiveInstant_StrictlyAfter(t *testing.T) {
	cfg := simpleConfig("09:00", "17:00")

	// At exactly 09:00 the day's window has already begun; the next
	// window start is Tuesday's.
	got, ok := NextActiveInstant(cfg, mondayAt(t, "09:00"))
	if !ok {
		t.Fatal("NextActiveInstant returned ok=false")
	}
	want := mondayAt(t, "09:00").AddDate(0, 0, 1)
	if !got.Equal(want) {
		t.Errorf("NextActiveInstant = %v, want %v (next day)", got, want)
	}
}

func TestNextActiveInstant_SecondRangeSameDay(t *testing.T) {
	cfg := models.DefaultScheduleConfig()
	cfg.UseComplexSchedule = true
	cfg.ComplexRanges = map[string][]models.TimeRange{
		"monday": {
			{Start: "09:00", End: "12:00"},
			{Start: "14:00", End: "18:00"},
		},
	}

	got, ok := NextActiveInstant(cfg, mondayAt(t, "12:30"))
	if !ok {
		t.Fatal("NextActiveInstant returned ok=false")
	}
	want := mondayAt(t, "14:00")
	if !got.Equal(want) {
		t.Errorf("NextActiveInstant = %v, want %v", got, want)
	}
}

func TestNextActiveInstant_SkipsWeekend(t *testing.T) {
	cfg := simpleConfig("09:00", "17:00")

	// Friday 2026-01-09 at 18:00; next window is Monday 09:00.
	friday := time.Date(2026, 1, 9, 18, 0, 0, 0, time.UTC)
	got, ok := NextActiveInstant(cfg, friday)
	if !ok {
		t.Fatal("NextActiveInstant returned ok=false")
	}
	want := time.Date(2026, 1, 12, 9, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("NextActiveInstant = %v, want %v", got, want)
	}
}

func TestNextActiveInstant_NoActiveTime(t *testing.T) {
	cfg := simpleConfig("09:00", "17:00")
	for day := range cfg.WorkingDays {
		cfg.WorkingDays[day] = false
	}

	if _, ok := NextActiveInstant(cfg, mondayAt(t, "12:00")); ok {
		t.Error("NextActiveInstant ok=true for a schedule with no working days")
	}
}

func TestNextActiveInstant_MalformedSimpleRange(t *testing.T) {
	cfg := simpleConfig("soon", "later")

	if _, ok := NextActiveInstant(cfg, mondayAt(t, "12:00")); ok {
		t.Error("NextActiveInstant ok=true for a schedule with unparsable ranges")
	}
}

func TestNextActiveInstant_WrapsFullWeek(t *testing.T) {
	cfg := simpleConfig("09:00", "17:00")
	for day := range cfg.WorkingDays {
		cfg.WorkingDays[day] = day == "monday"
	}

	// Monday after the window: the next start is Monday one week out.
	got, ok := NextActiveInstant(cfg, mondayAt(t, "18:00"))
	if !ok {
		t.Fatal("NextActiveInstant returned ok=false")
	}
	want := mondayAt(t, "09:00").AddDate(0, 0, 7)
	if !got.Equal(want) {
		t.Errorf("NextActiveInstant = %v, want %v", got, want)
	}
}

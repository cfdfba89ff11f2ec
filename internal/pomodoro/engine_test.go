package pomodoro

import (
	"testing"
	"time"

	"github.com/fmeurer/tomate/internal/models"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func testSettings() models.Settings {
	s := models.DefaultSettings()
	s.WorkMin = 25
	s.ShortBreakMin = 5
	s.LongBreakMin = 15
	s.LongBreakInterval = 4
	s.LongBreaksEnabled = true
	s.PauseAllowed = true
	s.AutoLogWork = true
	s.AutoStartNext = false
	return s
}

// newTestEngine returns an engine with a fake clock and real timers
// disabled; tests drive phase expiry by hand through expire.
func newTestEngine(t *testing.T, s models.Settings) (*Engine, *fakeClock) {
	t.Helper()
	clk := &fakeClock{now: time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)}
	e := New(s)
	e.now = clk.Now
	e.timersDisabled = true
	return e, clk
}

// expire simulates the pending expiry timer firing.
func expire(e *Engine) {
	e.mu.Lock()
	gen := e.expiryGen
	e.mu.Unlock()
	e.onExpiry(gen)
}

func drain(ch <-chan Event) []Event {
	var evs []Event
	for {
		select {
		case ev := <-ch:
			evs = append(evs, ev)
		default:
			return evs
		}
	}
}

func findEvent(t *testing.T, evs []Event, typ EventType) Event {
	t.Helper()
	for _, ev := range evs {
		if ev.Type == typ {
			return ev
		}
	}
	t.Fatalf("no %s event in %v", typ, evs)
	return Event{}
}

func hasEvent(evs []Event, typ EventType) bool {
	for _, ev := range evs {
		if ev.Type == typ {
			return true
		}
	}
	return false
}

func TestStartArmsWithoutCountdown(t *testing.T) {
	e, _ := newTestEngine(t, testSettings())
	ch := e.Subscribe(32)

	e.Start()

	if got := e.State(); got != StateArmed {
		t.Errorf("State() = %v, want %v", got, StateArmed)
	}
	snap := e.Snapshot()
	if snap.IsRunning {
		t.Error("snapshot running before StartWorkPeriod")
	}
	evs := drain(ch)
	armed := findEvent(t, evs, EventArmed)
	if armed.SessionNumber != 1 {
		t.Errorf("armed session = %d, want 1", armed.SessionNumber)
	}
}

func TestStartWorkPeriod(t *testing.T) {
	e, clk := newTestEngine(t, testSettings())
	ch := e.Subscribe(32)

	e.Start()
	e.StartWorkPeriod(&Activity{Name: "write report"})

	if got := e.State(); got != StateWorkRunning {
		t.Fatalf("State() = %v, want %v", got, StateWorkRunning)
	}
	snap := e.Snapshot()
	if !snap.IsRunning || snap.IsPaused {
		t.Errorf("snapshot flags = running %v paused %v, want running true paused false", snap.IsRunning, snap.IsPaused)
	}
	if snap.CurrentPhase != PhaseWork {
		t.Errorf("phase = %v, want %v", snap.CurrentPhase, PhaseWork)
	}
	if snap.OriginalDuration != 25*time.Minute || snap.RemainingTime != 25*time.Minute {
		t.Errorf("durations = %v/%v, want 25m/25m", snap.OriginalDuration, snap.RemainingTime)
	}
	if !snap.StartTime.Equal(clk.now) {
		t.Errorf("start time = %v, want %v", snap.StartTime, clk.now)
	}
	if snap.WorkActivity == nil || snap.WorkActivity.Name != "write report" {
		t.Errorf("activity = %+v, want write report", snap.WorkActivity)
	}

	started := findEvent(t, drain(ch), EventWorkStarted)
	if started.SessionNumber != 1 || started.Duration != 25*time.Minute {
		t.Errorf("work started event = %+v", started)
	}
}

func TestLongBreakCadence(t *testing.T) {
	e, clk := newTestEngine(t, testSettings())
	ch := e.Subscribe(256)
	e.Start()

	// Complete nine sessions and record each break kind. With
	// interval 4, breaks after sessions 4 and 8 are long.
	var kinds []BreakKind
	for session := 1; session <= 9; session++ {
		e.StartWorkPeriod(nil)
		clk.advance(25 * time.Minute)
		expire(e) // work ends, break starts

		evs := drain(ch)
		kinds = append(kinds, findEvent(t, evs, EventBreakStarted).BreakKind)

		clk.advance(15 * time.Minute)
		expire(e) // break ends
		drain(ch)
	}

	want := []BreakKind{
		BreakShort, BreakShort, BreakShort, BreakLong,
		BreakShort, BreakShort, BreakShort, BreakLong,
		BreakShort,
	}
	for i, kind := range kinds {
		if kind != want[i] {
			t.Errorf("break after session %d = %v, want %v", i+1, kind, want[i])
		}
	}
}

func TestLongBreaksDisabled(t *testing.T) {
	s := testSettings()
	s.LongBreaksEnabled = false
	s.LongBreakInterval = 1
	e, clk := newTestEngine(t, s)
	ch := e.Subscribe(64)
	e.Start()

	for session := 1; session <= 3; session++ {
		e.StartWorkPeriod(nil)
		clk.advance(25 * time.Minute)
		expire(e)

		kind := findEvent(t, drain(ch), EventBreakStarted).BreakKind
		if kind != BreakShort {
			t.Errorf("break after session %d = %v, want short", session, kind)
		}

		clk.advance(5 * time.Minute)
		expire(e)
		drain(ch)
	}
}

func TestEndToEndCycle(t *testing.T) {
	// work=25, break=5, long=15, interval=2, autoStart=true.
	s := testSettings()
	s.LongBreakInterval = 2
	s.AutoStartNext = true
	e, clk := newTestEngine(t, s)
	ch := e.Subscribe(256)
	e.Start()
	e.StartWorkPeriod(nil)

	completeSession := func() []Event {
		clk.advance(25 * time.Minute)
		expire(e) // work ends, break starts
		evs := drain(ch)
		clk.advance(15 * time.Minute)
		expire(e) // break ends, next work auto-starts
		return append(evs, drain(ch)...)
	}

	// Session 1: cycleCount=1 -> short break.
	evs := completeSession()
	if kind := findEvent(t, evs, EventBreakStarted).BreakKind; kind != BreakShort {
		t.Errorf("break after session 1 = %v, want short", kind)
	}
	if !hasEvent(evs, EventWorkStarted) {
		t.Error("autoStart did not begin session 2")
	}

	// Session 2: cycleCount=2, divisible by the interval -> long break.
	evs = completeSession()
	longBreak := findEvent(t, evs, EventBreakStarted)
	if longBreak.BreakKind != BreakLong {
		t.Errorf("break after session 2 = %v, want long", longBreak.BreakKind)
	}
	if longBreak.Duration != 15*time.Minute {
		t.Errorf("long break duration = %v, want 15m", longBreak.Duration)
	}

	// Session 3: cycleCount=3 -> short break.
	evs = completeSession()
	if kind := findEvent(t, evs, EventBreakStarted).BreakKind; kind != BreakShort {
		t.Errorf("break after session 3 = %v, want short", kind)
	}

	if got := e.Snapshot().TotalSessions; got != 3 {
		t.Errorf("total sessions = %d, want 3", got)
	}
}

func TestPauseResumeConservesTime(t *testing.T) {
	e, clk := newTestEngine(t, testSettings())
	e.Start()
	e.StartWorkPeriod(nil)

	clk.advance(10 * time.Minute)
	e.Pause()
	if got := e.State(); got != StateWorkPaused {
		t.Fatalf("State() = %v, want %v", got, StateWorkPaused)
	}

	// Time spent paused must not count against the phase.
	clk.advance(5 * time.Minute)
	e.Resume()

	if got := e.State(); got != StateWorkRunning {
		t.Fatalf("State() = %v, want %v", got, StateWorkRunning)
	}
	if got := e.Remaining(); got != 15*time.Minute {
		t.Errorf("Remaining() = %v, want 15m", got)
	}
	snap := e.Snapshot()
	if snap.RemainingTime != 15*time.Minute {
		t.Errorf("snapshot remaining = %v, want 15m", snap.RemainingTime)
	}
	if !snap.StartTime.Equal(clk.now) {
		t.Errorf("snapshot start = %v, want %v", snap.StartTime, clk.now)
	}
}

func TestRepeatedPauseAccounting(t *testing.T) {
	e, clk := newTestEngine(t, testSettings())
	e.Start()
	e.StartWorkPeriod(nil)

	clk.advance(10 * time.Minute)
	e.Pause()
	clk.advance(30 * time.Minute)
	e.Resume()
	clk.advance(5 * time.Minute)
	e.Pause()

	if got := e.Remaining(); got != 10*time.Minute {
		t.Errorf("Remaining() after second pause = %v, want 10m", got)
	}
}

func TestPauseDisallowedBySettings(t *testing.T) {
	s := testSettings()
	s.PauseAllowed = false
	e, clk := newTestEngine(t, s)
	e.Start()
	e.StartWorkPeriod(nil)
	clk.advance(time.Minute)

	e.Pause()

	if got := e.State(); got != StateWorkRunning {
		t.Errorf("State() = %v, want still %v", got, StateWorkRunning)
	}
	if e.Snapshot().IsPaused {
		t.Error("snapshot paused despite pause_allowed=false")
	}
}

func TestAbandonPreservesSessionNumber(t *testing.T) {
	e, clk := newTestEngine(t, testSettings())
	ch := e.Subscribe(256)
	e.Start()

	// Complete sessions 1 and 2.
	for range 2 {
		e.StartWorkPeriod(nil)
		clk.advance(25 * time.Minute)
		expire(e)
		clk.advance(5 * time.Minute)
		expire(e)
	}
	drain(ch)

	// Start session 3 and abandon it early.
	e.StartWorkPeriod(&Activity{Name: "deep work"})
	if got := e.Snapshot().SessionNumber; got != 3 {
		t.Fatalf("session number = %d, want 3", got)
	}
	clk.advance(10 * time.Minute)
	e.Abandon()

	// Enough work accrued with auto-log on: a confirm-save prompt.
	confirm := findEvent(t, drain(ch), EventConfirmSave)
	if confirm.SessionNumber != 3 || confirm.SpentMin != 10 {
		t.Errorf("confirm event = %+v, want session 3, 10 min", confirm)
	}
	e.FinalizeAbandonment(true, "deep work", "got interrupted")

	abandoned := findEvent(t, drain(ch), EventAbandoned)
	if abandoned.SessionNumber != 3 || !abandoned.Saved {
		t.Errorf("abandoned event = %+v, want session 3 saved", abandoned)
	}

	// The same session number is retried, not advanced.
	if got := e.CurrentSessionNumber(); got != 3 {
		t.Errorf("CurrentSessionNumber() = %d, want 3", got)
	}
	e.StartWorkPeriod(nil)
	if got := e.Snapshot().SessionNumber; got != 3 {
		t.Errorf("restarted session number = %d, want 3", got)
	}
}

func TestAbandonShortSessionFinalizesImmediately(t *testing.T) {
	e, clk := newTestEngine(t, testSettings())
	ch := e.Subscribe(64)
	e.Start()
	e.StartWorkPeriod(nil)
	drain(ch)

	clk.advance(90 * time.Second)
	e.Abandon()

	evs := drain(ch)
	if hasEvent(evs, EventConfirmSave) {
		t.Error("confirm-save prompt for a sub-threshold session")
	}
	abandoned := findEvent(t, evs, EventAbandoned)
	if abandoned.Saved {
		t.Error("short abandoned session marked saved")
	}
	if got := e.State(); got != StateArmed {
		t.Errorf("State() = %v, want %v", got, StateArmed)
	}
}

func TestAbandonWithoutAutoLogFinalizesImmediately(t *testing.T) {
	s := testSettings()
	s.AutoLogWork = false
	e, clk := newTestEngine(t, s)
	ch := e.Subscribe(64)
	e.Start()
	e.StartWorkPeriod(nil)
	drain(ch)

	clk.advance(20 * time.Minute)
	e.Abandon()

	evs := drain(ch)
	if hasEvent(evs, EventConfirmSave) {
		t.Error("confirm-save prompt with auto_log_work=false")
	}
	if !hasEvent(evs, EventAbandoned) {
		t.Error("no abandoned event")
	}
}

func TestAbandonBreakFinalizesImmediately(t *testing.T) {
	e, clk := newTestEngine(t, testSettings())
	ch := e.Subscribe(128)
	e.Start()
	e.StartWorkPeriod(nil)
	clk.advance(25 * time.Minute)
	expire(e)
	drain(ch)

	clk.advance(10 * time.Minute)
	e.Abandon()

	evs := drain(ch)
	if hasEvent(evs, EventConfirmSave) {
		t.Error("confirm-save prompt for an abandoned break")
	}
	if !hasEvent(evs, EventAbandoned) {
		t.Error("no abandoned event for break")
	}
}

func TestInvalidTransitionsAreNoOps(t *testing.T) {
	e, _ := newTestEngine(t, testSettings())

	// None of these may panic or change state.
	e.Pause()
	e.Resume()
	e.Abandon()
	e.FinalizeAbandonment(true, "x", "")
	e.StartWorkPeriod(nil)
	e.StartBreakPeriod()

	if got := e.State(); got != StateIdle {
		t.Errorf("State() = %v, want %v", got, StateIdle)
	}
	if e.Snapshot().IsRunning {
		t.Error("snapshot running after no-op calls")
	}
}

func TestFreshEnableResetsCountersOnceOnly(t *testing.T) {
	e, clk := newTestEngine(t, testSettings())
	e.Start()
	e.StartWorkPeriod(nil)
	clk.advance(25 * time.Minute)
	expire(e)
	clk.advance(5 * time.Minute)
	expire(e)

	if got := e.Snapshot().CycleCount; got != 1 {
		t.Fatalf("cycle count = %d, want 1", got)
	}

	// A subsequent Start must not clear progress.
	e.Start()
	if got := e.Snapshot().CycleCount; got != 1 {
		t.Errorf("cycle count after re-start = %d, want 1", got)
	}
	if got := e.Snapshot().TotalSessions; got != 1 {
		t.Errorf("total sessions after re-start = %d, want 1", got)
	}
}

func TestCurrentSessionNumberAcrossPhases(t *testing.T) {
	e, clk := newTestEngine(t, testSettings())
	e.Start()

	if got := e.CurrentSessionNumber(); got != 1 {
		t.Errorf("CurrentSessionNumber() armed = %d, want 1", got)
	}

	e.StartWorkPeriod(nil)
	if got := e.CurrentSessionNumber(); got != 1 {
		t.Errorf("CurrentSessionNumber() during work = %d, want 1", got)
	}

	// The cycle counter advances at work completion, so the break
	// already reports the upcoming session.
	clk.advance(25 * time.Minute)
	expire(e)
	if got := e.CurrentSessionNumber(); got != 2 {
		t.Errorf("CurrentSessionNumber() during break = %d, want 2", got)
	}

	clk.advance(5 * time.Minute)
	expire(e)
	if got := e.CurrentSessionNumber(); got != 2 {
		t.Errorf("CurrentSessionNumber() awaiting start = %d, want 2", got)
	}
}

func TestResetCounters(t *testing.T) {
	e, clk := newTestEngine(t, testSettings())
	e.Start()
	e.StartWorkPeriod(nil)
	clk.advance(25 * time.Minute)
	expire(e)
	clk.advance(5 * time.Minute)
	expire(e)

	e.ResetCounters()

	snap := e.Snapshot()
	if snap.CycleCount != 0 || snap.TotalSessions != 0 {
		t.Errorf("counters = %d/%d, want 0/0", snap.CycleCount, snap.TotalSessions)
	}
}

// Package pomodoro implements the work/break cycle state machine. The
// engine owns timers and counters only; it never touches storage,
// notifications, or presentation. Hosts subscribe to its event stream
// and translate events into entries and alerts.
package pomodoro

import (
	"sync"
	"time"

	"github.com/fmeurer/tomate/internal/constants"
	"github.com/fmeurer/tomate/internal/logger"
	"github.com/fmeurer/tomate/internal/models"
)

// Engine is a finite-state timer alternating work and break phases,
// with pause/resume accounting, abandonment salvage, and snapshot
// restoration. Operations called in a state that does not permit them
// are logged no-ops, never errors: the host drives the engine from UI
// handlers that cannot meaningfully recover from failures.
type Engine struct {
	mu       sync.Mutex
	settings models.Settings
	state    State
	snap     Snapshot
	enabled  bool

	now func() time.Time

	expiry    *time.Timer
	expiryGen int
	tickQuit  chan struct{}
	// timersDisabled turns the engine into a pure state machine;
	// tests drive expiry by hand.
	timersDisabled bool

	// pendingSpentMin freezes the minutes worked at the moment
	// Abandon raised the confirm-save prompt.
	pendingSpentMin int

	events []chan Event
	closed bool
}

// New creates an idle engine with the given settings.
func New(settings models.Settings) *Engine {
	return &Engine{
		settings: settings,
		state:    StateIdle,
		snap:     Snapshot{CurrentPhase: PhaseWork, SessionNumber: 1},
		now:      time.Now,
	}
}

// Subscribe registers an observer channel. Events that would block a
// full channel are dropped, so hosts should size the buffer for their
// consumption rate.
func (e *Engine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 16
	}
	ch := make(chan Event, buffer)
	e.mu.Lock()
	e.events = append(e.events, ch)
	e.mu.Unlock()
	return ch
}

// Close cancels all timers and closes observer channels. The snapshot
// is left untouched so the host can persist it for later restoration.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	e.cancelTimersLocked()
	events := e.events
	e.events = nil
	e.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// UpdateSettings replaces the engine's settings. The change applies
// from the next phase start; a countdown already in flight keeps its
// original duration.
func (e *Engine) UpdateSettings(settings models.Settings) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.settings = settings
}

// Settings returns the engine's current settings.
func (e *Engine) Settings() models.Settings {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.settings
}

// State returns the engine's current state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Snapshot returns a copy of the persistable state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snap
}

// CurrentSessionNumber is the 1-based ordinal of the current or next
// work session: the running one while working, the one that starts
// next otherwise. Always CycleCount+1, since the cycle counter
// advances the moment a work phase completes.
func (e *Engine) CurrentSessionNumber() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snap.CycleCount + 1
}

// Remaining returns the live time left in the current phase, zero
// when nothing is counting down.
func (e *Engine) Remaining() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.remainingLocked()
}

// Start enables the engine and arms it for a work period. Counters
// reset only on a fresh enable, not on every start, so an abandoned
// session keeps its number.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.state {
	case StateIdle, StateArmed, StateAwaitingStart:
	default:
		logger.Debug("pomodoro: ignoring Start", "state", e.state)
		return
	}

	if !e.enabled {
		e.enabled = true
		e.snap.CycleCount = 0
		e.snap.TotalSessions = 0
	}
	e.snap.CurrentPhase = PhaseWork
	e.snap.SessionNumber = e.snap.CycleCount + 1
	e.state = StateArmed

	e.emitLocked(Event{Type: EventArmed, SessionNumber: e.snap.SessionNumber})
}

// StartWorkPeriod begins the work countdown, optionally attaching an
// activity label. Valid when armed or awaiting the next session.
func (e *Engine) StartWorkPeriod(activity *Activity) {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.state {
	case StateArmed, StateAwaitingStart, StateBreakPending:
	default:
		logger.Debug("pomodoro: ignoring StartWorkPeriod", "state", e.state)
		return
	}

	e.startWorkPeriodLocked(activity)
}

// StartBreakPeriod begins the break owed after a work phase that
// expired while the host was down. Breaks after a live work phase
// start automatically.
func (e *Engine) StartBreakPeriod() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateBreakPending {
		logger.Debug("pomodoro: ignoring StartBreakPeriod", "state", e.state)
		return
	}

	e.startBreakPeriodLocked()
}

// Pause freezes the running countdown. A no-op when pausing is
// disallowed by settings or nothing is running.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.snap.IsRunning || e.snap.IsPaused || e.state == StateAbandonPending {
		logger.Debug("pomodoro: ignoring Pause", "state", e.state)
		return
	}
	if !e.settings.PauseAllowed {
		logger.Debug("pomodoro: pause disallowed by settings")
		return
	}

	now := e.now()
	e.cancelTimersLocked()
	e.snap.IsPaused = true
	e.snap.PausedAt = &now
	if e.snap.CurrentPhase == PhaseWork {
		e.state = StateWorkPaused
	} else {
		e.state = StateBreakPaused
	}

	e.emitLocked(Event{Type: EventPaused, Remaining: e.remainingLocked()})
}

// Resume continues a paused countdown. Time spent paused does not
// count against the phase.
func (e *Engine) Resume() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.snap.IsPaused || e.snap.PausedAt == nil {
		logger.Debug("pomodoro: ignoring Resume", "state", e.state)
		return
	}

	now := e.now()
	remainingAtPause := e.snap.RemainingTime - e.snap.PausedAt.Sub(e.snap.StartTime)
	if remainingAtPause < 0 {
		remainingAtPause = 0
	}
	e.snap.StartTime = now
	e.snap.RemainingTime = remainingAtPause
	e.snap.IsPaused = false
	e.snap.PausedAt = nil
	if e.snap.CurrentPhase == PhaseWork {
		e.state = StateWorkRunning
		e.startTickerLocked()
	} else {
		e.state = StateBreakRunning
	}
	e.scheduleExpiryLocked(remainingAtPause)

	e.emitLocked(Event{Type: EventResumed, Remaining: remainingAtPause})
}

// Abandon terminates the running phase before natural expiry. When
// enough work has accrued and auto-logging is on, the engine emits a
// confirm-save request and waits for FinalizeAbandonment; the prompt
// is fire-and-forget, the engine never blocks.
func (e *Engine) Abandon() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.snap.IsRunning || e.state == StateAbandonPending {
		logger.Debug("pomodoro: ignoring Abandon", "state", e.state)
		return
	}

	spent := e.elapsedLocked()
	spentMin := int(spent.Minutes())
	e.cancelTimersLocked()

	if e.snap.CurrentPhase == PhaseWork && e.settings.AutoLogWork && spentMin > constants.AbandonSalvageThresholdMin {
		e.state = StateAbandonPending
		e.pendingSpentMin = spentMin
		e.emitLocked(Event{
			Type:          EventConfirmSave,
			SessionNumber: e.snap.SessionNumber,
			Activity:      e.snap.WorkActivity,
			SpentMin:      spentMin,
		})
		return
	}

	e.finalizeAbandonmentLocked(false, nil, spentMin)
}

// FinalizeAbandonment completes an abandonment, optionally salvaging
// the partial session under the given label. The session number does
// not advance; the same session is retried on the next start.
func (e *Engine) FinalizeAbandonment(saved bool, label, description string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateAbandonPending {
		logger.Debug("pomodoro: ignoring FinalizeAbandonment", "state", e.state)
		return
	}

	activity := e.snap.WorkActivity
	if saved && label != "" {
		activity = &Activity{Name: label, Description: description}
	}
	e.finalizeAbandonmentLocked(saved, activity, e.pendingSpentMin)
	e.pendingSpentMin = 0
}

// RestoreFromSnapshot rebuilds live state from a persisted snapshot,
// reconciling elapsed wall-clock time. A phase that expired while the
// host was down surfaces as a restore-expired event, not as a normal
// completion.
func (e *Engine) RestoreFromSnapshot(snap Snapshot) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cancelTimersLocked()
	e.snap = snap
	e.enabled = true

	if !snap.IsRunning {
		switch {
		case snap.CurrentPhase == PhaseBreak:
			// A stopped break phase only ever persists when the break
			// is still owed; restarting must not drop it.
			e.state = StateBreakPending
			e.emitLocked(Event{Type: EventReadyForBreak, SessionNumber: snap.SessionNumber})
		case snap.CycleCount == 0 && snap.TotalSessions == 0 && snap.WorkActivity == nil:
			e.enabled = false
			e.state = StateIdle
		default:
			e.state = StateAwaitingStart
		}
		return
	}

	now := e.now()
	timeLeft := snap.TimeLeft(now)

	if timeLeft <= 0 {
		// Expired while offline. Enter the post-expiry state without
		// replaying the countdown.
		phase := snap.CurrentPhase
		e.snap.IsRunning = false
		e.snap.IsPaused = false
		e.snap.PausedAt = nil

		if phase == PhaseWork {
			e.snap.CycleCount++
			e.snap.TotalSessions++
			// The pending break is encoded in the snapshot so another
			// restart still finds it owed.
			e.snap.CurrentPhase = PhaseBreak
			e.state = StateBreakPending
		} else {
			e.snap.CurrentPhase = PhaseWork
			e.snap.SessionNumber = e.snap.CycleCount + 1
			e.state = StateAwaitingStart
		}

		e.emitLocked(Event{
			Type:          EventRestoreExpired,
			Phase:         phase,
			SessionNumber: snap.SessionNumber,
			Activity:      snap.WorkActivity,
			Duration:      snap.OriginalDuration,
		})
		if e.state == StateBreakPending {
			e.emitLocked(Event{Type: EventReadyForBreak, SessionNumber: snap.SessionNumber})
		}
		return
	}

	if snap.IsPaused {
		if snap.CurrentPhase == PhaseWork {
			e.state = StateWorkPaused
		} else {
			e.state = StateBreakPaused
		}
		return
	}

	if snap.CurrentPhase == PhaseWork {
		e.state = StateWorkRunning
		e.startTickerLocked()
	} else {
		e.state = StateBreakRunning
	}
	e.scheduleExpiryLocked(timeLeft)
}

// ResetCounters clears the lifetime session counter along with the
// cycle counter.
func (e *Engine) ResetCounters() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.snap.IsRunning {
		logger.Debug("pomodoro: ignoring ResetCounters while running")
		return
	}
	e.snap.CycleCount = 0
	e.snap.TotalSessions = 0
	e.snap.SessionNumber = 1
}

// --- internals ---

func (e *Engine) startWorkPeriodLocked(activity *Activity) {
	e.cancelTimersLocked()

	duration := time.Duration(e.settings.WorkMin) * time.Minute
	now := e.now()

	e.snap.CurrentPhase = PhaseWork
	e.snap.SessionNumber = e.snap.CycleCount + 1
	e.snap.StartTime = now
	e.snap.OriginalDuration = duration
	e.snap.RemainingTime = duration
	e.snap.IsRunning = true
	e.snap.IsPaused = false
	e.snap.PausedAt = nil
	if activity != nil {
		e.snap.WorkActivity = activity
	}
	e.state = StateWorkRunning

	e.scheduleExpiryLocked(duration)
	e.startTickerLocked()

	e.emitLocked(Event{
		Type:          EventWorkStarted,
		SessionNumber: e.snap.SessionNumber,
		Duration:      duration,
		Activity:      e.snap.WorkActivity,
	})
}

func (e *Engine) endWorkPeriodLocked() {
	e.cancelTimersLocked()

	e.snap.CycleCount++
	e.snap.TotalSessions++
	e.snap.IsRunning = false

	e.emitLocked(Event{
		Type:          EventWorkComplete,
		SessionNumber: e.snap.SessionNumber,
		Activity:      e.snap.WorkActivity,
		Duration:      e.snap.OriginalDuration,
	})

	e.startBreakPeriodLocked()
}

func (e *Engine) startBreakPeriodLocked() {
	e.cancelTimersLocked()

	kind := BreakShort
	if e.settings.LongBreaksEnabled && e.snap.CycleCount > 0 &&
		e.settings.LongBreakInterval > 0 && e.snap.CycleCount%e.settings.LongBreakInterval == 0 {
		kind = BreakLong
	}
	duration := time.Duration(e.settings.ShortBreakMin) * time.Minute
	if kind == BreakLong {
		duration = time.Duration(e.settings.LongBreakMin) * time.Minute
	}
	now := e.now()

	e.snap.CurrentPhase = PhaseBreak
	e.snap.StartTime = now
	e.snap.OriginalDuration = duration
	e.snap.RemainingTime = duration
	e.snap.IsRunning = true
	e.snap.IsPaused = false
	e.snap.PausedAt = nil
	e.state = StateBreakRunning

	e.scheduleExpiryLocked(duration)

	e.emitLocked(Event{
		Type:      EventBreakStarted,
		BreakKind: kind,
		Duration:  duration,
	})
}

func (e *Engine) endBreakPeriodLocked() {
	e.cancelTimersLocked()

	e.snap.IsRunning = false
	e.snap.CurrentPhase = PhaseWork
	e.snap.SessionNumber = e.snap.CycleCount + 1

	e.emitLocked(Event{
		Type:     EventBreakComplete,
		Phase:    PhaseBreak,
		Duration: e.snap.OriginalDuration,
	})

	if e.settings.AutoStartNext {
		e.startWorkPeriodLocked(nil)
		return
	}

	e.state = StateAwaitingStart
	e.emitLocked(Event{
		Type:          EventReadyForNext,
		SessionNumber: e.snap.SessionNumber,
	})
}

func (e *Engine) finalizeAbandonmentLocked(saved bool, activity *Activity, spentMin int) {
	sessionNumber := e.snap.SessionNumber

	e.snap.IsRunning = false
	e.snap.IsPaused = false
	e.snap.PausedAt = nil
	e.snap.CurrentPhase = PhaseWork
	e.snap.WorkActivity = nil
	e.snap.OriginalDuration = 0
	e.snap.RemainingTime = 0
	e.snap.SessionNumber = e.snap.CycleCount + 1
	e.state = StateArmed

	e.emitLocked(Event{
		Type:          EventAbandoned,
		SessionNumber: sessionNumber,
		Saved:         saved,
		Activity:      activity,
		SpentMin:      spentMin,
	})
}

// elapsedLocked is the total time worked in the current phase,
// including segments before earlier pauses.
func (e *Engine) elapsedLocked() time.Duration {
	base := e.snap.OriginalDuration - e.snap.RemainingTime
	if e.snap.IsPaused && e.snap.PausedAt != nil {
		return base + e.snap.PausedAt.Sub(e.snap.StartTime)
	}
	return base + e.now().Sub(e.snap.StartTime)
}

func (e *Engine) remainingLocked() time.Duration {
	if !e.snap.IsRunning {
		return 0
	}
	left := e.snap.TimeLeft(e.now())
	if left < 0 {
		return 0
	}
	return left
}

func (e *Engine) onExpiry(gen int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	// A canceled timer may still fire concurrently; the generation
	// check drops the stale callback.
	if gen != e.expiryGen || !e.snap.IsRunning || e.snap.IsPaused {
		return
	}

	if e.snap.CurrentPhase == PhaseWork {
		e.endWorkPeriodLocked()
	} else {
		e.endBreakPeriodLocked()
	}
}

// scheduleExpiryLocked arms the single pending expiry timer,
// cancelling any predecessor first so duplicates cannot stack.
func (e *Engine) scheduleExpiryLocked(d time.Duration) {
	e.cancelExpiryLocked()
	if e.timersDisabled {
		return
	}
	gen := e.expiryGen
	e.expiry = time.AfterFunc(d, func() { e.onExpiry(gen) })
}

func (e *Engine) cancelExpiryLocked() {
	e.expiryGen++
	if e.expiry != nil {
		e.expiry.Stop()
		e.expiry = nil
	}
}

func (e *Engine) startTickerLocked() {
	e.stopTickerLocked()
	if e.timersDisabled || e.settings.TickIntervalSec <= 0 {
		return
	}

	quit := make(chan struct{})
	e.tickQuit = quit
	interval := time.Duration(e.settings.TickIntervalSec) * time.Second

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-quit:
				return
			case <-ticker.C:
				e.tick()
			}
		}
	}()
}

func (e *Engine) stopTickerLocked() {
	if e.tickQuit != nil {
		close(e.tickQuit)
		e.tickQuit = nil
	}
}

func (e *Engine) cancelTimersLocked() {
	e.cancelExpiryLocked()
	e.stopTickerLocked()
}

func (e *Engine) tick() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateWorkRunning {
		return
	}
	e.emitLocked(Event{Type: EventTick, Remaining: e.remainingLocked()})
}

// emitLocked delivers the event to every observer without blocking.
// Slow observers lose events rather than stalling the engine.
func (e *Engine) emitLocked(ev Event) {
	ev.State = e.state
	if ev.Phase == "" {
		ev.Phase = e.snap.CurrentPhase
	}
	ev.At = e.now()

	for _, ch := range e.events {
		select {
		case ch <- ev:
		default:
			logger.Debug("pomodoro: dropping event for slow observer", "type", ev.Type)
		}
	}
}

package pomodoro

import "time"

// Phase is one of the two modes a running cycle alternates between.
type Phase string

const (
	PhaseWork  Phase = "work"
	PhaseBreak Phase = "break"
)

// BreakKind distinguishes the ordinary short break from the extended
// long break granted every LongBreakInterval sessions.
type BreakKind string

const (
	BreakShort BreakKind = "short"
	BreakLong  BreakKind = "long"
)

// State is the engine's current position in the work/break cycle.
type State string

const (
	// StateIdle means the engine is disabled or was never started.
	StateIdle State = "idle"
	// StateArmed means the engine is enabled and waiting for
	// StartWorkPeriod, so the host can prompt for an activity label.
	StateArmed State = "armed"
	StateWorkRunning  State = "work_running"
	StateWorkPaused   State = "work_paused"
	StateBreakRunning State = "break_running"
	StateBreakPaused  State = "break_paused"
	// StateBreakPending means a work phase finished while the host
	// was down; the break (or logging) is still owed.
	StateBreakPending State = "break_pending"
	// StateAwaitingStart means a break completed and the next work
	// period awaits a manual start.
	StateAwaitingStart State = "awaiting_start"
	// StateAbandonPending means a confirm-save prompt is outstanding;
	// the host must call FinalizeAbandonment.
	StateAbandonPending State = "abandon_pending"
)

// EventType defines the kind of engine event delivered to observers.
type EventType string

const (
	EventArmed          EventType = "armed"
	EventWorkStarted    EventType = "work_started"
	EventWorkComplete   EventType = "work_complete"
	EventBreakStarted   EventType = "break_started"
	EventBreakComplete  EventType = "break_complete"
	// EventReadyForBreak fires when a restore finds a break still
	// owed, freshly expired or carried over from an earlier restart.
	EventReadyForBreak  EventType = "ready_for_break"
	EventReadyForNext   EventType = "ready_for_next"
	EventPaused         EventType = "paused"
	EventResumed        EventType = "resumed"
	EventConfirmSave    EventType = "confirm_save"
	EventAbandoned      EventType = "abandoned"
	EventTick           EventType = "tick"
	EventRestoreExpired EventType = "restore_expired"
)

// Event is a single engine update for observers. Only the fields
// relevant to the event type are populated.
type Event struct {
	Type          EventType
	State         State
	Phase         Phase
	BreakKind     BreakKind
	SessionNumber int
	Duration      time.Duration
	Remaining     time.Duration
	Activity      *Activity
	Saved         bool
	SpentMin      int
	At            time.Time
}

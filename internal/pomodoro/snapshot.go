package pomodoro

import "time"

// Activity is the optional label the user attached to a work phase.
type Activity struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Snapshot is the serializable representation of the engine's live
// state, persisted by the host after every mutation and used to
// restore across restarts. Field names are part of the stored format.
type Snapshot struct {
	IsRunning        bool          `json:"isRunning"`
	IsPaused         bool          `json:"isPaused"` // implies IsRunning
	CurrentPhase     Phase         `json:"currentPhase"`
	SessionNumber    int           `json:"sessionNumber"`
	StartTime        time.Time     `json:"startTime"`
	OriginalDuration time.Duration `json:"originalDuration"`
	// RemainingTime is the time left as of StartTime. It only changes
	// across pause/resume, never during a free-running countdown.
	RemainingTime time.Duration `json:"remainingTime"`
	PausedAt      *time.Time    `json:"pausedAt,omitempty"`
	WorkActivity  *Activity     `json:"workActivity,omitempty"`
	// CycleCount counts fully completed work sessions since the last
	// fresh enable; it drives long-break cadence.
	CycleCount int `json:"cycleCount"`
	// TotalSessions counts lifetime completed work sessions. It
	// survives cycle resets and only clears on an explicit counter
	// reset.
	TotalSessions int `json:"totalSessions"`
}

// TimeLeft computes how much countdown remains as of now, accounting
// for a pause in progress. Negative results mean the phase expired.
func (s Snapshot) TimeLeft(now time.Time) time.Duration {
	if s.IsPaused && s.PausedAt != nil {
		return s.RemainingTime - s.PausedAt.Sub(s.StartTime)
	}
	return s.RemainingTime - now.Sub(s.StartTime)
}

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/fmeurer/tomate/internal/pomodoro"
)

func (m Model) View() string {
	var b strings.Builder

	snap := m.engine.Snapshot()
	state := m.engine.State()

	b.WriteString(titleStyle.Render("tomate"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  session %d", m.engine.CurrentSessionNumber())))
	b.WriteString("\n\n")

	switch {
	case m.entering:
		b.WriteString("Start a work period\n\n")
		b.WriteString(m.activity.View())
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("enter to start · esc to cancel"))

	case m.confirming:
		b.WriteString(dangerStyle.Render("Abandon session"))
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("Save %dm of work to the log?\n\n", m.confirm.SpentMin))
		b.WriteString(dimStyle.Render("y save · n discard"))

	default:
		b.WriteString(m.renderTimer(snap, state))
	}

	b.WriteString("\n\n")
	if m.statusMsg != "" {
		b.WriteString(statusStyle.Render(m.statusMsg))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))

	return docStyle.Render(b.String())
}

func (m Model) renderTimer(snap pomodoro.Snapshot, state pomodoro.State) string {
	var b strings.Builder

	switch state {
	case pomodoro.StateIdle:
		b.WriteString("No session. Press s to start one.\n")
		return b.String()

	case pomodoro.StateArmed:
		b.WriteString("Armed. Press s to begin a work period.\n")
		return b.String()

	case pomodoro.StateAwaitingStart:
		b.WriteString("Break finished. Press s for the next session.\n")
		return b.String()

	case pomodoro.StateBreakPending:
		b.WriteString("Work period done. Press b for your break, or s to skip it.\n")
		return b.String()
	}

	remaining := m.engine.Remaining()
	style := timerStyle
	label := "Working"
	if snap.CurrentPhase == pomodoro.PhaseBreak {
		style = breakTimerStyle
		label = "On break"
	}
	if state == pomodoro.StateWorkPaused || state == pomodoro.StateBreakPaused {
		label += pausedStyle.Render("  (paused)")
	}

	b.WriteString(label)
	b.WriteString("\n")
	b.WriteString(style.Render(formatClock(remaining)))
	b.WriteString("\n")

	if snap.OriginalDuration > 0 {
		ratio := 1 - float64(remaining)/float64(snap.OriginalDuration)
		if ratio < 0 {
			ratio = 0
		}
		if ratio > 1 {
			ratio = 1
		}
		b.WriteString(m.prog.ViewAs(ratio))
		b.WriteString("\n")
	}

	if snap.WorkActivity != nil && snap.WorkActivity.Name != "" && snap.CurrentPhase == pomodoro.PhaseWork {
		b.WriteString(dimStyle.Render("working on: " + snap.WorkActivity.Name))
		b.WriteString("\n")
	}

	return b.String()
}

func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

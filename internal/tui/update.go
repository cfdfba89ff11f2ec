package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fmeurer/tomate/internal/logger"
	"github.com/fmeurer/tomate/internal/pomodoro"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		w := msg.Width - 8
		if w > 60 {
			w = 60
		}
		if w > 0 {
			m.prog.Width = w
		}
		return m, nil

	case tickMsg:
		// Redraw the countdown once a second
		return m, tickEvery()

	case engineEventMsg:
		m.handleEngineEvent(pomodoro.Event(msg))
		return m, m.waitForEvent()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleEngineEvent(ev pomodoro.Event) {
	settings := m.engine.Settings()

	switch ev.Type {
	case pomodoro.EventWorkComplete:
		if settings.AutoLogWork {
			if err := m.journal.LogWorkComplete(ev); err != nil {
				logger.Error("failed to log work period", "error", err)
			}
		}
		m.sendNotification("Work complete", "Time for a break")
		m.statusMsg = fmt.Sprintf("Session %d complete", ev.SessionNumber)

	case pomodoro.EventBreakComplete:
		if settings.LogBreaks {
			if err := m.journal.LogBreakComplete(ev); err != nil {
				logger.Error("failed to log break", "error", err)
			}
		}
		m.sendNotification("Break over", "Ready when you are")
		m.statusMsg = "Break complete"

	case pomodoro.EventBreakStarted:
		kind := "Short"
		if ev.BreakKind == pomodoro.BreakLong {
			kind = "Long"
		}
		m.statusMsg = fmt.Sprintf("%s break started", kind)

	case pomodoro.EventWorkStarted:
		m.statusMsg = fmt.Sprintf("Session %d started", ev.SessionNumber)

	case pomodoro.EventReadyForNext:
		m.sendNotification("Ready", "Press s to start the next session")
		m.statusMsg = "Ready for the next session"

	case pomodoro.EventConfirmSave:
		m.confirming = true
		m.confirm = ev

	case pomodoro.EventAbandoned:
		m.confirming = false
		if ev.Saved {
			label, description := "", ""
			if ev.Activity != nil {
				label = ev.Activity.Name
				description = ev.Activity.Description
			}
			if err := m.journal.LogAbandoned(ev, label, description); err != nil {
				logger.Error("failed to log salvaged work", "error", err)
			}
			m.statusMsg = fmt.Sprintf("Abandoned, %dm saved", ev.SpentMin)
		} else {
			m.statusMsg = "Session abandoned"
		}

	case pomodoro.EventReadyForBreak:
		m.statusMsg = "Break owed. Press b to take it"

	case pomodoro.EventRestoreExpired:
		if ev.Phase == pomodoro.PhaseWork {
			if m.engine.Settings().LogOfflineExpiry && m.engine.Settings().AutoLogWork {
				if err := m.journal.LogWorkComplete(ev); err != nil {
					logger.Error("failed to log offline work period", "error", err)
				}
			}
			m.statusMsg = "A work period finished while tomate was closed"
		} else {
			m.statusMsg = "A break finished while tomate was closed"
		}
	}

	m.persist()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Activity prompt captures all input
	if m.entering {
		switch msg.String() {
		case "esc":
			m.entering = false
			m.activity.SetValue("")
			return m, nil
		case "enter":
			name := strings.TrimSpace(m.activity.Value())
			var activity *pomodoro.Activity
			if name != "" {
				activity = &pomodoro.Activity{Name: name}
			}
			m.entering = false
			m.activity.SetValue("")
			m.engine.StartWorkPeriod(activity)
			m.persist()
			return m, nil
		default:
			var cmd tea.Cmd
			m.activity, cmd = m.activity.Update(msg)
			return m, cmd
		}
	}

	// Abandon save prompt
	if m.confirming {
		switch msg.String() {
		case "y", "Y":
			label, description := "", ""
			if m.confirm.Activity != nil {
				label = m.confirm.Activity.Name
				description = m.confirm.Activity.Description
			}
			m.engine.FinalizeAbandonment(true, label, description)
			return m, nil
		case "n", "N", "esc":
			m.engine.FinalizeAbandonment(false, "", "")
			return m, nil
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.persist()
		m.engine.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Start):
		switch m.engine.State() {
		case pomodoro.StateIdle:
			m.engine.Start()
			m.persist()
			m.entering = true
			return m, m.activity.Focus()
		case pomodoro.StateArmed, pomodoro.StateAwaitingStart, pomodoro.StateBreakPending:
			m.entering = true
			return m, m.activity.Focus()
		}
		return m, nil

	case key.Matches(msg, m.keys.Pause):
		switch m.engine.State() {
		case pomodoro.StateWorkRunning, pomodoro.StateBreakRunning:
			if !m.engine.Settings().PauseAllowed {
				m.statusMsg = "Pausing is disabled in settings"
				return m, nil
			}
			m.engine.Pause()
		case pomodoro.StateWorkPaused, pomodoro.StateBreakPaused:
			m.engine.Resume()
		}
		m.persist()
		return m, nil

	case key.Matches(msg, m.keys.Break):
		if m.engine.State() == pomodoro.StateBreakPending {
			m.engine.StartBreakPeriod()
			m.persist()
		}
		return m, nil

	case key.Matches(msg, m.keys.Abandon):
		m.engine.Abandon()
		m.persist()
		return m, nil

	case key.Matches(msg, m.keys.Reset):
		m.engine.ResetCounters()
		m.persist()
		m.statusMsg = "Cycle counters reset"
		return m, nil
	}

	return m, nil
}

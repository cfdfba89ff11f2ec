package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fmeurer/tomate/internal/journal"
	"github.com/fmeurer/tomate/internal/logger"
	"github.com/fmeurer/tomate/internal/models"
	"github.com/fmeurer/tomate/internal/notifier"
	"github.com/fmeurer/tomate/internal/pomodoro"
	"github.com/fmeurer/tomate/internal/storage"
)

type engineEventMsg pomodoro.Event

type tickMsg time.Time

type Model struct {
	store   storage.Provider
	engine  *pomodoro.Engine
	events  <-chan pomodoro.Event
	journal *journal.Journal
	notify  *notifier.Notifier

	keys     KeyMap
	help     help.Model
	prog     progress.Model
	activity textinput.Model

	// entering is true while the activity prompt is open; confirming
	// while an abandon save prompt is outstanding.
	entering   bool
	confirming bool
	confirm    pomodoro.Event

	statusMsg string
	width     int
}

func NewModel(store storage.Provider) Model {
	settings, err := store.GetSettings()
	if err != nil {
		logger.Warn("falling back to default settings", "error", err)
		settings = models.DefaultSettings()
	}

	engine := pomodoro.New(settings)
	// Subscribe before restoring so an offline expiry event is not lost
	events := engine.Subscribe(32)
	if snap, found, err := store.GetSnapshot(); err != nil {
		logger.Warn("failed to read snapshot", "error", err)
	} else if found {
		engine.RestoreFromSnapshot(snap)
	}

	activity := textinput.New()
	activity.Placeholder = "what are you working on? (optional)"
	activity.CharLimit = 120

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 40

	return Model{
		store:    store,
		engine:   engine,
		events:   events,
		journal:  journal.New(store),
		notify:   notifier.New(),
		keys:     defaultKeyMap(),
		help:     help.New(),
		prog:     prog,
		activity: activity,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.waitForEvent(), tickEvery())
}

func (m Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return nil
		}
		return engineEventMsg(ev)
	}
}

func tickEvery() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) persist() {
	if err := m.store.SaveSnapshot(m.engine.Snapshot()); err != nil {
		logger.Error("failed to persist session state", "error", err)
		m.statusMsg = "warning: could not save session state"
	}
}

func (m *Model) sendNotification(title, body string) {
	if !m.engine.Settings().NotificationsEnabled {
		return
	}
	go func() {
		if err := m.notify.Notify(title, body); err != nil {
			logger.Debug("notification not delivered", "error", err)
		}
	}()
}

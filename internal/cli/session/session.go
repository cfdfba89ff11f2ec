package session

import (
	"fmt"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/fmeurer/tomate/internal/cli"
	"github.com/fmeurer/tomate/internal/journal"
	"github.com/fmeurer/tomate/internal/pomodoro"
)

// loadEngine rebuilds an engine from settings and the persisted
// snapshot so one-shot commands can act on the same session the watch
// host (or a previous command) left behind.
func loadEngine(ctx *cli.Context) (*pomodoro.Engine, error) {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	e := pomodoro.New(settings)
	if snap, found, err := ctx.Store.GetSnapshot(); err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	} else if found {
		e.RestoreFromSnapshot(snap)
	}
	return e, nil
}

func persist(ctx *cli.Context, e *pomodoro.Engine) error {
	if err := ctx.Store.SaveSnapshot(e.Snapshot()); err != nil {
		return fmt.Errorf("failed to persist session state: %w", err)
	}
	return nil
}

type StartCmd struct {
	Activity    string `arg:"" optional:"" help:"What you are working on."`
	Description string `short:"d" help:"Longer description, #hashtags become tags."`
}

func (c *StartCmd) Run(ctx *cli.Context) error {
	e, err := loadEngine(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	switch e.State() {
	case pomodoro.StateWorkRunning, pomodoro.StateBreakRunning,
		pomodoro.StateWorkPaused, pomodoro.StateBreakPaused:
		return fmt.Errorf("a session is already in progress; run 'tomate watch' to see it")
	case pomodoro.StateBreakPending:
		return fmt.Errorf("a break is still owed; run 'tomate session break' first")
	case pomodoro.StateAbandonPending:
		return fmt.Errorf("an abandonment is awaiting confirmation; run 'tomate session abandon'")
	}

	e.Start()

	var activity *pomodoro.Activity
	if c.Activity != "" {
		activity = &pomodoro.Activity{Name: c.Activity, Description: c.Description}
	}
	e.StartWorkPeriod(activity)

	if err := persist(ctx, e); err != nil {
		return err
	}

	settings := e.Settings()
	fmt.Printf("Session %d started (%s). Run 'tomate watch' to follow it.\n",
		e.CurrentSessionNumber(), cli.FormatMinutes(settings.WorkMin))
	return nil
}

type BreakCmd struct{}

func (c *BreakCmd) Run(ctx *cli.Context) error {
	e, err := loadEngine(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	if e.State() != pomodoro.StateBreakPending {
		return fmt.Errorf("no break is owed right now")
	}

	e.StartBreakPeriod()
	if err := persist(ctx, e); err != nil {
		return err
	}

	snap := e.Snapshot()
	fmt.Printf("Break started (%s).\n", cli.FormatCountdown(snap.RemainingTime))
	return nil
}

type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	snap, found, err := ctx.Store.GetSnapshot()
	if err != nil {
		return fmt.Errorf("failed to get snapshot: %w", err)
	}
	if !found {
		fmt.Println("No session. Start one with 'tomate session start'.")
		return nil
	}

	phase := "work"
	if snap.CurrentPhase == pomodoro.PhaseBreak {
		phase = "break"
	}

	switch {
	case snap.IsRunning && snap.IsPaused:
		fmt.Printf("Session %d: %s paused, %s left\n",
			snap.SessionNumber, phase, cli.FormatCountdown(snap.RemainingTime))
	case snap.IsRunning:
		left := snap.TimeLeft(time.Now())
		if left <= 0 {
			fmt.Printf("Session %d: %s period already elapsed; open 'tomate watch' to continue\n",
				snap.SessionNumber, phase)
		} else {
			fmt.Printf("Session %d: %s running, %s left\n",
				snap.SessionNumber, phase, cli.FormatCountdown(left))
		}
	case snap.CurrentPhase == pomodoro.PhaseBreak:
		fmt.Printf("Session %d finished; a break is owed. Run 'tomate session break' to take it.\n",
			snap.SessionNumber)
	default:
		fmt.Printf("No session running. %d completed today's cycle so far.\n", snap.CycleCount)
	}

	if snap.WorkActivity != nil && snap.WorkActivity.Name != "" {
		fmt.Printf("Activity: %s\n", snap.WorkActivity.Name)
	}
	return nil
}

type PauseCmd struct{}

func (c *PauseCmd) Run(ctx *cli.Context) error {
	e, err := loadEngine(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	if !e.Settings().PauseAllowed {
		return fmt.Errorf("pausing is disabled in settings")
	}

	before := e.State()
	e.Pause()
	if e.State() == before {
		return fmt.Errorf("nothing to pause")
	}

	if err := persist(ctx, e); err != nil {
		return err
	}
	fmt.Printf("Paused with %s left.\n", cli.FormatCountdown(e.Remaining()))
	return nil
}

type ResumeCmd struct{}

func (c *ResumeCmd) Run(ctx *cli.Context) error {
	e, err := loadEngine(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	before := e.State()
	e.Resume()
	if e.State() == before {
		return fmt.Errorf("nothing to resume")
	}

	if err := persist(ctx, e); err != nil {
		return err
	}
	fmt.Printf("Resumed, %s left.\n", cli.FormatCountdown(e.Remaining()))
	return nil
}

type AbandonCmd struct {
	Discard bool `help:"Discard the spent time without asking."`
}

func (c *AbandonCmd) Run(ctx *cli.Context) error {
	e, err := loadEngine(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	events := e.Subscribe(8)
	e.Abandon()

	if e.State() != pomodoro.StateAbandonPending {
		// Short or unsalvageable sessions finalize immediately
		if abandoned, ok := findAbandoned(events); ok {
			if err := persist(ctx, e); err != nil {
				return err
			}
			fmt.Printf("Session %d abandoned, %dm discarded.\n", abandoned.SessionNumber, abandoned.SpentMin)
			return nil
		}
		return fmt.Errorf("no session to abandon")
	}

	confirm, ok := findConfirmSave(events)
	if !ok {
		return fmt.Errorf("expected a save prompt but got none")
	}

	save := false
	if !c.Discard {
		prompt := huh.NewConfirm().
			Title(fmt.Sprintf("Save %dm of work before abandoning?", confirm.SpentMin)).
			Affirmative("Save").
			Negative("Discard").
			Value(&save)
		if err := prompt.Run(); err != nil {
			return err
		}
	}

	label, description := "", ""
	if save {
		if confirm.Activity != nil {
			label = confirm.Activity.Name
			description = confirm.Activity.Description
		}
		input := huh.NewInput().
			Title("Label for the salvaged entry").
			Value(&label)
		if err := input.Run(); err != nil {
			return err
		}
	}

	e.FinalizeAbandonment(save, label, description)

	if abandoned, ok := findAbandoned(events); ok && abandoned.Saved {
		j := journal.New(ctx.Store)
		if err := j.LogAbandoned(abandoned, label, description); err != nil {
			return fmt.Errorf("failed to log salvaged work: %w", err)
		}
	}

	if err := persist(ctx, e); err != nil {
		return err
	}

	if save {
		fmt.Printf("Session abandoned, %dm saved to the log.\n", confirm.SpentMin)
	} else {
		fmt.Println("Session abandoned.")
	}
	return nil
}

type ResetCmd struct{}

func (c *ResetCmd) Run(ctx *cli.Context) error {
	e, err := loadEngine(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	e.ResetCounters()
	if err := persist(ctx, e); err != nil {
		return err
	}
	fmt.Println("Cycle counters reset.")
	return nil
}

func findConfirmSave(events <-chan pomodoro.Event) (pomodoro.Event, bool) {
	return findEvent(events, pomodoro.EventConfirmSave)
}

func findAbandoned(events <-chan pomodoro.Event) (pomodoro.Event, bool) {
	return findEvent(events, pomodoro.EventAbandoned)
}

func findEvent(events <-chan pomodoro.Event, et pomodoro.EventType) (pomodoro.Event, bool) {
	for {
		select {
		case ev := <-events:
			if ev.Type == et {
				return ev, true
			}
		default:
			return pomodoro.Event{}, false
		}
	}
}

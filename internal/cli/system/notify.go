package system

import (
	"fmt"
	"time"

	"github.com/fmeurer/tomate/internal/cli"
	"github.com/fmeurer/tomate/internal/notifier"
	"github.com/fmeurer/tomate/internal/schedule"
	"github.com/fmeurer/tomate/internal/utils"
)

// NotifyCmd delivers due reminders. It is meant to be invoked from a
// cron job or systemd timer every minute, not by hand.
type NotifyCmd struct {
	DryRun bool `help:"Print notifications to stdout instead of sending them."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if !settings.NotificationsEnabled {
		if c.DryRun {
			fmt.Println("Notifications are disabled in settings.")
		}
		return nil
	}

	now, err := utils.NowFromSettings(settings)
	if err != nil {
		return fmt.Errorf("failed to resolve timezone: %w", err)
	}

	// A running session owns the screen; its host sends phase
	// notifications itself and reminders would only break focus.
	if snap, found, err := ctx.Store.GetSnapshot(); err == nil && found {
		if snap.IsRunning && snap.TimeLeft(now) > 0 {
			if c.DryRun {
				fmt.Println("A session is running; reminders suppressed.")
			}
			return nil
		}
	}

	cfg, err := ctx.Store.GetSchedule()
	if err != nil {
		return fmt.Errorf("failed to get schedule: %w", err)
	}
	if !schedule.IsActive(cfg, now) {
		if c.DryRun {
			fmt.Println("Outside active hours; reminders suppressed.")
		}
		return nil
	}

	reminders, err := ctx.Store.GetAllReminders()
	if err != nil {
		return fmt.Errorf("failed to get reminders: %w", err)
	}

	n := notifier.New()
	for _, r := range reminders {
		if !r.IsDueAt(now) {
			continue
		}
		// Rate limit across the midnight boundary
		if r.LastSent != nil && settings.ReminderIntervalMin > 0 &&
			now.Sub(*r.LastSent) < time.Duration(settings.ReminderIntervalMin)*time.Minute {
			continue
		}

		if c.DryRun {
			fmt.Printf("[DryRun] %s\n", r.Message)
		} else {
			if err := n.Notify("Reminder", r.Message); err != nil {
				// Keep checking other reminders
				fmt.Printf("Failed to send notification: %v\n", err)
				continue
			}
		}

		sent := now
		r.LastSent = &sent
		if err := ctx.Store.UpdateReminder(r); err != nil {
			fmt.Printf("Failed to record reminder delivery: %v\n", err)
		}
	}

	return nil
}

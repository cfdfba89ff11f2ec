package reminders

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fmeurer/tomate/internal/cli"
	"github.com/fmeurer/tomate/internal/models"
	"github.com/fmeurer/tomate/internal/utils"
)

type ReminderAddCmd struct {
	Message string `arg:"" help:"Reminder text."`
	Time    string `required:"" help:"Time of day (HH:MM)."`
	Days    string `help:"Comma-separated weekdays (default: every day)."`
}

func (c *ReminderAddCmd) Run(ctx *cli.Context) error {
	if !utils.ValidateTimeFormat(c.Time) {
		return fmt.Errorf("invalid time %q (expected HH:MM)", c.Time)
	}

	var weekdays []time.Weekday
	if c.Days != "" {
		var err error
		weekdays, err = cli.ParseWeekdays(c.Days)
		if err != nil {
			return err
		}
	}

	r := models.Reminder{
		ID:        uuid.NewString(),
		Message:   c.Message,
		Time:      c.Time,
		Weekdays:  weekdays,
		Active:    true,
		CreatedAt: time.Now(),
	}
	if err := r.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.AddReminder(r); err != nil {
		return err
	}

	fmt.Printf("Reminder added: %q at %s on %s\n", r.Message, r.Time, r.FormatWeekdays())
	return nil
}

type ReminderListCmd struct{}

func (c *ReminderListCmd) Run(ctx *cli.Context) error {
	reminders, err := ctx.Store.GetAllReminders()
	if err != nil {
		return err
	}

	if len(reminders) == 0 {
		fmt.Println("No reminders configured.")
		return nil
	}

	for _, r := range reminders {
		status := " "
		if !r.Active {
			status = "(inactive) "
		}
		fmt.Printf("  %s  %s%s (%s)  [%s]\n", r.Time, status, r.Message, r.FormatWeekdays(), r.ID)
	}
	return nil
}

type ReminderToggleCmd struct {
	ID string `arg:"" help:"ID of the reminder to enable or disable."`
}

func (c *ReminderToggleCmd) Run(ctx *cli.Context) error {
	r, err := ctx.Store.GetReminder(c.ID)
	if err != nil {
		return err
	}
	r.Active = !r.Active
	if err := ctx.Store.UpdateReminder(r); err != nil {
		return err
	}

	state := "enabled"
	if !r.Active {
		state = "disabled"
	}
	fmt.Printf("Reminder %q %s.\n", r.Message, state)
	return nil
}

type ReminderDeleteCmd struct {
	ID string `arg:"" help:"ID of the reminder to delete."`
}

func (c *ReminderDeleteCmd) Run(ctx *cli.Context) error {
	r, err := ctx.Store.GetReminder(c.ID)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteReminder(c.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted reminder %q.\n", r.Message)
	return nil
}

package settings

import (
	"fmt"

	"github.com/fmeurer/tomate/internal/cli"
	"github.com/fmeurer/tomate/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	WorkMin              *int    `help:"Work period length in minutes."`
	ShortBreakMin        *int    `help:"Short break length in minutes."`
	LongBreakMin         *int    `help:"Long break length in minutes."`
	LongBreakInterval    *int    `help:"Sessions between long breaks."`
	LongBreaksEnabled    *bool   `help:"Enable long breaks."`
	PauseAllowed         *bool   `help:"Allow pausing a running period."`
	AutoStartNext        *bool   `help:"Start the next work period automatically after a break."`
	AutoLogWork          *bool   `help:"Log completed work periods automatically."`
	LogBreaks            *bool   `help:"Log completed breaks too."`
	LogOfflineExpiry     *bool   `help:"Log work periods that expired while no host was running."`
	NotificationsEnabled *bool   `help:"Enable desktop notifications."`
	ReminderIntervalMin  *int    `help:"Minimum minutes between repeated reminders."`
	Timezone             *string `help:"IANA timezone for schedules (or 'Local')."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		fmt.Println("Timer Settings:")
		fmt.Printf("  Work Period:           %d min\n", settings.WorkMin)
		fmt.Printf("  Short Break:           %d min\n", settings.ShortBreakMin)
		fmt.Printf("  Long Break:            %d min\n", settings.LongBreakMin)
		fmt.Printf("  Long Break Interval:   every %d sessions\n", settings.LongBreakInterval)
		fmt.Printf("  Long Breaks Enabled:   %v\n", settings.LongBreaksEnabled)
		fmt.Printf("  Pause Allowed:         %v\n", settings.PauseAllowed)
		fmt.Printf("  Auto-Start Next:       %v\n", settings.AutoStartNext)
		fmt.Println("\nLogging Settings:")
		fmt.Printf("  Auto-Log Work:         %v\n", settings.AutoLogWork)
		fmt.Printf("  Log Breaks:            %v\n", settings.LogBreaks)
		fmt.Printf("  Log Offline Expiry:    %v\n", settings.LogOfflineExpiry)
		fmt.Println("\nNotification Settings:")
		fmt.Printf("  Notifications Enabled: %v\n", settings.NotificationsEnabled)
		fmt.Printf("  Reminder Interval:     %d min\n", settings.ReminderIntervalMin)
		fmt.Printf("  Timezone:              %s\n", settings.Timezone)
		return nil
	}

	updated := false
	setInt := func(dst *int, src *int, name string) error {
		if src == nil {
			return nil
		}
		if *src <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
		*dst = *src
		updated = true
		return nil
	}
	setBool := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
			updated = true
		}
	}

	if err := setInt(&settings.WorkMin, c.WorkMin, "--work-min"); err != nil {
		return err
	}
	if err := setInt(&settings.ShortBreakMin, c.ShortBreakMin, "--short-break-min"); err != nil {
		return err
	}
	if err := setInt(&settings.LongBreakMin, c.LongBreakMin, "--long-break-min"); err != nil {
		return err
	}
	if c.LongBreakInterval != nil {
		if *c.LongBreakInterval < 0 {
			return fmt.Errorf("--long-break-interval cannot be negative")
		}
		settings.LongBreakInterval = *c.LongBreakInterval
		updated = true
	}
	setBool(&settings.LongBreaksEnabled, c.LongBreaksEnabled)
	setBool(&settings.PauseAllowed, c.PauseAllowed)
	setBool(&settings.AutoStartNext, c.AutoStartNext)
	setBool(&settings.AutoLogWork, c.AutoLogWork)
	setBool(&settings.LogBreaks, c.LogBreaks)
	setBool(&settings.LogOfflineExpiry, c.LogOfflineExpiry)
	setBool(&settings.NotificationsEnabled, c.NotificationsEnabled)
	if c.ReminderIntervalMin != nil {
		if *c.ReminderIntervalMin < 0 {
			return fmt.Errorf("--reminder-interval-min cannot be negative")
		}
		settings.ReminderIntervalMin = *c.ReminderIntervalMin
		updated = true
	}
	if c.Timezone != nil {
		if !utils.ValidateTimezone(*c.Timezone) {
			return fmt.Errorf("unknown timezone %q", *c.Timezone)
		}
		settings.Timezone = *c.Timezone
		updated = true
	}

	if updated {
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		fmt.Println("Settings updated successfully.")
	} else {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/fmeurer/tomate/internal/cli"
	"github.com/fmeurer/tomate/internal/cli/backups"
	"github.com/fmeurer/tomate/internal/cli/entries"
	"github.com/fmeurer/tomate/internal/cli/hours"
	"github.com/fmeurer/tomate/internal/cli/reminders"
	"github.com/fmeurer/tomate/internal/cli/session"
	"github.com/fmeurer/tomate/internal/cli/settings"
	"github.com/fmeurer/tomate/internal/cli/system"
	"github.com/fmeurer/tomate/internal/constants"
	"github.com/fmeurer/tomate/internal/errors"
	"github.com/fmeurer/tomate/internal/logger"
	"github.com/fmeurer/tomate/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Database file path (.db for SQLite, .json for a plain JSON store)." type:"path" default:"~/.config/tomate/tomate.db"`
	Debug   bool   `help:"Verbose logging to stderr."`

	Init    system.InitCmd    `cmd:"" help:"Initialize tomate storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Watch   system.WatchCmd   `cmd:"" help:"Follow the running session interactively." default:"1"`
	Session struct {
		Start   session.StartCmd   `cmd:"" help:"Start a work period." default:"1"`
		Break   session.BreakCmd   `cmd:"" help:"Start the owed break."`
		Status  session.StatusCmd  `cmd:"" help:"Show the current session."`
		Pause   session.PauseCmd   `cmd:"" help:"Pause the running period."`
		Resume  session.ResumeCmd  `cmd:"" help:"Resume a paused period."`
		Abandon session.AbandonCmd `cmd:"" help:"Abandon the running session."`
		Reset   session.ResetCmd   `cmd:"" help:"Reset the long-break cycle counters."`
	} `cmd:"" help:"Control the pomodoro session."`
	Log struct {
		Add    entries.LogAddCmd    `cmd:"" help:"Log an activity by hand."`
		List   entries.LogListCmd   `cmd:"" help:"List logged activities." default:"1"`
		Delete entries.LogDeleteCmd `cmd:"" help:"Delete a log entry."`
	} `cmd:"" help:"Manage the activity log."`
	Reminder struct {
		Add    reminders.ReminderAddCmd    `cmd:"" help:"Add a reminder."`
		List   reminders.ReminderListCmd   `cmd:"" help:"List reminders." default:"1"`
		Toggle reminders.ReminderToggleCmd `cmd:"" help:"Enable or disable a reminder."`
		Delete reminders.ReminderDeleteCmd `cmd:"" help:"Delete a reminder."`
	} `cmd:"" help:"Manage reminders."`
	Hours struct {
		Show hours.HoursShowCmd `cmd:"" help:"Show active hours." default:"1"`
		Set  hours.HoursSetCmd  `cmd:"" help:"Change active hours."`
	} `cmd:"" help:"Manage the weekly active-hours schedule."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Debugcmd system.DebugCmd      `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
	Notify   system.NotifyCmd     `cmd:"" hidden:"" help:"Deliver due reminders (used by cron)."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Pomodoro timer and focus log"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(CLI.Config),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	var store storage.Provider
	if filepath.Ext(CLI.Config) == ".json" {
		store = storage.NewJSONStore(CLI.Config)
	} else {
		store = storage.NewSQLiteStore(CLI.Config)
	}

	appCtx := &cli.Context{
		Store: store,
	}

	// Load the store before running the command (init handles its own loading)
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		errors.Fatal(err)
	}
}

package system

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fmeurer/tomate/internal/cli"
	"github.com/fmeurer/tomate/internal/constants"
)

type DebugCmd struct {
	DBPath       *DebugDBPathCmd       `cmd:"" help:"Show database path."`
	DumpSettings *DebugDumpSettingsCmd `cmd:"" help:"Dump settings as JSON."`
	DumpSchedule *DebugDumpScheduleCmd `cmd:"" help:"Dump the active-hours schedule as JSON."`
	DumpSnapshot *DebugDumpSnapshotCmd `cmd:"" help:"Dump the persisted engine snapshot as JSON."`
	DumpEntries  *DebugDumpEntriesCmd  `cmd:"" help:"Dump log entries as JSON."`
}

func dumpJSON(v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(jsonBytes))
	return nil
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	return dumpJSON(map[string]string{"path": ctx.Store.GetConfigPath()})
}

type DebugDumpSettingsCmd struct{}

func (cmd *DebugDumpSettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	return dumpJSON(settings)
}

type DebugDumpScheduleCmd struct{}

func (cmd *DebugDumpScheduleCmd) Run(ctx *cli.Context) error {
	schedule, err := ctx.Store.GetSchedule()
	if err != nil {
		return fmt.Errorf("failed to get schedule: %w", err)
	}
	return dumpJSON(schedule)
}

type DebugDumpSnapshotCmd struct{}

func (cmd *DebugDumpSnapshotCmd) Run(ctx *cli.Context) error {
	snap, found, err := ctx.Store.GetSnapshot()
	if err != nil {
		return fmt.Errorf("failed to get snapshot: %w", err)
	}
	if !found {
		fmt.Println("No snapshot stored.")
		return nil
	}
	return dumpJSON(snap)
}

type DebugDumpEntriesCmd struct {
	Day   string `help:"Limit to a single day (YYYY-MM-DD or 'today')."`
	Limit int    `help:"Maximum number of entries." default:"20"`
}

func (cmd *DebugDumpEntriesCmd) Run(ctx *cli.Context) error {
	if cmd.Day != "" {
		day := cmd.Day
		if day == "today" {
			day = time.Now().Format(constants.DateFormat)
		}
		if _, err := time.Parse(constants.DateFormat, day); err != nil {
			return fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD or 'today')", cmd.Day)
		}
		entries, err := ctx.Store.GetEntriesForDay(day)
		if err != nil {
			return fmt.Errorf("failed to get entries: %w", err)
		}
		return dumpJSON(entries)
	}

	entries, err := ctx.Store.GetEntries(cmd.Limit)
	if err != nil {
		return fmt.Errorf("failed to get entries: %w", err)
	}
	return dumpJSON(entries)
}

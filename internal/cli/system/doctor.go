package system

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fmeurer/tomate/internal/backup"
	"github.com/fmeurer/tomate/internal/cli"
	"github.com/fmeurer/tomate/internal/constants"
	"github.com/fmeurer/tomate/internal/notifier"
	"github.com/fmeurer/tomate/internal/utils"
)

type DoctorCmd struct{}

type checkResult struct {
	name    string
	ok      bool
	detail  string
	warning bool
}

func (c *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("tomate doctor")
	fmt.Println()

	var results []checkResult

	// Database reachable
	dbPath := ctx.Store.GetConfigPath()
	if _, err := os.Stat(dbPath); err != nil {
		results = append(results, checkResult{
			name:   "database file",
			detail: fmt.Sprintf("not found at %s (run 'tomate init')", dbPath),
		})
		printResults(results)
		return fmt.Errorf("doctor found problems")
	}
	results = append(results, checkResult{name: "database file", ok: true, detail: dbPath})

	if err := ctx.Store.Load(); err != nil {
		results = append(results, checkResult{name: "database schema", detail: err.Error()})
		printResults(results)
		return fmt.Errorf("doctor found problems")
	}
	results = append(results, checkResult{name: "database schema", ok: true})

	// Settings parse and are sane
	settings, err := ctx.Store.GetSettings()
	switch {
	case err != nil:
		results = append(results, checkResult{name: "settings", detail: err.Error()})
	case settings.WorkMin <= 0 || settings.ShortBreakMin <= 0 || settings.LongBreakMin <= 0:
		results = append(results, checkResult{
			name:   "settings",
			detail: "work/break durations must be positive",
		})
	case !utils.ValidateTimezone(settings.Timezone):
		results = append(results, checkResult{
			name:   "settings",
			detail: fmt.Sprintf("unknown timezone %q", settings.Timezone),
		})
	default:
		results = append(results, checkResult{name: "settings", ok: true})
	}

	// Schedule parses and allows at least some active time
	schedule, err := ctx.Store.GetSchedule()
	if err != nil {
		results = append(results, checkResult{name: "schedule", detail: err.Error()})
	} else if err := schedule.Validate(); err != nil {
		results = append(results, checkResult{name: "schedule", detail: err.Error()})
	} else {
		anyDay := false
		for _, on := range schedule.WorkingDays {
			if on {
				anyDay = true
				break
			}
		}
		if !anyDay {
			results = append(results, checkResult{
				name:    "schedule",
				ok:      true,
				warning: true,
				detail:  "no working days enabled; reminders will never fire",
			})
		} else {
			results = append(results, checkResult{name: "schedule", ok: true})
		}
	}

	// Stored snapshot parses
	if snap, found, err := ctx.Store.GetSnapshot(); err != nil {
		results = append(results, checkResult{name: "engine snapshot", detail: err.Error()})
	} else if found && snap.IsRunning && snap.TimeLeft(time.Now()) <= 0 {
		results = append(results, checkResult{
			name:    "engine snapshot",
			ok:      true,
			warning: true,
			detail:  "a persisted session expired while no host was running",
		})
	} else {
		results = append(results, checkResult{name: "engine snapshot", ok: true})
	}

	// Backups
	mgr := backup.NewManager(dbPath)
	backups, err := mgr.ListBackups()
	if err != nil {
		results = append(results, checkResult{name: "backups", detail: err.Error()})
	} else if len(backups) == 0 {
		results = append(results, checkResult{
			name:    "backups",
			ok:      true,
			warning: true,
			detail:  "no backups yet (created automatically on 'tomate watch')",
		})
	} else {
		results = append(results, checkResult{
			name:   "backups",
			ok:     true,
			detail: fmt.Sprintf("%d available, newest %s", len(backups), backups[0].Timestamp.Format("2006-01-02 15:04")),
		})
	}

	// Notifier companion
	trayDir, err := notifier.GetTrayAppConfigDir()
	if err != nil {
		results = append(results, checkResult{name: "notifier", detail: err.Error()})
	} else if _, err := os.Stat(filepath.Join(trayDir, constants.NotifierLockfileName)); err != nil {
		results = append(results, checkResult{
			name:    "notifier",
			ok:      true,
			warning: true,
			detail:  "tomate-notifier is not running; desktop notifications disabled",
		})
	} else {
		results = append(results, checkResult{name: "notifier", ok: true})
	}

	printResults(results)

	for _, r := range results {
		if !r.ok {
			return fmt.Errorf("doctor found problems")
		}
	}
	fmt.Println("\nAll checks passed.")
	return nil
}

func printResults(results []checkResult) {
	for _, r := range results {
		mark := "✗"
		if r.ok {
			mark = "✓"
			if r.warning {
				mark = "!"
			}
		}
		line := fmt.Sprintf("  %s %s", mark, r.name)
		if r.detail != "" {
			line += ": " + r.detail
		}
		fmt.Println(line)
	}
}

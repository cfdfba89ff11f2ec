package system

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fmeurer/tomate/internal/cli"
	"github.com/fmeurer/tomate/internal/storage"
	"github.com/fmeurer/tomate/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"Source database path to migrate data from (.db or .json)."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	// If force flag is provided, delete existing database
	if c.Force {
		dbPath := ctx.Store.GetConfigPath()
		if c.Source != "" {
			absDbPath, err := filepath.Abs(dbPath)
			if err == nil {
				dbPath = absDbPath
			}
			absSource, err := filepath.Abs(c.Source)
			if err == nil && absSource == dbPath {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
			}
		}
		if _, err := os.Stat(dbPath); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized tomate storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Migrating data from: %s\n", c.Source)
		if err := c.migrateData(ctx, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Println("Migration completed successfully!")
	}

	return nil
}

func (c *InitCmd) migrateData(ctx *cli.Context, sourcePath string) error {
	var sourceStore storage.Provider
	if strings.HasSuffix(sourcePath, ".json") {
		sourceStore = storage.NewJSONStore(sourcePath)
	} else {
		sourceStore = sqlite.NewStore(sourcePath)
	}

	if err := sourceStore.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer sourceStore.Close()

	fmt.Println("  Migrating settings...")
	settings, err := sourceStore.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}

	fmt.Println("  Migrating schedule...")
	schedule, err := sourceStore.GetSchedule()
	if err != nil {
		return fmt.Errorf("failed to get schedule from source: %w", err)
	}
	if err := ctx.Store.SaveSchedule(schedule); err != nil {
		return fmt.Errorf("failed to save schedule to destination: %w", err)
	}

	fmt.Println("  Migrating log entries...")
	entries, err := sourceStore.GetEntries(0)
	if err != nil {
		return fmt.Errorf("failed to get entries from source: %w", err)
	}
	for _, entry := range entries {
		if err := ctx.Store.AddEntry(entry); err != nil {
			return fmt.Errorf("failed to add entry %s: %w", entry.ID, err)
		}
	}
	fmt.Printf("    Migrated %d entries\n", len(entries))

	fmt.Println("  Migrating reminders...")
	reminders, err := sourceStore.GetAllReminders()
	if err != nil {
		return fmt.Errorf("failed to get reminders from source: %w", err)
	}
	for _, r := range reminders {
		if err := ctx.Store.AddReminder(r); err != nil {
			return fmt.Errorf("failed to add reminder %s: %w", r.ID, err)
		}
	}
	fmt.Printf("    Migrated %d reminders\n", len(reminders))

	// A live engine snapshot is deliberately not migrated; a stale
	// countdown from another database would only confuse the engine.

	return nil
}

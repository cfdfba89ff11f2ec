package entries

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/fmeurer/tomate/internal/cli"
	"github.com/fmeurer/tomate/internal/constants"
	"github.com/fmeurer/tomate/internal/journal"
	"github.com/fmeurer/tomate/internal/models"
	"github.com/fmeurer/tomate/internal/utils"
)

type LogAddCmd struct {
	Label       string `arg:"" help:"What you did."`
	Description string `short:"d" help:"Longer description, #hashtags become tags."`
	Start       string `help:"Start time today (HH:MM)."`
	End         string `help:"End time today (HH:MM)."`
	Duration    int    `help:"Duration in minutes, ending now. Ignored when --start is given."`
}

func (c *LogAddCmd) Run(ctx *cli.Context) error {
	now := time.Now()

	var start time.Time
	var end *time.Time

	switch {
	case c.Start != "":
		startMin, err := utils.ParseTimeToMinutes(c.Start)
		if err != nil {
			return fmt.Errorf("invalid --start: %w", err)
		}
		start = utils.AtMinuteOfDay(now, startMin)

		if c.End != "" {
			endMin, err := utils.ParseTimeToMinutes(c.End)
			if err != nil {
				return fmt.Errorf("invalid --end: %w", err)
			}
			e := utils.AtMinuteOfDay(now, endMin)
			end = &e
		} else if c.Duration > 0 {
			e := start.Add(time.Duration(c.Duration) * time.Minute)
			end = &e
		}
	case c.Duration > 0:
		start = now.Add(-time.Duration(c.Duration) * time.Minute)
		end = &now
	default:
		// Open-ended entry starting now
		start = now
	}

	j := journal.New(ctx.Store)
	entry, err := j.LogManual(c.Label, c.Description, start, end)
	if err != nil {
		return err
	}

	if entry.End != nil {
		fmt.Printf("Logged %q (%s).\n", entry.Label, cli.FormatMinutes(entry.DurationMin()))
	} else {
		fmt.Printf("Logged %q (open-ended).\n", entry.Label)
	}
	if len(entry.Tags) > 0 {
		fmt.Printf("Tags: #%s\n", strings.Join(entry.Tags, " #"))
	}
	return nil
}

type LogListCmd struct {
	Day   string `help:"Limit to a single day (YYYY-MM-DD or 'today')."`
	Limit int    `help:"Maximum number of entries." default:"20"`
	Tag   string `help:"Only show entries carrying this tag."`
}

func (c *LogListCmd) Run(ctx *cli.Context) error {
	entries, err := c.fetch(ctx)
	if err != nil {
		return err
	}

	if c.Tag != "" {
		tag := strings.ToLower(strings.TrimPrefix(c.Tag, "#"))
		filtered := entries[:0]
		for _, e := range entries {
			for _, t := range e.Tags {
				if t == tag {
					filtered = append(filtered, e)
					break
				}
			}
		}
		entries = filtered
	}

	if len(entries) == 0 {
		fmt.Println("No entries found.")
		return nil
	}

	totalMin := 0
	for _, e := range entries {
		marker := " "
		if e.Kind == constants.EntryKindBreak {
			marker = "☕"
		}
		line := fmt.Sprintf("  %s %s  %s", marker, e.Start.Format("Mon 15:04"), e.Label)
		if d := e.DurationMin(); d > 0 {
			line += fmt.Sprintf("  (%s)", cli.FormatMinutes(d))
			if e.Kind == constants.EntryKindActivity {
				totalMin += d
			}
		}
		if len(e.Tags) > 0 {
			line += "  #" + strings.Join(e.Tags, " #")
		}
		line += fmt.Sprintf("  (%s)", humanize.Time(e.Start))
		fmt.Println(line)
	}

	if totalMin > 0 {
		fmt.Printf("\nTotal focused time: %s across %d entries\n", cli.FormatMinutes(totalMin), len(entries))
	}
	return nil
}

func (c *LogListCmd) fetch(ctx *cli.Context) ([]models.Entry, error) {
	if c.Day != "" {
		day := c.Day
		if day == "today" {
			day = time.Now().Format(constants.DateFormat)
		}
		if _, err := time.Parse(constants.DateFormat, day); err != nil {
			return nil, fmt.Errorf("invalid date: %s (expected YYYY-MM-DD or 'today')", c.Day)
		}
		return ctx.Store.GetEntriesForDay(day)
	}
	return ctx.Store.GetEntries(c.Limit)
}

type LogDeleteCmd struct {
	ID string `arg:"" help:"ID of the entry to delete."`
}

func (c *LogDeleteCmd) Run(ctx *cli.Context) error {
	entry, err := ctx.Store.GetEntry(c.ID)
	if err != nil {
		return err
	}
	if err := ctx.Store.DeleteEntry(c.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted entry %q.\n", entry.Label)
	return nil
}

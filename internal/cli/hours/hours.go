package hours

import (
	"fmt"
	"strings"
	"time"

	"github.com/fmeurer/tomate/internal/cli"
	"github.com/fmeurer/tomate/internal/models"
	"github.com/fmeurer/tomate/internal/schedule"
	"github.com/fmeurer/tomate/internal/utils"
)

type HoursShowCmd struct{}

func (c *HoursShowCmd) Run(ctx *cli.Context) error {
	cfg, err := ctx.Store.GetSchedule()
	if err != nil {
		return err
	}
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}

	fmt.Println("Active hours:")
	for d := time.Sunday; d <= time.Saturday; d++ {
		key := models.WeekdayKey(d)
		if !cfg.WorkingDays[key] {
			fmt.Printf("  %-10s off\n", d.String())
			continue
		}
		if cfg.UseComplexSchedule {
			ranges := cfg.ComplexRanges[key]
			if len(ranges) == 0 {
				fmt.Printf("  %-10s off (no ranges)\n", d.String())
				continue
			}
			var parts []string
			for _, r := range ranges {
				parts = append(parts, fmt.Sprintf("%s-%s", r.Start, r.End))
			}
			fmt.Printf("  %-10s %s\n", d.String(), strings.Join(parts, ", "))
		} else {
			fmt.Printf("  %-10s %s-%s\n", d.String(), cfg.SimpleRange.Start, cfg.SimpleRange.End)
		}
	}

	now, err := utils.NowFromSettings(settings)
	if err != nil {
		now = time.Now()
	}

	fmt.Println()
	if schedule.IsActive(cfg, now) {
		fmt.Println("Currently inside active hours.")
	} else if next, ok := schedule.NextActiveInstant(cfg, now); ok {
		fmt.Printf("Currently outside active hours. Next active: %s\n",
			next.Format("Monday 15:04"))
	} else {
		fmt.Println("Currently outside active hours, and no active time is configured.")
	}
	return nil
}

type HoursSetCmd struct {
	Days   string `help:"Comma-separated working days (e.g. mon,tue,wed,thu,fri)."`
	Start  string `help:"Daily start time for the simple schedule (HH:MM)."`
	End    string `help:"Daily end time for the simple schedule (HH:MM)."`
	Day    string `help:"Day to set per-day ranges for (switches to the complex schedule)."`
	Ranges string `help:"Comma-separated ranges for --day (e.g. 09:00-12:00,14:00-18:00)."`
	Simple bool   `help:"Switch back to the single daily range."`
}

func (c *HoursSetCmd) Run(ctx *cli.Context) error {
	cfg, err := ctx.Store.GetSchedule()
	if err != nil {
		return err
	}

	changed := false

	if c.Days != "" {
		weekdays, err := cli.ParseWeekdays(c.Days)
		if err != nil {
			return err
		}
		if cfg.WorkingDays == nil {
			cfg.WorkingDays = map[string]bool{}
		}
		for key := range cfg.WorkingDays {
			cfg.WorkingDays[key] = false
		}
		for _, wd := range weekdays {
			cfg.WorkingDays[models.WeekdayKey(wd)] = true
		}
		changed = true
	}

	if c.Start != "" || c.End != "" {
		if c.Start != "" {
			if !utils.ValidateTimeFormat(c.Start) {
				return fmt.Errorf("invalid --start %q (expected HH:MM)", c.Start)
			}
			cfg.SimpleRange.Start = c.Start
		}
		if c.End != "" {
			if !utils.ValidateTimeFormat(c.End) {
				return fmt.Errorf("invalid --end %q (expected HH:MM)", c.End)
			}
			cfg.SimpleRange.End = c.End
		}
		changed = true
	}

	if c.Day != "" {
		if c.Ranges == "" {
			return fmt.Errorf("--day requires --ranges")
		}
		weekdays, err := cli.ParseWeekdays(c.Day)
		if err != nil {
			return err
		}
		ranges, err := parseRanges(c.Ranges)
		if err != nil {
			return err
		}
		if cfg.ComplexRanges == nil {
			cfg.ComplexRanges = map[string][]models.TimeRange{}
		}
		if cfg.WorkingDays == nil {
			cfg.WorkingDays = map[string]bool{}
		}
		for _, wd := range weekdays {
			key := models.WeekdayKey(wd)
			cfg.ComplexRanges[key] = ranges
			cfg.WorkingDays[key] = true
		}
		cfg.UseComplexSchedule = true
		changed = true
	}

	if c.Simple {
		cfg.UseComplexSchedule = false
		changed = true
	}

	if !changed {
		return fmt.Errorf("nothing to change; see 'tomate hours set --help'")
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.SaveSchedule(cfg); err != nil {
		return err
	}
	fmt.Println("Active hours updated.")
	return nil
}

func parseRanges(s string) ([]models.TimeRange, error) {
	var ranges []models.TimeRange
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		bounds := strings.Split(part, "-")
		if len(bounds) != 2 {
			return nil, fmt.Errorf("invalid range %q (expected HH:MM-HH:MM)", part)
		}
		r := models.TimeRange{Start: strings.TrimSpace(bounds[0]), End: strings.TrimSpace(bounds[1])}
		if !utils.ValidateTimeFormat(r.Start) || !utils.ValidateTimeFormat(r.End) {
			return nil, fmt.Errorf("invalid range %q (expected HH:MM-HH:MM)", part)
		}
		startMin, _ := utils.ParseTimeToMinutes(r.Start)
		endMin, _ := utils.ParseTimeToMinutes(r.End)
		if endMin <= startMin {
			return nil, fmt.Errorf("range %q ends before it starts", part)
		}
		ranges = append(ranges, r)
	}
	return ranges, nil
}

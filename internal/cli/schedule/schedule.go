package schedule

import (
	"fmt"

	"github.com/julianstephens/pillminder/internal/cli"
	"github.com/julianstephens/pillminder/internal/utils"
)

type ScheduleCmd struct {
	Date string `help:"Date to show (YYYY-MM-DD). Defaults to today." default:""`
}

func (c *ScheduleCmd) Run(ctx *cli.Context) error {
	if c.Date != "" && !utils.ValidateDateFormat(c.Date) {
		return fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", c.Date)
	}

	sched, err := ctx.Session.ScheduleFor(ctx.Context(), c.Date)
	if err != nil {
		return fmt.Errorf("failed to get schedule: %w", err)
	}

	date := sched.Date
	if date == "" {
		date = c.Date
	}
	ctx.Printf("Schedule for %s:\n", date)
	if len(sched.Items) == 0 {
		ctx.Println("  No scheduled doses for this date.")
		return nil
	}
	for _, item := range sched.Items {
		ctx.Printf("  %s  %s (%s)\n", item.Time, item.Name, item.Dosage)
	}
	return nil
}

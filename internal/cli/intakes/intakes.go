package intakes

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/julianstephens/pillminder/internal/cli"
	"github.com/julianstephens/pillminder/internal/models"
	"github.com/julianstephens/pillminder/internal/utils"
)

type TakeCmd struct {
	MedicationID string `arg:"" help:"ID of the medication taken." name:"medication-id"`
	Time         string `arg:"" help:"Scheduled dose time (HH:MM)."`
}

func (c *TakeCmd) Run(ctx *cli.Context) error {
	if err := ctx.Writable(); err != nil {
		return err
	}
	if !utils.ValidateTimeFormat(c.Time) {
		return fmt.Errorf("%w: %q", models.ErrInvalidTime, c.Time)
	}

	intake, err := ctx.Session.MarkTaken(ctx.Context(), models.ParseID(c.MedicationID), c.Time)
	if err != nil {
		return err
	}
	ctx.Printf("Marked medication %s taken for %s on %s\n", c.MedicationID, intake.Time, intake.Date)
	return nil
}

type HistoryCmd struct {
	Limit int `help:"Show at most this many entries (0 for all)." default:"0"`
}

func (c *HistoryCmd) Run(ctx *cli.Context) error {
	intakes, err := ctx.Session.History(ctx.Context())
	if err != nil {
		return fmt.Errorf("failed to get history: %w", err)
	}
	if len(intakes) == 0 {
		ctx.Println("No intakes logged yet.")
		return nil
	}
	if c.Limit > 0 && len(intakes) > c.Limit {
		intakes = intakes[:c.Limit]
	}

	ctx.Println("History:")
	for _, in := range intakes {
		ctx.Printf("  %s %s  medication %s%s\n", in.Date, in.Time, in.MedicationID, loggedAgo(in.TakenAt))
	}
	return nil
}

func loggedAgo(takenAt string) string {
	t, err := time.Parse(time.RFC3339, takenAt)
	if err != nil {
		return ""
	}
	return " (logged " + humanize.Time(t) + ")"
}

package meds

import (
	"fmt"
	"strings"

	"github.com/julianstephens/pillminder/internal/cli"
	"github.com/julianstephens/pillminder/internal/models"
)

type ListCmd struct {
	ShowIDs bool `help:"Show medication IDs." name:"show-ids"`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	meds, err := ctx.Session.Medications(ctx.Context())
	if err != nil {
		return fmt.Errorf("failed to get medications: %w", err)
	}
	if len(meds) == 0 {
		ctx.Println("No medications found")
		return nil
	}

	ctx.Println("Medications:")
	for _, med := range meds {
		idStr := ""
		if c.ShowIDs && !med.ID.IsZero() {
			idStr = fmt.Sprintf(" (ID: %s)", med.ID)
		}
		ctx.Printf("  %s%s - %s at %s (%s)\n",
			med.Name, idStr, med.Dosage, strings.Join(med.Times, ", "), med.FormatDays())
		if med.Notes != "" {
			ctx.Printf("      Notes: %s\n", med.Notes)
		}
	}
	return nil
}

type AddCmd struct {
	Name   string   `arg:"" help:"Medication name."`
	Dosage string   `help:"Dosage, e.g. 500mg." required:""`
	Time   []string `help:"Dose time (HH:MM). Repeat for several times." short:"t" default:"08:00"`
	Days   string   `help:"Comma-separated weekdays (mon,tue,... or 0-6 from Monday). Defaults to every day."`
	Notes  string   `help:"Free-form notes."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	if err := ctx.Writable(); err != nil {
		return err
	}

	draft := models.NewDraft()
	draft.Name = c.Name
	draft.Dosage = c.Dosage
	draft.Notes = c.Notes
	draft.Times = nil
	for _, t := range c.Time {
		if err := draft.AddTime(t); err != nil {
			return err
		}
	}
	if c.Days != "" {
		days, err := cli.ParseDays(c.Days)
		if err != nil {
			return err
		}
		draft.Days = days
	}

	med, err := ctx.Session.AddMedication(ctx.Context(), draft)
	if err != nil {
		return err
	}
	ctx.Printf("Added medication: %s (ID: %s)\n", med, med.ID)
	return nil
}

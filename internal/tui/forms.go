package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/pillminder/internal/constants"
	"github.com/julianstephens/pillminder/internal/utils"
)

type DraftFormModel struct {
	Name   string
	Dosage string
	Days   []int
	Notes  string
}

type TimeFormModel struct {
	Time string
}

type PermissionFormModel struct {
	Allow bool
}

// NewDraftForm edits everything on a draft except its times.
func NewDraftForm(fm *DraftFormModel) *huh.Form {
	days := make([]huh.Option[int], len(constants.Weekdays))
	for i, label := range constants.Weekdays {
		days[i] = huh.NewOption(label, i)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&fm.Name),
			huh.NewInput().
				Title("Dosage").
				Placeholder("e.g. 1 pill, 500mg").
				Value(&fm.Dosage),
			huh.NewMultiSelect[int]().
				Title("Days").
				Options(days...).
				Value(&fm.Days),
			huh.NewText().
				Title("Notes").
				Value(&fm.Notes),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewTimeForm prompts for one HH:MM dose time.
func NewTimeForm(fm *TimeFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Dose time (HH:MM)").
				Value(&fm.Time).
				Validate(func(s string) error {
					if !utils.ValidateTimeFormat(strings.TrimSpace(s)) {
						return errors.New("time must be HH:MM")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewPermissionForm asks once whether reminders may be shown.
func NewPermissionForm(fm *PermissionFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Allow medication reminders?").
				Description("pillminder will notify you at each remaining dose time today.").
				Affirmative("Allow").
				Negative("Block").
				Value(&fm.Allow),
		),
	).WithTheme(huh.ThemeDracula())
}

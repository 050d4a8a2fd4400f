package models

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/julianstephens/pillminder/internal/constants"
	"github.com/julianstephens/pillminder/internal/utils"
)

var (
	ErrInvalidTime = errors.New("invalid time (expected HH:MM)")
	ErrInvalidDay  = errors.New("invalid day (expected 0-6)")
)

// Draft holds the Add Medication form state before it is submitted.
type Draft struct {
	Name   string
	Dosage string
	Times  []string
	Days   []int
	Notes  string
}

// NewDraft returns the default draft: one 08:00 dose on every day.
func NewDraft() *Draft {
	d := &Draft{}
	d.Reset()
	return d
}

// Reset restores the default draft.
func (d *Draft) Reset() {
	d.Name = ""
	d.Dosage = ""
	d.Notes = ""
	d.Times = []string{constants.DefaultDoseTime}
	d.Days = allDays()
}

// AddTime appends a dose time. Times already in the set are ignored.
func (d *Draft) AddTime(t string) error {
	parsed, err := utils.ParseTime(strings.TrimSpace(t))
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTime, t)
	}
	normalized := parsed.Format(constants.TimeFormat)
	if slices.Contains(d.Times, normalized) {
		return nil
	}
	d.Times = append(d.Times, normalized)
	return nil
}

// RemoveTime drops a dose time, leaving the rest of the set untouched.
func (d *Draft) RemoveTime(t string) {
	d.Times = slices.DeleteFunc(d.Times, func(x string) bool { return x == t })
}

// ToggleDay flips a Monday-first day index in or out of the active set.
func (d *Draft) ToggleDay(day int) error {
	if day < 0 || day >= len(constants.Weekdays) {
		return fmt.Errorf("%w: %d", ErrInvalidDay, day)
	}
	if i := slices.Index(d.Days, day); i >= 0 {
		d.Days = slices.Delete(d.Days, i, i+1)
		return nil
	}
	d.Days = append(d.Days, day)
	return nil
}

// Ready reports whether the draft may be submitted: name, dosage and at
// least one time are required.
func (d *Draft) Ready() bool {
	return strings.TrimSpace(d.Name) != "" &&
		strings.TrimSpace(d.Dosage) != "" &&
		len(d.Times) > 0
}

// Medication builds the create payload. Days are sent sorted ascending.
func (d *Draft) Medication() NewMedication {
	days := slices.Clone(d.Days)
	slices.Sort(days)
	if days == nil {
		days = []int{}
	}
	return NewMedication{
		Name:   d.Name,
		Dosage: d.Dosage,
		Times:  slices.Clone(d.Times),
		Days:   days,
		Notes:  d.Notes,
		Active: true,
	}
}

func allDays() []int {
	days := make([]int, len(constants.Weekdays))
	for i := range days {
		days[i] = i
	}
	return days
}

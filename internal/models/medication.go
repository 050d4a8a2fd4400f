package models

import (
	"fmt"
	"strings"

	"github.com/julianstephens/pillminder/internal/constants"
)

// Medication is a user-defined drug entry. The backend owns it; the client
// only creates new ones and caches what it loaded.
type Medication struct {
	ID     ID       `json:"id,omitempty"`
	Name   string   `json:"name"`
	Dosage string   `json:"dosage"`
	Times  []string `json:"times"`          // HH:MM, unique
	Days   []int    `json:"days,omitempty"` // 0-6, Monday-first
	Notes  string   `json:"notes,omitempty"`
	Active bool     `json:"active"`
}

// NewMedication is the create payload: a Medication minus its id.
type NewMedication struct {
	Name   string   `json:"name"`
	Dosage string   `json:"dosage"`
	Times  []string `json:"times"`
	Days   []int    `json:"days"`
	Notes  string   `json:"notes"`
	Active bool     `json:"active"`
}

// FormatDays renders the active days as Monday-first labels.
// A medication reconstructed from a shared schedule has no days and renders as "-".
func (m Medication) FormatDays() string {
	if m.Days == nil {
		return "-"
	}
	if len(m.Days) == len(constants.Weekdays) {
		return "every day"
	}
	labels := make([]string, 0, len(m.Days))
	for _, d := range m.Days {
		if d >= 0 && d < len(constants.Weekdays) {
			labels = append(labels, constants.Weekdays[d])
		}
	}
	return strings.Join(labels, ",")
}

func (m Medication) String() string {
	return fmt.Sprintf("%s (%s) at %s", m.Name, m.Dosage, strings.Join(m.Times, ", "))
}

package models

import "fmt"

// Intake is a logged dose. Append-only from the client's point of view.
type Intake struct {
	ID           ID     `json:"id,omitempty"`
	MedicationID ID     `json:"medication_id"`
	Time         string `json:"time"`     // HH:MM
	Date         string `json:"date"`     // YYYY-MM-DD, local
	TakenAt      string `json:"taken_at"` // ISO-8601
}

// NewIntake is the body of a log-intake request.
type NewIntake struct {
	MedicationID ID     `json:"medication_id"`
	Time         string `json:"time"`
	Date         string `json:"date"`
	TakenAt      string `json:"taken_at"`
}

// Key identifies an intake for display, falling back to its natural key
// when the backend did not return an id.
func (i Intake) Key() string {
	if !i.ID.IsZero() {
		return i.ID.String()
	}
	return fmt.Sprintf("%s-%s-%s", i.MedicationID, i.Date, i.Time)
}

package models

import (
	"fmt"

	"github.com/julianstephens/pillminder/internal/constants"
)

// Schedule is the backend's read model of the doses planned for one date.
type Schedule struct {
	Date  string         `json:"date"`
	Items []ScheduleItem `json:"items"`
}

type ScheduleItem struct {
	MedicationID ID     `json:"medication_id"`
	Name         string `json:"name"`
	Dosage       string `json:"dosage"`
	Time         string `json:"time"`
}

// Notification is what the platform notifier displays.
type Notification struct {
	Title string
	Body  string
	Key   string
}

// ReminderKey is the deterministic tag a notification center can dedupe on.
func ReminderKey(medicationID ID, time, date string) string {
	return fmt.Sprintf("%s-%s-%s", medicationID, time, date)
}

// Notification builds the reminder for this item on the given date.
func (i ScheduleItem) Notification(date string) Notification {
	return Notification{
		Title: constants.ReminderTitle,
		Body:  fmt.Sprintf("%s • %s at %s", i.Name, i.Dosage, i.Time),
		Key:   ReminderKey(i.MedicationID, i.Time, date),
	}
}

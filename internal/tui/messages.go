package tui

import (
	"github.com/julianstephens/pillminder/internal/models"
	"github.com/julianstephens/pillminder/internal/schedule"
)

type todayLoadedMsg struct {
	day schedule.Day
	err error
}

type calendarLoadedMsg struct {
	date     string
	schedule *models.Schedule
	err      error
}

type historyLoadedMsg struct {
	intakes []models.Intake
	err     error
}

type medicationAddedMsg struct {
	medication *models.Medication
	err        error
}

type takenMsg struct {
	err error
}

type shareCreatedMsg struct {
	url string
	err error
}

type copiedMsg struct {
	err error
}

type reminderFiredMsg struct {
	notification models.Notification
}

type rolloverMsg struct{}

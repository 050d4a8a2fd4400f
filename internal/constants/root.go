package constants

import "time"

// SessionState represents the current tab or modal of the TUI
type SessionState int

const (
	AppName        = "pillminder"
	Version        = "v0.1.0"
	DefaultConfig  = "~/.config/pillminder/pillminder.db"
	DefaultBackend = "http://localhost:8000"
	DefaultOrigin  = "http://localhost:5173"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// DefaultDoseTime seeds a fresh Add Medication draft
	DefaultDoseTime = "08:00"

	// API client
	RequestTimeout  = 15 * time.Second
	RequestIDHeader = "X-Request-ID"
	MaxResponseSize = 1 << 20

	// Notify constants
	ReminderTitle          = "Medication Reminder"
	NotifierLockfileName   = "pillminder-tray.lock"
	NotificationDurationMs = 8000
	TrayAppIdentifier      = "com.julianstephens.pillminder"
	TrayExecutablePrefix   = "pillminder-tray"
	TraySecretHeader       = "X-Pillminder-Secret"

	// Settings keys
	SettingNotificationPermission = "notification_permission"
	SettingBackendURL             = "backend_url"
	SettingWebOrigin              = "web_origin"

	// Rollover reloads the day's schedule at local midnight
	RolloverSpec = "0 0 0 * * *"
)

// Session States
const (
	StateToday SessionState = iota
	StateAdd
	StateCalendar
	StateHistory
	StateShare
	StateReminders
	StateEditDraft
	StateAddTime
	StateConfirmPermission
	StateAlert
)

// Weekdays are the Monday-first labels for day indices 0-6
var Weekdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

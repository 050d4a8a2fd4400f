package models

// Settings are the locally persisted client preferences. Domain data never lives here.
type Settings struct {
	BackendURL             string     `json:"backend_url"`             // base URL of the pillminder API, empty for the default
	WebOrigin              string     `json:"web_origin"`              // origin used to build share links when the server omits one
	NotificationPermission Permission `json:"notification_permission"` // reminder permission state
}

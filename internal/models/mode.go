package models

import "strings"

// Mode is either owner mode or a caregiver's shared view bound to a token.
// The zero value is owner mode. A Mode is fixed for the whole session.
type Mode struct {
	token string
}

// NormalMode is the owner's read-write mode.
func NormalMode() Mode { return Mode{} }

// SharedMode is the read-only caregiver mode. A blank token means owner mode.
func SharedMode(token string) Mode {
	return Mode{token: strings.TrimSpace(token)}
}

// Shared returns the share token and whether the session is read-only.
func (m Mode) Shared() (string, bool) {
	return m.token, m.token != ""
}

// ReadOnly reports whether mutating actions must be disabled.
func (m Mode) ReadOnly() bool {
	return m.token != ""
}

func (m Mode) String() string {
	if m.ReadOnly() {
		return "shared"
	}
	return "normal"
}

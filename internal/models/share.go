package models

import (
	"net/url"
	"strings"
)

// ShareLink grants read-only access to the owner's schedule and history.
// It is never persisted; every request creates a fresh one.
type ShareLink struct {
	Token string `json:"token"`
	URL   string `json:"url,omitempty"`
}

// Resolve returns the URL to hand to a caregiver. The server URL wins when it
// is present and is not just the token echoed back; otherwise the link is
// built from the web origin.
func (l ShareLink) Resolve(origin string) string {
	if l.URL != "" && l.URL != l.Token {
		return l.URL
	}
	return strings.TrimRight(origin, "/") + "/?share=" + url.QueryEscape(l.Token)
}

package cli

import (
	"strings"

	"github.com/julianstephens/pillminder/internal/constants"
	"github.com/julianstephens/pillminder/internal/models"
)

// Flags are the connection options given on the command line or through
// PILLMINDER_* environment variables.
type Flags struct {
	BackendURL string
	WebOrigin  string
	Share      string
}

type Resolved struct {
	BackendURL string
	WebOrigin  string
	Mode       models.Mode
}

// Resolve applies flag/env > stored setting > default for each option.
// A non-empty share token opens the caregiver view.
func Resolve(f Flags, stored models.Settings) Resolved {
	r := Resolved{
		BackendURL: firstNonEmpty(f.BackendURL, stored.BackendURL, constants.DefaultBackend),
		WebOrigin:  firstNonEmpty(f.WebOrigin, stored.WebOrigin, constants.DefaultOrigin),
		Mode:       models.NormalMode(),
	}
	if token := strings.TrimSpace(f.Share); token != "" {
		r.Mode = models.SharedMode(token)
	}
	return r
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

package settings

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/julianstephens/pillminder/internal/cli"
	"github.com/julianstephens/pillminder/internal/constants"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	BackendURL *string `help:"Backend base URL to store. An empty value restores the default." name:"set-backend-url"`
	WebOrigin  *string `help:"Web origin used to build share links. An empty value restores the default." name:"set-web-origin"`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings(ctx.Context())
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		ctx.Println("Current Settings:")
		ctx.Printf("  Backend URL:  %s\n", orDefault(settings.BackendURL, constants.DefaultBackend))
		ctx.Printf("  Web Origin:   %s\n", orDefault(settings.WebOrigin, constants.DefaultOrigin))
		ctx.Printf("  Reminders:    %s\n", settings.NotificationPermission)
		ctx.Printf("\nStored at %s\n", ctx.Store.GetConfigPath())
		return nil
	}

	updated := false
	if c.BackendURL != nil {
		v, err := normalizeURL(*c.BackendURL)
		if err != nil {
			return fmt.Errorf("invalid backend url: %w", err)
		}
		settings.BackendURL = v
		updated = true
	}
	if c.WebOrigin != nil {
		v, err := normalizeURL(*c.WebOrigin)
		if err != nil {
			return fmt.Errorf("invalid web origin: %w", err)
		}
		settings.WebOrigin = v
		updated = true
	}

	if updated {
		if err := ctx.Store.SaveSettings(ctx.Context(), settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		ctx.Println("Settings updated successfully.")
	} else {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
	}
	return nil
}

func normalizeURL(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	u, err := url.ParseRequestURI(s)
	if err != nil {
		return "", err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	return strings.TrimRight(s, "/"), nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def + " (default)"
	}
	return v
}

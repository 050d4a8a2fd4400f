package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/pillminder/internal/constants"
	"github.com/julianstephens/pillminder/internal/notifier"
	"github.com/julianstephens/pillminder/internal/session"
	"github.com/julianstephens/pillminder/internal/storage"
)

type Context struct {
	Session   *session.Session
	Store     storage.Provider
	Notifier  notifier.Notifier
	WebOrigin string
	Out       io.Writer
	Base      context.Context
	Now       func() time.Time
}

// Clock returns the injected clock, or time.Now.
func (c *Context) Clock() func() time.Time {
	if c.Now == nil {
		return time.Now
	}
	return c.Now
}

// Context returns the parent context for backend calls.
func (c *Context) Context() context.Context {
	if c.Base == nil {
		return context.Background()
	}
	return c.Base
}

func (c *Context) Writer() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Writer(), format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Writer(), args...)
}

// Writable fails with session.ErrReadOnly when the session was opened
// through a share token.
func (c *Context) Writable() error {
	if c.Session.Mode().ReadOnly() {
		return session.ErrReadOnly
	}
	return nil
}

// ParseDays parses a comma-separated list of weekdays into Monday-first
// indices. Names ("mon", "monday") and indices 0-6 are accepted.
func ParseDays(s string) ([]int, error) {
	dayMap := map[string]int{
		"mon": 0, "monday": 0,
		"tue": 1, "tuesday": 1,
		"wed": 2, "wednesday": 2,
		"thu": 3, "thursday": 3,
		"fri": 4, "friday": 4,
		"sat": 5, "saturday": 5,
		"sun": 6, "sunday": 6,
	}

	seen := make(map[int]bool)
	var days []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if part == "" {
			continue
		}
		day, ok := dayMap[part]
		if !ok {
			num, err := strconv.Atoi(part)
			if err != nil || num < 0 || num >= len(constants.Weekdays) {
				return nil, fmt.Errorf("invalid weekday: %s", part)
			}
			day = num
		}
		if !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("no weekdays in %q", s)
	}
	return days, nil
}

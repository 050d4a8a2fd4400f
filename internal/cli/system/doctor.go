package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/pillminder/internal/cli"
	"github.com/julianstephens/pillminder/internal/logger"
	"github.com/julianstephens/pillminder/internal/models"
	"github.com/julianstephens/pillminder/internal/notifier"
)

var errChecksFailed = errors.New("one or more health checks failed")

type DoctorCmd struct{}

type check struct {
	name string
	run  func(*cli.Context) error
	// warnOnly checks never fail the run
	warnOnly bool
}

var checks = []check{
	{name: "Settings database", run: checkStore},
	{name: "Backend reachable", run: checkBackend},
	{name: "Notifications", run: checkNotifier, warnOnly: true},
	{name: "Reminder permission", run: checkPermission, warnOnly: true},
	{name: "Clock/timezone", run: checkClockTimezone},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	for _, c := range checks {
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	ctx.Println()
	if path := logger.Path(); path != "" {
		ctx.Printf("Logs: %s\n", path)
	}
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return errChecksFailed
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkStore(ctx *cli.Context) error {
	if err := ctx.Store.Load(ctx.Context()); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	if _, err := ctx.Store.GetSettings(ctx.Context()); err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}
	return nil
}

func checkBackend(ctx *cli.Context) error {
	_, err := ctx.Session.ScheduleFor(ctx.Context(), "")
	return err
}

func checkNotifier(ctx *cli.Context) error {
	if ctx.Notifier == nil {
		return notifier.ErrUnsupported
	}
	return ctx.Notifier.Supported()
}

func checkPermission(ctx *cli.Context) error {
	p, err := ctx.Store.GetPermission(ctx.Context())
	if err != nil {
		return err
	}
	if p != models.PermissionGranted {
		return fmt.Errorf("reminders are %s", p)
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := ctx.Clock()()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}

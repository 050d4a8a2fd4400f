package reminders

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/dustin/go-humanize"

	"github.com/julianstephens/pillminder/internal/cli"
	"github.com/julianstephens/pillminder/internal/logger"
	"github.com/julianstephens/pillminder/internal/models"
	"github.com/julianstephens/pillminder/internal/notifier"
	"github.com/julianstephens/pillminder/internal/reminder"
	"github.com/julianstephens/pillminder/internal/tui"
)

var ErrNotEnabled = errors.New("reminders are not enabled; run 'pillminder reminders enable' first")

var runPrompt = func(f *huh.Form) error { return f.Run() }

func supported(n notifier.Notifier) error {
	if n == nil {
		return notifier.ErrUnsupported
	}
	return n.Supported()
}

type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	permission, err := ctx.Store.GetPermission(ctx.Context())
	if err != nil {
		return fmt.Errorf("failed to get permission: %w", err)
	}

	ctx.Printf("Permission:    %s\n", permission)
	if err := supported(ctx.Notifier); err != nil {
		ctx.Printf("Notifications: unavailable (%v)\n", err)
	} else {
		ctx.Println("Notifications: available")
	}

	if permission != models.PermissionGranted {
		if permission == models.PermissionUnrequested {
			ctx.Println("\nRun 'pillminder reminders enable' to allow medication reminders.")
		}
		return nil
	}

	sched, err := ctx.Session.ScheduleFor(ctx.Context(), "")
	if err != nil {
		return fmt.Errorf("failed to get schedule: %w", err)
	}

	now := ctx.Clock()
	s := reminder.New(nil, reminder.WithClock(now))
	s.SetPermission(permission)
	s.Replace(sched)
	upcoming := s.Upcoming()
	s.Close()

	if len(upcoming) == 0 {
		ctx.Println("\nNo more reminders today.")
		return nil
	}
	ctx.Println("\nUpcoming today:")
	for _, u := range upcoming {
		ctx.Printf("  %s  %s • %s (%s)\n", u.Item.Time, u.Item.Name, u.Item.Dosage,
			humanize.RelTime(u.At, now(), "ago", "from now"))
	}
	return nil
}

type EnableCmd struct {
	Yes  bool `help:"Allow reminders without prompting." short:"y"`
	Deny bool `help:"Block reminders without prompting."`
}

func (c *EnableCmd) Run(ctx *cli.Context) error {
	if err := supported(ctx.Notifier); err != nil {
		return fmt.Errorf("cannot enable reminders: %w", err)
	}

	current, err := ctx.Store.GetPermission(ctx.Context())
	if err != nil {
		return fmt.Errorf("failed to get permission: %w", err)
	}
	if current != models.PermissionUnrequested {
		ctx.Printf("Reminder permission was already %s.\n", current)
		return nil
	}

	allow := !c.Deny
	if !c.Yes && !c.Deny {
		fm := &tui.PermissionFormModel{Allow: true}
		if err := runPrompt(tui.NewPermissionForm(fm)); err != nil {
			return fmt.Errorf("interactive form error: %w", err)
		}
		allow = fm.Allow
	}

	next := models.PermissionDenied
	if allow {
		next = models.PermissionGranted
	}
	if err := ctx.Store.SavePermission(ctx.Context(), next); err != nil {
		return fmt.Errorf("failed to save permission: %w", err)
	}
	ctx.Printf("Reminder permission %s.\n", next)
	return nil
}

// watching runs once reminders are armed and the wait begins.
var watching = func(armed int) {}

// WatchCmd keeps today's reminders armed without the TUI until interrupted.
type WatchCmd struct {
	Console bool `help:"Print reminders to stdout instead of the tray helper."`
}

func (c *WatchCmd) Run(ctx *cli.Context) error {
	permission, err := ctx.Store.GetPermission(ctx.Context())
	if err != nil {
		return fmt.Errorf("failed to get permission: %w", err)
	}
	if permission != models.PermissionGranted {
		return ErrNotEnabled
	}

	n := ctx.Notifier
	if c.Console || n == nil {
		n = notifier.NewConsole(ctx.Writer())
	}
	if err := n.Supported(); err != nil {
		return fmt.Errorf("cannot deliver reminders: %w", err)
	}

	runCtx, stop := signal.NotifyContext(ctx.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := reminder.New(n,
		reminder.WithClock(ctx.Clock()),
		reminder.WithOnFire(func(note models.Notification) {
			logger.Info("Reminder fired", "key", note.Key)
		}),
	)
	s.SetPermission(permission)
	defer s.Close()

	// an in-flight load is never canceled; stopping only ends the wait
	loadCtx := context.WithoutCancel(runCtx)
	reload := func() int {
		sched, err := ctx.Session.ScheduleFor(loadCtx, "")
		if err != nil {
			logger.Warn("Failed to load today's schedule", "error", err)
			return 0
		}
		return s.Replace(sched)
	}

	armed := reload()
	ctx.Printf("Watching %d reminder(s) for today. Press Ctrl+C to stop.\n", armed)
	watching(armed)

	rollover := reminder.NewRollover(time.Local)
	if err := rollover.Start(func() {
		logger.Info("Day rolled over", "armed", reload())
	}); err != nil {
		logger.Warn("Midnight rollover disabled", "error", err)
	} else {
		defer rollover.Stop()
	}

	<-runCtx.Done()
	ctx.Println("Stopped watching reminders.")
	return nil
}

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/pillminder/internal/api"
	"github.com/julianstephens/pillminder/internal/cli"
	"github.com/julianstephens/pillminder/internal/cli/intakes"
	"github.com/julianstephens/pillminder/internal/cli/meds"
	"github.com/julianstephens/pillminder/internal/cli/reminders"
	"github.com/julianstephens/pillminder/internal/cli/schedule"
	"github.com/julianstephens/pillminder/internal/cli/settings"
	"github.com/julianstephens/pillminder/internal/cli/share"
	"github.com/julianstephens/pillminder/internal/cli/system"
	"github.com/julianstephens/pillminder/internal/constants"
	apperrors "github.com/julianstephens/pillminder/internal/errors"
	"github.com/julianstephens/pillminder/internal/logger"
	"github.com/julianstephens/pillminder/internal/models"
	"github.com/julianstephens/pillminder/internal/notifier"
	"github.com/julianstephens/pillminder/internal/session"
	"github.com/julianstephens/pillminder/internal/storage"
)

var CLI struct {
	Version    kong.VersionFlag
	Config     string `help:"Settings database path." type:"path" default:"~/.config/pillminder/pillminder.db" env:"PILLMINDER_CONFIG"`
	BackendURL string `help:"Backend base URL. Overrides the stored setting." name:"backend-url" env:"PILLMINDER_BACKEND_URL"`
	WebOrigin  string `help:"Web origin used to build share links. Overrides the stored setting." name:"web-origin" env:"PILLMINDER_WEB_ORIGIN"`
	ShareToken string `help:"Open the read-only caregiver view for this share token." name:"share" env:"PILLMINDER_SHARE"`
	Debug      bool   `help:"Mirror debug logs to stderr." env:"PILLMINDER_DEBUG"`

	Init     system.InitCmd       `cmd:"" help:"Initialize pillminder storage."`
	Doctor   system.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
	Tui      system.TuiCmd        `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Schedule schedule.ScheduleCmd `cmd:"" help:"Show the dose schedule for a day."`
	Take     intakes.TakeCmd      `cmd:"" help:"Mark a dose as taken."`
	History  intakes.HistoryCmd   `cmd:"" help:"Show logged intakes."`
	Meds     struct {
		List meds.ListCmd `cmd:"" help:"List medications." default:"1"`
		Add  meds.AddCmd  `cmd:"" help:"Add a medication."`
	} `cmd:"" help:"Manage medications."`
	Share     share.ShareCmd `cmd:"" help:"Create a read-only link for a caregiver."`
	Reminders struct {
		Status reminders.StatusCmd `cmd:"" help:"Show reminder permission and today's upcoming reminders." default:"1"`
		Enable reminders.EnableCmd `cmd:"" help:"Allow or block medication reminders."`
		Watch  reminders.WatchCmd  `cmd:"" help:"Deliver today's reminders without the TUI."`
	} `cmd:"" help:"Manage medication reminders."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
}

func main() {
	ctx := kong.Parse(&CLI, options()...)

	if err := logger.Init(logger.Config{Debug: CLI.Debug, Dir: filepath.Dir(CLI.Config)}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: file logging disabled: %v\n", err)
	}

	apperrors.Fatal(run(ctx))
}

func options() []kong.Option {
	return []kong.Option{
		kong.Name(constants.AppName),
		kong.Description("Medication reminders and intake log for the terminal"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	}
}

// run owns every resource so deferred cleanup finishes before main exits.
func run(ctx *kong.Context) error {
	store := storage.NewSQLiteStore(CLI.Config)
	defer store.Close()

	// init creates the database itself; every other command loads it,
	// creating it on first run
	var stored models.Settings
	if ctx.Command() != "init" {
		bg := context.Background()
		err := store.Load(bg)
		if errors.Is(err, storage.ErrNotInitialized) {
			logger.Info("Creating settings database", "path", CLI.Config)
			err = store.Init(bg)
		}
		if err != nil {
			return err
		}
		if stored, err = store.GetSettings(bg); err != nil {
			return fmt.Errorf("failed to read settings: %w", err)
		}
	}

	resolved := cli.Resolve(cli.Flags{
		BackendURL: CLI.BackendURL,
		WebOrigin:  CLI.WebOrigin,
		Share:      CLI.ShareToken,
	}, stored)

	client, err := api.New(resolved.BackendURL)
	if err != nil {
		return err
	}
	logger.Debug("Starting", "command", ctx.Command(), "backend", client.BaseURL(), "mode", resolved.Mode)

	return ctx.Run(&cli.Context{
		Session:   session.New(client, resolved.Mode),
		Store:     store,
		Notifier:  notifier.NewTray(),
		WebOrigin: resolved.WebOrigin,
		Out:       os.Stdout,
	})
}

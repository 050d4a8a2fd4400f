package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/pillminder/internal/backup"
	"github.com/julianstephens/pillminder/internal/cli"
	"github.com/julianstephens/pillminder/internal/logger"
)

type InitCmd struct {
	Force    bool `help:"Force reset by deleting the existing settings database before initialization."`
	NoBackup bool `help:"Skip the snapshot normally taken before a forced reset." name:"no-backup"`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		dbPath := ctx.Store.GetConfigPath()
		if _, err := os.Stat(dbPath); err == nil {
			if !c.NoBackup {
				snap, err := backup.NewManager(dbPath).Create()
				if err != nil {
					return fmt.Errorf("failed to back up existing database (use --no-backup to skip): %w", err)
				}
				logger.Info("Settings snapshot written", "path", snap)
				ctx.Printf("Backed up existing database to: %s\n", snap)
			}
			// close first so the file is not held open
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			ctx.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(ctx.Context()); err != nil {
		return err
	}
	ctx.Printf("Initialized pillminder storage at: %s\n", ctx.Store.GetConfigPath())
	return nil
}

package storage

import (
	"context"

	"github.com/julianstephens/pillminder/internal/models"
)

type Provider interface {
	// Lifecycle
	Init(ctx context.Context) error
	Load(ctx context.Context) error
	Close() error

	// Settings
	GetSettings(ctx context.Context) (models.Settings, error)
	SaveSettings(ctx context.Context, settings models.Settings) error

	// Permission is read and written on its own so the TUI can persist a
	// grant without touching the connection settings.
	GetPermission(ctx context.Context) (models.Permission, error)
	SavePermission(ctx context.Context, p models.Permission) error

	GetConfigPath() string
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/pillminder/internal/constants"
	"github.com/julianstephens/pillminder/internal/logger"
	"github.com/julianstephens/pillminder/internal/migration"
	"github.com/julianstephens/pillminder/internal/models"
	"github.com/julianstephens/pillminder/migrations"
)

// ErrNotInitialized is returned by Load when the database file does not exist yet.
var ErrNotInitialized = errors.New("storage not initialized, run 'pillminder init' first")

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

// Init creates the database if needed and applies pending migrations.
func (s *SQLiteStore) Init(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := s.open(); err != nil {
		return err
	}

	runner, err := s.runner()
	if err != nil {
		return err
	}
	if _, err := runner.Apply(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Load opens an existing database and checks its schema version.
func (s *SQLiteStore) Load(ctx context.Context) error {
	if s.db != nil {
		return nil
	}
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return ErrNotInitialized
	}
	if err := s.open(); err != nil {
		return err
	}

	runner, err := s.runner()
	if err != nil {
		return err
	}
	return runner.Validate(ctx)
}

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

func (s *SQLiteStore) open() error {
	if s.db != nil {
		return nil
	}
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	// a single connection keeps writes serialized
	db.SetMaxOpenConns(1)
	s.db = db
	return nil
}

func (s *SQLiteStore) runner() (*migration.Runner, error) {
	sub, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return migration.NewRunner(s.db, sub), nil
}

func (s *SQLiteStore) GetSettings(ctx context.Context) (models.Settings, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT key, value FROM settings")
	if err != nil {
		return models.Settings{}, err
	}
	defer rows.Close()

	var settings models.Settings
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, err
		}
		switch key {
		case constants.SettingBackendURL:
			settings.BackendURL = value
		case constants.SettingWebOrigin:
			settings.WebOrigin = value
		case constants.SettingNotificationPermission:
			settings.NotificationPermission = models.ParsePermission(value)
		}
	}
	return settings, rows.Err()
}

// SaveSettings writes the connection URLs. Empty URLs delete the stored value
// so the defaults apply again. The permission only changes through
// SavePermission.
func (s *SQLiteStore) SaveSettings(ctx context.Context, settings models.Settings) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	values := map[string]string{
		constants.SettingBackendURL: settings.BackendURL,
		constants.SettingWebOrigin:  settings.WebOrigin,
	}
	for key, value := range values {
		if err := putSetting(ctx, tx, key, value); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) GetPermission(ctx context.Context) (models.Permission, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", constants.SettingNotificationPermission).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return models.PermissionUnrequested, nil
	}
	if err != nil {
		return models.PermissionUnrequested, err
	}
	return models.ParsePermission(value), nil
}

// SavePermission persists p if the transition from the stored state is legal.
func (s *SQLiteStore) SavePermission(ctx context.Context, p models.Permission) error {
	current, err := s.GetPermission(ctx)
	if err != nil {
		return err
	}
	next, err := current.Transition(p)
	if err != nil {
		return err
	}

	if err := putSetting(ctx, s.db, constants.SettingNotificationPermission, next.String()); err != nil {
		return err
	}
	logger.Info("Notification permission saved", "permission", next)
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func putSetting(ctx context.Context, db execer, key, value string) error {
	if value == "" {
		_, err := db.ExecContext(ctx, "DELETE FROM settings WHERE key = ?", key)
		return err
	}
	_, err := db.ExecContext(ctx,
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value)
	return err
}

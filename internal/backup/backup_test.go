package backup

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/pillminder/internal/models"
	"github.com/julianstephens/pillminder/internal/storage"
)

func setupDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "pillminder.db")

	store := storage.NewSQLiteStore(dbPath)
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	if err := store.SavePermission(context.Background(), models.PermissionGranted); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}
	return dbPath
}

func TestCreate(t *testing.T) {
	dbPath := setupDB(t)
	m := NewManager(dbPath)

	path, err := m.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if filepath.Dir(path) != m.Dir() {
		t.Errorf("snapshot written to %s, want %s", path, m.Dir())
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	var value string
	if err := db.QueryRow("SELECT value FROM settings WHERE key = 'notification_permission'").Scan(&value); err != nil {
		t.Fatalf("snapshot is not a usable database: %v", err)
	}
	if value != "granted" {
		t.Errorf("permission in snapshot = %q", value)
	}
}

func TestCreate_MissingDatabase(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := m.Create(); err == nil {
		t.Error("expected error for a missing database")
	}
}

func TestCreate_PrunesOldest(t *testing.T) {
	dbPath := setupDB(t)
	m := NewManager(dbPath)

	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	var paths []string
	for i := range MaxSnapshots + 2 {
		m.now = func() time.Time { return base.Add(time.Duration(i) * time.Minute) }
		p, err := m.Create()
		if err != nil {
			t.Fatalf("Create %d failed: %v", i, err)
		}
		paths = append(paths, p)
	}

	snaps, err := m.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(snaps) != MaxSnapshots {
		t.Fatalf("kept %d snapshots, want %d", len(snaps), MaxSnapshots)
	}
	if snaps[0].Path != paths[len(paths)-1] {
		t.Errorf("newest snapshot = %s, want %s", snaps[0].Path, paths[len(paths)-1])
	}
	for _, old := range paths[:2] {
		if _, err := os.Stat(old); !os.IsNotExist(err) {
			t.Errorf("old snapshot %s was not pruned", old)
		}
	}
}

func TestList_IgnoresForeignFiles(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "pillminder.db"))

	snaps, err := m.List()
	if err != nil || len(snaps) != 0 {
		t.Fatalf("List on missing dir = %v, %v", snaps, err)
	}

	if err := os.MkdirAll(m.Dir(), 0700); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"notes.txt", "pillminder-garbage.db", "other-20240301-080000.000000.db"} {
		if err := os.WriteFile(filepath.Join(m.Dir(), name), nil, 0600); err != nil {
			t.Fatal(err)
		}
	}
	if snaps, _ := m.List(); len(snaps) != 0 {
		t.Errorf("foreign files listed as snapshots: %+v", snaps)
	}
}

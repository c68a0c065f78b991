// Package persist snapshots the journal store's persisted state (entries,
// settings, streak) into a local SQLite file. The in-memory store stays
// authoritative for the session; this layer only makes it durable.
package persist

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fernlog/fern/internal/config"
	_ "modernc.org/sqlite"
)

// CurrentSchemaVersion is the latest schema version.
// Bump this when adding migrations.
const CurrentSchemaVersion = 1

// Init initializes the SQLite database at baseDir/fern.db.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.fern.
func Init(baseDir string) (*sql.DB, error) {
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	_ = os.Chmod(baseDir, 0700)

	exportsDir := filepath.Join(baseDir, "exports")
	if err := os.MkdirAll(exportsDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create exports directory: %w", err)
	}
	_ = os.Chmod(exportsDir, 0700)

	dbPath := filepath.Join(baseDir, "fern.db")
	dsn := dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := verifyWALMode(db); err != nil {
		db.Close()
		return nil, err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	_ = os.Chmod(dbPath, 0600)

	return db, nil
}

// ConfigurePool applies connection pool settings from config.
// Only sets limits if explicitly configured (non-zero values).
func ConfigurePool(db *sql.DB, cfg *config.Config) {
	if cfg == nil {
		return
	}
	if cfg.DBMaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	}
	if cfg.DBMaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	}
}

// migrate applies schema migrations based on user_version.
func migrate(db *sql.DB) error {
	version, err := GetUserVersion(db)
	if err != nil {
		return err
	}

	// Migration 0 -> 1: Initial schema (v1)
	if version < 1 {
		schema := `
		CREATE TABLE IF NOT EXISTS entries (
		  id            TEXT PRIMARY KEY,
		  position      INTEGER NOT NULL,
		  title         TEXT NOT NULL,
		  content       TEXT NOT NULL,
		  tags_json     TEXT,
		  mood          TEXT,
		  favorite      INTEGER NOT NULL DEFAULT 0,
		  images_json   TEXT,
		  location_json TEXT,
		  weather_json  TEXT,
		  created_at    INTEGER NOT NULL,
		  updated_at    INTEGER NOT NULL,
		  deleted       INTEGER NOT NULL DEFAULT 0,
		  deleted_at    INTEGER
		);

		CREATE INDEX IF NOT EXISTS idx_entries_position
		ON entries(position);

		CREATE TABLE IF NOT EXISTS settings (
		  id                 INTEGER PRIMARY KEY CHECK (id = 1),
		  animations         INTEGER NOT NULL,
		  compact_mode       INTEGER NOT NULL,
		  daily_goal         INTEGER NOT NULL,
		  template_on_create INTEGER NOT NULL,
		  sort_order         TEXT NOT NULL,
		  editor_theme       TEXT NOT NULL,
		  font_family        TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS streak (
		  id            INTEGER PRIMARY KEY CHECK (id = 1),
		  current       INTEGER NOT NULL,
		  longest       INTEGER NOT NULL,
		  last_entry_at INTEGER
		);
		`
		if _, err := db.Exec(schema); err != nil {
			return fmt.Errorf("migration 1 failed: %w", err)
		}
		if err := SetUserVersion(db, 1); err != nil {
			return err
		}
	}

	// Future migrations go here:
	// if version < 2 { ... }

	return nil
}

// verifyWALMode checks that WAL mode is active (set via connection string).
func verifyWALMode(db *sql.DB) error {
	var journalMode string
	if err := db.QueryRow("PRAGMA journal_mode;").Scan(&journalMode); err != nil {
		return fmt.Errorf("failed to verify journal mode: %w", err)
	}
	if journalMode != "wal" {
		return fmt.Errorf("expected WAL mode, got %s", journalMode)
	}
	return nil
}

// GetUserVersion returns the current schema version (user_version pragma).
func GetUserVersion(db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRow("PRAGMA user_version;").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get user_version: %w", err)
	}
	return version, nil
}

// SetUserVersion sets the schema version (user_version pragma).
func SetUserVersion(db *sql.DB, version int) error {
	_, err := db.Exec(fmt.Sprintf("PRAGMA user_version=%d", version))
	if err != nil {
		return fmt.Errorf("failed to set user_version: %w", err)
	}
	return nil
}

package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"gw2-arbitrage/internal/logger"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection.
type DB struct {
	sql *sql.DB
}

func dbPath() string {
	// Prefer working directory so the DB is stable across go run / go build.
	// Fall back to executable directory for deployed builds.
	if wd, err := os.Getwd(); err == nil {
		return filepath.Join(wd, "arbitrage.db")
	}
	exe, _ := os.Executable()
	return filepath.Join(filepath.Dir(exe), "arbitrage.db")
}

// Open opens (or creates) the SQLite database and runs migrations.
func Open() (*DB, error) {
	path := dbPath()
	sqlDB, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}
	d := &DB{sql: sqlDB}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate db: %w", err)
	}
	logger.Success("DB", fmt.Sprintf("Opened %s", path))
	return d, nil
}

// OpenAt opens the database at an explicit path; used by tests.
func OpenAt(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	d := &DB{sql: sqlDB}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate db: %w", err)
	}
	return d, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate() error {
	version := 0
	// Try to read current version
	d.sql.QueryRow("SELECT version FROM schema_version ORDER BY version DESC LIMIT 1").Scan(&version)

	if version < 1 {
		_, err := d.sql.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY);
			CREATE TABLE IF NOT EXISTS api_pages (
				endpoint   TEXT NOT NULL,
				page       INTEGER NOT NULL,
				body       BLOB NOT NULL,
				updated_at TEXT NOT NULL,
				PRIMARY KEY (endpoint, page)
			);
			CREATE TABLE IF NOT EXISTS runs (
				id             INTEGER PRIMARY KEY AUTOINCREMENT,
				started_at     TEXT NOT NULL,
				item_id        INTEGER NOT NULL,
				item_name      TEXT NOT NULL,
				profit         INTEGER NOT NULL,
				crafting_cost  INTEGER NOT NULL,
				count          INTEGER NOT NULL,
				time_gated     INTEGER NOT NULL,
				needs_ascended INTEGER NOT NULL
			);
			INSERT INTO schema_version (version) VALUES (1);
		`)
		if err != nil {
			return err
		}
	}
	return nil
}

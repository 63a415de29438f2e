package store

import (
	"database/sql"
	"fmt"

	"github.com/wagner-austin/signal-bot/internal/logging"
)

// initSchema creates the base tables. Migrations bring older databases up to
// this shape; new databases get it directly and still record the version.
func (s *Store) initSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS Volunteers (
			phone TEXT PRIMARY KEY,
			name TEXT,
			skills TEXT,
			available INTEGER,
			role TEXT NOT NULL DEFAULT 'registered'
		)`,
		`CREATE TABLE IF NOT EXISTS DeletedVolunteers (
			phone TEXT PRIMARY KEY,
			name TEXT,
			skills TEXT,
			available INTEGER,
			role TEXT NOT NULL DEFAULT 'registered',
			deleted_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS UserStates (
			phone TEXT PRIMARY KEY,
			flow_state TEXT DEFAULT '{}'
		)`,
		`CREATE TABLE IF NOT EXISTS CommandLogs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			sender TEXT,
			command TEXT,
			args TEXT,
			timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("schema init failed: %w", err)
		}
	}
	return nil
}

type migration struct {
	version int
	apply   func(*sql.DB) error
}

var migrations = []migration{
	{1, migrateEvents},
	{2, migrateResources},
	{3, migrateTasks},
	{4, migrateDonations},
}

// schemaVersion reads the current version, creating the SchemaVersion table
// at version 0 when absent.
func (s *Store) schemaVersion() (int, error) {
	var name string
	err := s.db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='SchemaVersion'").Scan(&name)
	if err == sql.ErrNoRows {
		if _, err := s.db.Exec("CREATE TABLE SchemaVersion (version INTEGER)"); err != nil {
			return 0, err
		}
		if _, err := s.db.Exec("INSERT INTO SchemaVersion (version) VALUES (0)"); err != nil {
			return 0, err
		}
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	var version int
	if err := s.db.QueryRow("SELECT version FROM SchemaVersion").Scan(&version); err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, err
	}
	return version, nil
}

// runMigrations applies every migration newer than the recorded version, in
// order. Migrations only move forward.
func (s *Store) runMigrations() error {
	current, err := s.schemaVersion()
	if err != nil {
		return err
	}
	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		logging.Store("Applying migration %d", m.version)
		if err := m.apply(s.db); err != nil {
			return fmt.Errorf("migration %d failed: %w", m.version, err)
		}
		if _, err := s.db.Exec("UPDATE SchemaVersion SET version = ?", m.version); err != nil {
			return err
		}
	}
	return nil
}

func migrateEvents(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS Events (
		event_id INTEGER PRIMARY KEY AUTOINCREMENT,
		title TEXT,
		date TEXT,
		time TEXT,
		location TEXT,
		description TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return err
	}
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS EventSpeakers (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		event_id INTEGER,
		speaker_name TEXT,
		speaker_topic TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY(event_id) REFERENCES Events(event_id) ON DELETE CASCADE
	)`)
	return err
}

func migrateResources(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS Resources (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		category TEXT,
		title TEXT,
		url TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`)
	return err
}

func migrateTasks(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS Tasks (
		task_id INTEGER PRIMARY KEY AUTOINCREMENT,
		description TEXT,
		created_by TEXT,
		assigned_to TEXT,
		status TEXT NOT NULL DEFAULT 'open',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`)
	return err
}

func migrateDonations(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS Donations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		phone TEXT,
		amount REAL,
		donation_type TEXT,
		description TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`)
	return err
}

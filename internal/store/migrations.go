package store

import "fmt"

// currentSchemaVersion is the latest schema version.
const currentSchemaVersion = 1

// Migrate runs forward migrations to bring the database schema up to date.
func (db *DB) Migrate() error {
	if _, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	version := 0
	row := db.conn.QueryRow("SELECT version FROM schema_version LIMIT 1")
	if err := row.Scan(&version); err != nil {
		// No rows means version 0 (fresh database).
		version = 0
	}

	if version < 1 {
		if err := db.migrateV1(); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}

	return nil
}

// migrateV1 creates all initial tables and indexes.
func (db *DB) migrateV1() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS scans (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			taken_at       TEXT NOT NULL,
			root           TEXT NOT NULL,
			scan_all       BOOLEAN NOT NULL,
			include_caches BOOLEAN NOT NULL,
			project_count  INTEGER NOT NULL,
			total_bytes    INTEGER NOT NULL,
			version        TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS project_risks (
			id                 INTEGER PRIMARY KEY AUTOINCREMENT,
			scan_id            INTEGER NOT NULL REFERENCES scans(id),
			path               TEXT NOT NULL,
			name               TEXT NOT NULL,
			score              INTEGER NOT NULL,
			class              TEXT NOT NULL,
			source             TEXT NOT NULL,
			size_bytes         INTEGER NOT NULL,
			last_modified_days INTEGER NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS deletions (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			executed_at TEXT NOT NULL,
			path        TEXT NOT NULL,
			size_bytes  INTEGER NOT NULL,
			action      TEXT NOT NULL,
			status      TEXT NOT NULL,
			destination TEXT
		)`,

		`CREATE TABLE IF NOT EXISTS feedback (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at TEXT NOT NULL,
			path       TEXT NOT NULL,
			name       TEXT NOT NULL,
			score      INTEGER NOT NULL,
			class      TEXT NOT NULL,
			vote       TEXT NOT NULL
		)`,

		// Indexes.
		`CREATE INDEX IF NOT EXISTS idx_project_risks_scan ON project_risks(scan_id)`,
		`CREATE INDEX IF NOT EXISTS idx_deletions_status ON deletions(status)`,
		`CREATE INDEX IF NOT EXISTS idx_deletions_destination ON deletions(destination)`,
		`CREATE INDEX IF NOT EXISTS idx_feedback_path ON feedback(path)`,
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("executing %q: %w", stmt[:40], err)
		}
	}

	if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", currentSchemaVersion); err != nil {
		return err
	}

	return tx.Commit()
}

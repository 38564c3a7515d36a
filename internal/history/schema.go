// Package history records every generated schedule in SQLite.
package history

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
	id                TEXT PRIMARY KEY,
	course            TEXT NOT NULL,
	created_at        DATETIME NOT NULL,
	days              INTEGER NOT NULL,
	entries           INTEGER NOT NULL,
	estimated_minutes INTEGER NOT NULL DEFAULT 0,
	inherited_fields  INTEGER NOT NULL DEFAULT 0,
	checksum          TEXT NOT NULL DEFAULT '',
	table_path        TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS run_entries (
	run_id         TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	position       INTEGER NOT NULL,
	level          INTEGER NOT NULL,
	title          TEXT NOT NULL,
	activity       TEXT NOT NULL DEFAULT '',
	tool           TEXT NOT NULL DEFAULT '',
	objective      TEXT NOT NULL DEFAULT '',
	duration       TEXT NOT NULL DEFAULT '',
	nb_sub_chapter INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (run_id, position)
);

CREATE INDEX IF NOT EXISTS idx_runs_course ON runs(course, created_at);
`

// DB wraps a sql.DB with history operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("history: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("history: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("history: apply schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/starford/deroule/internal/models"
)

// Record stores run and a snapshot of its entries within a transaction. An
// empty ID or zero CreatedAt is filled in; the stored run is returned.
func (db *DB) Record(ctx context.Context, run Run, entries []models.Entry) (Run, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	run.Entries = len(entries)

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("history: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, course, created_at, days, entries, estimated_minutes, inherited_fields, checksum, table_path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Course, run.CreatedAt, run.Days, run.Entries, run.EstimatedMinutes,
		run.InheritedFields, run.Checksum, run.TablePath)
	if err != nil {
		return Run{}, fmt.Errorf("history: insert run: %w", err)
	}

	if len(entries) > 0 {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO run_entries (run_id, position, level, title, activity, tool, objective, duration, nb_sub_chapter)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return Run{}, fmt.Errorf("history: prepare entry insert: %w", err)
		}
		defer stmt.Close()
		for _, e := range entries {
			if _, err := stmt.ExecContext(ctx, run.ID, e.ID, e.Level, e.Title, e.Activity,
				e.Tool, e.Objective, e.Duration, e.NbSubChapter); err != nil {
				return Run{}, fmt.Errorf("history: insert entry %d: %w", e.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("history: commit: %w", err)
	}
	return run, nil
}

// Runs lists recorded runs newest first. An empty course lists every course.
func (db *DB) Runs(ctx context.Context, course string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, course, created_at, days, entries, estimated_minutes, inherited_fields, checksum, table_path
		FROM runs
		WHERE ? = '' OR course = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, course, course, limit)
	if err != nil {
		return nil, fmt.Errorf("history: runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Course, &r.CreatedAt, &r.Days, &r.Entries,
			&r.EstimatedMinutes, &r.InheritedFields, &r.Checksum, &r.TablePath); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Entries returns the snapshot stored for a run, in outline order.
func (db *DB) Entries(ctx context.Context, runID string) ([]models.Entry, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT position, level, title, activity, tool, objective, duration, nb_sub_chapter
		FROM run_entries
		WHERE run_id = ?
		ORDER BY position
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("history: entries: %w", err)
	}
	defer rows.Close()

	var out []models.Entry
	for rows.Next() {
		var e models.Entry
		if err := rows.Scan(&e.ID, &e.Level, &e.Title, &e.Activity, &e.Tool,
			&e.Objective, &e.Duration, &e.NbSubChapter); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/starford/deroule/internal/models"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSchemaCreation(t *testing.T) {
	db := testDB(t)
	var count int
	if err := db.conn.QueryRow(`SELECT count(*) FROM runs`).Scan(&count); err != nil {
		t.Fatalf("runs table missing: %v", err)
	}
	if err := db.conn.QueryRow(`SELECT count(*) FROM run_entries`).Scan(&count); err != nil {
		t.Fatalf("run_entries table missing: %v", err)
	}
}

func TestRecordAndEntries(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	entries := []models.Entry{
		{ID: 0, Level: 1, Title: "Intro", Activity: "A", Tool: "T", Objective: "O", Duration: "~60", NbSubChapter: 3},
		{ID: 1, Level: 2, Title: "Part", Activity: "A", Tool: "T"},
	}
	run, err := db.Record(ctx, Run{Course: "k8s", Days: 2, Checksum: "abc"}, entries)
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if run.ID == "" || run.CreatedAt.IsZero() {
		t.Errorf("run = %+v, want generated id and timestamp", run)
	}
	if run.Entries != 2 {
		t.Errorf("entries = %d, want 2", run.Entries)
	}

	got, err := db.Entries(ctx, run.ID)
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if len(got) != 2 || got[0] != entries[0] || got[1] != entries[1] {
		t.Errorf("entries = %+v", got)
	}
}

func TestRuns_NewestFirstAndFiltered(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	_, _ = db.Record(ctx, Run{Course: "k8s", Days: 2, CreatedAt: base}, nil)
	_, _ = db.Record(ctx, Run{Course: "k8s", Days: 3, CreatedAt: base.Add(time.Hour)}, nil)
	_, _ = db.Record(ctx, Run{Course: "go", Days: 1, CreatedAt: base.Add(2 * time.Hour)}, nil)

	runs, err := db.Runs(ctx, "k8s", 10)
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("len = %d, want 2", len(runs))
	}
	if runs[0].Days != 3 || runs[1].Days != 2 {
		t.Errorf("order = %d, %d, want newest first", runs[0].Days, runs[1].Days)
	}

	all, err := db.Runs(ctx, "", 10)
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("len(all) = %d, want 3", len(all))
	}
}

func TestRuns_Limit(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, _ = db.Record(ctx, Run{Course: "c", Days: i + 1}, nil)
	}
	runs, err := db.Runs(ctx, "c", 2)
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("len = %d, want 2", len(runs))
	}
}

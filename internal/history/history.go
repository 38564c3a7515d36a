package history

import (
	"context"
	"time"

	"github.com/starford/deroule/internal/models"
)

// Run summarises one generated schedule.
type Run struct {
	ID               string
	Course           string
	CreatedAt        time.Time
	Days             int
	Entries          int
	EstimatedMinutes int
	InheritedFields  int
	Checksum         string
	TablePath        string
}

// Recorder stores runs. Consumers depend on this rather than *DB.
type Recorder interface {
	Record(ctx context.Context, run Run, entries []models.Entry) (Run, error)
}

// Store is the full history interface.
type Store interface {
	Recorder
	Runs(ctx context.Context, course string, limit int) ([]Run, error)
	Entries(ctx context.Context, runID string) ([]models.Entry, error)
	Close() error
}

// Verify *DB satisfies Store at compile time.
var _ Store = (*DB)(nil)

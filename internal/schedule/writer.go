package schedule

import (
	"fmt"
	"log/slog"

	"github.com/starford/deroule/internal/checksum"
	"github.com/starford/deroule/internal/merge"
	"github.com/starford/deroule/internal/models"
	"github.com/starford/deroule/internal/storage"
	"github.com/starford/deroule/internal/table"
)

// Saved describes a persisted table.
type Saved struct {
	Path     string
	Merged   bool
	Merge    merge.Stats
	Checksum string
}

// Writer persists outlines, reusing edits from the table it replaces.
type Writer struct {
	store    storage.Provider
	layout   Layout
	defaults models.Defaults
	logger   *slog.Logger
}

// NewWriter returns a Writer for the given layout.
func NewWriter(store storage.Provider, layout Layout, defaults models.Defaults, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{store: store, layout: layout, defaults: defaults, logger: logger}
}

// Save writes entries as the table of course. When a table already exists it
// is decoded, moved to the staging file and merged into entries, which are
// updated in place. A table that fails to decode is left untouched.
func (w *Writer) Save(course string, entries []models.Entry) (Saved, error) {
	if err := w.store.MkdirAll(w.layout.DataDir); err != nil {
		return Saved{}, fmt.Errorf("schedule: %w", err)
	}

	saved := Saved{Path: w.layout.TablePath(course)}
	exists, err := w.store.Exists(saved.Path)
	if err != nil {
		return Saved{}, fmt.Errorf("schedule: %w", err)
	}
	if exists {
		stats, err := w.mergePrevious(saved.Path, entries)
		if err != nil {
			return Saved{}, err
		}
		saved.Merged = true
		saved.Merge = stats
	}

	data, err := table.Marshal(entries)
	if err != nil {
		return Saved{}, fmt.Errorf("schedule: %w", err)
	}
	w.logger.Info("Saving schedule", slog.String("path", saved.Path), slog.Int("entries", len(entries)))
	if err := w.store.Write(saved.Path, data); err != nil {
		return Saved{}, fmt.Errorf("schedule: %w", err)
	}
	saved.Checksum = checksum.Sum(data)
	return saved, nil
}

func (w *Writer) mergePrevious(path string, entries []models.Entry) (merge.Stats, error) {
	staging := w.layout.StagingFile
	w.logger.Info("Merging with previous schedule",
		slog.String("path", path),
		slog.String("staging", staging))

	// The previous table stays in place until it is known to decode.
	data, err := w.store.Read(path)
	if err != nil {
		return merge.Stats{}, fmt.Errorf("schedule: read previous table: %w", err)
	}
	prior, err := table.Unmarshal(data)
	if err != nil {
		return merge.Stats{}, fmt.Errorf("schedule: previous table %s: %w", path, err)
	}
	if err := w.store.Move(path, staging); err != nil {
		return merge.Stats{}, fmt.Errorf("schedule: archive previous table: %w", err)
	}

	stats := merge.Merge(entries, prior, w.defaults, w.logger)
	w.logger.Info("Merged previous schedule",
		slog.Int("matched", stats.Matched),
		slog.Int("inherited_fields", stats.Inherited()))
	return stats, nil
}

package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/starford/deroule/internal/checksum"
	"github.com/starford/deroule/internal/history"
	"github.com/starford/deroule/internal/models"
	"github.com/starford/deroule/internal/outline"
	"github.com/starford/deroule/internal/parser"
	"github.com/starford/deroule/internal/storage"
)

// Result describes one pipeline run.
type Result struct {
	Plan     models.Plan
	Entries  []models.Entry
	Estimate outline.EstimateStats
	Saved    Saved
	Run      *history.Run
}

// Generator runs plan → outline → estimate → merge → write for one course.
type Generator struct {
	store    storage.Provider
	layout   Layout
	defaults models.Defaults
	recorder history.Recorder
	logger   *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithRecorder records every successful run.
func WithRecorder(r history.Recorder) Option {
	return func(g *Generator) {
		g.recorder = r
	}
}

// WithLogger sets the logger. slog.Default is used otherwise.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = l
	}
}

// NewGenerator returns a Generator reading the course behind store.
func NewGenerator(store storage.Provider, layout Layout, defaults models.Defaults, opts ...Option) *Generator {
	g := &Generator{
		store:    store,
		layout:   layout,
		defaults: defaults,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate runs the pipeline once. Nothing is written unless the plan is
// valid and every listed slide file could be read.
func (g *Generator) Generate(ctx context.Context) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := g.store.Read(g.layout.PlanFile)
	if err != nil {
		return nil, fmt.Errorf("schedule: plan: %w", err)
	}
	plan, err := parser.ParsePlan(data)
	if err != nil {
		return nil, err
	}
	g.logger.Info("Course plan loaded",
		slog.String("course", plan.Name),
		slog.Int("days", plan.Days))

	x := outline.NewExtractor(g.defaults, g.logger)
	entries, err := outline.Load(g.store, g.layout.SlidesDir, g.layout.ManifestFile, x)
	if err != nil {
		return nil, err
	}

	est, err := outline.Estimate(entries, plan.Days)
	if err != nil {
		return nil, fmt.Errorf("schedule: estimate %s: %w", plan.Name, err)
	}
	g.logger.Debug("Durations estimated",
		slog.Int("slide_units", est.SlideUnits),
		slog.Float64("minutes_per_unit", est.MinutesPerUnit))

	saved, err := NewWriter(g.store, g.layout, g.defaults, g.logger).Save(plan.Name, entries)
	if err != nil {
		return nil, err
	}

	res := &Result{Plan: plan, Entries: entries, Estimate: est, Saved: saved}

	if g.recorder != nil {
		run, err := g.recorder.Record(ctx, history.Run{
			Course:           plan.Name,
			Days:             plan.Days,
			EstimatedMinutes: ChapterMinutes(entries),
			InheritedFields:  saved.Merge.Inherited(),
			Checksum:         saved.Checksum,
			TablePath:        saved.Path,
		}, entries)
		if err != nil {
			g.logger.Warn("history: record failed", slog.String("error", err.Error()))
		} else {
			res.Run = &run
		}
	}

	g.logger.Info("Schedule generated",
		slog.String("course", plan.Name),
		slog.String("path", saved.Path),
		slog.Int("entries", len(entries)),
		slog.Bool("merged", saved.Merged),
		slog.String("checksum", checksum.Short(saved.Checksum)))
	return res, nil
}

// ChapterMinutes sums the durations of chapters, estimated or confirmed.
// Values that are not whole minutes are skipped.
func ChapterMinutes(entries []models.Entry) int {
	total := 0
	for _, e := range entries {
		if e.Level != models.LevelChapter {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(e.Duration, models.EstimateMarker)))
		if err != nil {
			continue
		}
		total += n
	}
	return total
}

// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"

	"golang.org/x/sync/errgroup"

	"github.com/starford/deroule/internal/apperr"
	"github.com/starford/deroule/internal/checksum"
	"github.com/starford/deroule/internal/history"
	"github.com/starford/deroule/internal/schedule"
	"github.com/starford/deroule/internal/storage"
	"github.com/starford/deroule/internal/watch"
)

func newApplication(opts []Option) (*application, error) {
	app := &application{logOutput: os.Stderr}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	return app, nil
}

func newLogger(cfg ApplicationConfig, out io.Writer) *slog.Logger {
	hopts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.LogFormat == LogFormatText {
		return slog.New(slog.NewTextHandler(out, hopts))
	}
	return slog.New(slog.NewJSONHandler(out, hopts))
}

// Run generates the schedule of the configured course. With watch mode on it
// then regenerates it on every source change until ctx is cancelled or the
// process is signalled.
func Run(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config

	if err := cfg.Course.RequirePath(); err != nil {
		return fmt.Errorf("%w: %w", apperr.ErrConfiguration, err)
	}

	// Initialize structured logger.
	logger := newLogger(cfg.App, app.logOutput)
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("course_path", cfg.Course.Path),
		slog.String("slides_dir", cfg.Course.SlidesDir),
		slog.String("history_path", cfg.History.Path),
		slog.Bool("watch", app.watch),
		slog.String("log_level", cfg.App.LogLevel.String()))

	store, err := storage.NewFS(cfg.Course.Path)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	genOpts := []schedule.Option{schedule.WithLogger(logger)}
	if cfg.History.Enabled() {
		db, err := history.Open(cfg.History.Path)
		if err != nil {
			return fmt.Errorf("init history: %w", err)
		}
		defer db.Close()
		genOpts = append(genOpts, schedule.WithRecorder(db))
	}

	gen := schedule.NewGenerator(store, cfg.Course.Layout(), cfg.Defaults.Models(), genOpts...)
	if _, err := gen.Generate(ctx); err != nil {
		return err
	}

	if !app.watch {
		return nil
	}
	return watchCourse(ctx, cfg, store, gen, logger)
}

func watchCourse(ctx context.Context, cfg *Config, store *storage.FS, gen *schedule.Generator, logger *slog.Logger) error {
	layout := cfg.Course.Layout()
	var src watch.Sources
	var err error
	if src.PlanFile, err = store.Abs(layout.PlanFile); err != nil {
		return err
	}
	if src.SlidesDir, err = store.Abs(layout.SlidesDir); err != nil {
		return err
	}
	if src.ManifestFile, err = store.Abs(filepath.Join(layout.SlidesDir, layout.ManifestFile)); err != nil {
		return err
	}

	watchCtx, stop := context.WithCancel(ctx)
	defer stop()

	g, gCtx := errgroup.WithContext(watchCtx)

	g.Go(func() error {
		defer stop()
		return watch.Watch(gCtx, src, cfg.Watch.Debounce, logger, func(ctx context.Context) error {
			_, err := gen.Generate(ctx)
			return err
		})
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
			stop()
		case <-gCtx.Done():
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Watcher error", slog.String("error", err.Error()))
		return err
	}
	logger.Info("Watcher stopped")
	return nil
}

// History writes the runs recorded for course, or for every course when
// course is empty, newest first.
func History(ctx context.Context, w io.Writer, course string, limit int, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config
	slog.SetDefault(newLogger(cfg.App, app.logOutput))

	if !cfg.History.Enabled() {
		return fmt.Errorf("%w: history.path is not set", apperr.ErrConfiguration)
	}
	db, err := history.Open(cfg.History.Path)
	if err != nil {
		return fmt.Errorf("init history: %w", err)
	}
	defer db.Close()

	runs, err := db.Runs(ctx, course, limit)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tCOURSE\tCREATED\tDAYS\tENTRIES\tMINUTES\tINHERITED\tCHECKSUM")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
			r.ID, r.Course, r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.Days, r.Entries, r.EstimatedMinutes, r.InheritedFields, checksum.Short(r.Checksum))
	}
	return tw.Flush()
}

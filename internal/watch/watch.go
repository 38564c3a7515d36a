// Package watch re-runs the schedule pipeline when course sources change.
package watch

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Sources names what to watch, as absolute paths.
type Sources struct {
	PlanFile     string // watched through its parent directory
	SlidesDir    string // watched recursively
	ManifestFile string
}

// RunFunc regenerates the schedule.
type RunFunc func(ctx context.Context) error

// Watch calls run after every burst of relevant file changes, once debounce
// has elapsed without further events, until ctx is cancelled. Calls never
// overlap. A failing run is logged and watching continues.
func Watch(ctx context.Context, src Sources, debounce time.Duration, logger *slog.Logger, run RunFunc) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := addDirsRecursive(w, src.SlidesDir); err != nil {
		return err
	}
	planDir := filepath.Dir(src.PlanFile)
	if !isWithin(planDir, src.SlidesDir) {
		if err := w.Add(planDir); err != nil {
			return err
		}
	}

	logger.Info("watcher: started",
		slog.String("slides", src.SlidesDir),
		slog.String("plan", src.PlanFile))

	var timer *time.Timer
	var timerCh <-chan time.Time

	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(debounce)
			timerCh = timer.C
		} else {
			timer.Reset(debounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-timerCh:
			if err := run(ctx); err != nil {
				logger.Error("watcher: regenerate failed", slog.String("error", err.Error()))
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			if ev.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(ev.Name); statErr == nil && info.IsDir() && isWithin(ev.Name, src.SlidesDir) {
					if addErr := addDirsRecursive(w, ev.Name); addErr != nil {
						logger.Warn("watcher: add new dir failed",
							slog.String("path", ev.Name),
							slog.String("error", addErr.Error()))
					}
					schedule()
					continue
				}
			}

			if !src.relevant(ev.Name) {
				continue
			}
			logger.Debug("watcher: change", slog.String("path", ev.Name), slog.String("op", ev.Op.String()))
			schedule()

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// relevant reports whether a change to path affects the schedule.
func (s Sources) relevant(path string) bool {
	if path == s.PlanFile || path == s.ManifestFile {
		return true
	}
	return isWithin(path, s.SlidesDir) && strings.HasSuffix(path, ".md")
}

func isWithin(path, dir string) bool {
	return path == dir || strings.HasPrefix(path, dir+string(os.PathSeparator))
}

// addDirsRecursive adds root and all its subdirectories to the watcher.
func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(path)
		}
		return nil
	})
}

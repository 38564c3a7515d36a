package watch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

// eventually polls fn every tick until it returns true or timeout elapses.
func eventually(t *testing.T, timeout, tick time.Duration, fn func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if fn() {
			return
		}
		time.Sleep(tick)
	}
	t.Error(msg)
}

func watchEnv(t *testing.T) Sources {
	t.Helper()
	root := t.TempDir()
	slides := filepath.Join(root, "Slides")
	if err := os.MkdirAll(slides, 0o755); err != nil {
		t.Fatal(err)
	}
	src := Sources{
		PlanFile:     filepath.Join(root, "PLAN.md"),
		SlidesDir:    slides,
		ManifestFile: filepath.Join(slides, "slides.json"),
	}
	_ = os.WriteFile(src.PlanFile, []byte("# C\nDurée : 1j\n"), 0o644)
	return src
}

func start(t *testing.T, src Sources, run RunFunc) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go Watch(ctx, src, 50*time.Millisecond, logger, run)
	time.Sleep(100 * time.Millisecond)
}

func TestWatch_SlideChangeTriggersRun(t *testing.T) {
	src := watchEnv(t)
	var runs atomic.Int32
	start(t, src, func(context.Context) error {
		runs.Add(1)
		return nil
	})

	_ = os.WriteFile(filepath.Join(src.SlidesDir, "intro.md"), []byte("# Intro"), 0o644)

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return runs.Load() > 0
	}, "slide change did not trigger a run")
}

func TestWatch_PlanChangeTriggersRun(t *testing.T) {
	src := watchEnv(t)
	var runs atomic.Int32
	start(t, src, func(context.Context) error {
		runs.Add(1)
		return nil
	})

	_ = os.WriteFile(src.PlanFile, []byte("# C\nDurée : 2j\n"), 0o644)

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return runs.Load() > 0
	}, "plan change did not trigger a run")
}

func TestWatch_IgnoresOutputFiles(t *testing.T) {
	src := watchEnv(t)
	var runs atomic.Int32
	start(t, src, func(context.Context) error {
		runs.Add(1)
		return nil
	})

	root := filepath.Dir(src.PlanFile)
	_ = os.WriteFile(filepath.Join(root, "course.csv"), []byte("id;level"), 0o644)
	_ = os.WriteFile(filepath.Join(src.SlidesDir, "notes.txt"), []byte("x"), 0o644)

	time.Sleep(400 * time.Millisecond)
	if n := runs.Load(); n != 0 {
		t.Errorf("runs = %d, want 0", n)
	}
}

func TestWatch_FailedRunKeepsWatching(t *testing.T) {
	src := watchEnv(t)
	var runs atomic.Int32
	start(t, src, func(context.Context) error {
		runs.Add(1)
		return errors.New("boom")
	})

	_ = os.WriteFile(filepath.Join(src.SlidesDir, "a.md"), []byte("# A"), 0o644)
	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return runs.Load() >= 1
	}, "first change did not trigger a run")

	time.Sleep(150 * time.Millisecond)
	before := runs.Load()
	_ = os.WriteFile(filepath.Join(src.SlidesDir, "b.md"), []byte("# B"), 0o644)
	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return runs.Load() > before
	}, "watcher stopped after a failed run")
}

func TestWatch_NewSubdirWatched(t *testing.T) {
	src := watchEnv(t)
	var runs atomic.Int32
	start(t, src, func(context.Context) error {
		runs.Add(1)
		return nil
	})

	sub := filepath.Join(src.SlidesDir, "part2")
	_ = os.MkdirAll(sub, 0o755)
	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return runs.Load() >= 1
	}, "new directory did not trigger a run")

	time.Sleep(150 * time.Millisecond)
	before := runs.Load()
	_ = os.WriteFile(filepath.Join(sub, "deep.md"), []byte("# Deep"), 0o644)
	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		return runs.Load() > before
	}, "file in new subdirectory did not trigger a run")
}

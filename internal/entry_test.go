package internal

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/starford/deroule/internal/apperr"
	"github.com/starford/deroule/internal/testutil"
)

func testCourse(t *testing.T) string {
	t.Helper()
	root, _ := testutil.Course(t, map[string]string{
		"PLAN.md":            "# Go Basics\nDurée : 1j\n",
		"Slides/slides.json": `["intro.md"]`,
		"Slides/intro.md":    "# Intro\n## Tooling\n",
	})
	return root
}

func TestRun_WritesTable(t *testing.T) {
	root := testCourse(t)
	cfg := NewDefaultConfig()
	cfg.Course.Path = root

	if err := Run(context.Background(), WithConfig(cfg), WithLogOutput(io.Discard)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(root, "data", "go-basics.csv"))
	if err != nil {
		t.Fatalf("table missing: %v", err)
	}
	if !strings.Contains(string(data), "0;1;Intro;Slides et Explication;Strigo;To be defined;~420;2") {
		t.Errorf("unexpected table:\n%s", data)
	}
}

func TestRun_RequiresConfig(t *testing.T) {
	if err := Run(context.Background()); err == nil {
		t.Fatal("expected error without config")
	}
}

func TestRun_RequiresCoursePath(t *testing.T) {
	err := Run(context.Background(), WithConfig(NewDefaultConfig()), WithLogOutput(io.Discard))
	if !errors.Is(err, apperr.ErrConfiguration) {
		t.Errorf("err = %v, want ErrConfiguration", err)
	}
}

func TestHistory_Disabled(t *testing.T) {
	var out bytes.Buffer
	err := History(context.Background(), &out, "", 10, WithConfig(NewDefaultConfig()), WithLogOutput(io.Discard))
	if !errors.Is(err, apperr.ErrConfiguration) {
		t.Errorf("err = %v, want ErrConfiguration", err)
	}
}

func TestHistory_ListsRecordedRuns(t *testing.T) {
	root := testCourse(t)
	cfg := NewDefaultConfig()
	cfg.Course.Path = root
	cfg.History.Path = filepath.Join(t.TempDir(), "history.db")

	for i := 0; i < 2; i++ {
		if err := Run(context.Background(), WithConfig(cfg), WithLogOutput(io.Discard)); err != nil {
			t.Fatalf("Run %d: %v", i, err)
		}
	}

	var out bytes.Buffer
	if err := History(context.Background(), &out, "go-basics", 10, WithConfig(cfg), WithLogOutput(io.Discard)); err != nil {
		t.Fatalf("History: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want header + 2 runs:\n%s", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[0], "RUN") || !strings.Contains(lines[1], "go-basics") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

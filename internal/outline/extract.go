package outline

import (
	"log/slog"
	"strings"

	"github.com/starford/deroule/internal/models"
	"github.com/starford/deroule/internal/parser"
)

// Extractor parses slide files into outline entries.
type Extractor struct {
	defaults models.Defaults
	logger   *slog.Logger
}

// NewExtractor returns an Extractor applying defaults to every file.
func NewExtractor(defaults models.Defaults, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{defaults: defaults, logger: logger}
}

// Extract appends the chapters, sections and practical-work slides found in
// content to b and returns how many entries were added. name is only used
// for logging.
func (x *Extractor) Extract(b *Builder, name string, content []byte) int {
	lines := splitLines(content)
	d, body := x.resolve(name, lines)

	units := 0
	for _, line := range body {
		if parser.IsHeadingMarker(line) {
			units++
		}
	}

	before := b.Len()
	for _, line := range body {
		if level, title, ok := parser.Heading(line); ok {
			e := models.Entry{
				Level:    level,
				Title:    title,
				Activity: d.Activity,
				Tool:     d.Tool,
				Kind:     models.KindHeading,
			}
			if level == models.LevelChapter {
				e.Objective = d.Objective
				e.Duration = d.Duration
				e.NbSubChapter = units
			}
			b.Append(e)
			continue
		}
		if label, ok := parser.PracticalLabel(line); ok {
			b.Append(models.Entry{
				Level:    models.LevelSection,
				Title:    label,
				Activity: d.ActivityTP,
				Tool:     d.Tool,
				Kind:     models.KindPractical,
			})
		}
	}

	added := b.Len() - before
	x.logger.Debug("outline: extracted",
		slog.String("file", name),
		slog.Int("entries", added),
		slog.Int("slide_units", units))
	return added
}

// resolve merges the file's frontmatter into the defaults and returns the
// lines left to scan. A malformed block falls back to the defaults.
func (x *Extractor) resolve(name string, lines []string) (models.Defaults, []string) {
	block, bodyStart, ok := parser.SplitFrontmatter(lines)
	if !ok {
		return x.defaults, lines
	}
	o, err := parser.ParseOverrides(block)
	if err != nil {
		x.logger.Warn("outline: ignoring frontmatter",
			slog.String("file", name),
			slog.String("error", err.Error()))
		return x.defaults, lines[bodyStart:]
	}
	return x.defaults.With(o), lines[bodyStart:]
}

func splitLines(content []byte) []string {
	lines := strings.Split(string(content), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// Package merge carries human edits from a previously saved schedule into a
// freshly extracted one.
//
// Rows are matched by exact title. A renamed heading therefore starts over
// with default values; its previous edits are not recovered.
package merge

import (
	"log/slog"

	"github.com/starford/deroule/internal/models"
)

// Stats counts the fields inherited from the previous schedule.
type Stats struct {
	Matched   int
	Activity  int
	Tool      int
	Objective int
	Duration  int
}

// Inherited returns the total number of fields taken from the previous schedule.
func (s Stats) Inherited() int {
	return s.Activity + s.Tool + s.Objective + s.Duration
}

// Index maps titles to prior rows. When titles repeat, the last row wins.
func Index(prior []models.Entry) map[string]models.Entry {
	idx := make(map[string]models.Entry, len(prior))
	for _, e := range prior {
		idx[e.Title] = e
	}
	return idx
}

// Merge updates fresh in place. A field is inherited only when the fresh
// value is still a default or placeholder and the prior value is not. Empty
// prior cells carry no edit.
func Merge(fresh, prior []models.Entry, d models.Defaults, logger *slog.Logger) Stats {
	if logger == nil {
		logger = slog.Default()
	}
	idx := Index(prior)

	var stats Stats
	for i := range fresh {
		e := &fresh[i]
		p, ok := idx[e.Title]
		if !ok {
			continue
		}
		stats.Matched++

		activityDefault := d.Activity
		if e.Kind == models.KindPractical {
			activityDefault = d.ActivityTP
		}
		if e.Activity == activityDefault && edited(p.Activity, activityDefault) {
			e.Activity = p.Activity
			stats.Activity++
		}

		if e.Tool == d.Tool && edited(p.Tool, d.Tool) {
			e.Tool = p.Tool
			stats.Tool++
		}

		if (e.Objective == d.Objective || e.Objective == "") && edited(p.Objective, d.Objective) {
			e.Objective = p.Objective
			stats.Objective++
		}

		if e.IsEstimate() && p.Duration != "" && !p.IsEstimate() {
			e.Duration = p.Duration
			stats.Duration++
		}

		logger.Debug("merge: matched", slog.String("title", e.Title), slog.Int("id", e.ID))
	}
	return stats
}

func edited(prior, def string) bool {
	return prior != "" && prior != def
}

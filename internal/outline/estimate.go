package outline

import (
	"math"
	"strconv"

	"github.com/starford/deroule/internal/apperr"
	"github.com/starford/deroule/internal/models"
)

// HoursPerDay is the number of working hours in a training day.
const HoursPerDay = 7

// EstimateStats describes how a course duration was distributed.
type EstimateStats struct {
	SlideUnits     int
	MinutesPerUnit float64
	Estimated      int // chapters that received an estimate
}

// Estimate distributes days of training over the chapters of entries in
// proportion to their slide units. Only chapters whose duration still
// carries the estimate marker are updated; the result keeps the marker.
func Estimate(entries []models.Entry, days int) (EstimateStats, error) {
	var stats EstimateStats
	for _, e := range entries {
		if e.Level == models.LevelChapter {
			stats.SlideUnits += e.NbSubChapter
		}
	}
	if stats.SlideUnits <= 0 {
		return stats, apperr.ErrNoSlideUnits
	}

	stats.MinutesPerUnit = float64(days*HoursPerDay*60) / float64(stats.SlideUnits)

	for i := range entries {
		e := &entries[i]
		if e.Level != models.LevelChapter || !e.IsEstimate() {
			continue
		}
		minutes := math.RoundToEven(float64(e.NbSubChapter) * stats.MinutesPerUnit)
		e.Duration = models.EstimateMarker + strconv.Itoa(int(minutes))
		stats.Estimated++
	}
	return stats, nil
}

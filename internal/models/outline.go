// Package models defines the domain types for deroule.
package models

import "strings"

// EstimateMarker prefixes a duration that was computed rather than confirmed by a human.
const EstimateMarker = "~"

// Outline levels.
const (
	LevelChapter = 1
	LevelSection = 2
)

// Kind records where an entry came from. It is not persisted.
type Kind int

const (
	KindHeading Kind = iota
	KindPractical
)

// Entry is one row of the pedagogical schedule.
type Entry struct {
	ID           int
	Level        int
	Title        string
	Activity     string
	Tool         string
	Objective    string
	Duration     string
	NbSubChapter int
	Kind         Kind
}

// IsEstimate reports whether the entry's duration still carries the estimate marker.
func (e Entry) IsEstimate() bool {
	return IsEstimate(e.Duration)
}

// IsEstimate reports whether a duration value is an unconfirmed estimate.
func IsEstimate(duration string) bool {
	return strings.HasPrefix(duration, EstimateMarker)
}

// Defaults holds the field values applied to every entry of a slide file
// unless its frontmatter overrides them.
type Defaults struct {
	Activity   string
	ActivityTP string
	Tool       string
	Objective  string
	Duration   string
}

// Overrides is the subset of Defaults a frontmatter block sets. Nil fields are absent.
type Overrides struct {
	Activity   *string
	ActivityTP *string
	Tool       *string
	Objective  *string
	Duration   *string
}

// With returns a copy of d with every present override applied.
func (d Defaults) With(o Overrides) Defaults {
	out := d
	if o.Activity != nil {
		out.Activity = *o.Activity
	}
	if o.ActivityTP != nil {
		out.ActivityTP = *o.ActivityTP
	}
	if o.Tool != nil {
		out.Tool = *o.Tool
	}
	if o.Objective != nil {
		out.Objective = *o.Objective
	}
	if o.Duration != nil {
		out.Duration = *o.Duration
	}
	return out
}

// DefaultDefaults returns the process-wide defaults used when no configuration overrides them.
func DefaultDefaults() Defaults {
	return Defaults{
		Activity:   "Slides et Explication",
		ActivityTP: "TP et Démo",
		Tool:       "Strigo",
		Objective:  "To be defined",
		Duration:   EstimateMarker + "0",
	}
}

// Plan is what the course plan document declares.
type Plan struct {
	Name string
	Days int
}

// Package schedule runs the extraction pipeline for one course and persists
// the resulting table.
package schedule

import "path/filepath"

// Layout locates the course inputs and outputs, relative to the course root.
type Layout struct {
	PlanFile     string
	SlidesDir    string
	ManifestFile string
	DataDir      string
	StagingFile  string
}

// DefaultLayout returns the conventional course layout.
func DefaultLayout() Layout {
	return Layout{
		PlanFile:     "PLAN.md",
		SlidesDir:    "Slides",
		ManifestFile: "slides.json",
		DataDir:      "data",
		StagingFile:  filepath.Join("tmp", "tmp.csv"),
	}
}

// TablePath returns where the table of course is stored.
func (l Layout) TablePath(course string) string {
	return filepath.Join(l.DataDir, course+".csv")
}

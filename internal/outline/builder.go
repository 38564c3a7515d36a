// Package outline turns slide decks into an ordered schedule outline and
// estimates chapter durations.
package outline

import (
	"slices"

	"github.com/starford/deroule/internal/models"
)

// Builder owns the growing outline. Append assigns each entry its position as ID.
type Builder struct {
	entries []models.Entry
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Append stores e with ID set to the current outline length and returns the stored entry.
func (b *Builder) Append(e models.Entry) models.Entry {
	e.ID = len(b.entries)
	b.entries = append(b.entries, e)
	return e
}

// Len returns the number of entries appended so far.
func (b *Builder) Len() int {
	return len(b.entries)
}

// Entries returns a copy of the outline in insertion order.
func (b *Builder) Entries() []models.Entry {
	return slices.Clone(b.entries)
}

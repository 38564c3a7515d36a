// Package apperr defines the error kinds shared across the pipeline.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrConfiguration = errors.New("configuration error")
	ErrFormat        = errors.New("format error")

	// ErrNoSlideUnits is returned when no chapter carries a slide count, so
	// the course duration cannot be distributed.
	ErrNoSlideUnits = fmt.Errorf("%w: no slide units to distribute duration over", ErrConfiguration)
)

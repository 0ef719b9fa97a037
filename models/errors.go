package models

import (
	"errors"
	"fmt"
)

// Failure modes of a scrape. Only ErrStaleElement is retried; the others are
// absorbed where they happen and leave the affected field at its default.
var (
	ErrTimeout         = errors.New("timed out waiting for page")
	ErrStaleElement    = errors.New("element reference is stale")
	ErrElementNotFound = errors.New("element not found")
	ErrExtractionEmpty = errors.New("no value matched")
)

// ScrapeError wraps a failure with the operation and listing position it hit.
type ScrapeError struct {
	Op       string
	Position int
	Err      error
}

func (e *ScrapeError) Error() string {
	if e.Position > 0 {
		return fmt.Sprintf("%s (project %d): %v", e.Op, e.Position, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ScrapeError) Unwrap() error { return e.Err }

// IsStale reports whether err means a located element went away.
func IsStale(err error) bool {
	return errors.Is(err, ErrStaleElement)
}

/*
errors.go - Centralized error types for the pricing engine

PURPOSE:
  All engine error types in one place for consistency and discoverability.
  Callers wrap these with additional context.

ERROR CATEGORIES:
  1. Configuration errors - unknown concerts, invalid catalogs/bins. Fatal:
     they indicate a miswired deployment, not a runtime condition, and are
     propagated to the caller unchanged.
  2. External decision errors - the delegated concert decider failed. Never
     surfaced: resolution always falls back to the local keyword heuristic.

  Capacity exhaustion (selling more tickets than remain) is NOT an error:
  sells clamp silently to remaining inventory.

USAGE:
    if errors.Is(err, pricing.ErrUnknownConcert) { ... }

SEE ALSO:
  - simulator.go: Uses these during day advance
  - resolver.go: Swallows decider errors via fallback
*/
package pricing

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrUnknownConcert is returned when an operation references a concert
	// name that is not in the catalog.
	ErrUnknownConcert = errors.New("concert not found")

	// ErrEmptyCatalog is returned when an engine is constructed with no
	// concerts to track.
	ErrEmptyCatalog = errors.New("catalog is empty")

	// ErrMissingTraffic is returned when a day advance is attempted with a
	// traffic map that does not cover every tracked concert. The day is not
	// committed.
	ErrMissingTraffic = errors.New("traffic missing for concert")

	// ErrDeciderUnavailable is returned by deciders that are not configured.
	// Resolution treats it like any other decider failure and falls back.
	ErrDeciderUnavailable = errors.New("decider not configured")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ConcertError wraps a sentinel with the concert it concerns.
type ConcertError struct {
	Name ConcertName
	Err  error
}

func (e *ConcertError) Error() string {
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e *ConcertError) Unwrap() error { return e.Err }

// InvalidConcertError reports a catalog entry that fails validation.
type InvalidConcertError struct {
	Name   ConcertName
	Reason string
}

func (e *InvalidConcertError) Error() string {
	return fmt.Sprintf("invalid concert %q: %s", e.Name, e.Reason)
}

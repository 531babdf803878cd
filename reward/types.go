/*
Package reward converts a purchase price into a bounded reward signal.

PURPOSE:
  Scores how good a deal a purchase was relative to the concert's observed
  price range. The range [min, max] of the price history is divided into
  equal-width bins; landing in a lower bin (cheaper relative to history)
  earns a higher reward. Preference adjustments then nudge the score toward
  concerts the user actually wanted.

KEY CONCEPTS IN THIS FILE (types.go):
  - Policy: Every scoring constant as named configuration
  - Result: Reward value, bin placement, and bin edges

POLICY PROVENANCE:
  Two divergent scoring variants existed historically, with different
  preference thresholds and adjustment magnitudes. This package implements
  exactly one canonical policy (the variant with threshold softening); the
  constants live in Policy rather than as literals so the choice is explicit
  and overridable. See DESIGN.md for the decision record.

SEE ALSO:
  - scorer.go: The scoring algorithm
  - pricing/: Produces the price history being scored
*/
package reward

import "fmt"

// =============================================================================
// POLICY - Named scoring configuration
// =============================================================================

// Policy holds every constant of the scoring rule.
type Policy struct {
	// Bins is the number of equal-width partitions of [min, max].
	Bins int

	// PreferredAbove: preferences strictly above this earn the bonus.
	PreferredAbove int
	// UnwantedBelow: preferences strictly below this take the penalty.
	UnwantedBelow int

	// PreferredBonus is added when the concert is preferred.
	PreferredBonus float64
	// UnwantedPenalty is subtracted when the concert is unwanted.
	UnwantedPenalty float64

	// SoftenAtOrBelow triggers one more correction when the adjusted reward
	// is still at or below it: a softening bonus for preferred concerts, an
	// extra penalty otherwise.
	SoftenAtOrBelow float64
	SoftenBonus     float64
	SoftenPenalty   float64
}

// DefaultPolicy returns the canonical scoring policy.
func DefaultPolicy() Policy {
	return Policy{
		Bins:            5,
		PreferredAbove:  50,
		UnwantedBelow:   30,
		PreferredBonus:  0.25,
		UnwantedPenalty: 1.5,
		SoftenAtOrBelow: 2.0,
		SoftenBonus:     0.75,
		SoftenPenalty:   1.0,
	}
}

// Validate rejects malformed policies. A non-positive bin count is a
// configuration error; fail fast instead of scoring defensively.
func (p Policy) Validate() error {
	if p.Bins <= 0 {
		return &InvalidPolicyError{Field: "Bins", Reason: "must be positive"}
	}
	return nil
}

// InvalidPolicyError reports a policy field that fails validation.
type InvalidPolicyError struct {
	Field  string
	Reason string
}

func (e *InvalidPolicyError) Error() string {
	return fmt.Sprintf("invalid reward policy: %s %s", e.Field, e.Reason)
}

// =============================================================================
// RESULT - Scoring output
// =============================================================================

// Result carries the reward and how it was derived.
type Result struct {
	// Reward is the final score, never negative.
	Reward float64

	// BinIndex is the 1-based bin the clipped price landed in, or
	// BinNone when the history was empty.
	BinIndex int

	// Edges are the Bins+1 bin boundaries from min to max. For a degenerate
	// history (all prices equal) every edge is that single price. Nil when
	// the history was empty.
	Edges []float64
}

// BinNone is the BinIndex sentinel for an empty price history.
const BinNone = 0

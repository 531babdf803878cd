/*
scorer.go - Bin-based reward scoring

PURPOSE:
  Implements the scoring rule:

  1. Empty history -> zero reward, no bin.
  2. Degenerate history (min == max) -> maximum base reward: with no price
     spread, any purchase is as good as it gets.
  3. Otherwise clip the purchased price into [min, max], digitize it into
     one of Bins equal-width bins (right-inclusive: a price exactly on an
     edge falls into the lower bin), and take base = Bins - bin.
  4. Preference adjustment, then threshold softening, then floor at zero.

SEE ALSO:
  - types.go: Policy constants and Result shape
*/
package reward

// Score rates a purchase against a concert's price history under the given
// policy. The history is expected to already include the current-day price.
// Malformed policies are rejected by Policy.Validate at configuration time;
// Score revalidates and panics on one, treating it as caller misuse rather
// than a runtime condition.
func Score(history []float64, purchasedPrice float64, preference int, policy Policy) Result {
	if err := policy.Validate(); err != nil {
		panic(err)
	}

	if len(history) == 0 {
		return Result{Reward: 0, BinIndex: BinNone}
	}

	minP, maxP := history[0], history[0]
	for _, p := range history[1:] {
		if p < minP {
			minP = p
		}
		if p > maxP {
			maxP = p
		}
	}

	if minP == maxP {
		edges := make([]float64, policy.Bins+1)
		for i := range edges {
			edges[i] = minP
		}
		return Result{Reward: float64(policy.Bins - 1), BinIndex: 1, Edges: edges}
	}

	clipped := clip(purchasedPrice, minP, maxP)
	edges := binEdges(minP, maxP, policy.Bins)
	bin := digitize(clipped, edges)
	if bin < 1 {
		bin = 1
	}
	if bin > policy.Bins {
		bin = policy.Bins
	}

	reward := float64(policy.Bins - bin)
	if reward < 0 {
		reward = 0
	}

	// Preference adjustment: small bonus for wanted concerts, larger
	// penalty for unwanted ones.
	switch {
	case preference > policy.PreferredAbove:
		reward += policy.PreferredBonus
	case preference < policy.UnwantedBelow:
		reward -= policy.UnwantedPenalty
	}

	// Threshold softening: one more correction when the reward is still low.
	if reward <= policy.SoftenAtOrBelow {
		if preference > policy.PreferredAbove {
			reward += policy.SoftenBonus
		} else {
			reward -= policy.SoftenPenalty
		}
	}

	if reward < 0 {
		reward = 0
	}
	return Result{Reward: reward, BinIndex: bin, Edges: edges}
}

func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// binEdges builds Bins+1 evenly spaced boundaries from min to max. The last
// edge is pinned to max so float drift cannot push the ceiling below it.
func binEdges(minP, maxP float64, bins int) []float64 {
	edges := make([]float64, bins+1)
	width := (maxP - minP) / float64(bins)
	for i := 0; i <= bins; i++ {
		edges[i] = minP + float64(i)*width
	}
	edges[bins] = maxP
	return edges
}

// digitize returns the right-inclusive bin index: the count of edges
// strictly below v. A value exactly on an edge lands in the lower bin.
func digitize(v float64, edges []float64) int {
	idx := 0
	for _, e := range edges {
		if v > e {
			idx++
		}
	}
	return idx
}

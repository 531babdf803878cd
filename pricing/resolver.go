/*
resolver.go - Preference resolution and the delegated concert decision

PURPOSE:
  Turns free-text user intent into engine state and purchase decisions.

  Two layers:
  1. Preference resolution (local, deterministic): a case-insensitive
     containment match of concert names in the prompt. The matched concert
     gets PreferenceSelected, every other concert PreferenceNotInterested.
     At most one concert is selected per resolution; no match drops all
     concerts to the not-interested level.
  2. Concert decision (delegated): a Decider capability picks the concert to
     buy, or the Wait sentinel. Deciders are external services that may fail,
     time out, or answer garbage; every such outcome degrades to a local
     heuristic (keyword match, then cheapest/costliest by latest price, then
     a random pick). Decision resolution therefore never returns an error.

SEE ALSO:
  - decision/: The LLM-backed Decider implementation
  - simulator.go: Calls preference resolution at the top of every day
*/
package pricing

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
)

// DecisionWait is the sentinel a Decider returns to advise against buying
// today.
const DecisionWait = "Wait"

// Decider picks one concert name (or DecisionWait) from free-text intent and
// the current read-only state. Implementations are replaceable capabilities;
// callers must tolerate errors and unrecognized output.
type Decider interface {
	Decide(ctx context.Context, prompt string, state StateView, available []ConcertName) (string, error)
}

// Decision is the outcome of resolving user intent to a purchase target.
type Decision struct {
	Concert ConcertName
	Wait    bool
}

// ResolvePreferences applies a user prompt to the preference state.
func (e *Engine) ResolvePreferences(prompt string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resolvePreferencesLocked(prompt)
}

func (e *Engine) resolvePreferencesLocked(prompt string) {
	selected, found := e.matchConcertLocked(prompt)

	for _, c := range e.catalog {
		if found && c.Name == selected {
			e.preferences[c.Name] = PreferenceSelected
		} else {
			e.preferences[c.Name] = PreferenceNotInterested
		}
	}
}

// matchConcertLocked finds the first concert (catalog order) whose name
// appears in the prompt, case-insensitively.
func (e *Engine) matchConcertLocked(prompt string) (ConcertName, bool) {
	lower := strings.ToLower(prompt)
	for _, c := range e.catalog {
		if strings.Contains(lower, strings.ToLower(string(c.Name))) {
			return c.Name, true
		}
	}
	return "", false
}

// =============================================================================
// DECISION RESOLUTION
// =============================================================================

// Decide resolves the prompt to a purchase decision via the given Decider,
// falling back to the local heuristic whenever the decider is nil, fails, or
// answers something that maps to neither a known concert nor DecisionWait.
func (e *Engine) Decide(ctx context.Context, prompt string, decider Decider) Decision {
	if decider == nil {
		return e.fallbackDecision(prompt)
	}

	answer, err := decider.Decide(ctx, prompt, e.State(), e.Catalog().Names())
	if err != nil {
		return e.fallbackDecision(prompt)
	}

	answer = strings.TrimSpace(answer)
	if name, ok := e.mapAnswer(answer); ok {
		return Decision{Concert: name}
	}
	if strings.EqualFold(answer, DecisionWait) {
		return Decision{Wait: true}
	}
	return e.fallbackDecision(prompt)
}

// mapAnswer matches decider output to a known concert by case-insensitive
// containment, so "I'd pick Coldplay" resolves the same as "Coldplay".
func (e *Engine) mapAnswer(answer string) (ConcertName, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.matchConcertLocked(answer)
}

// fallbackDecision is the deterministic local heuristic: keyword match,
// then cheapest/costliest by latest price, then a random catalog pick.
func (e *Engine) fallbackDecision(prompt string) Decision {
	e.mu.Lock()
	defer e.mu.Unlock()

	if name, ok := e.matchConcertLocked(prompt); ok {
		return Decision{Concert: name}
	}

	lower := strings.ToLower(prompt)
	if strings.Contains(lower, "cheapest") {
		return Decision{Concert: e.extremeByPriceLocked(true)}
	}
	if strings.Contains(lower, "costliest") || strings.Contains(lower, "most expensive") {
		return Decision{Concert: e.extremeByPriceLocked(false)}
	}

	pick := e.catalog[e.rng.Intn(len(e.catalog))]
	return Decision{Concert: pick.Name}
}

// extremeByPriceLocked returns the concert with the lowest (or highest)
// latest price, using the base price before any history exists.
func (e *Engine) extremeByPriceLocked(cheapest bool) ConcertName {
	best := e.catalog[0]
	bestPrice := e.latestPriceLocked(best.Name)

	for _, c := range e.catalog[1:] {
		price := e.latestPriceLocked(c.Name)
		if (cheapest && price.LessThan(bestPrice)) || (!cheapest && price.GreaterThan(bestPrice)) {
			best = c
			bestPrice = price
		}
	}
	return best.Name
}

func (e *Engine) latestPriceLocked(name ConcertName) decimal.Decimal {
	if history := e.priceHistory[name]; len(history) > 0 {
		return history[len(history)-1]
	}
	concert, _ := e.catalog.Find(name)
	return concert.BasePrice
}

/*
calculator.go - Price computation with the median ratchet

PURPOSE:
  Combines a concert's base price with the four demand multipliers and the
  historical-median floor to produce the day's price.

PRICE FORMULA:
  raw   = round2(base x time x inventory x traffic x preference)
  final = max(raw, median(price_history))   once history is non-empty

  The floor is a ratchet: a price can never fall below the median of all
  previously observed prices for that concert, so the effective price never
  drops below half the observed distribution.

PRECISION:
  All arithmetic is decimal.Decimal. Rounding to 2 places happens on the raw
  product, before the floor comparison, matching the recorded history.

SEE ALSO:
  - multipliers.go: The factor functions
  - simulator.go: Appends results to the price history
*/
package pricing

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Price computes the current-day price for a concert at the given traffic
// level. Read-only: the caller (the day simulator) owns history appends.
// Returns ErrUnknownConcert for names outside the catalog.
func (e *Engine) Price(name ConcertName, traffic int) (decimal.Decimal, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.priceLocked(name, traffic)
}

func (e *Engine) priceLocked(name ConcertName, traffic int) (decimal.Decimal, error) {
	concert, ok := e.catalog.Find(name)
	if !ok {
		return decimal.Zero, &ConcertError{Name: name, Err: ErrUnknownConcert}
	}

	raw := concert.BasePrice.
		Mul(TimeMultiplier(concert.EventDate, e.currentDate)).
		Mul(InventoryMultiplier(e.soldTickets[name], concert.TotalTickets)).
		Mul(TrafficMultiplier(traffic)).
		Mul(PreferenceMultiplier(e.preferences[name])).
		Round(2)

	history := e.priceHistory[name]
	if len(history) == 0 {
		return raw, nil
	}

	floor := Median(history)
	if raw.LessThan(floor) {
		return floor, nil
	}
	return raw, nil
}

// Median returns the median of a non-empty price series. For even-length
// series it is the mean of the two middle values, matching the statistical
// median used to build the floor.
func Median(prices []decimal.Decimal) decimal.Decimal {
	sorted := make([]decimal.Decimal, len(prices))
	copy(sorted, prices)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].LessThan(sorted[j]) })

	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	two := decimal.NewFromInt(2)
	return sorted[n/2-1].Add(sorted[n/2]).Div(two)
}

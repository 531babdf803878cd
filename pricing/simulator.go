/*
simulator.go - Engine state and the day loop

PURPOSE:
  The Engine owns all mutable simulation state: the current simulated date,
  per-concert sold-ticket counts, the append-only price history, and the
  per-concert preference scores. AdvanceDay drives one full simulated day
  across every tracked concert.

DAY SEQUENCE (AdvanceDay):
  1. Validate the traffic map covers every concert (nothing mutates on error)
  2. Resolve preferences from the free-text prompt
  3. Per concert, in catalog order:
     - compute the day's price and append it to the history
     - sell a random number of tickets derived from traffic (clamped)
     - score a hypothetical purchase at today's price
  4. Advance the calendar by one day and return the full snapshot

ATOMICITY:
  A day is all-or-nothing. The only fallible step is the upfront traffic
  validation; every later step is total over validated input, so an error
  return guarantees no state was touched.

RANDOMNESS:
  The ticket-sale count is the only stochastic input. It flows through an
  injectable IntSource so tests seed it and assert exact outcomes.

CONCURRENCY:
  All exported methods hold the engine mutex. One simulated day is in flight
  at a time, which also serializes the HTTP handlers and the day scheduler.

SEE ALSO:
  - calculator.go: Price computation
  - resolver.go: Preference resolution
  - reward/: Purchase scoring
*/
package pricing

import (
	"math/rand"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/warp/ticket-engine/reward"
)

// =============================================================================
// RANDOM SOURCE - Injectable randomness
// =============================================================================

// IntSource yields random integers in [0, n). *rand.Rand satisfies it;
// tests inject a seeded instance.
type IntSource interface {
	Intn(n int) int
}

// =============================================================================
// ENGINE - Process-lifetime simulation state
// =============================================================================

// Engine is the single mutable state object for one simulated timeline.
// Create it once at startup and share it; it has no teardown.
type Engine struct {
	mu sync.Mutex

	catalog      Catalog
	currentDate  TimePoint
	soldTickets  map[ConcertName]int
	priceHistory map[ConcertName][]decimal.Decimal
	preferences  map[ConcertName]int

	rng    IntSource
	policy reward.Policy
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithStartDate pins the simulated calendar's first day. Defaults to today.
func WithStartDate(tp TimePoint) Option {
	return func(e *Engine) { e.currentDate = tp }
}

// WithRand injects the random source used for ticket-sale counts.
func WithRand(src IntSource) Option {
	return func(e *Engine) { e.rng = src }
}

// WithRewardPolicy overrides the default scoring policy.
func WithRewardPolicy(p reward.Policy) Option {
	return func(e *Engine) { e.policy = p }
}

// NewEngine creates engine state for the given catalog. The catalog must be
// non-empty, every concert positively priced and stocked, and the reward
// policy valid; violations are configuration errors and fail construction.
func NewEngine(catalog Catalog, opts ...Option) (*Engine, error) {
	if len(catalog) == 0 {
		return nil, ErrEmptyCatalog
	}
	for _, c := range catalog {
		if !c.BasePrice.IsPositive() {
			return nil, &InvalidConcertError{Name: c.Name, Reason: "base price must be positive"}
		}
		if c.TotalTickets <= 0 {
			return nil, &InvalidConcertError{Name: c.Name, Reason: "total tickets must be positive"}
		}
	}

	e := &Engine{
		catalog:      catalog,
		currentDate:  Today(),
		soldTickets:  make(map[ConcertName]int, len(catalog)),
		priceHistory: make(map[ConcertName][]decimal.Decimal, len(catalog)),
		preferences:  make(map[ConcertName]int, len(catalog)),
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		policy:       reward.DefaultPolicy(),
	}
	for _, c := range catalog {
		e.soldTickets[c.Name] = 0
		e.priceHistory[c.Name] = nil
		e.preferences[c.Name] = PreferenceNeutral
	}
	for _, opt := range opts {
		opt(e)
	}

	if err := e.policy.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// RewardPolicy returns the scoring policy the engine was configured with.
func (e *Engine) RewardPolicy() reward.Policy {
	return e.policy
}

// Catalog returns the tracked concerts in canonical order.
func (e *Engine) Catalog() Catalog {
	out := make(Catalog, len(e.catalog))
	copy(out, e.catalog)
	return out
}

// =============================================================================
// DAY ADVANCE
// =============================================================================

// AdvanceDay runs one simulated day for every tracked concert and moves the
// calendar forward. The returned snapshot covers all concerts regardless of
// which one the caller intends to purchase.
func (e *Engine) AdvanceDay(prompt string, traffic map[ConcertName]int) (DaySnapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	// Validate before touching anything: this is the only fallible step,
	// so an error leaves the day uncommitted.
	for _, c := range e.catalog {
		if _, ok := traffic[c.Name]; !ok {
			return DaySnapshot{}, &ConcertError{Name: c.Name, Err: ErrMissingTraffic}
		}
	}

	e.resolvePreferencesLocked(prompt)

	snapshot := DaySnapshot{
		Date:     e.currentDate,
		Concerts: make(map[ConcertName]ConcertDay, len(e.catalog)),
	}

	for _, c := range e.catalog {
		dayTraffic := traffic[c.Name]

		price, err := e.priceLocked(c.Name, dayTraffic)
		if err != nil {
			// Unreachable: names come from the catalog itself.
			return DaySnapshot{}, err
		}
		e.priceHistory[c.Name] = append(e.priceHistory[c.Name], price)

		soldToday := e.sellLocked(c.Name, e.dailyDemand(dayTraffic))

		history := e.priceHistory[c.Name]
		result := reward.Score(toFloats(history), priceFloat(price), e.preferences[c.Name], e.policy)

		snapshot.Concerts[c.Name] = ConcertDay{
			Price:      price,
			Traffic:    dayTraffic,
			Preference: e.preferences[c.Name],
			SoldToday:  soldToday,
			TotalSold:  e.soldTickets[c.Name],
			Remaining:  c.TotalTickets - e.soldTickets[c.Name],
			FloorPrice: Median(history),
			Reward:     result.Reward,
		}
	}

	e.currentDate = e.currentDate.AddDays(1)
	return snapshot, nil
}

// dailyDemand converts traffic into a random sale count in
// [0, max(1, traffic/10)].
func (e *Engine) dailyDemand(traffic int) int {
	ceiling := traffic / 10
	if ceiling < 1 {
		ceiling = 1
	}
	return e.rng.Intn(ceiling + 1)
}

// Sell records n tickets sold, clamping to remaining capacity. Returns the
// number actually sold. Overselling is a soft condition, never an error.
func (e *Engine) Sell(name ConcertName, n int) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.catalog.Find(name); !ok {
		return 0, &ConcertError{Name: name, Err: ErrUnknownConcert}
	}
	return e.sellLocked(name, n), nil
}

func (e *Engine) sellLocked(name ConcertName, n int) int {
	concert, _ := e.catalog.Find(name)
	remaining := concert.TotalTickets - e.soldTickets[name]
	if n > remaining {
		n = remaining
	}
	if n < 0 {
		n = 0
	}
	e.soldTickets[name] += n
	return n
}

// =============================================================================
// QUERY SURFACE - Read-only state access
// =============================================================================

// ConcertState is the read-only view of one concert for UI/agent callers.
type ConcertState struct {
	LatestPrice decimal.Decimal // last simulated price, or base price before day one
	Remaining   int
	Preference  int
}

// StateView is the full read-only engine state.
type StateView struct {
	Date     TimePoint
	Concerts map[ConcertName]ConcertState
}

// State returns the query surface: per concert the latest (or base) price,
// remaining tickets, and current preference, plus the simulated date.
func (e *Engine) State() StateView {
	e.mu.Lock()
	defer e.mu.Unlock()

	view := StateView{
		Date:     e.currentDate,
		Concerts: make(map[ConcertName]ConcertState, len(e.catalog)),
	}
	for _, c := range e.catalog {
		latest := c.BasePrice
		if history := e.priceHistory[c.Name]; len(history) > 0 {
			latest = history[len(history)-1]
		}
		view.Concerts[c.Name] = ConcertState{
			LatestPrice: latest,
			Remaining:   c.TotalTickets - e.soldTickets[c.Name],
			Preference:  e.preferences[c.Name],
		}
	}
	return view
}

// CurrentDate returns the simulated calendar day.
func (e *Engine) CurrentDate() TimePoint {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentDate
}

// PriceHistory returns a copy of a concert's full price series.
func (e *Engine) PriceHistory(name ConcertName) []decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()

	history := e.priceHistory[name]
	out := make([]decimal.Decimal, len(history))
	copy(out, history)
	return out
}

// Sold returns the total tickets sold for a concert.
func (e *Engine) Sold(name ConcertName) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.soldTickets[name]
}

// Preference returns the current interest score for a concert.
func (e *Engine) Preference(name ConcertName) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.preferences[name]
}

// RandomTraffic generates a traffic map with one draw per concert in
// [min, max], using the engine's random source.
func (e *Engine) RandomTraffic(min, max int) map[ConcertName]int {
	e.mu.Lock()
	defer e.mu.Unlock()

	traffic := make(map[ConcertName]int, len(e.catalog))
	for _, c := range e.catalog {
		traffic[c.Name] = min + e.rng.Intn(max-min+1)
	}
	return traffic
}

// =============================================================================
// HELPERS
// =============================================================================

func toFloats(prices []decimal.Decimal) []float64 {
	out := make([]float64, len(prices))
	for i, p := range prices {
		out[i] = priceFloat(p)
	}
	return out
}

func priceFloat(p decimal.Decimal) float64 {
	f, _ := p.Float64()
	return f
}

/*
Package pricing provides the dynamic ticket pricing engine.

PURPOSE:
  This package contains the state and algorithms for simulating day-by-day
  concert ticket pricing. Each simulated day, every tracked concert gets a
  price computed from its base price and four demand multipliers, subject to
  a historical-median floor. Ticket sales are simulated from web traffic, and
  every purchase is scored against the concert's accumulated price history.

KEY CONCEPTS IN THIS FILE (types.go):
  - Concert: Immutable definition (base price, inventory, event date)
  - Catalog: Ordered set of tracked concerts
  - DaySnapshot / ConcertDay: Per-day pricing and sales output
  - Preference levels: Named interest values in [0,100]

DESIGN PRINCIPLES:
  1. Precision: Uses decimal.Decimal for all price arithmetic
  2. Determinism: All randomness flows through an injectable IntSource
  3. Explicit state: One Engine value owns all mutable simulation state;
     no package-level globals

SEE ALSO:
  - multipliers.go: The four demand factor functions
  - calculator.go: Price computation with the median floor
  - simulator.go: The day loop and Engine state
  - resolver.go: Free-text preference resolution
*/
package pricing

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// CONCERT - Immutable event definition
// =============================================================================

// ConcertName identifies a concert. Names are unique within a catalog.
type ConcertName string

// Concert describes one tracked event. All fields are fixed at catalog
// construction; only engine state (sales, history, preference) changes.
type Concert struct {
	Name         ConcertName
	BasePrice    decimal.Decimal
	TotalTickets int
	EventDate    TimePoint
}

// Catalog is the ordered list of tracked concerts. Iteration over the
// simulation always follows catalog order so output is reproducible.
type Catalog []Concert

// Names returns the concert names in catalog order.
func (c Catalog) Names() []ConcertName {
	names := make([]ConcertName, len(c))
	for i, concert := range c {
		names[i] = concert.Name
	}
	return names
}

// Find returns the concert with the given name, or false if absent.
func (c Catalog) Find(name ConcertName) (Concert, bool) {
	for _, concert := range c {
		if concert.Name == name {
			return concert, true
		}
	}
	return Concert{}, false
}

// =============================================================================
// PREFERENCE - Per-concert interest level
// =============================================================================

// Preference values are integers in [0,100]. Resolution of a user prompt
// marks at most one concert as selected; everything else drops to the
// not-interested level.
const (
	PreferenceSelected      = 95 // the concert the prompt asks for
	PreferenceNotInterested = 40 // every other concert after a resolution
	PreferenceNeutral       = 50 // initial value before any resolution
)

// =============================================================================
// DAY SNAPSHOT - Output of one simulated day
// =============================================================================

// ConcertDay captures one concert's pricing and sales for a single day.
type ConcertDay struct {
	Price      decimal.Decimal
	Traffic    int
	Preference int
	SoldToday  int
	TotalSold  int
	Remaining  int
	FloorPrice decimal.Decimal // median of the price history including today
	Reward     float64
}

// DaySnapshot maps every tracked concert to its ConcertDay. It is ephemeral:
// the engine does not retain snapshots, callers persist what they need.
type DaySnapshot struct {
	Date     TimePoint // the simulated day the snapshot describes
	Concerts map[ConcertName]ConcertDay
}

/*
multipliers.go - The four demand multipliers

PURPOSE:
  Pure functions mapping engine state to positive scalar factors. The final
  price is base_price x time x inventory x traffic x preference, so each
  function here models exactly one demand signal.

MULTIPLIERS:
  Time:       Far-out events discount, last-week events surge
  Inventory:  Scarcity premium as remaining tickets shrink
  Traffic:    Visit volume as a demand proxy
  Preference: Inferred user interest nudges the price

  All thresholds are named constants so the bands are auditable in one place.
  Each function is total and deterministic; none touches engine state.

SEE ALSO:
  - calculator.go: Combines these into the final price
*/
package pricing

import (
	"github.com/shopspring/decimal"
)

// Time multiplier bands (days until the event).
const (
	timeFarOutDays   = 30 // more than this -> early-bird discount
	timeLastRushDays = 7  // fewer than this -> late surge
)

var (
	timeFarOutMult   = decimal.NewFromFloat(0.85)
	timeMidMult      = decimal.NewFromFloat(1.00)
	timeLastRushMult = decimal.NewFromFloat(1.25)
)

// TimeMultiplier prices by proximity to the event date. Dates past the
// event fall into the last-rush band; the engine keeps pricing after the
// event rather than guarding (see DESIGN.md).
func TimeMultiplier(eventDate, currentDate TimePoint) decimal.Decimal {
	daysUntil := DaysBetween(currentDate, eventDate)
	switch {
	case daysUntil > timeFarOutDays:
		return timeFarOutMult
	case daysUntil >= timeLastRushDays:
		return timeMidMult
	default:
		return timeLastRushMult
	}
}

// Inventory multiplier bands (remaining / total).
const (
	inventoryComfortRatio = 0.5 // above this -> no premium
	inventoryScarceRatio  = 0.2 // at or below this -> heavy premium
)

var (
	inventoryComfortMult = decimal.NewFromFloat(1.00)
	inventoryTightMult   = decimal.NewFromFloat(1.15)
	inventoryScarceMult  = decimal.NewFromFloat(1.35)
)

// InventoryMultiplier applies a scarcity premium from the sold/total ratio.
func InventoryMultiplier(sold, total int) decimal.Decimal {
	remainingRatio := float64(total-sold) / float64(total)
	switch {
	case remainingRatio > inventoryComfortRatio:
		return inventoryComfortMult
	case remainingRatio > inventoryScarceRatio:
		return inventoryTightMult
	default:
		return inventoryScarceMult
	}
}

// Traffic multiplier bands (daily visit count).
const (
	trafficQuietBelow = 30
	trafficBusyAt     = 70
)

var (
	trafficQuietMult  = decimal.NewFromFloat(0.95)
	trafficNormalMult = decimal.NewFromFloat(1.00)
	trafficBusyMult   = decimal.NewFromFloat(1.20)
)

// TrafficMultiplier prices by web traffic volume.
func TrafficMultiplier(traffic int) decimal.Decimal {
	switch {
	case traffic < trafficQuietBelow:
		return trafficQuietMult
	case traffic < trafficBusyAt:
		return trafficNormalMult
	default:
		return trafficBusyMult
	}
}

// Preference multiplier bands (interest score 0-100).
const (
	preferenceCoolBelow = 50
	preferenceKeenAt    = 70
)

var (
	preferenceCoolMult = decimal.NewFromFloat(0.90)
	preferenceMidMult  = decimal.NewFromFloat(1.00)
	preferenceKeenMult = decimal.NewFromFloat(1.15)
)

// PreferenceMultiplier prices by the inferred interest score.
func PreferenceMultiplier(preference int) decimal.Decimal {
	switch {
	case preference < preferenceCoolBelow:
		return preferenceCoolMult
	case preference < preferenceKeenAt:
		return preferenceMidMult
	default:
		return preferenceKeenMult
	}
}

/*
Package factory provides JSON to Go catalog conversion.

PURPOSE:
  Converts JSON catalog definitions into a pricing.Catalog and an optional
  reward.Policy override. This enables lineup configuration without code
  changes - operators define concerts in JSON and the factory builds the
  proper Go structs.

JSON SCHEMA:
  {
    "concerts": [
      {
        "name": "Coldplay",
        "base_price": 7000,
        "total_tickets": 1000,
        "event_date": "2025-09-20"
      }
    ],
    "reward_policy": {
      "bins": 5,
      "preferred_above": 50,
      "unwanted_below": 30,
      "preferred_bonus": 0.25,
      "unwanted_penalty": 1.5,
      "soften_at_or_below": 2.0,
      "soften_bonus": 0.75,
      "soften_penalty": 1.0
    }
  }

VALIDATION:
  Structural validation uses go-playground/validator struct tags (required
  fields, positive prices and inventories, date format). Violations are
  configuration errors and abort startup.

USAGE:
  f := factory.NewCatalogFactory()
  catalog, policy, err := f.Parse(jsonBytes)

  // Or the built-in lineup:
  catalog, policy := factory.DefaultCatalog()

SEE ALSO:
  - pricing/types.go: Catalog and Concert definitions
  - reward/types.go: Policy definition
  - cmd/server/main.go: Loads the catalog file at startup
*/
package factory

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/warp/ticket-engine/pricing"
	"github.com/warp/ticket-engine/reward"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// CatalogJSON is the JSON representation of a concert lineup.
type CatalogJSON struct {
	Concerts     []ConcertJSON     `json:"concerts" validate:"required,min=1,dive"`
	RewardPolicy *RewardPolicyJSON `json:"reward_policy,omitempty"`
}

// ConcertJSON represents one concert definition.
type ConcertJSON struct {
	Name         string  `json:"name" validate:"required"`
	BasePrice    float64 `json:"base_price" validate:"required,gt=0"`
	TotalTickets int     `json:"total_tickets" validate:"required,gt=0"`
	EventDate    string  `json:"event_date" validate:"required,datetime=2006-01-02"`
}

// RewardPolicyJSON overrides the default scoring constants.
type RewardPolicyJSON struct {
	Bins            int     `json:"bins" validate:"required,gt=0"`
	PreferredAbove  int     `json:"preferred_above" validate:"gte=0,lte=100"`
	UnwantedBelow   int     `json:"unwanted_below" validate:"gte=0,lte=100"`
	PreferredBonus  float64 `json:"preferred_bonus"`
	UnwantedPenalty float64 `json:"unwanted_penalty"`
	SoftenAtOrBelow float64 `json:"soften_at_or_below"`
	SoftenBonus     float64 `json:"soften_bonus"`
	SoftenPenalty   float64 `json:"soften_penalty"`
}

// =============================================================================
// CATALOG FACTORY
// =============================================================================

// CatalogFactory converts JSON definitions to engine types.
type CatalogFactory struct {
	validate *validator.Validate
}

// NewCatalogFactory creates a factory with a fresh validator.
func NewCatalogFactory() *CatalogFactory {
	return &CatalogFactory{validate: validator.New()}
}

// Parse converts a JSON document to a catalog and reward policy. The policy
// is the default unless the document overrides it.
func (f *CatalogFactory) Parse(data []byte) (pricing.Catalog, reward.Policy, error) {
	var doc CatalogJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, reward.Policy{}, fmt.Errorf("parse catalog JSON: %w", err)
	}

	if err := f.validate.Struct(doc); err != nil {
		return nil, reward.Policy{}, fmt.Errorf("validate catalog: %w", err)
	}

	seen := make(map[string]bool, len(doc.Concerts))
	catalog := make(pricing.Catalog, 0, len(doc.Concerts))
	for _, c := range doc.Concerts {
		if seen[c.Name] {
			return nil, reward.Policy{}, fmt.Errorf("duplicate concert name %q", c.Name)
		}
		seen[c.Name] = true

		eventDate, err := pricing.ParseTimePoint(c.EventDate)
		if err != nil {
			return nil, reward.Policy{}, fmt.Errorf("concert %q event date: %w", c.Name, err)
		}

		catalog = append(catalog, pricing.Concert{
			Name:         pricing.ConcertName(c.Name),
			BasePrice:    decimal.NewFromFloat(c.BasePrice),
			TotalTickets: c.TotalTickets,
			EventDate:    eventDate,
		})
	}

	policy := reward.DefaultPolicy()
	if doc.RewardPolicy != nil {
		policy = reward.Policy{
			Bins:            doc.RewardPolicy.Bins,
			PreferredAbove:  doc.RewardPolicy.PreferredAbove,
			UnwantedBelow:   doc.RewardPolicy.UnwantedBelow,
			PreferredBonus:  doc.RewardPolicy.PreferredBonus,
			UnwantedPenalty: doc.RewardPolicy.UnwantedPenalty,
			SoftenAtOrBelow: doc.RewardPolicy.SoftenAtOrBelow,
			SoftenBonus:     doc.RewardPolicy.SoftenBonus,
			SoftenPenalty:   doc.RewardPolicy.SoftenPenalty,
		}
		if err := policy.Validate(); err != nil {
			return nil, reward.Policy{}, err
		}
	}

	return catalog, policy, nil
}

// ParseFile loads and parses a catalog file.
func (f *CatalogFactory) ParseFile(path string) (pricing.Catalog, reward.Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, reward.Policy{}, fmt.Errorf("read catalog file: %w", err)
	}
	return f.Parse(data)
}

// =============================================================================
// DEFAULT LINEUP
// =============================================================================

// DefaultCatalog returns the built-in demo lineup and the default reward
// policy, used when no catalog file is supplied.
func DefaultCatalog() (pricing.Catalog, reward.Policy) {
	september := func(day int) pricing.TimePoint {
		return pricing.NewTimePoint(2025, time.September, day)
	}
	return pricing.Catalog{
		{Name: "Coldplay", BasePrice: decimal.NewFromInt(7000), TotalTickets: 1000, EventDate: september(20)},
		{Name: "Arijit Singh", BasePrice: decimal.NewFromInt(5000), TotalTickets: 1500, EventDate: september(25)},
		{Name: "Taylor Swift", BasePrice: decimal.NewFromInt(9000), TotalTickets: 2000, EventDate: september(30)},
	}, reward.DefaultPolicy()
}

/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal engine model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

SEE ALSO:
  - handlers.go: Uses these types
  - pricing/record.go: Record, serialized as-is in responses
*/
package api

import (
	"github.com/warp/ticket-engine/pricing"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// ConcertDTO describes one catalog entry.
type ConcertDTO struct {
	Name         string  `json:"name"`
	BasePrice    float64 `json:"base_price"`
	TotalTickets int     `json:"total_tickets"`
	EventDate    string  `json:"event_date"`
}

// StateDTO is the read-only engine state for UI/agent callers.
type StateDTO struct {
	Prices     map[string]float64 `json:"prices"`
	Remaining  map[string]int     `json:"remaining"`
	Preference map[string]int     `json:"preference"`
	Date       string             `json:"date"`
}

// BuyRequest asks to purchase a specific concert.
type BuyRequest struct {
	Concert    string `json:"concert"`
	UserPrompt string `json:"user_prompt"`
}

// DecideRequest asks the decider to pick the concert.
type DecideRequest struct {
	UserPrompt string `json:"user_prompt"`
}

// WaitResponse is returned when the decider advises waiting. No day advance
// is forced; the caller may still advance via the admin endpoint.
type WaitResponse struct {
	Decision string   `json:"decision"`
	Message  string   `json:"message"`
	State    StateDTO `json:"state"`
}

// AdvanceRequest optionally carries a prompt for a purchase-free day advance.
type AdvanceRequest struct {
	UserPrompt string `json:"user_prompt,omitempty"`
}

// ConcertDayDTO is one concert's slice of a day snapshot.
type ConcertDayDTO struct {
	Price      float64 `json:"price"`
	Traffic    int     `json:"traffic"`
	Preference int     `json:"preference"`
	SoldToday  int     `json:"sold_today"`
	TotalSold  int     `json:"total_sold"`
	Remaining  int     `json:"remaining"`
	FloorPrice float64 `json:"floor_price"`
	Reward     float64 `json:"reward"`
}

// DaySnapshotDTO is the full output of one simulated day.
type DaySnapshotDTO struct {
	Date     string                   `json:"date"`
	Concerts map[string]ConcertDayDTO `json:"concerts"`
}

// BuyResponse pairs the persisted record with the day it came from.
type BuyResponse struct {
	pricing.Record
	Day DaySnapshotDTO `json:"day"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toStateDTO(view pricing.StateView) StateDTO {
	dto := StateDTO{
		Prices:     make(map[string]float64, len(view.Concerts)),
		Remaining:  make(map[string]int, len(view.Concerts)),
		Preference: make(map[string]int, len(view.Concerts)),
		Date:       view.Date.String(),
	}
	for name, cs := range view.Concerts {
		price, _ := cs.LatestPrice.Float64()
		dto.Prices[string(name)] = price
		dto.Remaining[string(name)] = cs.Remaining
		dto.Preference[string(name)] = cs.Preference
	}
	return dto
}

func toDaySnapshotDTO(snap pricing.DaySnapshot) DaySnapshotDTO {
	dto := DaySnapshotDTO{
		Date:     snap.Date.String(),
		Concerts: make(map[string]ConcertDayDTO, len(snap.Concerts)),
	}
	for name, day := range snap.Concerts {
		price, _ := day.Price.Float64()
		floor, _ := day.FloorPrice.Float64()
		dto.Concerts[string(name)] = ConcertDayDTO{
			Price:      price,
			Traffic:    day.Traffic,
			Preference: day.Preference,
			SoldToday:  day.SoldToday,
			TotalSold:  day.TotalSold,
			Remaining:  day.Remaining,
			FloorPrice: floor,
			Reward:     day.Reward,
		}
	}
	return dto
}

func toConcertDTOs(catalog pricing.Catalog) []ConcertDTO {
	dtos := make([]ConcertDTO, len(catalog))
	for i, c := range catalog {
		price, _ := c.BasePrice.Float64()
		dtos[i] = ConcertDTO{
			Name:         string(c.Name),
			BasePrice:    price,
			TotalTickets: c.TotalTickets,
			EventDate:    c.EventDate.String(),
		}
	}
	return dtos
}

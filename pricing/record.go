/*
record.go - Decision record shape and persistence interface

PURPOSE:
  Defines the flat record emitted for every purchase decision, and the
  interface between the engine and whatever stores those records. The engine
  only produces the record shape; persistence is a collaborator concern.

RECORD CONTENTS:
  One record per decision: the simulated date, the prompt, the chosen
  concert, the purchased price, the reward with its bin placement, and the
  traffic that shaped the day.

APPEND-ONLY CONTRACT:
  Records are never updated or deleted. The Store interface has exactly one
  write operation.

IMPLEMENTATIONS:
  - store/jsonfile: One JSON array file, rewritten in full on each append
  - store/sqlite:   Append-only SQLite table
  - pricing/store:  In-memory, for tests and development

SEE ALSO:
  - api/handlers.go: Builds and persists records
*/
package pricing

import "context"

// =============================================================================
// RECORD - One persisted purchase decision
// =============================================================================

// Record is the flat log entry for one purchase decision.
type Record struct {
	ID         string              `json:"id"`
	Date       string              `json:"date"` // ISO date of the simulated day
	UserPrompt string              `json:"user_prompt"`
	Concert    string              `json:"concert"`
	Price      float64             `json:"price"`
	Reward     float64             `json:"reward"`
	BinIndex   int                 `json:"bin_index"`
	BinEdges   []float64           `json:"bins"`
	WebTraffic map[ConcertName]int `json:"web_traffic"`
	CreatedAt  string              `json:"created_at,omitempty"`
}

// =============================================================================
// STORE - Interface for record persistence (append-only)
// =============================================================================

// Store persists decision records. Append-only: no Update, no Delete.
type Store interface {
	// Append persists one record.
	Append(ctx context.Context, rec Record) error

	// List returns every record in append order.
	List(ctx context.Context) ([]Record, error)

	// Close releases underlying resources.
	Close() error
}

/*
handlers.go - HTTP API handlers for the ticket pricing simulator

PURPOSE:
  Exposes the pricing engine via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to the engine, scorer, and record store.

ENDPOINTS:
  State:
    GET  /api/state            Read-only engine state (prices, remaining,
                               preference, simulated date)
    GET  /api/concerts         Catalog listing

  Purchases:
    POST /api/buy              Buy a named concert: advances one day,
                               scores the purchase, persists the record
    POST /api/decide           Let the decider pick (or Wait): advances a
                               day only when a purchase happens
    GET  /api/results          All persisted decision records

  Admin:
    POST /api/admin/advance    Advance one day without a purchase

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input (unknown concerts are rejected before any mutation)
  3. Call engine logic (day advance, scoring)
  4. Persist the decision record
  5. Serialize response

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, unknown concert
  - 500: Store failures
  Decider failures never produce an error response: resolution falls back
  to the local heuristic inside the engine.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - scheduler.go: Automated day advance
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/warp/ticket-engine/pricing"
	"github.com/warp/ticket-engine/reward"
)

// Daily traffic draw ranges. Manual purchases see the wider band; decider
// purchases never dip into the quiet band, mirroring agent-driven load.
const (
	buyTrafficMin    = 20
	buyTrafficMax    = 100
	decideTrafficMin = 33
	decideTrafficMax = 100
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Engine  *pricing.Engine
	Store   pricing.Store
	Decider pricing.Decider // nil = local fallback only
}

// NewHandler creates a new handler.
func NewHandler(engine *pricing.Engine, store pricing.Store, decider pricing.Decider) *Handler {
	return &Handler{Engine: engine, Store: store, Decider: decider}
}

// =============================================================================
// STATE HANDLERS
// =============================================================================

// GetState returns the query surface the UI and agents poll.
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toStateDTO(h.Engine.State()))
}

// ListConcerts returns the tracked catalog.
func (h *Handler) ListConcerts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, toConcertDTOs(h.Engine.Catalog()))
}

// ListResults returns every persisted decision record.
func (h *Handler) ListResults(w http.ResponseWriter, r *http.Request) {
	records, err := h.Store.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list results", err)
		return
	}
	if records == nil {
		records = []pricing.Record{}
	}
	writeJSON(w, http.StatusOK, records)
}

// =============================================================================
// PURCHASE HANDLERS
// =============================================================================

// Buy simulates one day and records a purchase of the named concert.
func (h *Handler) Buy(w http.ResponseWriter, r *http.Request) {
	timer := time.Now()
	defer func() { purchaseLatency.Observe(time.Since(timer).Seconds()) }()

	var req BuyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	concert := pricing.ConcertName(req.Concert)
	if _, ok := h.Engine.Catalog().Find(concert); !ok {
		// Rejected before the day advances: an unresolvable concert must
		// not mutate state.
		writeError(w, http.StatusBadRequest, "Concert not found",
			&pricing.ConcertError{Name: concert, Err: pricing.ErrUnknownConcert})
		return
	}

	traffic := h.Engine.RandomTraffic(buyTrafficMin, buyTrafficMax)
	resp, err := h.purchase(r, concert, req.UserPrompt, traffic)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to record purchase", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Decide asks the decider to pick a concert. A Wait answer returns the
// current state without advancing the day.
func (h *Handler) Decide(w http.ResponseWriter, r *http.Request) {
	timer := time.Now()
	defer func() { purchaseLatency.Observe(time.Since(timer).Seconds()) }()

	var req DecideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	decision := h.Engine.Decide(r.Context(), req.UserPrompt, h.Decider)
	if decision.Wait {
		waitDecisions.Inc()
		writeJSON(w, http.StatusOK, WaitResponse{
			Decision: pricing.DecisionWait,
			Message:  "decider chose to wait",
			State:    toStateDTO(h.Engine.State()),
		})
		return
	}

	traffic := h.Engine.RandomTraffic(decideTrafficMin, decideTrafficMax)
	resp, err := h.purchase(r, decision.Concert, req.UserPrompt, traffic)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to record purchase", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// AdvanceDay runs one simulated day without recording a purchase.
func (h *Handler) AdvanceDay(w http.ResponseWriter, r *http.Request) {
	var req AdvanceRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body", err)
			return
		}
	}

	traffic := h.Engine.RandomTraffic(buyTrafficMin, buyTrafficMax)
	snapshot, err := h.Engine.AdvanceDay(req.UserPrompt, traffic)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to advance day", err)
		return
	}
	daysSimulated.Inc()

	writeJSON(w, http.StatusOK, toDaySnapshotDTO(snapshot))
}

// purchase advances one day, scores the chosen concert against its full
// price history, persists the record, and assembles the response.
func (h *Handler) purchase(r *http.Request, concert pricing.ConcertName, prompt string, traffic map[pricing.ConcertName]int) (BuyResponse, error) {
	snapshot, err := h.Engine.AdvanceDay(prompt, traffic)
	if err != nil {
		return BuyResponse{}, err
	}
	daysSimulated.Inc()

	day := snapshot.Concerts[concert]
	price, _ := day.Price.Float64()

	history := make([]float64, 0)
	for _, p := range h.Engine.PriceHistory(concert) {
		f, _ := p.Float64()
		history = append(history, f)
	}
	result := reward.Score(history, price, day.Preference, h.Engine.RewardPolicy())

	rec := pricing.Record{
		ID:         uuid.NewString(),
		Date:       snapshot.Date.String(),
		UserPrompt: prompt,
		Concert:    string(concert),
		Price:      price,
		Reward:     result.Reward,
		BinIndex:   result.BinIndex,
		BinEdges:   result.Edges,
		WebTraffic: traffic,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	if err := h.Store.Append(r.Context(), rec); err != nil {
		return BuyResponse{}, err
	}
	purchases.Inc()

	return BuyResponse{Record: rec, Day: toDaySnapshotDTO(snapshot)}, nil
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
		var concertErr *pricing.ConcertError
		if errors.As(err, &concertErr) {
			resp.Code = "concert_not_found"
		}
	}
	writeJSON(w, status, resp)
}

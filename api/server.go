/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend/agent tooling

ROUTE GROUPS:
  /api/state, /api/concerts, /api/results   Read-only queries
  /api/buy, /api/decide                     Purchase flow
  /api/admin/*                              Simulation control
  /metrics                                  Prometheus
  /                                         Status page

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/state", h.GetState)
		r.Get("/concerts", h.ListConcerts)
		r.Get("/results", h.ListResults)

		r.Post("/buy", h.Buy)
		r.Post("/decide", h.Decide)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/advance", h.AdvanceDay)
		})
	})

	// Prometheus metrics
	r.Handle("/metrics", promhttp.Handler())

	// Status page
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<!DOCTYPE html>
<html>
<head><title>Ticket Engine</title></head>
<body style="font-family: system-ui; max-width: 800px; margin: 50px auto; padding: 20px;">
<h1>Ticket Pricing Engine API</h1>
<h2>API Endpoints</h2>
<ul>
<li><a href="/api/state">/api/state</a> - Current prices, remaining tickets, preferences</li>
<li><a href="/api/concerts">/api/concerts</a> - Tracked concerts</li>
<li><a href="/api/results">/api/results</a> - Recorded purchase decisions</li>
<li>POST /api/buy - Buy a named concert</li>
<li>POST /api/decide - Let the decider pick</li>
<li>POST /api/admin/advance - Advance one simulated day</li>
</ul>
</body>
</html>`))
	})

	return r
}

/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the ticket pricing simulator server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load .env (if present) and parse command-line flags
  2. Build the concert catalog (file or built-in lineup)
  3. Create the pricing engine and record store
  4. Wire the decider, handlers, router, and optional day scheduler
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port       HTTP server port (default: 8080)
  -catalog    Catalog JSON file; empty = built-in demo lineup
  -results    Results store: "path.json" (JSON array file),
              "path.db" (SQLite), or ":memory:"
  -seed       Random seed; 0 = time-based
  -auto-days  Wall-clock interval per automatic day advance; 0 = off

ENVIRONMENT (via .env or process env):
  OPENROUTER_API_KEY     Enables the LLM decider; unset = local fallback only
  TICKET_LLM_MODEL       Chat model (default: openai/gpt-oss-20b:free)
  TICKET_LLM_BASE_URL    OpenAI-compatible endpoint (default: OpenRouter)
  TICKET_LLM_TIMEOUT     Decider call timeout (default: 10s)

EXAMPLES:
  # Local fallback only, JSON results file
  ./server -results=results.json

  # LLM decider, SQLite results, auto-advancing market
  OPENROUTER_API_KEY=... ./server -results=decisions.db -auto-days=30s

SEE ALSO:
  - api/server.go: Router configuration
  - factory/catalog.go: Catalog loading
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/warp/ticket-engine/api"
	"github.com/warp/ticket-engine/decision"
	"github.com/warp/ticket-engine/factory"
	"github.com/warp/ticket-engine/pricing"
	memstore "github.com/warp/ticket-engine/pricing/store"
	"github.com/warp/ticket-engine/reward"
	"github.com/warp/ticket-engine/store/jsonfile"
	"github.com/warp/ticket-engine/store/sqlite"
)

func main() {
	// Optional .env for local development; real env always wins.
	_ = godotenv.Load()

	// Flags
	port := flag.Int("port", 8080, "HTTP server port")
	catalogPath := flag.String("catalog", "", "catalog JSON file (empty = built-in lineup)")
	resultsPath := flag.String("results", "results.json", `results store: *.json, *.db, or ":memory:"`)
	seed := flag.Int64("seed", 0, "random seed (0 = time-based)")
	autoDays := flag.Duration("auto-days", 0, "interval per automatic day advance (0 = off)")
	flag.Parse()

	// Catalog
	catalog, policy, err := loadCatalog(*catalogPath)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	// Engine
	opts := []pricing.Option{pricing.WithRewardPolicy(policy)}
	if *seed != 0 {
		opts = append(opts, pricing.WithRand(seededRand(*seed)))
	}
	engine, err := pricing.NewEngine(catalog, opts...)
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}

	// Record store
	store, err := openStore(*resultsPath)
	if err != nil {
		log.Fatalf("Failed to initialize results store: %v", err)
	}
	defer store.Close()

	// Decider (nil when no API key: decisions use the local fallback)
	decider := decision.NewClient(decision.Config{
		APIKey:  os.Getenv("OPENROUTER_API_KEY"),
		BaseURL: os.Getenv("TICKET_LLM_BASE_URL"),
		Model:   os.Getenv("TICKET_LLM_MODEL"),
		Timeout: envDuration("TICKET_LLM_TIMEOUT"),
	})
	if decider.Enabled() {
		log.Println("LLM decider enabled")
	} else {
		log.Println("LLM decider disabled, using local fallback")
	}

	// Handlers and router
	api.RegisterMetrics()
	handler := api.NewHandler(engine, store, deciderOrNil(decider))
	router := api.NewRouter(handler)

	// Optional automated market
	scheduler := api.NewDayScheduler(engine)
	if *autoDays > 0 {
		scheduler.TickInterval = *autoDays
		scheduler.Enabled = true
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on http://localhost:%d", *port)
		log.Printf("Simulated date: %s, %d concerts tracked", engine.CurrentDate(), len(catalog))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}

func loadCatalog(path string) (pricing.Catalog, reward.Policy, error) {
	if path == "" {
		catalog, policy := factory.DefaultCatalog()
		return catalog, policy, nil
	}
	return factory.NewCatalogFactory().ParseFile(path)
}

func seededRand(seed int64) pricing.IntSource {
	return rand.New(rand.NewSource(seed))
}

// openStore picks the store implementation from the path suffix.
func openStore(path string) (pricing.Store, error) {
	switch {
	case path == ":memory:":
		return memstore.NewMemory(), nil
	case strings.HasSuffix(path, ".db"):
		return sqlite.New(path)
	default:
		return jsonfile.New(path)
	}
}

// deciderOrNil keeps the untyped-nil interface out of the handler.
func deciderOrNil(c *decision.Client) pricing.Decider {
	if c.Enabled() {
		return c
	}
	return nil
}

func envDuration(key string) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return 0
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Warning: invalid %s %q, using default", key, raw)
		return 0
	}
	return d
}

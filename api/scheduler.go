/*
scheduler.go - Automated day-advance scheduler

PURPOSE:
  Periodically advances the simulated calendar so the market keeps moving
  without anyone buying: prices accumulate history, tickets sell, the
  median floor ratchets up.

DESIGN:
  - Runs a background goroutine with a configurable tick interval
  - Each tick advances exactly one simulated day with a neutral prompt and
    freshly drawn traffic
  - Day advances share the engine mutex with the HTTP handlers, so at most
    one simulated day is ever in flight

CONFIGURATION:
  - TickInterval: Wall-clock time per simulated day (default: 1 minute)
  - Enabled: Whether the scheduler is active (default: false - days advance
    only on purchase or admin request)

USAGE:
  scheduler := NewDayScheduler(engine)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - handlers.go: AdvanceDay endpoint (manual day advance)
  - pricing/simulator.go: The day loop itself
*/
package api

import (
	"log"
	"sync"
	"time"

	"github.com/warp/ticket-engine/pricing"
)

// DayScheduler advances the simulated day on a wall-clock interval.
type DayScheduler struct {
	Engine       *pricing.Engine
	TickInterval time.Duration
	Enabled      bool

	ticker *time.Ticker
	stop   chan bool
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewDayScheduler creates a scheduler. Disabled until Enabled is set.
func NewDayScheduler(engine *pricing.Engine) *DayScheduler {
	return &DayScheduler{
		Engine:       engine,
		TickInterval: 1 * time.Minute,
		Enabled:      false,
		stop:         make(chan bool),
	}
}

// Start begins the scheduler.
func (ds *DayScheduler) Start() {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if !ds.Enabled {
		log.Println("[Scheduler] Disabled, not starting")
		return
	}

	ds.ticker = time.NewTicker(ds.TickInterval)
	ds.wg.Add(1)

	go ds.run()

	log.Printf("[Scheduler] Started: one simulated day every %v", ds.TickInterval)
}

// Stop stops the scheduler.
func (ds *DayScheduler) Stop() {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if ds.ticker != nil {
		ds.ticker.Stop()
		close(ds.stop)
		ds.wg.Wait()
		log.Println("[Scheduler] Stopped")
	}
}

func (ds *DayScheduler) run() {
	defer ds.wg.Done()

	for {
		select {
		case <-ds.ticker.C:
			ds.advance()
		case <-ds.stop:
			return
		}
	}
}

func (ds *DayScheduler) advance() {
	traffic := ds.Engine.RandomTraffic(buyTrafficMin, buyTrafficMax)

	snapshot, err := ds.Engine.AdvanceDay("", traffic)
	if err != nil {
		log.Printf("[Scheduler] Error advancing day: %v", err)
		return
	}
	daysSimulated.Inc()

	log.Printf("[Scheduler] Advanced to %s (%d concerts priced)",
		ds.Engine.CurrentDate(), len(snapshot.Concerts))
}

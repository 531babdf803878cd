package api

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Total simulated days, however triggered (buy, decide, admin, scheduler).
	daysSimulated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ticket_days_simulated_total",
		Help: "Total number of simulated days advanced",
	})

	// Total persisted purchase decisions.
	purchases = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ticket_purchases_total",
		Help: "Total number of persisted purchase decisions",
	})

	// Decider calls that came back with the Wait sentinel.
	waitDecisions = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ticket_wait_decisions_total",
		Help: "Total number of decisions that advised waiting",
	})

	// Latency of the buy/decide handlers.
	purchaseLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "ticket_purchase_latency_seconds",
		Help:    "Latency of purchase handlers",
		Buckets: prometheus.DefBuckets,
	})
)

var registerMetricsOnce sync.Once

// RegisterMetrics registers the API collectors with the default registry.
// Idempotent, so tests creating several routers never double-register.
func RegisterMetrics() {
	registerMetricsOnce.Do(func() {
		prometheus.MustRegister(
			daysSimulated,
			purchases,
			waitDecisions,
			purchaseLatency,
		)
	})
}

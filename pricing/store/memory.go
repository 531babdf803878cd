// Package store provides Store implementations.
package store

import (
	"context"
	"sync"

	"github.com/warp/ticket-engine/pricing"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu      sync.RWMutex
	records []pricing.Record
}

func NewMemory() *Memory {
	return &Memory{}
}

// Append adds a single record. Append-only.
func (m *Memory) Append(_ context.Context, rec pricing.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, rec)
	return nil
}

// List returns all records in append order.
func (m *Memory) List(_ context.Context) ([]pricing.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]pricing.Record, len(m.records))
	copy(out, m.records)
	return out, nil
}

// Close is a no-op for the memory store.
func (m *Memory) Close() error { return nil }

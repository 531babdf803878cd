/*
Package jsonfile persists decision records as a single JSON array file.

PURPOSE:
  The simplest durable record store: one file holding one JSON array of
  records. Each append rewrites the whole file rather than appending a log
  line, so the file is always a complete, valid JSON document that the UI
  and external tooling can read directly.

TRADE-OFFS:
  O(n) writes are fine here: the file holds one record per human purchase
  decision, not high-frequency data. Writes go through a temp file + rename
  so a crash mid-write never leaves a torn file.

CONCURRENCY:
  A mutex serializes file access. Only one process should own the file.

SEE ALSO:
  - store/sqlite: The queryable alternative
  - pricing/record.go: The Store interface
*/
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/warp/ticket-engine/pricing"
)

// Store implements pricing.Store on a JSON array file.
type Store struct {
	mu   sync.Mutex
	path string
}

// New opens (or creates) the results file. A missing file is initialized to
// an empty array so readers never see invalid JSON.
func New(path string) (*Store, error) {
	s := &Store{path: path}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := s.write(nil); err != nil {
			return nil, fmt.Errorf("initialize results file: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("stat results file: %w", err)
	}
	return s, nil
}

// Append reads the full array, appends the record, and rewrites the file.
func (s *Store) Append(_ context.Context, rec pricing.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read()
	if err != nil {
		return err
	}
	return s.write(append(records, rec))
}

// List returns every persisted record in append order.
func (s *Store) List(_ context.Context) ([]pricing.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// Close is a no-op; the file is not held open between operations.
func (s *Store) Close() error { return nil }

func (s *Store) read() ([]pricing.Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read results file: %w", err)
	}

	var records []pricing.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse results file: %w", err)
	}
	return records, nil
}

func (s *Store) write(records []pricing.Record) error {
	if records == nil {
		records = []pricing.Record{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}

	// Temp file + rename keeps the file whole under crashes.
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".results-*.json")
	if err != nil {
		return fmt.Errorf("create temp results file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write results file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close results file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace results file: %w", err)
	}
	return nil
}

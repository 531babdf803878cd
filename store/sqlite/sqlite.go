/*
Package sqlite provides a SQLite-backed decision-record store.

PURPOSE:
  Implements pricing.Store using SQLite. Records are append-only: there are
  no UPDATE or DELETE statements in this package.

KEY TABLE:
  decisions: One row per purchase decision, with bin edges and the
  traffic map serialized as JSON columns.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging):
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

CONCURRENCY:
  Uses sync.RWMutex for thread-safety on top of the database handle.

USAGE:
  store, err := sqlite.New("./data/decisions.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - pricing/record.go: Interface definition
  - store/jsonfile: The flat-file alternative
  - pricing/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/ticket-engine/pricing"
)

// Store implements pricing.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Decisions (append-only)
	CREATE TABLE IF NOT EXISTS decisions (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		user_prompt TEXT NOT NULL,
		concert TEXT NOT NULL,
		price REAL NOT NULL,
		reward REAL NOT NULL,
		bin_index INTEGER NOT NULL,
		bin_edges_json TEXT NOT NULL,
		web_traffic_json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_decisions_date
		ON decisions(date);
	CREATE INDEX IF NOT EXISTS idx_decisions_concert
		ON decisions(concert);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Append persists one decision record.
func (s *Store) Append(ctx context.Context, rec pricing.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	edges, err := json.Marshal(rec.BinEdges)
	if err != nil {
		return fmt.Errorf("marshal bin edges: %w", err)
	}
	traffic, err := json.Marshal(rec.WebTraffic)
	if err != nil {
		return fmt.Errorf("marshal traffic: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO decisions
			(id, date, user_prompt, concert, price, reward, bin_index,
			 bin_edges_json, web_traffic_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Date, rec.UserPrompt, rec.Concert, rec.Price, rec.Reward,
		rec.BinIndex, string(edges), string(traffic), rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert decision: %w", err)
	}
	return nil
}

// List returns every decision record in append order.
func (s *Store) List(ctx context.Context) ([]pricing.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, user_prompt, concert, price, reward, bin_index,
		       bin_edges_json, web_traffic_json, created_at
		FROM decisions
		ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query decisions: %w", err)
	}
	defer rows.Close()

	var records []pricing.Record
	for rows.Next() {
		var rec pricing.Record
		var edgesJSON, trafficJSON string

		if err := rows.Scan(&rec.ID, &rec.Date, &rec.UserPrompt, &rec.Concert,
			&rec.Price, &rec.Reward, &rec.BinIndex,
			&edgesJSON, &trafficJSON, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan decision: %w", err)
		}

		if err := json.Unmarshal([]byte(edgesJSON), &rec.BinEdges); err != nil {
			return nil, fmt.Errorf("parse bin edges: %w", err)
		}
		if err := json.Unmarshal([]byte(trafficJSON), &rec.WebTraffic); err != nil {
			return nil, fmt.Errorf("parse traffic: %w", err)
		}

		records = append(records, rec)
	}
	return records, rows.Err()
}

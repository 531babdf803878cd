package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/ticket-engine/pricing"
	"github.com/warp/ticket-engine/store/sqlite"
)

// File-backed databases only: ":memory:" gives each pooled connection its
// own empty database, which breaks any test using more than one query.
func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "decisions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleRecord(id, concert string) pricing.Record {
	return pricing.Record{
		ID:         id,
		Date:       "2025-09-01",
		UserPrompt: "cheapest please",
		Concert:    concert,
		Price:      5750,
		Reward:     3.25,
		BinIndex:   2,
		BinEdges:   []float64{100, 180, 260, 340, 420, 500},
		WebTraffic: map[pricing.ConcertName]int{"Coldplay": 42, "Arijit Singh": 77},
		CreatedAt:  "2025-09-01T12:00:00Z",
	}
}

func TestAppendAndList_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	want := sampleRecord("rec-1", "Arijit Singh")
	require.NoError(t, store.Append(ctx, want))

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, want, records[0])
}

func TestList_PreservesAppendOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ids := []string{"first", "second", "third"}
	for _, id := range ids {
		require.NoError(t, store.Append(ctx, sampleRecord(id, "Coldplay")))
	}

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, len(ids))
	for i, id := range ids {
		assert.Equal(t, id, records[i].ID)
	}
}

func TestList_EmptyStore(t *testing.T) {
	store := newTestStore(t)

	records, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestAppend_DuplicateIDRejected(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec := sampleRecord("dup", "Coldplay")
	require.NoError(t, store.Append(ctx, rec))
	assert.Error(t, store.Append(ctx, rec))
}

func TestStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decisions.db")
	ctx := context.Background()

	store, err := sqlite.New(path)
	require.NoError(t, err)
	require.NoError(t, store.Append(ctx, sampleRecord("durable", "Taylor Swift")))
	require.NoError(t, store.Close())

	reopened, err := sqlite.New(path)
	require.NoError(t, err)
	defer reopened.Close()

	records, err := reopened.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "durable", records[0].ID)
}

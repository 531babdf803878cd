package jsonfile_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/ticket-engine/pricing"
	"github.com/warp/ticket-engine/store/jsonfile"
)

func sampleRecord(id string) pricing.Record {
	return pricing.Record{
		ID:         id,
		Date:       "2025-09-01",
		UserPrompt: "I want Coldplay",
		Concert:    "Coldplay",
		Price:      8050,
		Reward:     4,
		BinIndex:   1,
		BinEdges:   []float64{8050, 8050, 8050, 8050, 8050, 8050},
		WebTraffic: map[pricing.ConcertName]int{"Coldplay": 50, "Arijit Singh": 40, "Taylor Swift": 60},
		CreatedAt:  "2025-09-01T10:00:00Z",
	}
}

func TestNew_InitializesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")

	store, err := jsonfile.New(path)
	require.NoError(t, err)
	defer store.Close()

	// The file exists immediately and holds a valid empty array.
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var records []pricing.Record
	require.NoError(t, json.Unmarshal(data, &records))
	assert.Empty(t, records)
}

func TestAppendAndList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	store, err := jsonfile.New(path)
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Append(ctx, sampleRecord("a")))
	require.NoError(t, store.Append(ctx, sampleRecord("b")))

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Append order is preserved and fields round-trip intact.
	assert.Equal(t, "a", records[0].ID)
	assert.Equal(t, "b", records[1].ID)
	assert.Equal(t, sampleRecord("a"), records[0])
}

func TestList_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	ctx := context.Background()

	store, err := jsonfile.New(path)
	require.NoError(t, err)
	require.NoError(t, store.Append(ctx, sampleRecord("persisted")))
	require.NoError(t, store.Close())

	reopened, err := jsonfile.New(path)
	require.NoError(t, err)
	defer reopened.Close()

	records, err := reopened.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "persisted", records[0].ID)
}

func TestList_CorruptFileFailsCleanly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store, err := jsonfile.New(path)
	require.NoError(t, err)

	_, err = store.List(context.Background())
	assert.Error(t, err)
}

func TestFileUsesExpectedFieldNames(t *testing.T) {
	// External tooling reads this file; the JSON keys are a contract.
	path := filepath.Join(t.TempDir(), "results.json")
	store, err := jsonfile.New(path)
	require.NoError(t, err)

	require.NoError(t, store.Append(context.Background(), sampleRecord("a")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 1)
	for _, key := range []string{"id", "date", "user_prompt", "concert", "price", "reward", "bin_index", "bins", "web_traffic", "created_at"} {
		assert.Contains(t, raw[0], key)
	}
}

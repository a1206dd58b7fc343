//go:build integration

package candidates

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GetFractional/Job-Hunter-sub002/internal/types"
)

func TestIntegration_SQLiteStoreConformance(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "candidates.db"))
	require.NoError(t, err)
	defer store.Close()

	testStoreConformance(t, store)
}

func TestIntegration_SQLitePersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "candidates.db")
	ctx := context.Background()

	store, err := NewSQLiteStore(path)
	require.NoError(t, err)

	recorded, err := store.Record(ctx, types.Candidate{
		Raw:          "Workato",
		Canonical:    "workato",
		InferredType: types.TypeTool,
		Confidence:   0.3,
	})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, recorded.ID)
	require.NoError(t, err)
	assert.Equal(t, "workato", got.Canonical)
	assert.Equal(t, 1, got.Frequency)
}

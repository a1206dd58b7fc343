package candidates

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GetFractional/Job-Hunter-sub002/internal/types"
)

// testStoreConformance exercises the Store contract. Every backend runs it:
// memory always, sqlite and postgres under the integration tag.
func testStoreConformance(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	first, err := store.Record(ctx, types.Candidate{
		Raw:          "community-led onboarding",
		Canonical:    "community_led_onboarding",
		InferredType: types.TypeCoreSkill,
		Confidence:   0.3,
		Evidence:     "unmatched phrase retained for review",
		Source:       "hash-1",
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, first.ID)
	assert.Equal(t, 1, first.Frequency)
	assert.False(t, first.FirstSeen.IsZero())
	assert.False(t, first.LastSeen.IsZero())

	// Same canonical again: frequency bumps, identity and first-seen stay.
	again, err := store.Record(ctx, types.Candidate{
		Raw:          "Community-led onboarding",
		Canonical:    "community_led_onboarding",
		InferredType: types.TypeCoreSkill,
		Confidence:   0.4,
		Source:       "hash-2",
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, 2, again.Frequency)
	assert.InDelta(t, 0.4, again.Confidence, 1e-9)
	assert.WithinDuration(t, first.FirstSeen, again.FirstSeen, time.Second)

	second, err := store.Record(ctx, types.Candidate{
		Raw:          "Workato",
		Canonical:    "workato",
		InferredType: types.TypeTool,
		Confidence:   0.3,
		Source:       "hash-1",
	})
	require.NoError(t, err)

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	canonicals := []string{list[0].Canonical, list[1].Canonical}
	assert.ElementsMatch(t, []string{"community_led_onboarding", "workato"}, canonicals)

	got, err := store.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "community_led_onboarding", got.Canonical)

	_, err = store.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	err = store.SaveFeedback(ctx, second.ID, types.CandidateFeedback{
		Action: types.FeedbackAccept,
		Note:   "real integration platform",
	})
	require.NoError(t, err)

	got, err = store.Get(ctx, second.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Feedback)
	assert.Equal(t, types.FeedbackAccept, got.Feedback.Action)
	assert.Equal(t, "real integration platform", got.Feedback.Note)

	err = store.SaveFeedback(ctx, uuid.New(), types.CandidateFeedback{Action: types.FeedbackReject})
	assert.ErrorIs(t, err, ErrNotFound)

	err = store.AddDictionaryEntry(ctx, types.DictionaryEntry{
		Term:    "Workato",
		Kind:    types.DictionaryTool,
		AddedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	// Re-adding the same term replaces rather than duplicates.
	err = store.AddDictionaryEntry(ctx, types.DictionaryEntry{
		Term:    "Workato",
		Kind:    types.DictionaryTool,
		AddedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	dict, err := store.ListDictionary(ctx)
	require.NoError(t, err)
	require.Len(t, dict, 1)
	assert.Equal(t, "Workato", dict[0].Term)
	assert.Equal(t, types.DictionaryTool, dict[0].Kind)

	removed, err := store.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	list, err = store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	// The dictionary is the durable part of the review loop.
	dict, err = store.ListDictionary(ctx)
	require.NoError(t, err)
	assert.Len(t, dict, 1)
}

func TestMemoryStoreConformance(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close()
	testStoreConformance(t, store)
}

func TestMemoryStoreListOrder(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	for _, canonical := range []string{"zeta", "alpha", "mid"} {
		_, err := store.Record(ctx, types.Candidate{
			Raw:          canonical,
			Canonical:    canonical,
			InferredType: types.TypeCoreSkill,
			Confidence:   0.3,
		})
		require.NoError(t, err)
	}

	list, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "zeta", list[0].Canonical)
	assert.Equal(t, "alpha", list[1].Canonical)
	assert.Equal(t, "mid", list[2].Canonical)
}

func TestOpenSelectsBackend(t *testing.T) {
	ctx := context.Background()

	store, err := Open(ctx, StoreConfig{})
	require.NoError(t, err)
	_, ok := store.(*MemoryStore)
	assert.True(t, ok)

	store, err = Open(ctx, StoreConfig{Backend: BackendMemory})
	require.NoError(t, err)
	_, ok = store.(*MemoryStore)
	assert.True(t, ok)

	_, err = Open(ctx, StoreConfig{Backend: "etcd"})
	assert.Error(t, err)

	_, err = Open(ctx, StoreConfig{Backend: BackendSQLite})
	assert.Error(t, err, "sqlite without a path should fail")

	_, err = Open(ctx, StoreConfig{Backend: BackendPostgres})
	assert.Error(t, err, "postgres without a DSN should fail")
}

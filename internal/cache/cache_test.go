package cache

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GetFractional/Job-Hunter-sub002/internal/types"
)

func resultFor(hash string) types.ExtractionResult {
	return types.ExtractionResult{
		Metadata: types.AnalysisMetadata{Hash: hash},
	}
}

func TestCachePutGet(t *testing.T) {
	c := New(4)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Put("a", resultFor("a"))
	got, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "a", got.Metadata.Hash)
	assert.Equal(t, 1, c.Len())
}

func TestCacheInsertionOrderEviction(t *testing.T) {
	c := New(2)

	c.Put("a", resultFor("a"))
	c.Put("b", resultFor("b"))

	// Reading "a" must not refresh it: eviction follows insertion order,
	// not access order.
	_, ok := c.Get("a")
	assert.True(t, ok)

	c.Put("c", resultFor("c"))

	_, ok = c.Get("a")
	assert.False(t, ok, "oldest insertion should be evicted despite the recent read")
	_, ok = c.Get("b")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestCacheReplaceKeepsSlot(t *testing.T) {
	c := New(2)

	c.Put("a", resultFor("a"))
	c.Put("b", resultFor("b"))
	c.Put("a", resultFor("a2"))

	assert.Equal(t, 2, c.Len())

	// "a" keeps its original slot, so it is still the eviction candidate.
	c.Put("c", resultFor("c"))
	_, ok := c.Get("a")
	assert.False(t, ok)

	got, ok := c.Get("b")
	assert.True(t, ok)
	assert.Equal(t, "b", got.Metadata.Hash)
}

func TestCacheDefaultCapacity(t *testing.T) {
	c := New(0)

	for i := 0; i < DefaultCapacity+10; i++ {
		key := fmt.Sprintf("k%d", i)
		c.Put(key, resultFor(key))
	}

	assert.Equal(t, DefaultCapacity, c.Len())

	_, ok := c.Get("k0")
	assert.False(t, ok)
	_, ok = c.Get(fmt.Sprintf("k%d", DefaultCapacity+9))
	assert.True(t, ok)
}

func TestCacheClear(t *testing.T) {
	c := New(2)
	c.Put("a", resultFor("a"))
	c.Put("b", resultFor("b"))

	c.Clear()

	assert.Zero(t, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok)

	// Cleared cache accepts new entries with a fresh eviction order.
	c.Put("c", resultFor("c"))
	_, ok = c.Get("c")
	assert.True(t, ok)
}

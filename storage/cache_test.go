package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rental-backend/models"
)

func TestSearchCacheRoundTrip(t *testing.T) {
	cache := NewSearchCache("")

	properties := []models.Property{
		{Title: "Cached Villa", City: "Miami Beach"},
		{Title: "Cached Cabin", City: "Aspen"},
	}
	cache.Set("search:key", properties, 42)

	got, total, ok := cache.Get("search:key")
	require.True(t, ok)
	assert.Equal(t, int64(42), total)
	require.Len(t, got, 2)
	assert.Equal(t, "Cached Villa", got[0].Title)
}

func TestSearchCacheMiss(t *testing.T) {
	cache := NewSearchCache("")

	_, _, ok := cache.Get("search:unknown")
	assert.False(t, ok)
}

func TestSearchCacheClear(t *testing.T) {
	cache := NewSearchCache("")

	cache.Set("search:key", []models.Property{{Title: "Gone Soon"}}, 1)
	cache.Clear()

	_, _, ok := cache.Get("search:key")
	assert.False(t, ok)
}

func TestSearchCacheNilReceiver(t *testing.T) {
	var cache *SearchCache

	// All methods must be safe to call without a configured cache.
	cache.Set("search:key", nil, 0)
	_, _, ok := cache.Get("search:key")
	assert.False(t, ok)
	cache.Clear()
}

func TestSearchCacheEmptyPage(t *testing.T) {
	cache := NewSearchCache("")

	cache.Set("search:empty", []models.Property{}, 0)
	got, total, ok := cache.Get("search:empty")
	require.True(t, ok)
	assert.Empty(t, got)
	assert.Zero(t, total)
}

package storage

import (
	"encoding/json"
	"log"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/karlseguin/ccache/v3"

	"rental-backend/models"
)

const (
	localTTL     = 5 * time.Minute
	memcachedTTL = int32(15 * 60) // seconds
)

// searchPage is what gets cached for one search key: the page of
// properties plus the total row count the pagination block needs.
type searchPage struct {
	Properties []models.Property `json:"properties"`
	Total      int64             `json:"total"`
}

// SearchCache is a two-level cache for property search pages: a local
// in-process LRU in front of an optional shared memcached tier. When no
// memcached host is configured it degrades to local-only.
type SearchCache struct {
	local     *ccache.Cache[*searchPage]
	memcached *memcache.Client
}

// NewSearchCache builds the cache. memcachedHost may be empty.
func NewSearchCache(memcachedHost string) *SearchCache {
	c := &SearchCache{
		local: ccache.New(ccache.Configure[*searchPage]().MaxSize(1000)),
	}
	if memcachedHost != "" {
		c.memcached = memcache.New(memcachedHost)
		log.Printf("search cache initialized with memcached at %s", memcachedHost)
	}
	return c
}

// Get looks a key up, local tier first, then memcached. A memcached hit
// is promoted into the local tier.
func (c *SearchCache) Get(key string) ([]models.Property, int64, bool) {
	if c == nil {
		return nil, 0, false
	}

	item := c.local.Get(key)
	if item != nil && !item.Expired() {
		page := item.Value()
		return page.Properties, page.Total, true
	}

	if c.memcached == nil {
		return nil, 0, false
	}

	mcItem, err := c.memcached.Get(key)
	if err != nil {
		if err != memcache.ErrCacheMiss {
			log.Printf("memcached get failed: key=%s err=%v", key, err)
		}
		return nil, 0, false
	}

	var page searchPage
	if err := json.Unmarshal(mcItem.Value, &page); err != nil {
		log.Printf("memcached payload unmarshal failed: key=%s err=%v", key, err)
		return nil, 0, false
	}

	c.local.Set(key, &page, localTTL)
	return page.Properties, page.Total, true
}

// Set stores a search page in both tiers.
func (c *SearchCache) Set(key string, properties []models.Property, total int64) {
	if c == nil {
		return
	}

	page := &searchPage{Properties: properties, Total: total}
	c.local.Set(key, page, localTTL)

	if c.memcached == nil {
		return
	}

	payload, err := json.Marshal(page)
	if err != nil {
		log.Printf("memcached payload marshal failed: key=%s err=%v", key, err)
		return
	}
	if err := c.memcached.Set(&memcache.Item{Key: key, Value: payload, Expiration: memcachedTTL}); err != nil {
		log.Printf("memcached set failed: key=%s err=%v", key, err)
	}
}

// Clear drops the local tier. Used by tests; production entries simply
// age out via TTL.
func (c *SearchCache) Clear() {
	if c == nil {
		return
	}
	c.local.Clear()
}

package reporthttp

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/parklane-pm/parklane/internal/reports"
)

const viewCacheTTL = 5 * time.Minute

var viewModelCache = newResponseCache(viewCacheTTL)

type cacheItem struct {
	value   interface{}
	expires time.Time
}

type responseCache struct {
	ttl   time.Duration
	mu    sync.RWMutex
	items map[string]cacheItem
}

func newResponseCache(ttl time.Duration) *responseCache {
	return &responseCache{
		ttl:   ttl,
		items: make(map[string]cacheItem),
	}
}

func (c *responseCache) Get(key string) (interface{}, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(item.expires) {
		c.mu.Lock()
		delete(c.items, key)
		c.mu.Unlock()
		return nil, false
	}
	return item.value, true
}

func (c *responseCache) Set(key string, value interface{}) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.items[key] = cacheItem{value: value, expires: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}

func (c *responseCache) Bust() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.items = make(map[string]cacheItem)
	c.mu.Unlock()
}

func buildViewCacheKey(report reports.ReportID, filters map[string]string) string {
	keys := make([]string, 0, len(filters))
	for k := range filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys)+1)
	parts = append(parts, "view:"+string(report))
	for _, k := range keys {
		parts = append(parts, k+"="+filters[k])
	}
	return strings.Join(parts, "|")
}

// BustReportViewCache invalidates the cached report view models. Called on
// cache bump so the next request rebuilds against fresh payloads.
func BustReportViewCache() {
	if viewModelCache != nil {
		viewModelCache.Bust()
	}
}

package twitter

import "sync"

// requestCacheSize bounds the per-session response cache. Post media
// never changes after publication, so entries carry no TTL.
const requestCacheSize = 16

// requestCache maps full request URLs to parsed envelopes. Eviction is
// insertion-ordered: the single oldest entry goes when capacity is
// exceeded.
type requestCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*APIResponse
	order    []string
}

func newRequestCache(capacity int) *requestCache {
	return &requestCache{
		capacity: capacity,
		entries:  make(map[string]*APIResponse, capacity),
	}
}

func (cache *requestCache) get(key string) (*APIResponse, bool) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	resp, ok := cache.entries[key]
	return resp, ok
}

func (cache *requestCache) put(key string, resp *APIResponse) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	if _, exists := cache.entries[key]; !exists {
		cache.order = append(cache.order, key)
	}
	cache.entries[key] = resp
	for len(cache.order) > cache.capacity {
		oldest := cache.order[0]
		cache.order = cache.order[1:]
		delete(cache.entries, oldest)
	}
}

func (cache *requestCache) len() int {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	return len(cache.entries)
}

package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache provides in-process caching with expiry.
type MemoryCache struct {
	cache     *gocache.Cache
	prefix    string
	maxItems  int
	limitMu   sync.Mutex
	hitCount  atomic.Uint64
	missCount atomic.Uint64
}

// NewMemoryCache creates a memory cache holding at most maxItems entries.
// Expired items are purged every cleanupInterval. Inserting a new key into a
// full cache purges expired items first and, if it is still full, evicts the
// entry closest to expiry. maxItems <= 0 disables the limit.
func NewMemoryCache(defaultTTL, cleanupInterval time.Duration, prefix string, maxItems int) *MemoryCache {
	return &MemoryCache{
		cache:    gocache.New(defaultTTL, cleanupInterval),
		prefix:   prefix,
		maxItems: maxItems,
	}
}

// Get retrieves a cached value.
func (mc *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	if v, found := mc.cache.Get(mc.prefix + key); found {
		if data, ok := v.([]byte); ok {
			mc.hitCount.Add(1)
			return data, true, nil
		}
	}
	mc.missCount.Add(1)
	return nil, false, nil
}

// Set stores a copy of value.
func (mc *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	key = mc.prefix + key
	data := append([]byte(nil), value...)
	if mc.maxItems <= 0 {
		mc.cache.Set(key, data, ttl)
		return nil
	}

	mc.limitMu.Lock()
	defer mc.limitMu.Unlock()
	if _, exists := mc.cache.Get(key); !exists && mc.cache.ItemCount() >= mc.maxItems {
		mc.cache.DeleteExpired()
		for mc.cache.ItemCount() >= mc.maxItems {
			if !mc.evictOne() {
				break
			}
		}
	}
	mc.cache.Set(key, data, ttl)
	return nil
}

// evictOne removes the entry expiring soonest, preferring entries with an
// expiry over those without one.
func (mc *MemoryCache) evictOne() bool {
	var victim string
	var soonest int64
	found := false
	for k, item := range mc.cache.Items() {
		exp := item.Expiration
		if exp == 0 {
			exp = 1<<63 - 1
		}
		if !found || exp < soonest {
			victim, soonest, found = k, exp, true
		}
	}
	if found {
		mc.cache.Delete(victim)
	}
	return found
}

// Delete removes a key.
func (mc *MemoryCache) Delete(_ context.Context, key string) error {
	mc.cache.Delete(mc.prefix + key)
	return nil
}

// Ping always succeeds.
func (mc *MemoryCache) Ping(context.Context) error {
	return nil
}

// Close flushes the cache.
func (mc *MemoryCache) Close() error {
	mc.cache.Flush()
	return nil
}

// Stats returns cache statistics
func (mc *MemoryCache) Stats() (hits, misses uint64, ratio float64) {
	hits = mc.hitCount.Load()
	misses = mc.missCount.Load()
	if total := hits + misses; total > 0 {
		ratio = float64(hits) / float64(total)
	}
	return
}

// ItemCount returns the number of items in cache
func (mc *MemoryCache) ItemCount() int {
	return mc.cache.ItemCount()
}

package cache

import (
	"container/list"
	"sync"
	"time"
)

// lruEntry holds a cached value with its key and timestamp.
type lruEntry struct {
	key       string
	value     string
	timestamp time.Time
}

// LRUCache is a thread-safe, fixed-capacity cache with per-entry TTL.
// When full, the least-recently-used entry is evicted. Expired entries are
// treated as misses and discarded on access; they are removed before any
// live entry is considered for eviction.
type LRUCache struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	order    *list.List // front = most recently used
	items    map[string]*list.Element

	hits        uint64
	misses      uint64
	evictions   uint64
	expirations uint64
}

// NewLRUCache creates a cache holding at most capacity entries, each valid
// for ttl. A capacity <= 0 means unbounded; a ttl <= 0 means entries never
// expire.
func NewLRUCache(capacity int, ttl time.Duration) *LRUCache {
	if ttl < 0 {
		ttl = 0
	}
	return &LRUCache{
		capacity: capacity,
		ttl:      ttl,
		order:    list.New(),
		items:    make(map[string]*list.Element),
	}
}

// Get retrieves a value and marks it most recently used.
// Returns the value and true if found and not expired, empty string and
// false otherwise. Expired entries are discarded.
func (c *LRUCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		c.misses++
		return "", false
	}

	entry := elem.Value.(*lruEntry)
	if c.expired(entry, time.Now()) {
		c.remove(elem)
		c.expirations++
		c.misses++
		return "", false
	}

	c.order.MoveToFront(elem)
	c.hits++
	return entry.value, true
}

// Set stores a value, marking it most recently used. Storing over capacity
// discards expired entries first, wherever they sit; only if none remain is
// the least-recently-used live entry evicted.
func (c *LRUCache) Set(key string, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()

	if elem, ok := c.items[key]; ok {
		entry := elem.Value.(*lruEntry)
		entry.value = value
		entry.timestamp = now
		c.order.MoveToFront(elem)
		return nil
	}

	elem := c.order.PushFront(&lruEntry{key: key, value: value, timestamp: now})
	c.items[key] = elem

	if c.capacity > 0 && c.order.Len() > c.capacity {
		c.evict(now)
	}

	return nil
}

// evict brings the cache back under capacity (must be called with lock held).
// Expired entries are removed first, wherever they sit in the recency order;
// only when none remain does a live entry at the least-recently-used end pay
// the eviction.
func (c *LRUCache) evict(now time.Time) {
	var prev *list.Element
	for elem := c.order.Back(); elem != nil && c.order.Len() > c.capacity; elem = prev {
		prev = elem.Prev()
		if c.expired(elem.Value.(*lruEntry), now) {
			c.remove(elem)
			c.expirations++
		}
	}

	for c.order.Len() > c.capacity {
		back := c.order.Back()
		if back == nil {
			break
		}
		c.remove(back)
		c.evictions++
	}
}

// Len returns the number of stored entries, including any not yet
// discarded expired ones.
func (c *LRUCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Clear removes all entries and resets the counters.
func (c *LRUCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.order.Init()
	c.items = make(map[string]*list.Element)
	c.hits = 0
	c.misses = 0
	c.evictions = 0
	c.expirations = 0
}

// CleanupExpired removes all expired entries and returns how many were
// removed.
func (c *LRUCache) CleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ttl <= 0 {
		return 0
	}

	now := time.Now()
	removed := 0

	var next *list.Element
	for elem := c.order.Front(); elem != nil; elem = next {
		next = elem.Next()
		if c.expired(elem.Value.(*lruEntry), now) {
			c.remove(elem)
			c.expirations++
			removed++
		}
	}

	return removed
}

// Entries returns all non-expired entries as key-value pairs.
// This is used for cache export.
func (c *LRUCache) Entries() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := make(map[string]string)
	now := time.Now()

	for elem := c.order.Front(); elem != nil; elem = elem.Next() {
		entry := elem.Value.(*lruEntry)
		if c.expired(entry, now) {
			continue
		}
		result[entry.key] = entry.value
	}

	return result
}

// Keys returns the keys of all non-expired entries, most recently used first.
func (c *LRUCache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, c.order.Len())
	now := time.Now()

	for elem := c.order.Front(); elem != nil; elem = elem.Next() {
		entry := elem.Value.(*lruEntry)
		if c.expired(entry, now) {
			continue
		}
		keys = append(keys, entry.key)
	}

	return keys
}

// Stats returns usage statistics.
func (c *LRUCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := c.hits + c.misses
	hitRate := 0.0
	if total > 0 {
		hitRate = float64(c.hits) / float64(total)
	}

	return Stats{
		Size:        c.order.Len(),
		Capacity:    c.capacity,
		Hits:        c.hits,
		Misses:      c.misses,
		Evictions:   c.evictions,
		Expirations: c.expirations,
		HitRate:     hitRate,
		TTL:         c.ttl,
	}
}

// expired reports whether entry is past its TTL (must be called with lock held).
func (c *LRUCache) expired(entry *lruEntry, now time.Time) bool {
	return c.ttl > 0 && now.Sub(entry.timestamp) > c.ttl
}

// remove deletes an element from both structures (must be called with lock held).
func (c *LRUCache) remove(elem *list.Element) {
	entry := elem.Value.(*lruEntry)
	c.order.Remove(elem)
	delete(c.items, entry.key)
}

// Verify LRUCache implements TranslationCache
var _ TranslationCache = (*LRUCache)(nil)
var _ StatsReporter = (*LRUCache)(nil)

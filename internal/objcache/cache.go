package objcache

import (
	"sync"
	"time"
)

// Entry categories. Metadata payloads mutate often (other users edit
// concurrently); resolved folder paths rarely change once an object exists.
// The default TTLs reflect that volatility gap.
const (
	CategoryData = "data"
	CategoryPath = "path"
)

const (
	DefaultDataTTL = 2 * time.Second
	DefaultPathTTL = 30 * time.Second
)

// Entry is one cached payload with the time it was stored.
type Entry struct {
	Category string
	Key      string
	Payload  any
	StoredAt time.Time
}

// Age returns the time elapsed since the entry was stored.
func (e Entry) Age(now time.Time) time.Duration {
	return now.Sub(e.StoredAt)
}

// Cache is a mutex-guarded category -> key -> entry map. It is shared
// process-wide state; the lock makes concurrent lookups from multiple
// goroutines safe, but a miss-then-fetch sequence is deliberately not
// single-flighted.
type Cache struct {
	mu         sync.RWMutex
	categories map[string]map[string]Entry
	now        func() time.Time
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{
		categories: make(map[string]map[string]Entry),
		now:        time.Now,
	}
}

// Get returns the cached payload if an entry exists and has not outlived
// ttl. ttl <= 0 means "never expires": whatever is cached is returned.
func (c *Cache) Get(category, key string, ttl time.Duration) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.categories[category][key]
	if !ok {
		return nil, false
	}
	if ttl > 0 && entry.Age(c.now()) > ttl {
		return nil, false
	}
	return entry.Payload, true
}

// Put stores the payload unconditionally, refreshing the stored-at time.
func (c *Cache) Put(category, key string, payload any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries, ok := c.categories[category]
	if !ok {
		entries = make(map[string]Entry)
		c.categories[category] = entries
	}
	entries[key] = Entry{
		Category: category,
		Key:      key,
		Payload:  payload,
		StoredAt: c.now(),
	}
}

// Len returns the total number of entries across all categories.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	for _, entries := range c.categories {
		n += len(entries)
	}
	return n
}

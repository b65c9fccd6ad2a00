package sheets

import (
	"sync"
	"time"
)

// directoryCache holds the last successful directory fetch for its TTL.
// Shared across requests within one process. Refreshes are idempotent,
// so a stale goroutine overwriting a fresh entry only repeats work.
type directoryCache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	data    map[string]string
	expires time.Time
}

func newDirectoryCache(ttl time.Duration, now func() time.Time) *directoryCache {
	return &directoryCache{ttl: ttl, now: now}
}

func (c *directoryCache) get() (map[string]string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.data == nil || !c.now().Before(c.expires) {
		return nil, false
	}
	return c.data, true
}

func (c *directoryCache) put(data map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = data
	c.expires = c.now().Add(c.ttl)
}

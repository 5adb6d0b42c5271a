// File: internal/infra/redis/fallback_cache.go
package redis

import (
	"sync"
	"time"

	"barbershop-bot/internal/domain/model"
)

// fallbackCache is the in-process session tier used while Redis is down. It
// exists only between outage detection and the drain that follows recovery;
// after Drain the store discards it.
type fallbackCache struct {
	mu      sync.Mutex
	entries map[string]fallbackEntry
	ttl     time.Duration
	now     func() time.Time
}

type fallbackEntry struct {
	sess    model.Session
	expires time.Time
}

func newFallbackCache(ttl time.Duration, nowFn func() time.Time) *fallbackCache {
	return &fallbackCache{
		entries: make(map[string]fallbackEntry),
		ttl:     ttl,
		now:     nowFn,
	}
}

func (c *fallbackCache) Get(phone string) (*model.Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[phone]
	if !ok || c.now().After(e.expires) {
		delete(c.entries, phone)
		return nil, false
	}
	sess := e.sess
	return &sess, true
}

func (c *fallbackCache) Put(sess model.Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[sess.Phone] = fallbackEntry{sess: sess, expires: c.now().Add(c.ttl)}
}

// Drain returns the live entries and empties the cache. A write landing
// after the snapshot is taken belongs to whichever tier receives it; that
// loss window is accepted.
func (c *fallbackCache) Drain() []model.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Session, 0, len(c.entries))
	now := c.now()
	for _, e := range c.entries {
		if now.After(e.expires) {
			continue
		}
		out = append(out, e.sess)
	}
	c.entries = make(map[string]fallbackEntry)
	return out
}

func (c *fallbackCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

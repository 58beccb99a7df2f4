package health

import (
	"sync"
	"time"
)

type cacheEntry struct {
	decision  Decision
	expiresAt time.Time
}

// decisionCache memoizes the latest Decision per kind so request bursts do not
// re-trigger probe sweeps. Liveness and readiness never share an entry.
type decisionCache struct {
	clock   Clock
	mu      sync.RWMutex
	entries map[Kind]cacheEntry
}

func newDecisionCache(clock Clock) *decisionCache {
	return &decisionCache{
		clock:   clock,
		entries: make(map[Kind]cacheEntry),
	}
}

// Get returns the cached decision for kind while it is still fresh. The
// returned Decision carries its own copy of the results slice; callers never
// hold a reference into the cache.
func (c *decisionCache) Get(kind Kind) (Decision, bool) {
	c.mu.RLock()
	entry, ok := c.entries[kind]
	c.mu.RUnlock()

	if !ok || !c.clock.Now().Before(entry.expiresAt) {
		return Decision{}, false
	}

	d := entry.decision
	d.Results = append([]Result(nil), entry.decision.Results...)
	return d, true
}

// Put overwrites the entry for kind. Last write wins; a non-positive ttl
// disables caching for that decision.
func (c *decisionCache) Put(kind Kind, d Decision, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.entries[kind] = cacheEntry{
		decision:  d,
		expiresAt: c.clock.Now().Add(ttl),
	}
	c.mu.Unlock()
}

package storeapi

import (
	"sync"
	"time"
)

// storeCache keeps the store list and individual stores for a bounded time,
// mirroring the per-session cache the browser kept under
// "database-stores" / "database-store-<id>".
type storeCache struct {
	ttl time.Duration

	mu        sync.RWMutex
	stores    []Store
	storesAt  time.Time
	byID      map[string]*Store
	fetchedAt map[string]time.Time
}

func newStoreCache(ttl time.Duration) *storeCache {
	return &storeCache{
		ttl:       ttl,
		byID:      map[string]*Store{},
		fetchedAt: map[string]time.Time{},
	}
}

func (c *storeCache) fresh(at time.Time) bool {
	return c.ttl > 0 && !at.IsZero() && time.Since(at) < c.ttl
}

func (c *storeCache) list() ([]Store, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.fresh(c.storesAt) {
		return nil, false
	}
	return c.stores, true
}

func (c *storeCache) putList(stores []Store) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stores = stores
	c.storesAt = time.Now()
}

func (c *storeCache) get(id string) (*Store, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.fresh(c.fetchedAt[id]) {
		return nil, false
	}
	st, ok := c.byID[id]
	return st, ok
}

func (c *storeCache) put(st *Store) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byID[st.ID] = st
	c.fetchedAt[st.ID] = time.Now()
}

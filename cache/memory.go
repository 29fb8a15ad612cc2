package cache

import (
	"container/list"
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/jonwraymond/preparedq/shape"
	"github.com/jonwraymond/preparedq/template"
)

// MemoryCache is the in-memory Cache implementation.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[shape.Key]*cacheEntry
	order   *list.List // LRU order, front is most recent; nil when unbounded
	policy  Policy
	group   singleflight.Group

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type cacheEntry struct {
	tpl  *template.Template
	elem *list.Element // nil when unbounded
}

// NewMemoryCache creates an in-memory template cache with the given
// retention policy.
func NewMemoryCache(policy Policy) *MemoryCache {
	c := &MemoryCache{
		entries: make(map[shape.Key]*cacheEntry),
		policy:  policy,
	}
	if policy.MaxTemplates > 0 {
		c.order = list.New()
	}
	return c
}

// GetOrBuild returns the template for key, building it on a miss.
//
// Concurrent callers missing on the same key share one build: the first
// caller's context drives it, and its result or error reaches everyone
// waiting. An error releases the key, so a later call starts a fresh
// build. The returned bool is true only for lookups served straight
// from the store.
func (c *MemoryCache) GetOrBuild(ctx context.Context, key shape.Key, build BuildFunc) (*template.Template, bool, error) {
	if build == nil {
		return nil, false, ErrNilBuild
	}
	if key == "" {
		return nil, false, ErrInvalidKey
	}

	if tpl, ok := c.lookup(key); ok {
		c.hits.Add(1)
		return tpl, true, nil
	}

	v, err, _ := c.group.Do(string(key), func() (any, error) {
		// A build that finished between the miss and this flight
		// already stored the entry.
		if tpl, ok := c.lookup(key); ok {
			return tpl, nil
		}
		c.misses.Add(1)
		tpl, err := build(ctx)
		if err != nil {
			return nil, err
		}
		c.insert(key, tpl)
		return tpl, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v.(*template.Template), false, nil
}

// lookup fetches an entry, refreshing its LRU position when bounded.
func (c *MemoryCache) lookup(key shape.Key) (*template.Template, bool) {
	if c.policy.MaxTemplates <= 0 {
		c.mu.RLock()
		e, ok := c.entries[key]
		c.mu.RUnlock()
		if !ok {
			return nil, false
		}
		return e.tpl, true
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(e.elem)
	return e.tpl, true
}

func (c *MemoryCache) insert(key shape.Key, tpl *template.Template) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; ok {
		return
	}
	e := &cacheEntry{tpl: tpl}
	if c.order != nil {
		e.elem = c.order.PushFront(key)
	}
	c.entries[key] = e
	if c.order == nil {
		return
	}
	for len(c.entries) > c.policy.MaxTemplates {
		back := c.order.Back()
		if back == nil {
			return
		}
		c.order.Remove(back)
		delete(c.entries, back.Value.(shape.Key))
		c.evictions.Add(1)
	}
}

// Delete removes the entry for key. Idempotent.
func (c *MemoryCache) Delete(key shape.Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return
	}
	if e.elem != nil {
		c.order.Remove(e.elem)
	}
	delete(c.entries, key)
}

// Len returns the number of stored templates.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear removes every entry. Counters survive a Clear.
func (c *MemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[shape.Key]*cacheEntry)
	if c.order != nil {
		c.order.Init()
	}
}

// Stats returns a snapshot of activity counters and current size.
func (c *MemoryCache) Stats() Stats {
	return Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Size:      c.Len(),
	}
}

// Ensure MemoryCache implements Cache
var _ Cache = (*MemoryCache)(nil)

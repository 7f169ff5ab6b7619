// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package cache provides a small generic LRU cache.
package cache

// LRU maps keys to values. Beyond its capacity the least recently used
// entry is evicted.
//
// LRU is not safe for concurrent use.
type LRU[K comparable, V any] struct {
	entries map[K]*entry[K, V]
	order   recency[K, V]
	limit   int

	hits, misses, evictions uint64
}

// New creates a cache holding at most limit entries. A limit of 0 or
// less means unlimited.
func New[K comparable, V any](limit int) *LRU[K, V] {
	c := &LRU[K, V]{
		entries: make(map[K]*entry[K, V]),
		limit:   limit,
	}
	c.order.init()
	return c
}

// Get returns the value of key and marks it most recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	e, ok := c.entries[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	c.order.touch(e)
	return e.value, true
}

// Put stores value under key, evicting the oldest entry when the cache
// is full.
func (c *LRU[K, V]) Put(key K, value V) {
	if e, ok := c.entries[key]; ok {
		e.value = value
		c.order.touch(e)
		return
	}
	e := &entry[K, V]{key: key, value: value}
	c.entries[key] = e
	c.order.insertFront(e)
	for c.limit > 0 && c.order.len() > c.limit {
		old := c.order.oldest()
		c.order.unlink(old)
		delete(c.entries, old.key)
		c.evictions++
	}
}

// GetOrCreate returns the cached value of key, calling create on a miss.
// Values whose creation fails are not cached.
func (c *LRU[K, V]) GetOrCreate(key K, create func() (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	v, err := create()
	if err != nil {
		return v, err
	}
	c.Put(key, v)
	return v, nil
}

// Delete removes key and reports whether it was present.
func (c *LRU[K, V]) Delete(key K) bool {
	e, ok := c.entries[key]
	if !ok {
		return false
	}
	c.order.unlink(e)
	delete(c.entries, key)
	return true
}

// Clear removes every entry. The statistics are kept.
func (c *LRU[K, V]) Clear() {
	clear(c.entries)
	c.order.init()
}

// Len returns the number of entries.
func (c *LRU[K, V]) Len() int { return len(c.entries) }

// Stats contains cache statistics.
type Stats struct {
	Len       int
	Capacity  int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// HitRate returns hits over lookups, 0 before the first lookup.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Stats returns the cache statistics.
func (c *LRU[K, V]) Stats() Stats {
	return Stats{
		Len:       len(c.entries),
		Capacity:  c.limit,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
}

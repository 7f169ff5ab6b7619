// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package cache

// entry is a cached value linked into the recency ring.
type entry[K comparable, V any] struct {
	key        K
	value      V
	prev, next *entry[K, V]
}

// recency is a circular doubly linked list behind a sentinel. The entry
// after the sentinel is the most recently used, the one before it the
// least.
type recency[K comparable, V any] struct {
	root entry[K, V]
	n    int
}

func (r *recency[K, V]) init() {
	r.root.prev = &r.root
	r.root.next = &r.root
	r.n = 0
}

func (r *recency[K, V]) len() int { return r.n }

func (r *recency[K, V]) insertFront(e *entry[K, V]) {
	e.prev = &r.root
	e.next = r.root.next
	e.prev.next = e
	e.next.prev = e
	r.n++
}

func (r *recency[K, V]) unlink(e *entry[K, V]) {
	e.prev.next = e.next
	e.next.prev = e.prev
	e.prev, e.next = nil, nil
	r.n--
}

// touch makes e the most recently used entry.
func (r *recency[K, V]) touch(e *entry[K, V]) {
	if r.root.next == e {
		return
	}
	r.unlink(e)
	r.insertFront(e)
}

// oldest returns the least recently used entry, nil when empty.
func (r *recency[K, V]) oldest() *entry[K, V] {
	if r.n == 0 {
		return nil
	}
	return r.root.prev
}

// keys returns the keys from most to least recently used.
func (r *recency[K, V]) keys() []K {
	out := make([]K, 0, r.n)
	for e := r.root.next; e != &r.root; e = e.next {
		out = append(out, e.key)
	}
	return out
}

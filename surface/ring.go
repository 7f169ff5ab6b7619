// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

// FreeRing is a fixed-capacity FIFO of arena indices.
//
// Push writes the tail slot and Pop clears the head slot. Pushing into an
// occupied tail slot or popping an empty head slot panics with an
// *InvariantError: with one slot per surface either can only happen when
// a surface is released twice or never acquired.
type FreeRing struct {
	slots      []int
	head, tail int
	n          int
}

const emptySlot = -1

// NewFreeRing returns an empty ring with room for capacity indices.
func NewFreeRing(capacity int) *FreeRing {
	r := &FreeRing{slots: make([]int, capacity)}
	for i := range r.slots {
		r.slots[i] = emptySlot
	}
	return r
}

// Push appends index at the tail.
func (r *FreeRing) Push(index int) {
	if len(r.slots) == 0 {
		panic(violation("push", "ring has no capacity"))
	}
	if index < 0 {
		panic(violation("push", "negative index %d", index))
	}
	if r.slots[r.tail] != emptySlot {
		panic(violation("push", "tail slot %d holds surface %d", r.tail, r.slots[r.tail]))
	}
	r.slots[r.tail] = index
	r.tail = r.next(r.tail)
	r.n++
}

// Pop removes and returns the head index.
func (r *FreeRing) Pop() int {
	if len(r.slots) == 0 {
		panic(violation("pop", "ring has no capacity"))
	}
	index := r.slots[r.head]
	if index == emptySlot {
		panic(violation("pop", "head slot %d is empty", r.head))
	}
	r.slots[r.head] = emptySlot
	r.head = r.next(r.head)
	r.n--
	return index
}

// Peek returns the head index without removing it.
func (r *FreeRing) Peek() (int, bool) {
	if r.n == 0 {
		return 0, false
	}
	return r.slots[r.head], true
}

// Len returns the number of queued indices.
func (r *FreeRing) Len() int { return r.n }

// Cap returns the capacity.
func (r *FreeRing) Cap() int { return len(r.slots) }

// Contents returns the queued indices from head to tail.
func (r *FreeRing) Contents() []int {
	out := make([]int, 0, r.n)
	for i, k := r.head, 0; k < r.n; i, k = r.next(i), k+1 {
		out = append(out, r.slots[i])
	}
	return out
}

func (r *FreeRing) next(i int) int {
	i++
	if i == len(r.slots) {
		i = 0
	}
	return i
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package present

import "github.com/gogpu/vaout/surface"

// RingSize is the number of output slots.
const RingSize = 2

// Ring is the double-buffered output ring. The slot at the current index
// receives the next frame; the other slot holds the frame on screen,
// which stays valid until the next frame has been presented.
//
// The zero value is an empty ring.
type Ring struct {
	slots   [RingSize]surface.Handle
	current int
	pending bool
}

// Queue stores h in the current slot and returns the handle it
// replaced, which was presented two flips ago and may be reused.
// Queueing twice before a flip replaces the pending frame.
func (r *Ring) Queue(h surface.Handle) (replaced surface.Handle) {
	replaced = r.slots[r.current]
	r.slots[r.current] = h
	r.pending = true
	return replaced
}

// Current returns the handle in the current slot.
func (r *Ring) Current() surface.Handle { return r.slots[r.current] }

// CurrentIndex returns the current slot index.
func (r *Ring) CurrentIndex() int { return r.current }

// Pending reports whether a frame was queued since the last Advance.
func (r *Ring) Pending() bool { return r.pending }

// Advance moves to the next slot.
func (r *Ring) Advance() {
	r.current = (r.current + 1) % RingSize
	r.pending = false
}

// Previous returns the handle in the slot before the current one: the
// frame presented last.
func (r *Ring) Previous() surface.Handle {
	return r.slots[(r.current+RingSize-1)%RingSize]
}

// Next returns the frame a flip presents: the pending frame, or the last
// presented one when nothing new was queued.
func (r *Ring) Next() surface.Handle {
	if r.pending {
		return r.Current()
	}
	return r.Previous()
}

// Reset empties the ring.
func (r *Ring) Reset() { *r = Ring{} }

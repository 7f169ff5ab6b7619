// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package surface owns the decode surfaces of a video output.
//
// A Pool allocates a fixed set of driver surfaces sized for the codec's
// reference frames and hands them out under one of two disciplines:
//
//   - LRU: a FreeRing holds the free surfaces in release order. Acquire
//     pushes the surface the caller is giving back to the tail, then pops
//     the head. Eviction is strict FIFO so the decoder always receives
//     the surface that has been free the longest.
//   - Direct mapping: the frame's sequence number indexes the arena.
//     Used when the driver displays surfaces in place and the decoder's
//     own buffer numbering must be preserved.
//
// # Ownership
//
// The pool owns every Surface. Other components hold Handles, which carry
// a generation number: a handle taken before ReleaseAll no longer
// resolves afterwards.
//
// # Busy tracking
//
// Each surface carries a State (Free, Decoding, Queued, Displayed) that
// the delivery and presentation paths keep current. Check validates that
// every surface is either in the free ring or held by a caller, never
// both. With SetDebug(true) every push and pop runs the check and also
// refuses to hand out a surface that is still queued or on screen.
//
// # Invariants
//
// Violations of the acquire/release contract are programming errors of
// the caller and panic with an *InvariantError:
//
//	defer func() {
//	    if r := recover(); r != nil {
//	        if ie, ok := r.(*surface.InvariantError); ok { ... }
//	    }
//	}()
//
// A Pool is not safe for concurrent use.
package surface

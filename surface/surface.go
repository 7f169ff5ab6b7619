// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"fmt"

	"github.com/gogpu/vaout/va"
)

// State is the position of a surface in the decode/display cycle.
type State uint8

const (
	// Free surfaces may be handed to the decoder.
	Free State = iota
	// Decoding surfaces are held by the decoder or being uploaded.
	Decoding
	// Queued surfaces hold a finished frame waiting for presentation.
	Queued
	// Displayed surfaces are on screen and must not be overwritten.
	Displayed
)

func (s State) String() string {
	switch s {
	case Free:
		return "free"
	case Decoding:
		return "decoding"
	case Queued:
		return "queued"
	case Displayed:
		return "displayed"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Surface is one decode target.
type Surface struct {
	// ID is the driver handle.
	ID va.SurfaceID

	// Image is the CPU-mappable image used to upload software frames.
	// Image.ID is va.InvalidImage when the surface has none.
	Image va.Image

	// Bound is set when Image was derived from the surface and aliases
	// its pixels, so no PutImage is needed after writing it.
	Bound bool

	// Index is the arena slot.
	Index int

	gen    uint32
	state  State
	inRing bool
}

// State returns the busy state.
func (s *Surface) State() State { return s.state }

// Handle is a generation-checked reference to a pool surface. The zero
// Handle is invalid.
type Handle struct {
	index int32
	gen   uint32
}

// Valid reports whether h was issued by a pool. It does not check that
// the pool has not been released since.
func (h Handle) Valid() bool { return h.gen != 0 }

// Index returns the arena slot h refers to.
func (h Handle) Index() int { return int(h.index) }

func (h Handle) String() string {
	if !h.Valid() {
		return "surface.Handle(invalid)"
	}
	return fmt.Sprintf("surface.Handle(%d@%d)", h.index, h.gen)
}

// InvariantError reports a violation of the acquire/release contract.
// It is raised with panic.
type InvariantError struct {
	Op  string
	Msg string
}

func (e *InvariantError) Error() string {
	return "surface: " + e.Op + ": " + e.Msg
}

func violation(op, format string, args ...any) *InvariantError {
	return &InvariantError{Op: op, Msg: fmt.Sprintf(format, args...)}
}

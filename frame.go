// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vaout

import (
	"errors"
	"strings"

	"github.com/gogpu/vaout/imgfmt"
	"github.com/gogpu/vaout/surface"
	"github.com/gogpu/vaout/va"
)

// Errors returned by VideoOutput.
var (
	ErrNotImplemented    = errors.New("vaout: not implemented")
	ErrUnsupportedFormat = errors.New("vaout: unsupported format")
	ErrNotConfigured     = errors.New("vaout: not configured")
)

// Caps are the capabilities QueryFormat reports for a format.
type Caps uint32

const (
	CapCSPSupported Caps = 1 << iota
	CapCSPSupportedByHW
	CapOSD
	CapHWScaleUp
	CapHWScaleDown
	CapEOSD
	// CapNoSlices means the format is never delivered in slices.
	CapNoSlices
)

// DefaultCaps are reported for every supported format.
const DefaultCaps = CapCSPSupported | CapCSPSupportedByHW | CapHWScaleUp |
	CapHWScaleDown | CapOSD | CapEOSD

var capNames = [...]string{"csp", "csp-hw", "osd", "scale-up", "scale-down", "eosd", "no-slices"}

// String renders the set bits as a "|" separated list, "unsupported"
// when none is set.
func (c Caps) String() string {
	if c == 0 {
		return "unsupported"
	}
	var parts []string
	for i, name := range capNames {
		if c&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "|")
}

// ConfigFlags are the Configure flags.
type ConfigFlags uint32

const (
	// ConfigFullscreen starts in fullscreen mode.
	ConfigFullscreen ConfigFlags = 1 << iota
)

// FieldFlags describe the field structure of an interlaced picture.
type FieldFlags uint8

const (
	// FieldOrdered means FieldTopFirst is meaningful.
	FieldOrdered FieldFlags = 1 << iota
	// FieldTopFirst marks top field first pictures.
	FieldTopFirst
)

// TopFieldFirst reports the field order. Pictures without an ordered
// field structure are treated as top field first.
func (f FieldFlags) TopFieldFirst() bool {
	if f&FieldOrdered == 0 {
		return true
	}
	return f&FieldTopFirst != 0
}

// Frame is one picture handed over by the host player.
//
// For accelerated formats the decoder obtains a surface with
// GetDecodeSurface and renders into SurfaceID. For software formats
// Planes hold the pixels; the chroma planes are subsampled by two in
// both directions.
type Frame struct {
	Format        imgfmt.Format
	Width, Height int

	// X and Y locate the visible picture inside the frame.
	X, Y int

	// Numbered frames are backed by a decoder picture buffer; Number is
	// its index.
	Numbered bool
	Number   int

	Planes  [3][]byte
	Strides [3]int

	Fields FieldFlags

	// Slices marks software pictures already delivered through
	// DrawSlice.
	Slices bool

	// Surface is the surface acquired for the picture. The previous
	// surface of a picture buffer goes back to the pool on the next
	// GetDecodeSurface.
	Surface   surface.Handle
	SurfaceID va.SurfaceID
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package decode

import "github.com/gogpu/vaout/imgfmt"

// Surface counts: one decode target plus the reference frames the codec
// can hold.
const (
	SurfacesMPEG2 = 3
	SurfacesMPEG4 = 3
	SurfacesH264  = 21
	SurfacesVC1   = 3

	// MaxSurfaces caps the doubled LRU counts.
	MaxSurfaces = 21

	// SoftwareSurfaces is the count for uploaded software frames, one
	// per output ring slot.
	SoftwareSurfaces = 2
)

// SurfaceCount returns how many surfaces to allocate for format. LRU
// recycling needs headroom so a released surface is not reused while
// still on screen; the count is doubled and capped at MaxSurfaces unless
// surfaces are mapped directly. It returns 0 for accelerated formats of
// an unknown codec.
func SurfaceCount(format imgfmt.Format, directMapping bool) int {
	if !format.IsAccelerated() {
		return SoftwareSurfaces
	}
	var n int
	switch format.Codec() {
	case imgfmt.CodecMPEG2:
		n = SurfacesMPEG2
	case imgfmt.CodecMPEG4:
		n = SurfacesMPEG4
	case imgfmt.CodecH264:
		n = SurfacesH264
	case imgfmt.CodecVC1:
		n = SurfacesVC1
	default:
		return 0
	}
	if !directMapping {
		n = min(2*n, MaxSurfaces)
	}
	return n
}

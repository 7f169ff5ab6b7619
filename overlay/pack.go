// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package overlay

import (
	"image"

	"github.com/gogpu/vaout/va"
)

// packer writes a w x h block of luma/alpha pixels into the first plane
// of a mapped image at pixel (x, y). dst is addressed with pitch and bpp
// bytes per pixel.
type packer func(dst []byte, pitch int, x, y, w, h int, src, alpha []byte, stride int)

// opacity converts a host OSD alpha byte to stored opacity. The host
// marks transparent pixels with 0 and otherwise scales the background by
// a/256, so opacity is the two's complement of a.
func opacity(a byte) byte { return -a }

func packIA44(dst []byte, pitch int, x0, y0, w, h int, src, alpha []byte, stride int) {
	for y := range h {
		d := dst[(y0+y)*pitch+x0:]
		s, a := src[y*stride:], alpha[y*stride:]
		for x := range w {
			d[x] = s[x]&0xf0 | opacity(a[x])>>4
		}
	}
}

func packAI44(dst []byte, pitch int, x0, y0, w, h int, src, alpha []byte, stride int) {
	for y := range h {
		d := dst[(y0+y)*pitch+x0:]
		s, a := src[y*stride:], alpha[y*stride:]
		for x := range w {
			d[x] = s[x]>>4 | opacity(a[x])&0xf0
		}
	}
}

func packIA88(dst []byte, pitch int, x0, y0, w, h int, src, alpha []byte, stride int) {
	for y := range h {
		d := dst[(y0+y)*pitch+2*x0:]
		s, a := src[y*stride:], alpha[y*stride:]
		for x := range w {
			d[2*x] = s[x]
			d[2*x+1] = opacity(a[x])
		}
	}
}

func packAI88(dst []byte, pitch int, x0, y0, w, h int, src, alpha []byte, stride int) {
	for y := range h {
		d := dst[(y0+y)*pitch+2*x0:]
		s, a := src[y*stride:], alpha[y*stride:]
		for x := range w {
			d[2*x] = opacity(a[x])
			d[2*x+1] = s[x]
		}
	}
}

// packRGB32 replicates luma into the three color bytes.
func packRGB32(dst []byte, pitch int, x0, y0, w, h int, src, alpha []byte, stride int) {
	for y := range h {
		d := dst[(y0+y)*pitch+4*x0:]
		s, a := src[y*stride:], alpha[y*stride:]
		for x := range w {
			c := s[x]
			d[4*x], d[4*x+1], d[4*x+2] = c, c, c
			d[4*x+3] = opacity(a[x])
		}
	}
}

// osdFormats lists the OSD subpicture formats, best first.
var osdFormats = []struct {
	fourcc va.FourCC
	pack   packer
}{
	{va.FourCCIA44, packIA44},
	{va.FourCCAI44, packAI44},
	{va.FourCCIA88, packIA88},
	{va.FourCCAI88, packAI88},
	{va.FourCCBGRA, packRGB32},
	{va.FourCCRGBA, packRGB32},
}

// OSDFormats returns the OSD subpicture formats in order of preference.
func OSDFormats() []va.FourCC {
	out := make([]va.FourCC, len(osdFormats))
	for i, f := range osdFormats {
		out[i] = f.fourcc
	}
	return out
}

// SubtitleFormats returns the subtitle subpicture formats in order of
// preference.
func SubtitleFormats() []va.FourCC {
	return []va.FourCC{va.FourCCRGBA}
}

func packerFor(cc va.FourCC) packer {
	for _, f := range osdFormats {
		if f.fourcc == cc {
			return f.pack
		}
	}
	return nil
}

// DirtyRect is the bounding box of everything drawn since the last
// Reset.
//
// Reset stores the inverted rectangle of the image (left/top at the far
// corner, right/bottom at the origin), so the first Add yields exactly
// the block drawn and every later Add can only grow the box.
type DirtyRect struct {
	Left, Top, Right, Bottom int
}

// Reset inverts the rectangle x, y, w, h.
func (r *DirtyRect) Reset(x, y, w, h int) {
	r.Left, r.Top = x+w, y+h
	r.Right, r.Bottom = x, y
}

// Add grows the box to include x, y, w, h.
func (r *DirtyRect) Add(x, y, w, h int) {
	r.Left = min(r.Left, x)
	r.Top = min(r.Top, y)
	r.Right = max(r.Right, x+w)
	r.Bottom = max(r.Bottom, y+h)
}

// Empty reports whether nothing was added since Reset.
func (r DirtyRect) Empty() bool {
	return r.Right <= r.Left || r.Bottom <= r.Top
}

// Rect returns the box as a rectangle, empty when nothing was drawn.
func (r DirtyRect) Rect() image.Rectangle {
	if r.Empty() {
		return image.Rectangle{}
	}
	return image.Rect(r.Left, r.Top, r.Right, r.Bottom)
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package overlay

import (
	"github.com/gogpu/vaout/caps"
	"github.com/gogpu/vaout/va"
)

// Change tells how subtitle images differ from the previous call.
type Change int

const (
	// Unchanged images need no work.
	Unchanged Change = iota
	// Moved images keep their bitmaps; the uploaded content is reused.
	Moved
	// Redrawn images must be uploaded again.
	Redrawn
)

// Bitmap is one subtitle glyph run: an 8-bit coverage mask drawn at
// (X, Y) in Color.
type Bitmap struct {
	Mask   []byte
	W, H   int
	Stride int
	X, Y   int

	// Color is 0xRRGGBBAA where AA is transparency: 0 is opaque.
	Color uint32
}

// Images is one subtitle update.
type Images struct {
	Bitmaps []Bitmap
	Changed Change
}

// Resolution is the canvas the subtitle renderer should lay out on.
type Resolution struct {
	Width, Height            int
	Top, Bottom, Left, Right int
}

// Subtitles composites rendered subtitles. The layer is associated with
// one surface at a time, around each put of that surface.
type Subtitles struct {
	slot
	used bool

	frameW, frameH int
}

// NewSubtitles returns a subtitle compositor without a layer.
func NewSubtitles(d va.Display, opts ...Option) *Subtitles {
	return &Subtitles{slot: newSlot(d, "subtitles", SubtitleFormats(), opts)}
}

// Configure sizes the layer for width x height frames. The layer is only
// rebuilt when the size changes.
func (s *Subtitles) Configure(c *caps.Capabilities, width, height int) error {
	s.frameW, s.frameH = width, height
	created, err := s.resize(c, width, height)
	if created {
		s.used = false
	}
	return err
}

// Update applies one subtitle update.
func (s *Subtitles) Update(imgs Images) {
	if !s.active() || imgs.Changed == Unchanged {
		return
	}
	if len(imgs.Bitmaps) == 0 {
		s.used = false
		return
	}
	if imgs.Changed == Moved {
		s.used = true
		return
	}

	data, ok := s.mapImage()
	if !ok {
		return
	}
	plane := data[s.layer.Image.Offsets[0]:]
	pitch := s.layer.Image.Pitches[0]
	clear(plane[:min(len(plane), pitch*s.height)])
	for _, b := range imgs.Bitmaps {
		s.blend(plane, pitch, b)
	}
	if !s.unmapImage() {
		return
	}
	s.used = true
}

// blend mixes the color into the RGBA plane weighted by the mask.
func (s *Subtitles) blend(plane []byte, pitch int, b Bitmap) {
	x0, y0, w, h, off, ok := s.clip(b.X, b.Y, b.W, b.H, b.Stride)
	if !ok {
		return
	}
	c := [4]uint32{
		b.Color >> 24 & 0xff,
		b.Color >> 16 & 0xff,
		b.Color >> 8 & 0xff,
		0xff - b.Color&0xff,
	}
	mask := b.Mask[off:]
	for y := range h {
		d := plane[(y0+y)*pitch+4*x0:]
		m := mask[y*b.Stride:]
		for x := range w {
			v := uint32(m[x])
			p := d[4*x : 4*x+4]
			for i := range p {
				p[i] = byte((c[i]*v + uint32(p[i])*(0xff-v)) / 0xff)
			}
		}
	}
}

// Attach associates the subtitles with the surface about to be put,
// covering the whole frame. It reports whether they were attached.
func (s *Subtitles) Attach(id va.SurfaceID) bool {
	if !s.used || !s.active() {
		return false
	}
	r := va.FullRect(s.width, s.height)
	err := s.d.AssociateSubpicture(s.layer.Subpicture, []va.SurfaceID{id}, r, r, 0)
	if err != nil {
		s.fail(err, "vaAssociateSubpicture()")
		return false
	}
	return true
}

// Detach removes the subtitles from a surface after its put.
func (s *Subtitles) Detach(id va.SurfaceID) {
	if s.layer == nil {
		return
	}
	if err := s.d.DeassociateSubpicture(s.layer.Subpicture, []va.SurfaceID{id}); err != nil {
		s.fail(err, "vaDeassociateSubpicture()")
	}
}

// Resolution returns the subtitle canvas: the frame size without
// margins.
func (s *Subtitles) Resolution() Resolution {
	return Resolution{Width: s.frameW, Height: s.frameH}
}

// Used reports whether there are subtitles to show.
func (s *Subtitles) Used() bool { return s.used && s.active() }

// Active reports whether the compositor has a working layer.
func (s *Subtitles) Active() bool { return s.active() }

// Layer returns the current layer, nil if there is none.
func (s *Subtitles) Layer() *Layer { return s.layer }

// Release destroys the layer.
func (s *Subtitles) Release() {
	s.destroy()
	s.used = false
}

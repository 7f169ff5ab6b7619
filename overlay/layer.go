// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package overlay composites the on-screen display and subtitles onto
// decode surfaces through driver subpictures.
//
// Each overlay owns a Layer: an image in the best subpicture format the
// driver offers plus the subpicture created from it. Layers are rebuilt
// only when the frame size changes. Content is drawn into the mapped
// image and the subpicture is associated with the surfaces it must
// appear on. A driver failure disables the overlay for the rest of the
// session.
package overlay

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/vaout/caps"
	"github.com/gogpu/vaout/va"
)

// ErrNoFormat is returned when the driver offers none of the overlay's
// subpicture formats.
var ErrNoFormat = errors.New("overlay: no usable subpicture format")

// Layer is an overlay image and its subpicture.
type Layer struct {
	Image      va.Image
	Subpicture va.SubpictureID
	Flags      va.SubpictureFlags

	// Palette is the palette uploaded for paletted formats, nil otherwise.
	Palette []byte
}

// FourCC returns the layer's pixel format.
func (l *Layer) FourCC() va.FourCC { return l.Image.Format.FourCC }

// newLayer tries the ranked formats in order. A format is taken when
// the driver lists it, the image can be created and the image is
// paletted exactly when a palette could be generated for it.
func newLayer(d va.Display, c *caps.Capabilities, ranked []va.FourCC, width, height int, log *slog.Logger) (*Layer, error) {
	chroma := ChromaFor(c.Vendor)
	for _, cc := range ranked {
		format, flags, ok := c.FindSubpictureFormat(cc)
		if !ok {
			continue
		}
		img, err := d.CreateImage(format, width, height)
		if !va.Check(log, err, "vaCreateImage()") {
			continue
		}
		palette, err := Palette(img, chroma)
		if err != nil || (img.NumPaletteEntries == 0) != (palette == nil) {
			log.Debug("overlay: palette mismatch, trying next format", "fourcc", cc.String())
			va.Check(log, d.DestroyImage(img.ID), "vaDestroyImage()")
			continue
		}

		sub, err := d.CreateSubpicture(img.ID)
		if !va.Check(log, err, "vaCreateSubpicture()") {
			va.Check(log, d.DestroyImage(img.ID), "vaDestroyImage()")
			return nil, fmt.Errorf("overlay: create subpicture: %w", err)
		}
		if palette != nil {
			va.Check(log, d.SetImagePalette(img.ID, palette), "vaSetImagePalette()")
		}
		log.Debug("overlay: layer created", "fourcc", cc.String(), "width", width, "height", height)
		return &Layer{Image: img, Subpicture: sub, Flags: flags, Palette: palette}, nil
	}
	return nil, ErrNoFormat
}

func (l *Layer) destroy(d va.Display, log *slog.Logger) {
	va.Check(log, d.DestroySubpicture(l.Subpicture), "vaDestroySubpicture()")
	va.Check(log, d.DestroyImage(l.Image.ID), "vaDestroyImage()")
}

// slot holds the layer state shared by both overlays.
type slot struct {
	d      va.Display
	log    *slog.Logger
	name   string
	ranked []va.FourCC

	layer         *Layer
	width, height int
	broken        bool
}

// Option configures an overlay.
type Option func(*slot)

// WithLogger sets the logger for driver failures and format selection.
func WithLogger(l *slog.Logger) Option {
	return func(s *slot) {
		if l != nil {
			s.log = l
		}
	}
}

func newSlot(d va.Display, name string, ranked []va.FourCC, opts []Option) slot {
	s := slot{d: d, name: name, ranked: ranked, log: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// resize rebuilds the layer when the size differs from the current one.
// It reports whether a new layer was created. The caller must have
// disassociated the old subpicture.
func (s *slot) resize(c *caps.Capabilities, width, height int) (bool, error) {
	if s.broken {
		return false, nil
	}
	if s.layer != nil && s.width == width && s.height == height {
		return false, nil
	}
	s.destroy()
	l, err := newLayer(s.d, c, s.ranked, width, height, s.log)
	if err != nil {
		s.log.Warn("overlay: disabled", "overlay", s.name, "err", err)
		s.broken = true
		return false, err
	}
	s.layer, s.width, s.height = l, width, height
	return true, nil
}

func (s *slot) destroy() {
	if s.layer == nil {
		return
	}
	s.layer.destroy(s.d, s.log)
	s.layer = nil
	s.width, s.height = 0, 0
}

// fail records a driver failure and disables the overlay.
func (s *slot) fail(err error, call string) {
	va.Check(s.log, err, call)
	if !s.broken {
		s.log.Warn("overlay: disabled after driver failure", "overlay", s.name, "call", call)
	}
	s.broken = true
}

func (s *slot) active() bool { return s.layer != nil && !s.broken }

// mapImage maps the layer buffer and clears it.
func (s *slot) mapImage() ([]byte, bool) {
	data, err := s.d.MapBuffer(s.layer.Image.Buf)
	if err != nil {
		s.fail(err, "vaMapBuffer()")
		return nil, false
	}
	n := min(s.layer.Image.DataSize, len(data))
	clear(data[:n])
	return data, true
}

func (s *slot) unmapImage() bool {
	if err := s.d.UnmapBuffer(s.layer.Image.Buf); err != nil {
		s.fail(err, "vaUnmapBuffer()")
		return false
	}
	return true
}

// clip intersects the block x, y, w, h with the layer and returns the
// clipped block and the source offset of its first pixel.
func (s *slot) clip(x, y, w, h, stride int) (cx, cy, cw, ch, off int, ok bool) {
	off = 0
	if x < 0 {
		off -= x
		w += x
		x = 0
	}
	if y < 0 {
		off -= y * stride
		h += y
		y = 0
	}
	w = min(w, s.width-x)
	h = min(h, s.height-y)
	if w <= 0 || h <= 0 {
		return 0, 0, 0, 0, 0, false
	}
	return x, y, w, h, off, true
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package present

import "github.com/gogpu/vaout/va"

// DirectBlit scales surfaces straight into the window.
type DirectBlit struct {
	clear bool
}

// NewDirectBlit returns the blit backend.
func NewDirectBlit() *DirectBlit { return &DirectBlit{} }

// Name implements Backend.
func (b *DirectBlit) Name() string { return BackendBlit }

// Setup implements Backend.
func (b *DirectBlit) Setup(*Target) error {
	b.clear = true
	return nil
}

// Put implements Backend. The first put after setup or a resize also
// clears the borders around the output rectangle when the display
// supports it.
func (b *DirectBlit) Put(t *Target, id va.SurfaceID) error {
	return putFields(t, id, t.Window.Drawable(), t.Output, b.takeClear(t))
}

func (b *DirectBlit) takeClear(t *Target) va.PutFlags {
	if !b.clear || t.Supported&va.ClearDrawable == 0 {
		return 0
	}
	b.clear = false
	return va.ClearDrawable
}

// putFields issues one PutSurface per field. extra is added to the
// first put only.
func putFields(t *Target, id va.SurfaceID, dst va.Drawable, out va.Rect, extra va.PutFlags) error {
	src := t.Source()
	for i := range t.Fields() {
		err := t.Display.PutSurface(id, dst, src, out, t.PutFlags(i)|extra)
		if !va.Check(t.logger(), err, "vaPutSurface()") {
			return va.Wrap(err, "vaPutSurface()")
		}
		extra = 0
	}
	return nil
}

// Flip implements Backend. Puts are visible immediately.
func (b *DirectBlit) Flip(*Target) error { return nil }

// Resize implements Backend.
func (b *DirectBlit) Resize(*Target) error {
	b.clear = true
	return nil
}

// Release implements Backend.
func (b *DirectBlit) Release(*Target) {}

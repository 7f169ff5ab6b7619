// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package overlay

import (
	"github.com/gogpu/vaout/caps"
	"github.com/gogpu/vaout/va"
)

// OSD composites the host on-screen display. The subpicture is
// associated with every pool surface, covering only the area drawn.
type OSD struct {
	slot
	pack       packer
	targets    []va.SurfaceID
	dirty      DirtyRect
	data       []byte
	associated bool
	redraw     bool
}

// NewOSD returns an OSD compositor without a layer.
func NewOSD(d va.Display, opts ...Option) *OSD {
	return &OSD{slot: newSlot(d, "osd", OSDFormats(), opts)}
}

// Configure sizes the layer for width x height frames and sets the
// surfaces it is associated with. The layer is only rebuilt when the
// size changes. The next Update redraws even if the source reports no
// change. Disable must be called before the previous targets are
// destroyed.
func (o *OSD) Configure(c *caps.Capabilities, width, height int, targets []va.SurfaceID) error {
	o.Disable()
	o.targets = targets
	o.redraw = true
	created, err := o.resize(c, width, height)
	if err != nil {
		return err
	}
	if created {
		o.pack = packerFor(o.layer.FourCC())
	}
	return nil
}

// Update draws src if it changed. An empty display disables the
// subpicture.
func (o *OSD) Update(src Source) {
	if !o.active() {
		return
	}
	changed := src.Changed(o.width, o.height)
	if !changed && !o.redraw {
		return
	}
	o.redraw = false
	if src.Empty() {
		o.Disable()
		return
	}

	data, ok := o.mapImage()
	if !ok {
		return
	}
	o.data = data[o.layer.Image.Offsets[0]:]
	o.dirty.Reset(0, 0, o.width, o.height)
	src.Draw(o.width, o.height, o.DrawAlpha)
	o.data = nil
	if !o.unmapImage() {
		return
	}
	if o.dirty.Empty() {
		o.Disable()
		return
	}
	o.enable(o.dirty.Rect())
}

// DrawAlpha packs one block into the mapped image and grows the dirty
// rectangle. It is only valid while Update draws the source. Blocks are
// clipped to the layer.
func (o *OSD) DrawAlpha(x, y, w, h int, src, alpha []byte, stride int) {
	if o.data == nil || o.pack == nil {
		return
	}
	x, y, w, h, off, ok := o.clip(x, y, w, h, stride)
	if !ok {
		return
	}
	o.dirty.Add(x, y, w, h)
	o.pack(o.data, o.layer.Image.Pitches[0], x, y, w, h, src[off:], alpha[off:], stride)
}

func (o *OSD) enable(r va.Rect) {
	o.Disable()
	err := o.d.AssociateSubpicture(o.layer.Subpicture, o.targets, r, r, 0)
	if err != nil {
		o.fail(err, "vaAssociateSubpicture()")
		return
	}
	o.associated = true
}

// Disable removes the subpicture from the surfaces.
func (o *OSD) Disable() {
	if !o.associated {
		return
	}
	o.associated = false
	if err := o.d.DeassociateSubpicture(o.layer.Subpicture, o.targets); err != nil {
		o.fail(err, "vaDeassociateSubpicture()")
	}
}

// Release disables the subpicture and destroys the layer.
func (o *OSD) Release() {
	o.Disable()
	o.destroy()
	o.pack = nil
}

// Active reports whether the OSD has a working layer.
func (o *OSD) Active() bool { return o.active() }

// Associated reports whether the subpicture is shown.
func (o *OSD) Associated() bool { return o.associated }

// Dirty returns the area drawn by the last Update.
func (o *OSD) Dirty() DirtyRect { return o.dirty }

// Layer returns the current layer, nil if there is none.
func (o *OSD) Layer() *Layer { return o.layer }

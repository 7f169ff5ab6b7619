// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package present

import (
	"fmt"

	"github.com/gogpu/vaout/va"
	"github.com/gogpu/vaout/window"
)

// Composited blits surfaces into an off-screen pixmap the size of the
// window and composites the pixmap onto the window.
type Composited struct {
	comp   window.Compositor
	pixmap window.Pixmap
	ok     bool
}

// NewComposited returns the xrender backend.
func NewComposited() *Composited { return &Composited{} }

// Name implements Backend.
func (c *Composited) Name() string { return BackendXRender }

// Pixmap returns the current pixmap.
func (c *Composited) Pixmap() window.Pixmap { return c.pixmap }

// Setup implements Backend.
func (c *Composited) Setup(t *Target) error {
	comp, err := window.CompositorOf(t.Window)
	if err != nil {
		return err
	}
	c.comp = comp
	return c.createPixmap(t)
}

func (c *Composited) createPixmap(t *Target) error {
	w, h := t.Window.Size()
	p, err := c.comp.CreatePixmap(w, h)
	if err != nil {
		return fmt.Errorf("present: create pixmap: %w", err)
	}
	c.pixmap, c.ok = p, true
	return nil
}

// Put implements Backend. Every put clears the pixmap so no stale
// borders are composited.
func (c *Composited) Put(t *Target, id va.SurfaceID) error {
	if !c.ok {
		return nil
	}
	if err := putFields(t, id, c.pixmap.Drawable, t.Output, t.Supported&va.ClearDrawable); err != nil {
		return err
	}
	if err := c.comp.Composite(c.pixmap); err != nil {
		t.logger().Error("composite failed", "err", err)
		return err
	}
	return nil
}

// Flip implements Backend.
func (c *Composited) Flip(*Target) error { return nil }

// Resize implements Backend. The pixmap follows the window size.
func (c *Composited) Resize(t *Target) error {
	if c.comp == nil {
		return nil
	}
	w, h := t.Window.Size()
	if c.ok && c.pixmap.Width == w && c.pixmap.Height == h {
		return nil
	}
	c.Release(t)
	return c.createPixmap(t)
}

// Release implements Backend.
func (c *Composited) Release(t *Target) {
	if !c.ok {
		return
	}
	if err := c.comp.FreePixmap(c.pixmap); err != nil {
		t.logger().Warn("free pixmap failed", "err", err)
	}
	c.pixmap, c.ok = window.Pixmap{}, false
}

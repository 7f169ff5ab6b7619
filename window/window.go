// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package window defines the window-system collaborator of the video
// output and a headless implementation of it.
package window

import (
	"errors"
	"image"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/vaout/va"
)

// ErrNoCompositor is returned when a window does not support the
// compositing extension.
var ErrNoCompositor = errors.New("window: compositing extension not available")

// Events is a set of pending window events.
type Events uint8

const (
	// EventResize reports a new window size.
	EventResize Events = 1 << iota
	// EventExpose reports that window contents were lost.
	EventExpose
)

// Has reports whether e contains all events in mask.
func (e Events) Has(mask Events) bool { return e&mask == mask }

// Window is the output window.
//
// Size reports the drawable size in pixels. RequestRedraw asks the
// window system for an expose event.
type Window interface {
	gpucontext.WindowProvider

	// Drawable is the blit target handle understood by the driver.
	Drawable() va.Drawable

	// Poll returns and clears the pending events.
	Poll() Events

	Fullscreen() bool
	SetFullscreen(on bool)
}

// Pixmap is an off-screen drawable.
type Pixmap struct {
	Drawable va.Drawable
	Width    int
	Height   int
}

// Compositor is implemented by windows that support the compositing
// extension.
type Compositor interface {
	CreatePixmap(width, height int) (Pixmap, error)
	FreePixmap(p Pixmap) error

	// Composite copies the pixmap onto the window.
	Composite(p Pixmap) error

	// BindTexImage uploads the pixmap contents into a texture, the
	// texture-from-pixmap path.
	BindTexImage(p Pixmap, tex gpucontext.TextureUpdater) error
}

// CompositorOf returns the compositing extension of w.
func CompositorOf(w Window) (Compositor, error) {
	if c, ok := w.(Compositor); ok {
		return c, nil
	}
	return nil, ErrNoCompositor
}

// Snapshotter is implemented by windows whose contents can be read back.
type Snapshotter interface {
	Snapshot() *image.RGBA
}

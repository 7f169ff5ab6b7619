// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package window

import (
	"errors"
	"image"
	"image/draw"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/vaout/va"
)

// Drawables registers images as driver blit targets.
// software.Display implements it.
type Drawables interface {
	AttachDrawable(dst draw.Image) va.Drawable
	ReplaceDrawable(id va.Drawable, dst draw.Image)
	DetachDrawable(id va.Drawable)
}

// Headless is an in-memory window. Its pixels live in an RGBA image that
// the driver blits into. It implements Window, Compositor and
// Snapshotter.
type Headless struct {
	mu sync.Mutex

	reg        Drawables
	drawable   va.Drawable
	img        *image.RGBA
	scale      float64
	pending    Events
	fullscreen bool
	redraws    int

	pixmaps map[va.Drawable]*image.RGBA
}

// NewHeadless creates a width x height window registered with reg.
// A nil reg gives a window that no driver draws into, which is enough
// for format and capability queries.
func NewHeadless(reg Drawables, width, height int) *Headless {
	if reg == nil {
		reg = nopDrawables{}
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	return &Headless{
		reg:      reg,
		drawable: reg.AttachDrawable(img),
		img:      img,
		scale:    1,
		pixmaps:  make(map[va.Drawable]*image.RGBA),
	}
}

// Size implements gpucontext.WindowProvider.
func (w *Headless) Size() (int, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.img.Rect.Dx(), w.img.Rect.Dy()
}

// ScaleFactor implements gpucontext.WindowProvider.
func (w *Headless) ScaleFactor() float64 { return w.scale }

// RequestRedraw queues an expose event.
func (w *Headless) RequestRedraw() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.redraws++
	w.pending |= EventExpose
}

// Redraws returns how many redraws were requested.
func (w *Headless) Redraws() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.redraws
}

// Drawable implements Window.
func (w *Headless) Drawable() va.Drawable { return w.drawable }

// Poll implements Window.
func (w *Headless) Poll() Events {
	w.mu.Lock()
	defer w.mu.Unlock()
	e := w.pending
	w.pending = 0
	return e
}

// Fullscreen implements Window.
func (w *Headless) Fullscreen() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fullscreen
}

// SetFullscreen implements Window. Headless windows keep their size.
func (w *Headless) SetFullscreen(on bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fullscreen != on {
		w.fullscreen = on
		w.pending |= EventResize
	}
}

// Resize replaces the window contents with a blank image of the new
// size and queues a resize event.
func (w *Headless) Resize(width, height int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.img = image.NewRGBA(image.Rect(0, 0, width, height))
	w.reg.ReplaceDrawable(w.drawable, w.img)
	w.pending |= EventResize
}

// Expose queues an expose event.
func (w *Headless) Expose() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending |= EventExpose
}

// Snapshot returns a copy of the window pixels.
func (w *Headless) Snapshot() *image.RGBA {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := image.NewRGBA(w.img.Rect)
	copy(out.Pix, w.img.Pix)
	return out
}

// Close unregisters the window and its pixmaps.
func (w *Headless) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for id := range w.pixmaps {
		w.reg.DetachDrawable(id)
	}
	clear(w.pixmaps)
	w.reg.DetachDrawable(w.drawable)
}

// CreatePixmap implements Compositor.
func (w *Headless) CreatePixmap(width, height int) (Pixmap, error) {
	if width <= 0 || height <= 0 {
		return Pixmap{}, errors.New("window: empty pixmap")
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	id := w.reg.AttachDrawable(img)
	w.pixmaps[id] = img
	return Pixmap{Drawable: id, Width: width, Height: height}, nil
}

// FreePixmap implements Compositor.
func (w *Headless) FreePixmap(p Pixmap) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.pixmaps[p.Drawable]; !ok {
		return errors.New("window: unknown pixmap")
	}
	delete(w.pixmaps, p.Drawable)
	w.reg.DetachDrawable(p.Drawable)
	return nil
}

// Composite implements Compositor.
func (w *Headless) Composite(p Pixmap) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	src, ok := w.pixmaps[p.Drawable]
	if !ok {
		return errors.New("window: unknown pixmap")
	}
	draw.Draw(w.img, w.img.Rect, src, image.Point{}, draw.Src)
	return nil
}

// BindTexImage implements Compositor. The texture must have the pixmap
// size. Textures reporting a BGRA format get their channels swapped.
func (w *Headless) BindTexImage(p Pixmap, tex gpucontext.TextureUpdater) error {
	w.mu.Lock()
	src, ok := w.pixmaps[p.Drawable]
	var pix []byte
	if ok {
		pix = append([]byte(nil), src.Pix...)
	}
	w.mu.Unlock()
	if !ok {
		return errors.New("window: unknown pixmap")
	}
	if f, ok := tex.(interface{ Format() gputypes.TextureFormat }); ok && f.Format() == gputypes.TextureFormatBGRA8Unorm {
		for i := 0; i+3 < len(pix); i += 4 {
			pix[i], pix[i+2] = pix[i+2], pix[i]
		}
	}
	return tex.UpdateData(pix)
}

type nopDrawables struct{}

func (nopDrawables) AttachDrawable(draw.Image) va.Drawable   { return 0 }
func (nopDrawables) ReplaceDrawable(va.Drawable, draw.Image) {}
func (nopDrawables) DetachDrawable(va.Drawable)              {}

var (
	_ Window      = (*Headless)(nil)
	_ Compositor  = (*Headless)(nil)
	_ Snapshotter = (*Headless)(nil)
)

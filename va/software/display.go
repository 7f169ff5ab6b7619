// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package software is an in-memory video acceleration driver.
//
// It keeps NV12 surfaces in CPU memory, implements images, buffer
// mapping and subpictures, and blits surfaces into registered drawables
// with golang.org/x/image/draw scaling. It is used by tests and by the
// headless command line tool, and doubles as a reference for what the
// output core expects from a real driver.
//
// Any call can be made to fail with Fail or FailAfter.
package software

import (
	"image"
	"image/draw"
	"sync"

	"github.com/gogpu/vaout/va"
)

// Vendor is the default vendor string.
const Vendor = "vaout software driver"

// Display is a software va.Display. It also implements va.GLXDisplay and
// va.PutFlagsQuerier. All methods are safe for concurrent use.
type Display struct {
	mu sync.Mutex

	cfg config

	initialized bool
	nextID      uint32

	surfaces    map[va.SurfaceID]*surface
	images      map[va.ImageID]*imageObj
	buffers     map[va.BufferID]*imageObj
	subpictures map[va.SubpictureID]*subpicture
	configs     map[va.ConfigID]configObj
	contexts    map[va.ContextID]contextObj
	drawables   map[va.Drawable]draw.Image
	glSurfaces  map[va.GLSurface]*glSurface
	attrs       []va.DisplayAttribute

	faults map[string]*fault
	calls  map[string]int
	puts   []PutRecord
}

// PutRecord describes one PutSurface call.
type PutRecord struct {
	Surface  va.SurfaceID
	Drawable va.Drawable
	Src, Dst va.Rect
	Flags    va.PutFlags
}

// New creates a software display.
func New(opts ...Option) *Display {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	d := &Display{
		cfg:    cfg,
		nextID: 1,
		faults: make(map[string]*fault),
		calls:  make(map[string]int),
	}
	d.reset()
	return d
}

func (d *Display) reset() {
	d.surfaces = make(map[va.SurfaceID]*surface)
	d.images = make(map[va.ImageID]*imageObj)
	d.buffers = make(map[va.BufferID]*imageObj)
	d.subpictures = make(map[va.SubpictureID]*subpicture)
	d.configs = make(map[va.ConfigID]configObj)
	d.contexts = make(map[va.ContextID]contextObj)
	d.glSurfaces = make(map[va.GLSurface]*glSurface)
	if d.drawables == nil {
		d.drawables = make(map[va.Drawable]draw.Image)
	}
	d.attrs = append([]va.DisplayAttribute(nil), d.cfg.attrs...)
}

func (d *Display) newID() uint32 {
	id := d.nextID
	d.nextID++
	return id
}

// enter records a call and returns the injected failure, if any.
// The caller must hold d.mu.
func (d *Display) enter(call string) error {
	d.calls[call]++
	if f, ok := d.faults[call]; ok {
		if f.after > 0 {
			f.after--
			return nil
		}
		return f.status
	}
	if !d.initialized && call != "Initialize" {
		return va.StatusErrorInvalidDisplay
	}
	return nil
}

// Initialize implements va.Display.
func (d *Display) Initialize() (int, int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("Initialize"); err != nil {
		return 0, 0, err
	}
	d.initialized = true
	return 1, 0, nil
}

// Terminate implements va.Display. Every object is released.
func (d *Display) Terminate() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("Terminate"); err != nil {
		return err
	}
	d.initialized = false
	d.reset()
	return nil
}

// VendorString implements va.Display.
func (d *Display) VendorString() string {
	return d.cfg.vendor
}

// QueryImageFormats implements va.Display.
func (d *Display) QueryImageFormats() ([]va.ImageFormat, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("QueryImageFormats"); err != nil {
		return nil, err
	}
	return append([]va.ImageFormat(nil), d.cfg.imageFormats...), nil
}

// QuerySubpictureFormats implements va.Display.
func (d *Display) QuerySubpictureFormats() ([]va.ImageFormat, []va.SubpictureFlags, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("QuerySubpictureFormats"); err != nil {
		return nil, nil, err
	}
	flags := make([]va.SubpictureFlags, len(d.cfg.subpictureFormats))
	for i := range flags {
		flags[i] = va.SubpictureGlobalAlpha
	}
	return append([]va.ImageFormat(nil), d.cfg.subpictureFormats...), flags, nil
}

// QueryConfigProfiles implements va.Display.
func (d *Display) QueryConfigProfiles() ([]va.Profile, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("QueryConfigProfiles"); err != nil {
		return nil, err
	}
	return append([]va.Profile(nil), d.cfg.profiles...), nil
}

// QueryConfigEntrypoints implements va.Display.
func (d *Display) QueryConfigEntrypoints(p va.Profile) ([]va.Entrypoint, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("QueryConfigEntrypoints"); err != nil {
		return nil, err
	}
	if !d.hasProfile(p) {
		return nil, va.StatusErrorUnsupportedProfile
	}
	if eps, ok := d.cfg.entrypoints[p]; ok {
		return append([]va.Entrypoint(nil), eps...), nil
	}
	return []va.Entrypoint{va.EntrypointVLD}, nil
}

// QueryDisplayAttributes implements va.Display.
func (d *Display) QueryDisplayAttributes() ([]va.DisplayAttribute, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("QueryDisplayAttributes"); err != nil {
		return nil, err
	}
	out := make([]va.DisplayAttribute, 0, len(d.attrs))
	for _, a := range d.attrs {
		if a.Type != va.DisplayAttribDirectSurface {
			out = append(out, a)
		}
	}
	return out, nil
}

// GetDisplayAttributes implements va.Display.
func (d *Display) GetDisplayAttributes(attrs []va.DisplayAttribute) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("GetDisplayAttributes"); err != nil {
		return err
	}
	for i := range attrs {
		a := d.attr(attrs[i].Type)
		if a == nil || !a.Gettable() {
			return va.StatusErrorAttrNotSupported
		}
		attrs[i] = *a
	}
	return nil
}

// SetDisplayAttributes implements va.Display. Values are clamped to the
// attribute range.
func (d *Display) SetDisplayAttributes(attrs []va.DisplayAttribute) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("SetDisplayAttributes"); err != nil {
		return err
	}
	for _, in := range attrs {
		a := d.attr(in.Type)
		if a == nil || !a.Settable() {
			return va.StatusErrorAttrNotSupported
		}
		a.Value = min(max(in.Value, a.MinValue), a.MaxValue)
	}
	return nil
}

func (d *Display) attr(t va.DisplayAttribType) *va.DisplayAttribute {
	for i := range d.attrs {
		if d.attrs[i].Type == t {
			return &d.attrs[i]
		}
	}
	return nil
}

// SupportedPutFlags implements va.PutFlagsQuerier.
func (d *Display) SupportedPutFlags() va.PutFlags {
	return d.cfg.putFlags
}

// AttachDrawable registers dst as a blit target and returns its handle.
func (d *Display) AttachDrawable(dst draw.Image) va.Drawable {
	d.mu.Lock()
	defer d.mu.Unlock()
	id := va.Drawable(d.newID())
	d.drawables[id] = dst
	return id
}

// ReplaceDrawable swaps the image behind an attached drawable, e.g.
// after the window was resized.
func (d *Display) ReplaceDrawable(id va.Drawable, dst draw.Image) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.drawables[id]; ok {
		d.drawables[id] = dst
	}
}

// DetachDrawable forgets a drawable.
func (d *Display) DetachDrawable(id va.Drawable) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.drawables, id)
}

// Calls returns how many times the named method was called.
func (d *Display) Calls(method string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls[method]
}

// Puts returns the PutSurface calls made so far.
func (d *Display) Puts() []PutRecord {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]PutRecord(nil), d.puts...)
}

// Live reports the number of live surfaces, images and subpictures.
func (d *Display) Live() (surfaces, images, subpictures int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.surfaces), len(d.images), len(d.subpictures)
}

// Surface returns a copy of the NV12 pixels of a surface, nil if the
// surface does not exist.
func (d *Display) Surface(id va.SurfaceID) *image.YCbCr {
	d.mu.Lock()
	defer d.mu.Unlock()
	s, ok := d.surfaces[id]
	if !ok {
		return nil
	}
	return s.ycbcr()
}

// WriteSurface fills a surface from a planar image, standing in for a
// hardware decoder writing into it.
func (d *Display) WriteSurface(id va.SurfaceID, src *image.YCbCr) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("WriteSurface"); err != nil {
		return err
	}
	s, ok := d.surfaces[id]
	if !ok {
		return va.StatusErrorInvalidSurface
	}
	s.fill(src)
	return nil
}

func (d *Display) hasProfile(p va.Profile) bool {
	for _, q := range d.cfg.profiles {
		if q == p {
			return true
		}
	}
	return false
}

var (
	_ va.Display         = (*Display)(nil)
	_ va.GLXDisplay      = (*Display)(nil)
	_ va.PutFlagsQuerier = (*Display)(nil)
)

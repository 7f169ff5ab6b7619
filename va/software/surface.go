// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"image"

	"github.com/gogpu/vaout/va"
)

// surface is an NV12 frame: a full resolution luma plane followed by an
// interleaved half resolution chroma plane.
type surface struct {
	width, height int
	data          []byte
	derived       va.ImageID
	assoc         []association
}

type association struct {
	sub      va.SubpictureID
	src, dst va.Rect
}

func newSurface(width, height int) *surface {
	cw, ch := (width+1)/2, (height+1)/2
	s := &surface{
		width:   width,
		height:  height,
		data:    make([]byte, width*height+2*cw*ch),
		derived: va.InvalidImage,
	}
	// Black: Y=16, neutral chroma.
	for i := range s.data {
		if i < width*height {
			s.data[i] = 16
		} else {
			s.data[i] = 128
		}
	}
	return s
}

func (s *surface) chromaOffset() int { return s.width * s.height }

func (s *surface) chromaPitch() int { return 2 * ((s.width + 1) / 2) }

// ycbcr converts the surface to a 4:2:0 planar image.
func (s *surface) ycbcr() *image.YCbCr {
	img := image.NewYCbCr(image.Rect(0, 0, s.width, s.height), image.YCbCrSubsampleRatio420)
	for y := range s.height {
		copy(img.Y[y*img.YStride:y*img.YStride+s.width], s.data[y*s.width:])
	}
	cw, ch := (s.width+1)/2, (s.height+1)/2
	uv := s.data[s.chromaOffset():]
	for y := range ch {
		row := uv[y*s.chromaPitch():]
		for x := range cw {
			img.Cb[y*img.CStride+x] = row[2*x]
			img.Cr[y*img.CStride+x] = row[2*x+1]
		}
	}
	return img
}

// fill copies a 4:2:0 planar image into the surface, clipped to both.
func (s *surface) fill(src *image.YCbCr) {
	b := src.Rect
	w, h := min(b.Dx(), s.width), min(b.Dy(), s.height)
	for y := range h {
		copy(s.data[y*s.width:y*s.width+w], src.Y[y*src.YStride:])
	}
	uv := s.data[s.chromaOffset():]
	for y := range (h + 1) / 2 {
		row := uv[y*s.chromaPitch():]
		for x := range (w + 1) / 2 {
			row[2*x] = src.Cb[y*src.CStride+x]
			row[2*x+1] = src.Cr[y*src.CStride+x]
		}
	}
}

type configObj struct {
	profile    va.Profile
	entrypoint va.Entrypoint
}

type contextObj struct {
	config  va.ConfigID
	targets []va.SurfaceID
}

// GetConfigAttributes implements va.Display.
func (d *Display) GetConfigAttributes(p va.Profile, e va.Entrypoint, attribs []va.ConfigAttrib) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("GetConfigAttributes"); err != nil {
		return err
	}
	if !d.hasProfile(p) {
		return va.StatusErrorUnsupportedProfile
	}
	for i := range attribs {
		switch attribs[i].Type {
		case va.ConfigAttribRTFormat:
			attribs[i].Value = uint32(d.cfg.rtFormats)
		default:
			return va.StatusErrorAttrNotSupported
		}
	}
	return nil
}

// CreateConfig implements va.Display.
func (d *Display) CreateConfig(p va.Profile, e va.Entrypoint, attribs []va.ConfigAttrib) (va.ConfigID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("CreateConfig"); err != nil {
		return 0, err
	}
	if !d.hasProfile(p) {
		return 0, va.StatusErrorUnsupportedProfile
	}
	for _, a := range attribs {
		if a.Type == va.ConfigAttribRTFormat && va.RTFormat(a.Value)&d.cfg.rtFormats == 0 {
			return 0, va.StatusErrorUnsupportedRTFormat
		}
	}
	id := va.ConfigID(d.newID())
	d.configs[id] = configObj{profile: p, entrypoint: e}
	return id, nil
}

// DestroyConfig implements va.Display.
func (d *Display) DestroyConfig(id va.ConfigID) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("DestroyConfig"); err != nil {
		return err
	}
	if _, ok := d.configs[id]; !ok {
		return va.StatusErrorInvalidConfig
	}
	delete(d.configs, id)
	return nil
}

// CreateSurfaces implements va.Display.
func (d *Display) CreateSurfaces(width, height int, format va.RTFormat, count int) ([]va.SurfaceID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("CreateSurfaces"); err != nil {
		return nil, err
	}
	if format != va.RTFormatYUV420 || d.cfg.rtFormats&format == 0 {
		return nil, va.StatusErrorUnsupportedRTFormat
	}
	if width <= 0 || height <= 0 || count <= 0 {
		return nil, va.StatusErrorInvalidParameter
	}
	ids := make([]va.SurfaceID, count)
	for i := range ids {
		ids[i] = va.SurfaceID(d.newID())
		d.surfaces[ids[i]] = newSurface(width, height)
	}
	return ids, nil
}

// DestroySurfaces implements va.Display. Images derived from the
// surfaces are destroyed with them.
func (d *Display) DestroySurfaces(ids []va.SurfaceID) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("DestroySurfaces"); err != nil {
		return err
	}
	for _, id := range ids {
		if _, ok := d.surfaces[id]; !ok {
			return va.StatusErrorInvalidSurface
		}
	}
	for _, id := range ids {
		if img := d.surfaces[id].derived; img != va.InvalidImage {
			d.dropImage(img)
		}
		delete(d.surfaces, id)
	}
	return nil
}

// CreateContext implements va.Display.
func (d *Display) CreateContext(cfg va.ConfigID, width, height int, flags va.ContextFlags, targets []va.SurfaceID) (va.ContextID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("CreateContext"); err != nil {
		return 0, err
	}
	if _, ok := d.configs[cfg]; !ok {
		return 0, va.StatusErrorInvalidConfig
	}
	for _, id := range targets {
		if _, ok := d.surfaces[id]; !ok {
			return 0, va.StatusErrorInvalidSurface
		}
	}
	id := va.ContextID(d.newID())
	d.contexts[id] = contextObj{config: cfg, targets: append([]va.SurfaceID(nil), targets...)}
	return id, nil
}

// DestroyContext implements va.Display.
func (d *Display) DestroyContext(id va.ContextID) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("DestroyContext"); err != nil {
		return err
	}
	if _, ok := d.contexts[id]; !ok {
		return va.StatusErrorInvalidContext
	}
	delete(d.contexts, id)
	return nil
}

// SyncSurface implements va.Display. Software surfaces are always idle.
func (d *Display) SyncSurface(id va.SurfaceID) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("SyncSurface"); err != nil {
		return err
	}
	if _, ok := d.surfaces[id]; !ok {
		return va.StatusErrorInvalidSurface
	}
	return nil
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"github.com/gogpu/vaout/va"
)

type imageObj struct {
	desc    va.Image
	data    []byte
	palette []byte
	mapped  bool
	derived va.SurfaceID
}

// layout fills in the plane geometry of an image.
func layout(img *va.Image, paletteOrder [4]byte) bool {
	w, h := img.Width, img.Height
	cw, ch := (w+1)/2, (h+1)/2
	switch img.Format.FourCC {
	case va.FourCCNV12:
		img.NumPlanes = 2
		img.Pitches = [3]int{w, 2 * cw}
		img.Offsets = [3]int{0, w * h}
		img.DataSize = w*h + 2*cw*ch
	case va.FourCCYV12, va.FourCCI420, va.FourCCIYUV:
		img.NumPlanes = 3
		img.Pitches = [3]int{w, cw, cw}
		img.Offsets = [3]int{0, w * h, w*h + cw*ch}
		img.DataSize = w*h + 2*cw*ch
	case va.FourCCIA44, va.FourCCAI44:
		img.NumPlanes = 1
		img.Pitches[0] = w
		img.DataSize = w * h
		img.NumPaletteEntries, img.EntryBytes = 16, 3
		img.ComponentOrder = paletteOrder
	case va.FourCCIA88, va.FourCCAI88:
		img.NumPlanes = 1
		img.Pitches[0] = 2 * w
		img.DataSize = 2 * w * h
		img.NumPaletteEntries, img.EntryBytes = 256, 3
		img.ComponentOrder = paletteOrder
	case va.FourCCBGRA, va.FourCCRGBA:
		img.NumPlanes = 1
		img.Pitches[0] = 4 * w
		img.DataSize = 4 * w * h
	default:
		return false
	}
	return true
}

func (d *Display) supportsImage(cc va.FourCC) bool {
	for _, f := range d.cfg.imageFormats {
		if f.FourCC == cc {
			return true
		}
	}
	for _, f := range d.cfg.subpictureFormats {
		if f.FourCC == cc {
			return true
		}
	}
	return false
}

// CreateImage implements va.Display.
func (d *Display) CreateImage(format va.ImageFormat, width, height int) (va.Image, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("CreateImage"); err != nil {
		return va.NoImage(), err
	}
	if width <= 0 || height <= 0 {
		return va.NoImage(), va.StatusErrorInvalidParameter
	}
	if !d.supportsImage(format.FourCC) {
		return va.NoImage(), va.StatusErrorInvalidImageFormat
	}
	img := va.Image{
		ID:     va.ImageID(d.newID()),
		Buf:    va.BufferID(d.newID()),
		Format: Format(format.FourCC),
		Width:  width,
		Height: height,
	}
	if !layout(&img, d.cfg.paletteOrder) {
		return va.NoImage(), va.StatusErrorInvalidImageFormat
	}
	obj := &imageObj{desc: img, data: make([]byte, img.DataSize), derived: va.InvalidSurface}
	d.images[img.ID] = obj
	d.buffers[img.Buf] = obj
	return img, nil
}

// DeriveImage implements va.Display. The image aliases the surface's
// NV12 memory and is destroyed with the surface.
func (d *Display) DeriveImage(id va.SurfaceID) (va.Image, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("DeriveImage"); err != nil {
		return va.NoImage(), err
	}
	s, ok := d.surfaces[id]
	if !ok {
		return va.NoImage(), va.StatusErrorInvalidSurface
	}
	if s.derived != va.InvalidImage {
		return d.images[s.derived].desc, nil
	}
	img := va.Image{
		ID:     va.ImageID(d.newID()),
		Buf:    va.BufferID(d.newID()),
		Format: Format(va.FourCCNV12),
		Width:  s.width,
		Height: s.height,
	}
	layout(&img, d.cfg.paletteOrder)
	obj := &imageObj{desc: img, data: s.data, derived: id}
	d.images[img.ID] = obj
	d.buffers[img.Buf] = obj
	s.derived = img.ID
	return img, nil
}

// DestroyImage implements va.Display.
func (d *Display) DestroyImage(id va.ImageID) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("DestroyImage"); err != nil {
		return err
	}
	obj, ok := d.images[id]
	if !ok {
		return va.StatusErrorInvalidImage
	}
	if s, ok := d.surfaces[obj.derived]; ok {
		s.derived = va.InvalidImage
	}
	d.dropImage(id)
	return nil
}

func (d *Display) dropImage(id va.ImageID) {
	if obj, ok := d.images[id]; ok {
		delete(d.buffers, obj.desc.Buf)
		delete(d.images, id)
	}
}

// SetImagePalette implements va.Display.
func (d *Display) SetImagePalette(id va.ImageID, palette []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("SetImagePalette"); err != nil {
		return err
	}
	obj, ok := d.images[id]
	if !ok {
		return va.StatusErrorInvalidImage
	}
	n := obj.desc.NumPaletteEntries * obj.desc.EntryBytes
	if n == 0 || len(palette) < n {
		return va.StatusErrorInvalidParameter
	}
	obj.palette = append([]byte(nil), palette[:n]...)
	return nil
}

// MapBuffer implements va.Display.
func (d *Display) MapBuffer(id va.BufferID) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("MapBuffer"); err != nil {
		return nil, err
	}
	obj, ok := d.buffers[id]
	if !ok {
		return nil, va.StatusErrorInvalidBuffer
	}
	obj.mapped = true
	return obj.data, nil
}

// UnmapBuffer implements va.Display.
func (d *Display) UnmapBuffer(id va.BufferID) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("UnmapBuffer"); err != nil {
		return err
	}
	obj, ok := d.buffers[id]
	if !ok {
		return va.StatusErrorInvalidBuffer
	}
	if !obj.mapped {
		return va.StatusErrorOperationFailed
	}
	obj.mapped = false
	return nil
}

// PutImage implements va.Display. Only planar YUV images can be put and
// the rectangles must have the same size.
func (d *Display) PutImage(sid va.SurfaceID, iid va.ImageID, src, dst va.Rect) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("PutImage"); err != nil {
		return err
	}
	s, ok := d.surfaces[sid]
	if !ok {
		return va.StatusErrorInvalidSurface
	}
	obj, ok := d.images[iid]
	if !ok {
		return va.StatusErrorInvalidImage
	}
	if src.Size() != dst.Size() {
		return va.StatusErrorInvalidParameter
	}
	img := &obj.desc
	src = src.Intersect(va.FullRect(img.Width, img.Height))
	dst = dst.Intersect(va.FullRect(s.width, s.height))
	w, h := min(src.Dx(), dst.Dx()), min(src.Dy(), dst.Dy())

	var uPlane, vPlane, step int
	switch img.Format.FourCC {
	case va.FourCCNV12:
		uPlane, vPlane, step = 1, 1, 2
	case va.FourCCYV12:
		uPlane, vPlane, step = 2, 1, 1
	case va.FourCCI420, va.FourCCIYUV:
		uPlane, vPlane, step = 1, 2, 1
	default:
		return va.StatusErrorInvalidImageFormat
	}
	for y := range h {
		so := img.Offsets[0] + (src.Min.Y+y)*img.Pitches[0] + src.Min.X
		do := (dst.Min.Y+y)*s.width + dst.Min.X
		copy(s.data[do:do+w], obj.data[so:so+w])
	}
	uv := s.data[s.chromaOffset():]
	for y := 0; y < h; y += 2 {
		sy, dy := (src.Min.Y+y)/2, (dst.Min.Y+y)/2
		for x := 0; x < w; x += 2 {
			sx, dx := (src.Min.X+x)/2, (dst.Min.X+x)/2
			var u, v byte
			if step == 2 {
				o := img.Offsets[1] + sy*img.Pitches[1] + 2*sx
				u, v = obj.data[o], obj.data[o+1]
			} else {
				u = obj.data[img.Offsets[uPlane]+sy*img.Pitches[uPlane]+sx]
				v = obj.data[img.Offsets[vPlane]+sy*img.Pitches[vPlane]+sx]
			}
			o := dy*s.chromaPitch() + 2*dx
			uv[o], uv[o+1] = u, v
		}
	}
	return nil
}

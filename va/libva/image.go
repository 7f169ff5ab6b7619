// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build vaapi

package libva

// #include <va/va.h>
import "C"

import (
	"unsafe"

	"github.com/gogpu/vaout/va"
)

func goImageFormat(f *C.VAImageFormat) va.ImageFormat {
	return va.ImageFormat{
		FourCC:       va.FourCC(f.fourcc),
		ByteOrder:    va.ByteOrder(f.byte_order),
		BitsPerPixel: int(f.bits_per_pixel),
		Depth:        int(f.depth),
		RedMask:      uint32(f.red_mask),
		GreenMask:    uint32(f.green_mask),
		BlueMask:     uint32(f.blue_mask),
		AlphaMask:    uint32(f.alpha_mask),
	}
}

func cImageFormat(f va.ImageFormat) C.VAImageFormat {
	var c C.VAImageFormat
	c.fourcc = C.uint32_t(f.FourCC)
	c.byte_order = C.uint32_t(f.ByteOrder)
	c.bits_per_pixel = C.uint32_t(f.BitsPerPixel)
	c.depth = C.uint32_t(f.Depth)
	c.red_mask = C.uint32_t(f.RedMask)
	c.green_mask = C.uint32_t(f.GreenMask)
	c.blue_mask = C.uint32_t(f.BlueMask)
	c.alpha_mask = C.uint32_t(f.AlphaMask)
	return c
}

// goImage converts an image descriptor and remembers its buffer size.
func (d *Display) goImage(img *C.VAImage) va.Image {
	out := va.Image{
		ID:                va.ImageID(img.image_id),
		Format:            goImageFormat(&img.format),
		Buf:               va.BufferID(img.buf),
		Width:             int(img.width),
		Height:            int(img.height),
		DataSize:          int(img.data_size),
		NumPlanes:         int(img.num_planes),
		NumPaletteEntries: int(img.num_palette_entries),
		EntryBytes:        int(img.entry_bytes),
	}
	for i := range 3 {
		out.Pitches[i] = int(img.pitches[i])
		out.Offsets[i] = int(img.offsets[i])
	}
	for i := range 4 {
		out.ComponentOrder[i] = byte(img.component_order[i])
	}
	d.bufSize[out.Buf] = out.DataSize
	return out
}

// CreateImage implements va.Display.
func (d *Display) CreateImage(format va.ImageFormat, width, height int) (va.Image, error) {
	f := cImageFormat(format)
	var img C.VAImage
	if err := check(C.vaCreateImage(d.dpy, &f, C.int(width), C.int(height), &img)); err != nil {
		return va.NoImage(), err
	}
	return d.goImage(&img), nil
}

// DeriveImage implements va.Display.
func (d *Display) DeriveImage(id va.SurfaceID) (va.Image, error) {
	var img C.VAImage
	if err := check(C.vaDeriveImage(d.dpy, C.VASurfaceID(id), &img)); err != nil {
		return va.NoImage(), err
	}
	return d.goImage(&img), nil
}

// DestroyImage implements va.Display.
func (d *Display) DestroyImage(id va.ImageID) error {
	return check(C.vaDestroyImage(d.dpy, C.VAImageID(id)))
}

// SetImagePalette implements va.Display.
func (d *Display) SetImagePalette(id va.ImageID, palette []byte) error {
	if len(palette) == 0 {
		return va.StatusErrorInvalidParameter
	}
	return check(C.vaSetImagePalette(d.dpy, C.VAImageID(id), (*C.uchar)(unsafe.Pointer(&palette[0]))))
}

// MapBuffer implements va.Display. Only buffers of images created or
// derived through this display can be mapped.
func (d *Display) MapBuffer(id va.BufferID) ([]byte, error) {
	size, ok := d.bufSize[id]
	if !ok {
		return nil, va.StatusErrorInvalidBuffer
	}
	var p unsafe.Pointer
	if err := check(C.vaMapBuffer(d.dpy, C.VABufferID(id), &p)); err != nil {
		return nil, err
	}
	return unsafe.Slice((*byte)(p), size), nil
}

// UnmapBuffer implements va.Display.
func (d *Display) UnmapBuffer(id va.BufferID) error {
	return check(C.vaUnmapBuffer(d.dpy, C.VABufferID(id)))
}

// PutImage implements va.Display.
func (d *Display) PutImage(surface va.SurfaceID, image va.ImageID, src, dst va.Rect) error {
	return check(C.vaPutImage(d.dpy, C.VASurfaceID(surface), C.VAImageID(image),
		C.int(src.Min.X), C.int(src.Min.Y), C.uint(src.Dx()), C.uint(src.Dy()),
		C.int(dst.Min.X), C.int(dst.Min.Y), C.uint(dst.Dx()), C.uint(dst.Dy())))
}

// CreateSubpicture implements va.Display.
func (d *Display) CreateSubpicture(image va.ImageID) (va.SubpictureID, error) {
	var id C.VASubpictureID
	if err := check(C.vaCreateSubpicture(d.dpy, C.VAImageID(image), &id)); err != nil {
		return va.InvalidSubpicture, err
	}
	return va.SubpictureID(id), nil
}

// DestroySubpicture implements va.Display.
func (d *Display) DestroySubpicture(id va.SubpictureID) error {
	return check(C.vaDestroySubpicture(d.dpy, C.VASubpictureID(id)))
}

// AssociateSubpicture implements va.Display.
func (d *Display) AssociateSubpicture(id va.SubpictureID, surfaces []va.SurfaceID, src, dst va.Rect, flags va.SubpictureFlags) error {
	if len(surfaces) == 0 {
		return nil
	}
	list := cSurfaces(surfaces)
	return check(C.vaAssociateSubpicture(d.dpy, C.VASubpictureID(id), &list[0], C.int(len(list)),
		C.int16_t(src.Min.X), C.int16_t(src.Min.Y), C.uint16_t(src.Dx()), C.uint16_t(src.Dy()),
		C.int16_t(dst.Min.X), C.int16_t(dst.Min.Y), C.uint16_t(dst.Dx()), C.uint16_t(dst.Dy()),
		C.uint32_t(flags)))
}

// DeassociateSubpicture implements va.Display.
func (d *Display) DeassociateSubpicture(id va.SubpictureID, surfaces []va.SurfaceID) error {
	if len(surfaces) == 0 {
		return nil
	}
	list := cSurfaces(surfaces)
	return check(C.vaDeassociateSubpicture(d.dpy, C.VASubpictureID(id), &list[0], C.int(len(list))))
}

func cAttributes(attrs []va.DisplayAttribute) []C.VADisplayAttribute {
	out := make([]C.VADisplayAttribute, len(attrs))
	for i, a := range attrs {
		out[i]._type = C.VADisplayAttribType(a.Type)
		out[i].min_value = C.int32_t(a.MinValue)
		out[i].max_value = C.int32_t(a.MaxValue)
		out[i].value = C.int32_t(a.Value)
		out[i].flags = C.uint32_t(a.Flags)
	}
	return out
}

func goAttribute(a *C.VADisplayAttribute) va.DisplayAttribute {
	return va.DisplayAttribute{
		Type:     va.DisplayAttribType(a._type),
		MinValue: int(a.min_value),
		MaxValue: int(a.max_value),
		Value:    int(a.value),
		Flags:    va.DisplayAttribFlags(a.flags),
	}
}

// QueryDisplayAttributes implements va.Display.
func (d *Display) QueryDisplayAttributes() ([]va.DisplayAttribute, error) {
	list := make([]C.VADisplayAttribute, C.vaMaxNumDisplayAttributes(d.dpy))
	if len(list) == 0 {
		return nil, nil
	}
	n := C.int(len(list))
	if err := check(C.vaQueryDisplayAttributes(d.dpy, &list[0], &n)); err != nil {
		return nil, err
	}
	out := make([]va.DisplayAttribute, int(n))
	for i := range out {
		out[i] = goAttribute(&list[i])
	}
	return out, nil
}

// GetDisplayAttributes implements va.Display.
func (d *Display) GetDisplayAttributes(attrs []va.DisplayAttribute) error {
	if len(attrs) == 0 {
		return nil
	}
	list := cAttributes(attrs)
	if err := check(C.vaGetDisplayAttributes(d.dpy, &list[0], C.int(len(list)))); err != nil {
		return err
	}
	for i := range attrs {
		attrs[i] = goAttribute(&list[i])
	}
	return nil
}

// SetDisplayAttributes implements va.Display.
func (d *Display) SetDisplayAttributes(attrs []va.DisplayAttribute) error {
	if len(attrs) == 0 {
		return nil
	}
	list := cAttributes(attrs)
	return check(C.vaSetDisplayAttributes(d.dpy, &list[0], C.int(len(list))))
}

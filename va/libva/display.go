// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build vaapi

package libva

// #cgo pkg-config: libva libva-drm libva-x11 x11
// #include <stdlib.h>
// #include <X11/Xlib.h>
// #include <va/va.h>
// #include <va/va_drm.h>
// #include <va/va_x11.h>
import "C"

import (
	"errors"
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/gogpu/vaout/va"
)

// ErrInvalidDisplay is returned when libva cannot create a display for
// the device or X server.
var ErrInvalidDisplay = errors.New("libva: invalid display")

// Display is a libva display.
//
// A Display is not safe for concurrent use.
type Display struct {
	dpy C.VADisplay

	// Exactly one of fd and x11 owns the connection.
	fd  int
	x11 *C.Display

	// bufSize records the size of every image buffer so that MapBuffer
	// can return a bounded slice.
	bufSize map[va.BufferID]int
}

// OpenDRM opens the DRM render node at path, e.g. /dev/dri/renderD128.
func OpenDRM(path string) (*Display, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("libva: open %s: %w", path, err)
	}
	dpy := C.vaGetDisplayDRM(C.int(fd))
	if C.vaDisplayIsValid(dpy) == 0 {
		unix.Close(fd)
		return nil, fmt.Errorf("%w: %s", ErrInvalidDisplay, path)
	}
	return &Display{dpy: dpy, fd: fd, bufSize: make(map[va.BufferID]int)}, nil
}

// OpenX11 connects to the X server name, or to $DISPLAY when name is
// empty.
func OpenX11(name string) (*Display, error) {
	var cname *C.char
	if name != "" {
		cname = C.CString(name)
		defer C.free(unsafe.Pointer(cname))
	}
	x := C.XOpenDisplay(cname)
	if x == nil {
		return nil, fmt.Errorf("libva: cannot open X display %q", name)
	}
	dpy := C.vaGetDisplay(x)
	if C.vaDisplayIsValid(dpy) == 0 {
		C.XCloseDisplay(x)
		return nil, fmt.Errorf("%w: X display %q", ErrInvalidDisplay, name)
	}
	return &Display{dpy: dpy, fd: -1, x11: x, bufSize: make(map[va.BufferID]int)}, nil
}

func check(s C.VAStatus) error {
	return va.Status(s).Err()
}

// Initialize implements va.Display.
func (d *Display) Initialize() (int, int, error) {
	var major, minor C.int
	if err := check(C.vaInitialize(d.dpy, &major, &minor)); err != nil {
		return 0, 0, err
	}
	return int(major), int(minor), nil
}

// Terminate implements va.Display. The device or X connection is closed
// as well.
func (d *Display) Terminate() error {
	err := check(C.vaTerminate(d.dpy))
	if d.x11 != nil {
		C.XCloseDisplay(d.x11)
		d.x11 = nil
	}
	if d.fd >= 0 {
		unix.Close(d.fd)
		d.fd = -1
	}
	clear(d.bufSize)
	return err
}

// VendorString implements va.Display.
func (d *Display) VendorString() string {
	return C.GoString(C.vaQueryVendorString(d.dpy))
}

// QueryImageFormats implements va.Display.
func (d *Display) QueryImageFormats() ([]va.ImageFormat, error) {
	list := make([]C.VAImageFormat, C.vaMaxNumImageFormats(d.dpy))
	if len(list) == 0 {
		return nil, nil
	}
	var n C.int
	if err := check(C.vaQueryImageFormats(d.dpy, &list[0], &n)); err != nil {
		return nil, err
	}
	out := make([]va.ImageFormat, int(n))
	for i := range out {
		out[i] = goImageFormat(&list[i])
	}
	return out, nil
}

// QuerySubpictureFormats implements va.Display.
func (d *Display) QuerySubpictureFormats() ([]va.ImageFormat, []va.SubpictureFlags, error) {
	limit := int(C.vaMaxNumSubpictureFormats(d.dpy))
	if limit == 0 {
		return nil, nil, nil
	}
	list := make([]C.VAImageFormat, limit)
	flags := make([]C.uint, limit)
	var n C.uint
	if err := check(C.vaQuerySubpictureFormats(d.dpy, &list[0], &flags[0], &n)); err != nil {
		return nil, nil, err
	}
	formats := make([]va.ImageFormat, int(n))
	outFlags := make([]va.SubpictureFlags, int(n))
	for i := range formats {
		formats[i] = goImageFormat(&list[i])
		outFlags[i] = va.SubpictureFlags(flags[i])
	}
	return formats, outFlags, nil
}

// QueryConfigProfiles implements va.Display.
func (d *Display) QueryConfigProfiles() ([]va.Profile, error) {
	list := make([]C.VAProfile, C.vaMaxNumProfiles(d.dpy))
	if len(list) == 0 {
		return nil, nil
	}
	var n C.int
	if err := check(C.vaQueryConfigProfiles(d.dpy, &list[0], &n)); err != nil {
		return nil, err
	}
	out := make([]va.Profile, int(n))
	for i := range out {
		out[i] = va.Profile(list[i])
	}
	return out, nil
}

// QueryConfigEntrypoints implements va.Display.
func (d *Display) QueryConfigEntrypoints(p va.Profile) ([]va.Entrypoint, error) {
	list := make([]C.VAEntrypoint, C.vaMaxNumEntrypoints(d.dpy))
	if len(list) == 0 {
		return nil, nil
	}
	var n C.int
	if err := check(C.vaQueryConfigEntrypoints(d.dpy, C.VAProfile(p), &list[0], &n)); err != nil {
		return nil, err
	}
	out := make([]va.Entrypoint, int(n))
	for i := range out {
		out[i] = va.Entrypoint(list[i])
	}
	return out, nil
}

func cConfigAttribs(attribs []va.ConfigAttrib) []C.VAConfigAttrib {
	out := make([]C.VAConfigAttrib, len(attribs))
	for i, a := range attribs {
		out[i]._type = C.VAConfigAttribType(a.Type)
		out[i].value = C.uint32_t(a.Value)
	}
	return out
}

// GetConfigAttributes implements va.Display.
func (d *Display) GetConfigAttributes(p va.Profile, e va.Entrypoint, attribs []va.ConfigAttrib) error {
	if len(attribs) == 0 {
		return nil
	}
	list := cConfigAttribs(attribs)
	if err := check(C.vaGetConfigAttributes(d.dpy, C.VAProfile(p), C.VAEntrypoint(e), &list[0], C.int(len(list)))); err != nil {
		return err
	}
	for i := range attribs {
		attribs[i].Value = uint32(list[i].value)
	}
	return nil
}

// CreateConfig implements va.Display.
func (d *Display) CreateConfig(p va.Profile, e va.Entrypoint, attribs []va.ConfigAttrib) (va.ConfigID, error) {
	list := cConfigAttribs(attribs)
	var ptr *C.VAConfigAttrib
	if len(list) > 0 {
		ptr = &list[0]
	}
	var id C.VAConfigID
	if err := check(C.vaCreateConfig(d.dpy, C.VAProfile(p), C.VAEntrypoint(e), ptr, C.int(len(list)), &id)); err != nil {
		return va.ConfigID(va.InvalidID), err
	}
	return va.ConfigID(id), nil
}

// DestroyConfig implements va.Display.
func (d *Display) DestroyConfig(id va.ConfigID) error {
	return check(C.vaDestroyConfig(d.dpy, C.VAConfigID(id)))
}

// CreateSurfaces implements va.Display.
func (d *Display) CreateSurfaces(width, height int, format va.RTFormat, count int) ([]va.SurfaceID, error) {
	if count <= 0 {
		return nil, va.StatusErrorInvalidParameter
	}
	ids := make([]C.VASurfaceID, count)
	if err := check(C.vaCreateSurfaces(d.dpy, C.uint(format), C.uint(width), C.uint(height),
		&ids[0], C.uint(count), nil, 0)); err != nil {
		return nil, err
	}
	out := make([]va.SurfaceID, count)
	for i, id := range ids {
		out[i] = va.SurfaceID(id)
	}
	return out, nil
}

func cSurfaces(ids []va.SurfaceID) []C.VASurfaceID {
	out := make([]C.VASurfaceID, len(ids))
	for i, id := range ids {
		out[i] = C.VASurfaceID(id)
	}
	return out
}

// DestroySurfaces implements va.Display.
func (d *Display) DestroySurfaces(ids []va.SurfaceID) error {
	if len(ids) == 0 {
		return nil
	}
	list := cSurfaces(ids)
	return check(C.vaDestroySurfaces(d.dpy, &list[0], C.int(len(list))))
}

// CreateContext implements va.Display.
func (d *Display) CreateContext(config va.ConfigID, width, height int, flags va.ContextFlags, targets []va.SurfaceID) (va.ContextID, error) {
	list := cSurfaces(targets)
	var ptr *C.VASurfaceID
	if len(list) > 0 {
		ptr = &list[0]
	}
	var id C.VAContextID
	if err := check(C.vaCreateContext(d.dpy, C.VAConfigID(config), C.int(width), C.int(height),
		C.int(flags), ptr, C.int(len(list)), &id)); err != nil {
		return va.ContextID(va.InvalidID), err
	}
	return va.ContextID(id), nil
}

// DestroyContext implements va.Display.
func (d *Display) DestroyContext(id va.ContextID) error {
	return check(C.vaDestroyContext(d.dpy, C.VAContextID(id)))
}

// SyncSurface implements va.Display.
func (d *Display) SyncSurface(id va.SurfaceID) error {
	return check(C.vaSyncSurface(d.dpy, C.VASurfaceID(id)))
}

// PutSurface implements va.Display. It needs a display from OpenX11.
func (d *Display) PutSurface(id va.SurfaceID, dst va.Drawable, src, dr va.Rect, flags va.PutFlags) error {
	if d.x11 == nil {
		return va.StatusErrorUnimplemented
	}
	return check(C.vaPutSurface(d.dpy, C.VASurfaceID(id), C.Drawable(dst),
		C.short(src.Min.X), C.short(src.Min.Y), C.ushort(src.Dx()), C.ushort(src.Dy()),
		C.short(dr.Min.X), C.short(dr.Min.Y), C.ushort(dr.Dx()), C.ushort(dr.Dy()),
		nil, 0, C.uint(flags)))
}

var _ va.Display = (*Display)(nil)

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"maps"
	"slices"

	"github.com/gogpu/vaout/va"
)

type config struct {
	vendor            string
	profiles          []va.Profile
	entrypoints       map[va.Profile][]va.Entrypoint
	rtFormats         va.RTFormat
	imageFormats      []va.ImageFormat
	subpictureFormats []va.ImageFormat
	paletteOrder      [4]byte
	attrs             []va.DisplayAttribute
	putFlags          va.PutFlags
	glxCopy           bool
}

func defaultConfig() config {
	return config{
		vendor: Vendor,
		profiles: []va.Profile{
			va.ProfileMPEG2Simple, va.ProfileMPEG2Main,
			va.ProfileMPEG4Simple, va.ProfileMPEG4AdvancedSimple, va.ProfileMPEG4Main,
			va.ProfileH264Baseline, va.ProfileH264Main, va.ProfileH264High,
			va.ProfileVC1Simple, va.ProfileVC1Main, va.ProfileVC1Advanced,
		},
		entrypoints: map[va.Profile][]va.Entrypoint{
			va.ProfileMPEG2Simple: {va.EntrypointVLD, va.EntrypointMoComp},
			va.ProfileMPEG2Main:   {va.EntrypointVLD, va.EntrypointMoComp},
		},
		rtFormats:         va.RTFormatYUV420,
		imageFormats:      []va.ImageFormat{Format(va.FourCCNV12), Format(va.FourCCYV12), Format(va.FourCCI420)},
		subpictureFormats: []va.ImageFormat{Format(va.FourCCIA44), Format(va.FourCCIA88), Format(va.FourCCBGRA), Format(va.FourCCRGBA)},
		paletteOrder:      [4]byte{'R', 'G', 'B', 0},
		attrs: []va.DisplayAttribute{
			{Type: va.DisplayAttribBrightness, MinValue: 0, MaxValue: 255, Value: 128, Flags: rw},
			{Type: va.DisplayAttribContrast, MinValue: 0, MaxValue: 255, Value: 128, Flags: rw},
			{Type: va.DisplayAttribHue, MinValue: -180, MaxValue: 180, Value: 0, Flags: rw},
			{Type: va.DisplayAttribSaturation, MinValue: 0, MaxValue: 255, Value: 128, Flags: rw},
			{Type: va.DisplayAttribDirectSurface, MinValue: 0, MaxValue: 1, Value: 1, Flags: va.DisplayAttribGettable},
		},
		putFlags: va.FieldMask | va.ClearDrawable | va.ColorStandardMask | va.FilterScalingMask,
		glxCopy:  true,
	}
}

const rw = va.DisplayAttribGettable | va.DisplayAttribSettable

// Option configures a Display.
type Option func(*config)

// WithVendor sets the vendor string.
func WithVendor(vendor string) Option {
	return func(c *config) {
		c.vendor = vendor
	}
}

// WithProfiles replaces the decodable profiles.
func WithProfiles(profiles ...va.Profile) Option {
	return func(c *config) {
		c.profiles = slices.Clone(profiles)
	}
}

// WithEntrypoints sets the entry points reported for a profile. Profiles
// without an explicit list report VLD only.
func WithEntrypoints(p va.Profile, eps ...va.Entrypoint) Option {
	return func(c *config) {
		c.entrypoints = maps.Clone(c.entrypoints)
		c.entrypoints[p] = slices.Clone(eps)
	}
}

// WithRTFormats sets the render target formats reported by
// GetConfigAttributes and accepted by CreateSurfaces.
func WithRTFormats(f va.RTFormat) Option {
	return func(c *config) {
		c.rtFormats = f
	}
}

// WithImageFormats replaces the image formats.
func WithImageFormats(fourccs ...va.FourCC) Option {
	return func(c *config) {
		c.imageFormats = formats(fourccs)
	}
}

// WithSubpictureFormats replaces the subpicture formats.
func WithSubpictureFormats(fourccs ...va.FourCC) Option {
	return func(c *config) {
		c.subpictureFormats = formats(fourccs)
	}
}

// WithPaletteOrder sets the component order of paletted images, e.g.
// "RGB" or "YUV".
func WithPaletteOrder(order string) Option {
	return func(c *config) {
		c.paletteOrder = [4]byte{}
		copy(c.paletteOrder[:], order)
	}
}

// WithAttributes replaces the display attributes.
func WithAttributes(attrs ...va.DisplayAttribute) Option {
	return func(c *config) {
		c.attrs = slices.Clone(attrs)
	}
}

// WithDirectSurface sets the value of the direct-surface attribute.
// Zero means the driver displays surfaces in place.
func WithDirectSurface(value int) Option {
	return func(c *config) {
		c.attrs = slices.Clone(c.attrs)
		for i := range c.attrs {
			if c.attrs[i].Type == va.DisplayAttribDirectSurface {
				c.attrs[i].Value = value
				return
			}
		}
		c.attrs = append(c.attrs, va.DisplayAttribute{
			Type: va.DisplayAttribDirectSurface, MaxValue: 1, Value: value, Flags: va.DisplayAttribGettable,
		})
	}
}

// WithPutFlags sets the flags reported by SupportedPutFlags.
func WithPutFlags(f va.PutFlags) Option {
	return func(c *config) {
		c.putFlags = f
	}
}

// WithoutGLXCopy makes CopySurfaceGLX return StatusErrorUnimplemented.
func WithoutGLXCopy() Option {
	return func(c *config) {
		c.glxCopy = false
	}
}

func formats(fourccs []va.FourCC) []va.ImageFormat {
	out := make([]va.ImageFormat, len(fourccs))
	for i, cc := range fourccs {
		out[i] = Format(cc)
	}
	return out
}

// Format returns the image format description the driver uses for cc.
func Format(cc va.FourCC) va.ImageFormat {
	f := va.ImageFormat{FourCC: cc, ByteOrder: va.LSBFirst}
	switch cc {
	case va.FourCCNV12, va.FourCCYV12, va.FourCCI420, va.FourCCIYUV:
		f.BitsPerPixel = 12
	case va.FourCCIA44, va.FourCCAI44:
		f.BitsPerPixel = 8
	case va.FourCCIA88, va.FourCCAI88:
		f.BitsPerPixel = 16
	case va.FourCCBGRA:
		f.BitsPerPixel, f.Depth = 32, 32
		f.RedMask, f.GreenMask, f.BlueMask, f.AlphaMask = 0x00ff0000, 0x0000ff00, 0x000000ff, 0xff000000
	case va.FourCCRGBA:
		f.BitsPerPixel, f.Depth = 32, 32
		f.RedMask, f.GreenMask, f.BlueMask, f.AlphaMask = 0x000000ff, 0x0000ff00, 0x00ff0000, 0xff000000
	}
	return f
}

type fault struct {
	after  int
	status va.Status
}

// Fail makes every following call of method return status.
func (d *Display) Fail(method string, status va.Status) {
	d.FailAfter(method, 0, status)
}

// FailAfter lets n calls of method succeed, then fails the rest with
// status.
func (d *Display) FailAfter(method string, n int, status va.Status) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.faults[method] = &fault{after: n, status: status}
}

// Heal removes the injected failure of method.
func (d *Display) Heal(method string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.faults, method)
}

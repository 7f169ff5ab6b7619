// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package caps enumerates what a video acceleration driver can do.
//
// Probe runs once per display. Everything it learns is cached in a
// Capabilities value whose lookup methods are pure.
package caps

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/gogpu/vaout/va"
)

// Capabilities is the cached result of Probe.
type Capabilities struct {
	Major, Minor int
	Vendor       string

	ImageFormats      []va.ImageFormat
	SubpictureFormats []va.ImageFormat
	SubpictureFlags   []va.SubpictureFlags
	Profiles          []va.Profile

	// Attributes holds the equalizer attributes (brightness, contrast,
	// hue, saturation) the driver reported. Values are kept current by
	// the caller after each successful set.
	Attributes []va.DisplayAttribute

	// DirectSurface is the direct-surface attribute, nil when the driver
	// does not report it.
	DirectSurface *va.DisplayAttribute

	entrypoints map[va.Profile][]va.Entrypoint
}

// Option configures Probe.
type Option func(*probeOptions)

type probeOptions struct {
	log *slog.Logger
}

// WithLogger sets the logger used for enumeration diagnostics and
// driver call failures.
func WithLogger(l *slog.Logger) Option {
	return func(o *probeOptions) {
		o.log = l
	}
}

// Probe initializes the display and enumerates its capabilities.
//
// Image format and profile enumeration failures are fatal. A driver that
// cannot list subpicture formats is reported as having none, and a
// driver that cannot list display attributes as having no equalizer.
func Probe(d va.Display, opts ...Option) (*Capabilities, error) {
	o := probeOptions{log: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.log

	c := &Capabilities{entrypoints: make(map[va.Profile][]va.Entrypoint)}

	major, minor, err := d.Initialize()
	if !va.Check(log, err, "vaInitialize()") {
		return nil, fmt.Errorf("caps: initialize: %w", err)
	}
	c.Major, c.Minor = major, minor
	c.Vendor = d.VendorString()
	log.Debug("caps: display initialized", "version", fmt.Sprintf("%d.%d", major, minor), "vendor", c.Vendor)

	c.ImageFormats, err = d.QueryImageFormats()
	if !va.Check(log, err, "vaQueryImageFormats()") {
		return nil, fmt.Errorf("caps: query image formats: %w", err)
	}
	log.Debug("caps: image formats", "count", len(c.ImageFormats))
	for _, f := range c.ImageFormats {
		log.Debug("caps: image format", "fourcc", f.FourCC.String(), "bpp", f.BitsPerPixel)
	}

	formats, flags, err := d.QuerySubpictureFormats()
	if va.Check(log, err, "vaQuerySubpictureFormats()") && len(formats) == len(flags) {
		c.SubpictureFormats, c.SubpictureFlags = formats, flags
	}
	log.Debug("caps: subpicture formats", "count", len(c.SubpictureFormats))
	for i, f := range c.SubpictureFormats {
		log.Debug("caps: subpicture format", "fourcc", f.FourCC.String(), "flags", uint32(c.SubpictureFlags[i]))
	}

	c.Profiles, err = d.QueryConfigProfiles()
	if !va.Check(log, err, "vaQueryConfigProfiles()") {
		return nil, fmt.Errorf("caps: query profiles: %w", err)
	}
	log.Debug("caps: profiles", "count", len(c.Profiles))
	for _, p := range c.Profiles {
		log.Debug("caps: profile", "profile", p.String())
	}

	attrs, err := d.QueryDisplayAttributes()
	if va.Check(log, err, "vaQueryDisplayAttributes()") {
		for _, a := range attrs {
			switch a.Type {
			case va.DisplayAttribBrightness, va.DisplayAttribContrast,
				va.DisplayAttribHue, va.DisplayAttribSaturation:
				c.Attributes = append(c.Attributes, a)
			}
		}
	}

	ds := []va.DisplayAttribute{{Type: va.DisplayAttribDirectSurface, Flags: va.DisplayAttribGettable}}
	if err := d.GetDisplayAttributes(ds); err == nil {
		c.DirectSurface = &ds[0]
	} else {
		log.Debug("caps: direct-surface attribute unavailable", "status", err.Error())
	}

	return c, nil
}

// HasProfile reports whether the driver decodes p.
func (c *Capabilities) HasProfile(p va.Profile) bool {
	return slices.Contains(c.Profiles, p)
}

// SetEntrypoints caches the entry points the driver reported for p.
func (c *Capabilities) SetEntrypoints(p va.Profile, eps []va.Entrypoint) {
	if c.entrypoints == nil {
		c.entrypoints = make(map[va.Profile][]va.Entrypoint)
	}
	c.entrypoints[p] = slices.Clone(eps)
}

// Entrypoints returns the cached entry points of p.
func (c *Capabilities) Entrypoints(p va.Profile) []va.Entrypoint {
	return c.entrypoints[p]
}

// HasEntrypoint reports whether e was cached for p.
func (c *Capabilities) HasEntrypoint(p va.Profile, e va.Entrypoint) bool {
	return slices.Contains(c.entrypoints[p], e)
}

// FindImageFormat returns the image format with the given code.
func (c *Capabilities) FindImageFormat(cc va.FourCC) (va.ImageFormat, bool) {
	return findFormat(c.ImageFormats, cc)
}

// FindSubpictureFormat returns the subpicture format with the given code
// and its capability flags.
func (c *Capabilities) FindSubpictureFormat(cc va.FourCC) (va.ImageFormat, va.SubpictureFlags, bool) {
	for i, f := range c.SubpictureFormats {
		if f.FourCC == cc {
			return f, c.SubpictureFlags[i], true
		}
	}
	return va.ImageFormat{}, 0, false
}

// Attribute returns the cached equalizer attribute of type t. The
// returned pointer aliases the cache.
func (c *Capabilities) Attribute(t va.DisplayAttribType) (*va.DisplayAttribute, bool) {
	for i := range c.Attributes {
		if c.Attributes[i].Type == t {
			return &c.Attributes[i], true
		}
	}
	return nil, false
}

// RetainsSurfaces reports whether the driver displays surfaces in place
// instead of copying them, which calls for direct surface mapping.
func (c *Capabilities) RetainsSurfaces() bool {
	return c.DirectSurface != nil && c.DirectSurface.Value == 0
}

func findFormat(formats []va.ImageFormat, cc va.FourCC) (va.ImageFormat, bool) {
	for _, f := range formats {
		if f.FourCC == cc {
			return f, true
		}
	}
	return va.ImageFormat{}, false
}

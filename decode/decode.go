// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package decode binds the hardware decode pipeline to a surface pool.
//
// Bind picks a codec profile for an accelerated pixel format, checks
// that the driver decodes it at the VLD entry point with 4:2:0 render
// targets, and creates a decode config plus a context covering every
// pool surface. The resulting Context is handed to the decoder.
package decode

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/vaout/caps"
	"github.com/gogpu/vaout/imgfmt"
	"github.com/gogpu/vaout/va"
)

// Capability errors. Driver call failures are returned wrapped instead.
var (
	// ErrNoProfile is returned when the driver supports none of the
	// profiles that can decode the format.
	ErrNoProfile = errors.New("decode: no supported profile")

	// ErrUnsupportedEntrypoint is returned when the format needs an entry
	// point other than VLD, or the driver lacks VLD for the profile.
	ErrUnsupportedEntrypoint = errors.New("decode: unsupported entry point")

	// ErrUnsupportedChroma is returned when the config does not render to
	// 4:2:0 surfaces.
	ErrUnsupportedChroma = errors.New("decode: unsupported chroma format")

	// ErrNotAccelerated is returned by Bind for software formats.
	ErrNotAccelerated = errors.New("decode: format is not hardware decoded")
)

// Profiles ranked best first for each codec family.
var (
	mpeg2Profiles = []va.Profile{va.ProfileMPEG2Main, va.ProfileMPEG2Simple}
	mpeg4Profiles = []va.Profile{va.ProfileMPEG4Main, va.ProfileMPEG4AdvancedSimple, va.ProfileMPEG4Simple}
	h264Profiles  = []va.Profile{va.ProfileH264High, va.ProfileH264Main, va.ProfileH264Baseline}
	wmv3Profiles  = []va.Profile{va.ProfileVC1Main, va.ProfileVC1Simple}
	vc1Profiles   = []va.Profile{va.ProfileVC1Advanced}
)

func rankedProfiles(format imgfmt.Format) []va.Profile {
	switch format.Codec() {
	case imgfmt.CodecMPEG2:
		return mpeg2Profiles
	case imgfmt.CodecMPEG4:
		return mpeg4Profiles
	case imgfmt.CodecH264:
		return h264Profiles
	case imgfmt.CodecVC1:
		switch format {
		case imgfmt.VAAPIWMV3:
			return wmv3Profiles
		case imgfmt.VAAPIVC1:
			return vc1Profiles
		}
	}
	return nil
}

// ProfileFor returns the best profile the driver supports for format,
// or va.ProfileNone.
func ProfileFor(format imgfmt.Format, c *caps.Capabilities) va.Profile {
	for _, p := range rankedProfiles(format) {
		if c.HasProfile(p) {
			return p
		}
	}
	return va.ProfileNone
}

// Context is a decode config and the context bound to the pool surfaces.
type Context struct {
	Config     va.ConfigID
	ID         va.ContextID
	Profile    va.Profile
	Entrypoint va.Entrypoint

	// Surfaces are the render targets the context was created with.
	Surfaces []va.SurfaceID

	live bool
	log  *slog.Logger
}

// Option configures Bind.
type Option func(*bindOptions)

type bindOptions struct {
	log *slog.Logger
}

// WithLogger sets the logger for driver call failures.
func WithLogger(l *slog.Logger) Option {
	return func(o *bindOptions) {
		if l != nil {
			o.log = l
		}
	}
}

// Bind creates the decode pipeline for an accelerated format over the
// given render targets. The entry points reported for the chosen profile
// are cached in c.
//
// Nothing is retried: the first unsupported capability or failing call
// ends the binding, and everything created so far is destroyed.
func Bind(d va.Display, c *caps.Capabilities, width, height int, format imgfmt.Format, ids []va.SurfaceID, opts ...Option) (*Context, error) {
	o := bindOptions{log: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.log

	if !format.IsAccelerated() {
		return nil, fmt.Errorf("%w: %v", ErrNotAccelerated, format)
	}

	profile := ProfileFor(format, c)
	if profile == va.ProfileNone {
		return nil, fmt.Errorf("%w for %v", ErrNoProfile, format)
	}

	eps, err := d.QueryConfigEntrypoints(profile)
	if !va.Check(log, err, "vaQueryConfigEntrypoints()") {
		return nil, fmt.Errorf("decode: query entry points of %v: %w", profile, err)
	}
	c.SetEntrypoints(profile, eps)
	log.Debug("decode: entry points", "profile", profile.String(), "count", len(eps))
	for _, e := range eps {
		log.Debug("decode: entry point", "entrypoint", e.String())
	}

	// Only bitstream decoding is driven from here.
	entrypoint := format.Entrypoint()
	if entrypoint != va.EntrypointVLD {
		return nil, fmt.Errorf("%w: %v needs %v", ErrUnsupportedEntrypoint, format, entrypoint)
	}
	if !c.HasEntrypoint(profile, entrypoint) {
		return nil, fmt.Errorf("%w: %v has no %v", ErrUnsupportedEntrypoint, profile, entrypoint)
	}

	attribs := []va.ConfigAttrib{{Type: va.ConfigAttribRTFormat}}
	err = d.GetConfigAttributes(profile, entrypoint, attribs)
	if !va.Check(log, err, "vaGetConfigAttributes()") {
		return nil, fmt.Errorf("decode: config attributes: %w", err)
	}
	if va.RTFormat(attribs[0].Value)&va.RTFormatYUV420 == 0 {
		return nil, fmt.Errorf("%w: render target formats %#x", ErrUnsupportedChroma, attribs[0].Value)
	}

	cfg, err := d.CreateConfig(profile, entrypoint, attribs)
	if !va.Check(log, err, "vaCreateConfig()") {
		return nil, fmt.Errorf("decode: create config: %w", err)
	}

	id, err := d.CreateContext(cfg, width, height, va.Progressive, ids)
	if !va.Check(log, err, "vaCreateContext()") {
		va.Check(log, d.DestroyConfig(cfg), "vaDestroyConfig()")
		return nil, fmt.Errorf("decode: create context: %w", err)
	}

	log.Debug("decode: context created", "profile", profile.String(), "surfaces", len(ids))
	return &Context{
		Config:     cfg,
		ID:         id,
		Profile:    profile,
		Entrypoint: entrypoint,
		Surfaces:   append([]va.SurfaceID(nil), ids...),
		live:       true,
		log:        log,
	}, nil
}

// Destroy destroys the context, then the config. It is safe to call on
// a nil or already destroyed Context.
func (ctx *Context) Destroy(d va.Display) {
	if ctx == nil || !ctx.live {
		return
	}
	ctx.live = false
	va.Check(ctx.log, d.DestroyContext(ctx.ID), "vaDestroyContext()")
	va.Check(ctx.log, d.DestroyConfig(ctx.Config), "vaDestroyConfig()")
}

// Live reports whether the context has not been destroyed.
func (ctx *Context) Live() bool { return ctx != nil && ctx.live }

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package present

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/vaout/config"
	"github.com/gogpu/vaout/stats"
	"github.com/gogpu/vaout/va"
	"github.com/gogpu/vaout/window"
)

// Backend names.
const (
	BackendGL      = "gl"
	BackendXRender = "xrender"
	BackendBlit    = "blit"
)

// Errors returned by backend setup.
var (
	ErrNoGLContext = errors.New("present: gl backend needs a GL context")
	ErrNoGLX       = errors.New("present: display cannot render into GL textures")
	ErrUnknown     = errors.New("present: unknown backend")
)

// Backend presents surfaces through one output path.
//
// Setup is called once the frame size is known and again after Release.
// Put displays one surface and Flip completes the frame. Resize is called
// after the window size or output rectangle changed.
type Backend interface {
	Name() string
	Setup(t *Target) error
	Put(t *Target, id va.SurfaceID) error
	Flip(t *Target) error
	Resize(t *Target) error
	Release(t *Target)
}

// Target is the state shared by the video output and its backend.
type Target struct {
	Display va.Display
	Window  window.Window
	Config  config.Config
	Log     *slog.Logger

	// Width and Height are the decoded frame size.
	Width, Height int

	// Output is the destination rectangle inside the window.
	Output image.Rectangle

	// Deint is the deinterlacing mode in effect. It may differ from
	// Config.Deint when toggled at run time.
	Deint config.Deint

	// TopFieldFirst is the field order of the last submitted frame.
	TopFieldFirst bool

	// Supported are the PutFlags the display honors.
	Supported va.PutFlags

	// GL is the OpenGL context of the gl backend.
	GL GLContext

	// Stats is sampled for the statistics bar when Config.Stats is set.
	Stats *stats.Sampler
}

// Source returns the full frame rectangle.
func (t *Target) Source() va.Rect { return va.FullRect(t.Width, t.Height) }

// Fields returns how many puts one frame takes: two for bob
// deinterlacing, one otherwise.
func (t *Target) Fields() int {
	if t.Deint > config.DeintFirstField {
		return 2
	}
	return 1
}

// PutFlags returns the flags for put i of the current frame.
func (t *Target) PutFlags(i int) va.PutFlags {
	f := FieldFlags(t.Deint, t.TopFieldFirst, i)
	if cs := ColorspaceFlags(t.Config.Colorspace, t.Width, t.Height); t.Supported&cs != 0 {
		f |= cs
	}
	if t.Supported&va.FilterScalingMask != 0 {
		f |= ScalingFlags(t.Config.Scaling)
	}
	return f
}

func (t *Target) logger() *slog.Logger {
	if t.Log == nil {
		return slog.New(slog.DiscardHandler)
	}
	return t.Log
}

// Backends returns a registry holding the three backends, highest
// priority first: gl, xrender, blit.
func Backends() *gpucontext.Registry[Backend] {
	r := gpucontext.NewRegistry[Backend](
		gpucontext.WithPriority(BackendGL, BackendXRender, BackendBlit),
	)
	r.Register(BackendGL, func() Backend { return NewGLInterop() })
	r.Register(BackendXRender, func() Backend { return NewComposited() })
	r.Register(BackendBlit, func() Backend { return NewDirectBlit() })
	return r
}

// NameFor returns the backend selected by cfg.
func NameFor(cfg config.Config) string {
	switch {
	case cfg.GL:
		return BackendGL
	case cfg.XRender:
		return BackendXRender
	default:
		return BackendBlit
	}
}

// Select validates cfg and returns a new instance of the backend it
// selects from r.
func Select(r *gpucontext.Registry[Backend], cfg config.Config) (Backend, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	name := NameFor(cfg)
	if !r.Has(name) {
		return nil, fmt.Errorf("%w: %q", ErrUnknown, name)
	}
	return r.Get(name), nil
}

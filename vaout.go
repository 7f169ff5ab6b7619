// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vaout

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/vaout/caps"
	"github.com/gogpu/vaout/config"
	"github.com/gogpu/vaout/decode"
	"github.com/gogpu/vaout/imgfmt"
	"github.com/gogpu/vaout/internal/osdtext"
	"github.com/gogpu/vaout/overlay"
	"github.com/gogpu/vaout/present"
	"github.com/gogpu/vaout/stats"
	"github.com/gogpu/vaout/surface"
	"github.com/gogpu/vaout/va"
	"github.com/gogpu/vaout/window"
)

// VideoOutput shows decoded pictures through a video acceleration
// driver. It owns every driver object it creates.
//
// A VideoOutput is not safe for concurrent use.
type VideoOutput struct {
	d   va.Display
	win window.Window
	cfg config.Config
	log *slog.Logger

	caps    *caps.Capabilities
	pool    *surface.Pool
	ctx     *decode.Context
	backend present.Backend
	target  present.Target
	ring    present.Ring

	osd  *overlay.OSD
	subs *overlay.Subtitles

	stats      *stats.Sampler
	statsText  string
	statsOSD   overlay.Blocks
	statsFont  *osdtext.Renderer
	statsNoOSD bool

	format        imgfmt.Format
	width, height int
	dispW, dispH  int

	configured bool
	paused     bool
	torn       bool
}

// New probes the display and prepares a video output for win. The
// presentation backend is selected from cfg; the frame size is only
// known at Configure.
func New(d va.Display, win window.Window, cfg config.Config, opts ...Option) (*VideoOutput, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.GL && o.gl == nil {
		return nil, fmt.Errorf("vaout: %w", present.ErrNoGLContext)
	}
	log := o.log

	c, err := caps.Probe(d, caps.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("vaout: %w", err)
	}
	log.Info("vaout: display ready", "version", fmt.Sprintf("%d.%d", c.Major, c.Minor), "vendor", c.Vendor)

	reg := o.backends
	if reg == nil {
		reg = present.Backends()
	}
	backend, err := present.Select(reg, cfg)
	if err != nil {
		return nil, fmt.Errorf("vaout: %w", err)
	}
	log.Info("vaout: presentation backend", "name", backend.Name())

	v := &VideoOutput{
		d:       d,
		win:     win,
		cfg:     cfg,
		log:     log,
		caps:    c,
		pool:    surface.NewPool(surface.WithLogger(log), surface.WithDebug(o.debug)),
		backend: backend,
		osd:     overlay.NewOSD(d, overlay.WithLogger(log)),
		subs:    overlay.NewSubtitles(d, overlay.WithLogger(log)),
		stats:   o.stats,
	}
	v.pool.SetDirectMapping(v.directMapping())
	if cfg.Stats && v.stats == nil {
		v.stats = stats.New()
	}
	v.target = present.Target{
		Display:   d,
		Window:    win,
		Config:    cfg,
		Log:       log,
		Deint:     cfg.Deint,
		Supported: va.SupportedPutFlags(d),
		GL:        o.gl,
		Stats:     v.stats,
	}
	return v, nil
}

// directMapping decides the surface mapping once per output.
func (v *VideoOutput) directMapping() bool {
	var direct bool
	switch v.cfg.Mapping {
	case config.MappingDirect:
		direct = true
	case config.MappingAuto:
		direct = v.caps.RetainsSurfaces()
	}
	if direct {
		v.log.Info("vaout: using 1:1 surface mapping")
	} else {
		v.log.Info("vaout: using LRU surface mapping")
	}
	return direct
}

// Capabilities returns the probed driver capabilities.
func (v *VideoOutput) Capabilities() *caps.Capabilities { return v.caps }

// Backend returns the presentation backend.
func (v *VideoOutput) Backend() present.Backend { return v.backend }

// Output returns the destination rectangle inside the window.
func (v *VideoOutput) Output() va.Rect { return v.target.Output }

// HWAccelContext returns the decode context for accelerated formats, nil
// otherwise. The decoder submits its buffers to it.
func (v *VideoOutput) HWAccelContext() *decode.Context {
	if !v.format.IsAccelerated() {
		return nil
	}
	return v.ctx
}

// acceleratedCodecs are the accelerated formats offered to the player.
// The IDCT and motion compensation entry points are not.
var acceleratedCodecs = []imgfmt.Format{
	imgfmt.VAAPIMPEG2, imgfmt.VAAPIMPEG4, imgfmt.VAAPIH263,
	imgfmt.VAAPIH264, imgfmt.VAAPIWMV3, imgfmt.VAAPIVC1,
}

// QueryFormat returns the capabilities for format, 0 if it cannot be
// shown.
func (v *VideoOutput) QueryFormat(format imgfmt.Format) Caps {
	if format.IsAccelerated() {
		for _, f := range acceleratedCodecs {
			if f == format {
				return DefaultCaps | CapNoSlices
			}
		}
		return 0
	}
	cc, ok := format.FourCC()
	if !ok {
		return 0
	}
	if _, ok := v.caps.FindImageFormat(cc); !ok {
		return 0
	}
	return DefaultCaps
}

// Configure (re)creates every per-stream object for width x height
// frames of format. dispW x dispH is the display aspect size used to fit
// the picture into the window. Objects of the previous configuration are
// released first.
func (v *VideoOutput) Configure(width, height, dispW, dispH int, flags ConfigFlags, format imgfmt.Format) error {
	if v.torn {
		return ErrNotConfigured
	}
	v.releaseStream()
	if v.QueryFormat(format) == 0 {
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("vaout: invalid frame size %dx%d", width, height)
	}
	v.format = format
	v.width, v.height = width, height
	v.dispW, v.dispH = dispW, dispH

	if flags&ConfigFullscreen != 0 {
		v.win.SetFullscreen(true)
	}

	count := decode.SurfaceCount(format, v.pool.DirectMapping())
	if err := v.pool.Allocate(v.d, width, height, count, va.RTFormatYUV420); err != nil {
		v.releaseStream()
		return fmt.Errorf("vaout: configure: %w", err)
	}
	v.log.Debug("vaout: surfaces allocated", "count", count, "size", fmt.Sprintf("%dx%d", width, height))

	if err := v.osd.Configure(v.caps, width, height, v.pool.IDs()); err != nil {
		v.log.Warn("vaout: on-screen display disabled", "err", err)
	}
	if err := v.subs.Configure(v.caps, width, height); err != nil {
		v.log.Warn("vaout: subtitles disabled", "err", err)
	}

	var err error
	if format.IsAccelerated() {
		v.ctx, err = decode.Bind(v.d, v.caps, width, height, format, v.pool.IDs(), decode.WithLogger(v.log))
	} else {
		err = v.createImages(format)
	}
	if err != nil {
		v.releaseStream()
		return fmt.Errorf("vaout: configure: %w", err)
	}

	v.target.Width, v.target.Height = width, height
	v.target.Output = v.fit()
	if err := v.backend.Setup(&v.target); err != nil {
		v.releaseStream()
		return fmt.Errorf("vaout: configure %s backend: %w", v.backend.Name(), err)
	}

	v.paused = false
	v.configured = true
	v.resize()
	return nil
}

// createImages gives every surface an image to upload software frames
// through. An image derived from the surface is used when its layout
// matches; otherwise a separate image is created and put into the
// surface after each upload.
func (v *VideoOutput) createImages(format imgfmt.Format) error {
	cc, _ := format.FourCC()
	f, ok := v.caps.FindImageFormat(cc)
	if !ok {
		return fmt.Errorf("%w: no %v image format", ErrUnsupportedFormat, cc)
	}
	for i := range v.pool.Len() {
		s, _ := v.pool.Lookup(v.pool.At(i))
		if img, err := v.d.DeriveImage(s.ID); err == nil {
			if img.Format.FourCC == cc && img.Width == v.width && img.Height == v.height {
				s.Image, s.Bound = img, true
				continue
			}
			va.Check(v.log, v.d.DestroyImage(img.ID), "vaDestroyImage()")
		}
		img, err := v.d.CreateImage(f, v.width, v.height)
		if !va.Check(v.log, err, "vaCreateImage()") {
			return va.Wrap(err, "vaCreateImage()")
		}
		s.Image = img
	}
	return nil
}

// fit returns the output rectangle for the current window size.
func (v *VideoOutput) fit() va.Rect {
	w, h := v.win.Size()
	return present.FitRect(v.width, v.height, v.dispW, v.dispH, w, h)
}

// releaseStream destroys the per-stream objects: backend resources
// first, the overlays are detached before the surfaces they are
// associated with go away.
func (v *VideoOutput) releaseStream() {
	if v.configured {
		v.backend.Release(&v.target)
	}
	v.configured = false
	v.ring.Reset()
	v.osd.Disable()
	if v.ctx != nil {
		v.ctx.Destroy(v.d)
		v.ctx = nil
	}
	v.pool.ReleaseAll(v.d)
}

// Teardown releases every driver object and terminates the display. The
// output cannot be configured again.
func (v *VideoOutput) Teardown() {
	if v.torn {
		return
	}
	v.releaseStream()
	v.osd.Release()
	v.subs.Release()
	va.Check(v.log, v.d.Terminate(), "vaTerminate()")
	v.torn = true
}

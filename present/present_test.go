// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package present_test

import (
	"errors"
	"image"
	"testing"
	"time"

	"github.com/gogpu/gpucontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/vaout/config"
	"github.com/gogpu/vaout/present"
	"github.com/gogpu/vaout/present/glrecord"
	"github.com/gogpu/vaout/stats"
	"github.com/gogpu/vaout/va"
	"github.com/gogpu/vaout/va/software"
	"github.com/gogpu/vaout/window"
	"github.com/gogpu/vaout/window/mocks"
)

const (
	frameW, frameH = 32, 24
	winW, winH     = 64, 48
)

func newDisplay(t *testing.T, opts ...software.Option) *software.Display {
	t.Helper()
	d := software.New(opts...)
	_, _, err := d.Initialize()
	require.NoError(t, err)
	return d
}

// solid creates a frame-sized surface filled with one YCbCr color.
func solid(t *testing.T, d *software.Display, y, cb, cr uint8) va.SurfaceID {
	t.Helper()
	ids, err := d.CreateSurfaces(frameW, frameH, va.RTFormatYUV420, 1)
	require.NoError(t, err)
	img := image.NewYCbCr(image.Rect(0, 0, frameW, frameH), image.YCbCrSubsampleRatio420)
	for i := range img.Y {
		img.Y[i] = y
	}
	for i := range img.Cb {
		img.Cb[i], img.Cr[i] = cb, cr
	}
	require.NoError(t, d.WriteSurface(ids[0], img))
	return ids[0]
}

func white(t *testing.T, d *software.Display) va.SurfaceID { return solid(t, d, 235, 128, 128) }

func newTarget(d va.Display, w window.Window, cfg config.Config) *present.Target {
	ww, wh := w.Size()
	return &present.Target{
		Display:   d,
		Window:    w,
		Config:    cfg,
		Width:     frameW,
		Height:    frameH,
		Output:    present.FitRect(frameW, frameH, frameW, frameH, ww, wh),
		Deint:     cfg.Deint,
		Supported: va.SupportedPutFlags(d),
	}
}

func TestBackendsPriority(t *testing.T) {
	r := present.Backends()
	assert.Equal(t, 3, r.Count())
	assert.Equal(t, []string{present.BackendGL, present.BackendXRender, present.BackendBlit}, r.Available())
	assert.Equal(t, present.BackendGL, r.BestName())
}

func TestSelect(t *testing.T) {
	r := present.Backends()

	tests := []struct {
		name string
		set  func(*config.Config)
		want string
	}{
		{"default", func(*config.Config) {}, present.BackendBlit},
		{"gl", func(c *config.Config) { c.GL = true }, present.BackendGL},
		{"xrender", func(c *config.Config) { c.XRender = true }, present.BackendXRender},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.set(&cfg)
			b, err := present.Select(r, cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, b.Name())
		})
	}

	cfg := config.Default()
	cfg.GL, cfg.XRender = true, true
	_, err := present.Select(r, cfg)
	assert.ErrorIs(t, err, config.ErrExclusiveBackends)

	blitOnly := gpucontext.NewRegistry[present.Backend]()
	blitOnly.Register(present.BackendBlit, func() present.Backend { return present.NewDirectBlit() })
	cfg = config.Default()
	cfg.GL = true
	_, err = present.Select(blitOnly, cfg)
	assert.ErrorIs(t, err, present.ErrUnknown)
}

func TestDirectBlit(t *testing.T) {
	d := newDisplay(t)
	win := window.NewHeadless(d, winW, winH)
	id := white(t, d)
	tgt := newTarget(d, win, config.Default())

	b := present.NewDirectBlit()
	require.NoError(t, b.Setup(tgt))
	require.NoError(t, b.Put(tgt, id))
	require.NoError(t, b.Flip(tgt))
	require.NoError(t, b.Put(tgt, id))

	puts := d.Puts()
	require.Len(t, puts, 2)
	assert.Equal(t, win.Drawable(), puts[0].Drawable)
	assert.Equal(t, image.Rect(0, 0, winW, winH), puts[0].Dst)
	assert.Equal(t, va.FullRect(frameW, frameH), puts[0].Src)
	assert.Equal(t, va.ClearDrawable|va.SrcBT601, puts[0].Flags, "first put clears")
	assert.Equal(t, va.SrcBT601, puts[1].Flags)

	px := win.Snapshot().RGBAAt(winW/2, winH/2)
	assert.Greater(t, px.R, uint8(240))
	assert.Greater(t, px.B, uint8(240))

	require.NoError(t, b.Resize(tgt))
	require.NoError(t, b.Put(tgt, id))
	assert.NotZero(t, d.Puts()[2].Flags&va.ClearDrawable, "resize clears again")
}

func TestDirectBlitBob(t *testing.T) {
	d := newDisplay(t)
	dst := image.NewRGBA(image.Rect(0, 0, winW, winH))
	dr := d.AttachDrawable(dst)
	id := white(t, d)

	win := mocks.NewMockWindow(t)
	win.EXPECT().Size().Return(winW, winH)
	win.EXPECT().Drawable().Return(dr).Once()

	cfg := config.Default()
	cfg.Deint = config.DeintBob
	cfg.Scaling = config.ScalingHQ
	tgt := newTarget(d, win, cfg)
	tgt.TopFieldFirst = false

	b := present.NewDirectBlit()
	require.NoError(t, b.Setup(tgt))
	require.NoError(t, b.Put(tgt, id))

	puts := d.Puts()
	require.Len(t, puts, 2, "bob shows both fields")
	assert.Equal(t, va.TopField|va.ClearDrawable|va.SrcBT601|va.FilterScalingHQ, puts[0].Flags)
	assert.Equal(t, va.BottomField|va.SrcBT601|va.FilterScalingHQ, puts[1].Flags)
}

func TestDirectBlitRestrictedDriver(t *testing.T) {
	d := newDisplay(t, software.WithPutFlags(va.FieldMask|va.SrcBT601))
	win := window.NewHeadless(d, winW, winH)
	id := white(t, d)
	cfg := config.Default()
	cfg.Colorspace = config.ColorspaceBT709
	cfg.Scaling = config.ScalingNLA
	tgt := newTarget(d, win, cfg)

	b := present.NewDirectBlit()
	require.NoError(t, b.Setup(tgt))
	require.NoError(t, b.Put(tgt, id))
	assert.Equal(t, va.FramePicture, d.Puts()[0].Flags, "unsupported flags are not requested")
}

func TestDirectBlitFailure(t *testing.T) {
	d := newDisplay(t)
	win := window.NewHeadless(d, winW, winH)
	id := white(t, d)
	tgt := newTarget(d, win, config.Default())

	b := present.NewDirectBlit()
	require.NoError(t, b.Setup(tgt))
	d.Fail("PutSurface", va.StatusErrorSurfaceBusy)

	err := b.Put(tgt, id)
	require.Error(t, err)
	assert.Equal(t, va.StatusErrorSurfaceBusy, va.StatusOf(err))
	var ce *va.CallError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "vaPutSurface()", ce.Call)
}

func TestComposited(t *testing.T) {
	d := newDisplay(t)
	win := window.NewHeadless(d, winW, winH)
	id := white(t, d)
	tgt := newTarget(d, win, config.Default())

	c := present.NewComposited()
	require.NoError(t, c.Setup(tgt))
	p := c.Pixmap()
	assert.Equal(t, winW, p.Width)
	assert.Equal(t, winH, p.Height)

	require.NoError(t, c.Put(tgt, id))
	require.NoError(t, c.Flip(tgt))
	puts := d.Puts()
	require.Len(t, puts, 1)
	assert.Equal(t, p.Drawable, puts[0].Drawable, "surfaces go to the pixmap")
	assert.NotZero(t, puts[0].Flags&va.ClearDrawable)
	assert.Greater(t, win.Snapshot().RGBAAt(1, 1).G, uint8(240), "pixmap composited onto the window")

	require.NoError(t, c.Resize(tgt))
	assert.Equal(t, p, c.Pixmap(), "same size keeps the pixmap")

	win.Resize(80, 60)
	require.NoError(t, c.Resize(tgt))
	assert.Equal(t, 80, c.Pixmap().Width)
	assert.NotEqual(t, p.Drawable, c.Pixmap().Drawable)

	c.Release(tgt)
	assert.Zero(t, c.Pixmap().Drawable)
	c.Release(tgt)
}

func TestCompositedNeedsCompositor(t *testing.T) {
	d := newDisplay(t)
	win := mocks.NewMockWindow(t)
	win.EXPECT().Size().Return(winW, winH)
	tgt := newTarget(d, win, config.Default())

	err := present.NewComposited().Setup(tgt)
	assert.ErrorIs(t, err, window.ErrNoCompositor)
}

// glTarget wires a headless window, a software display and a recording
// GL context.
func glTarget(t *testing.T, cfg config.Config, opts ...software.Option) (*present.Target, *software.Display, *window.Headless, *glrecord.Recorder) {
	t.Helper()
	d := newDisplay(t, opts...)
	win := window.NewHeadless(d, winW, winH)
	rec := glrecord.New(winW, winH)
	cfg.GL = true
	tgt := newTarget(d, win, cfg)
	tgt.GL = rec
	return tgt, d, win, rec
}

func TestGLInteropSetupErrors(t *testing.T) {
	d := newDisplay(t)
	win := window.NewHeadless(d, winW, winH)

	tgt := newTarget(d, win, config.Default())
	assert.ErrorIs(t, present.NewGLInterop().Setup(tgt), present.ErrNoGLContext)

	// Hide the GLX methods behind the plain interface.
	tgt = newTarget(struct{ va.Display }{d}, win, config.Default())
	tgt.GL = glrecord.New(winW, winH)
	assert.ErrorIs(t, present.NewGLInterop().Setup(tgt), present.ErrNoGLX)

	mw := mocks.NewMockWindow(t)
	mw.EXPECT().Size().Return(winW, winH)
	cfg := config.Default()
	cfg.TFP = true
	tgt = newTarget(d, mw, cfg)
	tgt.GL = glrecord.New(winW, winH)
	assert.ErrorIs(t, present.NewGLInterop().Setup(tgt), window.ErrNoCompositor)
}

func TestGLInteropCopy(t *testing.T) {
	tgt, d, _, rec := glTarget(t, config.Default())
	// Saturated red in BT.601.
	id := solid(t, d, 81, 90, 240)

	g := present.NewGLInterop()
	require.NoError(t, g.Setup(tgt))
	assert.Equal(t, 1, rec.Textures())
	assert.Equal(t, 1, rec.Count(glrecord.CmdViewport))
	assert.Equal(t, 1, d.Calls("CreateSurfaceGLX"))

	require.NoError(t, g.Flip(tgt))
	assert.Zero(t, rec.Swaps(), "nothing is drawn before the first frame")

	require.NoError(t, g.Put(tgt, id))
	assert.Equal(t, 1, d.Calls("CopySurfaceGLX"))
	assert.False(t, g.Binding())
	assert.Equal(t, 1, g.Texture().(*glrecord.Texture).Updates())

	require.NoError(t, g.Flip(tgt))
	assert.Equal(t, 1, rec.Swaps())
	assert.Equal(t, 1, rec.Count(glrecord.CmdDrawQuad))
	assert.Zero(t, rec.Count(glrecord.CmdFinish))
	assert.Zero(t, d.Calls("BeginRenderSurfaceGLX"))

	px := rec.Frame().RGBAAt(winW/2, winH/2)
	assert.Greater(t, px.R, uint8(200))
	assert.Less(t, px.G, uint8(50))
	assert.Less(t, px.B, uint8(50))

	g.Release(tgt)
	assert.Zero(t, rec.Textures())
	assert.Equal(t, 1, d.Calls("DestroySurfaceGLX"))
}

func TestGLInteropBindFallback(t *testing.T) {
	tgt, d, _, _ := glTarget(t, config.Default(), software.WithoutGLXCopy())
	id := white(t, d)

	g := present.NewGLInterop()
	require.NoError(t, g.Setup(tgt))
	require.NoError(t, g.Put(tgt, id))
	assert.True(t, g.Binding())
	assert.Equal(t, 1, d.Calls("CopySurfaceGLX"))
	assert.Equal(t, 1, d.Calls("AssociateSurfaceGLX"), "the current frame is bound right away")

	require.NoError(t, g.Flip(tgt))
	assert.Equal(t, 1, d.Calls("BeginRenderSurfaceGLX"))
	assert.Equal(t, 1, d.Calls("EndRenderSurfaceGLX"))

	require.NoError(t, g.Put(tgt, id))
	assert.Equal(t, 1, d.Calls("CopySurfaceGLX"), "no copy after the switch")
	assert.Equal(t, 2, d.Calls("AssociateSurfaceGLX"))

	g.Release(tgt)
	require.NoError(t, g.Setup(tgt))
	assert.True(t, g.Binding(), "bind mode survives a reconfiguration")
}

func TestGLInteropBindOption(t *testing.T) {
	cfg := config.Default()
	cfg.Bind = true
	cfg.Deint = config.DeintBob
	tgt, d, _, _ := glTarget(t, cfg)
	id := white(t, d)

	g := present.NewGLInterop()
	require.NoError(t, g.Setup(tgt))
	require.NoError(t, g.Put(tgt, id))
	assert.Zero(t, d.Calls("CopySurfaceGLX"))
	assert.Equal(t, 2, d.Calls("AssociateSurfaceGLX"))
}

func TestGLInteropBobCopies(t *testing.T) {
	cfg := config.Default()
	cfg.Deint = config.DeintBob
	tgt, d, _, _ := glTarget(t, cfg)
	id := white(t, d)

	g := present.NewGLInterop()
	require.NoError(t, g.Setup(tgt))
	require.NoError(t, g.Put(tgt, id))
	assert.Equal(t, 2, d.Calls("CopySurfaceGLX"))
}

func TestGLInteropCopyFailure(t *testing.T) {
	tgt, d, _, _ := glTarget(t, config.Default())
	id := white(t, d)

	g := present.NewGLInterop()
	require.NoError(t, g.Setup(tgt))
	d.Fail("CopySurfaceGLX", va.StatusErrorInvalidSurface)
	err := g.Put(tgt, id)
	assert.Equal(t, va.StatusErrorInvalidSurface, va.StatusOf(err))
	assert.False(t, g.Binding())
}

func TestGLInteropReflect(t *testing.T) {
	cfg := config.Default()
	cfg.Reflect = true
	tgt, d, _, rec := glTarget(t, cfg)
	id := white(t, d)

	g := present.NewGLInterop()
	require.NoError(t, g.Setup(tgt))
	require.NoError(t, g.Put(tgt, id))
	rec.Reset()
	require.NoError(t, g.Flip(tgt))

	assert.Equal(t, 1, rec.Count(glrecord.CmdDrawGradient))
	assert.Equal(t, 2, rec.Count(glrecord.CmdPushMatrix))
	assert.Equal(t, 2, rec.Count(glrecord.CmdPopMatrix))
	assert.Equal(t, 2, rec.Count(glrecord.CmdDrawQuad), "frame and reflection")
	assert.Zero(t, rec.Depth())

	cmds := rec.Commands()
	first, ok := cmds[0].(glrecord.ClearCommand)
	require.True(t, ok, "flip starts with a clear, got %v", cmds[0].Type())
	assert.Equal(t, 1.0, first.Color.A)

	// The top left corner shows the background gradient.
	px := rec.Frame().RGBAAt(0, 0)
	assert.Greater(t, px.R, uint8(150))
	assert.Equal(t, px.R, px.G)
}

func TestGLInteropStats(t *testing.T) {
	cfg := config.Default()
	cfg.Stats = true
	tgt, d, _, rec := glTarget(t, cfg)
	id := white(t, d)

	now := time.Unix(0, 0)
	cpu := time.Duration(0)
	tgt.Stats = stats.New(
		stats.WithCPUTime(func() (time.Duration, error) { return cpu, nil }),
		stats.WithClock(func() time.Time { return now }),
		stats.WithCPUInfo(""),
	)

	g := present.NewGLInterop()
	require.NoError(t, g.Setup(tgt))
	require.NoError(t, g.Put(tgt, id))
	require.NoError(t, g.Flip(tgt))

	assert.Equal(t, 1, rec.Count(glrecord.CmdFillRect))
	assert.Equal(t, 1, rec.Count(glrecord.CmdDrawMask))
	for _, c := range rec.Commands() {
		if fr, ok := c.(glrecord.FillRectCommand); ok {
			assert.Equal(t, image.Rect(0, 0, winW, present.StatsBarHeight), fr.Rect)
		}
	}

	// Without a sampler the bar is skipped.
	tgt.Stats = nil
	rec.Reset()
	require.NoError(t, g.Flip(tgt))
	assert.Zero(t, rec.Count(glrecord.CmdFillRect))
}

func TestGLInteropFinishAndFullscreen(t *testing.T) {
	cfg := config.Default()
	cfg.GLFinish = true
	tgt, d, win, rec := glTarget(t, cfg)
	id := white(t, d)
	win.SetFullscreen(true)

	g := present.NewGLInterop()
	require.NoError(t, g.Setup(tgt))
	require.NoError(t, g.Put(tgt, id))
	rec.Reset()
	require.NoError(t, g.Flip(tgt))

	cmds := rec.Commands()
	require.GreaterOrEqual(t, len(cmds), 3)
	n := len(cmds)
	assert.Equal(t, glrecord.CmdFinish, cmds[n-3].Type())
	assert.Equal(t, glrecord.CmdSwap, cmds[n-2].Type())
	assert.Equal(t, glrecord.CmdClear, cmds[n-1].Type(), "fullscreen clears the back buffer after the swap")
}

func TestGLInteropSwapError(t *testing.T) {
	tgt, d, _, rec := glTarget(t, config.Default())
	id := white(t, d)

	g := present.NewGLInterop()
	require.NoError(t, g.Setup(tgt))
	require.NoError(t, g.Put(tgt, id))

	boom := errors.New("context lost")
	rec.FailSwap(boom)
	assert.ErrorIs(t, g.Flip(tgt), boom)
	rec.FailSwap(nil)
	assert.NoError(t, g.Flip(tgt))
}

func TestGLInteropTextureFromPixmap(t *testing.T) {
	cfg := config.Default()
	cfg.TFP = true
	tgt, d, win, rec := glTarget(t, cfg)
	id := solid(t, d, 81, 90, 240)

	g := present.NewGLInterop()
	require.NoError(t, g.Setup(tgt))
	assert.Zero(t, d.Calls("CreateSurfaceGLX"))

	require.NoError(t, g.Put(tgt, id))
	puts := d.Puts()
	require.Len(t, puts, 1)
	assert.NotEqual(t, win.Drawable(), puts[0].Drawable, "surfaces go to the pixmap")
	assert.Equal(t, va.FullRect(frameW, frameH), puts[0].Dst)
	assert.Equal(t, 1, g.Texture().(*glrecord.Texture).Updates())

	require.NoError(t, g.Flip(tgt))
	px := rec.Frame().RGBAAt(winW/2, winH/2)
	assert.Greater(t, px.R, uint8(200))
	assert.Less(t, px.B, uint8(50))

	g.Release(tgt)
	assert.Zero(t, rec.Textures())
}

func TestGLInteropResize(t *testing.T) {
	tgt, _, win, rec := glTarget(t, config.Default())
	g := present.NewGLInterop()
	require.NoError(t, g.Setup(tgt))

	win.Resize(100, 80)
	rec.Reset()
	require.NoError(t, g.Resize(tgt))
	cmds := rec.Commands()
	require.Len(t, cmds, 2)
	vp, ok := cmds[0].(glrecord.ViewportCommand)
	require.True(t, ok)
	assert.Equal(t, 100, vp.Width)
	assert.Equal(t, 80, vp.Height)
	assert.Equal(t, 100, rec.Frame().Rect.Dx())
}

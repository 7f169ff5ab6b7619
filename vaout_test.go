// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vaout_test

import (
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/vaout"
	"github.com/gogpu/vaout/config"
	"github.com/gogpu/vaout/decode"
	"github.com/gogpu/vaout/imgfmt"
	"github.com/gogpu/vaout/overlay"
	"github.com/gogpu/vaout/present"
	"github.com/gogpu/vaout/present/glrecord"
	"github.com/gogpu/vaout/stats"
	"github.com/gogpu/vaout/va"
	"github.com/gogpu/vaout/va/software"
	"github.com/gogpu/vaout/window"
)

const frameW, frameH = 64, 48

// BT.601 studio range colors.
var (
	red   = [3]byte{81, 90, 240}
	white = [3]byte{235, 128, 128}
)

func newOutput(t *testing.T, cfg config.Config, opts ...software.Option) (*vaout.VideoOutput, *software.Display, *window.Headless) {
	t.Helper()
	d := software.New(opts...)
	win := window.NewHeadless(d, frameW, frameH)
	vo, err := vaout.New(d, win, cfg, vaout.WithDebug(true))
	require.NoError(t, err)
	t.Cleanup(vo.Teardown)
	return vo, d, win
}

// picture returns a software frame of one color. NV12 carries the
// chroma interleaved in the second plane.
func picture(format imgfmt.Format, w, h int, c [3]byte) *vaout.Frame {
	cw, ch := (w+1)/2, (h+1)/2
	f := &vaout.Frame{Format: format, Width: w, Height: h}
	f.Planes[0], f.Strides[0] = fill(w*h, c[0]), w
	if format == imgfmt.NV12 {
		uv := make([]byte, 2*cw*ch)
		for i := 0; i < len(uv); i += 2 {
			uv[i], uv[i+1] = c[1], c[2]
		}
		f.Planes[1], f.Strides[1] = uv, 2*cw
		return f
	}
	f.Planes[1], f.Strides[1] = fill(cw*ch, c[1]), cw
	f.Planes[2], f.Strides[2] = fill(cw*ch, c[2]), cw
	return f
}

func fill(n int, v byte) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = v
	}
	return b
}

func isRed(c color.RGBA) bool   { return c.R > 200 && c.G < 60 && c.B < 60 }
func isWhite(c color.RGBA) bool { return c.R > 230 && c.G > 230 && c.B > 230 }

func TestH264Playback(t *testing.T) {
	d := software.New()
	win := window.NewHeadless(d, 640, 360)
	vo, err := vaout.New(d, win, config.Default(), vaout.WithDebug(true))
	require.NoError(t, err)
	defer vo.Teardown()

	assert.Equal(t, vaout.DefaultCaps|vaout.CapNoSlices, vo.QueryFormat(imgfmt.VAAPIH264))
	require.NoError(t, vo.Configure(1920, 1080, 1920, 1080, 0, imgfmt.VAAPIH264))

	surfaces, _, _ := d.Live()
	assert.Equal(t, 21, surfaces)
	require.NotNil(t, vo.HWAccelContext())
	assert.True(t, vo.HWAccelContext().Live())
	assert.Equal(t, present.BackendBlit, vo.Backend().Name())
	assert.Equal(t, image.Rect(0, 0, 640, 360), vo.Output())

	f := &vaout.Frame{Format: imgfmt.VAAPIH264, Width: 1920, Height: 1080, Numbered: true}
	seen := make(map[va.SurfaceID]bool)
	for range 40 {
		require.True(t, vo.GetDecodeSurface(f))
		seen[f.SurfaceID] = true
		require.True(t, vo.SubmitDecoded(f))
		vo.PresentCurrentFrame()
	}
	assert.Len(t, seen, 21, "LRU recycling visits every surface")
	assert.Len(t, d.Puts(), 40)

	last := f.SurfaceID
	for range 3 {
		vo.PresentCurrentFrame()
	}
	puts := d.Puts()
	require.Len(t, puts, 43)
	for _, p := range puts[40:] {
		assert.Equal(t, last, p.Surface, "the last frame is shown again")
	}
}

func TestDirectMapping(t *testing.T) {
	vo, d, _ := newOutput(t, config.Default(), software.WithDirectSurface(0))
	require.NoError(t, vo.Configure(frameW, frameH, frameW, frameH, 0, imgfmt.VAAPIMPEG2))

	surfaces, _, _ := d.Live()
	assert.Equal(t, decode.SurfacesMPEG2, surfaces, "no LRU headroom")

	ids := make([]va.SurfaceID, decode.SurfacesMPEG2)
	for i := range ids {
		f := &vaout.Frame{Format: imgfmt.VAAPIMPEG2, Numbered: true, Number: i}
		require.True(t, vo.GetDecodeSurface(f))
		ids[i] = f.SurfaceID
	}
	assert.NotEqual(t, ids[0], ids[1])
	assert.NotEqual(t, ids[1], ids[2])

	again := &vaout.Frame{Format: imgfmt.VAAPIMPEG2, Numbered: true, Number: 1}
	require.True(t, vo.GetDecodeSurface(again))
	assert.Equal(t, ids[1], again.SurfaceID)

	assert.Panics(t, func() {
		vo.GetDecodeSurface(&vaout.Frame{Format: imgfmt.VAAPIMPEG2, Numbered: true, Number: 3})
	})
}

func TestLRUSurfaceCount(t *testing.T) {
	vo, d, _ := newOutput(t, config.Config{Mapping: config.MappingLRU})
	require.NoError(t, vo.Configure(frameW, frameH, frameW, frameH, 0, imgfmt.VAAPIMPEG2))
	surfaces, _, _ := d.Live()
	assert.Equal(t, 2*decode.SurfacesMPEG2, surfaces)
}

func TestGetDecodeSurfaceRejects(t *testing.T) {
	vo, _, _ := newOutput(t, config.Default())
	f := &vaout.Frame{Format: imgfmt.VAAPIH264, Numbered: true}
	assert.False(t, vo.GetDecodeSurface(f), "not configured")

	require.NoError(t, vo.Configure(frameW, frameH, frameW, frameH, 0, imgfmt.VAAPIH264))
	assert.False(t, vo.GetDecodeSurface(&vaout.Frame{Format: imgfmt.VAAPIH264}), "not numbered")
	assert.False(t, vo.GetDecodeSurface(&vaout.Frame{Format: imgfmt.I420, Numbered: true}), "software format")
	assert.False(t, vo.SubmitDecoded(&vaout.Frame{Format: imgfmt.VAAPIH264}), "no surface")
}

func TestQueryFormat(t *testing.T) {
	vo, _, _ := newOutput(t, config.Default())
	tests := []struct {
		format imgfmt.Format
		want   vaout.Caps
	}{
		{imgfmt.VAAPIMPEG2, vaout.DefaultCaps | vaout.CapNoSlices},
		{imgfmt.VAAPIMPEG4, vaout.DefaultCaps | vaout.CapNoSlices},
		{imgfmt.VAAPIH263, vaout.DefaultCaps | vaout.CapNoSlices},
		{imgfmt.VAAPIWMV3, vaout.DefaultCaps | vaout.CapNoSlices},
		{imgfmt.VAAPIVC1, vaout.DefaultCaps | vaout.CapNoSlices},
		{imgfmt.VAAPIMPEG2IDCT, 0},
		{imgfmt.VAAPIMPEG2MoComp, 0},
		{imgfmt.NV12, vaout.DefaultCaps},
		{imgfmt.YV12, vaout.DefaultCaps},
		{imgfmt.I420, vaout.DefaultCaps},
		{imgfmt.IYUV, 0},
	}
	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, vo.QueryFormat(tt.format))
		})
	}
}

func TestConfigureErrors(t *testing.T) {
	vo, d, _ := newOutput(t, config.Default(), software.WithProfiles(va.ProfileMPEG2Main))

	assert.ErrorIs(t, vo.Configure(frameW, frameH, frameW, frameH, 0, imgfmt.IYUV), vaout.ErrUnsupportedFormat)
	assert.ErrorIs(t, vo.Configure(frameW, frameH, frameW, frameH, 0, imgfmt.VAAPIMPEG2IDCT), vaout.ErrUnsupportedFormat)

	err := vo.Configure(frameW, frameH, frameW, frameH, 0, imgfmt.VAAPIH264)
	assert.ErrorIs(t, err, decode.ErrNoProfile)
	surfaces, _, _ := d.Live()
	assert.Zero(t, surfaces, "a failed configure releases its surfaces")

	d.Fail("CreateSurfaces", va.StatusErrorAllocationFailed)
	err = vo.Configure(frameW, frameH, frameW, frameH, 0, imgfmt.I420)
	assert.ErrorIs(t, err, va.StatusErrorAllocationFailed)
	d.Heal("CreateSurfaces")

	require.NoError(t, vo.Configure(frameW, frameH, frameW, frameH, 0, imgfmt.I420))
}

func TestReconfigure(t *testing.T) {
	vo, d, _ := newOutput(t, config.Default())
	require.NoError(t, vo.Configure(frameW, frameH, frameW, frameH, 0, imgfmt.VAAPIMPEG2))
	f := &vaout.Frame{Format: imgfmt.VAAPIMPEG2, Numbered: true}
	require.True(t, vo.GetDecodeSurface(f))

	require.NoError(t, vo.Configure(frameW, frameH, frameW, frameH, 0, imgfmt.VAAPIH264))
	surfaces, _, _ := d.Live()
	assert.Equal(t, 21, surfaces)

	// The handle from the previous configuration is stale.
	f.Format = imgfmt.VAAPIH264
	require.True(t, vo.GetDecodeSurface(f))
	require.True(t, vo.SubmitDecoded(f))
}

func TestSoftwareUpload(t *testing.T) {
	for _, format := range []imgfmt.Format{imgfmt.I420, imgfmt.YV12, imgfmt.NV12} {
		t.Run(format.String(), func(t *testing.T) {
			vo, _, win := newOutput(t, config.Default())
			require.NoError(t, vo.Configure(frameW, frameH, frameW, frameH, 0, format))
			assert.Nil(t, vo.HWAccelContext())

			require.True(t, vo.SubmitDecoded(picture(format, frameW, frameH, red)))
			vo.PresentCurrentFrame()
			assert.True(t, isRed(win.Snapshot().RGBAAt(frameW/2, frameH/2)), "%v", win.Snapshot().RGBAAt(frameW/2, frameH/2))

			require.True(t, vo.SubmitDecoded(picture(format, frameW, frameH, white)))
			vo.PresentCurrentFrame()
			assert.True(t, isWhite(win.Snapshot().RGBAAt(frameW/2, frameH/2)))
		})
	}
}

func TestSoftwareUploadNeedsPlanarYUV(t *testing.T) {
	vo, _, _ := newOutput(t, config.Default())
	require.NoError(t, vo.Configure(frameW, frameH, frameW, frameH, 0, imgfmt.I420))
	f := picture(imgfmt.I420, frameW, frameH, red)
	f.Format = imgfmt.VAAPIH264
	assert.False(t, vo.SubmitDecoded(f))
}

func TestSoftwareUploadFailureDropsFrame(t *testing.T) {
	vo, d, _ := newOutput(t, config.Default())
	require.NoError(t, vo.Configure(frameW, frameH, frameW, frameH, 0, imgfmt.I420))

	d.Fail("PutImage", va.StatusErrorOperationFailed)
	assert.False(t, vo.SubmitDecoded(picture(imgfmt.I420, frameW, frameH, red)))
	vo.PresentCurrentFrame()
	assert.Empty(t, d.Puts(), "nothing was queued")
}

func TestDrawSlice(t *testing.T) {
	vo, _, win := newOutput(t, config.Default())
	require.NoError(t, vo.Configure(frameW, frameH, frameW, frameH, 0, imgfmt.I420))

	half := frameH / 2
	top := picture(imgfmt.I420, frameW, half, red)
	bottom := picture(imgfmt.I420, frameW, half, white)
	require.True(t, vo.DrawSlice(top.Planes, top.Strides, frameW, half, 0, 0))
	require.True(t, vo.DrawSlice(bottom.Planes, bottom.Strides, frameW, half, 0, half))

	require.True(t, vo.SubmitDecoded(&vaout.Frame{Format: imgfmt.I420, Width: frameW, Height: frameH, Slices: true}))
	vo.PresentCurrentFrame()
	snap := win.Snapshot()
	assert.True(t, isRed(snap.RGBAAt(frameW/2, 4)))
	assert.True(t, isWhite(snap.RGBAAt(frameW/2, frameH-4)))
}

func TestFieldOrder(t *testing.T) {
	assert.True(t, vaout.FieldFlags(0).TopFieldFirst())
	assert.True(t, vaout.FieldTopFirst.TopFieldFirst(), "unordered")
	assert.True(t, (vaout.FieldOrdered | vaout.FieldTopFirst).TopFieldFirst())
	assert.False(t, vaout.FieldOrdered.TopFieldFirst())

	vo, d, _ := newOutput(t, config.Config{Mapping: config.MappingAuto, Deint: config.DeintBob})
	require.NoError(t, vo.Configure(frameW, frameH, frameW, frameH, 0, imgfmt.I420))
	f := picture(imgfmt.I420, frameW, frameH, white)
	f.Fields = vaout.FieldOrdered
	require.True(t, vo.SubmitDecoded(f))
	vo.PresentCurrentFrame()

	f.Fields = vaout.FieldOrdered | vaout.FieldTopFirst
	require.True(t, vo.SubmitDecoded(f))
	vo.PresentCurrentFrame()

	puts := d.Puts()
	require.Len(t, puts, 4)
	assert.Equal(t, va.TopField, puts[0].Flags.Field())
	assert.Equal(t, va.BottomField, puts[1].Flags.Field())
	assert.Equal(t, va.BottomField, puts[2].Flags.Field())
	assert.Equal(t, va.TopField, puts[3].Flags.Field())
}

func TestDeinterlaceControl(t *testing.T) {
	vo, _, _ := newOutput(t, config.Default())
	assert.Equal(t, int(config.DeintOff), vo.Deinterlace())
	vo.SetDeinterlace(true)
	assert.Equal(t, int(config.DeintBob), vo.Deinterlace())
	vo.SetDeinterlace(false)
	assert.Equal(t, int(config.DeintOff), vo.Deinterlace())

	first, _, _ := newOutput(t, config.Config{Mapping: config.MappingAuto, Deint: config.DeintFirstField})
	first.SetDeinterlace(false)
	first.SetDeinterlace(true)
	assert.Equal(t, int(config.DeintFirstField), first.Deinterlace())
}

func TestPauseRedrawsOnExpose(t *testing.T) {
	vo, d, win := newOutput(t, config.Default())
	require.NoError(t, vo.Configure(frameW, frameH, frameW, frameH, 0, imgfmt.I420))
	require.True(t, vo.SubmitDecoded(picture(imgfmt.I420, frameW, frameH, red)))
	vo.PresentCurrentFrame()
	require.Len(t, d.Puts(), 1)

	win.Expose()
	vo.HandleWindowEvents()
	assert.Len(t, d.Puts(), 1, "playing: the next frame repaints")

	vo.Pause()
	assert.True(t, vo.Paused())
	win.Expose()
	vo.HandleWindowEvents()
	puts := d.Puts()
	require.Len(t, puts, 2)
	assert.Equal(t, puts[0].Surface, puts[1].Surface)

	win.Resize(2*frameW, 2*frameH)
	vo.HandleWindowEvents()
	assert.Equal(t, image.Rect(0, 0, 2*frameW, 2*frameH), vo.Output())
	puts = d.Puts()
	require.Len(t, puts, 3)
	assert.Equal(t, vo.Output(), puts[2].Dst)

	vo.Resume()
	win.Expose()
	vo.HandleWindowEvents()
	assert.Len(t, d.Puts(), 3)
}

func TestAspectFit(t *testing.T) {
	vo, _, _ := newOutput(t, config.Default())
	require.NoError(t, vo.Configure(frameW, frameH, 2*frameW, frameH, 0, imgfmt.I420))
	assert.Equal(t, image.Rect(0, 12, 64, 36), vo.Output(), "letterboxed")
}

func TestFullscreen(t *testing.T) {
	vo, _, win := newOutput(t, config.Default())
	require.NoError(t, vo.Configure(frameW, frameH, frameW, frameH, vaout.ConfigFullscreen, imgfmt.I420))
	assert.True(t, win.Fullscreen())
	vo.Fullscreen()
	assert.False(t, win.Fullscreen())
}

func TestEqualizer(t *testing.T) {
	vo, _, _ := newOutput(t, config.Default())
	for _, name := range []string{"brightness", "Contrast", "SATURATION", "hue"} {
		for value := -100; value <= 100; value += 7 {
			require.NoError(t, vo.SetEqualizer(name, value))
			got, err := vo.GetEqualizer(name)
			require.NoError(t, err)
			assert.InDelta(t, value, got, 1, "%s=%d", name, value)
		}
	}

	_, err := vo.GetEqualizer("gamma")
	assert.ErrorIs(t, err, vaout.ErrNotImplemented)
	assert.ErrorIs(t, vo.SetEqualizer("gamma", 0), vaout.ErrNotImplemented)
}

func TestEqualizerClamps(t *testing.T) {
	vo, d, _ := newOutput(t, config.Default(), software.WithAttributes(
		va.DisplayAttribute{Type: va.DisplayAttribHue, MinValue: -180, MaxValue: 180,
			Flags: va.DisplayAttribGettable | va.DisplayAttribSettable},
	))

	tests := []struct {
		value  int
		want   int
		driver int
	}{
		{250, 100, 180},
		{-1000, -100, -180},
		{101, 100, 180},
	}
	for _, tt := range tests {
		require.NoError(t, vo.SetEqualizer("hue", tt.value))
		got, err := vo.GetEqualizer("hue")
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "value %d", tt.value)

		attrs := []va.DisplayAttribute{{Type: va.DisplayAttribHue}}
		require.NoError(t, d.GetDisplayAttributes(attrs))
		assert.Equal(t, tt.driver, attrs[0].Value, "value %d", tt.value)
	}
}

func TestEqualizerDriverLimits(t *testing.T) {
	vo, d, _ := newOutput(t, config.Default(), software.WithAttributes(
		va.DisplayAttribute{Type: va.DisplayAttribBrightness, MaxValue: 100, Value: 50, Flags: va.DisplayAttribGettable},
		va.DisplayAttribute{Type: va.DisplayAttribContrast, MinValue: 5, MaxValue: 5, Value: 5,
			Flags: va.DisplayAttribGettable | va.DisplayAttribSettable},
		va.DisplayAttribute{Type: va.DisplayAttribHue, MinValue: -180, MaxValue: 180,
			Flags: va.DisplayAttribGettable | va.DisplayAttribSettable},
	))

	got, err := vo.GetEqualizer("brightness")
	require.NoError(t, err)
	assert.Zero(t, got)
	assert.ErrorIs(t, vo.SetEqualizer("brightness", 10), vaout.ErrNotImplemented, "read only")

	_, err = vo.GetEqualizer("contrast")
	assert.ErrorIs(t, err, vaout.ErrNotImplemented, "empty range")

	_, err = vo.GetEqualizer("saturation")
	assert.ErrorIs(t, err, vaout.ErrNotImplemented, "not offered by the driver")

	d.Fail("SetDisplayAttributes", va.StatusErrorOperationFailed)
	err = vo.SetEqualizer("hue", 50)
	assert.ErrorIs(t, err, va.StatusErrorOperationFailed)
	got, err = vo.GetEqualizer("hue")
	require.NoError(t, err)
	assert.Zero(t, got, "a failed set keeps the old value")
}

func TestSubtitles(t *testing.T) {
	vo, d, win := newOutput(t, config.Default())
	require.NoError(t, vo.Configure(frameW, frameH, frameW, frameH, 0, imgfmt.I420))
	assert.Equal(t, overlay.Resolution{Width: frameW, Height: frameH}, vo.SubtitleResolution())

	vo.DrawSubtitleOverlay(overlay.Images{
		Bitmaps: []overlay.Bitmap{{Mask: fill(16*16, 0xff), W: 16, H: 16, Stride: 16, Color: 0xff000000}},
		Changed: overlay.Redrawn,
	})
	require.True(t, vo.SubmitDecoded(picture(imgfmt.I420, frameW, frameH, white)))
	vo.PresentCurrentFrame()

	snap := win.Snapshot()
	assert.True(t, isRed(snap.RGBAAt(4, 4)), "%v", snap.RGBAAt(4, 4))
	assert.True(t, isWhite(snap.RGBAAt(frameW-4, frameH-4)))

	puts := d.Puts()
	require.Len(t, puts, 1)
	assert.Empty(t, d.Associations(puts[0].Surface), "detached after the put")
	assert.Equal(t, 1, d.Calls("AssociateSubpicture"))
}

func TestOnScreenDisplay(t *testing.T) {
	vo, d, win := newOutput(t, config.Default())
	require.NoError(t, vo.Configure(frameW, frameH, frameW, frameH, 0, imgfmt.I420))

	// Opaque black block in the top-left corner.
	var osd overlay.Blocks
	osd.Set(overlay.Block{W: 8, H: 8, Stride: 8, Src: fill(64, 0), Alpha: fill(64, 1)})
	vo.DrawOverlay(&osd)

	require.True(t, vo.SubmitDecoded(picture(imgfmt.I420, frameW, frameH, white)))
	vo.PresentCurrentFrame()
	snap := win.Snapshot()
	assert.Less(t, snap.RGBAAt(2, 2).R, uint8(60))
	assert.True(t, isWhite(snap.RGBAAt(frameW-4, frameH-4)))
	assert.NotEmpty(t, d.Associations(d.Puts()[0].Surface))

	osd.Set()
	vo.DrawOverlay(&osd)
	assert.Empty(t, d.Associations(d.Puts()[0].Surface), "an empty display is disabled")
}

func TestStatsOverlay(t *testing.T) {
	var cpu time.Duration
	now := time.Unix(0, 0)
	sampler := stats.New(
		stats.WithCPUTime(func() (time.Duration, error) { cpu += 100 * time.Millisecond; return cpu, nil }),
		stats.WithClock(func() time.Time { now = now.Add(time.Second); return now }),
		stats.WithCPUInfo(""),
	)
	d := software.New()
	win := window.NewHeadless(d, frameW, frameH)
	cfg := config.Default()
	cfg.Stats = true
	vo, err := vaout.New(d, win, cfg, vaout.WithStats(sampler))
	require.NoError(t, err)
	defer vo.Teardown()
	require.NoError(t, vo.Configure(frameW, frameH, frameW, frameH, 0, imgfmt.I420))

	for range stats.Interval {
		require.True(t, vo.SubmitDecoded(picture(imgfmt.I420, frameW, frameH, white)))
		vo.PresentCurrentFrame()
	}
	vo.DrawStatsOverlay()
	require.True(t, vo.SubmitDecoded(picture(imgfmt.I420, frameW, frameH, white)))
	vo.PresentCurrentFrame()

	snap := win.Snapshot()
	assert.Less(t, snap.RGBAAt(1, 1).R, uint8(60), "bar background")
	assert.True(t, isWhite(snap.RGBAAt(frameW/2, frameH-4)), "below the bar")
}

func TestStatsOverlayAccelerated(t *testing.T) {
	cfg, err := config.Parse("stats")
	require.NoError(t, err)
	vo, _, _ := newOutput(t, cfg)
	require.NoError(t, vo.Configure(frameW, frameH, frameW, frameH, 0, imgfmt.VAAPIH264))

	f := &vaout.Frame{Format: imgfmt.VAAPIH264, Width: frameW, Height: frameH, Numbered: true}
	for range 2 * stats.Interval {
		require.True(t, vo.GetDecodeSurface(f))
		require.True(t, vo.SubmitDecoded(f))
		require.NotPanics(t, vo.DrawStatsOverlay)
		vo.PresentCurrentFrame()
	}
}

func TestGLBackend(t *testing.T) {
	d := software.New()
	win := window.NewHeadless(d, frameW, frameH)
	cfg := config.Default()
	cfg.GL = true

	_, err := vaout.New(d, win, cfg)
	require.ErrorIs(t, err, present.ErrNoGLContext)

	rec := glrecord.New(frameW, frameH)
	vo, err := vaout.New(d, win, cfg, vaout.WithGLContext(rec))
	require.NoError(t, err)
	defer vo.Teardown()
	assert.Equal(t, present.BackendGL, vo.Backend().Name())

	require.NoError(t, vo.Configure(frameW, frameH, frameW, frameH, 0, imgfmt.I420))
	require.True(t, vo.SubmitDecoded(picture(imgfmt.I420, frameW, frameH, red)))
	vo.PresentCurrentFrame()
	assert.Equal(t, 1, rec.Swaps())
	assert.True(t, isRed(rec.Frame().RGBAAt(frameW/2, frameH/2)))
	assert.Empty(t, d.Puts(), "nothing is blitted")
}

func TestExclusiveBackends(t *testing.T) {
	d := software.New()
	cfg := config.Default()
	cfg.GL, cfg.XRender = true, true
	_, err := vaout.New(d, window.NewHeadless(d, frameW, frameH), cfg)
	assert.ErrorIs(t, err, config.ErrExclusiveBackends)
}

func TestTeardown(t *testing.T) {
	d := software.New()
	vo, err := vaout.New(d, window.NewHeadless(d, frameW, frameH), config.Default())
	require.NoError(t, err)
	require.NoError(t, vo.Configure(frameW, frameH, frameW, frameH, 0, imgfmt.VAAPIH264))

	vo.Teardown()
	assert.Equal(t, 1, d.Calls("DestroySurfaces"))
	assert.Equal(t, 1, d.Calls("DestroyContext"))
	assert.Equal(t, 1, d.Calls("Terminate"))

	vo.Teardown()
	assert.Equal(t, 1, d.Calls("Terminate"), "idempotent")
	assert.ErrorIs(t, vo.Configure(frameW, frameH, frameW, frameH, 0, imgfmt.I420), vaout.ErrNotConfigured)
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"image"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/vaout/va"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDisplay(t *testing.T, opts ...Option) *Display {
	t.Helper()
	d := New(opts...)
	_, _, err := d.Initialize()
	require.NoError(t, err)
	return d
}

func solid(w, h int, y, cb, cr uint8) *image.YCbCr {
	img := image.NewYCbCr(image.Rect(0, 0, w, h), image.YCbCrSubsampleRatio420)
	for i := range img.Y {
		img.Y[i] = y
	}
	for i := range img.Cb {
		img.Cb[i], img.Cr[i] = cb, cr
	}
	return img
}

func TestRequiresInitialize(t *testing.T) {
	d := New()
	_, err := d.CreateSurfaces(16, 16, va.RTFormatYUV420, 1)
	assert.Equal(t, va.StatusErrorInvalidDisplay, va.StatusOf(err))
}

func TestSurfaceLifecycle(t *testing.T) {
	d := newDisplay(t)

	ids, err := d.CreateSurfaces(64, 32, va.RTFormatYUV420, 3)
	require.NoError(t, err)
	require.Len(t, ids, 3)

	img, err := d.DeriveImage(ids[0])
	require.NoError(t, err)
	assert.Equal(t, va.FourCCNV12, img.Format.FourCC)
	assert.Equal(t, 64*32*3/2, img.DataSize)

	surfaces, images, _ := d.Live()
	assert.Equal(t, 3, surfaces)
	assert.Equal(t, 1, images)

	require.NoError(t, d.DestroySurfaces(ids))
	surfaces, images, _ = d.Live()
	assert.Zero(t, surfaces)
	assert.Zero(t, images, "derived image must die with its surface")

	_, err = d.CreateSurfaces(64, 32, va.RTFormatYUV422, 1)
	assert.Equal(t, va.StatusErrorUnsupportedRTFormat, va.StatusOf(err))
}

func TestPutImagePlaneOrder(t *testing.T) {
	tests := []struct {
		fourcc va.FourCC
		p1, p2 byte
	}{
		{va.FourCCI420, 50, 200}, // U then V
		{va.FourCCYV12, 200, 50}, // V then U
	}
	for _, tt := range tests {
		t.Run(tt.fourcc.String(), func(t *testing.T) {
			d := newDisplay(t)
			ids, err := d.CreateSurfaces(8, 8, va.RTFormatYUV420, 1)
			require.NoError(t, err)
			img, err := d.CreateImage(Format(tt.fourcc), 8, 8)
			require.NoError(t, err)

			buf, err := d.MapBuffer(img.Buf)
			require.NoError(t, err)
			for i := range buf {
				switch {
				case i < img.Offsets[1]:
					buf[i] = 100
				case i < img.Offsets[2]:
					buf[i] = tt.p1
				default:
					buf[i] = tt.p2
				}
			}
			require.NoError(t, d.UnmapBuffer(img.Buf))
			require.NoError(t, d.PutImage(ids[0], img.ID, va.FullRect(8, 8), va.FullRect(8, 8)))

			got := d.Surface(ids[0])
			assert.Equal(t, uint8(100), got.Y[0])
			assert.Equal(t, uint8(50), got.Cb[0])
			assert.Equal(t, uint8(200), got.Cr[0])
		})
	}
}

func TestUnmapWithoutMap(t *testing.T) {
	d := newDisplay(t)
	img, err := d.CreateImage(Format(va.FourCCNV12), 4, 4)
	require.NoError(t, err)
	assert.Equal(t, va.StatusErrorOperationFailed, va.StatusOf(d.UnmapBuffer(img.Buf)))
}

func TestPutSurfaceScalesIntoDrawable(t *testing.T) {
	d := newDisplay(t)
	ids, err := d.CreateSurfaces(16, 16, va.RTFormatYUV420, 1)
	require.NoError(t, err)
	require.NoError(t, d.WriteSurface(ids[0], solid(16, 16, 235, 128, 128)))

	dst := image.NewRGBA(image.Rect(0, 0, 64, 64))
	dr := d.AttachDrawable(dst)

	out := image.Rect(16, 16, 48, 48)
	require.NoError(t, d.PutSurface(ids[0], dr, va.FullRect(16, 16), out, va.ClearDrawable|va.SrcBT601))

	assert.Equal(t, uint8(255), dst.RGBAAt(32, 32).R, "inside the output rect")
	assert.Equal(t, uint8(0), dst.RGBAAt(4, 4).R, "cleared border")

	puts := d.Puts()
	require.Len(t, puts, 1)
	assert.Equal(t, out, puts[0].Dst)
}

func TestPutSurfaceField(t *testing.T) {
	d := newDisplay(t)
	ids, err := d.CreateSurfaces(8, 8, va.RTFormatYUV420, 1)
	require.NoError(t, err)

	// Even lines white, odd lines black.
	src := solid(8, 8, 16, 128, 128)
	for y := 0; y < 8; y += 2 {
		for x := range 8 {
			src.Y[y*src.YStride+x] = 235
		}
	}
	require.NoError(t, d.WriteSurface(ids[0], src))

	top := image.NewRGBA(image.Rect(0, 0, 8, 8))
	bottom := image.NewRGBA(image.Rect(0, 0, 8, 8))
	require.NoError(t, d.PutSurface(ids[0], d.AttachDrawable(top), va.FullRect(8, 8), va.FullRect(8, 8), va.TopField|va.FilterScalingFast))
	require.NoError(t, d.PutSurface(ids[0], d.AttachDrawable(bottom), va.FullRect(8, 8), va.FullRect(8, 8), va.BottomField|va.FilterScalingFast))

	for y := range 8 {
		assert.Equal(t, uint8(255), top.RGBAAt(3, y).G, "top field line %d", y)
		assert.Equal(t, uint8(0), bottom.RGBAAt(3, y).G, "bottom field line %d", y)
	}
}

func TestPutSurfaceRejectsUnsupportedColorStandard(t *testing.T) {
	d := newDisplay(t, WithPutFlags(va.FieldMask|va.SrcBT601))
	ids, err := d.CreateSurfaces(8, 8, va.RTFormatYUV420, 1)
	require.NoError(t, err)
	dr := d.AttachDrawable(image.NewRGBA(image.Rect(0, 0, 8, 8)))

	err = d.PutSurface(ids[0], dr, va.FullRect(8, 8), va.FullRect(8, 8), va.SrcBT709)
	assert.Equal(t, va.StatusErrorFlagNotSupported, va.StatusOf(err))
	assert.NoError(t, d.PutSurface(ids[0], dr, va.FullRect(8, 8), va.FullRect(8, 8), va.SrcBT601|va.FilterScalingHQ))
}

func TestSubpictureBlend(t *testing.T) {
	d := newDisplay(t)
	ids, err := d.CreateSurfaces(8, 8, va.RTFormatYUV420, 1)
	require.NoError(t, err)

	img, err := d.CreateImage(Format(va.FourCCRGBA), 8, 8)
	require.NoError(t, err)
	buf, err := d.MapBuffer(img.Buf)
	require.NoError(t, err)
	for i := 0; i < len(buf); i += 4 {
		buf[i], buf[i+1], buf[i+2], buf[i+3] = 0xff, 0, 0, 0xff
	}
	require.NoError(t, d.UnmapBuffer(img.Buf))

	sub, err := d.CreateSubpicture(img.ID)
	require.NoError(t, err)
	require.NoError(t, d.AssociateSubpicture(sub, ids, image.Rect(0, 0, 4, 8), image.Rect(0, 0, 4, 8), 0))
	assert.Equal(t, []va.SubpictureID{sub}, d.Associations(ids[0]))

	dst := image.NewRGBA(image.Rect(0, 0, 8, 8))
	require.NoError(t, d.PutSurface(ids[0], d.AttachDrawable(dst), va.FullRect(8, 8), va.FullRect(8, 8), va.FilterScalingFast))
	assert.Equal(t, uint8(0xff), dst.RGBAAt(1, 4).R)
	assert.Equal(t, uint8(0), dst.RGBAAt(6, 4).R)

	require.NoError(t, d.DeassociateSubpicture(sub, ids))
	assert.Empty(t, d.Associations(ids[0]))
	require.NoError(t, d.DestroySubpicture(sub))
}

func TestPalettedImage(t *testing.T) {
	d := newDisplay(t, WithPaletteOrder("YUV"))
	img, err := d.CreateImage(Format(va.FourCCIA44), 4, 4)
	require.NoError(t, err)
	assert.Equal(t, 16, img.NumPaletteEntries)
	assert.Equal(t, 3, img.EntryBytes)
	assert.Equal(t, [4]byte{'Y', 'U', 'V', 0}, img.ComponentOrder)

	assert.Error(t, d.SetImagePalette(img.ID, make([]byte, 3)))
	assert.NoError(t, d.SetImagePalette(img.ID, make([]byte, 48)))
}

func TestFailAfter(t *testing.T) {
	d := newDisplay(t)
	d.FailAfter("CreateSurfaces", 2, va.StatusErrorAllocationFailed)

	for range 2 {
		_, err := d.CreateSurfaces(8, 8, va.RTFormatYUV420, 1)
		require.NoError(t, err)
	}
	_, err := d.CreateSurfaces(8, 8, va.RTFormatYUV420, 1)
	assert.Equal(t, va.StatusErrorAllocationFailed, va.StatusOf(err))
	assert.Equal(t, 3, d.Calls("CreateSurfaces"))

	d.Heal("CreateSurfaces")
	_, err = d.CreateSurfaces(8, 8, va.RTFormatYUV420, 1)
	assert.NoError(t, err)
}

func TestDisplayAttributes(t *testing.T) {
	d := newDisplay(t)

	attrs, err := d.QueryDisplayAttributes()
	require.NoError(t, err)
	assert.Len(t, attrs, 4, "direct-surface is not listed")

	set := []va.DisplayAttribute{{Type: va.DisplayAttribBrightness, Value: 1000}}
	require.NoError(t, d.SetDisplayAttributes(set))
	get := []va.DisplayAttribute{{Type: va.DisplayAttribBrightness}}
	require.NoError(t, d.GetDisplayAttributes(get))
	assert.Equal(t, 255, get[0].Value, "clamped to the range")

	ds := []va.DisplayAttribute{{Type: va.DisplayAttribDirectSurface}}
	require.NoError(t, d.GetDisplayAttributes(ds))
	assert.Equal(t, 1, ds[0].Value)
	assert.Error(t, d.SetDisplayAttributes(ds), "direct-surface is read only")
}

type texture struct {
	w, h   int
	format gputypes.TextureFormat
	data   []byte
}

func (t *texture) Width() int                     { return t.w }
func (t *texture) Height() int                    { return t.h }
func (t *texture) Format() gputypes.TextureFormat { return t.format }
func (t *texture) UpdateData(b []byte) error {
	t.data = append(t.data[:0], b...)
	return nil
}

func TestGLXCopyAndBind(t *testing.T) {
	d := newDisplay(t)
	ids, err := d.CreateSurfaces(8, 8, va.RTFormatYUV420, 1)
	require.NoError(t, err)
	require.NoError(t, d.WriteSurface(ids[0], solid(8, 8, 81, 90, 240))) // red-ish

	tex := &texture{w: 8, h: 8, format: gputypes.TextureFormatBGRA8Unorm}
	gl, err := d.CreateSurfaceGLX(tex)
	require.NoError(t, err)

	require.NoError(t, d.CopySurfaceGLX(gl, ids[0], va.FramePicture))
	require.Len(t, tex.data, 8*8*4)
	assert.Greater(t, tex.data[2], tex.data[0], "BGRA: red lands in byte 2")

	tex.data = nil
	require.NoError(t, d.AssociateSurfaceGLX(gl, ids[0], va.FramePicture))
	require.NoError(t, d.BeginRenderSurfaceGLX(gl))
	require.NoError(t, d.EndRenderSurfaceGLX(gl))
	assert.Len(t, tex.data, 8*8*4)
	require.NoError(t, d.DestroySurfaceGLX(gl))
}

func TestGLXCopyUnimplemented(t *testing.T) {
	d := newDisplay(t, WithoutGLXCopy())
	ids, err := d.CreateSurfaces(8, 8, va.RTFormatYUV420, 1)
	require.NoError(t, err)
	gl, err := d.CreateSurfaceGLX(&texture{w: 8, h: 8, format: gputypes.TextureFormatRGBA8Unorm})
	require.NoError(t, err)
	assert.True(t, va.IsUnimplemented(d.CopySurfaceGLX(gl, ids[0], 0)))
}

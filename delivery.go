// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vaout

import (
	"image"

	"github.com/gogpu/vaout/imgfmt"
	"github.com/gogpu/vaout/surface"
	"github.com/gogpu/vaout/va"
)

// GetDecodeSurface acquires the surface a numbered picture of an
// accelerated format is decoded into and stores it in f. Under LRU
// mapping the surface f held before goes back to the pool first.
func (v *VideoOutput) GetDecodeSurface(f *Frame) bool {
	if !v.configured || !f.Numbered || !f.Format.IsAccelerated() {
		return false
	}
	var h surface.Handle
	if v.pool.DirectMapping() {
		h = v.pool.AcquireIndex(f.Number)
	} else {
		prev := f.Surface
		if _, ok := v.pool.Lookup(prev); !ok {
			// Held over from a previous configuration.
			prev = surface.Handle{}
		}
		h = v.pool.Acquire(prev)
	}
	s, _ := v.pool.Lookup(h)
	f.Surface, f.SurfaceID = h, s.ID
	return true
}

// SubmitDecoded queues a finished picture for the next presentation.
// Software pictures are uploaded into the surface of the current ring
// slot first. A failed upload drops the picture.
func (v *VideoOutput) SubmitDecoded(f *Frame) bool {
	if !v.configured {
		return false
	}
	var h surface.Handle
	if v.format.IsAccelerated() {
		h = f.Surface
		if _, ok := v.pool.Lookup(h); !ok {
			v.log.Warn("vaout: frame without a decode surface dropped")
			return false
		}
	} else {
		h = v.pool.At(v.ring.CurrentIndex())
		if !v.putImage(f, h) {
			return false
		}
	}

	v.pool.SetState(h, surface.Queued)
	if old := v.ring.Queue(h); old.Valid() && old != h {
		v.pool.Release(old)
	}
	v.target.TopFieldFirst = f.Fields.TopFieldFirst()

	if v.cfg.Stats && v.stats != nil {
		v.stats.Frame()
	}
	return true
}

// DrawSlice uploads a w x h part of a software picture at (x, y) into
// the surface of the current ring slot.
func (v *VideoOutput) DrawSlice(planes [3][]byte, strides [3]int, w, h, x, y int) bool {
	if !v.configured || v.format.IsAccelerated() {
		return false
	}
	s, _ := v.pool.Lookup(v.pool.At(v.ring.CurrentIndex()))
	return v.upload(s, planes, strides, w, h, x, y)
}

func (v *VideoOutput) putImage(f *Frame, h surface.Handle) bool {
	if !f.Format.IsPlanarYUV() {
		return false
	}
	s, _ := v.pool.Lookup(h)
	if !f.Slices && !v.upload(s, f.Planes, f.Strides, f.Width, f.Height, 0, 0) {
		return false
	}
	if s.Bound {
		return true
	}
	r := image.Rect(f.X, f.Y, f.X+f.Width, f.Y+f.Height)
	err := v.d.PutImage(s.ID, s.Image.ID, r, r)
	return va.Check(v.log, err, "vaPutImage()")
}

// upload copies a picture area into the surface image. Luma is copied
// at (x, y); chroma at half the position and size.
func (v *VideoOutput) upload(s *surface.Surface, planes [3][]byte, strides [3]int, w, h, x, y int) bool {
	img := s.Image
	if !img.Valid() {
		return false
	}
	data, err := v.d.MapBuffer(img.Buf)
	if !va.Check(v.log, err, "vaMapBuffer()") {
		return false
	}

	copyPlane(data, img.Offsets[0]+y*img.Pitches[0]+x, img.Pitches[0], planes[0], strides[0], w, h)

	cx, cy := x/2, y/2
	cw, ch := (w+1)/2, (h+1)/2
	switch img.Format.FourCC {
	case va.FourCCNV12:
		copyPlane(data, img.Offsets[1]+cy*img.Pitches[1]+2*cx, img.Pitches[1], planes[1], strides[1], 2*cw, ch)
	default:
		u, vp := 1, 2
		if v.format.Has(imgfmt.QuirkSwapUV) {
			u, vp = 2, 1
		}
		copyPlane(data, img.Offsets[u]+cy*img.Pitches[u]+cx, img.Pitches[u], planes[1], strides[1], cw, ch)
		copyPlane(data, img.Offsets[vp]+cy*img.Pitches[vp]+cx, img.Pitches[vp], planes[2], strides[2], cw, ch)
	}

	return va.Check(v.log, v.d.UnmapBuffer(img.Buf), "vaUnmapBuffer()")
}

// copyPlane copies rows of n bytes from src into dst starting at off.
// Rows that do not fit either buffer are cut short.
func copyPlane(dst []byte, off, pitch int, src []byte, stride, n, rows int) {
	for r := range rows {
		d := off + r*pitch
		s := r * stride
		if d < 0 || d >= len(dst) || s >= len(src) {
			return
		}
		copy(dst[d:min(d+n, len(dst))], src[s:min(s+n, len(src))])
	}
}

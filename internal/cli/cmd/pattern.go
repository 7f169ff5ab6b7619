// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package cmd

import (
	"image"

	"github.com/gogpu/vaout"
	"github.com/gogpu/vaout/imgfmt"
)

// bars are the 75% color bars in BT.601 studio range YCbCr.
var bars = [...][3]byte{
	{180, 128, 128}, // white
	{162, 44, 142},  // yellow
	{131, 156, 44},  // cyan
	{112, 72, 58},   // green
	{84, 184, 198},  // magenta
	{65, 100, 212},  // red
	{35, 212, 114},  // blue
}

// colorBars returns a 4:2:0 picture of vertical color bars scrolled
// left by shift pixels.
func colorBars(w, h, shift int) *image.YCbCr {
	img := image.NewYCbCr(image.Rect(0, 0, w, h), image.YCbCrSubsampleRatio420)
	bar := func(x int) [3]byte {
		x = ((x+shift)%w + w) % w
		return bars[x*len(bars)/w]
	}
	for y := range h {
		for x := range w {
			img.Y[y*img.YStride+x] = bar(x)[0]
		}
	}
	for y := range (h + 1) / 2 {
		for x := range (w + 1) / 2 {
			c := bar(2 * x)
			img.Cb[y*img.CStride+x] = c[1]
			img.Cr[y*img.CStride+x] = c[2]
		}
	}
	return img
}

// softwareFrame lays img out in format. NV12 interleaves the chroma in
// the second plane.
func softwareFrame(format imgfmt.Format, img *image.YCbCr) *vaout.Frame {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	f := &vaout.Frame{Format: format, Width: w, Height: h}
	f.Planes[0], f.Strides[0] = img.Y, img.YStride
	if format != imgfmt.NV12 {
		f.Planes[1], f.Strides[1] = img.Cb, img.CStride
		f.Planes[2], f.Strides[2] = img.Cr, img.CStride
		return f
	}
	cw, ch := (w+1)/2, (h+1)/2
	uv := make([]byte, 2*cw*ch)
	for y := range ch {
		for x := range cw {
			uv[2*(y*cw+x)] = img.Cb[y*img.CStride+x]
			uv[2*(y*cw+x)+1] = img.Cr[y*img.CStride+x]
		}
	}
	f.Planes[1], f.Strides[1] = uv, 2*cw
	return f
}

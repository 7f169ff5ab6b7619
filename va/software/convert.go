// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"image"
	"image/color"

	"github.com/gogpu/vaout/va"
)

// matrix holds limited range YUV to RGB coefficients scaled by 1<<16.
type matrix struct {
	y, rv, gu, gv, bu int32
}

var (
	bt601    = matrix{y: 76309, rv: 104597, gu: 25675, gv: 53279, bu: 132201}
	bt709    = matrix{y: 76309, rv: 117489, gu: 13975, gv: 34925, bu: 138438}
	smpte240 = matrix{y: 76309, rv: 117556, gu: 16907, gv: 35599, bu: 136261}
)

func matrixFor(cs va.PutFlags) matrix {
	switch cs {
	case va.SrcBT709:
		return bt709
	case va.SrcSMPTE240:
		return smpte240
	default:
		return bt601
	}
}

func clamp8(v int32) uint8 {
	v >>= 16
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func (m matrix) rgb(y, u, v uint8) (r, g, b uint8) {
	c := (int32(y) - 16) * m.y
	d := int32(u) - 128
	e := int32(v) - 128
	return clamp8(c + m.rv*e + 1<<15),
		clamp8(c - m.gu*d - m.gv*e + 1<<15),
		clamp8(c + m.bu*d + 1<<15)
}

// rgba converts the surface to RGBA with the given color standard.
func (s *surface) rgba(cs va.PutFlags) *image.RGBA {
	m := matrixFor(cs)
	out := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	uv := s.data[s.chromaOffset():]
	for y := range s.height {
		row := out.Pix[y*out.Stride:]
		crow := uv[(y/2)*s.chromaPitch():]
		for x := range s.width {
			r, g, b := m.rgb(s.data[y*s.width+x], crow[(x/2)*2], crow[(x/2)*2+1])
			row[4*x+0], row[4*x+1], row[4*x+2], row[4*x+3] = r, g, b, 0xff
		}
	}
	return out
}

// field returns the even (top) or odd (bottom) lines of img.
func field(img *image.RGBA, bottom bool) *image.RGBA {
	h := img.Rect.Dy()
	start := 0
	if bottom {
		start = 1
	}
	out := image.NewRGBA(image.Rect(0, 0, img.Rect.Dx(), (h-start+1)/2))
	for y, sy := 0, start; sy < h; y, sy = y+1, sy+2 {
		copy(out.Pix[y*out.Stride:(y+1)*out.Stride], img.Pix[sy*img.Stride:])
	}
	return out
}

// paletteColor decodes palette entry i according to the component order.
func paletteColor(palette []byte, entries, entryBytes int, order [4]byte, i int) color.NRGBA {
	if entryBytes == 0 || len(palette) < (i+1)*entryBytes {
		g := uint8(i * 0xff / max(entries-1, 1))
		return color.NRGBA{R: g, G: g, B: g, A: 0xff}
	}
	e := palette[i*entryBytes : (i+1)*entryBytes]
	var c [256]uint8
	for k := 0; k < entryBytes && k < len(order); k++ {
		c[order[k]] = e[k]
	}
	if order[0] == 'Y' || order[1] == 'Y' || order[2] == 'Y' {
		r, g, b := bt601.rgb(c['Y'], c['U'], c['V'])
		return color.NRGBA{R: r, G: g, B: b, A: 0xff}
	}
	return color.NRGBA{R: c['R'], G: c['G'], B: c['B'], A: 0xff}
}

// nrgba decodes a subpicture image into straight-alpha RGBA.
// Paletted formats store coverage in the alpha nibble or byte.
func (obj *imageObj) nrgba() *image.NRGBA {
	img := &obj.desc
	out := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
	entries := img.NumPaletteEntries
	lookup := func(i int, a uint8) color.NRGBA {
		c := paletteColor(obj.palette, entries, img.EntryBytes, img.ComponentOrder, min(i, max(entries-1, 0)))
		c.A = a
		return c
	}
	for y := range img.Height {
		src := obj.data[img.Offsets[0]+y*img.Pitches[0]:]
		for x := range img.Width {
			var c color.NRGBA
			switch img.Format.FourCC {
			case va.FourCCIA44:
				b := src[x]
				c = lookup(int(b>>4), (b&0x0f)*0x11)
			case va.FourCCAI44:
				b := src[x]
				c = lookup(int(b&0x0f), (b>>4)*0x11)
			case va.FourCCIA88:
				c = lookup(int(src[2*x]), src[2*x+1])
			case va.FourCCAI88:
				c = lookup(int(src[2*x+1]), src[2*x])
			case va.FourCCRGBA:
				p := src[4*x : 4*x+4]
				c = color.NRGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
			case va.FourCCBGRA:
				p := src[4*x : 4*x+4]
				c = color.NRGBA{R: p[2], G: p[1], B: p[0], A: p[3]}
			}
			out.SetNRGBA(x, y, c)
		}
	}
	return out
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glrecord

import (
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/vaout/present"
)

func unit(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return uint8(math.Round(v * 255))
}

func toRGBA(c gputypes.Color) color.RGBA {
	return color.RGBA{R: unit(c.R), G: unit(c.G), B: unit(c.B), A: unit(c.A)}
}

// blend composites the straight color c with opacity a over dst(x, y).
func blend(dst *image.RGBA, x, y int, c gputypes.Color, a float64) {
	if a <= 0 {
		return
	}
	if a > 1 {
		a = 1
	}
	i := dst.PixOffset(x, y)
	p := dst.Pix[i : i+4 : i+4]
	mix := func(d uint8, s float64) uint8 {
		return unit(s*a + float64(d)/255*(1-a))
	}
	p[0] = mix(p[0], c.R)
	p[1] = mix(p[1], c.G)
	p[2] = mix(p[2], c.B)
	p[3] = unit(a + float64(p[3])/255*(1-a))
}

func lerp(a, b gputypes.Color, f float64) gputypes.Color {
	return gputypes.Color{
		R: a.R + (b.R-a.R)*f,
		G: a.G + (b.G-a.G)*f,
		B: a.B + (b.B-a.B)*f,
		A: a.A + (b.A-a.A)*f,
	}
}

// colorAt evaluates the gradient at offset f.
func colorAt(stops []present.GradientStop, f float64) gputypes.Color {
	if len(stops) == 0 {
		return gputypes.Color{}
	}
	if f <= stops[0].Offset {
		return stops[0].Color
	}
	for i := 1; i < len(stops); i++ {
		a, b := stops[i-1], stops[i]
		if f <= b.Offset {
			if b.Offset == a.Offset {
				return b.Color
			}
			return lerp(a.Color, b.Color, (f-a.Offset)/(b.Offset-a.Offset))
		}
	}
	return stops[len(stops)-1].Color
}

func (r *Recorder) gradient(rect image.Rectangle, stops []present.GradientStop) {
	clip := rect.Intersect(r.back.Rect)
	for y := clip.Min.Y; y < clip.Max.Y; y++ {
		c := colorAt(stops, (float64(y-rect.Min.Y)+0.5)/float64(rect.Dy()))
		for x := clip.Min.X; x < clip.Max.X; x++ {
			blend(r.back, x, y, c, c.A)
		}
	}
}

// quad rasterizes an affine textured quad. Corners 1 and 3 span the
// parallelogram from corner 0; texture coordinates and opacity are
// interpolated bilinearly and texels sampled nearest.
func (r *Recorder) quad(t *Texture, q present.Quad, m present.Matrix) {
	var xs, ys [4]float64
	for i, v := range q {
		xs[i], ys[i] = m.TransformPoint(v.X, v.Y)
	}
	basis := present.Matrix{
		A: xs[1] - xs[0], B: xs[3] - xs[0], C: xs[0],
		D: ys[1] - ys[0], E: ys[3] - ys[0], F: ys[0],
	}
	if math.Abs(basis.A*basis.E-basis.B*basis.D) < 1e-9 {
		return
	}
	inv := basis.Invert()

	bounds := image.Rect(
		int(math.Floor(min(xs[0], xs[1], xs[2], xs[3]))),
		int(math.Floor(min(ys[0], ys[1], ys[2], ys[3]))),
		int(math.Ceil(max(xs[0], xs[1], xs[2], xs[3]))),
		int(math.Ceil(max(ys[0], ys[1], ys[2], ys[3]))),
	).Intersect(r.back.Rect)

	t.mu.Lock()
	defer t.mu.Unlock()
	tw, th := t.Width(), t.Height()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			s, v := inv.TransformPoint(float64(x)+0.5, float64(y)+0.5)
			if s < 0 || s > 1 || v < 0 || v > 1 {
				continue
			}
			w := [4]float64{(1 - s) * (1 - v), s * (1 - v), s * v, (1 - s) * v}
			var u, tv, a float64
			for i := range q {
				u += w[i] * q[i].U
				tv += w[i] * q[i].V
				a += w[i] * q[i].Alpha
			}
			tx := min(max(int(u*float64(tw)), 0), tw-1)
			ty := min(max(int(tv*float64(th)), 0), th-1)
			c := t.texel(tx, ty)
			src := gputypes.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255, A: 1}
			blend(r.back, x, y, src, a*float64(c.A)/255)
		}
	}
}

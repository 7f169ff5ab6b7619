// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glrecord

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/vaout/present"
	"github.com/gogpu/vaout/va"
)

// ErrTextureFormat is returned for textures the rasterizer cannot sample.
var ErrTextureFormat = errors.New("glrecord: unsupported texture format")

// Recorder records GL calls and rasterizes them.
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	commands []Command

	matrix present.Matrix
	stack  []present.Matrix

	back, front *image.RGBA
	textures    map[*Texture]struct{}
	swaps       int
	swapErr     error
}

// New returns a Recorder with a width x height framebuffer.
func New(width, height int) *Recorder {
	r := &Recorder{
		matrix:   present.Identity(),
		textures: make(map[*Texture]struct{}),
	}
	r.resize(width, height)
	return r
}

func (r *Recorder) resize(width, height int) {
	r.back = image.NewRGBA(image.Rect(0, 0, width, height))
	r.front = image.NewRGBA(image.Rect(0, 0, width, height))
}

func (r *Recorder) record(c Command) { r.commands = append(r.commands, c) }

// Commands returns the recorded calls.
func (r *Recorder) Commands() []Command { return r.commands }

// Count returns how many calls of type t were recorded.
func (r *Recorder) Count(t CommandType) int {
	n := 0
	for _, c := range r.commands {
		if c.Type() == t {
			n++
		}
	}
	return n
}

// Reset forgets the recorded calls. Buffers and textures are kept.
func (r *Recorder) Reset() { r.commands = r.commands[:0] }

// Swaps returns the number of successful swaps.
func (r *Recorder) Swaps() int { return r.swaps }

// Textures returns the number of live textures.
func (r *Recorder) Textures() int { return len(r.textures) }

// Depth returns the matrix stack depth.
func (r *Recorder) Depth() int { return len(r.stack) }

// FailSwap makes every following Swap return err. A nil err heals.
func (r *Recorder) FailSwap(err error) { r.swapErr = err }

// Frame returns a copy of the front buffer: what the last swap showed.
func (r *Recorder) Frame() *image.RGBA {
	out := image.NewRGBA(r.front.Rect)
	copy(out.Pix, r.front.Pix)
	return out
}

// CreateTexture implements present.GLContext.
func (r *Recorder) CreateTexture(desc gputypes.TextureDescriptor) (va.GLTexture, error) {
	r.record(CreateTextureCommand{Desc: desc})
	switch desc.Format {
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatBGRA8Unorm:
	default:
		return nil, fmt.Errorf("%w: %v", ErrTextureFormat, desc.Format)
	}
	if desc.Size.Width == 0 || desc.Size.Height == 0 {
		return nil, errors.New("glrecord: empty texture")
	}
	if !desc.Usage.Contains(gputypes.TextureUsageTextureBinding) {
		return nil, errors.New("glrecord: texture cannot be sampled")
	}
	t := &Texture{
		desc: desc,
		pix:  make([]byte, 4*int(desc.Size.Width)*int(desc.Size.Height)),
	}
	r.textures[t] = struct{}{}
	return t, nil
}

// DestroyTexture implements present.GLContext.
func (r *Recorder) DestroyTexture(tex va.GLTexture) {
	t, _ := tex.(*Texture)
	r.record(DestroyTextureCommand{Texture: t})
	delete(r.textures, t)
}

// Viewport implements present.GLContext. A new size reallocates both
// buffers.
func (r *Recorder) Viewport(width, height int) {
	r.record(ViewportCommand{Width: width, Height: height})
	if width != r.back.Rect.Dx() || height != r.back.Rect.Dy() {
		r.resize(width, height)
	}
}

// Clear implements present.GLContext.
func (r *Recorder) Clear(c gputypes.Color) {
	r.record(ClearCommand{Color: c})
	px := toRGBA(c)
	for i := 0; i < len(r.back.Pix); i += 4 {
		r.back.Pix[i], r.back.Pix[i+1], r.back.Pix[i+2], r.back.Pix[i+3] = px.R, px.G, px.B, px.A
	}
}

// PushMatrix implements present.GLContext.
func (r *Recorder) PushMatrix(m present.Matrix) {
	r.stack = append(r.stack, r.matrix)
	r.matrix = r.matrix.Multiply(m)
	r.record(PushMatrixCommand{Matrix: r.matrix})
}

// PopMatrix implements present.GLContext. Popping an empty stack keeps
// the identity.
func (r *Recorder) PopMatrix() {
	r.record(PopMatrixCommand{})
	if n := len(r.stack); n > 0 {
		r.matrix = r.stack[n-1]
		r.stack = r.stack[:n-1]
	}
}

// DrawGradient implements present.GLContext.
func (r *Recorder) DrawGradient(rect image.Rectangle, stops []present.GradientStop) {
	r.record(DrawGradientCommand{Rect: rect, Stops: stops})
	r.gradient(rect, stops)
}

// DrawQuad implements present.GLContext.
func (r *Recorder) DrawQuad(tex va.GLTexture, q present.Quad) {
	t, _ := tex.(*Texture)
	r.record(DrawQuadCommand{Texture: t, Quad: q, Matrix: r.matrix})
	if t != nil {
		r.quad(t, q, r.matrix)
	}
}

// FillRect implements present.GLContext.
func (r *Recorder) FillRect(rect image.Rectangle, c gputypes.Color) {
	r.record(FillRectCommand{Rect: rect, Color: c})
	rect = rect.Intersect(r.back.Rect)
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			blend(r.back, x, y, c, c.A)
		}
	}
}

// DrawMask implements present.GLContext.
func (r *Recorder) DrawMask(mask *image.Alpha, p image.Point, c gputypes.Color) {
	dst := mask.Rect.Sub(mask.Rect.Min).Add(p)
	r.record(DrawMaskCommand{Rect: dst, Color: c})
	clip := dst.Intersect(r.back.Rect)
	for y := clip.Min.Y; y < clip.Max.Y; y++ {
		for x := clip.Min.X; x < clip.Max.X; x++ {
			cov := mask.AlphaAt(x-p.X+mask.Rect.Min.X, y-p.Y+mask.Rect.Min.Y).A
			if cov == 0 {
				continue
			}
			blend(r.back, x, y, c, c.A*float64(cov)/255)
		}
	}
}

// Finish implements present.GLContext.
func (r *Recorder) Finish() { r.record(FinishCommand{}) }

// Swap implements present.GLContext.
func (r *Recorder) Swap() error {
	r.record(SwapCommand{})
	if r.swapErr != nil {
		return r.swapErr
	}
	copy(r.front.Pix, r.back.Pix)
	r.swaps++
	return nil
}

var _ present.GLContext = (*Recorder)(nil)

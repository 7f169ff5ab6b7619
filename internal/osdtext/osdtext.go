// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package osdtext rasterizes short status lines for the on-screen
// display.
//
// Text is normalized to NFC, shaped with go-text/typesetting and filled
// from the sfnt glyph outlines with the x/image/vector rasterizer. The
// result is an 8-bit coverage mask.
package osdtext

import (
	"bytes"
	"fmt"
	"image"
	"math"
	"slices"

	"github.com/go-text/typesetting/di"
	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
	"golang.org/x/text/unicode/bidi"
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/vaout/internal/cache"
)

// DefaultSize is the pixel size used by the statistics bar.
const DefaultSize = 14

// outlineCacheSize bounds the number of glyph outlines kept per renderer.
const outlineCacheSize = 256

// Renderer turns strings into coverage masks. It is not safe for
// concurrent use.
type Renderer struct {
	shapeFont *gotext.Font
	outlines  *sfnt.Font
	size      float64
	ppem      fixed.Int26_6

	shaper shaping.HarfbuzzShaper
	buf    sfnt.Buffer

	// glyphs caches outlines scaled to ppem.
	glyphs *cache.LRU[sfnt.GlyphIndex, []sfnt.Segment]

	ascent, descent int
}

// New returns a renderer for the Go Regular font at size pixels.
func New(size float64) (*Renderer, error) {
	return NewFromTTF(goregular.TTF, size)
}

// NewFromTTF returns a renderer for a TrueType or OpenType font.
func NewFromTTF(data []byte, size float64) (*Renderer, error) {
	if size <= 0 {
		return nil, fmt.Errorf("osdtext: invalid size %v", size)
	}
	face, err := gotext.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("osdtext: parse font: %w", err)
	}
	outlines, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("osdtext: parse outlines: %w", err)
	}
	r := &Renderer{
		shapeFont: face.Font,
		outlines:  outlines,
		size:      size,
		ppem:      fixed.Int26_6(size * 64),
		glyphs:    cache.New[sfnt.GlyphIndex, []sfnt.Segment](outlineCacheSize),
	}
	m, err := outlines.Metrics(&r.buf, r.ppem, font.HintingNone)
	if err != nil {
		return nil, fmt.Errorf("osdtext: metrics: %w", err)
	}
	r.ascent = m.Ascent.Ceil()
	r.descent = m.Descent.Ceil()
	return r, nil
}

// Height returns the line height in pixels.
func (r *Renderer) Height() int { return r.ascent + r.descent }

// Ascent returns the distance from the top of a line to the baseline.
func (r *Renderer) Ascent() int { return r.ascent }

// glyph is a shaped glyph at its pen position.
type glyph struct {
	id   sfnt.GlyphIndex
	x, y float64
}

func (r *Renderer) shape(s string) ([]glyph, float64) {
	runes := []rune(norm.NFC.String(s))
	if len(runes) == 0 {
		return nil, 0
	}
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: direction(s),
		Face:      gotext.NewFace(r.shapeFont),
		Size:      r.ppem,
		Script:    script(runes),
		Language:  language.NewLanguage("en"),
	}
	out := r.shaper.Shape(input)

	glyphs := make([]glyph, 0, len(out.Glyphs))
	var pen float64
	for _, g := range out.Glyphs {
		glyphs = append(glyphs, glyph{
			id: sfnt.GlyphIndex(g.GlyphID),
			x:  pen + toFloat(g.XOffset),
			y:  -toFloat(g.YOffset),
		})
		pen += toFloat(g.Advance)
	}
	return glyphs, pen
}

// Measure returns the advance width of s in pixels.
func (r *Renderer) Measure(s string) int {
	_, w := r.shape(s)
	return int(math.Ceil(w))
}

// Render rasterizes s on a single line. The mask is as wide as the text
// advance and Height tall, with the baseline at Ascent. An empty string
// yields nil.
func (r *Renderer) Render(s string) *image.Alpha {
	glyphs, width := r.shape(s)
	w, h := int(math.Ceil(width)), r.Height()
	if w <= 0 || h <= 0 {
		return nil
	}

	z := vector.NewRasterizer(w, h)
	baseline := float32(r.ascent)
	for _, g := range glyphs {
		segs, err := r.outline(g.id)
		if err != nil {
			continue
		}
		ox, oy := float32(g.x), baseline+float32(g.y)
		for _, seg := range segs {
			p := seg.Args
			switch seg.Op {
			case sfnt.SegmentOpMoveTo:
				z.MoveTo(ox+px(p[0].X), oy+px(p[0].Y))
			case sfnt.SegmentOpLineTo:
				z.LineTo(ox+px(p[0].X), oy+px(p[0].Y))
			case sfnt.SegmentOpQuadTo:
				z.QuadTo(ox+px(p[0].X), oy+px(p[0].Y), ox+px(p[1].X), oy+px(p[1].Y))
			case sfnt.SegmentOpCubeTo:
				z.CubeTo(ox+px(p[0].X), oy+px(p[0].Y), ox+px(p[1].X), oy+px(p[1].Y), ox+px(p[2].X), oy+px(p[2].Y))
			}
		}
		z.ClosePath()
	}

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}

// outline returns the glyph outline. LoadGlyph results alias r.buf, so
// cached outlines are copies.
func (r *Renderer) outline(id sfnt.GlyphIndex) ([]sfnt.Segment, error) {
	return r.glyphs.GetOrCreate(id, func() ([]sfnt.Segment, error) {
		segs, err := r.outlines.LoadGlyph(&r.buf, id, r.ppem, nil)
		if err != nil {
			return nil, err
		}
		return slices.Clone(segs), nil
	})
}

// CacheStats returns the glyph outline cache statistics.
func (r *Renderer) CacheStats() cache.Stats { return r.glyphs.Stats() }

func direction(s string) di.Direction {
	var p bidi.Paragraph
	if _, err := p.SetString(s, bidi.DefaultDirection(bidi.Neutral)); err != nil {
		return di.DirectionLTR
	}
	ordering, err := p.Order()
	if err != nil || ordering.NumRuns() == 0 {
		return di.DirectionLTR
	}
	dir := ordering.Direction()
	if dir == bidi.Mixed {
		run := ordering.Run(0)
		dir = run.Direction()
	}
	if dir == bidi.RightToLeft {
		return di.DirectionRTL
	}
	return di.DirectionLTR
}

func script(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func toFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }

func px(v fixed.Int26_6) float32 { return float32(v) / 64 }

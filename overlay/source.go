// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package overlay

// DrawFunc receives one w x h block of the on-screen display at (x, y).
// src holds luma and alpha holds host alpha bytes, both addressed with
// stride.
type DrawFunc func(x, y, w, h int, src, alpha []byte, stride int)

// Source is the host player's on-screen display.
type Source interface {
	// Changed reports whether the content changed since the last call
	// for a frame of the given size.
	Changed(width, height int) bool

	// Empty reports whether there is nothing to show.
	Empty() bool

	// Draw passes every block of the display to draw.
	Draw(width, height int, draw DrawFunc)
}

// Block is one alpha bitmap of a Blocks source.
type Block struct {
	X, Y, W, H int
	Stride     int
	Src, Alpha []byte
}

// Blocks is a Source holding a fixed list of bitmaps.
type Blocks struct {
	blocks  []Block
	changed bool
}

// Set replaces the content.
func (b *Blocks) Set(blocks ...Block) {
	b.blocks = blocks
	b.changed = true
}

// Changed implements Source. It reports a change once per Set.
func (b *Blocks) Changed(width, height int) bool {
	c := b.changed
	b.changed = false
	return c
}

// Empty implements Source.
func (b *Blocks) Empty() bool { return len(b.blocks) == 0 }

// Draw implements Source.
func (b *Blocks) Draw(width, height int, draw DrawFunc) {
	for _, blk := range b.blocks {
		draw(blk.X, blk.Y, blk.W, blk.H, blk.Src, blk.Alpha, blk.Stride)
	}
}

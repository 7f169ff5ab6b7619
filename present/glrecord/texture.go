// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package glrecord

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/gogpu/gputypes"
)

// Texture is an in-memory texture with 4 bytes per texel.
type Texture struct {
	mu      sync.Mutex
	desc    gputypes.TextureDescriptor
	pix     []byte
	updates int
}

// Width implements gpucontext.Texture.
func (t *Texture) Width() int { return int(t.desc.Size.Width) }

// Height implements gpucontext.Texture.
func (t *Texture) Height() int { return int(t.desc.Size.Height) }

// Format is the texel layout.
func (t *Texture) Format() gputypes.TextureFormat { return t.desc.Format }

// Descriptor returns the creation descriptor.
func (t *Texture) Descriptor() gputypes.TextureDescriptor { return t.desc }

// UpdateData implements gpucontext.TextureUpdater. data must cover the
// whole texture.
func (t *Texture) UpdateData(data []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(data) != len(t.pix) {
		return fmt.Errorf("glrecord: texture update of %d bytes, want %d", len(data), len(t.pix))
	}
	copy(t.pix, data)
	t.updates++
	return nil
}

// Updates returns how many times the texture was written.
func (t *Texture) Updates() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.updates
}

// At returns the texel at (x, y) as straight RGBA.
func (t *Texture) At(x, y int) color.NRGBA {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.texel(x, y)
}

// texel reads without locking.
func (t *Texture) texel(x, y int) color.NRGBA {
	i := 4 * (y*t.Width() + x)
	p := t.pix[i : i+4 : i+4]
	if t.desc.Format == gputypes.TextureFormatBGRA8Unorm {
		return color.NRGBA{R: p[2], G: p[1], B: p[0], A: p[3]}
	}
	return color.NRGBA{R: p[0], G: p[1], B: p[2], A: p[3]}
}

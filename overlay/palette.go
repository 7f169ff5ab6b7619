// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package overlay

import (
	"errors"
	"strings"

	"github.com/gogpu/vaout/va"
)

// ErrPalette is returned when the component order of a paletted image
// is neither RGB nor YUV.
var ErrPalette = errors.New("overlay: cannot set up subpicture palette")

// NeutralChroma is the U/V value of grey palette entries.
const NeutralChroma = 0x80

// PaletteQuirk adjusts palette synthesis for one driver.
type PaletteQuirk struct {
	// Chroma replaces NeutralChroma in YUV palettes.
	Chroma byte
}

// PaletteQuirks maps a vendor string fragment to its quirk.
var PaletteQuirks = map[string]PaletteQuirk{
	// Intel Embedded Graphics Drivers expect saturated chroma.
	"IEGD": {Chroma: 0xff},
}

// ChromaFor returns the YUV palette chroma for a driver vendor string.
func ChromaFor(vendor string) byte {
	for frag, q := range PaletteQuirks {
		if strings.Contains(vendor, frag) {
			return q.Chroma
		}
	}
	return NeutralChroma
}

// Palette builds the grey ramp for a paletted image. Entry i has
// intensity i*255/(n-1). RGB palettes set all three components; YUV
// palettes set luma and use chroma for U and V. Non-paletted images
// yield a nil palette.
func Palette(img va.Image, chroma byte) ([]byte, error) {
	n, size := img.NumPaletteEntries, img.EntryBytes
	if n < 1 {
		return nil, nil
	}
	r, g, b := -1, -1, -1
	y, u, v := -1, -1, -1
	for i := 0; i < size && i < len(img.ComponentOrder); i++ {
		switch img.ComponentOrder[i] {
		case 'R':
			r = i
		case 'G':
			g = i
		case 'B':
			b = i
		case 'Y':
			y = i
		case 'U':
			u = i
		case 'V':
			v = i
		}
	}

	ramp := func(i int) byte {
		if n == 1 {
			return 0xff
		}
		return byte(i * 0xff / (n - 1))
	}
	palette := make([]byte, n*size)
	switch {
	case r >= 0 && g >= 0 && b >= 0:
		for i := range n {
			e := palette[i*size:]
			e[r], e[g], e[b] = ramp(i), ramp(i), ramp(i)
		}
	case y >= 0 && u >= 0 && v >= 0:
		for i := range n {
			e := palette[i*size:]
			e[y], e[u], e[v] = ramp(i), chroma, chroma
		}
	default:
		return nil, ErrPalette
	}
	return palette, nil
}

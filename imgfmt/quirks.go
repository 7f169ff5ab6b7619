// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package imgfmt

// Quirk is a format-specific deviation from the plain upload path.
type Quirk uint32

const (
	// QuirkSwapUV marks a format whose second and third planes arrive in
	// the opposite order from the driver image of the same FourCC.
	// Frames labelled YV12 by the decoder are laid out as I420.
	QuirkSwapUV Quirk = 1 << iota
)

// Quirks maps formats to their quirks. Formats that are absent have none.
var Quirks = map[Format]Quirk{
	YV12: QuirkSwapUV,
}

// Has reports whether f carries quirk q.
func (f Format) Has(q Quirk) bool {
	return Quirks[f]&q != 0
}

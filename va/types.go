// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package va

import "image"

// ID is the common representation of every driver object handle.
type ID = uint32

// InvalidID marks an object that has not been created or was destroyed.
const InvalidID ID = 0xffffffff

// Object handles. They are distinct types so that a surface ID cannot be
// passed where an image ID is expected.
type (
	SurfaceID    ID
	ImageID      ID
	BufferID     ID
	SubpictureID ID
	ConfigID     ID
	ContextID    ID
)

// Invalid handle values.
const (
	InvalidSurface    = SurfaceID(InvalidID)
	InvalidImage      = ImageID(InvalidID)
	InvalidBuffer     = BufferID(InvalidID)
	InvalidSubpicture = SubpictureID(InvalidID)
)

// Drawable is a window-system drawable (window or pixmap) that surfaces
// can be blitted to.
type Drawable uint64

// FourCC is a four character pixel format code, packed little endian.
type FourCC uint32

// NewFourCC packs four characters into a FourCC.
func NewFourCC(a, b, c, d byte) FourCC {
	return FourCC(uint32(a) | uint32(b)<<8 | uint32(c)<<16 | uint32(d)<<24)
}

// String returns the four characters of the code.
func (f FourCC) String() string {
	return string([]byte{byte(f), byte(f >> 8), byte(f >> 16), byte(f >> 24)})
}

// Well-known codes.
var (
	FourCCNV12 = NewFourCC('N', 'V', '1', '2')
	FourCCYV12 = NewFourCC('Y', 'V', '1', '2')
	FourCCI420 = NewFourCC('I', '4', '2', '0')
	FourCCIYUV = NewFourCC('I', 'Y', 'U', 'V')
	FourCCIA44 = NewFourCC('I', 'A', '4', '4')
	FourCCAI44 = NewFourCC('A', 'I', '4', '4')
	FourCCIA88 = NewFourCC('I', 'A', '8', '8')
	FourCCAI88 = NewFourCC('A', 'I', '8', '8')
	FourCCBGRA = NewFourCC('B', 'G', 'R', 'A')
	FourCCRGBA = NewFourCC('R', 'G', 'B', 'A')
)

// ByteOrder of multi-byte pixels.
type ByteOrder uint8

const (
	LSBFirst ByteOrder = 1
	MSBFirst ByteOrder = 2
)

// ImageFormat describes the pixel layout of an image.
type ImageFormat struct {
	FourCC       FourCC
	ByteOrder    ByteOrder
	BitsPerPixel int

	// RGB formats only.
	Depth     int
	RedMask   uint32
	GreenMask uint32
	BlueMask  uint32
	AlphaMask uint32
}

// BytesPerPixel returns the size of one pixel of the first plane,
// rounded up to whole bytes.
func (f ImageFormat) BytesPerPixel() int {
	return (f.BitsPerPixel + 7) / 8
}

// Image is a driver image: a CPU-mappable buffer with a known layout.
type Image struct {
	ID       ImageID
	Format   ImageFormat
	Buf      BufferID
	Width    int
	Height   int
	DataSize int

	NumPlanes int
	Pitches   [3]int
	Offsets   [3]int

	// Paletted formats only.
	NumPaletteEntries int
	EntryBytes        int
	ComponentOrder    [4]byte
}

// NoImage returns an Image descriptor whose handles are all invalid.
func NoImage() Image {
	return Image{ID: InvalidImage, Buf: InvalidBuffer}
}

// Valid reports whether the image refers to a live driver image.
func (img Image) Valid() bool {
	return img.ID != InvalidImage
}

// Rect is a source or destination rectangle of a blit.
type Rect = image.Rectangle

// FullRect returns the rectangle covering a width x height frame.
func FullRect(width, height int) Rect {
	return image.Rect(0, 0, width, height)
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package va

// RTFormat is a render target (surface) chroma format bit.
type RTFormat uint32

const (
	RTFormatYUV420 RTFormat = 0x00000001
	RTFormatYUV422 RTFormat = 0x00000002
	RTFormatYUV444 RTFormat = 0x00000004
)

// ConfigAttribType identifies a decode configuration attribute.
type ConfigAttribType int32

const (
	ConfigAttribRTFormat ConfigAttribType = iota
)

// ConfigAttrib is a decode configuration attribute and its value.
type ConfigAttrib struct {
	Type  ConfigAttribType
	Value uint32
}

// ContextFlags are passed to CreateContext.
type ContextFlags uint32

const (
	// Progressive marks a context that only decodes progressive content.
	Progressive ContextFlags = 0x1
)

// DisplayAttribType identifies a display (presentation) attribute.
type DisplayAttribType int32

const (
	DisplayAttribBrightness DisplayAttribType = iota
	DisplayAttribContrast
	DisplayAttribHue
	DisplayAttribSaturation
	DisplayAttribBackgroundColor
	// DisplayAttribDirectSurface is zero when the driver retains the
	// displayed surface instead of copying it.
	DisplayAttribDirectSurface
)

var displayAttribNames = [...]string{
	DisplayAttribBrightness:      "brightness",
	DisplayAttribContrast:        "contrast",
	DisplayAttribHue:             "hue",
	DisplayAttribSaturation:      "saturation",
	DisplayAttribBackgroundColor: "background-color",
	DisplayAttribDirectSurface:   "direct-surface",
}

// String returns the lower-case attribute name.
func (t DisplayAttribType) String() string {
	if t >= 0 && int(t) < len(displayAttribNames) {
		return displayAttribNames[t]
	}
	return "unknown"
}

// DisplayAttribFlags describe how an attribute may be accessed.
type DisplayAttribFlags uint32

const (
	DisplayAttribGettable DisplayAttribFlags = 0x0001
	DisplayAttribSettable DisplayAttribFlags = 0x0002
)

// DisplayAttribute is a driver display attribute with its value range.
type DisplayAttribute struct {
	Type     DisplayAttribType
	MinValue int
	MaxValue int
	Value    int
	Flags    DisplayAttribFlags
}

// Gettable reports whether the current value can be read.
func (a DisplayAttribute) Gettable() bool { return a.Flags&DisplayAttribGettable != 0 }

// Settable reports whether the value can be changed.
func (a DisplayAttribute) Settable() bool { return a.Flags&DisplayAttribSettable != 0 }

// SubpictureFlags are per-format capability bits reported by
// QuerySubpictureFormats.
type SubpictureFlags uint32

const (
	SubpictureChromaKeying SubpictureFlags = 0x0001
	SubpictureGlobalAlpha  SubpictureFlags = 0x0002
)

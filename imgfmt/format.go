// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package imgfmt names the pixel formats a video output negotiates with
// its caller.
//
// Two families exist. Accelerated formats carry no pixels: the decoder
// writes straight into a driver surface and the format only selects the
// codec and pipeline stage. Software formats are planar YUV frames that
// must be uploaded into a surface before display.
package imgfmt

import (
	"fmt"
	"strings"

	"github.com/gogpu/vaout/va"
)

// Format is a pixel format code. Software formats use their FourCC value.
type Format uint32

const accelerated Format = 0x56410000 // 'V' 'A' in the high half

// Accelerated formats.
const (
	VAAPIMPEG2       = accelerated | 0x10
	VAAPIMPEG2IDCT   = accelerated | 0x11
	VAAPIMPEG2MoComp = accelerated | 0x12
	VAAPIMPEG4       = accelerated | 0x20
	VAAPIH263        = accelerated | 0x21
	VAAPIH264        = accelerated | 0x30
	VAAPIVC1         = accelerated | 0x40
	VAAPIWMV3        = accelerated | 0x41
)

// Software formats.
var (
	NV12 = Format(va.FourCCNV12)
	YV12 = Format(va.FourCCYV12)
	I420 = Format(va.FourCCI420)
	IYUV = Format(va.FourCCIYUV)
)

// Codec groups accelerated formats by bitstream family.
type Codec uint8

const (
	CodecNone Codec = iota
	CodecMPEG2
	CodecMPEG4
	CodecH264
	CodecVC1
)

func (c Codec) String() string {
	switch c {
	case CodecMPEG2:
		return "mpeg2"
	case CodecMPEG4:
		return "mpeg4"
	case CodecH264:
		return "h264"
	case CodecVC1:
		return "vc1"
	default:
		return "none"
	}
}

// IsAccelerated reports whether f is decoded straight into driver surfaces.
func (f Format) IsAccelerated() bool {
	return f&0xffff0000 == accelerated
}

// Codec returns the codec family of an accelerated format.
func (f Format) Codec() Codec {
	if !f.IsAccelerated() {
		return CodecNone
	}
	switch f & 0xf0 {
	case 0x10:
		return CodecMPEG2
	case 0x20:
		return CodecMPEG4
	case 0x30:
		return CodecH264
	case 0x40:
		return CodecVC1
	}
	return CodecNone
}

// Entrypoint returns the decode pipeline stage an accelerated format
// requires, or 0 for software formats.
func (f Format) Entrypoint() va.Entrypoint {
	switch f {
	case VAAPIMPEG2IDCT:
		return va.EntrypointIDCT
	case VAAPIMPEG2MoComp:
		return va.EntrypointMoComp
	}
	if f.IsAccelerated() && f.Codec() != CodecNone {
		return va.EntrypointVLD
	}
	return 0
}

// IsPlanarYUV reports whether f is a software 4:2:0 YUV format.
func (f Format) IsPlanarYUV() bool {
	switch f {
	case NV12, YV12, I420, IYUV:
		return true
	}
	return false
}

// FourCC returns the image format code used to upload software frames.
func (f Format) FourCC() (va.FourCC, bool) {
	if f.IsPlanarYUV() {
		return va.FourCC(f), true
	}
	return 0, false
}

var names = map[Format]string{
	VAAPIMPEG2:       "vaapi-mpeg2",
	VAAPIMPEG2IDCT:   "vaapi-mpeg2-idct",
	VAAPIMPEG2MoComp: "vaapi-mpeg2-mocomp",
	VAAPIMPEG4:       "vaapi-mpeg4",
	VAAPIH263:        "vaapi-h263",
	VAAPIH264:        "vaapi-h264",
	VAAPIVC1:         "vaapi-vc1",
	VAAPIWMV3:        "vaapi-wmv3",
	NV12:             "nv12",
	YV12:             "yv12",
	I420:             "i420",
	IYUV:             "iyuv",
}

// String returns the lower-case format name.
func (f Format) String() string {
	if n, ok := names[f]; ok {
		return n
	}
	return fmt.Sprintf("format(%#08x)", uint32(f))
}

// All returns every known format, accelerated formats first.
func All() []Format {
	return []Format{
		VAAPIMPEG2, VAAPIMPEG2IDCT, VAAPIMPEG2MoComp,
		VAAPIMPEG4, VAAPIH263, VAAPIH264, VAAPIVC1, VAAPIWMV3,
		NV12, YV12, I420, IYUV,
	}
}

// Parse looks a format up by name. The "vaapi-" prefix is optional for
// accelerated formats ("h264" and "vaapi-h264" are the same).
func Parse(name string) (Format, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for f, s := range names {
		if s == n || (f.IsAccelerated() && strings.TrimPrefix(s, "vaapi-") == n) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("imgfmt: unknown format %q", name)
}

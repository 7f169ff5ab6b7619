// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package va

import "strings"

// PutFlags select the field, color standard and scaling filter of a
// PutSurface or GLX copy/associate call.
type PutFlags uint32

const (
	FramePicture PutFlags = 0x00000000
	TopField     PutFlags = 0x00000001
	BottomField  PutFlags = 0x00000002

	// ClearDrawable asks the driver to clear the drawable before the blit.
	ClearDrawable PutFlags = 0x00000008

	SrcBT601    PutFlags = 0x00000010
	SrcBT709    PutFlags = 0x00000020
	SrcSMPTE240 PutFlags = 0x00000040

	FilterScalingDefault      PutFlags = 0x00000000
	FilterScalingFast         PutFlags = 0x00000100
	FilterScalingHQ           PutFlags = 0x00000200
	FilterScalingNLAnamorphic PutFlags = 0x00000300
	FilterScalingMask         PutFlags = 0x00000f00
)

// FieldMask covers the field selection bits.
const FieldMask = TopField | BottomField

// ColorStandardMask covers the source color standard bits.
const ColorStandardMask = SrcBT601 | SrcBT709 | SrcSMPTE240

// Field returns the field selection bits.
func (f PutFlags) Field() PutFlags { return f & FieldMask }

// ColorStandard returns the color standard bits.
func (f PutFlags) ColorStandard() PutFlags { return f & ColorStandardMask }

// Scaling returns the scaling filter bits.
func (f PutFlags) Scaling() PutFlags { return f & FilterScalingMask }

// String renders the flags as a "|" separated list.
func (f PutFlags) String() string {
	var parts []string
	switch f.Field() {
	case TopField:
		parts = append(parts, "top")
	case BottomField:
		parts = append(parts, "bottom")
	case FieldMask:
		parts = append(parts, "top|bottom")
	default:
		parts = append(parts, "frame")
	}
	if f&ClearDrawable != 0 {
		parts = append(parts, "clear")
	}
	switch f.ColorStandard() {
	case SrcBT601:
		parts = append(parts, "bt601")
	case SrcBT709:
		parts = append(parts, "bt709")
	case SrcSMPTE240:
		parts = append(parts, "smpte240m")
	}
	switch f.Scaling() {
	case FilterScalingFast:
		parts = append(parts, "fast")
	case FilterScalingHQ:
		parts = append(parts, "hq")
	case FilterScalingNLAnamorphic:
		parts = append(parts, "nla")
	}
	return strings.Join(parts, "|")
}

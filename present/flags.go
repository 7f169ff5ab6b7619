// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package present

import (
	"github.com/gogpu/vaout/config"
	"github.com/gogpu/vaout/va"
)

// FieldFlags returns the field selection for put i of a frame.
//
// Without deinterlacing the whole frame is shown. Otherwise put i shows
// the bottom field when (topFieldFirst == i) XOR bob, treating
// topFieldFirst as 0 or 1.
func FieldFlags(deint config.Deint, topFieldFirst bool, i int) va.PutFlags {
	if deint == config.DeintOff {
		return va.FramePicture
	}
	tff := 0
	if topFieldFirst {
		tff = 1
	}
	if (tff == i) != (deint > config.DeintFirstField) {
		return va.BottomField
	}
	return va.TopField
}

// HD frames are at least this wide or taller than SDTallest.
const (
	HDWidth   = 1280
	SDTallest = 576
)

// ColorspaceFlags returns the source color standard. ColorspaceAuto
// picks BT.709 for HD frame sizes and BT.601 otherwise.
func ColorspaceFlags(cs config.Colorspace, width, height int) va.PutFlags {
	switch cs {
	case config.ColorspaceAuto:
		if width >= HDWidth || height > SDTallest {
			return va.SrcBT709
		}
		return va.SrcBT601
	case config.ColorspaceBT709:
		return va.SrcBT709
	case config.ColorspaceSMPTE240M:
		return va.SrcSMPTE240
	default:
		return va.SrcBT601
	}
}

// ScalingFlags returns the scaling filter hint.
func ScalingFlags(s config.Scaling) va.PutFlags {
	switch s {
	case config.ScalingFast:
		return va.FilterScalingFast
	case config.ScalingHQ:
		return va.FilterScalingHQ
	case config.ScalingNLA:
		return va.FilterScalingNLAnamorphic
	default:
		return va.FilterScalingDefault
	}
}

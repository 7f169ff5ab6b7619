// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vaout

import (
	"strings"

	"github.com/gogpu/vaout/va"
)

var equalizers = map[string]va.DisplayAttribType{
	"brightness": va.DisplayAttribBrightness,
	"contrast":   va.DisplayAttribContrast,
	"saturation": va.DisplayAttribSaturation,
	"hue":        va.DisplayAttribHue,
}

// equalizer returns the cached attribute for a case-insensitive name.
func (v *VideoOutput) equalizer(name string) (*va.DisplayAttribute, bool) {
	t, ok := equalizers[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	a, ok := v.caps.Attribute(t)
	if !ok || a.MaxValue == a.MinValue {
		return nil, false
	}
	return a, true
}

// SetEqualizer sets a picture control to value in [-100, 100], scaled
// linearly onto the driver range. Values outside are clamped.
func (v *VideoOutput) SetEqualizer(name string, value int) error {
	a, ok := v.equalizer(name)
	if !ok || !a.Settable() {
		return ErrNotImplemented
	}
	value = min(max(value, -100), 100)
	r := a.MaxValue - a.MinValue
	next := *a
	next.Value = (value+100)*r/200 + a.MinValue
	if err := v.d.SetDisplayAttributes([]va.DisplayAttribute{next}); !va.Check(v.log, err, "vaSetDisplayAttributes()") {
		return va.Wrap(err, "vaSetDisplayAttributes()")
	}
	a.Value = next.Value
	return nil
}

// GetEqualizer returns a picture control in [-100, 100].
func (v *VideoOutput) GetEqualizer(name string) (int, error) {
	a, ok := v.equalizer(name)
	if !ok || !a.Gettable() {
		return 0, ErrNotImplemented
	}
	r := a.MaxValue - a.MinValue
	return (a.Value-a.MinValue)*200/r - 100, nil
}

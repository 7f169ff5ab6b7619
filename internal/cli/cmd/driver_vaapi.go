// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build vaapi

package cmd

import (
	"github.com/gogpu/vaout/va"
	"github.com/gogpu/vaout/va/libva"
)

func init() {
	drivers["libva"] = func(device string) (va.Display, error) {
		return libva.OpenDRM(device)
	}
}

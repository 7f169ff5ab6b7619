// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package present

import "image"

// FitRect returns the largest rectangle with the display aspect ratio
// dispW:dispH that fits a winW x winH window, centred. The frame size is
// used when the display size is unknown. An empty window yields an empty
// rectangle.
func FitRect(srcW, srcH, dispW, dispH, winW, winH int) image.Rectangle {
	if dispW <= 0 || dispH <= 0 {
		dispW, dispH = srcW, srcH
	}
	if winW <= 0 || winH <= 0 || dispW <= 0 || dispH <= 0 {
		return image.Rectangle{}
	}
	w, h := winW, winW*dispH/dispW
	if h > winH {
		w, h = winH*dispW/dispH, winH
	}
	x := (winW - w) / 2
	y := (winH - h) / 2
	return image.Rect(x, y, x+w, y+h)
}

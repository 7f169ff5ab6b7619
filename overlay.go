// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vaout

import (
	"github.com/gogpu/vaout/internal/osdtext"
	"github.com/gogpu/vaout/overlay"
	"github.com/gogpu/vaout/present"
)

// statsMargin is the space around the statistics text.
const statsMargin = 8

// DrawOverlay composites the host on-screen display into the surfaces.
// Nothing is drawn unless the source changed.
func (v *VideoOutput) DrawOverlay(src overlay.Source) {
	if !v.configured {
		return
	}
	v.osd.Update(src)
}

// DrawSubtitleOverlay applies a subtitle update. The subtitles show on
// the next presented frame.
func (v *VideoOutput) DrawSubtitleOverlay(imgs overlay.Images) {
	if !v.configured {
		return
	}
	v.subs.Update(imgs)
}

// SubtitleResolution returns the canvas subtitles are laid out on.
func (v *VideoOutput) SubtitleResolution() overlay.Resolution {
	return v.subs.Resolution()
}

// DrawStatsOverlay shows the CPU usage line through the on-screen
// display. The gl backend draws its own statistics bar, so nothing is
// done there.
func (v *VideoOutput) DrawStatsOverlay() {
	if !v.configured || !v.cfg.Stats || v.stats == nil || v.backend.Name() == present.BackendGL {
		return
	}
	if v.statsFont == nil {
		if v.statsNoOSD {
			return
		}
		f, err := osdtext.New(osdtext.DefaultSize)
		if err != nil {
			v.log.Warn("vaout: statistics text disabled", "err", err)
			v.statsNoOSD = true
			return
		}
		v.statsFont = f
	}

	s := v.stats.Last()
	if text := present.StatsText(s.Usage, s.MHz); text != v.statsText {
		v.statsText = text
		v.statsOSD.Set(v.statsBlock(text)...)
	}
	v.osd.Update(&v.statsOSD)
}

// statsBlock renders text white on an opaque black bar.
func (v *VideoOutput) statsBlock(text string) []overlay.Block {
	mask := v.statsFont.Render(text)
	if mask == nil {
		return nil
	}
	mw, mh := mask.Rect.Dx(), mask.Rect.Dy()
	w := min(mw+2*statsMargin, v.width)
	h := min(max(present.StatsBarHeight, mh), v.height)
	b := overlay.Block{
		W: w, H: h, Stride: w,
		Src:   make([]byte, w*h),
		Alpha: make([]byte, w*h),
	}
	// Host alpha 1 is fully opaque.
	for i := range b.Alpha {
		b.Alpha[i] = 1
	}
	ty := (h - mh) / 2
	for y := 0; y < mh && ty+y < h; y++ {
		if ty+y < 0 {
			continue
		}
		row := mask.Pix[y*mask.Stride:]
		for x := 0; x < mw && statsMargin+x < w; x++ {
			b.Src[(ty+y)*w+statsMargin+x] = row[x]
		}
	}
	return []overlay.Block{b}
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vaout

import (
	"github.com/gogpu/vaout/config"
	"github.com/gogpu/vaout/surface"
	"github.com/gogpu/vaout/window"
)

// PresentCurrentFrame shows the frame queued since the last call, or
// shows the last frame again when nothing new was queued.
func (v *VideoOutput) PresentCurrentFrame() {
	if !v.configured {
		return
	}
	h := v.ring.Next()
	if !v.show(h) {
		return
	}
	if v.ring.Pending() {
		v.pool.SetState(h, surface.Displayed)
		v.ring.Advance()
	}
}

// show puts the surface and completes the frame. The subtitles are
// associated with that one surface for the duration of the put.
func (v *VideoOutput) show(h surface.Handle) bool {
	s, ok := v.pool.Lookup(h)
	if !ok {
		return false
	}
	attached := v.subs.Attach(s.ID)
	err := v.backend.Put(&v.target, s.ID)
	if attached {
		v.subs.Detach(s.ID)
	}
	if err != nil {
		v.log.Debug("vaout: put failed", "surface", s.ID, "err", err)
		return false
	}
	if err := v.backend.Flip(&v.target); err != nil {
		v.log.Warn("vaout: flip failed", "err", err)
	}
	return true
}

// HandleWindowEvents processes pending window events. A resize refits
// the picture; while paused, a resize or expose shows the frame on
// screen again.
func (v *VideoOutput) HandleWindowEvents() {
	ev := v.win.Poll()
	if !v.configured {
		return
	}
	if ev.Has(window.EventResize) {
		v.resize()
	}
	if v.paused && ev&(window.EventResize|window.EventExpose) != 0 {
		v.show(v.ring.Previous())
	}
}

func (v *VideoOutput) resize() {
	if !v.configured {
		return
	}
	v.target.Output = v.fit()
	if err := v.backend.Resize(&v.target); err != nil {
		v.log.Warn("vaout: resize failed", "err", err)
	}
}

// Pause stops playback. The frame on screen is redrawn on expose.
func (v *VideoOutput) Pause() { v.paused = true }

// Resume restarts playback.
func (v *VideoOutput) Resume() { v.paused = false }

// Paused reports whether playback is paused.
func (v *VideoOutput) Paused() bool { return v.paused }

// SetDeinterlace switches deinterlacing. Switching on uses the
// configured mode, or bob when none was configured.
func (v *VideoOutput) SetDeinterlace(on bool) {
	if on {
		v.target.Deint = v.cfg.DeintType()
	} else {
		v.target.Deint = config.DeintOff
	}
}

// Deinterlace returns the deinterlacing mode in effect.
func (v *VideoOutput) Deinterlace() int { return int(v.target.Deint) }

// Fullscreen toggles fullscreen mode.
func (v *VideoOutput) Fullscreen() {
	v.win.SetFullscreen(!v.win.Fullscreen())
	v.resize()
}

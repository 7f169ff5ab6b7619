// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/gogpu/vaout/va"
	xdraw "golang.org/x/image/draw"
)

func scalerFor(f va.PutFlags) xdraw.Scaler {
	switch f.Scaling() {
	case va.FilterScalingFast:
		return xdraw.NearestNeighbor
	case va.FilterScalingHQ:
		return xdraw.CatmullRom
	case va.FilterScalingNLAnamorphic:
		return xdraw.BiLinear
	default:
		return xdraw.ApproxBiLinear
	}
}

// render converts a surface to RGBA, composites its subpictures and
// extracts the requested field. src is mapped into the returned image.
func (d *Display) render(s *surface, src va.Rect, flags va.PutFlags) (*image.RGBA, va.Rect) {
	frame := s.rgba(flags.ColorStandard())
	for _, a := range s.assoc {
		sp, ok := d.subpictures[a.sub]
		if !ok {
			continue
		}
		obj, ok := d.images[sp.image]
		if !ok {
			continue
		}
		xdraw.ApproxBiLinear.Scale(frame, a.dst, obj.nrgba(), a.src, draw.Over, nil)
	}
	switch flags.Field() {
	case va.TopField:
		frame = field(frame, false)
		src = image.Rect(src.Min.X, src.Min.Y/2, src.Max.X, (src.Max.Y+1)/2)
	case va.BottomField:
		frame = field(frame, true)
		src = image.Rect(src.Min.X, src.Min.Y/2, src.Max.X, src.Max.Y/2)
	}
	return frame, src
}

// PutSurface implements va.Display.
func (d *Display) PutSurface(id va.SurfaceID, dr va.Drawable, src, dst va.Rect, flags va.PutFlags) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("PutSurface"); err != nil {
		return err
	}
	s, ok := d.surfaces[id]
	if !ok {
		return va.StatusErrorInvalidSurface
	}
	target, ok := d.drawables[dr]
	if !ok {
		return va.StatusErrorInvalidParameter
	}
	if flags&^d.cfg.putFlags&^va.FilterScalingMask != 0 {
		return va.StatusErrorFlagNotSupported
	}
	d.puts = append(d.puts, PutRecord{Surface: id, Drawable: dr, Src: src, Dst: dst, Flags: flags})

	frame, src := d.render(s, src, flags)
	if flags&va.ClearDrawable != 0 {
		draw.Draw(target, target.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	}
	scalerFor(flags).Scale(target, dst, frame, src, draw.Src, nil)
	return nil
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/vaout/va"
	xdraw "golang.org/x/image/draw"
)

type glSurface struct {
	tex       va.GLTexture
	bound     va.SurfaceID
	flags     va.PutFlags
	rendering bool
}

// CreateSurfaceGLX implements va.GLXDisplay.
func (d *Display) CreateSurfaceGLX(tex va.GLTexture) (va.GLSurface, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("CreateSurfaceGLX"); err != nil {
		return 0, err
	}
	if tex == nil {
		return 0, va.StatusErrorInvalidParameter
	}
	switch tex.Format() {
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatBGRA8Unorm:
	default:
		return 0, va.StatusErrorInvalidImageFormat
	}
	id := va.GLSurface(d.newID())
	d.glSurfaces[id] = &glSurface{tex: tex, bound: va.InvalidSurface}
	return id, nil
}

// DestroySurfaceGLX implements va.GLXDisplay.
func (d *Display) DestroySurfaceGLX(gl va.GLSurface) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("DestroySurfaceGLX"); err != nil {
		return err
	}
	if _, ok := d.glSurfaces[gl]; !ok {
		return va.StatusErrorInvalidSurface
	}
	delete(d.glSurfaces, gl)
	return nil
}

// AssociateSurfaceGLX implements va.GLXDisplay.
func (d *Display) AssociateSurfaceGLX(gl va.GLSurface, id va.SurfaceID, flags va.PutFlags) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("AssociateSurfaceGLX"); err != nil {
		return err
	}
	g, ok := d.glSurfaces[gl]
	if !ok {
		return va.StatusErrorInvalidSurface
	}
	if _, ok := d.surfaces[id]; !ok {
		return va.StatusErrorInvalidSurface
	}
	g.bound, g.flags = id, flags
	return nil
}

// DeassociateSurfaceGLX implements va.GLXDisplay.
func (d *Display) DeassociateSurfaceGLX(gl va.GLSurface) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("DeassociateSurfaceGLX"); err != nil {
		return err
	}
	g, ok := d.glSurfaces[gl]
	if !ok {
		return va.StatusErrorInvalidSurface
	}
	g.bound = va.InvalidSurface
	return nil
}

// BeginRenderSurfaceGLX implements va.GLXDisplay. The associated surface
// is uploaded into the texture.
func (d *Display) BeginRenderSurfaceGLX(gl va.GLSurface) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("BeginRenderSurfaceGLX"); err != nil {
		return err
	}
	g, ok := d.glSurfaces[gl]
	if !ok {
		return va.StatusErrorInvalidSurface
	}
	s, ok := d.surfaces[g.bound]
	if !ok {
		return va.StatusErrorInvalidSurface
	}
	g.rendering = true
	return d.upload(g.tex, s, g.flags)
}

// EndRenderSurfaceGLX implements va.GLXDisplay.
func (d *Display) EndRenderSurfaceGLX(gl va.GLSurface) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("EndRenderSurfaceGLX"); err != nil {
		return err
	}
	g, ok := d.glSurfaces[gl]
	if !ok {
		return va.StatusErrorInvalidSurface
	}
	if !g.rendering {
		return va.StatusErrorOperationFailed
	}
	g.rendering = false
	return nil
}

// CopySurfaceGLX implements va.GLXDisplay.
func (d *Display) CopySurfaceGLX(gl va.GLSurface, id va.SurfaceID, flags va.PutFlags) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.enter("CopySurfaceGLX"); err != nil {
		return err
	}
	if !d.cfg.glxCopy {
		return va.StatusErrorUnimplemented
	}
	g, ok := d.glSurfaces[gl]
	if !ok {
		return va.StatusErrorInvalidSurface
	}
	s, ok := d.surfaces[id]
	if !ok {
		return va.StatusErrorInvalidSurface
	}
	return d.upload(g.tex, s, flags)
}

// upload renders s at the texture size and hands the pixels to the
// texture in its own channel order.
func (d *Display) upload(tex va.GLTexture, s *surface, flags va.PutFlags) error {
	frame, src := d.render(s, va.FullRect(s.width, s.height), flags)
	out := image.NewRGBA(image.Rect(0, 0, tex.Width(), tex.Height()))
	scalerFor(flags).Scale(out, out.Rect, frame, src, xdraw.Src, nil)
	if tex.Format() == gputypes.TextureFormatBGRA8Unorm {
		for i := 0; i < len(out.Pix); i += 4 {
			out.Pix[i], out.Pix[i+2] = out.Pix[i+2], out.Pix[i]
		}
	}
	if err := tex.UpdateData(out.Pix); err != nil {
		return va.StatusErrorOperationFailed
	}
	return nil
}

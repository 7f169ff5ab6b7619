// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package present

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/vaout/internal/osdtext"
	"github.com/gogpu/vaout/va"
	"github.com/gogpu/vaout/window"
)

// GLContext is the OpenGL context the gl backend draws into. Setting up
// and tearing down the context belongs to the caller.
//
// DrawQuad honors the matrix stack. The other drawing calls work in
// window coordinates.
type GLContext interface {
	// CreateTexture allocates a texture the driver renders frames into.
	CreateTexture(desc gputypes.TextureDescriptor) (va.GLTexture, error)
	DestroyTexture(tex va.GLTexture)

	Viewport(width, height int)
	Clear(c gputypes.Color)

	// PushMatrix multiplies the current transformation by m and saves
	// the previous one.
	PushMatrix(m Matrix)
	PopMatrix()

	// DrawGradient fills r with a vertical gradient through stops.
	DrawGradient(r image.Rectangle, stops []GradientStop)
	DrawQuad(tex va.GLTexture, q Quad)
	FillRect(r image.Rectangle, c gputypes.Color)

	// DrawMask blends c through the coverage mask with its top-left
	// corner at p.
	DrawMask(mask *image.Alpha, p image.Point, c gputypes.Color)

	// Finish blocks until all drawing has completed.
	Finish()
	Swap() error
}

// Vertex is a quad corner with its texture coordinate and opacity.
type Vertex struct {
	X, Y  float64
	U, V  float64
	Alpha float64
}

// Quad is a textured quad: top-left, top-right, bottom-right,
// bottom-left.
type Quad [4]Vertex

// GradientStop is a color at a relative offset in [0, 1].
type GradientStop struct {
	Offset float64
	Color  gputypes.Color
}

var (
	black = gputypes.Color{A: 1}
	white = gputypes.Color{R: 1, G: 1, B: 1, A: 1}

	// backgroundStops shade the top third from grey to white and the
	// bottom third from white to blue-grey.
	backgroundStops = []GradientStop{
		{0, gputypes.Color{R: 0.85, G: 0.85, B: 0.85, A: 1}},
		{1.0 / 3, white},
		{2.0 / 3, white},
		{1, gputypes.Color{R: 0.62, G: 0.66, B: 0.69, A: 1}},
	}
)

// Reflection layout.
const (
	// reflectTurn is the angle the frame is turned away from the viewer.
	reflectTurn = 20 * math.Pi / 180
	// reflectShift moves the turned frame right.
	reflectShift = 50
	// reflectGap separates the frame from its reflection.
	reflectGap = 5
	// reflectDivisor sets the reflection height to a fifth of the frame.
	reflectDivisor = 5
)

// Statistics bar layout.
const (
	StatsBarHeight    = 32
	statsTextX        = 16
	statsTextBaseline = 20
)

// StatsText formats the statistics bar text.
func StatsText(usage float64, mhz int) string {
	return fmt.Sprintf("vaout: %.1f%% of CPU @ %d MHz", usage, mhz)
}

// FrameQuad maps the whole texture onto r.
func FrameQuad(r image.Rectangle) Quad {
	l, t := float64(r.Min.X), float64(r.Min.Y)
	rr, b := float64(r.Max.X), float64(r.Max.Y)
	return Quad{
		{X: l, Y: t, U: 0, V: 0, Alpha: 1},
		{X: rr, Y: t, U: 1, V: 0, Alpha: 1},
		{X: rr, Y: b, U: 1, V: 1, Alpha: 1},
		{X: l, Y: b, U: 0, V: 1, Alpha: 1},
	}
}

// ReflectionQuad mirrors the bottom fifth of the texture below r, fading
// from opaque to transparent. It is drawn translated by the frame height
// plus a small gap.
func ReflectionQuad(r image.Rectangle) Quad {
	rh := r.Dy() / reflectDivisor
	ry := 1.0
	if r.Dy() > 0 {
		ry = 1 - float64(rh)/float64(r.Dy())
	}
	l, t := float64(r.Min.X), float64(r.Min.Y)
	rr, b := float64(r.Max.X), float64(r.Min.Y+rh)
	return Quad{
		{X: l, Y: t, U: 0, V: 1, Alpha: 1},
		{X: rr, Y: t, U: 1, V: 1, Alpha: 1},
		{X: rr, Y: b, U: 1, V: ry, Alpha: 0},
		{X: l, Y: b, U: 0, V: ry, Alpha: 0},
	}
}

// GLInterop renders surfaces into a GL texture and draws it as a quad.
//
// In copy mode every frame is copied into the texture. Drivers without
// copy support switch the backend to bind mode, where the surface is
// associated with the texture and read between begin and end render
// calls. With Config.TFP the frame goes through a compositing pixmap
// bound as texture instead.
type GLInterop struct {
	glx     va.GLXDisplay
	tex     va.GLTexture
	surf    va.GLSurface
	hasSurf bool
	binding bool

	comp   window.Compositor
	pixmap window.Pixmap
	tfp    bool

	text   *osdtext.Renderer
	frames int
}

// NewGLInterop returns an unconfigured gl backend.
func NewGLInterop() *GLInterop { return &GLInterop{} }

// Name implements Backend.
func (g *GLInterop) Name() string { return BackendGL }

// Binding reports whether the backend binds surfaces instead of copying.
func (g *GLInterop) Binding() bool { return g.binding }

// Texture returns the frame texture, nil before Setup.
func (g *GLInterop) Texture() va.GLTexture { return g.tex }

// TextureDescriptor describes the frame texture for a w x h frame.
func TextureDescriptor(w, h int) gputypes.TextureDescriptor {
	return gputypes.TextureDescriptor{
		Label:         "vaout frame",
		Size:          gputypes.NewExtent2D(uint32(w), uint32(h)),
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Usage:         gputypes.TextureUsageCopyDst | gputypes.TextureUsageTextureBinding,
	}
}

// Setup implements Backend.
func (g *GLInterop) Setup(t *Target) error {
	if t.GL == nil {
		return ErrNoGLContext
	}
	g.tfp = t.Config.TFP
	if g.tfp {
		comp, err := window.CompositorOf(t.Window)
		if err != nil {
			return err
		}
		g.comp = comp
	} else {
		glx, ok := t.Display.(va.GLXDisplay)
		if !ok {
			return ErrNoGLX
		}
		g.glx = glx
	}

	tex, err := t.GL.CreateTexture(TextureDescriptor(t.Width, t.Height))
	if err != nil {
		return fmt.Errorf("present: create texture: %w", err)
	}
	g.tex = tex

	if g.tfp {
		g.pixmap, err = g.comp.CreatePixmap(t.Width, t.Height)
		if err != nil {
			g.Release(t)
			return fmt.Errorf("present: create pixmap: %w", err)
		}
	} else {
		g.surf, err = g.glx.CreateSurfaceGLX(tex)
		if !va.Check(t.logger(), err, "vaCreateSurfaceGLX()") {
			g.Release(t)
			return va.Wrap(err, "vaCreateSurfaceGLX()")
		}
		g.hasSurf = true
		// A switch to bind mode lasts for the session.
		g.binding = g.binding || t.Config.Bind
	}

	if t.Config.Stats && g.text == nil {
		g.text, err = osdtext.New(osdtext.DefaultSize)
		if err != nil {
			t.logger().Warn("statistics text disabled", "err", err)
		}
	}

	w, h := t.Window.Size()
	t.GL.Viewport(w, h)
	t.GL.Clear(black)
	return nil
}

// Put implements Backend.
func (g *GLInterop) Put(t *Target, id va.SurfaceID) error {
	if g.tex == nil {
		return nil
	}
	switch {
	case g.tfp:
		if err := g.putPixmap(t, id); err != nil {
			return err
		}
	case g.binding:
		if err := g.associate(t, id); err != nil {
			return err
		}
	default:
		if err := g.copy(t, id); err != nil {
			return err
		}
	}
	g.frames++
	return nil
}

func (g *GLInterop) putPixmap(t *Target, id va.SurfaceID) error {
	src := t.Source()
	for i := range t.Fields() {
		err := t.Display.PutSurface(id, g.pixmap.Drawable, src, src, t.PutFlags(i))
		if !va.Check(t.logger(), err, "vaPutSurface()") {
			return va.Wrap(err, "vaPutSurface()")
		}
	}
	if err := g.comp.BindTexImage(g.pixmap, g.tex); err != nil {
		t.logger().Error("texture from pixmap failed", "err", err)
		return err
	}
	return nil
}

func (g *GLInterop) associate(t *Target, id va.SurfaceID) error {
	for i := range t.Fields() {
		err := g.glx.AssociateSurfaceGLX(g.surf, id, t.PutFlags(i))
		if !va.Check(t.logger(), err, "vaAssociateSurfaceGLX()") {
			return va.Wrap(err, "vaAssociateSurfaceGLX()")
		}
	}
	return nil
}

func (g *GLInterop) copy(t *Target, id va.SurfaceID) error {
	for i := range t.Fields() {
		err := g.glx.CopySurfaceGLX(g.surf, id, t.PutFlags(i))
		if va.IsUnimplemented(err) {
			t.logger().Warn("vaCopySurfaceGLX() is not implemented, binding surfaces instead")
			g.binding = true
			return g.associate(t, id)
		}
		if !va.Check(t.logger(), err, "vaCopySurfaceGLX()") {
			return va.Wrap(err, "vaCopySurfaceGLX()")
		}
	}
	return nil
}

// Flip implements Backend. Nothing is drawn before the first Put.
func (g *GLInterop) Flip(t *Target) error {
	if g.tex == nil || g.frames == 0 {
		return nil
	}
	gl := t.GL
	w, h := t.Window.Size()
	gl.Clear(black)

	if t.Config.Reflect {
		gl.DrawGradient(image.Rect(0, 0, w, h), backgroundStops)
		gl.PushMatrix(Translate(reflectShift, 0).Multiply(Scale(math.Cos(reflectTurn), 1)))
	}

	frameErr := g.draw(t, FrameQuad(t.Output))

	if t.Config.Reflect {
		gl.PushMatrix(Translate(0, float64(t.Output.Dy()+reflectGap)))
		if err := g.draw(t, ReflectionQuad(t.Output)); frameErr == nil {
			frameErr = err
		}
		gl.PopMatrix()
		gl.PopMatrix()
	}

	if t.Config.Stats && t.Stats != nil {
		g.drawStats(t, w)
	}

	if t.Config.GLFinish {
		gl.Finish()
	}
	if err := gl.Swap(); err != nil {
		return fmt.Errorf("present: swap: %w", err)
	}
	if t.Window.Fullscreen() {
		// Clear the back buffer so borders do not flicker.
		gl.Clear(black)
	}
	return frameErr
}

// draw renders the texture through q, wrapping the draw in begin/end
// render calls in bind mode.
func (g *GLInterop) draw(t *Target, q Quad) error {
	if g.binding && g.hasSurf {
		err := g.glx.BeginRenderSurfaceGLX(g.surf)
		if !va.Check(t.logger(), err, "vaBeginRenderSurfaceGLX()") {
			return va.Wrap(err, "vaBeginRenderSurfaceGLX()")
		}
	}
	t.GL.DrawQuad(g.tex, q)
	if g.binding && g.hasSurf {
		err := g.glx.EndRenderSurfaceGLX(g.surf)
		if !va.Check(t.logger(), err, "vaEndRenderSurfaceGLX()") {
			return va.Wrap(err, "vaEndRenderSurfaceGLX()")
		}
	}
	return nil
}

func (g *GLInterop) drawStats(t *Target, width int) {
	t.GL.FillRect(image.Rect(0, 0, width, StatsBarHeight), black)
	if g.text == nil {
		return
	}
	s := t.Stats.Last()
	mask := g.text.Render(StatsText(s.Usage, s.MHz))
	if mask == nil {
		return
	}
	t.GL.DrawMask(mask, image.Pt(statsTextX, statsTextBaseline-g.text.Ascent()), white)
}

// Resize implements Backend.
func (g *GLInterop) Resize(t *Target) error {
	if t.GL == nil {
		return nil
	}
	w, h := t.Window.Size()
	t.GL.Viewport(w, h)
	t.GL.Clear(black)
	return nil
}

// Release implements Backend.
func (g *GLInterop) Release(t *Target) {
	if g.hasSurf {
		va.Check(t.logger(), g.glx.DestroySurfaceGLX(g.surf), "vaDestroySurfaceGLX()")
		g.hasSurf = false
	}
	if g.pixmap.Drawable != 0 {
		if err := g.comp.FreePixmap(g.pixmap); err != nil {
			t.logger().Warn("free pixmap failed", "err", err)
		}
		g.pixmap = window.Pixmap{}
	}
	if g.tex != nil && t.GL != nil {
		t.GL.DestroyTexture(g.tex)
	}
	g.tex = nil
	g.frames = 0
}

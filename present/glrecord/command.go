// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package glrecord provides a recording present.GLContext.
//
// Every call is captured as a typed command, so tests can inspect what
// the gl backend drew, and is also rasterized into an RGBA back buffer
// that Swap copies to the front buffer. The rasterizer handles affine
// textured quads with per-vertex opacity, vertical gradients, solid
// rectangles and coverage masks: exactly what the backend issues.
package glrecord

import (
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/vaout/present"
)

// CommandType identifies a recorded call.
type CommandType uint8

const (
	CmdCreateTexture CommandType = iota
	CmdDestroyTexture
	CmdViewport
	CmdClear
	CmdPushMatrix
	CmdPopMatrix
	CmdDrawGradient
	CmdDrawQuad
	CmdFillRect
	CmdDrawMask
	CmdFinish
	CmdSwap
)

var commandTypeNames = [...]string{
	CmdCreateTexture:  "CreateTexture",
	CmdDestroyTexture: "DestroyTexture",
	CmdViewport:       "Viewport",
	CmdClear:          "Clear",
	CmdPushMatrix:     "PushMatrix",
	CmdPopMatrix:      "PopMatrix",
	CmdDrawGradient:   "DrawGradient",
	CmdDrawQuad:       "DrawQuad",
	CmdFillRect:       "FillRect",
	CmdDrawMask:       "DrawMask",
	CmdFinish:         "Finish",
	CmdSwap:           "Swap",
}

// String returns the call name.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is one recorded call.
type Command interface {
	Type() CommandType
}

// CreateTextureCommand records a texture allocation.
type CreateTextureCommand struct {
	Desc gputypes.TextureDescriptor
}

// Type implements Command.
func (CreateTextureCommand) Type() CommandType { return CmdCreateTexture }

// DestroyTextureCommand records a texture release.
type DestroyTextureCommand struct {
	Texture *Texture
}

// Type implements Command.
func (DestroyTextureCommand) Type() CommandType { return CmdDestroyTexture }

// ViewportCommand records a viewport change.
type ViewportCommand struct {
	Width, Height int
}

// Type implements Command.
func (ViewportCommand) Type() CommandType { return CmdViewport }

// ClearCommand records a clear of the back buffer.
type ClearCommand struct {
	Color gputypes.Color
}

// Type implements Command.
func (ClearCommand) Type() CommandType { return CmdClear }

// PushMatrixCommand records a matrix push. Matrix is the product after
// the push.
type PushMatrixCommand struct {
	Matrix present.Matrix
}

// Type implements Command.
func (PushMatrixCommand) Type() CommandType { return CmdPushMatrix }

// PopMatrixCommand records a matrix pop.
type PopMatrixCommand struct{}

// Type implements Command.
func (PopMatrixCommand) Type() CommandType { return CmdPopMatrix }

// DrawGradientCommand records a gradient fill.
type DrawGradientCommand struct {
	Rect  image.Rectangle
	Stops []present.GradientStop
}

// Type implements Command.
func (DrawGradientCommand) Type() CommandType { return CmdDrawGradient }

// DrawQuadCommand records a textured quad with the transformation in
// effect.
type DrawQuadCommand struct {
	Texture *Texture
	Quad    present.Quad
	Matrix  present.Matrix
}

// Type implements Command.
func (DrawQuadCommand) Type() CommandType { return CmdDrawQuad }

// FillRectCommand records a solid fill.
type FillRectCommand struct {
	Rect  image.Rectangle
	Color gputypes.Color
}

// Type implements Command.
func (FillRectCommand) Type() CommandType { return CmdFillRect }

// DrawMaskCommand records a masked fill.
type DrawMaskCommand struct {
	Rect  image.Rectangle
	Color gputypes.Color
}

// Type implements Command.
func (DrawMaskCommand) Type() CommandType { return CmdDrawMask }

// FinishCommand records a pipeline wait.
type FinishCommand struct{}

// Type implements Command.
func (FinishCommand) Type() CommandType { return CmdFinish }

// SwapCommand records a buffer swap.
type SwapCommand struct{}

// Type implements Command.
func (SwapCommand) Type() CommandType { return CmdSwap }

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package present displays decoded surfaces.
//
// A Backend puts one surface into the window per displayed frame. Three
// backends exist:
//
//   - DirectBlit scales the surface straight into the window.
//   - GLInterop renders the surface into an OpenGL texture and draws it as
//     a textured quad, with optional reflection and statistics bar.
//   - Composited blits into an off-screen pixmap and composites the
//     pixmap onto the window.
//
// Backends are selected once per configuration through a
// gpucontext.Registry keyed by name ("gl", "xrender", "blit").
//
// Ring is the two-slot output ring that keeps the previously displayed
// surface alive while the next one is prepared.
package present

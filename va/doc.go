// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package va defines the boundary between vaout and a video acceleration
// driver.
//
// The types mirror the VA-API object model: a Display owns surfaces
// (decode targets), images (CPU-mappable pixel buffers), subpictures
// (overlays blended at display time), decode configurations and contexts.
// Every object is addressed by a 32-bit ID; InvalidID marks an absent
// object.
//
// Drivers implement Display. Two implementations ship with vaout:
//
//   - va/software: an in-memory reference driver used by tests and the
//     headless CLI.
//   - va/libva: a cgo binding to libva and libva-x11 (build tag "vaapi").
//
// Every Display call is synchronous. A call may block on GPU or driver
// synchronization but there is no cancellation; it runs to completion or
// returns a Status.
package va

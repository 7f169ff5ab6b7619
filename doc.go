// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package vaout is a hardware-accelerated video output for media players.
//
// # Overview
//
// A VideoOutput receives decoded pictures from a host player and shows
// them through a video acceleration driver. Pictures of accelerated
// formats are decoded by the driver straight into pool surfaces; software
// pictures are uploaded into a surface image first. Either way the
// surface is queued in a double-buffered output ring and presented by one
// of three backends:
//
//   - blit: the driver scales the surface into the window
//   - gl: the surface is rendered into an OpenGL texture and drawn as a
//     quad, optionally with a reflection effect and a statistics bar
//   - xrender: the surface is put into a compositing pixmap which is then
//     composited onto the window
//
// The host's on-screen display and subtitles are composited as driver
// subpictures.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/vaout"
//	    "github.com/gogpu/vaout/config"
//	    "github.com/gogpu/vaout/imgfmt"
//	    "github.com/gogpu/vaout/va/software"
//	    "github.com/gogpu/vaout/window"
//	)
//
//	d := software.New()
//	win := window.NewHeadless(d, 1280, 720)
//	vo, err := vaout.New(d, win, config.Default())
//	if err != nil {
//	    return err
//	}
//	defer vo.Teardown()
//
//	err = vo.Configure(1920, 1080, 1920, 1080, 0, imgfmt.VAAPIH264)
//	...
//	for each picture {
//	    vo.GetDecodeSurface(f)  // decoder renders into f.SurfaceID
//	    vo.SubmitDecoded(f)
//	    vo.PresentCurrentFrame()
//	    vo.HandleWindowEvents()
//	}
//
// # Concurrency
//
// A VideoOutput is not safe for concurrent use. All entry points must be
// called from the player's video goroutine. Only SetLogger and Logger
// may be called from any goroutine.
//
// # Packages
//
//   - va: driver interface, status codes and object types
//   - va/software: in-memory reference driver
//   - va/libva: cgo binding to libva (build tag vaapi)
//   - caps: capability probing
//   - surface: surface pool with LRU and direct mapping
//   - decode: decode context binding
//   - imgfmt: pixel formats and their quirks
//   - present: output ring and presentation backends
//   - present/glrecord: recording GL context for tests and snapshots
//   - overlay: OSD and subtitle compositors
//   - stats: CPU usage sampler for the statistics overlay
//   - config: suboption parsing
//   - window: window and compositor collaborators, headless window
//
// The vaout command (cmd/vaout) probes a driver, lists the supported
// formats and plays a test pattern through a VideoOutput.
package vaout

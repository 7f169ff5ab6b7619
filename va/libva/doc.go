// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package libva implements va.Display on top of the system libva.
//
// The binding needs the libva, libva-drm, libva-x11 and x11 development
// packages and is only compiled with the "vaapi" build tag:
//
//	go build -tags vaapi ./...
//
// OpenDRM opens a render node and is enough for probing and decoding.
// PutSurface needs an X11 connection, so displays that blit into windows
// come from OpenX11. The GL interop entry points of va.GLXDisplay are not
// provided; the gl backend is unavailable on this driver.
package libva

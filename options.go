// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package vaout

import (
	"log/slog"
	"os"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/vaout/present"
	"github.com/gogpu/vaout/stats"
)

// DebugEnv enables the surface pool conservation checks when set to 1.
const DebugEnv = "VAOUT_DEBUG"

// Option configures a VideoOutput during creation.
//
// Example:
//
//	// Blit straight into the window
//	vo, err := vaout.New(display, win, config.Default())
//
//	// Present through an OpenGL context
//	cfg, _ := config.Parse("gl:reflect")
//	vo, err := vaout.New(display, win, cfg, vaout.WithGLContext(glctx))
type Option func(*options)

// options holds optional configuration for VideoOutput creation.
type options struct {
	log      *slog.Logger
	debug    bool
	gl       present.GLContext
	stats    *stats.Sampler
	backends *gpucontext.Registry[present.Backend]
}

func defaultOptions() options {
	return options{
		log:   Logger(),
		debug: os.Getenv(DebugEnv) == "1",
	}
}

// WithLogger sets the logger for this output and every component it
// creates. It overrides the package logger set by SetLogger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithDebug enables the surface pool checks that panic on the first
// conservation violation.
func WithDebug(on bool) Option {
	return func(o *options) {
		o.debug = on
	}
}

// WithGLContext sets the OpenGL context used by the gl backend.
func WithGLContext(gl present.GLContext) Option {
	return func(o *options) {
		o.gl = gl
	}
}

// WithStats replaces the CPU usage sampler of the statistics overlay.
func WithStats(s *stats.Sampler) Option {
	return func(o *options) {
		o.stats = s
	}
}

// WithBackends replaces the registry the presentation backend is
// selected from.
func WithBackends(r *gpucontext.Registry[present.Backend]) Option {
	return func(o *options) {
		o.backends = r
	}
}

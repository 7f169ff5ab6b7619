// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gogpu/vaout"
	"github.com/gogpu/vaout/config"
	"github.com/gogpu/vaout/imgfmt"
	"github.com/gogpu/vaout/internal/cli/styles"
	"github.com/gogpu/vaout/present/glrecord"
	"github.com/gogpu/vaout/va"
	"github.com/gogpu/vaout/window"
)

func (a *app) formatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "Report the capabilities of every known format",
		Long: `Formats opens a video output on the driver and asks it about every
accelerated and software format. Formats the driver cannot handle are
reported as unsupported.`,
		Args: cobra.NoArgs,
		RunE: a.runFormats,
	}
}

func (a *app) runFormats(cmd *cobra.Command, _ []string) error {
	cfg, err := a.outputConfig()
	if err != nil {
		return err
	}
	d, _, err := a.openDriver()
	if err != nil {
		return err
	}
	win := window.NewHeadless(drawables(d), 320, 240)
	defer win.Close()

	vo, _, err := a.newOutput(d, win, cfg)
	if err != nil {
		return err
	}
	defer vo.Teardown()

	var rows []styles.FormatSupport
	for _, f := range imgfmt.All() {
		c := vo.QueryFormat(f)
		rows = append(rows, styles.FormatSupport{
			Name:        f.String(),
			Accelerated: f.IsAccelerated(),
			Caps:        c.String(),
			Supported:   c != 0,
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), a.renderer.Formats(rows))
	return nil
}

// newOutput opens a video output. The gl backend renders into a
// recording context of the window size, returned as rec.
func (a *app) newOutput(d va.Display, win window.Window, cfg config.Config) (vo *vaout.VideoOutput, rec *glrecord.Recorder, err error) {
	opts := []vaout.Option{vaout.WithDebug(a.debug())}
	if cfg.GL {
		w, h := win.Size()
		rec = glrecord.New(w, h)
		opts = append(opts, vaout.WithGLContext(rec))
	}
	vo, err = vaout.New(d, win, cfg, opts...)
	return vo, rec, err
}

// drawables returns d as a drawable registry, or nil when the driver
// cannot draw into a headless window.
func drawables(d va.Display) window.Drawables {
	if reg, ok := d.(window.Drawables); ok {
		return reg
	}
	return nil
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package cmd

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/spf13/cobra"

	"github.com/gogpu/vaout"
	"github.com/gogpu/vaout/decode"
	"github.com/gogpu/vaout/imgfmt"
	"github.com/gogpu/vaout/internal/detect"
	"github.com/gogpu/vaout/va"
	"github.com/gogpu/vaout/window"
)

// errNoDrawables is returned by play for drivers that cannot draw into
// a headless window.
var errNoDrawables = errors.New("play needs a driver that draws into headless windows")

type playOptions struct {
	format string
	input  string
	frames int
	size   string
	window string
	out    string
}

func (a *app) playCommand() *cobra.Command {
	var o playOptions
	c := &cobra.Command{
		Use:   "play",
		Short: "Play a synthetic stream into a headless window",
		Long: `Play configures the video output, generates moving color bars and
presents every frame into a headless window.

Accelerated formats go through the decode surface round trip: a surface
is requested, filled by the driver and submitted. Software formats are
uploaded plane by plane. With --input the format and size are taken from
the video track of an MP4 file.

Examples:
  vaout play --format yv12 --size 320x240
  vaout play --input movie.mp4 --frames 100 --out last.png
  vaout play --format h264 --subopts dm=2:stats`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runPlay(cmd, o)
		},
	}
	f := c.Flags()
	f.StringVar(&o.format, "format", "yv12", "pixel format, e.g. h264, mpeg2, nv12")
	f.StringVar(&o.input, "input", "", "MP4 file whose video track selects format and size")
	f.IntVar(&o.frames, "frames", 30, "number of frames to present")
	f.StringVar(&o.size, "size", "640x360", "frame size")
	f.StringVar(&o.window, "window", "", "window size (default: frame size)")
	f.StringVar(&o.out, "out", "", "write the final window contents to this PNG file")
	return c
}

// surfaceWriter is implemented by drivers that can fill a surface
// without a bitstream, such as the software driver.
type surfaceWriter interface {
	WriteSurface(id va.SurfaceID, src *image.YCbCr) error
}

func (a *app) runPlay(cmd *cobra.Command, o playOptions) error {
	if o.frames <= 0 {
		return fmt.Errorf("--frames must be positive, got %d", o.frames)
	}
	format, err := imgfmt.Parse(o.format)
	if err != nil {
		return err
	}
	w, h, err := parseSize(o.size)
	if err != nil {
		return err
	}
	if o.input != "" {
		s, err := detect.FromFile(o.input)
		if err != nil {
			return err
		}
		format = s.Format
		if s.Width > 0 && s.Height > 0 {
			w, h = s.Width, s.Height
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s %dx%d (%s)\n", o.input, s.SampleEntry, w, h, s.Profile)
	}
	ww, wh := w, h
	if o.window != "" {
		if ww, wh, err = parseSize(o.window); err != nil {
			return err
		}
	}

	cfg, err := a.outputConfig()
	if err != nil {
		return err
	}
	d, _, err := a.openDriver()
	if err != nil {
		return err
	}
	reg := drawables(d)
	if reg == nil {
		return errNoDrawables
	}
	win := window.NewHeadless(reg, ww, wh)
	defer win.Close()

	vo, rec, err := a.newOutput(d, win, cfg)
	if err != nil {
		return err
	}
	defer vo.Teardown()

	if vo.QueryFormat(format) == 0 {
		return fmt.Errorf("%w: %s", vaout.ErrUnsupportedFormat, format)
	}
	if err := vo.Configure(w, h, w, h, 0, format); err != nil {
		return err
	}

	writer, _ := d.(surfaceWriter)
	// Picture buffers are reused like a decoder's, so each one gives its
	// previous surface back before taking the next.
	slots := decode.SurfaceCount(format, true)
	pictures := make([]vaout.Frame, slots)
	shown := 0
	for i := range o.frames {
		img := colorBars(w, h, i*w/o.frames)
		var f *vaout.Frame
		if format.IsAccelerated() {
			f = &pictures[i%slots]
			f.Format, f.Width, f.Height = format, w, h
			f.Numbered, f.Number = true, i%slots
			if !vo.GetDecodeSurface(f) {
				return fmt.Errorf("frame %d: no decode surface", i)
			}
			if writer != nil {
				if err := writer.WriteSurface(f.SurfaceID, img); err != nil {
					return fmt.Errorf("frame %d: %w", i, err)
				}
			}
		} else {
			f = softwareFrame(format, img)
		}
		if !vo.SubmitDecoded(f) {
			continue
		}
		vo.DrawStatsOverlay()
		vo.PresentCurrentFrame()
		vo.HandleWindowEvents()
		shown++
	}

	fmt.Fprintf(cmd.OutOrStdout(), "presented %d/%d frames of %s %dx%d via %s into %v\n",
		shown, o.frames, format, w, h, vo.Backend().Name(), vo.Output())

	if o.out == "" {
		return nil
	}
	snap := win.Snapshot()
	if rec != nil {
		snap = rec.Frame()
	}
	return writePNG(o.out, snap)
}

func parseSize(s string) (int, int, error) {
	var w, h int
	if _, err := fmt.Sscanf(s, "%dx%d", &w, &h); err != nil || w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("invalid size %q, want WIDTHxHEIGHT", s)
	}
	return w, h, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

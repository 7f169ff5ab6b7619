// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gogpu/vaout"
	"github.com/gogpu/vaout/caps"
	"github.com/gogpu/vaout/internal/cli/styles"
	"github.com/gogpu/vaout/va"
)

func (a *app) probeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "List what the driver can decode and display",
		Long: `Probe initializes the driver and lists its decode profiles with
their entry points, the image and subpicture formats, the equalizer
attributes and the direct-surface attribute.

Examples:
  vaout probe
  vaout probe --driver libva --device /dev/dri/renderD129`,
		Args: cobra.NoArgs,
		RunE: a.runProbe,
	}
}

func (a *app) runProbe(cmd *cobra.Command, _ []string) error {
	d, name, err := a.openDriver()
	if err != nil {
		return err
	}
	c, err := caps.Probe(d, caps.WithLogger(vaout.Logger()))
	if err != nil {
		return err
	}
	defer d.Terminate()

	for _, p := range c.Profiles {
		eps, err := d.QueryConfigEntrypoints(p)
		if va.Check(vaout.Logger(), err, "vaQueryConfigEntrypoints()") {
			c.SetEntrypoints(p, eps)
		}
	}
	fmt.Fprintln(cmd.OutOrStdout(), a.renderer.Probe(probeReport(name, c)))
	return nil
}

func probeReport(driver string, c *caps.Capabilities) styles.ProbeReport {
	rep := styles.ProbeReport{
		Driver:  driver,
		Vendor:  c.Vendor,
		Version: fmt.Sprintf("%d.%d", c.Major, c.Minor),
	}
	for _, p := range c.Profiles {
		var eps []string
		for _, e := range c.Entrypoints(p) {
			eps = append(eps, strings.TrimPrefix(e.String(), "VAEntrypoint"))
		}
		rep.Profiles = append(rep.Profiles, [2]string{p.String(), strings.Join(eps, ", ")})
	}
	for _, f := range c.ImageFormats {
		rep.ImageFormats = append(rep.ImageFormats, styles.FormatRow{FourCC: f.FourCC.String(), Bits: f.BitsPerPixel})
	}
	for i, f := range c.SubpictureFormats {
		rep.SubpictureFormats = append(rep.SubpictureFormats, styles.FormatRow{
			FourCC: f.FourCC.String(),
			Bits:   f.BitsPerPixel,
			Flags:  subpictureFlags(c.SubpictureFlags[i]),
		})
	}
	for _, at := range c.Attributes {
		rep.Attributes = append(rep.Attributes, styles.AttributeRow{
			Name:     at.Type.String(),
			Min:      at.MinValue,
			Max:      at.MaxValue,
			Value:    at.Value,
			Gettable: at.Gettable(),
			Settable: at.Settable(),
		})
	}
	if ds := c.DirectSurface; ds != nil {
		rep.DirectSurface = fmt.Sprint(ds.Value)
		if c.RetainsSurfaces() {
			rep.DirectSurface += " (surfaces retained, direct mapping)"
		}
	}
	return rep
}

func subpictureFlags(f va.SubpictureFlags) string {
	var parts []string
	if f&va.SubpictureChromaKeying != 0 {
		parts = append(parts, "chroma-key")
	}
	if f&va.SubpictureGlobalAlpha != 0 {
		parts = append(parts, "global-alpha")
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}

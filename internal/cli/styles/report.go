// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// ProbeReport is the driver capability listing of "vaout probe".
type ProbeReport struct {
	Driver  string
	Vendor  string
	Version string

	// Profiles pairs each profile with its entry points.
	Profiles          [][2]string
	ImageFormats      []FormatRow
	SubpictureFormats []FormatRow
	Attributes        []AttributeRow

	// DirectSurface is empty when the driver does not report it.
	DirectSurface string
}

// FormatRow is one image or subpicture format.
type FormatRow struct {
	FourCC string
	Bits   int
	Flags  string
}

// AttributeRow is one display attribute.
type AttributeRow struct {
	Name     string
	Min, Max int
	Value    int
	Gettable bool
	Settable bool
}

// FormatSupport is one line of "vaout formats".
type FormatSupport struct {
	Name        string
	Accelerated bool
	Caps        string
	Supported   bool
}

// Renderer formats command output.
type Renderer struct {
	theme *Theme
}

// NewRenderer returns a renderer using theme.
func NewRenderer(theme *Theme) *Renderer {
	return &Renderer{theme: theme}
}

// Probe renders the capability listing.
func (r *Renderer) Probe(rep ProbeReport) string {
	header := fmt.Sprintf("%s %s %s",
		r.theme.Title.Render(rep.Driver),
		r.theme.Normal.Render(rep.Vendor),
		r.theme.Subtle.Render("VA-API "+rep.Version))

	sections := []string{header}

	profiles := make([][]string, 0, len(rep.Profiles))
	for _, p := range rep.Profiles {
		profiles = append(profiles, []string{p[0], p[1]})
	}
	sections = append(sections, r.section("Profiles", []string{"Profile", "Entry points"}, profiles))
	sections = append(sections, r.section("Image formats", []string{"FourCC", "Bits"}, formatRows(rep.ImageFormats, false)))
	sections = append(sections, r.section("Subpicture formats", []string{"FourCC", "Bits", "Flags"}, formatRows(rep.SubpictureFormats, true)))

	attrs := make([][]string, 0, len(rep.Attributes))
	for _, a := range rep.Attributes {
		attrs = append(attrs, []string{
			a.Name,
			fmt.Sprint(a.Min), fmt.Sprint(a.Max), fmt.Sprint(a.Value),
			access(a.Gettable, a.Settable),
		})
	}
	sections = append(sections, r.section("Equalizer", []string{"Attribute", "Min", "Max", "Value", "Access"}, attrs))

	ds := r.theme.Subtle.Render("not reported")
	if rep.DirectSurface != "" {
		ds = r.theme.Normal.Render(rep.DirectSurface)
	}
	sections = append(sections, fmt.Sprintf("%s %s", r.theme.Highlight.Render("Direct surface"), ds))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// Formats renders the QueryFormat result of every known format.
func (r *Renderer) Formats(rows []FormatSupport) string {
	data := make([][]string, 0, len(rows))
	for _, f := range rows {
		kind := "software"
		if f.Accelerated {
			kind = "accelerated"
		}
		data = append(data, []string{f.Name, kind, f.Caps})
	}
	t := r.table([]string{"Format", "Kind", "Capabilities"}, data)
	t.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return r.theme.Header
		case col == 2 && !rows[row].Supported:
			return r.theme.Cell.Foreground(r.theme.Error)
		default:
			return r.theme.Cell
		}
	})
	return t.String()
}

func (r *Renderer) section(title string, headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return fmt.Sprintf("%s %s", r.theme.Highlight.Render(title), r.theme.Subtle.Render("none"))
	}
	return r.theme.Highlight.Render(title) + "\n" + r.table(headers, rows).String()
}

func (r *Renderer) table(headers []string, rows [][]string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(r.theme.Border)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.theme.Header
			}
			return r.theme.Cell
		})
}

func formatRows(formats []FormatRow, flags bool) [][]string {
	rows := make([][]string, 0, len(formats))
	for _, f := range formats {
		row := []string{f.FourCC, fmt.Sprint(f.Bits)}
		if flags {
			row = append(row, f.Flags)
		}
		rows = append(rows, row)
	}
	return rows
}

func access(get, set bool) string {
	var parts []string
	if get {
		parts = append(parts, "get")
	}
	if set {
		parts = append(parts, "set")
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, "/")
}

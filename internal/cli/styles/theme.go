// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package styles renders the vaout command output with lipgloss.
package styles

import "github.com/charmbracelet/lipgloss"

// Theme holds the colors and styles of the command output.
type Theme struct {
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Accent lipgloss.Color
	Border lipgloss.Color

	Error   lipgloss.Color
	Success lipgloss.Color

	Title        lipgloss.Style
	Normal       lipgloss.Style
	Subtle       lipgloss.Style
	Highlight    lipgloss.Style
	ErrorStyle   lipgloss.Style
	SuccessStyle lipgloss.Style

	Header lipgloss.Style
	Cell   lipgloss.Style
	Box    lipgloss.Style
}

// DefaultTheme returns the dark theme.
func DefaultTheme() *Theme {
	t := &Theme{
		Text:    lipgloss.Color("#e4e4e7"),
		Muted:   lipgloss.Color("#71717a"),
		Accent:  lipgloss.Color("#4ade80"),
		Border:  lipgloss.Color("#3f3f46"),
		Error:   lipgloss.Color("#f87171"),
		Success: lipgloss.Color("#4ade80"),
	}
	t.Title = lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	t.Normal = lipgloss.NewStyle().Foreground(t.Text)
	t.Subtle = lipgloss.NewStyle().Foreground(t.Muted)
	t.Highlight = lipgloss.NewStyle().Foreground(t.Accent)
	t.ErrorStyle = lipgloss.NewStyle().Foreground(t.Error)
	t.SuccessStyle = lipgloss.NewStyle().Foreground(t.Success)
	t.Header = lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Padding(0, 1)
	t.Cell = lipgloss.NewStyle().Foreground(t.Text).Padding(0, 1)
	t.Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)
	return t
}

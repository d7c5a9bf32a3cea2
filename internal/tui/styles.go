// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "github.com/charmbracelet/lipgloss"

const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// ValidTheme reports whether name is a known theme.
func ValidTheme(name string) bool {
	return name == ThemeDark || name == ThemeLight
}

func nextTheme(name string) string {
	if name == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

type styles struct {
	app       lipgloss.Style
	title     lipgloss.Style
	help      lipgloss.Style
	status    lipgloss.Style
	statusErr lipgloss.Style
	header    lipgloss.Style
	selected  lipgloss.Style
	paid      lipgloss.Style
	pending   lipgloss.Style
	box       lipgloss.Style

	accent lipgloss.Color
}

type palette struct {
	accent, muted, ok, warn, bad, selectedBg lipgloss.Color
}

var palettes = map[string]palette{
	ThemeDark:  {accent: "212", muted: "245", ok: "42", warn: "214", bad: "203", selectedBg: "237"},
	ThemeLight: {accent: "127", muted: "241", ok: "28", warn: "130", bad: "160", selectedBg: "254"},
}

func newStyles(theme string) styles {
	p, ok := palettes[theme]
	if !ok {
		p = palettes[ThemeDark]
	}

	return styles{
		app:       lipgloss.NewStyle().Padding(1, 2),
		title:     lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		help:      lipgloss.NewStyle().Faint(true).Foreground(p.muted),
		status:    lipgloss.NewStyle().Foreground(p.ok),
		statusErr: lipgloss.NewStyle().Bold(true).Foreground(p.bad),
		header:    lipgloss.NewStyle().Bold(true).Underline(true),
		selected:  lipgloss.NewStyle().Background(p.selectedBg).Bold(true),
		paid:      lipgloss.NewStyle().Foreground(p.ok),
		pending:   lipgloss.NewStyle().Foreground(p.warn),
		box:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.accent).Padding(1, 2),

		accent: p.accent,
	}
}

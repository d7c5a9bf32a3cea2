// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const uiDivider = "──────────────────────────────────────────────────────────────────────"

func renderPage(s styles, title, body, hotKeys string) string {
	var b strings.Builder

	b.WriteString(s.title.Render(title))
	b.WriteString("\n")
	b.WriteString(uiDivider)
	b.WriteString("\n\n")

	if strings.TrimSpace(body) != "" {
		b.WriteString(body)
		b.WriteString("\n")
	} else {
		b.WriteString("-\n")
	}

	b.WriteString("\n")
	b.WriteString(uiDivider)
	b.WriteString("\n")
	if strings.TrimSpace(hotKeys) != "" {
		b.WriteString(s.help.Render(hotKeys))
		b.WriteString("\n")
	}
	b.WriteString(s.help.Render("ctrl+c: quit"))

	return s.app.Render(b.String())
}

// fitText shortens v to max display cells, marking the cut with "...".
func fitText(v string, max int) string {
	if max <= 0 || lipgloss.Width(v) <= max {
		return v
	}
	runes := []rune(v)
	if max <= 3 {
		return string(runes[:max])
	}
	for len(runes) > 0 && lipgloss.Width(string(runes))+3 > max {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

func padRight(v string, width int) string {
	if gap := width - lipgloss.Width(v); gap > 0 {
		return v + strings.Repeat(" ", gap)
	}
	return v
}

func padLeft(v string, width int) string {
	if gap := width - lipgloss.Width(v); gap > 0 {
		return strings.Repeat(" ", gap) + v
	}
	return v
}

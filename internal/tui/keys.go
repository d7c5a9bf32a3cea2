// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up        key.Binding
	down      key.Binding
	pageUp    key.Binding
	pageDown  key.Binding
	enter     key.Binding
	esc       key.Binding
	tab       key.Binding
	backtab   key.Binding
	quit      key.Binding
	logout    key.Binding
	search    key.Binding
	filter    key.Binding
	grouping  key.Binding
	add       key.Binding
	edit      key.Binding
	markPaid  key.Binding
	delete    key.Binding
	deleteAll key.Binding
	upload    key.Binding
	exportCSV key.Binding
	copyCSV   key.Binding
	theme     key.Binding
	buildInfo key.Binding
	switchTo  key.Binding
	yes       key.Binding
	no        key.Binding
}

var keys = keyMap{
	up:        key.NewBinding(key.WithKeys("up", "k")),
	down:      key.NewBinding(key.WithKeys("down", "j")),
	pageUp:    key.NewBinding(key.WithKeys("pgup")),
	pageDown:  key.NewBinding(key.WithKeys("pgdown")),
	enter:     key.NewBinding(key.WithKeys("enter")),
	esc:       key.NewBinding(key.WithKeys("esc")),
	tab:       key.NewBinding(key.WithKeys("tab", "down")),
	backtab:   key.NewBinding(key.WithKeys("shift+tab", "up")),
	quit:      key.NewBinding(key.WithKeys("q")),
	logout:    key.NewBinding(key.WithKeys("l")),
	search:    key.NewBinding(key.WithKeys("/")),
	filter:    key.NewBinding(key.WithKeys("f")),
	grouping:  key.NewBinding(key.WithKeys("g")),
	add:       key.NewBinding(key.WithKeys("a")),
	edit:      key.NewBinding(key.WithKeys("e", "enter")),
	markPaid:  key.NewBinding(key.WithKeys("p")),
	delete:    key.NewBinding(key.WithKeys("d")),
	deleteAll: key.NewBinding(key.WithKeys("D")),
	upload:    key.NewBinding(key.WithKeys("u")),
	exportCSV: key.NewBinding(key.WithKeys("x")),
	copyCSV:   key.NewBinding(key.WithKeys("c")),
	theme:     key.NewBinding(key.WithKeys("t")),
	buildInfo: key.NewBinding(key.WithKeys("v")),
	switchTo:  key.NewBinding(key.WithKeys("ctrl+r")),
	yes:       key.NewBinding(key.WithKeys("y")),
	no:        key.NewBinding(key.WithKeys("n", "esc")),
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

type confirmKind int

const (
	confirmDelete confirmKind = iota
	confirmDeleteAll
	confirmLogout
)

type confirmModel struct {
	kind    confirmKind
	id      string
	message string
}

func (m confirmModel) View(s styles) string {
	content := m.message + "\n\n"
	content += "y yes    n no"
	return s.box.Render(content)
}

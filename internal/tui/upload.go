// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
)

// uploadModel asks for a spreadsheet path. Progress of a running upload or
// delete-all is drawn by the root model.
type uploadModel struct {
	path   textinput.Model
	errMsg string
}

func newUploadModel() uploadModel {
	path := textinput.New()
	path.Placeholder = "/path/to/loans.xlsx"
	path.Width = 60
	path.Prompt = ""
	path.Focus()
	return uploadModel{path: path}
}

func (m uploadModel) value() string {
	return strings.Trim(strings.TrimSpace(m.path.Value()), `"'`)
}

func (m uploadModel) View(s styles) string {
	var b strings.Builder
	b.WriteString("Spreadsheet (.xlsx or .csv)\n[")
	b.WriteString(m.path.View())
	b.WriteString("]\n\nColumns: Name, Amount, Amount Paid Back. Invalid rows are skipped.")
	if m.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(s.statusErr.Render("Error: " + m.errMsg))
	}
	return renderPage(s, "UPLOAD", b.String(), "esc: cancel │ enter: upload")
}

// bulkState tracks a running chunked operation.
type bulkState struct {
	label     string
	processed int
	total     int
	ch        chan bulkProgressMsg
}

func (b *bulkState) ratio() float64 {
	if b.total <= 0 {
		return 0
	}
	return min(float64(b.processed)/float64(b.total), 1)
}

func renderProgress(s styles, sp spinner.Model, b *bulkState) string {
	body := sp.View() + " " + b.label
	if b.total > 0 {
		bar := progress.New(
			progress.WithSolidFill(string(s.accent)),
			progress.WithWidth(40),
			progress.WithoutPercentage(),
		)
		body += fmt.Sprintf("\n\n%s %d/%d", bar.ViewAs(b.ratio()), b.processed, b.total)
	}
	return renderPage(s, "WORKING", body, "please wait")
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-lend-keeper/internal/service"
)

// maxSkippedShown caps the per-row list in the upload report.
const maxSkippedShown = 10

// overlayModel is a dismissable box over the list, used for reports and
// failures that do not fit on the status line.
type overlayModel struct {
	title   string
	message string
}

func (m overlayModel) View(s styles) string {
	content := s.title.Render(m.title) + "\n\n" + m.message + "\n\nenter / esc close"
	return s.box.Render(content)
}

func uploadReportOverlay(report service.IngestReport, err error) overlayModel {
	var b strings.Builder
	fmt.Fprintf(&b, "Rows read: %d\nValid: %d\nUploaded: %d\nSkipped: %d",
		report.Rows, report.Valid, report.Committed, len(report.Skipped))

	for i, rowErr := range report.Skipped {
		if i == maxSkippedShown {
			fmt.Fprintf(&b, "\n  ... and %d more", len(report.Skipped)-maxSkippedShown)
			break
		}
		b.WriteString("\n  ")
		b.WriteString(rowErr.Error())
	}

	title := "Upload finished"
	if err != nil {
		title = "Upload stopped"
		b.WriteString("\n\n")
		b.WriteString(humanizeError(err))
	}
	return overlayModel{title: title, message: b.String()}
}

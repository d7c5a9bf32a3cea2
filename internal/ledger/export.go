// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package ledger

import (
	"strings"
	"time"

	"github.com/MKhiriev/go-lend-keeper/models"
)

// TimestampLayout is the long local form used in exports.
const TimestampLayout = "Monday, January 2, 2006 3:04:05 PM MST"

var csvHeader = []string{"Name", "Original Amount", "Amount Paid Back", "Paid Status", "Timestamp"}

// ToCSV renders records in the given order. Timestamps are shown in loc,
// or in time.Local when loc is nil. Lines end with "\n".
func ToCSV(records []models.Record, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}

	var b strings.Builder
	writeCSVLine(&b, csvHeader)
	for _, rec := range records {
		writeCSVLine(&b, []string{
			rec.Name,
			FormatAmount(rec.Principal),
			FormatAmount(rec.AmountRepaid),
			exportStatus(rec.Status),
			exportTime(rec.CreatedAt, loc),
		})
	}
	return b.String()
}

func writeCSVLine(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(EscapeCSVField(f))
	}
	b.WriteByte('\n')
}

// EscapeCSVField quotes a field only when it holds a comma, a double quote or
// a line break; embedded quotes are doubled.
func EscapeCSVField(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func exportStatus(s models.RecordStatus) string {
	switch s {
	case models.StatusPaid:
		return "Paid"
	case models.StatusPending:
		return "Pending"
	}
	return ""
}

func exportTime(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	return t.In(loc).Format(TimestampLayout)
}

// ExportFileName names an export made on the given day.
func ExportFileName(now time.Time) string {
	return "lending_records_" + now.Format(time.DateOnly) + ".csv"
}

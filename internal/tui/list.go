// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/MKhiriev/go-lend-keeper/internal/ledger"
	"github.com/MKhiriev/go-lend-keeper/models"
)

const (
	colName   = 28
	colAmount = 12
	colStatus = 8
	colDate   = 10

	minListRows = 5
	// listChrome is the number of lines around the table on the list screen.
	listChrome = 16
)

// listModel renders the projection: totals, filter line, the visible rows
// and, while a query is typed, how many records match across every status.
type listModel struct {
	proj     ledger.Projection
	filter   ledger.FilterState
	grouping bool

	cursor int
	offset int

	search    textinput.Model
	searching bool
	searchSeq int
}

func newListModel() listModel {
	search := textinput.New()
	search.Placeholder = "search by name"
	search.CharLimit = 64
	search.Width = 30
	search.Prompt = ""

	return listModel{search: search}
}

// refresh reloads the projection and keeps the cursor on the same record
// when it is still visible.
func (m *listModel) refresh(ctrl Controller) {
	selectedID := ""
	if rec, ok := m.selected(); ok {
		selectedID = rec.ID
	}

	m.proj = ctrl.Project()
	m.filter = ctrl.Filter()

	if selectedID != "" {
		for i, rec := range m.proj.Visible {
			if rec.ID == selectedID {
				m.cursor = i
				return
			}
		}
	}
	m.clamp()
}

func (m *listModel) clamp() {
	if m.cursor >= len(m.proj.Visible) {
		m.cursor = len(m.proj.Visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *listModel) move(delta int) {
	m.cursor += delta
	m.clamp()
}

func (m listModel) selected() (models.Record, bool) {
	if m.cursor < 0 || m.cursor >= len(m.proj.Visible) {
		return models.Record{}, false
	}
	return m.proj.Visible[m.cursor], true
}

func (m *listModel) scroll(rows int) {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m *listModel) View(s styles, currency string, height int) string {
	rows := height - listChrome
	if rows < minListRows {
		rows = minListRows
	}
	m.scroll(rows)

	var b strings.Builder
	b.WriteString(m.statsView(currency))
	b.WriteString("\n\n")
	b.WriteString(m.filterView())
	b.WriteString("\n\n")

	b.WriteString(s.header.Render(
		padRight("Name", colName) + "  " +
			padLeft("Amount", colAmount) + "  " +
			padLeft("Paid back", colAmount) + "  " +
			padRight("Status", colStatus) + "  " +
			padRight("Created", colDate)))
	b.WriteString("\n")

	if len(m.proj.Visible) == 0 {
		b.WriteString(s.help.Render(m.emptyText()))
		b.WriteString("\n")
	}

	end := min(m.offset+rows, len(m.proj.Visible))
	for i := m.offset; i < end; i++ {
		b.WriteString(m.rowView(s, m.proj.Visible[i], currency, i == m.cursor))
		b.WriteString("\n")
	}
	if len(m.proj.Visible) > rows {
		b.WriteString(s.help.Render(fmt.Sprintf("%d-%d of %d", m.offset+1, end, len(m.proj.Visible))))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m listModel) statsView(currency string) string {
	st := m.proj.Stats
	return fmt.Sprintf("Lent %s   Paid back %s   Outstanding %s\n%d loans: %d paid, %d pending",
		ledger.FormatMoney(currency, st.TotalPrincipal),
		ledger.FormatMoney(currency, st.PaidPrincipal),
		ledger.FormatMoney(currency, st.RemainingPrincipal),
		st.TotalCount, st.PaidCount, st.PendingCount)
}

func (m listModel) filterView() string {
	var b strings.Builder
	b.WriteString("Show: ")
	b.WriteString(string(m.filter.Mode))
	if m.grouping {
		b.WriteString(" (pending first)")
	}
	b.WriteString("   Search: ")
	if m.searching {
		b.WriteString("[" + m.search.View() + "]")
	} else if m.filter.Query != "" {
		b.WriteString(strconv.Quote(m.filter.Query))
	} else {
		b.WriteString("-")
	}
	if strings.TrimSpace(m.filter.Query) != "" {
		fmt.Fprintf(&b, "   %d match(es) across all records", len(m.proj.Matches))
	}
	return b.String()
}

func (m listModel) emptyText() string {
	switch {
	case m.proj.Stats.TotalCount == 0:
		return "No loans yet. Press a to add one or u to upload a spreadsheet."
	case strings.TrimSpace(m.filter.Query) != "":
		return "Nothing matches the search."
	}
	return "No " + string(m.filter.Mode) + " loans."
}

func (m listModel) rowView(s styles, rec models.Record, currency string, selected bool) string {
	status := s.pending.Render(padRight("Pending", colStatus))
	if rec.Status == models.StatusPaid {
		status = s.paid.Render(padRight("Paid", colStatus))
	}

	created := ""
	if !rec.CreatedAt.IsZero() {
		created = rec.CreatedAt.Local().Format("2006-01-02")
	}

	line := padRight(fitText(rec.Name, colName), colName) + "  " +
		padLeft(ledger.FormatMoney(currency, rec.Principal), colAmount) + "  " +
		padLeft(ledger.FormatMoney(currency, rec.AmountRepaid), colAmount) + "  " +
		status + "  " +
		padRight(created, colDate)

	if selected {
		return s.selected.Render("> " + line)
	}
	return "  " + line
}

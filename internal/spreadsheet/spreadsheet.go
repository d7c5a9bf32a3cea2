// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package spreadsheet

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-lend-keeper/internal/ledger"
)

// Format is a supported input format.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// FormatFor picks the format from a file name's extension.
func FormatFor(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(name))
}

// ReadFile parses the spreadsheet at path.
func ReadFile(path string) ([]ledger.RawRow, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	return Parse(f, format)
}

// Parse reads every data row of r. Either the whole sheet parses or an
// error is returned; there are no partial results.
func Parse(r io.Reader, format Format) ([]ledger.RawRow, error) {
	var (
		table []tableRow
		err   error
	)
	switch format {
	case FormatXLSX:
		table, err = readXLSX(r)
	case FormatCSV:
		table, err = readCSV(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}
	return toRawRows(table)
}

// tableRow is one physical row with its 1-based line number.
type tableRow struct {
	line  int
	cells []string
}

func (r tableRow) blank() bool {
	for _, c := range r.cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func toRawRows(table []tableRow) ([]ledger.RawRow, error) {
	start := 0
	for start < len(table) && table[start].blank() {
		start++
	}
	if start == len(table) {
		return nil, ErrNoHeader
	}

	headers := headerNames(table[start].cells)

	rows := make([]ledger.RawRow, 0, len(table)-start-1)
	for _, tr := range table[start+1:] {
		if tr.blank() {
			continue
		}

		cells := make(map[string]string, len(headers))
		for i, h := range headers {
			if h == "" || i >= len(tr.cells) {
				continue
			}
			cells[h] = strings.TrimSpace(tr.cells[i])
		}
		rows = append(rows, ledger.RawRow{Line: tr.line, Cells: cells})
	}
	return rows, nil
}

// headerNames trims the header cells and suffixes repeats with _1, _2, ...
// so no column is silently dropped. Blank headers stay blank and their
// columns are ignored.
func headerNames(cells []string) []string {
	seen := make(map[string]int, len(cells))
	out := make([]string, len(cells))
	for i, c := range cells {
		h := strings.TrimSpace(c)
		if h == "" {
			continue
		}
		if n, dup := seen[h]; dup {
			seen[h] = n + 1
			h = h + "_" + strconv.Itoa(n)
		} else {
			seen[h] = 1
		}
		out[i] = h
	}
	return out
}

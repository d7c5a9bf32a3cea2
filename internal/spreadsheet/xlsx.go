// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package spreadsheet

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// readXLSX reads the first worksheet. Raw cell values are used so amounts
// come through without the sheet's number formatting.
func readXLSX(r io.Reader) ([]tableRow, error) {
	f, err := excelize.OpenReader(r, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheet
	}

	rows, err := f.Rows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	defer rows.Close()

	var table []tableRow
	for line := 1; rows.Next(); line++ {
		cells, err := rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrDecode, line, err)
		}
		table = append(table, tableRow{line: line, cells: cells})
	}
	if err := rows.Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return table, nil
}

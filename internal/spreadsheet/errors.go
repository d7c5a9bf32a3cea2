// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package spreadsheet

import "errors"

var (
	// ErrUnsupportedFormat is returned for a file that is neither .xlsx nor .csv.
	ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")
	// ErrNoHeader is returned when the sheet has no non-blank row.
	ErrNoHeader = errors.New("spreadsheet has no header row")
	// ErrNoSheet is returned for a workbook without worksheets.
	ErrNoSheet = errors.New("workbook has no sheets")
	// ErrDecode wraps failures of the underlying xlsx or csv reader.
	ErrDecode = errors.New("failed to decode spreadsheet")
)

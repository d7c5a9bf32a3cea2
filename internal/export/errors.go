// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package export

import "errors"

var (
	ErrNothingToExport      = errors.New("no records to export")
	ErrClipboardUnavailable = errors.New("clipboard is not available")
)

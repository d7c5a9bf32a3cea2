// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"github.com/MKhiriev/go-lend-keeper/internal/service"
	"github.com/MKhiriev/go-lend-keeper/models"
)

type restoredMsg struct {
	identity models.Identity
	err      error
}

type authDoneMsg struct {
	identity models.Identity
	err      error
}

type loggedOutMsg struct {
	err error
}

type storeChangedMsg struct{}

type syncErrMsg struct {
	err error
}

// searchTickMsg fires when the search debounce expires. Only the tick
// matching the latest keystroke applies the query.
type searchTickMsg struct {
	seq int
}

type clearStatusMsg struct {
	seq int
}

type recordSavedMsg struct {
	created bool
	result  service.EditResult
	err     error
}

type markedPaidMsg struct {
	record models.Record
	err    error
}

type recordDeletedMsg struct {
	name string
	err  error
}

type bulkProgressMsg struct {
	processed int
	total     int
}

type uploadDoneMsg struct {
	report service.IngestReport
	err    error
}

type deleteAllDoneMsg struct {
	deleted int
	err     error
}

type exportDoneMsg struct {
	where string
	err   error
}

type themeSavedMsg struct {
	theme string
	err   error
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package ledger

import "github.com/MKhiriev/go-lend-keeper/models"

// Projection is everything the list screen renders, derived from a single
// store snapshot so totals and rows always describe the same data.
type Projection struct {
	Revision uint64
	Stats    Statistics
	Visible  []models.Record
	Matches  []models.Record
}

// Project computes statistics over the whole snapshot, the filtered list and,
// when the query is not blank, the search matches over the whole snapshot.
func Project(snap StoreSnapshot, state FilterState, opts ...ViewOption) Projection {
	return Projection{
		Revision: snap.Revision,
		Stats:    ComputeStatistics(snap.Records),
		Visible:  VisibleRecords(snap.Records, state, opts...),
		Matches:  SearchRecords(snap.Records, state.Query, opts...),
	}
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package ledger

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/MKhiriev/go-lend-keeper/models"
)

// FilterMode selects which statuses are visible.
type FilterMode string

const (
	ModeAll     FilterMode = "all"
	ModePaid    FilterMode = "paid"
	ModePending FilterMode = "pending"
)

// ParseFilterMode accepts "all", "paid" or "pending" in any case.
func ParseFilterMode(s string) (FilterMode, error) {
	switch mode := FilterMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case ModeAll, ModePaid, ModePending:
		return mode, nil
	case "":
		return ModeAll, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFilterMode, s)
}

// Next cycles all -> paid -> pending -> all.
func (m FilterMode) Next() FilterMode {
	switch m {
	case ModeAll:
		return ModePaid
	case ModePaid:
		return ModePending
	}
	return ModeAll
}

func (m FilterMode) admits(status models.RecordStatus) bool {
	switch m {
	case ModePaid:
		return status == models.StatusPaid
	case ModePending:
		return status != models.StatusPaid
	}
	return true
}

// FilterState is what the user has currently asked to see.
type FilterState struct {
	Mode  FilterMode
	Query string
}

type viewOptions struct {
	groupByStatus bool
	locale        language.Tag
}

// ViewOption tunes VisibleRecords and SearchRecords.
type ViewOption func(*viewOptions)

// WithStatusGrouping puts pending records before paid ones, each group
// still sorted by name.
func WithStatusGrouping() ViewOption {
	return func(o *viewOptions) {
		o.groupByStatus = true
	}
}

// WithLocale sets the collation locale used to sort names.
func WithLocale(tag language.Tag) ViewOption {
	return func(o *viewOptions) {
		o.locale = tag
	}
}

func buildViewOptions(opts []ViewOption) viewOptions {
	o := viewOptions{locale: language.English}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// VisibleRecords applies the status filter, then the name query, then sorts
// by name. The input is not modified.
func VisibleRecords(records []models.Record, state FilterState, opts ...ViewOption) []models.Record {
	query := strings.ToLower(strings.TrimSpace(state.Query))

	visible := make([]models.Record, 0, len(records))
	for _, rec := range records {
		if !state.Mode.admits(rec.Status) {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(rec.Name), query) {
			continue
		}
		visible = append(visible, rec)
	}

	sortByName(visible, buildViewOptions(opts))
	return visible
}

// SearchRecords matches the query against the full collection, ignoring any
// status filter. A blank query returns nil: there is nothing to search for.
func SearchRecords(records []models.Record, query string, opts ...ViewOption) []models.Record {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	return VisibleRecords(records, FilterState{Mode: ModeAll, Query: query}, opts...)
}

func sortByName(records []models.Record, o viewOptions) {
	// collate.Collator keeps internal buffers, one per call.
	col := collate.New(o.locale)
	slices.SortStableFunc(records, func(a, b models.Record) int {
		if o.groupByStatus {
			if ga, gb := statusGroup(a.Status), statusGroup(b.Status); ga != gb {
				return ga - gb
			}
		}
		return col.CompareString(a.Name, b.Name)
	})
}

func statusGroup(s models.RecordStatus) int {
	if s == models.StatusPaid {
		return 1
	}
	return 0
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package ledger

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
	"github.com/shopspring/decimal"

	"github.com/MKhiriev/go-lend-keeper/models"
)

// RawRow is one spreadsheet data row keyed by its column header.
// Line is the 1-based row number in the source sheet.
type RawRow struct {
	Line  int
	Cells map[string]string
}

// RowErrorReason says why a row was skipped.
type RowErrorReason string

const (
	ReasonEmptyName            RowErrorReason = "empty name"
	ReasonNonPositivePrincipal RowErrorReason = "amount is not positive"
	ReasonNegativeRepayment    RowErrorReason = "negative amount paid back"
)

// RowError describes a rejected row.
type RowError struct {
	Line   int
	Name   string
	Reason RowErrorReason
}

func (e *RowError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("row %d: %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("row %d (%s): %s", e.Line, e.Name, e.Reason)
}

// Unwrap maps the reason onto the matching validation sentinel.
func (e *RowError) Unwrap() error {
	switch e.Reason {
	case ReasonEmptyName:
		return ErrEmptyName
	case ReasonNonPositivePrincipal:
		return ErrNonPositivePrincipal
	case ReasonNegativeRepayment:
		return ErrNegativeRepayment
	}
	return nil
}

// ValidRow is a normalized row ready to become a record.
// RequestedStatus is only a hint read from a legacy yes/no column.
type ValidRow struct {
	Line            int
	Name            string
	Principal       decimal.Decimal
	AmountRepaid    decimal.Decimal
	RequestedStatus models.RecordStatus
}

// Draft turns the row into a creation payload. The status goes through
// ResolveStatus, so it is always pending.
func (v ValidRow) Draft() models.RecordDraft {
	return models.RecordDraft{
		Name:         v.Name,
		Principal:    v.Principal,
		AmountRepaid: v.AmountRepaid,
		Status:       ResolveStatus(v.Principal, v.AmountRepaid, v.RequestedStatus, StageCreation),
	}
}

type rowField int

const (
	fieldName rowField = iota
	fieldPrincipal
	fieldRepaid
	fieldPaidFlag
)

// headerAliases lists accepted spellings per field, highest priority first.
// Keys are compared after foldHeader.
var headerAliases = []struct {
	field   rowField
	aliases []string
}{
	{fieldName, []string{"name", "borrower", "borrowername"}},
	{fieldPrincipal, []string{"amount", "principal", "originalamount", "loanamount"}},
	{fieldRepaid, []string{"amountpaidback", "amountrepaid", "repaid", "paidamount"}},
	{fieldPaidFlag, []string{"paid", "paidback", "paidstatus", "status"}},
}

// minFuzzyLen keeps short headers like "paid" from fuzzy-matching unrelated words.
const minFuzzyLen = 5

func foldHeader(h string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(h) {
		if unicode.IsSpace(r) || r == '_' || r == '-' || r == '.' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// classifyHeader returns the field a header maps to and its priority
// (lower wins). Exact aliases beat near-misses.
func classifyHeader(h string) (rowField, int, bool) {
	folded := foldHeader(h)
	if folded == "" {
		return 0, 0, false
	}

	for _, group := range headerAliases {
		for i, alias := range group.aliases {
			if folded == alias {
				return group.field, i, true
			}
		}
	}

	if len(folded) < minFuzzyLen {
		return 0, 0, false
	}
	for _, group := range headerAliases {
		for i, alias := range group.aliases {
			if len(alias) >= minFuzzyLen && levenshtein.ComputeDistance(folded, alias) <= 1 {
				return group.field, len(group.aliases) + i, true
			}
		}
	}
	return 0, 0, false
}

// foldRow picks, per field, the first non-empty cell in alias priority order.
// Headers folding to the same alias are ordered bytewise, so "Name" beats "name".
func foldRow(cells map[string]string) map[rowField]string {
	type pick struct {
		header   string
		value    string
		priority int
	}
	picked := make(map[rowField]pick, len(headerAliases))

	for header, value := range cells {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		field, priority, ok := classifyHeader(header)
		if !ok {
			continue
		}
		cur, seen := picked[field]
		if !seen || priority < cur.priority || (priority == cur.priority && header < cur.header) {
			picked[field] = pick{header: header, value: value, priority: priority}
		}
	}

	out := make(map[rowField]string, len(picked))
	for f, p := range picked {
		out[f] = p.value
	}
	return out
}

// ParseAmount reads a money cell permissively. Currency symbols, spaces and
// thousands separators (comma, apostrophe, underscore) are dropped and the
// rest must be a plain or exponent-form number, as raw xlsx cells may hold
// "1.5E+3". Anything else is zero.
func ParseAmount(s string) decimal.Decimal {
	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsSpace(r), unicode.Is(unicode.Sc, r), r == ',', r == '\'', r == '_':
			continue
		}
		b.WriteRune(r)
	}
	if b.Len() == 0 {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.Zero
	}
	return d
}

// NormalizeRow folds header aliases, trims the name, parses amounts and
// validates the result.
func NormalizeRow(raw RawRow) (ValidRow, *RowError) {
	fields := foldRow(raw.Cells)

	row := ValidRow{
		Line:         raw.Line,
		Name:         strings.TrimSpace(fields[fieldName]),
		Principal:    ParseAmount(fields[fieldPrincipal]),
		AmountRepaid: ParseAmount(fields[fieldRepaid]),
	}
	if status, ok := ParseStatus(fields[fieldPaidFlag]); ok {
		row.RequestedStatus = status
	}

	if rowErr := ValidateRow(row); rowErr != nil {
		return ValidRow{}, rowErr
	}
	return row, nil
}

// ValidateRow applies the record invariants to a normalized row.
func ValidateRow(row ValidRow) *RowError {
	reason := RowErrorReason("")
	switch {
	case row.Name == "":
		reason = ReasonEmptyName
	case !row.Principal.IsPositive():
		reason = ReasonNonPositivePrincipal
	case row.AmountRepaid.IsNegative():
		reason = ReasonNegativeRepayment
	default:
		return nil
	}
	return &RowError{Line: row.Line, Name: row.Name, Reason: reason}
}

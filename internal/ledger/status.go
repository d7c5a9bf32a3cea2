// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package ledger

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MKhiriev/go-lend-keeper/models"
)

// Stage tells ResolveStatus where a status request comes from.
type Stage int

const (
	// StageCreation covers bulk upload and manual add.
	StageCreation Stage = iota
	// StageEdit covers saving an edited record and the mark-paid action.
	StageEdit
)

// ResolveStatus is the single authority on a record's status.
//
// New records always start pending. On edit, a repayment below the principal
// forces pending whatever was requested. A fully repaid record resolves to
// paid unless pending was asked for explicitly: an empty request on edit
// means "derive it from the amounts".
func ResolveStatus(principal, repaid decimal.Decimal, requested models.RecordStatus, stage Stage) models.RecordStatus {
	if stage == StageCreation {
		return models.StatusPending
	}
	if repaid.LessThan(principal) {
		return models.StatusPending
	}
	if requested == models.StatusPending {
		return models.StatusPending
	}
	return models.StatusPaid
}

// StatusOverridden reports whether the rule replaced what the user asked for,
// so the UI can tell them.
func StatusOverridden(requested, resolved models.RecordStatus) bool {
	return requested.Valid() && requested != resolved
}

// ParseStatus reads a user supplied status. Legacy yes/no answers map to
// paid/pending. An unrecognized value yields "" and false.
func ParseStatus(s string) (models.RecordStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "paid", "yes", "y", "true", "1":
		return models.StatusPaid, true
	case "pending", "no", "n", "false", "0", "unpaid":
		return models.StatusPending, true
	}
	return "", false
}

// ValidateAmounts checks the numeric invariants shared by every write path.
func ValidateAmounts(principal, repaid decimal.Decimal) error {
	if !principal.IsPositive() {
		return ErrNonPositivePrincipal
	}
	if repaid.IsNegative() {
		return ErrNegativeRepayment
	}
	return nil
}

// ValidateRecord checks a complete record as it would be stored.
func ValidateRecord(rec models.Record) error {
	if strings.TrimSpace(rec.Name) == "" {
		return ErrEmptyName
	}
	if err := ValidateAmounts(rec.Principal, rec.AmountRepaid); err != nil {
		return err
	}
	if !rec.Status.Valid() {
		return ErrInvalidStatus
	}
	if rec.Status == models.StatusPaid && !rec.FullyRepaid() {
		return ErrPaidNotCovered
	}
	return nil
}

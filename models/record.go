// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordStatus is the repayment state of a single loan.
type RecordStatus string

const (
	// StatusPending marks a loan that is still outstanding.
	StatusPending RecordStatus = "pending"
	// StatusPaid marks a loan whose repayment covers the principal.
	StatusPaid RecordStatus = "paid"
)

// Valid reports whether s is one of the known statuses.
func (s RecordStatus) Valid() bool {
	return s == StatusPending || s == StatusPaid
}

// String implements fmt.Stringer.
func (s RecordStatus) String() string {
	return string(s)
}

// Record is a single loan owned by one user.
//
// JSON names follow the historical document layout of the collection
// ("amount", "amountPaidBack", "timestamp") so exported snapshots stay
// readable by older tooling.
type Record struct {
	// ID is assigned by the server at creation and never changes.
	ID string `json:"id"`

	// UserID is the owner. It is never sent over the wire; ownership is
	// derived from the authenticated identity.
	UserID string `json:"-"`

	// Name is the borrower name, trimmed and never empty.
	Name string `json:"name"`

	// Principal is the original loaned amount, always positive.
	Principal decimal.Decimal `json:"amount"`

	// AmountRepaid is the cumulative repayment, never negative.
	AmountRepaid decimal.Decimal `json:"amountPaidBack"`

	// Status is paid only when AmountRepaid >= Principal.
	Status RecordStatus `json:"status"`

	// CreatedAt is set once at creation.
	CreatedAt time.Time `json:"timestamp"`

	// UpdatedAt is maintained by the server on every write.
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Record model.
func (r Record) TableName() string {
	return "records"
}

// Remaining returns the part of the principal not yet repaid, floored at zero.
func (r Record) Remaining() decimal.Decimal {
	rest := r.Principal.Sub(r.AmountRepaid)
	if rest.IsNegative() {
		return decimal.Zero
	}
	return rest
}

// FullyRepaid reports whether the repayment covers the principal.
func (r Record) FullyRepaid() bool {
	return r.AmountRepaid.GreaterThanOrEqual(r.Principal)
}

// RecordDraft carries the fields of a record that does not exist yet.
type RecordDraft struct {
	Name         string          `json:"name"`
	Principal    decimal.Decimal `json:"amount"`
	AmountRepaid decimal.Decimal `json:"amountPaidBack"`
	Status       RecordStatus    `json:"status"`
}

// RecordPatch is a partial update. Nil fields are left untouched.
type RecordPatch struct {
	ID           string           `json:"id"`
	Name         *string          `json:"name,omitempty"`
	Principal    *decimal.Decimal `json:"amount,omitempty"`
	AmountRepaid *decimal.Decimal `json:"amountPaidBack,omitempty"`
	Status       *RecordStatus    `json:"status,omitempty"`
}

// Apply returns a copy of rec with the non-nil patch fields merged in.
func (p RecordPatch) Apply(rec Record) Record {
	if p.Name != nil {
		rec.Name = *p.Name
	}
	if p.Principal != nil {
		rec.Principal = *p.Principal
	}
	if p.AmountRepaid != nil {
		rec.AmountRepaid = *p.AmountRepaid
	}
	if p.Status != nil {
		rec.Status = *p.Status
	}
	return rec
}

// IsEmpty reports whether the patch changes nothing.
func (p RecordPatch) IsEmpty() bool {
	return p.Name == nil && p.Principal == nil && p.AmountRepaid == nil && p.Status == nil
}

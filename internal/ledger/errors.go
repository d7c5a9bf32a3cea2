// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package ledger

import "errors"

// Validation errors for record fields. They are returned before anything is
// sent to the server.
var (
	// ErrEmptyName is returned when the borrower name is blank after trimming.
	ErrEmptyName = errors.New("borrower name is empty")
	// ErrNonPositivePrincipal is returned when the loaned amount is zero or negative.
	ErrNonPositivePrincipal = errors.New("amount must be greater than zero")
	// ErrNegativeRepayment is returned when the repaid amount is below zero.
	ErrNegativeRepayment = errors.New("amount paid back cannot be negative")
	// ErrInvalidStatus is returned for a status other than paid or pending.
	ErrInvalidStatus = errors.New("invalid status")
	// ErrPaidNotCovered is returned when a record is marked paid while the
	// repayment is below the principal.
	ErrPaidNotCovered = errors.New("status paid requires amount paid back to cover the amount")
	// ErrUnknownFilterMode is returned by ParseFilterMode.
	ErrUnknownFilterMode = errors.New("unknown filter mode")
)

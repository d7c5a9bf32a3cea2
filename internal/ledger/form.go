// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package ledger

import "strings"

// RecordInput is what the user typed into the add or edit form.
type RecordInput struct {
	Name         string
	Principal    string
	AmountRepaid string
	Status       string
}

// Normalize runs the form through the same rules as a spreadsheet row. A
// blank status means "no preference"; an unknown one is ErrInvalidStatus.
func (in RecordInput) Normalize() (ValidRow, error) {
	row := ValidRow{
		Name:         strings.TrimSpace(in.Name),
		Principal:    ParseAmount(in.Principal),
		AmountRepaid: ParseAmount(in.AmountRepaid),
	}

	if s := strings.TrimSpace(in.Status); s != "" {
		status, ok := ParseStatus(s)
		if !ok {
			return ValidRow{}, ErrInvalidStatus
		}
		row.RequestedStatus = status
	}

	if rowErr := ValidateRow(row); rowErr != nil {
		return ValidRow{}, rowErr.Unwrap()
	}
	return row, nil
}

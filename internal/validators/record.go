// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-lend-keeper/internal/ledger"
	"github.com/MKhiriev/go-lend-keeper/models"
)

// Field names accepted by RecordValidator.Validate.
const (
	FieldID        = "id"
	FieldName      = "name"
	FieldPrincipal = "principal"
	FieldRepaid    = "amount_repaid"
	FieldStatus    = "status"

	// FieldChanges requires a patch to set at least one field.
	FieldChanges = "changes"
	// FieldOps validates every operation of a batch.
	FieldOps = "ops"
)

// RecordValidator validates record drafts, patches and batches. Value and
// pointer forms of each model are accepted.
//
// Field errors reuse the ledger sentinels (ledger.ErrEmptyName and friends),
// so the server and the client report the same rule the same way.
type RecordValidator struct{}

func NewRecordValidator() Validator {
	return &RecordValidator{}
}

func (v *RecordValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.RecordDraft:
		return v.validateDraft(value, fields...)
	case *models.RecordDraft:
		return v.validateDraft(*value, fields...)

	case models.RecordPatch:
		return v.validatePatch(value, fields...)
	case *models.RecordPatch:
		return v.validatePatch(*value, fields...)

	case models.BatchOp:
		return v.validateOp(value)
	case *models.BatchOp:
		return v.validateOp(*value)

	case []models.BatchOp:
		return v.validateBatch(models.BatchRequest{Ops: value}, fields...)
	case models.BatchRequest:
		return v.validateBatch(value, fields...)
	case *models.BatchRequest:
		return v.validateBatch(*value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// validateDraft checks a new record. A blank status is allowed: the
// repository derives it.
//
// Default fields: name, principal, amount_repaid, status.
func (v *RecordValidator) validateDraft(draft models.RecordDraft, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldPrincipal, FieldRepaid, FieldStatus}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			if strings.TrimSpace(draft.Name) == "" {
				return ledger.ErrEmptyName
			}
		case FieldPrincipal:
			if !draft.Principal.IsPositive() {
				return ledger.ErrNonPositivePrincipal
			}
		case FieldRepaid:
			if draft.AmountRepaid.IsNegative() {
				return ledger.ErrNegativeRepayment
			}
		case FieldStatus:
			if draft.Status != "" && !draft.Status.Valid() {
				return ledger.ErrInvalidStatus
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validatePatch checks only the fields a patch sets; nil means "leave as is".
// Whether the merged record is consistent is decided by the repository.
//
// Default fields: id, changes, name, principal, amount_repaid, status.
func (v *RecordValidator) validatePatch(patch models.RecordPatch, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldChanges, FieldName, FieldPrincipal, FieldRepaid, FieldStatus}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if strings.TrimSpace(patch.ID) == "" {
				return ErrInvalidRecordID
			}
		case FieldChanges:
			if patch.IsEmpty() {
				return ErrNoFieldsToUpdate
			}
		case FieldName:
			if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
				return ledger.ErrEmptyName
			}
		case FieldPrincipal:
			if patch.Principal != nil && !patch.Principal.IsPositive() {
				return ledger.ErrNonPositivePrincipal
			}
		case FieldRepaid:
			if patch.AmountRepaid != nil && patch.AmountRepaid.IsNegative() {
				return ledger.ErrNegativeRepayment
			}
		case FieldStatus:
			if patch.Status != nil && !patch.Status.Valid() {
				return ledger.ErrInvalidStatus
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RecordValidator) validateOp(op models.BatchOp) error {
	switch op.Kind {
	case models.BatchCreate:
		if op.Create == nil {
			return ErrMissingPayload
		}
		return v.validateDraft(*op.Create)
	case models.BatchUpdate:
		if op.Patch == nil {
			return ErrMissingPayload
		}
		return v.validatePatch(*op.Patch)
	case models.BatchDelete:
		if strings.TrimSpace(op.ID) == "" {
			return ErrInvalidRecordID
		}
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownBatchOp, op.Kind)
}

// validateBatch reports the index of the first invalid operation.
//
// Default fields: ops.
func (v *RecordValidator) validateBatch(request models.BatchRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldOps}
	}

	for _, f := range fields {
		switch f {
		case FieldOps:
			if len(request.Ops) == 0 {
				return ErrEmptyBatch
			}
			for i, op := range request.Ops {
				if err := v.validateOp(op); err != nil {
					return fmt.Errorf("validation error at index %d: %w", i, err)
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidRecordID  = errors.New("invalid record id")
	ErrNoFieldsToUpdate = errors.New("at least one field must be provided for update")
	ErrEmptyBatch       = errors.New("batch has no operations")
	ErrUnknownBatchOp   = errors.New("unknown batch operation")
	ErrMissingPayload   = errors.New("batch operation has no payload")
)

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// MaxBatchOps is the largest number of operations the server accepts in one
// atomic batch commit.
const MaxBatchOps = 500

// BatchOpKind selects what a [BatchOp] does.
type BatchOpKind string

const (
	BatchCreate BatchOpKind = "create"
	BatchUpdate BatchOpKind = "update"
	BatchDelete BatchOpKind = "delete"
)

// BatchOp is one write inside an atomic batch.
// Exactly one of Create, Patch or ID is meaningful, depending on Kind.
type BatchOp struct {
	Kind   BatchOpKind  `json:"op"`
	Create *RecordDraft `json:"create,omitempty"`
	Patch  *RecordPatch `json:"patch,omitempty"`
	ID     string       `json:"id,omitempty"`
}

// BatchRequest is the body of POST /api/records/batch.
type BatchRequest struct {
	Ops []BatchOp `json:"ops"`
}

// BatchResponse reports a committed batch.
type BatchResponse struct {
	// Committed is the number of operations applied.
	Committed int `json:"committed"`
	// CreatedIDs lists the ids assigned to create operations, in order.
	CreatedIDs []string `json:"created_ids,omitempty"`
}

// NewCreateOp wraps a draft into a create operation.
func NewCreateOp(d RecordDraft) BatchOp {
	return BatchOp{Kind: BatchCreate, Create: &d}
}

// NewDeleteOp builds a delete operation for the record id.
func NewDeleteOp(id string) BatchOp {
	return BatchOp{Kind: BatchDelete, ID: id}
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-lend-keeper/internal/adapter"
	"github.com/MKhiriev/go-lend-keeper/internal/ledger"
	"github.com/MKhiriev/go-lend-keeper/models"
)

// BulkError reports a chunked run that stopped at a failed commit. Chunks
// committed before the failure stay committed.
type BulkError struct {
	Op        string
	Committed int
	Total     int
	Err       error
}

// Partial reports whether some chunks were committed before the failure.
func (e *BulkError) Partial() bool {
	return e.Committed > 0
}

func (e *BulkError) Error() string {
	if e.Partial() {
		return fmt.Sprintf("%s partially completed: %d of %d done before error: %v", e.Op, e.Committed, e.Total, e.Err)
	}
	return fmt.Sprintf("%s failed, nothing was saved: %v", e.Op, e.Err)
}

func (e *BulkError) Unwrap() error {
	return e.Err
}

// commitChunked sends ops in sequential batches of ledger.BatchChunkSize
// and reports cumulative progress after each one. It returns the ids
// assigned to create operations.
func commitChunked(ctx context.Context, a adapter.ServerAdapter, op string, ops []models.BatchOp, progress ProgressFunc) ([]string, error) {
	total := len(ops)
	committed := 0
	var created []string

	for _, chunk := range ledger.Chunk(ops, ledger.BatchChunkSize) {
		resp, err := a.CommitBatch(ctx, chunk)
		if err != nil {
			return created, &BulkError{Op: op, Committed: committed, Total: total, Err: mapAdapterError(err)}
		}

		committed += len(chunk)
		created = append(created, resp.CreatedIDs...)
		if progress != nil {
			progress(committed, total)
		}
	}
	return created, nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-lend-keeper/internal/adapter"
	"github.com/MKhiriev/go-lend-keeper/internal/ledger"
	"github.com/MKhiriev/go-lend-keeper/internal/logger"
	"github.com/MKhiriev/go-lend-keeper/models"
)

// EditResult tells the UI what was saved and whether the status rule
// replaced the requested status.
type EditResult struct {
	Record     models.Record
	Requested  models.RecordStatus
	Resolved   models.RecordStatus
	Overridden bool
}

type clientRecordService struct {
	adapter adapter.ServerAdapter
	logger  *logger.Logger
}

func NewClientRecordService(serverAdapter adapter.ServerAdapter, logger *logger.Logger) ClientRecordService {
	return &clientRecordService{adapter: serverAdapter, logger: logger}
}

func (s *clientRecordService) Create(ctx context.Context, in ledger.RecordInput) (models.Record, error) {
	row, err := in.Normalize()
	if err != nil {
		return models.Record{}, err
	}

	rec, err := s.adapter.CreateRecord(ctx, row.Draft())
	if err != nil {
		return models.Record{}, fmt.Errorf("create record: %w", mapAdapterError(err))
	}
	return rec, nil
}

func (s *clientRecordService) Edit(ctx context.Context, current models.Record, in ledger.RecordInput) (EditResult, error) {
	if current.ID == "" {
		return EditResult{}, ErrRecordNotInStore
	}

	row, err := in.Normalize()
	if err != nil {
		return EditResult{}, err
	}

	// a blank status lets the amounts decide
	requested := row.RequestedStatus
	resolved := ledger.ResolveStatus(row.Principal, row.AmountRepaid, requested, ledger.StageEdit)

	patch := models.RecordPatch{
		ID:           current.ID,
		Name:         &row.Name,
		Principal:    &row.Principal,
		AmountRepaid: &row.AmountRepaid,
		Status:       &resolved,
	}

	saved, err := s.adapter.UpdateRecord(ctx, patch)
	if err != nil {
		return EditResult{}, fmt.Errorf("save record: %w", mapAdapterError(err))
	}

	return EditResult{
		Record:     saved,
		Requested:  requested,
		Resolved:   resolved,
		Overridden: ledger.StatusOverridden(requested, resolved),
	}, nil
}

func (s *clientRecordService) MarkPaid(ctx context.Context, current models.Record) (models.Record, error) {
	if current.ID == "" {
		return models.Record{}, ErrRecordNotInStore
	}

	repaid := current.AmountRepaid
	if repaid.LessThan(current.Principal) {
		repaid = current.Principal
	}
	status := ledger.ResolveStatus(current.Principal, repaid, models.StatusPaid, ledger.StageEdit)

	saved, err := s.adapter.UpdateRecord(ctx, models.RecordPatch{
		ID:           current.ID,
		AmountRepaid: &repaid,
		Status:       &status,
	})
	if err != nil {
		return models.Record{}, fmt.Errorf("mark paid: %w", mapAdapterError(err))
	}
	return saved, nil
}

func (s *clientRecordService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrRecordNotInStore
	}
	if err := s.adapter.DeleteRecord(ctx, id); err != nil {
		return fmt.Errorf("delete record: %w", mapAdapterError(err))
	}
	return nil
}

// DeleteAll reads the collection once and deletes it in chunked batches.
// Records created after the read are left alone.
func (s *clientRecordService) DeleteAll(ctx context.Context, progress ProgressFunc) (int, error) {
	records, err := s.adapter.ListRecords(ctx)
	if err != nil {
		return 0, fmt.Errorf("list records: %w", mapAdapterError(err))
	}
	if len(records) == 0 {
		return 0, nil
	}

	ops := make([]models.BatchOp, 0, len(records))
	for _, rec := range records {
		ops = append(ops, models.NewDeleteOp(rec.ID))
	}

	deleted := 0
	_, err = commitChunked(ctx, s.adapter, "delete all", ops, func(processed, total int) {
		deleted = processed
		if progress != nil {
			progress(processed, total)
		}
	})
	if err != nil {
		s.logger.Err(err).Str("func", "clientRecordService.DeleteAll").Int("deleted", deleted).Msg("delete all stopped")
		return deleted, err
	}
	return deleted, nil
}

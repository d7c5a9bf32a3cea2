// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-lend-keeper/internal/logger"
	"github.com/MKhiriev/go-lend-keeper/internal/store"
	"github.com/MKhiriev/go-lend-keeper/internal/validators"
	"github.com/MKhiriev/go-lend-keeper/models"
)

type recordService struct {
	repo      store.RecordRepository
	hub       SnapshotHub
	validator validators.Validator

	logger *logger.Logger
}

// NewRecordService wires the record repository to the change hub.
func NewRecordService(repo store.RecordRepository, hub SnapshotHub, validator validators.Validator, logger *logger.Logger) RecordService {
	return &recordService{repo: repo, hub: hub, validator: validator, logger: logger}
}

func (s *recordService) List(ctx context.Context, userID string) ([]models.Record, error) {
	if userID == "" {
		return nil, ErrNoUserID
	}
	return s.repo.ListRecords(ctx, userID)
}

func (s *recordService) Create(ctx context.Context, userID string, draft models.RecordDraft) (models.Record, error) {
	if userID == "" {
		return models.Record{}, ErrNoUserID
	}
	if err := s.validator.Validate(ctx, draft); err != nil {
		return models.Record{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	rec, err := s.repo.CreateRecord(ctx, userID, draft)
	if err != nil {
		return models.Record{}, fmt.Errorf("create record: %w", err)
	}

	s.changed(ctx, userID, "create")
	return rec, nil
}

func (s *recordService) Update(ctx context.Context, userID string, patch models.RecordPatch) (models.Record, error) {
	if userID == "" {
		return models.Record{}, ErrNoUserID
	}
	if patch.ID == "" {
		return models.Record{}, ErrInvalidDataProvided
	}
	if patch.IsEmpty() {
		return models.Record{}, ErrEmptyPatch
	}
	err := s.validator.Validate(ctx, patch, validators.FieldName, validators.FieldPrincipal, validators.FieldRepaid, validators.FieldStatus)
	if err != nil {
		return models.Record{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	rec, err := s.repo.UpdateRecord(ctx, userID, patch)
	if err != nil {
		return models.Record{}, fmt.Errorf("update record: %w", err)
	}

	s.changed(ctx, userID, "update")
	return rec, nil
}

func (s *recordService) Delete(ctx context.Context, userID, id string) error {
	if userID == "" {
		return ErrNoUserID
	}
	if id == "" {
		return ErrInvalidDataProvided
	}

	if err := s.repo.DeleteRecord(ctx, userID, id); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}

	s.changed(ctx, userID, "delete")
	return nil
}

// ApplyBatch commits the operations atomically. Listeners are notified once
// per batch, not per operation.
func (s *recordService) ApplyBatch(ctx context.Context, userID string, ops []models.BatchOp) (models.BatchResponse, error) {
	if userID == "" {
		return models.BatchResponse{}, ErrNoUserID
	}
	if err := s.validator.Validate(ctx, ops); err != nil {
		return models.BatchResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	resp, err := s.repo.ApplyBatch(ctx, userID, ops)
	if err != nil {
		return models.BatchResponse{}, fmt.Errorf("apply batch: %w", err)
	}

	s.changed(ctx, userID, "batch")
	return resp, nil
}

func (s *recordService) changed(ctx context.Context, userID, op string) {
	logger.FromContext(ctx).Debug().
		Str("func", "recordService.changed").
		Str("user_id", userID).
		Str("op", op).
		Msg("collection changed")
	s.hub.Notify(userID)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-lend-keeper/internal/ledger"
	"github.com/MKhiriev/go-lend-keeper/internal/logger"
	"github.com/MKhiriev/go-lend-keeper/models"
)

// recordRepository is the SQL implementation of [RecordRepository].
//
// Every write re-validates the stored shape of the record with
// ledger.ValidateRecord, so the table never holds a paid record whose
// repayment is short, whatever the client sent.
type recordRepository struct {
	logger *logger.Logger
	db     *DB
	now    func() time.Time
}

// NewRecordRepository constructs a [RecordRepository] backed by db.
func NewRecordRepository(db *DB, logger *logger.Logger) RecordRepository {
	logger.Debug().Msg("creating record repository")
	return &recordRepository{
		db:     db,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// ListRecords returns the whole collection of a user.
func (r *recordRepository) ListRecords(ctx context.Context, userID string) ([]models.Record, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.buildListRecordsQuery(userID)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*recordRepository.ListRecords").Str("user_id", userID).Msg("error querying records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			log.Err(err).Str("func", "*recordRepository.ListRecords").Msg("error scanning record")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}

// CreateRecord inserts one record. It is a batch of one.
func (r *recordRepository) CreateRecord(ctx context.Context, userID string, draft models.RecordDraft) (models.Record, error) {
	var created models.Record
	err := r.db.withTx(ctx, func(tx *sql.Tx) error {
		rec, err := r.create(ctx, tx, userID, draft, r.now())
		created = rec
		return err
	})
	return created, err
}

// UpdateRecord merges patch into the stored record inside a transaction and
// returns the result.
func (r *recordRepository) UpdateRecord(ctx context.Context, userID string, patch models.RecordPatch) (models.Record, error) {
	var updated models.Record
	err := r.db.withTx(ctx, func(tx *sql.Tx) error {
		rec, err := r.update(ctx, tx, userID, patch, r.now())
		updated = rec
		return err
	})
	return updated, err
}

// DeleteRecord removes one record.
func (r *recordRepository) DeleteRecord(ctx context.Context, userID, id string) error {
	return r.delete(ctx, r.db, userID, id)
}

// ApplyBatch applies up to models.MaxBatchOps operations atomically: either
// all of them are committed or none is.
func (r *recordRepository) ApplyBatch(ctx context.Context, userID string, ops []models.BatchOp) (models.BatchResponse, error) {
	log := logger.FromContext(ctx)

	switch {
	case len(ops) == 0:
		return models.BatchResponse{}, ErrEmptyBatch
	case len(ops) > models.MaxBatchOps:
		return models.BatchResponse{}, fmt.Errorf("%w: %d > %d", ErrBatchTooLarge, len(ops), models.MaxBatchOps)
	}

	resp := models.BatchResponse{}
	now := r.now()
	err := r.db.withTx(ctx, func(tx *sql.Tx) error {
		for i, op := range ops {
			if err := r.applyOp(ctx, tx, userID, op, now, &resp); err != nil {
				return fmt.Errorf("operation %d (%s): %w", i, op.Kind, err)
			}
		}
		return nil
	})
	if err != nil {
		log.Err(err).Str("func", "*recordRepository.ApplyBatch").Int("ops", len(ops)).Msg("batch rolled back")
		return models.BatchResponse{}, err
	}

	resp.Committed = len(ops)
	log.Debug().Str("func", "*recordRepository.ApplyBatch").Int("ops", len(ops)).Msg("batch committed")
	return resp, nil
}

func (r *recordRepository) applyOp(ctx context.Context, tx *sql.Tx, userID string, op models.BatchOp, now time.Time, resp *models.BatchResponse) error {
	switch op.Kind {
	case models.BatchCreate:
		if op.Create == nil {
			return ErrInvalidBatchOp
		}
		rec, err := r.create(ctx, tx, userID, *op.Create, now)
		if err != nil {
			return err
		}
		resp.CreatedIDs = append(resp.CreatedIDs, rec.ID)
		return nil
	case models.BatchUpdate:
		if op.Patch == nil {
			return ErrInvalidBatchOp
		}
		_, err := r.update(ctx, tx, userID, *op.Patch, now)
		return err
	case models.BatchDelete:
		if op.ID == "" {
			return ErrInvalidBatchOp
		}
		return r.delete(ctx, tx, userID, op.ID)
	}
	return fmt.Errorf("%w: kind %q", ErrInvalidBatchOp, op.Kind)
}

// create builds the stored record from a draft. New records always start
// pending.
func (r *recordRepository) create(ctx context.Context, q queryer, userID string, draft models.RecordDraft, now time.Time) (models.Record, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return models.Record{}, fmt.Errorf("error generating record id: %w", err)
	}

	rec := models.Record{
		ID:           id.String(),
		UserID:       userID,
		Name:         strings.TrimSpace(draft.Name),
		Principal:    draft.Principal,
		AmountRepaid: draft.AmountRepaid,
		Status:       ledger.ResolveStatus(draft.Principal, draft.AmountRepaid, draft.Status, ledger.StageCreation),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := ledger.ValidateRecord(rec); err != nil {
		return models.Record{}, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}

	query, args, err := r.db.buildInsertRecordQuery(rec)
	if err != nil {
		return models.Record{}, err
	}
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return models.Record{}, r.classifyWriteError(err)
	}
	return rec, nil
}

func (r *recordRepository) update(ctx context.Context, q queryer, userID string, patch models.RecordPatch, now time.Time) (models.Record, error) {
	current, err := r.get(ctx, q, userID, patch.ID)
	if err != nil {
		return models.Record{}, err
	}

	merged := patch.Apply(current)
	merged.Name = strings.TrimSpace(merged.Name)
	if err := ledger.ValidateRecord(merged); err != nil {
		return models.Record{}, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}

	query, args, err := r.db.buildUpdateRecordQuery(merged, now)
	if err != nil {
		return models.Record{}, err
	}
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return models.Record{}, r.classifyWriteError(err)
	}

	merged.UpdatedAt = now
	return merged, nil
}

func (r *recordRepository) delete(ctx context.Context, q queryer, userID, id string) error {
	query, args, err := r.db.buildDeleteRecordQuery(userID, id)
	if err != nil {
		return err
	}

	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return r.classifyWriteError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (r *recordRepository) get(ctx context.Context, q queryer, userID, id string) (models.Record, error) {
	query, args, err := r.db.buildGetRecordQuery(userID, id)
	if err != nil {
		return models.Record{}, err
	}

	rec, err := scanRecord(q.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Record{}, ErrRecordNotFound
	}
	if err != nil {
		return models.Record{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return rec, nil
}

// classifyWriteError maps constraint failures that slipped past validation
// onto ErrInvalidRecord.
func (r *recordRepository) classifyWriteError(err error) error {
	if r.db.errorClassificator != nil && r.db.errorClassificator.IsCheckViolation(err) {
		return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (models.Record, error) {
	var (
		rec    models.Record
		status string
	)
	err := row.Scan(&rec.ID, &rec.UserID, &rec.Name, &rec.Principal, &rec.AmountRepaid, &status, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return models.Record{}, err
	}
	rec.Status = models.RecordStatus(status)
	return rec, nil
}

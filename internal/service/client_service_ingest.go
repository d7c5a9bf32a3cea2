// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-lend-keeper/internal/adapter"
	"github.com/MKhiriev/go-lend-keeper/internal/ledger"
	"github.com/MKhiriev/go-lend-keeper/internal/logger"
	"github.com/MKhiriev/go-lend-keeper/models"
)

// IngestReport summarizes an upload.
type IngestReport struct {
	// Rows is the number of data rows read from the sheet.
	Rows int
	// Valid is the number of rows that passed normalization.
	Valid int
	// Committed is the number of records saved on the server.
	Committed int
	// Skipped lists the rejected rows in sheet order.
	Skipped []*ledger.RowError
	// CreatedIDs lists the server ids of the saved records.
	CreatedIDs []string
}

type clientIngestService struct {
	adapter adapter.ServerAdapter
	logger  *logger.Logger
}

func NewClientIngestService(serverAdapter adapter.ServerAdapter, logger *logger.Logger) ClientIngestService {
	return &clientIngestService{adapter: serverAdapter, logger: logger}
}

func (s *clientIngestService) Upload(ctx context.Context, rows []ledger.RawRow, progress ProgressFunc) (IngestReport, error) {
	report := IngestReport{Rows: len(rows)}

	ops := make([]models.BatchOp, 0, len(rows))
	for _, raw := range rows {
		row, rowErr := ledger.NormalizeRow(raw)
		if rowErr != nil {
			report.Skipped = append(report.Skipped, rowErr)
			continue
		}
		ops = append(ops, models.NewCreateOp(row.Draft()))
	}
	report.Valid = len(ops)

	if len(ops) == 0 {
		return report, ErrNothingToUpload
	}

	s.logger.Info().
		Str("func", "clientIngestService.Upload").
		Int("rows", report.Rows).
		Int("valid", report.Valid).
		Int("skipped", len(report.Skipped)).
		Msg("uploading rows")

	created, err := commitChunked(ctx, s.adapter, "upload", ops, func(processed, total int) {
		report.Committed = processed
		if progress != nil {
			progress(processed, total)
		}
	})
	report.CreatedIDs = created
	if err != nil {
		var bulkErr *BulkError
		if errors.As(err, &bulkErr) {
			report.Committed = bulkErr.Committed
		}
		s.logger.Err(err).Str("func", "clientIngestService.Upload").Int("committed", report.Committed).Msg("upload stopped")
		return report, err
	}

	return report, nil
}

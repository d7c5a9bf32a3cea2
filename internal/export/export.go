// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"

	"github.com/MKhiriev/go-lend-keeper/internal/ledger"
	"github.com/MKhiriev/go-lend-keeper/internal/logger"
	"github.com/MKhiriev/go-lend-keeper/models"
)

// Target names where an export goes.
type Target string

const (
	TargetFile      Target = "file"
	TargetClipboard Target = "clipboard"
)

// Sink receives an export. Export returns where the data went, for the
// status line.
type Sink interface {
	Export(ctx context.Context, records []models.Record, now time.Time) (string, error)
}

// FileSink writes lending_records_<date>.csv into a directory, replacing a
// file of the same day.
type FileSink struct {
	dir string
	loc *time.Location

	logger *logger.Logger
}

// NewFileSink writes into dir with timestamps in loc (time.Local when nil).
func NewFileSink(dir string, loc *time.Location, logger *logger.Logger) *FileSink {
	return &FileSink{dir: dir, loc: loc, logger: logger}
}

func (s *FileSink) Export(ctx context.Context, records []models.Record, now time.Time) (string, error) {
	if len(records) == 0 {
		return "", ErrNothingToExport
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}

	path := filepath.Join(s.dir, ledger.ExportFileName(now))
	if err := writeFileAtomic(path, []byte(ledger.ToCSV(records, s.loc))); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}

	s.logger.Info().Str("func", "FileSink.Export").Str("path", path).Int("records", len(records)).Msg("records exported")
	return path, nil
}

// writeFileAtomic writes into a temp file next to path and renames it, so a
// reader never sees half an export.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".export-*.csv")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// ClipboardSink copies the CSV text to the system clipboard.
type ClipboardSink struct {
	loc   *time.Location
	write func(string) error

	logger *logger.Logger
}

func NewClipboardSink(loc *time.Location, logger *logger.Logger) *ClipboardSink {
	return &ClipboardSink{loc: loc, write: clipboard.WriteAll, logger: logger}
}

func (s *ClipboardSink) Export(ctx context.Context, records []models.Record, now time.Time) (string, error) {
	if len(records) == 0 {
		return "", ErrNothingToExport
	}
	if clipboard.Unsupported {
		return "", ErrClipboardUnavailable
	}

	if err := s.write(ledger.ToCSV(records, s.loc)); err != nil {
		return "", fmt.Errorf("%w: %w", ErrClipboardUnavailable, err)
	}

	s.logger.Info().Str("func", "ClipboardSink.Export").Int("records", len(records)).Msg("records copied")
	return "clipboard", nil
}

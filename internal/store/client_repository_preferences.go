// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-lend-keeper/internal/logger"
)

// Preference keys stored by the client.
const (
	PrefTheme        = "theme"
	PrefSessionToken = "session.token"
	PrefSessionLogin = "session.login"
	PrefSessionUser  = "session.user_id"
)

type preferencesRepository struct {
	*DB
	logger *logger.Logger
}

// NewPreferencesRepository returns the SQLite-backed [PreferencesRepository].
func NewPreferencesRepository(db *DB, logger *logger.Logger) PreferencesRepository {
	return &preferencesRepository{
		DB:     db,
		logger: logger,
	}
}

// GetPreference returns the stored value and whether the key exists.
func (p *preferencesRepository) GetPreference(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := p.QueryRowContext(ctx, getPreference, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "preferencesRepository.GetPreference").
			Str("key", key).
			Msg("failed to read preference")
		return "", false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return value, true, nil
}

// SetPreference inserts or replaces a value.
func (p *preferencesRepository) SetPreference(ctx context.Context, key, value string) error {
	if _, err := p.ExecContext(ctx, upsertPreference, key, value, time.Now().UTC()); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "preferencesRepository.SetPreference").
			Str("key", key).
			Msg("failed to save preference")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

// DeletePreference removes a key; a missing key is not an error.
func (p *preferencesRepository) DeletePreference(ctx context.Context, key string) error {
	if _, err := p.ExecContext(ctx, deletePreference, key); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

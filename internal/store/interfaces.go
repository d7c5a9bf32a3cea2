// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-lend-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository persists accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
}

// RecordRepository persists the per-user record collections. Every method is
// scoped by userID; a record of another user behaves as missing.
type RecordRepository interface {
	ListRecords(ctx context.Context, userID string) ([]models.Record, error)
	CreateRecord(ctx context.Context, userID string, draft models.RecordDraft) (models.Record, error)
	UpdateRecord(ctx context.Context, userID string, patch models.RecordPatch) (models.Record, error)
	DeleteRecord(ctx context.Context, userID, id string) error
	ApplyBatch(ctx context.Context, userID string, ops []models.BatchOp) (models.BatchResponse, error)
}

// PreferencesRepository is the client's key/value settings table.
type PreferencesRepository interface {
	GetPreference(ctx context.Context, key string) (string, bool, error)
	SetPreference(ctx context.Context, key, value string) error
	DeletePreference(ctx context.Context, key string) error
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-lend-keeper/models"
)

// AuthService registers users, checks credentials and issues tokens.
type AuthService interface {
	RegisterUser(ctx context.Context, user models.User) (models.User, error)
	Login(ctx context.Context, user models.User) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// RecordService owns the server side of the record collection. Every
// successful write notifies the user's open change streams.
type RecordService interface {
	List(ctx context.Context, userID string) ([]models.Record, error)
	Create(ctx context.Context, userID string, draft models.RecordDraft) (models.Record, error)
	Update(ctx context.Context, userID string, patch models.RecordPatch) (models.Record, error)
	Delete(ctx context.Context, userID, id string) error
	ApplyBatch(ctx context.Context, userID string, ops []models.BatchOp) (models.BatchResponse, error)
}

// SnapshotHub fans change notifications out to the open streams of a user.
type SnapshotHub interface {
	// Subscribe registers a listener for userID. The channel receives one
	// signal per burst of changes; cancel unregisters it.
	Subscribe(userID string) (changes <-chan struct{}, cancel func())

	// Notify signals every listener of userID without blocking.
	Notify(userID string)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// HealthService reports whether the backend can serve requests.
type HealthService interface {
	Check(ctx context.Context) error
}

// Pinger is satisfied by store.Storages.
type Pinger interface {
	Ping(ctx context.Context) error
}

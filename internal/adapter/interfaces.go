// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the client's transport to the go-lend-keeper server.
//
// [ServerAdapter] hides the REST calls and the Server-Sent Events change
// stream. HTTP failures are mapped onto the sentinels in errors.go so callers
// can use [errors.Is] (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-lend-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter talks to the server on behalf of one signed-in user.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to authenticated requests.
	SetToken(token string)

	// Token returns the stored bearer token, or "".
	Token() string

	// Register creates an account and returns the issued bearer token. The
	// token is also stored via SetToken.
	Register(ctx context.Context, user models.User) (string, error)

	// Login checks credentials and returns the issued bearer token. The token
	// is also stored via SetToken.
	Login(ctx context.Context, user models.User) (string, error)

	// ListRecords is a one-shot read of the whole collection.
	ListRecords(ctx context.Context) ([]models.Record, error)

	CreateRecord(ctx context.Context, draft models.RecordDraft) (models.Record, error)

	// UpdateRecord merges the non-nil fields of patch into the record.
	UpdateRecord(ctx context.Context, patch models.RecordPatch) (models.Record, error)

	DeleteRecord(ctx context.Context, id string) error

	// CommitBatch applies up to models.MaxBatchOps operations atomically.
	CommitBatch(ctx context.Context, ops []models.BatchOp) (models.BatchResponse, error)

	// Subscribe opens the change stream. The first snapshot arrives right
	// after connecting, then one after every committed change.
	Subscribe(ctx context.Context) (Subscription, error)

	// Version returns the server version string.
	Version(ctx context.Context) (string, error)
}

// Subscription is one open change stream.
type Subscription interface {
	// Snapshots delivers full collections in arrival order. It is closed when
	// the stream ends for any reason.
	Snapshots() <-chan models.Snapshot

	// Err reports why the stream ended. It is nil while the stream is open
	// and after Close.
	Err() error

	// Close ends the stream and waits for its reader to exit. It is safe to
	// call more than once.
	Close()
}

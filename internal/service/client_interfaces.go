// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-lend-keeper/internal/ledger"
	"github.com/MKhiriev/go-lend-keeper/models"
)

// ProgressFunc receives cumulative progress after every committed chunk.
type ProgressFunc func(processed, total int)

// ClientAuthService signs the user in and out and keeps the session in the
// local preferences store. Every change is published on [AuthState].
type ClientAuthService interface {
	Register(ctx context.Context, login, password string) (models.Identity, error)
	Login(ctx context.Context, login, password string) (models.Identity, error)

	// Logout forgets the saved session and publishes the zero identity.
	Logout(ctx context.Context) error

	// Restore signs back in with a saved session, if any. A missing session
	// yields the zero identity and no error.
	Restore(ctx context.Context) (models.Identity, error)
}

// ClientRecordService sends single-record writes. Input is validated before
// anything reaches the server, and nothing touches the local store: the
// result comes back through the next pushed snapshot.
type ClientRecordService interface {
	// Create adds one record from the manual form. It always starts pending.
	Create(ctx context.Context, in ledger.RecordInput) (models.Record, error)

	// Edit saves the form over current. The requested status goes through
	// ResolveStatus; EditResult tells whether it was overridden.
	Edit(ctx context.Context, current models.Record, in ledger.RecordInput) (EditResult, error)

	// MarkPaid raises the repayment to the principal and sets paid.
	MarkPaid(ctx context.Context, current models.Record) (models.Record, error)

	Delete(ctx context.Context, id string) error

	// DeleteAll removes the whole collection in chunked batches and returns
	// how many records were deleted.
	DeleteAll(ctx context.Context, progress ProgressFunc) (int, error)
}

// ClientIngestService uploads spreadsheet rows.
type ClientIngestService interface {
	// Upload normalizes rows, skips the invalid ones and commits the rest in
	// chunks of ledger.BatchChunkSize, one after another. A failed chunk
	// stops the run with a *BulkError.
	Upload(ctx context.Context, rows []ledger.RawRow, progress ProgressFunc) (IngestReport, error)
}

// ClientSyncService mirrors the server collection into the local store
// through exactly one live subscription.
type ClientSyncService interface {
	// Start cancels the running subscription, waits for it and opens a new
	// one for identity.
	Start(ctx context.Context, identity models.Identity) error

	// Stop cancels the subscription, waits for it and empties the store.
	Stop()

	// Follow starts and stops the subscription as the signed-in identity
	// changes, until ctx is done.
	Follow(ctx context.Context, auth *AuthState)

	// Errors reports subscription failures. Nothing is retried.
	Errors() <-chan error

	Store() *ledger.RecordStore
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrLoginAlreadyExists is returned when registering a login that is
	// already taken.
	ErrLoginAlreadyExists = errors.New("login already exists")

	// ErrNoUserWasFound is returned when a lookup by login matches nothing.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrRecordNotFound is returned when a record id does not exist for the
	// requesting user.
	ErrRecordNotFound = errors.New("record was not found")

	// ErrInvalidRecord is returned when a write would break a record
	// invariant. It wraps the specific validation error.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrEmptyBatch is returned for a batch without operations.
	ErrEmptyBatch = errors.New("batch has no operations")

	// ErrBatchTooLarge is returned when a batch exceeds models.MaxBatchOps.
	ErrBatchTooLarge = errors.New("batch exceeds the operation limit")

	// ErrInvalidBatchOp is returned for an operation with an unknown kind or
	// a missing payload.
	ErrInvalidBatchOp = errors.New("invalid batch operation")
)

// Low-level database operation errors.
var (
	// ErrNoConnection is returned by Storages.Ping before a connection exists.
	ErrNoConnection = errors.New("no database connection")

	// ErrBuildingSQLQuery is returned when squirrel cannot build a query.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the driver cannot start a
	// transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing fails. The
	// transaction is rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when an INSERT, UPDATE or DELETE
	// fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRow is returned when scanning a single row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when iterating a result set fails.
	ErrScanningRows = errors.New("failed to scan rows")
)

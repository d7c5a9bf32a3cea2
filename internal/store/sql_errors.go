// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// ErrorClassification tells whether a failed database operation may succeed
// when retried.
type ErrorClassification int

const (
	// NonRetryable is the default for unrecognised errors, constraint
	// violations, syntax errors and data exceptions.
	NonRetryable ErrorClassification = iota

	// Retryable marks transient failures such as lost connections, deadlocks
	// and busy databases.
	Retryable
)

// ErrorClassificator inspects driver errors of one dialect.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
	IsUniqueViolation(err error) bool
	IsCheckViolation(err error) bool
}

// PostgresErrorClassifier implements [ErrorClassificator] for PostgreSQL
// using the SQLSTATE carried by *pgconn.PgError.
type PostgresErrorClassifier struct{}

// NewPostgresErrorClassifier constructs a [PostgresErrorClassifier].
func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// Classify maps SQLSTATE classes 08 (connection), 40 (transaction rollback)
// and 57P03 (cannot connect now) to [Retryable]; everything else is
// [NonRetryable].
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	switch pgCode(err) {
	case pgerrcode.ConnectionException,
		pgerrcode.ConnectionDoesNotExist,
		pgerrcode.ConnectionFailure,
		pgerrcode.TransactionRollback,
		pgerrcode.SerializationFailure,
		pgerrcode.DeadlockDetected,
		pgerrcode.CannotConnectNow:
		return Retryable
	}
	return NonRetryable
}

func (c *PostgresErrorClassifier) IsUniqueViolation(err error) bool {
	return pgCode(err) == pgerrcode.UniqueViolation
}

func (c *PostgresErrorClassifier) IsCheckViolation(err error) bool {
	code := pgCode(err)
	return code == pgerrcode.CheckViolation || code == pgerrcode.NotNullViolation
}

// SQLiteErrorClassifier implements [ErrorClassificator] for go-sqlite3.
type SQLiteErrorClassifier struct{}

// NewSQLiteErrorClassifier constructs a [SQLiteErrorClassifier].
func NewSQLiteErrorClassifier() *SQLiteErrorClassifier {
	return &SQLiteErrorClassifier{}
}

func sqliteErr(err error) (sqlite3.Error, bool) {
	var sqErr sqlite3.Error
	ok := errors.As(err, &sqErr)
	return sqErr, ok
}

// Classify treats SQLITE_BUSY and SQLITE_LOCKED as [Retryable].
func (c *SQLiteErrorClassifier) Classify(err error) ErrorClassification {
	sqErr, ok := sqliteErr(err)
	if !ok {
		return NonRetryable
	}
	switch sqErr.Code {
	case sqlite3.ErrBusy, sqlite3.ErrLocked:
		return Retryable
	}
	return NonRetryable
}

func (c *SQLiteErrorClassifier) IsUniqueViolation(err error) bool {
	sqErr, ok := sqliteErr(err)
	return ok && (sqErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
		sqErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey)
}

func (c *SQLiteErrorClassifier) IsCheckViolation(err error) bool {
	sqErr, ok := sqliteErr(err)
	return ok && (sqErr.ExtendedCode == sqlite3.ErrConstraintCheck ||
		sqErr.ExtendedCode == sqlite3.ErrConstraintNotNull)
}

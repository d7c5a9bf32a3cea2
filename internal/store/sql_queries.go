// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-lend-keeper/models"
)

var (
	userColumns   = []string{"user_id", "login", "password_hash", "created_at"}
	recordColumns = []string{"id", "user_id", "name", "principal", "amount_repaid", "status", "created_at", "updated_at"}
)

func (db *DB) buildInsertUserQuery(user models.User) (string, []any, error) {
	query, args, err := db.builder().
		Insert(models.User{}.TableName()).
		Columns(userColumns...).
		Values(user.UserID, user.Login, user.PasswordHash, user.CreatedAt).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func (db *DB) buildFindUserByLoginQuery(login string) (string, []any, error) {
	query, args, err := db.builder().
		Select(userColumns...).
		From(models.User{}.TableName()).
		Where(sq.Eq{"login": login}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildListRecordsQuery selects a user's records; id breaks created_at ties
// so the order is stable across reads.
func (db *DB) buildListRecordsQuery(userID string) (string, []any, error) {
	query, args, err := db.builder().
		Select(recordColumns...).
		From(models.Record{}.TableName()).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func (db *DB) buildGetRecordQuery(userID, id string) (string, []any, error) {
	query, args, err := db.builder().
		Select(recordColumns...).
		From(models.Record{}.TableName()).
		Where(sq.Eq{"user_id": userID, "id": id}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func (db *DB) buildInsertRecordQuery(rec models.Record) (string, []any, error) {
	query, args, err := db.builder().
		Insert(rec.TableName()).
		Columns(recordColumns...).
		Values(rec.ID, rec.UserID, rec.Name, rec.Principal, rec.AmountRepaid, string(rec.Status), rec.CreatedAt, rec.UpdatedAt).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildUpdateRecordQuery writes every mutable column of an already merged
// record. created_at is never touched.
func (db *DB) buildUpdateRecordQuery(rec models.Record, now time.Time) (string, []any, error) {
	query, args, err := db.builder().
		Update(rec.TableName()).
		Set("name", rec.Name).
		Set("principal", rec.Principal).
		Set("amount_repaid", rec.AmountRepaid).
		Set("status", string(rec.Status)).
		Set("updated_at", now).
		Where(sq.Eq{"user_id": rec.UserID, "id": rec.ID}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func (db *DB) buildDeleteRecordQuery(userID, id string) (string, []any, error) {
	query, args, err := db.builder().
		Delete(models.Record{}.TableName()).
		Where(sq.Eq{"user_id": userID, "id": id}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

const (
	getPreference    = `SELECT value FROM preferences WHERE key = ?;`
	deletePreference = `DELETE FROM preferences WHERE key = ?;`
	upsertPreference = `INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at;`
)

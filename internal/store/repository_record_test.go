package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-lend-keeper/internal/ledger"
	"github.com/MKhiriev/go-lend-keeper/internal/logger"
	"github.com/MKhiriev/go-lend-keeper/models"
)

var fixedNow = time.Date(2025, time.May, 1, 10, 0, 0, 0, time.UTC)

func newTestRecordRepo(t *testing.T, dialect Dialect) (*recordRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t, dialect)
	return &recordRepository{db: db, logger: logger.Nop(), now: func() time.Time { return fixedNow }}, mock
}

func recordRow(id, name, principal, repaid, status string) []any {
	return []any{id, "user-1", name, principal, repaid, status, fixedNow, fixedNow}
}

func draft(name, principal, repaid string, status models.RecordStatus) models.RecordDraft {
	return models.RecordDraft{
		Name:         name,
		Principal:    decimal.RequireFromString(principal),
		AmountRepaid: decimal.RequireFromString(repaid),
		Status:       status,
	}
}

// ── ListRecords ───────────────────────────────────────────────────────────────

func TestListRecords_Success(t *testing.T) {
	repo, mock := newTestRecordRepo(t, DialectPostgres)

	mock.ExpectQuery(`SELECT (.+) FROM records WHERE user_id = \$1 ORDER BY created_at, id`).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows(recordColumns).
			AddRow(recordRow("r1", "Alice", "100.00", "100.00", "paid")...).
			AddRow(recordRow("r2", "Bob", "50.50", "0.00", "pending")...))

	records, err := repo.ListRecords(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, models.StatusPaid, records[0].Status)
	assert.True(t, records[1].Principal.Equal(decimal.RequireFromString("50.5")))
	assert.Equal(t, "user-1", records[1].UserID)
}

func TestListRecords_EmptyIsNotNil(t *testing.T) {
	repo, mock := newTestRecordRepo(t, DialectPostgres)

	mock.ExpectQuery("SELECT (.+) FROM records").
		WillReturnRows(sqlmock.NewRows(recordColumns))

	records, err := repo.ListRecords(context.Background(), "user-1")
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestListRecords_QueryError(t *testing.T) {
	repo, mock := newTestRecordRepo(t, DialectPostgres)

	mock.ExpectQuery("SELECT (.+) FROM records").WillReturnError(errors.New("boom"))

	_, err := repo.ListRecords(context.Background(), "user-1")
	assert.ErrorIs(t, err, ErrExecutingQuery)
}

func TestListRecords_SQLitePlaceholders(t *testing.T) {
	repo, mock := newTestRecordRepo(t, DialectSQLite)

	mock.ExpectQuery(`SELECT (.+) FROM records WHERE user_id = \?`).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows(recordColumns))

	_, err := repo.ListRecords(context.Background(), "user-1")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ── CreateRecord ──────────────────────────────────────────────────────────────

func TestCreateRecord_ForcesPendingAndTrims(t *testing.T) {
	repo, mock := newTestRecordRepo(t, DialectPostgres)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO records").
		WithArgs(sqlmock.AnyArg(), "user-1", "Alice", sqlmock.AnyArg(), sqlmock.AnyArg(), "pending", fixedNow, fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rec, err := repo.CreateRecord(context.Background(), "user-1", draft("  Alice ", "100", "100", models.StatusPaid))
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, rec.Status)
	assert.Equal(t, "Alice", rec.Name)
	assert.NotEmpty(t, rec.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRecord_InvalidNeverReachesDB(t *testing.T) {
	repo, mock := newTestRecordRepo(t, DialectPostgres)

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := repo.CreateRecord(context.Background(), "user-1", draft("Alice", "0", "0", ""))
	assert.ErrorIs(t, err, ErrInvalidRecord)
	assert.ErrorIs(t, err, ledger.ErrNonPositivePrincipal)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRecord_CheckViolation(t *testing.T) {
	repo, mock := newTestRecordRepo(t, DialectPostgres)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO records").WillReturnError(pgError(pgerrcode.CheckViolation))
	mock.ExpectRollback()

	_, err := repo.CreateRecord(context.Background(), "user-1", draft("Alice", "10", "0", ""))
	assert.ErrorIs(t, err, ErrInvalidRecord)
}

// ── UpdateRecord ──────────────────────────────────────────────────────────────

func TestUpdateRecord_MergesAndValidates(t *testing.T) {
	repo, mock := newTestRecordRepo(t, DialectPostgres)
	repaid := decimal.RequireFromString("100")
	paid := models.StatusPaid

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM records WHERE").
		WithArgs("r1", "user-1").
		WillReturnRows(sqlmock.NewRows(recordColumns).AddRow(recordRow("r1", "Alice", "100.00", "20.00", "pending")...))
	mock.ExpectExec("UPDATE records SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rec, err := repo.UpdateRecord(context.Background(), "user-1", models.RecordPatch{ID: "r1", AmountRepaid: &repaid, Status: &paid})
	require.NoError(t, err)

	assert.Equal(t, models.StatusPaid, rec.Status)
	assert.Equal(t, "Alice", rec.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateRecord_PaidWithoutCoverageRejected(t *testing.T) {
	repo, mock := newTestRecordRepo(t, DialectPostgres)
	paid := models.StatusPaid

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM records WHERE").
		WillReturnRows(sqlmock.NewRows(recordColumns).AddRow(recordRow("r1", "Alice", "100.00", "20.00", "pending")...))
	mock.ExpectRollback()

	_, err := repo.UpdateRecord(context.Background(), "user-1", models.RecordPatch{ID: "r1", Status: &paid})
	assert.ErrorIs(t, err, ErrInvalidRecord)
	assert.ErrorIs(t, err, ledger.ErrPaidNotCovered)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateRecord_NotFound(t *testing.T) {
	repo, mock := newTestRecordRepo(t, DialectPostgres)
	name := "x"

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM records WHERE").
		WillReturnRows(sqlmock.NewRows(recordColumns))
	mock.ExpectRollback()

	_, err := repo.UpdateRecord(context.Background(), "user-1", models.RecordPatch{ID: "missing", Name: &name})
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

// ── DeleteRecord ──────────────────────────────────────────────────────────────

func TestDeleteRecord(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{name: "deleted", affected: 1},
		{name: "missing", affected: 0, wantErr: ErrRecordNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestRecordRepo(t, DialectPostgres)
			mock.ExpectExec("DELETE FROM records WHERE").
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			err := repo.DeleteRecord(context.Background(), "user-1", "r1")
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ── ApplyBatch ────────────────────────────────────────────────────────────────

func TestApplyBatch_CommitsAll(t *testing.T) {
	repo, mock := newTestRecordRepo(t, DialectPostgres)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO records").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO records").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM records").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	resp, err := repo.ApplyBatch(context.Background(), "user-1", []models.BatchOp{
		models.NewCreateOp(draft("A", "1", "0", "")),
		models.NewCreateOp(draft("B", "2", "0", "")),
		models.NewDeleteOp("old"),
	})
	require.NoError(t, err)

	assert.Equal(t, 3, resp.Committed)
	assert.Len(t, resp.CreatedIDs, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyBatch_RollsBackOnFailure(t *testing.T) {
	repo, mock := newTestRecordRepo(t, DialectPostgres)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO records").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM records").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := repo.ApplyBatch(context.Background(), "user-1", []models.BatchOp{
		models.NewCreateOp(draft("A", "1", "0", "")),
		models.NewDeleteOp("missing"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRecordNotFound)
	assert.Contains(t, err.Error(), "operation 1")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyBatch_Limits(t *testing.T) {
	repo, _ := newTestRecordRepo(t, DialectPostgres)

	_, err := repo.ApplyBatch(context.Background(), "user-1", nil)
	assert.ErrorIs(t, err, ErrEmptyBatch)

	ops := make([]models.BatchOp, models.MaxBatchOps+1)
	_, err = repo.ApplyBatch(context.Background(), "user-1", ops)
	assert.ErrorIs(t, err, ErrBatchTooLarge)
}

func TestApplyBatch_InvalidOp(t *testing.T) {
	repo, mock := newTestRecordRepo(t, DialectPostgres)

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := repo.ApplyBatch(context.Background(), "user-1", []models.BatchOp{{Kind: "explode"}})
	assert.ErrorIs(t, err, ErrInvalidBatchOp)
}

func TestApplyBatch_BeginFails(t *testing.T) {
	repo, mock := newTestRecordRepo(t, DialectPostgres)

	mock.ExpectBegin().WillReturnError(errors.New("no conn"))

	_, err := repo.ApplyBatch(context.Background(), "user-1", []models.BatchOp{models.NewDeleteOp("x")})
	assert.ErrorIs(t, err, ErrBeginningTransaction)
}

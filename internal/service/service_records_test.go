package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-lend-keeper/internal/logger"
	"github.com/MKhiriev/go-lend-keeper/internal/mock"
	"github.com/MKhiriev/go-lend-keeper/internal/ledger"
	"github.com/MKhiriev/go-lend-keeper/internal/store"
	"github.com/MKhiriev/go-lend-keeper/internal/validators"
	"github.com/MKhiriev/go-lend-keeper/models"
)

func newTestRecordSvc(t *testing.T) (RecordService, *mock.MockRecordRepository, *snapshotHub) {
	t.Helper()
	repo := mock.NewMockRecordRepository(gomock.NewController(t))
	hub := NewSnapshotHub().(*snapshotHub)
	return NewRecordService(repo, hub, validators.NewRecordValidator(), logger.Nop()), repo, hub
}

// signalled reports whether ch holds a pending change signal.
func signalled(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

func TestRecordService_List(t *testing.T) {
	svc, repo, _ := newTestRecordSvc(t)

	want := []models.Record{{ID: "r1", Name: "Ann"}}
	repo.EXPECT().ListRecords(gomock.Any(), "user-1").Return(want, nil)

	got, err := svc.List(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRecordService_RequiresUserID(t *testing.T) {
	svc, _, _ := newTestRecordSvc(t)
	ctx := context.Background()

	_, err := svc.List(ctx, "")
	assert.ErrorIs(t, err, ErrNoUserID)
	_, err = svc.Create(ctx, "", models.RecordDraft{})
	assert.ErrorIs(t, err, ErrNoUserID)
	_, err = svc.Update(ctx, "", models.RecordPatch{ID: "r1"})
	assert.ErrorIs(t, err, ErrNoUserID)
	assert.ErrorIs(t, svc.Delete(ctx, "", "r1"), ErrNoUserID)
	_, err = svc.ApplyBatch(ctx, "", nil)
	assert.ErrorIs(t, err, ErrNoUserID)
}

func TestRecordService_Create_NotifiesOwner(t *testing.T) {
	svc, repo, hub := newTestRecordSvc(t)

	mine, cancelMine := hub.Subscribe("user-1")
	defer cancelMine()
	theirs, cancelTheirs := hub.Subscribe("user-2")
	defer cancelTheirs()

	draft := models.RecordDraft{Name: "Ann", Principal: decimal.NewFromInt(100), Status: models.StatusPending}
	repo.EXPECT().CreateRecord(gomock.Any(), "user-1", draft).Return(models.Record{ID: "r1", Name: "Ann"}, nil)

	rec, err := svc.Create(context.Background(), "user-1", draft)
	require.NoError(t, err)
	assert.Equal(t, "r1", rec.ID)

	assert.True(t, signalled(mine))
	assert.False(t, signalled(theirs))
}

func TestRecordService_Create_FailureDoesNotNotify(t *testing.T) {
	svc, repo, hub := newTestRecordSvc(t)

	ch, cancel := hub.Subscribe("user-1")
	defer cancel()

	repo.EXPECT().CreateRecord(gomock.Any(), "user-1", gomock.Any()).Return(models.Record{}, store.ErrInvalidRecord)

	draft := models.RecordDraft{Name: "Ann", Principal: decimal.NewFromInt(10), Status: models.StatusPaid}
	_, err := svc.Create(context.Background(), "user-1", draft)
	assert.ErrorIs(t, err, store.ErrInvalidRecord)
	assert.False(t, signalled(ch))
}

func TestRecordService_Update(t *testing.T) {
	svc, repo, hub := newTestRecordSvc(t)
	ctx := context.Background()

	ch, cancel := hub.Subscribe("user-1")
	defer cancel()

	_, err := svc.Update(ctx, "user-1", models.RecordPatch{})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.Update(ctx, "user-1", models.RecordPatch{ID: "r1"})
	assert.ErrorIs(t, err, ErrEmptyPatch)

	name := "Bob"
	patch := models.RecordPatch{ID: "r1", Name: &name}
	repo.EXPECT().UpdateRecord(gomock.Any(), "user-1", patch).Return(models.Record{ID: "r1", Name: "Bob"}, nil)

	rec, err := svc.Update(ctx, "user-1", patch)
	require.NoError(t, err)
	assert.Equal(t, "Bob", rec.Name)
	assert.True(t, signalled(ch))
}

func TestRecordService_Delete(t *testing.T) {
	svc, repo, _ := newTestRecordSvc(t)
	ctx := context.Background()

	assert.ErrorIs(t, svc.Delete(ctx, "user-1", ""), ErrInvalidDataProvided)

	repo.EXPECT().DeleteRecord(gomock.Any(), "user-1", "r1").Return(store.ErrRecordNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "user-1", "r1"), store.ErrRecordNotFound)
}

func TestRecordService_ApplyBatch_NotifiesOnce(t *testing.T) {
	svc, repo, hub := newTestRecordSvc(t)

	ch, cancel := hub.Subscribe("user-1")
	defer cancel()

	ops := []models.BatchOp{models.NewDeleteOp("r1"), models.NewDeleteOp("r2")}
	repo.EXPECT().ApplyBatch(gomock.Any(), "user-1", ops).Return(models.BatchResponse{Committed: 2}, nil)

	resp, err := svc.ApplyBatch(context.Background(), "user-1", ops)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Committed)

	assert.True(t, signalled(ch))
	assert.False(t, signalled(ch), "one batch wakes a stream once")
}

func TestRecordService_ApplyBatch_Error(t *testing.T) {
	svc, repo, _ := newTestRecordSvc(t)

	repo.EXPECT().ApplyBatch(gomock.Any(), "user-1", gomock.Any()).Return(models.BatchResponse{}, errors.New("tx aborted"))

	_, err := svc.ApplyBatch(context.Background(), "user-1", []models.BatchOp{models.NewDeleteOp("r1")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apply batch")
}

func TestRecordService_RejectsInvalidInputBeforeStorage(t *testing.T) {
	svc, _, hub := newTestRecordSvc(t)
	ctx := context.Background()

	ch, cancel := hub.Subscribe("user-1")
	defer cancel()

	_, err := svc.Create(ctx, "user-1", models.RecordDraft{Name: " ", Principal: decimal.NewFromInt(10)})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
	assert.ErrorIs(t, err, ledger.ErrEmptyName)

	negative := decimal.NewFromInt(-1)
	_, err = svc.Update(ctx, "user-1", models.RecordPatch{ID: "r1", AmountRepaid: &negative})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
	assert.ErrorIs(t, err, ledger.ErrNegativeRepayment)

	_, err = svc.ApplyBatch(ctx, "user-1", []models.BatchOp{models.NewDeleteOp("r1"), {Kind: "truncate"}})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
	assert.ErrorIs(t, err, validators.ErrUnknownBatchOp)
	assert.Contains(t, err.Error(), "index 1")

	_, err = svc.ApplyBatch(ctx, "user-1", nil)
	assert.ErrorIs(t, err, validators.ErrEmptyBatch)

	assert.False(t, signalled(ch))
}

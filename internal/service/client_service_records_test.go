package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-lend-keeper/internal/adapter"
	"github.com/MKhiriev/go-lend-keeper/internal/app"
	"github.com/MKhiriev/go-lend-keeper/internal/ledger"
	"github.com/MKhiriev/go-lend-keeper/internal/logger"
	"github.com/MKhiriev/go-lend-keeper/internal/mock"
	"github.com/MKhiriev/go-lend-keeper/internal/store"
	"github.com/MKhiriev/go-lend-keeper/models"
)

func newTestClientRecordSvc(t *testing.T) (ClientRecordService, *mock.MockServerAdapter) {
	t.Helper()
	a := mock.NewMockServerAdapter(gomock.NewController(t))
	return NewClientRecordService(a, logger.Nop()), a
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// ── Create ───────────────────────────────────────────────────────────────────

func TestClientRecordService_Create_AlwaysPending(t *testing.T) {
	svc, a := newTestClientRecordSvc(t)

	a.EXPECT().CreateRecord(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, d models.RecordDraft) (models.Record, error) {
			assert.Equal(t, "Ann", d.Name)
			assert.True(t, money("100").Equal(d.Principal))
			assert.True(t, money("100").Equal(d.AmountRepaid))
			assert.Equal(t, models.StatusPending, d.Status)
			return models.Record{ID: "r1", Name: d.Name, Status: d.Status}, nil
		},
	)

	rec, err := svc.Create(context.Background(), ledger.RecordInput{
		Name: " Ann ", Principal: "$100", AmountRepaid: "100", Status: "paid",
	})
	require.NoError(t, err)
	assert.Equal(t, "r1", rec.ID)
}

func TestClientRecordService_Create_InvalidInputNeverReachesServer(t *testing.T) {
	svc, _ := newTestClientRecordSvc(t)

	_, err := svc.Create(context.Background(), ledger.RecordInput{Name: "", Principal: "10"})
	assert.ErrorIs(t, err, ledger.ErrEmptyName)

	_, err = svc.Create(context.Background(), ledger.RecordInput{Name: "Ann", Principal: "0"})
	assert.ErrorIs(t, err, ledger.ErrNonPositivePrincipal)
}

func TestClientRecordService_Create_ServerRejects(t *testing.T) {
	svc, a := newTestClientRecordSvc(t)

	a.EXPECT().CreateRecord(gomock.Any(), gomock.Any()).
		Return(models.Record{}, fmt.Errorf("%w: %s", adapter.ErrBadRequest, app.MsgInvalidRecord))

	_, err := svc.Create(context.Background(), ledger.RecordInput{Name: "Ann", Principal: "10"})
	assert.ErrorIs(t, err, store.ErrInvalidRecord)
}

// ── Edit ─────────────────────────────────────────────────────────────────────

func TestClientRecordService_Edit(t *testing.T) {
	current := models.Record{
		ID: "r1", Name: "Ann", Principal: money("100"), AmountRepaid: money("100"), Status: models.StatusPaid,
	}

	tests := []struct {
		name           string
		in             ledger.RecordInput
		wantResolved   models.RecordStatus
		wantOverridden bool
	}{
		{
			name:         "paid with full repayment",
			in:           ledger.RecordInput{Name: "Ann", Principal: "100", AmountRepaid: "100", Status: "paid"},
			wantResolved: models.StatusPaid,
		},
		{
			name:           "paid with partial repayment is forced pending",
			in:             ledger.RecordInput{Name: "Ann", Principal: "100", AmountRepaid: "40", Status: "paid"},
			wantResolved:   models.StatusPending,
			wantOverridden: true,
		},
		{
			name:         "explicit pending is honored",
			in:           ledger.RecordInput{Name: "Ann", Principal: "100", AmountRepaid: "100", Status: "pending"},
			wantResolved: models.StatusPending,
		},
		{
			name:         "blank status with overpayment derives paid",
			in:           ledger.RecordInput{Name: "Ann", Principal: "100", AmountRepaid: "150"},
			wantResolved: models.StatusPaid,
		},
		{
			name:         "blank status with partial repayment derives pending",
			in:           ledger.RecordInput{Name: "Ann", Principal: "100", AmountRepaid: "60"},
			wantResolved: models.StatusPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, a := newTestClientRecordSvc(t)

			a.EXPECT().UpdateRecord(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, p models.RecordPatch) (models.Record, error) {
					assert.Equal(t, "r1", p.ID)
					require.NotNil(t, p.Status)
					assert.Equal(t, tt.wantResolved, *p.Status)
					return p.Apply(current), nil
				},
			)

			res, err := svc.Edit(context.Background(), current, tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.wantResolved, res.Resolved)
			assert.Equal(t, tt.wantResolved, res.Record.Status)
			assert.Equal(t, tt.wantOverridden, res.Overridden)
		})
	}
}

func TestClientRecordService_UploadedRowTurnsPaidOnEdit(t *testing.T) {
	svc, a := newTestClientRecordSvc(t)

	row, rowErr := ledger.NormalizeRow(ledger.RawRow{Line: 2, Cells: map[string]string{"Name": " Alice ", "Amount": "100", "Amount Paid Back": "100"}})
	require.Nil(t, rowErr)
	draft := row.Draft()
	require.Equal(t, models.StatusPending, draft.Status)

	current := models.Record{
		ID: "r1", Name: draft.Name, Principal: draft.Principal, AmountRepaid: draft.AmountRepaid, Status: draft.Status,
	}

	a.EXPECT().UpdateRecord(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p models.RecordPatch) (models.Record, error) {
			return p.Apply(current), nil
		},
	)

	res, err := svc.Edit(context.Background(), current, ledger.RecordInput{Name: "Alice", Principal: "100", AmountRepaid: "100"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaid, res.Resolved)
	assert.Equal(t, models.StatusPaid, res.Record.Status)
	assert.False(t, res.Overridden)
}

func TestClientRecordService_Edit_Errors(t *testing.T) {
	svc, a := newTestClientRecordSvc(t)
	ctx := context.Background()

	_, err := svc.Edit(ctx, models.Record{}, ledger.RecordInput{Name: "Ann", Principal: "1"})
	assert.ErrorIs(t, err, ErrRecordNotInStore)

	_, err = svc.Edit(ctx, models.Record{ID: "r1"}, ledger.RecordInput{Name: "Ann", Principal: "1", Status: "maybe"})
	assert.ErrorIs(t, err, ledger.ErrInvalidStatus)

	a.EXPECT().UpdateRecord(gomock.Any(), gomock.Any()).
		Return(models.Record{}, fmt.Errorf("%w: %s", adapter.ErrNotFound, app.MsgRecordNotFound))
	_, err = svc.Edit(ctx, models.Record{ID: "r1"}, ledger.RecordInput{Name: "Ann", Principal: "1"})
	assert.ErrorIs(t, err, store.ErrRecordNotFound)
}

// ── MarkPaid ─────────────────────────────────────────────────────────────────

func TestClientRecordService_MarkPaid_RaisesRepayment(t *testing.T) {
	svc, a := newTestClientRecordSvc(t)
	current := models.Record{ID: "r1", Principal: money("100"), AmountRepaid: money("30"), Status: models.StatusPending}

	a.EXPECT().UpdateRecord(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p models.RecordPatch) (models.Record, error) {
			require.NotNil(t, p.AmountRepaid)
			assert.True(t, money("100").Equal(*p.AmountRepaid))
			assert.Equal(t, models.StatusPaid, *p.Status)
			assert.Nil(t, p.Name)
			return p.Apply(current), nil
		},
	)

	rec, err := svc.MarkPaid(context.Background(), current)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaid, rec.Status)
}

func TestClientRecordService_MarkPaid_KeepsOverpayment(t *testing.T) {
	svc, a := newTestClientRecordSvc(t)
	current := models.Record{ID: "r1", Principal: money("100"), AmountRepaid: money("120")}

	a.EXPECT().UpdateRecord(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p models.RecordPatch) (models.Record, error) {
			assert.True(t, money("120").Equal(*p.AmountRepaid))
			return p.Apply(current), nil
		},
	)

	_, err := svc.MarkPaid(context.Background(), current)
	require.NoError(t, err)
}

// ── Delete / DeleteAll ───────────────────────────────────────────────────────

func TestClientRecordService_Delete(t *testing.T) {
	svc, a := newTestClientRecordSvc(t)

	assert.ErrorIs(t, svc.Delete(context.Background(), ""), ErrRecordNotInStore)

	a.EXPECT().DeleteRecord(gomock.Any(), "r1").Return(nil)
	assert.NoError(t, svc.Delete(context.Background(), "r1"))
}

func recordsWithIDs(n int) []models.Record {
	out := make([]models.Record, n)
	for i := range out {
		out[i] = models.Record{ID: fmt.Sprintf("r%04d", i)}
	}
	return out
}

func TestClientRecordService_DeleteAll_Chunks(t *testing.T) {
	svc, a := newTestClientRecordSvc(t)

	a.EXPECT().ListRecords(gomock.Any()).Return(recordsWithIDs(600), nil)
	var sizes []int
	a.EXPECT().CommitBatch(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, ops []models.BatchOp) (models.BatchResponse, error) {
			sizes = append(sizes, len(ops))
			for _, op := range ops {
				assert.Equal(t, models.BatchDelete, op.Kind)
			}
			return models.BatchResponse{Committed: len(ops)}, nil
		},
	).Times(2)

	var progress [][2]int
	n, err := svc.DeleteAll(context.Background(), func(done, total int) {
		progress = append(progress, [2]int{done, total})
	})
	require.NoError(t, err)
	assert.Equal(t, 600, n)
	assert.Equal(t, []int{499, 101}, sizes)
	assert.Equal(t, [][2]int{{499, 600}, {600, 600}}, progress)
}

func TestClientRecordService_DeleteAll_Empty(t *testing.T) {
	svc, a := newTestClientRecordSvc(t)

	a.EXPECT().ListRecords(gomock.Any()).Return(nil, nil)

	n, err := svc.DeleteAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestClientRecordService_DeleteAll_PartialFailure(t *testing.T) {
	svc, a := newTestClientRecordSvc(t)

	a.EXPECT().ListRecords(gomock.Any()).Return(recordsWithIDs(600), nil)
	gomock.InOrder(
		a.EXPECT().CommitBatch(gomock.Any(), gomock.Any()).Return(models.BatchResponse{Committed: 499}, nil),
		a.EXPECT().CommitBatch(gomock.Any(), gomock.Any()).Return(models.BatchResponse{}, errors.New("connection reset")),
	)

	n, err := svc.DeleteAll(context.Background(), nil)
	assert.Equal(t, 499, n)

	var bulkErr *BulkError
	require.ErrorAs(t, err, &bulkErr)
	assert.True(t, bulkErr.Partial())
	assert.Equal(t, 600, bulkErr.Total)
	assert.Contains(t, err.Error(), "499 of 600")
}

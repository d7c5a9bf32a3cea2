package http

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-lend-keeper/internal/app"
	"github.com/MKhiriev/go-lend-keeper/internal/config"
	"github.com/MKhiriev/go-lend-keeper/internal/store"
	"github.com/MKhiriev/go-lend-keeper/models"
)

func TestListRecords(t *testing.T) {
	ts := newTestServer(t, config.Server{})
	ts.records.listFn = func(_ context.Context, userID string) ([]models.Record, error) {
		return []models.Record{{ID: "r1", Name: "Ann", Principal: decimal.NewFromInt(10), Status: models.StatusPending}}, nil
	}

	rr := ts.do(http.MethodGet, pathRecords, "", "good")
	require.Equal(t, http.StatusOK, rr.Code)

	records := decodeBody[[]models.Record](t, rr)
	require.Len(t, records, 1)
	assert.Equal(t, "Ann", records[0].Name)
}

func TestListRecords_EmptyIsArray(t *testing.T) {
	ts := newTestServer(t, config.Server{})
	ts.records.listFn = func(context.Context, string) ([]models.Record, error) { return nil, nil }

	rr := ts.do(http.MethodGet, pathRecords, "", "good")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]", rr.Body.String())
}

func TestListRecords_GzipResponse(t *testing.T) {
	ts := newTestServer(t, config.Server{})
	ts.records.listFn = func(context.Context, string) ([]models.Record, error) {
		return []models.Record{{ID: "r1", Name: strings.Repeat("x", 200)}}, nil
	}

	req := newRequest(http.MethodGet, pathRecords, "")
	req.Header.Set("Authorization", "Bearer good")
	req.Header.Set("Accept-Encoding", "gzip")
	rr := serve(ts.router, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))

	zr, err := gzip.NewReader(rr.Body)
	require.NoError(t, err)
	plain, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Contains(t, string(plain), `"id":"r1"`)
}

func TestCreateRecord(t *testing.T) {
	ts := newTestServer(t, config.Server{})
	ts.records.createFn = func(_ context.Context, userID string, d models.RecordDraft) (models.Record, error) {
		assert.Equal(t, "user-1", userID)
		assert.Equal(t, "Ann", d.Name)
		assert.True(t, decimal.NewFromInt(100).Equal(d.Principal))
		return models.Record{ID: "r1", Name: d.Name, Principal: d.Principal, Status: d.Status}, nil
	}

	rr := ts.do(http.MethodPost, pathRecords, `{"name":"Ann","amount":"100","amountPaidBack":"0","status":"pending"}`, "good")
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "r1", decodeBody[models.Record](t, rr).ID)
}

func TestCreateRecord_InvalidRecord(t *testing.T) {
	ts := newTestServer(t, config.Server{})
	ts.records.createFn = func(context.Context, string, models.RecordDraft) (models.Record, error) {
		return models.Record{}, fmt.Errorf("create record: %w", store.ErrInvalidRecord)
	}

	rr := ts.do(http.MethodPost, pathRecords, `{"name":"Ann","amount":"100","status":"paid"}`, "good")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, app.MsgInvalidRecord, strings.TrimSpace(rr.Body.String()))
}

func TestUpdateRecord_IDFromURL(t *testing.T) {
	ts := newTestServer(t, config.Server{})
	ts.records.updateFn = func(_ context.Context, _ string, p models.RecordPatch) (models.Record, error) {
		assert.Equal(t, "r1", p.ID)
		require.NotNil(t, p.Name)
		assert.Nil(t, p.Principal)
		return models.Record{ID: p.ID, Name: *p.Name}, nil
	}

	rr := ts.do(http.MethodPatch, "/api/records/r1", `{"name":"Bob"}`, "good")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Bob", decodeBody[models.Record](t, rr).Name)
}

func TestUpdateRecord_IDMismatch(t *testing.T) {
	ts := newTestServer(t, config.Server{})

	rr := ts.do(http.MethodPatch, "/api/records/r1", `{"id":"r2","name":"Bob"}`, "good")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, app.MsgInvalidDataProvided, strings.TrimSpace(rr.Body.String()))
}

func TestUpdateRecord_NotFound(t *testing.T) {
	ts := newTestServer(t, config.Server{})
	ts.records.updateFn = func(context.Context, string, models.RecordPatch) (models.Record, error) {
		return models.Record{}, store.ErrRecordNotFound
	}

	rr := ts.do(http.MethodPatch, "/api/records/ghost", `{"name":"Bob"}`, "good")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, app.MsgRecordNotFound, strings.TrimSpace(rr.Body.String()))
}

func TestDeleteRecord(t *testing.T) {
	ts := newTestServer(t, config.Server{})
	ts.records.deleteFn = func(_ context.Context, userID, id string) error {
		assert.Equal(t, "user-1", userID)
		assert.Equal(t, "r1", id)
		return nil
	}

	req := newRequest(http.MethodDelete, "/api/records/r1", "")
	req.Header.Set("Authorization", "Bearer good")
	req.Header.Set("Accept-Encoding", "gzip")
	rr := serve(ts.router, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Header().Get("Content-Encoding"))
	assert.Zero(t, rr.Body.Len())
}

func TestCommitBatch(t *testing.T) {
	ts := newTestServer(t, config.Server{})
	ts.records.batchFn = func(_ context.Context, _ string, ops []models.BatchOp) (models.BatchResponse, error) {
		require.Len(t, ops, 2)
		assert.Equal(t, models.BatchCreate, ops[0].Kind)
		assert.Equal(t, models.BatchDelete, ops[1].Kind)
		return models.BatchResponse{Committed: 2, CreatedIDs: []string{"r9"}}, nil
	}

	body := `{"ops":[{"op":"create","create":{"name":"Ann","amount":"5"}},{"op":"delete","id":"r1"}]}`
	rr := ts.do(http.MethodPost, pathBatch, body, "good")
	require.Equal(t, http.StatusOK, rr.Code)

	resp := decodeBody[models.BatchResponse](t, rr)
	assert.Equal(t, 2, resp.Committed)
	assert.Equal(t, []string{"r9"}, resp.CreatedIDs)
}

func TestCommitBatch_GzipRequest(t *testing.T) {
	ts := newTestServer(t, config.Server{})
	ts.records.batchFn = func(_ context.Context, _ string, ops []models.BatchOp) (models.BatchResponse, error) {
		return models.BatchResponse{Committed: len(ops)}, nil
	}

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(`{"ops":[{"op":"delete","id":"r1"}]}`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	req := newRequest(http.MethodPost, pathBatch, "")
	req.Body = io.NopCloser(&buf)
	req.Header.Set("Authorization", "Bearer good")
	req.Header.Set("Content-Encoding", "gzip")
	rr := serve(ts.router, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, decodeBody[models.BatchResponse](t, rr).Committed)
}

func TestCommitBatch_Errors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantBody string
	}{
		{"empty", store.ErrEmptyBatch, app.MsgEmptyBatch},
		{"too large", store.ErrBatchTooLarge, app.MsgBatchTooLarge},
		{"bad op", store.ErrInvalidBatchOp, app.MsgInvalidRecord},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, config.Server{})
			ts.records.batchFn = func(context.Context, string, []models.BatchOp) (models.BatchResponse, error) {
				return models.BatchResponse{}, fmt.Errorf("apply batch: %w", tt.err)
			}

			rr := ts.do(http.MethodPost, pathBatch, `{"ops":[]}`, "good")
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, tt.wantBody, strings.TrimSpace(rr.Body.String()))
		})
	}
}

func TestCommitBatch_BodyTooLarge(t *testing.T) {
	ts := newTestServer(t, config.Server{})

	body := `{"ops":[{"op":"create","create":{"name":"` + strings.Repeat("a", maxBodyBytes) + `"}}]}`
	rr := ts.do(http.MethodPost, pathBatch, body, "good")

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, app.MsgBatchTooLarge, strings.TrimSpace(rr.Body.String()))
}

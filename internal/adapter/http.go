// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-lend-keeper/internal/config"
	"github.com/MKhiriev/go-lend-keeper/internal/logger"
	"github.com/MKhiriev/go-lend-keeper/internal/utils"
	"github.com/MKhiriev/go-lend-keeper/models"
)

const (
	pathRegister = "/api/auth/register"
	pathLogin    = "/api/auth/login"
	pathRecords  = "/api/records"
	pathRecord   = "/api/records/{id}"
	pathBatch    = "/api/records/batch"
	pathStream   = "/api/records/stream"
	pathVersion  = "/api/version"
)

type httpServerAdapter struct {
	// client carries the request timeout; stream has none so the change
	// stream can stay open indefinitely.
	client *utils.HTTPClient
	stream *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the REST implementation of
// [ServerAdapter]. The address may omit the scheme, http is assumed.
func NewHTTPServerAdapter(cfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	return &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		stream: utils.NewHTTPClient(baseURL, 0),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Register POSTs the credentials to /api/auth/register and keeps the token
// from the Authorization response header.
func (h *httpServerAdapter) Register(ctx context.Context, user models.User) (string, error) {
	return h.authenticate(ctx, pathRegister, user)
}

// Login POSTs the credentials to /api/auth/login and keeps the token from
// the Authorization response header.
func (h *httpServerAdapter) Login(ctx context.Context, user models.User) (string, error) {
	return h.authenticate(ctx, pathLogin, user)
}

func (h *httpServerAdapter) authenticate(ctx context.Context, path string, user models.User) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.User{Login: user.Login, Password: user.Password}).
		Post(path)
	if err != nil {
		return "", fmt.Errorf("%s request: %w", path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return "", fmt.Errorf("%s parse bearer token: %w", path, err)
	}

	h.SetToken(token)
	return token, nil
}

func (h *httpServerAdapter) ListRecords(ctx context.Context) ([]models.Record, error) {
	resp, err := h.authedRequest(ctx).Get(pathRecords)
	if err != nil {
		return nil, fmt.Errorf("list records request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var records []models.Record
	if err = json.Unmarshal(resp.Body(), &records); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return records, nil
}

func (h *httpServerAdapter) CreateRecord(ctx context.Context, draft models.RecordDraft) (models.Record, error) {
	var created models.Record

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(draft).
		SetResult(&created).
		Post(pathRecords)
	if err != nil {
		return models.Record{}, fmt.Errorf("create record request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Record{}, err
	}
	return created, nil
}

func (h *httpServerAdapter) UpdateRecord(ctx context.Context, patch models.RecordPatch) (models.Record, error) {
	var updated models.Record

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("id", patch.ID).
		SetBody(patch).
		SetResult(&updated).
		Patch(pathRecord)
	if err != nil {
		return models.Record{}, fmt.Errorf("update record request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Record{}, err
	}
	return updated, nil
}

func (h *httpServerAdapter) DeleteRecord(ctx context.Context, id string) error {
	resp, err := h.authedRequest(ctx).
		SetPathParam("id", id).
		Delete(pathRecord)
	if err != nil {
		return fmt.Errorf("delete record request: %w", err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) CommitBatch(ctx context.Context, ops []models.BatchOp) (models.BatchResponse, error) {
	var result models.BatchResponse

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.BatchRequest{Ops: ops}).
		SetResult(&result).
		Post(pathBatch)
	if err != nil {
		return models.BatchResponse{}, fmt.Errorf("commit batch request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.BatchResponse{}, err
	}
	return result, nil
}

func (h *httpServerAdapter) Version(ctx context.Context) (string, error) {
	var v models.VersionResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&v).
		Get(pathVersion)
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}
	return v.Version, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

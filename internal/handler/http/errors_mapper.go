// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-lend-keeper/internal/app"
	"github.com/MKhiriev/go-lend-keeper/internal/logger"
	"github.com/MKhiriev/go-lend-keeper/internal/service"
	"github.com/MKhiriev/go-lend-keeper/internal/store"
)

// errorResponses is checked in order; the first match wins. The message is
// what the client adapter maps back onto a sentinel.
var errorResponses = []struct {
	target  error
	status  int
	message string
}{
	{service.ErrInvalidDataProvided, http.StatusBadRequest, app.MsgInvalidDataProvided},
	{service.ErrEmptyPatch, http.StatusBadRequest, app.MsgInvalidDataProvided},
	{ErrIDMismatch, http.StatusBadRequest, app.MsgInvalidDataProvided},
	{ErrBodyTooLarge, http.StatusBadRequest, app.MsgBatchTooLarge},
	{service.ErrNoUserID, http.StatusBadRequest, app.MsgNoUserIDProvided},
	{service.ErrWrongPassword, http.StatusUnauthorized, app.MsgInvalidLoginPassword},
	{service.ErrTokenIsExpiredOrInvalid, http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid},

	{store.ErrLoginAlreadyExists, http.StatusConflict, app.MsgLoginAlreadyExists},
	{store.ErrRecordNotFound, http.StatusNotFound, app.MsgRecordNotFound},
	{store.ErrInvalidRecord, http.StatusBadRequest, app.MsgInvalidRecord},
	{store.ErrInvalidBatchOp, http.StatusBadRequest, app.MsgInvalidRecord},
	{store.ErrEmptyBatch, http.StatusBadRequest, app.MsgEmptyBatch},
	{store.ErrBatchTooLarge, http.StatusBadRequest, app.MsgBatchTooLarge},
}

func statusFromError(err error) (int, string) {
	for _, resp := range errorResponses {
		if errors.Is(err, resp.target) {
			return resp.status, resp.message
		}
	}
	return http.StatusInternalServerError, app.MsgInternalServerError
}

// writeError logs err and answers with the mapped status. Client mistakes are
// logged as warnings.
func writeError(w http.ResponseWriter, r *http.Request, fn string, err error) {
	status, message := statusFromError(err)

	log := logger.FromRequest(r)
	event := log.Warn()
	if status >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.Err(err).Str("func", fn).Int("status", status).Msg(message)

	http.Error(w, message, status)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-lend-keeper/internal/adapter"
	"github.com/MKhiriev/go-lend-keeper/internal/app"
	"github.com/MKhiriev/go-lend-keeper/internal/store"
)

// mapAdapterError translates the adapter's transport error into a business
// error, keeping the original in the chain for the status line.
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	msg := extractBody(err)

	var mapped error
	switch {
	case errors.Is(err, adapter.ErrBadRequest):
		switch msg {
		case app.MsgInvalidDataProvided:
			mapped = ErrInvalidDataProvided
		case app.MsgInvalidRecord:
			mapped = store.ErrInvalidRecord
		case app.MsgEmptyBatch:
			mapped = store.ErrEmptyBatch
		case app.MsgBatchTooLarge:
			mapped = store.ErrBatchTooLarge
		}

	case errors.Is(err, adapter.ErrUnauthorized):
		switch msg {
		case app.MsgInvalidLoginPassword:
			mapped = ErrWrongPassword
		default:
			mapped = ErrTokenIsExpiredOrInvalid
		}

	case errors.Is(err, adapter.ErrNotFound):
		mapped = store.ErrRecordNotFound

	case errors.Is(err, adapter.ErrConflict):
		if msg == app.MsgLoginAlreadyExists {
			mapped = store.ErrLoginAlreadyExists
		}

	case errors.Is(err, adapter.ErrInternalServerError), errors.Is(err, adapter.ErrBadGateway):
		switch msg {
		case app.MsgRegistrationFailed:
			mapped = ErrRegisterOnServer
		case app.MsgLoginFailed:
			mapped = ErrLoginOnServer
		}
	}

	if mapped == nil {
		return err
	}
	return mapped
}

// extractBody extracts the body from a message of the form "bad request: <body>".
func extractBody(err error) string {
	msg := err.Error()
	if idx := strings.Index(msg, ": "); idx != -1 {
		return msg[idx+2:]
	}
	return msg
}

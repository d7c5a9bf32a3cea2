// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")

	ErrInvalidAddress = errors.New("invalid adapter http address")

	// ErrStreamClosed is reported when the server ends the change stream.
	ErrStreamClosed = errors.New("change stream closed by server")
	// ErrStreamFailed wraps an error event sent on the change stream.
	ErrStreamFailed = errors.New("change stream failed")
)

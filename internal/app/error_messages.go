// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the message strings shared by the server handlers and
// the client adapter. The server writes them into response bodies, the
// client matches them to map a response back onto a sentinel error.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails basic validation.
	MsgInvalidDataProvided = "invalid data provided"

	MsgInvalidLoginPassword = "invalid login/password"
	MsgInternalServerError  = "internal server error"

	// MsgTokenIsExpiredOrInvalid is returned when a bearer token is missing,
	// expired or cannot be verified.
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	MsgNoUserIDProvided = "no user ID provided"

	MsgRegistrationFailed = "registration failed"
	MsgLoginFailed        = "login failed"
	MsgLoginAlreadyExists = "login already exists"

	// MsgRecordNotFound is returned when an update or delete targets a record
	// the user does not own or that no longer exists.
	MsgRecordNotFound = "record not found"

	// MsgInvalidRecord is returned when a write would leave a record that
	// breaks its invariants: empty name, non-positive principal, negative
	// repayment, or paid without full repayment.
	MsgInvalidRecord = "invalid record"

	MsgEmptyBatch    = "empty batch"
	MsgBatchTooLarge = "batch too large"

	MsgStreamingUnsupported = "streaming unsupported"
)

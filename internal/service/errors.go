// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

var (
	ErrInvalidDataProvided     = errors.New("invalid data provided")
	ErrWrongPassword           = errors.New("wrong password")
	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrVersionIsNotSpecified   = errors.New("app version is not specified")

	ErrNoUserID           = errors.New("no user ID provided")
	ErrEmptyPatch         = errors.New("patch changes nothing")
	ErrStorageUnavailable = errors.New("storage is unavailable")

	// client side
	ErrNotSignedIn       = errors.New("not signed in")
	ErrRegisterOnServer  = errors.New("registration on server failed")
	ErrLoginOnServer     = errors.New("login on server failed")
	ErrNothingToUpload   = errors.New("no valid rows to upload")
	ErrRecordNotInStore  = errors.New("record is not in the local store")
	ErrSubscriptionEnded = errors.New("live updates stopped")
)

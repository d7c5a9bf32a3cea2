// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-lend-keeper/internal/export"
	"github.com/MKhiriev/go-lend-keeper/internal/service"
	"github.com/MKhiriev/go-lend-keeper/internal/spreadsheet"
	"github.com/MKhiriev/go-lend-keeper/internal/store"
)

// ErrUserQuit is returned by Run when the user leaves with ctrl+c.
var ErrUserQuit = errors.New("user quit")

var friendlyErrors = []struct {
	target error
	text   string
}{
	{service.ErrWrongPassword, "Wrong login or password"},
	{store.ErrLoginAlreadyExists, "That login is already taken"},
	{service.ErrTokenIsExpiredOrInvalid, "Your session expired, please sign in again"},
	{service.ErrNothingToUpload, "The sheet has no valid rows to upload"},
	{spreadsheet.ErrUnsupportedFormat, "Only .xlsx and .csv files can be uploaded"},
	{spreadsheet.ErrNoHeader, "The sheet is empty"},
	{export.ErrNothingToExport, "There is nothing to export"},
	{export.ErrClipboardUnavailable, "The clipboard is not available here"},
	{store.ErrRecordNotFound, "That record no longer exists"},
	{service.ErrRecordNotInStore, "That record no longer exists"},
}

// humanizeError turns err into one status-line sentence.
func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	var bulk *service.BulkError
	if errors.As(err, &bulk) {
		return bulk.Error()
	}

	for _, fe := range friendlyErrors {
		if errors.Is(err, fe.target) {
			return fe.text
		}
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "dial tcp") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "i/o timeout") ||
		strings.Contains(s, "context deadline exceeded") {
		return "The server is unreachable"
	}

	return err.Error()
}

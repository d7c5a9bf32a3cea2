// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Snapshot is the full collection of one user at a point in time.
// It is what the change stream pushes after every committed write.
type Snapshot struct {
	Records []Record  `json:"records"`
	SentAt  time.Time `json:"sent_at"`
}

// Stream event names used on GET /api/records/stream.
const (
	EventSnapshot = "snapshot"
	EventError    = "error"
)

// StreamError is the payload of an error event.
type StreamError struct {
	Message string `json:"message"`
}

// VersionResponse is returned by GET /api/version.
type VersionResponse struct {
	Version string `json:"version"`
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"

	"github.com/MKhiriev/go-lend-keeper/internal/export"
	"github.com/MKhiriev/go-lend-keeper/internal/ledger"
	"github.com/MKhiriev/go-lend-keeper/internal/service"
	"github.com/MKhiriev/go-lend-keeper/models"
)

// Controller is everything the screens need from the client application.
// Writes never touch the list directly; the list changes when Changes fires.
type Controller interface {
	Identity() models.Identity
	Restore(ctx context.Context) (models.Identity, error)
	Register(ctx context.Context, login, password string) (models.Identity, error)
	Login(ctx context.Context, login, password string) (models.Identity, error)
	Logout(ctx context.Context) error

	// Project returns statistics, the visible list and search matches
	// computed from one store snapshot under the current filter.
	Project() ledger.Projection
	Filter() ledger.FilterState
	SetQuery(query string)
	CycleMode() ledger.FilterMode
	ToggleGrouping() bool

	// Changes fires after every store replacement.
	Changes() <-chan struct{}
	// SyncErrors reports live update failures.
	SyncErrors() <-chan error

	Record(id string) (models.Record, bool)
	Create(ctx context.Context, in ledger.RecordInput) (models.Record, error)
	Edit(ctx context.Context, id string, in ledger.RecordInput) (service.EditResult, error)
	MarkPaid(ctx context.Context, id string) (models.Record, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context, progress service.ProgressFunc) (int, error)
	Upload(ctx context.Context, path string, progress service.ProgressFunc) (service.IngestReport, error)
	Export(ctx context.Context, target export.Target) (string, error)

	Theme() string
	SetTheme(ctx context.Context, theme string) error
	BuildInfo() models.AppBuildInfo
}

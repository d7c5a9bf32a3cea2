// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-lend-keeper/internal/adapter"
	"github.com/MKhiriev/go-lend-keeper/internal/ledger"
	"github.com/MKhiriev/go-lend-keeper/internal/logger"
	"github.com/MKhiriev/go-lend-keeper/internal/store"
)

// ClientServices groups everything the client controller talks to.
type ClientServices struct {
	AuthState *AuthState

	AuthService   ClientAuthService
	RecordService ClientRecordService
	IngestService ClientIngestService
	SyncService   ClientSyncService
}

func NewClientServices(serverAdapter adapter.ServerAdapter, storages *store.ClientStorages, logger *logger.Logger) *ClientServices {
	state := NewAuthState()

	return &ClientServices{
		AuthState:     state,
		AuthService:   NewClientAuthService(serverAdapter, storages.Preferences, state, logger),
		RecordService: NewClientRecordService(serverAdapter, logger),
		IngestService: NewClientIngestService(serverAdapter, logger),
		SyncService:   NewClientSyncService(serverAdapter, ledger.NewRecordStore(), logger),
	}
}

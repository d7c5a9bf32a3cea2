// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"fmt"

	"github.com/MKhiriev/go-lend-keeper/internal/config"
	"github.com/MKhiriev/go-lend-keeper/internal/crypto"
	"github.com/MKhiriev/go-lend-keeper/internal/logger"
	"github.com/MKhiriev/go-lend-keeper/internal/store"
	"github.com/MKhiriev/go-lend-keeper/internal/validators"
)

// Services groups the server services handed to the HTTP handler.
type Services struct {
	AuthService    AuthService
	RecordService  RecordService
	AppInfoService AppInfoService
	SnapshotHub    SnapshotHub
	HealthService  HealthService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	hub := NewSnapshotHub()

	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, crypto.NewPasswordHasher(), cfg.App, logger),
		RecordService:  NewRecordService(storages.RecordRepository, hub, validators.NewRecordValidator(), logger),
		AppInfoService: appInfo,
		SnapshotHub:    hub,
		HealthService:  NewHealthService(storages, logger),
	}, nil
}

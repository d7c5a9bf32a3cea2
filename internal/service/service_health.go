// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-lend-keeper/internal/logger"
)

const healthCheckTimeout = 2 * time.Second

type healthService struct {
	db Pinger

	logger *logger.Logger
}

func NewHealthService(db Pinger, logger *logger.Logger) HealthService {
	return &healthService{db: db, logger: logger}
}

func (s *healthService) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	if err := s.db.Ping(ctx); err != nil {
		s.logger.Warn().Err(err).Str("func", "healthService.Check").Msg("database is not reachable")
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return nil
}

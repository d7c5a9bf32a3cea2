// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"time"

	"github.com/MKhiriev/go-lend-keeper/internal/config"
	"github.com/MKhiriev/go-lend-keeper/internal/logger"
	"github.com/MKhiriev/go-lend-keeper/internal/service"
)

type Handler struct {
	services *service.Services

	// requestTimeout bounds every route except the change stream.
	requestTimeout time.Duration
	// heartbeat is the comment interval of an idle change stream; zero
	// disables it.
	heartbeat time.Duration

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		requestTimeout: cfg.RequestTimeout,
		heartbeat:      cfg.StreamHeartbeat,
		logger:         logger,
	}
}

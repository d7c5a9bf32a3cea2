// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package grpc

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/MKhiriev/go-lend-keeper/internal/logger"
	"github.com/MKhiriev/go-lend-keeper/internal/service"
)

// RecordsServiceName is the health service name probes may ask about in
// addition to the overall "" status.
const RecordsServiceName = "lendkeeper.Records"

const defaultProbeInterval = 10 * time.Second

// Handler is the root gRPC transport handler. It serves the standard
// grpc.health.v1 protocol and keeps the reported status in step with the
// database.
type Handler struct {
	services *service.Services
	health   *health.Server

	// probeInterval is how often Watch re-checks the backend.
	probeInterval time.Duration

	logger *logger.Logger
}

// NewHandler returns a handler that reports NOT_SERVING until the first
// probe succeeds.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")

	h := &Handler{
		services:      services,
		health:        health.NewServer(),
		probeInterval: defaultProbeInterval,
		logger:        logger,
	}
	h.setStatus(healthpb.HealthCheckResponse_NOT_SERVING)
	return h
}

// Register attaches the health service to s.
func (h *Handler) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, h.health)
}

// Watch probes the backend until ctx is done, then marks every service
// NOT_SERVING so watchers learn about the shutdown.
func (h *Handler) Watch(ctx context.Context) {
	ticker := time.NewTicker(h.probeInterval)
	defer ticker.Stop()

	for {
		h.Probe(ctx)

		select {
		case <-ctx.Done():
			h.health.Shutdown()
			return
		case <-ticker.C:
		}
	}
}

// Probe runs one backend check and publishes the result.
func (h *Handler) Probe(ctx context.Context) {
	status := healthpb.HealthCheckResponse_SERVING
	if h.services == nil || h.services.HealthService == nil {
		status = healthpb.HealthCheckResponse_NOT_SERVING
	} else if err := h.services.HealthService.Check(ctx); err != nil {
		h.logger.Warn().Err(err).Str("func", "Handler.Probe").Msg("backend unhealthy")
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	h.setStatus(status)
}

func (h *Handler) setStatus(status healthpb.HealthCheckResponse_ServingStatus) {
	h.health.SetServingStatus("", status)
	h.health.SetServingStatus(RecordsServiceName, status)
}

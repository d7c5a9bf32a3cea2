// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"errors"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/MKhiriev/go-lend-keeper/internal/config"
	"github.com/MKhiriev/go-lend-keeper/internal/handler"
	"github.com/MKhiriev/go-lend-keeper/internal/logger"
)

const shutdownTimeout = 15 * time.Second

type server struct {
	httpServer *httpServer
	gRPCServer *grpcServer

	shutdownTimeout time.Duration

	logger *logger.Logger
}

func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")
	servers := &server{shutdownTimeout: shutdownTimeout, logger: logger}

	if cfg.HTTPAddress != "" && handlers.HTTP != nil {
		servers.httpServer = newHTTPServer(handlers.HTTP.Init(), cfg, logger)
	}
	if cfg.GRPCAddress != "" && handlers.GRPC != nil {
		servers.gRPCServer = newGRPCServer(handlers.GRPC, cfg, logger)
	}

	if servers.httpServer == nil && servers.gRPCServer == nil {
		return nil, errNoServersAreCreated
	}

	return servers, nil
}

func (s *server) RunServer() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	return s.Run(ctx)
}

func (s *server) Run(ctx context.Context) error {
	transports := s.transports()
	if len(transports) == 0 {
		return errNoServersAreCreated
	}

	// bind everything first so a busy port fails startup cleanly
	for i, t := range transports {
		addr, err := t.listen()
		if err != nil {
			for _, bound := range transports[:i] {
				bound.release()
			}
			return err
		}
		s.logger.Info().Str("transport", t.name()).Stringer("addr", addr).Msg("listening")
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	if s.gRPCServer != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.gRPCServer.handler.Watch(runCtx)
		}()
	}

	failed := make(chan error, len(transports))
	for _, t := range transports {
		go func() {
			if err := t.serve(); err != nil {
				failed <- err
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		s.logger.Info().Msg("stop signal received")
	case runErr = <-failed:
		s.logger.Error().Err(runErr).Msg("transport failed")
	}

	cancel()
	wg.Wait()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancelShutdown()

	var errs []error
	for _, t := range transports {
		if err := t.shutdown(shutdownCtx); err != nil {
			errs = append(errs, err)
		}
	}

	s.logger.Info().Msg("server shut down")
	return errors.Join(append([]error{runErr}, errs...)...)
}

func (s *server) transports() []transport {
	var out []transport
	if s.httpServer != nil {
		out = append(out, s.httpServer)
	}
	if s.gRPCServer != nil {
		out = append(out, s.gRPCServer)
	}
	return out
}

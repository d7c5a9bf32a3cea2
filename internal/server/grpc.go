// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"errors"
	"fmt"
	"net"

	"google.golang.org/grpc"

	"github.com/MKhiriev/go-lend-keeper/internal/config"
	myGRPC "github.com/MKhiriev/go-lend-keeper/internal/handler/grpc"
	"github.com/MKhiriev/go-lend-keeper/internal/logger"
)

type grpcServer struct {
	handler *myGRPC.Handler

	address  string
	server   *grpc.Server
	listener net.Listener

	logger *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, cfg config.Server, logger *logger.Logger) *grpcServer {
	s := grpc.NewServer()
	handler.Register(s)

	return &grpcServer{
		handler: handler,
		address: cfg.GRPCAddress,
		server:  s,
		logger:  logger,
	}
}

func (g *grpcServer) name() string { return "gRPC" }

func (g *grpcServer) listen() (net.Addr, error) {
	if g.listener == nil {
		l, err := net.Listen("tcp", g.address)
		if err != nil {
			return nil, fmt.Errorf("%w: grpc %s: %w", errListen, g.address, err)
		}
		g.listener = l
	}
	return g.listener.Addr(), nil
}

func (g *grpcServer) release() {
	if g.listener != nil {
		_ = g.listener.Close()
	}
}

func (g *grpcServer) serve() error {
	if err := g.server.Serve(g.listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("grpc serve: %w", err)
	}
	return nil
}

// shutdown waits for in-flight RPCs until ctx is done, then cuts them off.
// Health watch streams never finish on their own.
func (g *grpcServer) shutdown(ctx context.Context) error {
	stopped := make(chan struct{})
	go func() {
		g.server.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
		return nil
	case <-ctx.Done():
		g.logger.Warn().Str("func", "grpcServer.shutdown").Msg("grace period over, stopping")
		g.server.Stop()
		<-stopped
		return nil
	}
}

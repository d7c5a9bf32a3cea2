// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/MKhiriev/go-lend-keeper/internal/config"
	"github.com/MKhiriev/go-lend-keeper/internal/logger"
)

const (
	readHeaderTimeout = 10 * time.Second
	idleTimeout       = 2 * time.Minute
)

// httpServer has no WriteTimeout: change streams stay open for as long as
// the client listens. Non-streaming routes are bounded by the router.
type httpServer struct {
	server   *http.Server
	listener net.Listener

	// cancelBase ends every request context, which closes open streams
	// before Shutdown waits for connections to go idle.
	cancelBase context.CancelFunc

	logger *logger.Logger
}

func newHTTPServer(handler http.Handler, cfg config.Server, logger *logger.Logger) *httpServer {
	base, cancel := context.WithCancel(context.Background())

	return &httpServer{
		server: &http.Server{
			Addr:              cfg.HTTPAddress,
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
			IdleTimeout:       idleTimeout,
			BaseContext:       func(net.Listener) context.Context { return base },
		},
		cancelBase: cancel,
		logger:     logger,
	}
}

func (h *httpServer) name() string { return "HTTP" }

func (h *httpServer) listen() (net.Addr, error) {
	if h.listener == nil {
		l, err := net.Listen("tcp", h.server.Addr)
		if err != nil {
			return nil, fmt.Errorf("%w: http %s: %w", errListen, h.server.Addr, err)
		}
		h.listener = l
	}
	return h.listener.Addr(), nil
}

func (h *httpServer) release() {
	if h.listener != nil {
		_ = h.listener.Close()
	}
	h.cancelBase()
}

func (h *httpServer) serve() error {
	if err := h.server.Serve(h.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http serve: %w", err)
	}
	return nil
}

func (h *httpServer) shutdown(ctx context.Context) error {
	h.cancelBase()
	if err := h.server.Shutdown(ctx); err != nil {
		h.logger.Error().Err(err).Str("func", "httpServer.shutdown").Msg("forcing connections closed")
		return h.server.Close()
	}
	return nil
}

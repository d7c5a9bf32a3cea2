// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"net"
)

// Server is the lifecycle contract the backend binary drives.
type Server interface {
	// RunServer serves until SIGINT, SIGTERM or SIGQUIT, then shuts down.
	RunServer() error

	// Run serves until ctx is done or a transport fails, then shuts down.
	// The returned error is the transport failure, if any.
	Run(ctx context.Context) error
}

// transport is one listener-backed server managed by Run.
type transport interface {
	name() string
	listen() (net.Addr, error)
	serve() error
	shutdown(ctx context.Context) error
	// release closes a listener that was bound but never served.
	release()
}

// Package grpc exposes the backend's gRPC surface: the standard health
// protocol, backed by a periodic database probe.
package grpc

// Package server runs the backend's transports.
//
// It binds the HTTP and gRPC listeners, serves until a stop signal arrives
// or a transport fails, then shuts every transport down within a bounded
// grace period. Open change streams are released before the HTTP server
// drains.
package server

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "context"

// Client is the lifecycle contract of the terminal client.
type Client interface {
	// Run blocks until the user quits or ctx is done.
	Run(ctx context.Context) error
	Close() error
}

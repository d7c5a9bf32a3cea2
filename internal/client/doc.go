// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client wires the terminal client together.
//
// App owns the client services, the local record mirror and the list filter,
// and hands the terminal UI a single controller to talk to.
package client

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "errors"

var (
	ErrUnknownExportTarget = errors.New("unknown export target")
	ErrUnknownTheme        = errors.New("unknown theme")
)

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   "go-lend-keeper",
			TokenDuration: 24 * time.Hour,
			Version:       "dev",
			LogLevel:      "debug",
		},
		Server: Server{
			HTTPAddress:     "localhost:8080",
			RequestTimeout:  30 * time.Second,
			StreamHeartbeat: 25 * time.Second,
		},
		Adapter: Adapter{
			HTTPAddress:    "http://localhost:8080",
			RequestTimeout: 30 * time.Second,
		},
		Client: Client{
			ExportDir:      ".",
			Locale:         "en",
			Currency:       "₹",
			SearchDebounce: 300 * time.Millisecond,
			StatusTimeout:  5 * time.Second,
		},
	}
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the backend address used by the client.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite file holding client preferences.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	DB ClientDB
}

// DefaultClientDSN is the preferences database used when none is configured.
const DefaultClientDSN = "lendkeeper-client.db"

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	Adapter ClientAdapter
	Storage ClientStorage

	ExportDir      string
	Locale         language.Tag
	Currency       string
	SearchDebounce time.Duration
	StatusTimeout  time.Duration
	LogFile        string
	LogLevel       string
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return newClientConfig(cfg)
}

func newClientConfig(cfg *StructuredConfig) (*ClientConfig, error) {
	// the locale string was checked in StructuredConfig.validate
	locale := language.English
	if cfg.Client.Locale != "" {
		locale = language.Make(cfg.Client.Locale)
	}

	dsn := cfg.Storage.DB.DSN
	if dsn == "" {
		dsn = DefaultClientDSN
	}

	clientCfg := &ClientConfig{
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{DSN: dsn},
		},
		ExportDir:      cfg.Client.ExportDir,
		Locale:         locale,
		Currency:       cfg.Client.Currency,
		SearchDebounce: cfg.Client.SearchDebounce,
		StatusTimeout:  cfg.Client.StatusTimeout,
		LogFile:        cfg.Client.LogFile,
		LogLevel:       cfg.App.LogLevel,
	}

	return clientCfg, clientCfg.validate()
}

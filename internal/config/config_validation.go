// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// validate checks values every binary relies on. Role specific requirements
// live in validateServer and ClientConfig.validate.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenDuration < 0 || cfg.Server.RequestTimeout < 0 || cfg.Adapter.RequestTimeout < 0 {
		return fmt.Errorf("%w: negative duration", ErrInvalidAppConfigs)
	}
	if cfg.Client.Locale != "" {
		if _, err := language.Parse(cfg.Client.Locale); err != nil {
			return fmt.Errorf("%w: locale %q: %w", ErrInvalidClientConfigs, cfg.Client.Locale, err)
		}
	}
	return nil
}

func (cfg *StructuredConfig) validateServer() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}
	if cfg.App.TokenSignKey == "" || cfg.App.TokenDuration == 0 {
		return ErrInvalidAppConfigs
	}
	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout == 0 {
		return ErrInvalidServerConfigs
	}
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.SearchDebounce <= 0 || cfg.StatusTimeout <= 0 || cfg.ExportDir == "" {
		return ErrInvalidClientConfigs
	}

	return nil
}

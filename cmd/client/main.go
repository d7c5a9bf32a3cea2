// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-lend-keeper/internal/client"
	"github.com/MKhiriev/go-lend-keeper/internal/config"
	"github.com/MKhiriev/go-lend-keeper/internal/logger"
	"github.com/MKhiriev/go-lend-keeper/internal/tui"
	"github.com/MKhiriev/go-lend-keeper/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	cfg, err := config.GetClientConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		os.Exit(2)
	}

	log := logger.NewClientLogger("lend-keeper-client", cfg.LogFile)
	logger.SetLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app, err := client.NewApp(ctx, cfg, models.NewAppBuildInfo(buildVersion, buildDate, buildCommit), log)
	if err != nil {
		log.Error().Err(err).Msg("init client app error")
		fmt.Fprintf(os.Stderr, "cannot start: %v\n", err)
		os.Exit(1)
	}

	runErr := app.Run(ctx)
	if err = app.Close(); err != nil {
		log.Error().Err(err).Msg("close client app")
	}

	if runErr != nil && !errors.Is(runErr, tui.ErrUserQuit) {
		log.Error().Err(runErr).Msg("client run error")
		fmt.Fprintf(os.Stderr, "client stopped: %v\n", runErr)
		os.Exit(1)
	}
}

// Webflow Locations API - CMS proxy gateway and location directory
// Copyright 2026 kkarnesdesigns
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/kkarnesdesigns/webflow-locations-api

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kkarnesdesigns/webflow-locations-api/internal/api"
	"github.com/kkarnesdesigns/webflow-locations-api/internal/config"
	"github.com/kkarnesdesigns/webflow-locations-api/internal/directory"
	"github.com/kkarnesdesigns/webflow-locations-api/internal/gateway"
	"github.com/kkarnesdesigns/webflow-locations-api/internal/logging"
	"github.com/kkarnesdesigns/webflow-locations-api/internal/supervisor"
	"github.com/kkarnesdesigns/webflow-locations-api/internal/supervisor/services"
	"github.com/kkarnesdesigns/webflow-locations-api/internal/webflow"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("environment", cfg.Server.Environment).
		Str("addr", cfg.Server.Addr()).
		Msg("Starting Webflow Locations API")

	for _, warning := range cfg.Warnings() {
		logging.Warn().Msg(warning)
	}

	// === UPSTREAM + GATEWAY ===

	wfClient := webflow.NewClient(&cfg.Webflow)
	var (
		upstream webflow.Upstream = wfClient
		breaker  api.BreakerState
	)
	if cfg.Webflow.BreakerEnabled {
		bc := webflow.NewBreakerClient(wfClient, webflow.BreakerSettings{})
		upstream = bc
		breaker = bc
		logging.Info().Msg("Webflow circuit breaker enabled")
	}

	gw := gateway.New(cfg.Webflow, upstream)

	// === DIRECTORY ===

	dirOpts := directory.OptionsFromConfig(&cfg.Webflow, &cfg.Directory)
	pipeline := directory.NewPipeline(
		directory.NewGatewayClient(cfg.Directory.GatewayURL, cfg.Directory.Timeout),
		dirOpts,
	)
	logging.Debug().
		Int("page_size", dirOpts.PageSize).
		Int("max_items", dirOpts.MaxItems).
		Int("lookup_concurrency", dirOpts.LookupConcurrency).
		Bool("states_collection", dirOpts.StatesCollectionID != "").
		Msg("Directory options")
	logging.Info().Str("gateway_url", cfg.Directory.GatewayURL).Msg("Directory pipeline initialized")

	// === HTTP ===

	handler := api.NewHandler(cfg, pipeline, breaker)
	router := api.NewRouter(handler, gw, cfg.Security.CORSOrigins)

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// === SUPERVISOR TREE ===

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	// The channel carries exactly one value and is never closed.
	var serveErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
		serveErr = <-errCh
	case serveErr = <-errCh:
		cancel()
	}
	if serveErr != nil && !errors.Is(serveErr, context.Canceled) {
		logging.Err(serveErr).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}

// Tabularium - Media Server Dashboard Aggregation and Template Formatting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tabularium

// Package main is the entry point for the Tabularium server.
//
// Tabularium aggregates Plex and Tautulli data into dashboard-ready JSON:
// recently-added listings, playback history, the users table, and a live
// activity snapshot, each rendered through user-authored format templates.
//
// The server initializes components in the following order:
//
//  1. Configuration: Koanf v2 layered loading (defaults, config.yaml,
//     TABULARIUM_* environment variables)
//  2. Logging: zerolog, configured from the loaded settings
//  3. Caches: the media, metadata, and history TTL caches plus the
//     background refresh coordinator
//  4. Upstream clients: Tautulli behind a circuit breaker, Plex when enabled
//  5. Format store: the persisted format definition file
//  6. HTTP server: chi router under suture supervision
//
// Shutdown on SIGINT/SIGTERM is graceful: the supervisor stops the HTTP
// server, which drains in-flight requests within the configured timeout.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/tabularium/internal/api"
	"github.com/tomtom215/tabularium/internal/assembler"
	"github.com/tomtom215/tabularium/internal/cache"
	"github.com/tomtom215/tabularium/internal/config"
	"github.com/tomtom215/tabularium/internal/formats"
	"github.com/tomtom215/tabularium/internal/logging"
	"github.com/tomtom215/tabularium/internal/supervisor"
	"github.com/tomtom215/tabularium/internal/upstream"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("tautulli_url", cfg.Tautulli.URL).
		Bool("plex_enabled", cfg.Plex.Enabled).
		Str("formats_path", cfg.Formats.Path).
		Msg("Configuration loaded")

	// Tautulli behind a circuit breaker so a flapping upstream degrades to
	// fast failures instead of piling up blocked requests.
	tautulliClient := upstream.NewBreakerClient(upstream.NewTautulliClient(&cfg.Tautulli))
	if err := tautulliClient.Ping(context.Background()); err != nil {
		logging.Warn().Err(err).Msg("Failed to connect to Tautulli (will retry)")
	} else {
		logging.Info().Msg("Connected to Tautulli successfully")
	}

	var plexClient upstream.PlexClientInterface
	if cfg.Plex.Enabled {
		plexClient = upstream.NewPlexClient(&cfg.Plex)
		if err := plexClient.Ping(context.Background()); err != nil {
			logging.Warn().Err(err).Msg("Failed to connect to Plex (will retry)")
		} else {
			logging.Info().Msg("Connected to Plex successfully")
		}
	}

	caches := cache.NewSet(cfg.Cache.MediaTTL, cfg.Cache.MetadataTTL, cfg.Cache.HistoryTTL)
	refresher := cache.NewRefreshCoordinator()
	store := formats.NewStore(cfg.Formats.Path)

	asm := assembler.New(tautulliClient, plexClient, caches, refresher, store)
	handlers := api.NewHandlers(asm, caches, refresher, store, &cfg.API, tautulliClient)
	router := api.NewRouter(handlers, &cfg.API)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddAPIService(supervisor.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := tree.ServeBackground(ctx)
	logging.Info().Str("addr", server.Addr).Msg("Tabularium server started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
		cancel()
		if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor stopped with error")
		}
	case err := <-errCh:
		logging.Fatal().Err(err).Msg("Supervisor tree stopped unexpectedly")
	}

	if unstopped, err := tree.UnstoppedServiceReport(); err == nil && len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Some services did not stop cleanly")
	}

	logging.Info().Msg("Tabularium server stopped")
}

// Parkwatch - Industrial Park Utility Monitoring
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/parkwatch

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/tomtom215/parkwatch/internal/api"
	"github.com/tomtom215/parkwatch/internal/auth"
	"github.com/tomtom215/parkwatch/internal/authz"
	"github.com/tomtom215/parkwatch/internal/cache"
	"github.com/tomtom215/parkwatch/internal/config"
	"github.com/tomtom215/parkwatch/internal/database"
	"github.com/tomtom215/parkwatch/internal/editor"
	"github.com/tomtom215/parkwatch/internal/logging"
	"github.com/tomtom215/parkwatch/internal/metrics"
	"github.com/tomtom215/parkwatch/internal/supervisor"
	"github.com/tomtom215/parkwatch/internal/supervisor/services"
	ws "github.com/tomtom215/parkwatch/internal/websocket"
	"github.com/tomtom215/parkwatch/internal/zonestore"
)

const shutdownTimeout = 10 * time.Second

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	})

	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("db_path", cfg.Database.Path).
		Str("layouts_path", cfg.Layouts.Path).
		Bool("layouts_in_memory", cfg.Layouts.InMemory).
		Msg("Starting Parkwatch with supervisor tree")

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Server failed")
	}
	logging.Info().Msg("Application stopped gracefully")
}

// run wires every component and blocks until a shutdown signal or a fatal
// supervisor error. Deferred closes run before main returns.
//
//nolint:gocyclo // sequential setup steps
func run(cfg *config.Config) error {
	db, err := database.New(&cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized successfully")

	if cfg.Database.Seed {
		logging.Info().Msg("Seeding demo users, clients and readings")
		if err := db.Seed(context.Background(), auth.HashPassword); err != nil {
			return err
		}
	}

	badgerDB, err := zonestore.Open(&cfg.Layouts)
	if err != nil {
		return err
	}
	defer func() {
		if err := badgerDB.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing layout store")
		}
	}()
	store := zonestore.NewStore(badgerDB)

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		return err
	}
	enforcer, err := authz.NewEnforcer()
	if err != nil {
		return err
	}

	hub := ws.NewHub()
	persister := zonestore.NewPersister(store, hub, &cfg.Layouts)
	sessions := editor.NewManager(&cfg.Editor)

	dashboardCache := cache.New("dashboard", cfg.Cache.TTL)
	mapCache := cache.New("map-data", cfg.Cache.TTL)

	handler := api.NewHandler(api.Dependencies{
		Config:    cfg,
		DB:        db,
		Layouts:   store,
		Saver:     persister,
		Sessions:  sessions,
		Hub:       hub,
		JWT:       jwtManager,
		Enforcer:  enforcer,
		Dashboard: dashboardCache,
		MapData:   mapCache,
		Sites:     cache.NewSiteIndex(cfg.Cache.GridCellKm),
	})
	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(&cfg.Security)))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		IdleTimeout:       2 * time.Minute,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  shutdownTimeout,
	})
	if err != nil {
		return err
	}

	tree.AddDataService(persister)
	tree.AddDataService(dashboardCache)
	tree.AddDataService(mapCache)
	tree.AddRealtimeService(hub)
	tree.AddRealtimeService(sessions)
	tree.AddAPIService(services.NewHTTPServerService(server, shutdownTimeout))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	// errCh delivers exactly one value and is never closed.
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
		err = <-errCh
	case err = <-errCh:
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}
	return nil
}

// Command server runs the architecture repository API.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"archcore/internal/adapters/httpapi"
	"archcore/internal/config"
	"archcore/internal/core"
	"archcore/internal/infra/blob"
	"archcore/internal/infra/remote"
	"archcore/internal/observability"
	"archcore/pkg/domain"
)

func main() {
	cfg := config.Load()

	logLevel := slog.LevelInfo
	if cfg.Env == "development" {
		logLevel = slog.LevelDebug
	}
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(log)

	log.Info("starting", "config", cfg.String())

	cache, err := core.OpenCacheStore()
	if err != nil {
		log.Error("open cache store", "error", err)
		os.Exit(1)
	}

	var sink domain.RemoteSink
	if cfg.RemoteSaveURL != "" {
		sink = remote.NewSink(cfg.RemoteSaveURL, nil)
	}
	seed := remote.OpenSeedSource(cfg.SeedLocation, nil)

	var archive core.SnapshotArchive
	if cfg.ArchiveEnabled {
		store, err := blob.OpenFromEnv(context.Background())
		if err != nil {
			log.Error("open blob store", "error", err)
			os.Exit(1)
		}
		archive = store
	}

	metrics := observability.NewMetrics(nil)
	store := core.NewStore()

	opts := core.GatewayOptions{
		CacheVersion:   cfg.CacheVersion,
		CacheDebounce:  cfg.CacheDebounce,
		RemoteDebounce: cfg.RemoteDebounce,
		Logger:         log,
		Metrics:        metrics,
		Archive:        archive,
	}
	gateway := core.NewGateway(store, cache, sink, seed, opts)
	gateway.Start()

	source := gateway.Load(context.Background())
	log.Info("dataset loaded", "source", source)

	api := httpapi.New(store, gateway, log, metrics)
	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           api.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Error("server failed", "error", err)
	case sig := <-sigCh:
		log.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn("shutdown", "error", err)
	}
	if err := gateway.Close(); err != nil {
		log.Warn("gateway close", "error", err)
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/resolvarr/resolvarr/internal/aggregator"
	"github.com/resolvarr/resolvarr/internal/cache"
	"github.com/resolvarr/resolvarr/internal/config"
	"github.com/resolvarr/resolvarr/internal/httpapi"
	"github.com/resolvarr/resolvarr/internal/matcher"
	"github.com/resolvarr/resolvarr/internal/metrics"
	"github.com/resolvarr/resolvarr/internal/providers"
	"github.com/resolvarr/resolvarr/internal/resolver"
)

func main() {
	cfg := config.GetConfig()
	logger := config.GetLogger()

	logger.Info().
		Str("cache_backend", cfg.Cache.Backend).
		Int("server_port", cfg.Server.Port).
		Str("server_address", cfg.Server.Address).
		Float64("accept_threshold", cfg.Matcher.AcceptThreshold).
		Msg("Application started with configuration")

	store, err := cache.New(cfg.Cache.Backend, cache.ProviderConfig{
		Size:          cfg.Cache.Size,
		TTL:           cfg.CacheTTL(),
		RedisAddress:  cfg.Cache.RedisAddress,
		RedisPassword: cfg.Cache.RedisPassword,
		RedisDB:       cfg.Cache.RedisDB,
		Group:         "matches",
	})
	if err != nil {
		logger.Fatal().Err(err).Str("backend", cfg.Cache.Backend).Msg("Failed to create match cache")
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close match cache")
		}
	}()

	registry := providers.NewRegistry()

	m := matcher.New(registry, nil, matcher.Options{
		AcceptThreshold: cfg.Matcher.AcceptThreshold,
		SearchTimeout:   cfg.SearchTimeout(),
	})
	a := aggregator.New(aggregator.Options{
		FetchTimeout:    cfg.FetchTimeout(),
		SeasonThreshold: cfg.Aggregator.SeasonThreshold,
		PageSize:        cfg.Aggregator.PageSize,
	})
	service := resolver.New(registry, m, a, store)

	// Start Prometheus metrics HTTP server
	if cfg.Metrics.Enabled {
		metricsServer := metrics.NewHTTPServer(cfg.Server.Address, cfg.Metrics.Port)
		go func() {
			logger.Info().Str("address", metricsServer.Addr).Msg("Starting Prometheus metrics HTTP server")
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Fatal().Err(err).Msg("Failed to serve metrics")
			}
		}()
		defer func() {
			if err := metricsServer.Shutdown(context.Background()); err != nil {
				logger.Error().Err(err).Msg("Failed to shutdown metrics server")
			}
		}()
	}

	address := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	apiServer := &http.Server{
		Addr:    address,
		Handler: httpapi.NewRouter(service),
	}

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logger.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := apiServer.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("Failed to shutdown API server")
		}
	}()

	logger.Info().Str("address", address).Msg("Starting resolution API server")
	if err := apiServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("Failed to serve API")
	}

	logger.Info().Msg("Server stopped gracefully")
}

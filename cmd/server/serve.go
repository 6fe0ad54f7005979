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

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sustainabuy/backend/config"
	httpDelivery "github.com/sustainabuy/backend/internal/delivery/http"
	"github.com/sustainabuy/backend/internal/domain"
	"github.com/sustainabuy/backend/internal/infrastructure/cache"
	"github.com/sustainabuy/backend/internal/infrastructure/storage"
	"github.com/sustainabuy/backend/internal/logging"
	"github.com/sustainabuy/backend/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stdout)
	logger.Info().
		Str("environment", cfg.Server.Environment).
		Str("port", cfg.Server.Port).
		Str("database", cfg.Database.Driver).
		Str("cache", cfg.Cache.Type).
		Dur("cache_ttl", cfg.Cache.TTL).
		Msg("starting SustainaBuy backend")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize infrastructure dependencies
	db, err := storage.Open(ctx, cfg.Database.Driver, cfg.Database.DSN, cfg.Database.MaxOpenConns)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	productCache, err := newCache(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("init cache: %w", err)
	}
	defer productCache.Close()

	products := storage.NewProductRepository(db)
	users := storage.NewUserRepository(db, cfg.Database.Driver)

	// Initialize usecase layer
	catalog := usecase.NewCatalogService(products, productCache, logger, usecase.CatalogServiceConfig{
		CacheTTL:            cfg.Cache.TTL,
		ProductLimit:        cfg.Search.ProductLimit,
		RecommendationCount: cfg.Search.RecommendationCount,
	})
	accounts := usecase.NewAccountService(users, products, logger)

	handler := httpDelivery.NewHandler(catalog, accounts, logger)
	router := httpDelivery.SetupRouter(cfg, handler, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info().Msg("server stopped")
	return nil
}

func newCache(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (domain.CacheRepository, error) {
	if cfg.Cache.Type == "redis" {
		logger.Info().Msg("using redis product cache")
		return cache.NewRedisCache(ctx, cfg.Cache.RedisURL, "")
	}
	return cache.NewMemoryCache(0), nil
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"loan-catalog/config"
	httpLayer "loan-catalog/http"
	"loan-catalog/logger"
	"loan-catalog/repository"
	"loan-catalog/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewStructured("error", "console").Error("failed to load config", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}

	log := logger.NewStructured(cfg.Log.Level, cfg.Log.Format)
	defer log.Sync()

	catalog := service.NewCatalogService(repository.NewLoanCatalogMemory(), newCache(cfg, log), log)
	if err := catalog.Validate(); err != nil {
		log.WithError(err).Error("loan catalog failed validation", nil)
		os.Exit(1)
	}

	loanService := service.NewLoanService(repository.NewLoanRepositoryMemory(), catalog, log)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.Refill)
	defer rateLimiter.Stop()

	router := httpLayer.NewRouter(
		httpLayer.NewCatalogHandler(catalog, log),
		httpLayer.NewLoanHandler(loanService, log),
		rateLimiter,
		log,
	)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("loan catalog API listening", map[string]interface{}{"addr": cfg.Server.Addr})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.WithError(err).Error("error starting server", nil)
		return
	case <-quit:
		log.Info("shutting down server", nil)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("error during server shutdown", nil)
	}

	log.Info("server exited", nil)
}

// newCache picks Redis when an address is configured and reachable, the
// in-memory cache otherwise.
func newCache(cfg *config.Config, log logger.Logger) repository.CacheRepository {
	if cfg.Cache.RedisAddr == "" {
		return repository.NewMockCache()
	}

	cache := repository.NewRedisCache(cfg.Cache.RedisAddr, cfg.Cache.TTL)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := cache.Ping(ctx); err != nil {
		log.WithError(err).Warn("redis unavailable, using in-memory cache", map[string]interface{}{
			"addr": cfg.Cache.RedisAddr,
		})
		_ = cache.Close()
		return repository.NewMockCache()
	}
	return cache
}

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

	"github.com/EGarpxMaster/analisis-aforo-vehicular/config"
	"github.com/EGarpxMaster/analisis-aforo-vehicular/handlers"
	"github.com/EGarpxMaster/analisis-aforo-vehicular/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	// Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	logger = logger.Level(cfg.LogLevel)
	if os.Getenv("GIN_MODE") == "" && cfg.LogLevel > zerolog.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Memoization backend: Redis when configured and reachable, in-process otherwise
	var cache services.Cache = services.NewMemoryCache()
	if cfg.Redis.Enabled() {
		redisCache, err := services.NewCacheService(ctx, cfg.Redis, &logger)
		if err != nil {
			logger.Warn().Err(err).Str("addr", cfg.Redis.Addr()).Msg("redis unavailable, using in-memory cache")
		} else {
			defer redisCache.Close()
			cache = redisCache
		}
	}

	metadata := services.NewMetadataLoader(cfg.Data.MetadataPath(), cache, cfg.Cache.TTL, &logger)
	counts := services.NewCountsLoader(services.NewResolver(cfg.Data.Dir), cache, cfg.Cache.TTL, &logger)
	previews, err := services.NewPreviews(cfg.Data.PreviewDir, cfg.Data.PreviewManifest)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load preview manifest")
	}
	dashboard := services.NewDashboard(metadata, counts, previews)

	router, err := handlers.NewRouter(cfg, dashboard, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build router")
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info().
		Str("addr", server.Addr).
		Str("data_dir", cfg.Data.Dir).
		Str("metadata", metadata.Path()).
		Msg("starting dashboard server")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("server failed")
	}
	logger.Info().Msg("server stopped")
}

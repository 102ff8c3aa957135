package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DragosCt10/trading-tracker-sub007/config"
	"github.com/DragosCt10/trading-tracker-sub007/internal/api"
	"github.com/DragosCt10/trading-tracker-sub007/internal/auth"
	"github.com/DragosCt10/trading-tracker-sub007/internal/cache"
	"github.com/DragosCt10/trading-tracker-sub007/internal/database"
	"github.com/DragosCt10/trading-tracker-sub007/internal/logging"
	"github.com/DragosCt10/trading-tracker-sub007/internal/vault"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLogger := logging.New(logging.Config{Component: "main"})
		bootLogger.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger := logging.New(logging.Config{
		Level:     cfg.LoggingConfig.Level,
		Output:    cfg.LoggingConfig.Output,
		Console:   cfg.LoggingConfig.Console,
		Component: "main",
	})

	// Secrets from Vault override file and environment values when enabled.
	vaultClient, err := vault.NewClient(cfg.VaultConfig)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create vault client")
	}
	if vaultClient.IsEnabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		secrets, err := vaultClient.FetchSecrets(ctx)
		cancel()
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to fetch secrets from vault")
		}
		secrets.ApplyTo(cfg)
		logger.Info().Msg("secrets loaded from vault")
	}

	db, err := database.NewDB(database.Config{
		Host:     cfg.DatabaseConfig.Host,
		Port:     cfg.DatabaseConfig.Port,
		User:     cfg.DatabaseConfig.User,
		Password: cfg.DatabaseConfig.Password,
		Database: cfg.DatabaseConfig.Database,
		SSLMode:  cfg.DatabaseConfig.SSLMode,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.RunMigrations(migrateCtx); err != nil {
		cancel()
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}
	cancel()
	logger.Info().Msg("database ready")

	var cacheService *cache.CacheService
	var statsCache *cache.StatsCache
	if cfg.RedisConfig.Enabled {
		cacheService, err = cache.NewCacheService(cfg.RedisConfig, logger.With().Str("component", "cache").Logger())
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to create cache service")
		}
		defer cacheService.Close()
		statsCache = cache.NewStatsCache(cacheService, cfg.RedisConfig.StatsTTL)
	} else {
		logger.Info().Msg("redis disabled, stats are recomputed per request")
	}

	authService, err := auth.NewService(db, auth.Config{
		JWTSecret:            cfg.AuthConfig.JWTSecret,
		AccessTokenDuration:  cfg.AuthConfig.AccessTokenDuration,
		RefreshTokenDuration: cfg.AuthConfig.RefreshTokenDuration,
		MinPasswordLength:    cfg.AuthConfig.MinPasswordLength,
	}, logger.With().Str("component", "auth").Logger())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create auth service")
	}

	server := api.NewServer(
		cfg.ServerConfig,
		cfg.StatsConfig,
		db,
		authService,
		statsCache,
		cacheService,
		logger.With().Str("component", "api").Logger(),
	)

	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	// Expired refresh tokens are cleaned up in the background.
	cleanupDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				if n, err := db.DeleteExpiredRefreshTokens(ctx); err == nil && n > 0 {
					logger.Debug().Int64("count", n).Msg("expired refresh tokens removed")
				}
				cancel()
			case <-cleanupDone:
				return
			}
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutdown signal received")
	close(cleanupDone)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown error")
	}

	logger.Info().Msg("shutdown complete")
}

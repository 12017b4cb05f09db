// Package main is the entry point for the product-pulse-service API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"product-pulse-service/internal/app/service"
	"product-pulse-service/internal/config"
	"product-pulse-service/internal/domain"
	"product-pulse-service/internal/infra/postgres"
	"product-pulse-service/internal/infra/postgres/migrations"
	"product-pulse-service/internal/infra/provider"
	"product-pulse-service/internal/infra/provider/socialfeed"
	"product-pulse-service/internal/infra/provider/videofeed"
	rediscache "product-pulse-service/internal/infra/redis"
	"product-pulse-service/internal/job"
	"product-pulse-service/internal/logger"
	"product-pulse-service/internal/transport/httpserver"
	"product-pulse-service/internal/transport/ws"
	"product-pulse-service/internal/validator"
	"product-pulse-service/pkg/locker"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(
		logger.Config{
			Level:  cfg.Logger.Level,
			Format: cfg.Logger.Format,
			Output: cfg.Logger.Output,
		},
		logger.SentryConfig{
			Enabled:     cfg.Sentry.Enabled,
			DSN:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
			SampleRate:  cfg.Sentry.SampleRate,
		},
	)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting product-pulse-service",
		zap.String("env", cfg.App.Env),
		zap.Int("port", cfg.App.Port),
	)

	// Connect to database
	db, err := postgres.NewConnection(
		postgres.Config{
			Host:         cfg.Database.Host,
			Port:         cfg.Database.Port,
			Name:         cfg.Database.Name,
			User:         cfg.Database.User,
			Password:     cfg.Database.Password,
			SSLMode:      cfg.Database.SSLMode,
			MaxOpenConns: cfg.Database.MaxOpenConns,
			MaxIdleConns: cfg.Database.MaxIdleConns,
			MaxLifetime:  cfg.Database.MaxLifetime,
		},
		log.Logger,
	)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = postgres.Close(db) }()

	// Run migrations
	if err := migrations.Run(db); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}
	log.Info("database migrations completed")

	// Create repository
	repo := postgres.NewRepository(db)

	// Create feed clients
	socialFeed := socialfeed.New(clientConfig(cfg.Provider.SocialFeed), log.Logger)
	videoFeed := videofeed.New(clientConfig(cfg.Provider.VideoFeed), log.Logger)
	feeds := []domain.FeedProvider{socialFeed, videoFeed}

	// Connect to Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Ping Redis to verify connection
	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("failed to connect to Redis", zap.Error(err))
	}
	defer func() { _ = redisClient.Close() }()
	log.Info("connected to Redis",
		zap.String("host", cfg.Redis.Host),
		zap.Int("port", cfg.Redis.Port),
	)

	// Create cache implementation (optional, based on config)
	var cache domain.Cache
	if cfg.Cache.Enabled {
		cache = rediscache.NewCache(redisClient, log.Logger, cfg.Cache.KeyPrefix)
		log.Info("cache enabled",
			zap.Duration("content_ttl", cfg.Cache.ContentTTL),
			zap.String("key_prefix", cfg.Cache.KeyPrefix),
		)
	} else {
		log.Info("cache disabled")
	}

	// Create realtime hub
	hub := ws.NewHub(log.Logger)
	defer hub.Close()

	// Create services
	contentSvc := service.NewContentService(
		repo,
		cache,
		service.ContentServiceConfig{
			CacheTTL:   cfg.Cache.ContentTTL,
			PostLimit:  cfg.Ranking.PostLimit,
			VideoLimit: cfg.Ranking.VideoLimit,
		},
		log.Logger,
	)
	syncSvc := service.NewSyncService(
		repo,
		feeds,
		contentSvc,
		hub,
		service.SyncServiceConfig{
			TopPosts:  cfg.Digest.TopPosts,
			TopVideos: cfg.Digest.TopVideos,
		},
		log.Logger,
	)

	// Create distributed locker
	distLocker := locker.NewRedisLocker(redisClient, log.Logger)

	// Create validator
	v := validator.New()

	// Create HTTP server
	server := httpserver.NewServer(
		httpserver.ServerConfig{
			Port:      cfg.App.Port,
			BodyLimit: 1024 * 1024, // 1MB
			Debug:     cfg.App.Debug,
		},
		contentSvc,
		syncSvc,
		hub,
		db,
		v,
		log.Logger,
	)

	// Start digest scheduler with distributed locking
	scheduler := job.NewDigestScheduler(
		syncSvc,
		job.DigestConfig{
			Interval:  cfg.Digest.Interval,
			Timeout:   cfg.Digest.Timeout,
			OnStartup: cfg.Digest.OnStartup,
		},
		log.Logger,
		distLocker,
	)
	scheduler.Start(cfg.Digest.OnStartup)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("shutdown signal received")

		// Stop scheduler
		scheduler.Stop()

		// Shutdown server with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.App.ShutdownWithContext(ctx); err != nil {
			log.Error("server shutdown error", zap.Error(err))
		}
	}()

	// Start server
	if err := server.Start(cfg.App.Port); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}

// clientConfig maps a configured feed endpoint to the provider client config.
func clientConfig(ep config.ProviderEndpoint) provider.ClientConfig {
	return provider.ClientConfig{
		BaseURL: ep.BaseURL,
		APIKey:  ep.APIKey,
		Timeout: ep.Timeout,
		Retry: provider.RetryConfig{
			MaxAttempts: ep.Retry.MaxAttempts,
			WaitTime:    ep.Retry.WaitTime,
			MaxWaitTime: ep.Retry.MaxWaitTime,
		},
		CB: provider.CBConfig{
			MaxRequests:  ep.CB.MaxRequests,
			Interval:     ep.CB.Interval,
			Timeout:      ep.CB.Timeout,
			FailureRatio: ep.CB.FailureRatio,
		},
	}
}

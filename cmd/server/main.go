package main

import (
	"context"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/veridyen/consultdesk/internal/api"
	"github.com/veridyen/consultdesk/internal/config"
	"github.com/veridyen/consultdesk/internal/db"
	"github.com/veridyen/consultdesk/internal/facade"
	"github.com/veridyen/consultdesk/internal/observ"
	"github.com/veridyen/consultdesk/internal/repository/postgres"
	"github.com/veridyen/consultdesk/internal/session"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Config first. LoadConfig fails closed on a project-ref mismatch, so
	// a deployment pointed at the wrong backend project never boots.
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := observ.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	// Startup has no parent deadline; connecting takes as long as it takes.
	database, err := db.New(context.Background(), cfg.DatabaseURL, logger)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer database.Close()

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("parse redis url: %w", err)
	}
	cache := redis.NewClient(redisOpts)
	if err := cache.Ping(context.Background()).Err(); err != nil {
		// The resolver degrades to store reads without a cache; losing
		// Redis at boot is loud but not fatal.
		logger.Warn("redis unreachable, session cache disabled", zap.Error(err))
		_ = cache.Close()
		cache = nil
	} else {
		defer cache.Close()
	}

	pool := database.Pool()
	profileRepo := postgres.NewProfileStore(pool)
	applicationRepo := postgres.NewApplicationStore(pool)
	messageRepo := postgres.NewMessageStore(pool)
	documentRepo := postgres.NewDocumentStore(pool)
	notificationRepo := postgres.NewNotificationStore(pool)
	identityRepo := postgres.NewIdentityStore(pool)

	resolver := session.NewResolver(profileRepo, cache, logger)
	dataFacade := facade.New(profileRepo, applicationRepo, messageRepo, documentRepo, notificationRepo, logger)

	observ.InitMetrics()
	router := api.NewRouter(api.RouterConfig{
		Env:                cfg.Env,
		JWTSecret:          cfg.JWTSecret,
		Resolver:           resolver,
		Facade:             dataFacade,
		Identities:         identityRepo,
		Logger:             logger,
		RateLimitPerSecond: 10,
		RateLimitBurst:     20,
		EnableMetrics:      true,
	})

	logger.Info("starting consultdesk",
		zap.String("port", cfg.Port),
		zap.String("env", cfg.Env),
		zap.String("project_ref", cfg.ProjectRef),
	)

	return router.Run(":" + cfg.Port)
}

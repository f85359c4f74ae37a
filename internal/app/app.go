// Copyright (c) 2025 Nocturne Labs. All Rights Reserved.
// This is licensed software from Nocturne Labs, for limitations
// and restrictions contact your company contract manager.

package app

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/nocturnelabs/arbiter-service/internal/bootstrap"
	"github.com/nocturnelabs/arbiter-service/internal/config"
	"github.com/nocturnelabs/arbiter-service/internal/server"
	"github.com/nocturnelabs/arbiter-service/pkg/handler"
	"github.com/nocturnelabs/arbiter-service/pkg/service"
	"github.com/nocturnelabs/arbiter-service/pkg/state"
)

// App holds all application dependencies and manages the application lifecycle.
type App struct {
	cfg               *config.Config
	httpServer        *server.HTTPServer
	metricsServer     *server.MetricsServer
	redisClient       *redis.Client
	shutdownTelemetry func(context.Context) error
}

// New creates and initializes a new application instance.
//
// Components are initialized in dependency order:
// 1. Redis (required for state storage)
// 2. Reward catalog (YAML configuration)
// 3. Oracle (Gemini client)
// 4. Controllers (arbiter cascade, redeemer)
// 5. Servers (HTTP, metrics)
// 6. Telemetry (OpenTelemetry tracing)
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logrus.Info("initializing application...")

	app := &App{cfg: cfg}

	// ============================================================
	// Step 1: Initialize Redis
	// ============================================================
	if err := app.initRedis(ctx); err != nil {
		return nil, fmt.Errorf("failed to init Redis: %w", err)
	}

	// ============================================================
	// Step 2: Load reward catalog
	// ============================================================
	catalog, err := service.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load reward catalog from %s: %w", cfg.CatalogPath, err)
	}
	logrus.Infof("loaded reward catalog from %s", cfg.CatalogPath)

	// ============================================================
	// Step 3: Initialize the oracle
	// ============================================================
	oracle, err := service.NewGeminiOracle(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return nil, fmt.Errorf("failed to init oracle: %w", err)
	}

	// ============================================================
	// Step 4: Bootstrap controllers
	// ============================================================
	weekStore := state.NewWeekStore(app.redisClient, nil)
	blocklist := state.NewBlocklist(app.redisClient)

	cascadeController := bootstrap.InitArbiter(weekStore, catalog)
	redeemerController := bootstrap.InitRedeemer(oracle, weekStore, blocklist)

	h := handler.NewHandler(handler.Deps{
		Cascade:   cascadeController,
		Redeemer:  redeemerController,
		WeekStore: weekStore,
	})

	// ============================================================
	// Step 5: Setup servers
	// ============================================================
	app.httpServer = server.NewHTTPServer(cfg.HTTPPort, h, cfg.CORSAllowedOrigins)
	if err := app.httpServer.Setup(); err != nil {
		return nil, fmt.Errorf("failed to setup http server: %w", err)
	}

	app.metricsServer = server.NewMetricsServer(cfg.MetricsPort, "/metrics")
	if err := app.metricsServer.Setup(); err != nil {
		return nil, fmt.Errorf("failed to setup metrics server: %w", err)
	}

	// ============================================================
	// Step 6: Setup telemetry
	// ============================================================
	if cfg.OtelEnabled {
		shutdownTelemetry, err := server.SetupTelemetry(ctx, cfg.ServiceName, cfg.Environment, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to setup telemetry: %w", err)
		}
		app.shutdownTelemetry = shutdownTelemetry
	}

	logrus.Info("application initialized successfully")

	return app, nil
}

// initRedis initializes the Redis client with connection retry.
func (a *App) initRedis(ctx context.Context) error {
	client := redis.NewClient(&redis.Options{
		Addr:         a.cfg.RedisAddr(),
		Password:     a.cfg.RedisPassword,
		DB:           0, // use default DB
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Duration(a.cfg.RedisRetryDelayMs) * time.Millisecond
	maxRetries := backoff.WithMaxRetries(b, uint64(a.cfg.RedisMaxRetries))

	err := backoff.Retry(
		func() error {
			_, err := client.Ping(ctx).Result()
			if err != nil {
				logrus.Warnf("Redis connection failed: %v, retrying...", err)
				return err
			}
			return nil
		},
		maxRetries,
	)

	if err != nil {
		return err
	}

	a.redisClient = client
	logrus.Info("Redis client initialized")
	return nil
}

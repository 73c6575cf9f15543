// Command jobboard serves the job board site.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/jobboard/jobboard-ui/config"
	"github.com/jobboard/jobboard-ui/internal/bootstrap"
	"github.com/redis/go-redis/v9"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger()
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}
	if cfg.LogLevel != "" {
		logger = bootstrap.ConfigureLogger(cfg.LogLevel)
	}

	logStartupInfo(ctx, logger, &cfg)

	redisClient, err := initInfrastructure(ctx, &cfg, logger)
	if err != nil {
		return err
	}

	services, err := bootstrap.NewServices(&bootstrap.ServiceDeps{
		Config:      &cfg,
		RedisClient: redisClient,
		Logger:      logger,
	})
	if err != nil {
		return errors.Join(err, closeRedis(redisClient))
	}

	srv, err := bootstrap.NewHTTPServer(&bootstrap.HTTPServerConfig{
		Config:   &cfg,
		Services: services,
		Logger:   logger,
		Ready:    redisReady(redisClient),
	})
	if err != nil {
		return errors.Join(err, closeRedis(redisClient))
	}

	return bootstrap.Run(ctx, bootstrap.RunConfig{
		Server:          srv,
		ShutdownTimeout: cfg.HTTP.ShutdownTimeout,
		Logger:          logger,
		OnShutdown: func(context.Context) error {
			var errs []error
			if services.Metrics != nil {
				if cerr := services.Metrics.Close(); cerr != nil {
					errs = append(errs, fmt.Errorf("close metrics: %w", cerr))
				}
			}
			errs = append(errs, closeRedis(redisClient))
			return errors.Join(errs...)
		},
	})
}

func logStartupInfo(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig) {
	logger.InfoContext(ctx, "starting jobboard",
		"addr", cfg.HTTP.Addr,
		"base_url", cfg.HTTP.BaseURL,
		"view_state_store", cfg.ViewState.Store,
		"dev", cfg.IsDev,
		"metrics", cfg.Observability.Metrics.IsEnabled(),
		"analytics", cfg.Site.AnalyticsID != "")
}

// initInfrastructure connects Redis when the view state lives there.
//
//nolint:ireturn // returning redis.UniversalClient keeps sentinel/cluster support flexible.
func initInfrastructure(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (redis.UniversalClient, error) {
	if cfg.ViewState.Store != config.StateStoreRedis {
		return nil, nil
	}
	client, err := bootstrap.ConnectRedis(ctx, bootstrap.RedisConnectConfig{
		Redis:  cfg.Redis,
		Logger: logger,
	})
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return client, nil
}

// redisReady pings Redis for /healthz; nil when state is kept in memory.
func redisReady(client redis.UniversalClient) func(context.Context) error {
	if client == nil {
		return nil
	}
	return func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
}

func closeRedis(client redis.UniversalClient) error {
	if client == nil {
		return nil
	}
	if err := client.Close(); err != nil {
		return fmt.Errorf("close redis: %w", err)
	}
	return nil
}

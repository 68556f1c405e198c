package bootstrap

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/amhellmund/redo/internal/api"
	"github.com/amhellmund/redo/internal/config"
	"github.com/amhellmund/redo/internal/infrastructure/database"
	infralogger "github.com/amhellmund/redo/internal/infrastructure/logger"
	"github.com/amhellmund/redo/internal/infrastructure/redis"
	"github.com/amhellmund/redo/internal/infrastructure/retry"
)

// SetupDependencies connects the configured optional backends, retrying
// transient failures. The returned cleanup closes whatever was opened and is
// never nil.
func SetupDependencies(
	ctx context.Context,
	cfg *config.Config,
	log infralogger.Logger,
) (api.Dependencies, func(), error) {
	var (
		deps    api.Dependencies
		closers []func() error
	)
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				log.Warn("Failed to close dependency", infralogger.Error(err))
			}
		}
	}

	if cfg.Redis.Enabled() {
		var client *goredis.Client
		err := retry.Do(ctx, retry.DefaultConfig(), func(ctx context.Context) error {
			var connErr error
			client, connErr = redis.NewClient(ctx, cfg.Redis)
			return connErr
		})
		if err != nil {
			cleanup()
			return api.Dependencies{}, func() {}, fmt.Errorf("redis: %w", err)
		}
		closers = append(closers, client.Close)
		deps.RedisPing = redis.Pinger(client)
		log.Info("Redis connected", infralogger.String("address", cfg.Redis.Address))
	}

	if cfg.Database.Enabled() {
		var conn *database.Connection
		err := retry.Do(ctx, retry.DefaultConfig(), func(ctx context.Context) error {
			var connErr error
			conn, connErr = database.NewConnection(ctx, &cfg.Database)
			return connErr
		})
		if err != nil {
			cleanup()
			return api.Dependencies{}, func() {}, fmt.Errorf("database: %w", err)
		}
		closers = append(closers, conn.Close)
		deps.Database = conn
		log.Info("Database connected",
			infralogger.String("host", cfg.Database.Host),
			infralogger.Int("port", cfg.Database.Port),
			infralogger.String("database", cfg.Database.Database),
		)
	}

	return deps, cleanup, nil
}

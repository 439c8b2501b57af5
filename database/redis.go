package database

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"hungyeu/internal/config"
)

// ConnectRedis opens a Redis client for view counters and verification
// tokens. A failed connection is not fatal: the caller receives nil and the
// service degrades (direct DB counters, no self-service verification).
func ConnectRedis(cfg *config.Config, logger *slog.Logger) *redis.Client {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Warn("invalid REDIS_URL, running without Redis", "error", err)
		return nil
	}
	if cfg.RedisPassword != "" {
		opts.Password = cfg.RedisPassword
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis unreachable, running without Redis", "error", err)
		return nil
	}

	logger.Info("Connected to Redis successfully")
	return rdb
}

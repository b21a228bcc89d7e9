package infrastructure

import (
	"fmt"

	"coin-wallet-service/internal/config"
	redisclient "coin-wallet-service/pkg/redis"

	"go.uber.org/zap"
)

// NewRedisClient connects to the Redis instance backing the rate limiter.
// It returns nil without connecting when rate limiting is disabled.
func NewRedisClient(cfg *config.Config, l *zap.Logger) (*redisclient.Client, error) {
	if !cfg.RateLimit.Enabled {
		l.Info("rate limiting disabled, skipping Redis connection")
		return nil, nil
	}

	rdb, err := redisclient.NewClient(redisclient.Config{
		Host:        cfg.Redis.Host,
		Port:        cfg.Redis.Port,
		Password:    cfg.Redis.Password,
		DB:          cfg.Redis.DB,
		MaxRetries:  cfg.Redis.MaxRetries,
		PoolSize:    cfg.Redis.PoolSize,
		MinIdleConn: cfg.Redis.MinIdleConn,
	}, l)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return rdb, nil
}

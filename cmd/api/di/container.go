package di

import (
	"fmt"
	"net/http"
	"time"

	"coin-wallet-service/cmd/api/infrastructure"
	"coin-wallet-service/internal/adapter/db/gormdb"
	ginhandler "coin-wallet-service/internal/adapter/gin/handler"
	"coin-wallet-service/internal/adapter/gin/middleware"
	"coin-wallet-service/internal/adapter/oracle"
	"coin-wallet-service/internal/config"
	"coin-wallet-service/internal/usecase/wallet"
	redisclient "coin-wallet-service/pkg/redis"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Container holds all application dependencies
type Container struct {
	Config        *config.Config
	Logger        *zap.Logger
	DB            *gorm.DB
	RedisClient   *redisclient.Client
	UserRepo      *gormdb.UserRepo
	Oracle        *oracle.CoinGeckoClient
	WalletUC      wallet.Usecase
	RateLimiter   *middleware.RateLimiter
	WalletHandler *ginhandler.WalletHandler
}

// NewContainer creates and initializes all application dependencies
func NewContainer(cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	db, err := infrastructure.NewDatabase(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	c := &Container{
		Config:   cfg,
		Logger:   l,
		DB:       db,
		UserRepo: gormdb.NewUserRepo(db, l),
	}

	// Redis is only needed when rate limiting is on
	rdb, err := infrastructure.NewRedisClient(cfg, l)
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to initialize Redis: %w", err)
	}
	c.RedisClient = rdb

	timeout := time.Duration(cfg.Oracle.TimeoutSeconds) * time.Second
	priceOracle, err := oracle.NewCoinGeckoClient(oracle.Config{
		URL:        cfg.Oracle.URL,
		CoinID:     cfg.Oracle.CoinID,
		VsCurrency: cfg.Oracle.VsCurrency,
		Timeout:    timeout,
	}, &http.Client{Timeout: timeout}, l)
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to initialize price oracle: %w", err)
	}
	c.Oracle = priceOracle

	c.WalletUC = wallet.New(c.UserRepo, priceOracle, l)
	c.WalletHandler = ginhandler.NewWalletHandler(c.WalletUC, l)

	if rdb != nil {
		c.RateLimiter = middleware.NewRateLimiter(
			rdb.Client,
			middleware.RateLimiterConfig{
				RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
				BurstCapacity:     cfg.RateLimit.BurstCapacity,
				Enabled:           cfg.RateLimit.Enabled,
			},
			l,
		)
	}

	return c, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	if c.DB != nil {
		if err := infrastructure.CloseDatabase(c.DB); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("container close errors: %v", errs)
	}

	return nil
}

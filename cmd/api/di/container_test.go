package di

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"coin-wallet-service/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)
	cfg.DB.URL = "sqlite:///" + filepath.Join(t.TempDir(), "wallet.db")
	return cfg
}

func TestNewContainer_Defaults(t *testing.T) {
	c, err := NewContainer(testConfig(t), zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.NotNil(t, c.DB)
	assert.NotNil(t, c.UserRepo)
	assert.NotNil(t, c.Oracle)
	assert.NotNil(t, c.WalletUC)
	assert.NotNil(t, c.WalletHandler)
	assert.Nil(t, c.RedisClient)
	assert.Nil(t, c.RateLimiter)

	inserted, err := c.UserRepo.Initialize(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, inserted)

	assert.NoError(t, c.Close())
}

func TestNewContainer_RateLimitEnabled(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(t)
	cfg.RateLimit.Enabled = true
	cfg.Redis.Host = mr.Host()
	cfg.Redis.Port = mr.Port()

	c, err := NewContainer(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	assert.NotNil(t, c.RedisClient)
	assert.NotNil(t, c.RateLimiter)
}

func TestNewContainer_InvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.DB.URL = "mysql://localhost/wallet"

	_, err := NewContainer(cfg, zaptest.NewLogger(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}

func TestNewContainer_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(t)
	cfg.RateLimit.Enabled = true
	cfg.Redis.Host = mr.Host()
	cfg.Redis.Port = mr.Port()
	mr.Close()

	_, err := NewContainer(cfg, zaptest.NewLogger(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to initialize Redis")
}

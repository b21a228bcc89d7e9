package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"coin-wallet-service/internal/adapter/db/gormdb"
)

func setupEnv(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "wallet.db")
	t.Setenv("DATABASE_URL", "sqlite:///"+path)
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("PORT", "0")
	t.Setenv("ORACLE_URL", "http://127.0.0.1:1/price")
	t.Setenv("LOG_LEVEL", "error")
	return path
}

// blockInserts creates the users table with a trigger that aborts every insert.
func blockInserts(t *testing.T, path string) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, gormdb.NewUserRepo(db, zaptest.NewLogger(t)).Migrate(context.Background()))
	require.NoError(t, db.Exec(`CREATE TRIGGER users_readonly BEFORE INSERT ON users
		BEGIN SELECT RAISE(ABORT, 'users table is read-only'); END`).Error)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
}

func TestRun_SeedsOnStartupAndShutsDown(t *testing.T) {
	setupEnv(t)

	a, err := New(Options{ConfigPath: t.TempDir()})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	require.Eventually(t, func() bool {
		n, err := a.Container.UserRepo.Count(context.Background())
		return err == nil && n == 3
	}, 5*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRun_SeedFailureKeepsServing(t *testing.T) {
	blockInserts(t, setupEnv(t))

	a, err := New(Options{ConfigPath: t.TempDir()})
	require.NoError(t, err)

	_, err = a.Seed(context.Background())
	require.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	// Run must not return on its own after the failed seed
	require.Never(t, func() bool { return len(done) > 0 }, 300*time.Millisecond, 20*time.Millisecond)

	w := httptest.NewRecorder()
	a.Server.HTTP.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRun_SeedDisabled(t *testing.T) {
	setupEnv(t)
	t.Setenv("SEED_ON_STARTUP", "false")

	a, err := New(Options{ConfigPath: t.TempDir()})
	require.NoError(t, err)
	assert.False(t, a.Config.App.SeedOnStartup)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, a.Run(ctx))
}

func TestBootstrap_LogLevelOverride(t *testing.T) {
	setupEnv(t)

	cfg, l, err := Bootstrap(Options{ConfigPath: t.TempDir(), LogLevel: "warn"})
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logger.Level)
	assert.NotNil(t, l)
}

func TestGetConfigPath(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/etc/coin-wallet")
	assert.Equal(t, "/from/flag", getConfigPath("/from/flag"))
	assert.Equal(t, "/etc/coin-wallet", getConfigPath(""))

	t.Setenv("CONFIG_PATH", "")
	assert.Equal(t, ".", getConfigPath(""))
}

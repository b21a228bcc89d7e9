package router

import (
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"coin-wallet-service/internal/adapter/db/gormdb"
	"coin-wallet-service/internal/adapter/gin/handler"
	"coin-wallet-service/internal/adapter/oracle"
	"coin-wallet-service/internal/usecase/wallet"
)

func setupRouter(t testing.TB, oracleHandler http.HandlerFunc, seed bool, opts Options) (http.Handler, *gorm.DB) {
	log := zaptest.NewLogger(t)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	repo := gormdb.NewUserRepo(db, log)
	if seed {
		_, err := repo.Initialize(context.Background())
		require.NoError(t, err)
	}

	priceSrv := httptest.NewServer(oracleHandler)
	t.Cleanup(priceSrv.Close)

	client, err := oracle.NewCoinGeckoClient(oracle.Config{
		URL:        priceSrv.URL,
		CoinID:     "bitcoin",
		VsCurrency: "usd",
		Timeout:    time.Second,
	}, priceSrv.Client(), log)
	require.NoError(t, err)

	h := handler.NewWalletHandler(wallet.New(repo, client, log), log)
	return SetupRouter(h, nil, opts, log), db
}

func priceOK(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"bitcoin":{"usd":50000}}`))
}

func priceDown(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusServiceUnavailable)
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestRouter_SeededStoreWithPrice(t *testing.T) {
	r, _ := setupRouter(t, priceOK, true, Options{})

	w := get(r, "/api/users")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[
		{"username":"Alessandro","coin_amount":0.001,"usd_value":50.0,"is_admin":false},
		{"username":"Andrea","coin_amount":0.001,"usd_value":50.0,"is_admin":false},
		{"username":"Admin","coin_amount":0.0045,"usd_value":225.0,"is_admin":true}
	]`, w.Body.String())

	w = get(r, "/api/wallet-info")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total_amount":0.0065,"price":50000,"total_usd_value":325.0}`, w.Body.String())
}

func TestRouter_OracleDown(t *testing.T) {
	r, _ := setupRouter(t, priceDown, true, Options{})

	w := get(r, "/api/wallet-info")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total_amount":0.0065,"price":null,"total_usd_value":0}`, w.Body.String())

	w = get(r, "/api/users")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[
		{"username":"Alessandro","coin_amount":0.001,"usd_value":0,"is_admin":false},
		{"username":"Andrea","coin_amount":0.001,"usd_value":0,"is_admin":false},
		{"username":"Admin","coin_amount":0.0045,"usd_value":0,"is_admin":true}
	]`, w.Body.String())
}

func TestRouter_EmptyStore(t *testing.T) {
	r, db := setupRouter(t, priceOK, false, Options{})
	require.NoError(t, db.AutoMigrate(&gormdb.UserSchema{}))

	w := get(r, "/api/users")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = get(r, "/api/wallet-info")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total_amount":0,"price":50000,"total_usd_value":0}`, w.Body.String())
}

func TestRouter_StoreFailure(t *testing.T) {
	// No migration: every query fails with a missing table
	r, _ := setupRouter(t, priceOK, false, Options{})

	w := get(r, "/api/users")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"error"`)

	w = get(r, "/api/wallet-info")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"error"`)
}

func TestRouter_InfoAlwaysOK(t *testing.T) {
	r, db := setupRouter(t, priceDown, true, Options{})

	w := get(r, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"database_status":"connected"`)
	assert.Contains(t, w.Body.String(), `"status":"running"`)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	w = get(r, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"database_status":"error: `)
}

func TestRouter_NotFound(t *testing.T) {
	r, _ := setupRouter(t, priceOK, true, Options{})

	w := get(r, "/api/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"not found"}`, w.Body.String())
}

func TestRouter_Gzip(t *testing.T) {
	r, _ := setupRouter(t, priceOK, true, Options{Gzip: true})

	req := httptest.NewRequest(http.MethodGet, "/api/wallet-info", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body io.Reader = w.Body
	if w.Header().Get("Content-Encoding") == "gzip" {
		zr, err := gzip.NewReader(w.Body)
		require.NoError(t, err)
		body = zr
	}
	raw, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"total_amount":0.0065,"price":50000,"total_usd_value":325.0}`, string(raw))
}

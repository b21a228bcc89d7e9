package server

import (
	"net/http"
	"time"

	ginhandler "coin-wallet-service/internal/adapter/gin/handler"
	"coin-wallet-service/internal/adapter/gin/middleware"
	ginrouter "coin-wallet-service/internal/adapter/gin/router"

	"go.uber.org/zap"
)

// SetupGinServer creates and configures the Gin REST API server
func SetupGinServer(
	handler *ginhandler.WalletHandler,
	rateLimiter *middleware.RateLimiter,
	opts ginrouter.Options,
	addr string,
	l *zap.Logger,
) *http.Server {
	router := ginrouter.SetupRouter(handler, rateLimiter, opts, l)

	l.Info("Gin REST API configured",
		zap.String("address", addr),
		zap.Bool("gzip", opts.Gzip),
		zap.Bool("rate_limit", rateLimiter != nil),
	)

	// WriteTimeout leaves room for a slow price oracle
	return &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

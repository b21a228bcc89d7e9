package router

import (
	"coin-wallet-service/internal/adapter/gin/handler"
	"coin-wallet-service/internal/adapter/gin/middleware"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Options toggles optional middleware
type Options struct {
	Gzip bool
}

// SetupRouter configures and returns a Gin router with all routes and middleware.
// rateLimiter may be nil.
func SetupRouter(
	walletHandler *handler.WalletHandler,
	rateLimiter *middleware.RateLimiter,
	opts Options,
	log *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery(log))
	router.Use(middleware.Logger(log))
	if opts.Gzip {
		router.Use(gzip.Gzip(gzip.DefaultCompression))
	}
	router.Use(rateLimiter.Middleware())

	router.GET(handler.PathRoot, walletHandler.Info)

	api := router.Group("/api")
	{
		api.GET("/users", walletHandler.ListUsers)
		api.GET("/wallet-info", walletHandler.WalletInfo)
	}

	router.NoRoute(walletHandler.NotFound)

	return router
}

package server

import (
	"errors"
	"fmt"
	"net/http"

	"coin-wallet-service/cmd/api/di"
	ginrouter "coin-wallet-service/internal/adapter/gin/router"
	"coin-wallet-service/internal/config"

	"go.uber.org/zap"
)

// Server holds the HTTP server and its dependencies
type Server struct {
	Config *config.Config
	Logger *zap.Logger
	HTTP   *http.Server
}

// New creates a new server instance
func New(cfg *config.Config, l *zap.Logger, container *di.Container) *Server {
	return &Server{
		Config: cfg,
		Logger: l,
		HTTP: SetupGinServer(
			container.WalletHandler,
			container.RateLimiter,
			ginrouter.Options{Gzip: cfg.App.GzipEnabled},
			cfg.App.Address(),
			l,
		),
	}
}

// Start serves HTTP until the server is shut down.
func (s *Server) Start() error {
	s.Logger.Info("HTTP server running", zap.String("address", s.HTTP.Addr))

	if err := s.HTTP.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to serve HTTP: %w", err)
	}

	return nil
}

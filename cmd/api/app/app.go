package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"coin-wallet-service/cmd/api/di"
	"coin-wallet-service/cmd/api/server"
	"coin-wallet-service/internal/config"
	"coin-wallet-service/pkg/logger"

	"go.uber.org/zap"
)

// Options tune how the application is assembled.
type Options struct {
	// ConfigPath is the directory searched for app.env. Empty falls back to CONFIG_PATH, then ".".
	ConfigPath string
	// LogLevel overrides LOG_LEVEL when set.
	LogLevel string
}

// App represents the application
type App struct {
	Config    *config.Config
	Logger    *zap.Logger
	Server    *server.Server
	Container *di.Container
}

// New creates a new application instance
func New(opts Options) (*App, error) {
	cfg, l, err := Bootstrap(opts)
	if err != nil {
		return nil, err
	}

	container, err := di.NewContainer(cfg, l)
	if err != nil {
		_ = logger.Sync(l)
		return nil, fmt.Errorf("failed to create container: %w", err)
	}

	return &App{
		Config:    cfg,
		Logger:    l,
		Server:    server.New(cfg, l, container),
		Container: container,
	}, nil
}

// Bootstrap loads configuration and builds the logger.
func Bootstrap(opts Options) (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(getConfigPath(opts.ConfigPath))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if opts.LogLevel != "" {
		cfg.Logger.Level = opts.LogLevel
	}

	l, err := initLogger(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return cfg, l, nil
}

// Seed creates the schema and inserts the default users into an empty store.
func (a *App) Seed(ctx context.Context) (int, error) {
	inserted, err := a.Container.UserRepo.Initialize(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to initialize record store: %w", err)
	}

	a.Logger.Info("record store initialized", zap.Int("inserted", inserted))
	return inserted, nil
}

// Run starts the application and blocks until ctx is canceled or the server fails.
func (a *App) Run(ctx context.Context) error {
	defer func() {
		if r := recover(); r != nil {
			a.Logger.Error("panic recovered in application",
				zap.Any("panic", r),
				zap.Stack("stack"),
			)
		}
	}()

	a.Logger.Info("starting application",
		zap.String("service", a.Config.Logger.ServiceName),
		zap.String("version", a.Config.Logger.ServiceVersion),
		zap.String("environment", getEnvironment()),
	)

	// A store that cannot be seeded is reported by GET / and the API endpoints.
	if a.Config.App.SeedOnStartup {
		if _, err := a.Seed(ctx); err != nil {
			a.Logger.Error("seeding failed, continuing without seed data", zap.Error(err))
		}
	}

	errChan := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				errChan <- fmt.Errorf("server panic: %v", r)
			}
		}()

		if err := a.Server.Start(); err != nil {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.Logger.Info("shutting down application...")
		return a.shutdown()
	case err := <-errChan:
		a.Logger.Error("server stopped unexpectedly", zap.Error(err))
		if shutdownErr := a.shutdown(); shutdownErr != nil {
			return fmt.Errorf("%w (%v)", err, shutdownErr)
		}
		return err
	}
}

// Close releases resources without starting the server.
func (a *App) Close() error {
	var errs []error
	if err := a.Container.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := logger.Sync(a.Logger); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

// shutdown gracefully shuts down the application
func (a *App) shutdown() error {
	timeout := time.Duration(a.Config.App.ShutdownTimeoutSeconds) * time.Second
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	a.Logger.Info("starting graceful shutdown",
		zap.Int("timeout_seconds", a.Config.App.ShutdownTimeoutSeconds),
	)

	var errs []error

	if a.Server != nil && a.Server.HTTP != nil {
		a.Logger.Info("shutting down HTTP server...")
		if err := a.Server.HTTP.Shutdown(shutdownCtx); err != nil {
			a.Logger.Error("failed to shutdown HTTP server", zap.Error(err))
			errs = append(errs, fmt.Errorf("HTTP shutdown: %w", err))
		}
	}

	if a.Container != nil {
		a.Logger.Info("closing container resources...")
		if err := a.Container.Close(); err != nil {
			a.Logger.Error("failed to close container", zap.Error(err))
			errs = append(errs, fmt.Errorf("container close: %w", err))
		}
	}

	a.Logger.Info("application shutdown complete")

	if err := logger.Sync(a.Logger); err != nil {
		errs = append(errs, fmt.Errorf("logger sync: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("shutdown errors: %v", errs)
	}

	return nil
}

// initLogger initializes the application logger
func initLogger(cfg *config.Config) (*zap.Logger, error) {
	return logger.NewWithConfig(logger.Config{
		Level:          cfg.Logger.Level,
		Format:         cfg.Logger.Format,
		OutputPath:     cfg.Logger.OutputPath,
		EnableSampling: cfg.Logger.EnableSampling,
		ServiceName:    cfg.Logger.ServiceName,
		ServiceVersion: cfg.Logger.ServiceVersion,
		Environment:    getEnvironment(),
	})
}

// getConfigPath returns the configuration path
func getConfigPath(flag string) string {
	if flag != "" {
		return flag
	}
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	return "."
}

// getEnvironment returns the application environment
func getEnvironment() string {
	if env := os.Getenv("APP_ENV"); env != "" {
		return env
	}
	return "development"
}

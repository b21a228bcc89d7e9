package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	apperrors "coin-wallet-service/pkg/errors"
)

// Config holds all configuration for the application
type Config struct {
	DB        DatabaseConfig
	App       AppConfig
	Oracle    OracleConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Logger    LoggerConfig
}

// DatabaseConfig holds configuration for the record store
type DatabaseConfig struct {
	URL             string `mapstructure:"DATABASE_URL" validate:"required"`
	MaxOpenConns    int    `mapstructure:"DB_MAX_OPEN_CONNS" validate:"gte=1"`
	MaxIdleConns    int    `mapstructure:"DB_MAX_IDLE_CONNS" validate:"gte=0"`
	ConnMaxLifetime int    `mapstructure:"DB_CONN_MAX_LIFETIME" validate:"gte=0"`
	ConnMaxIdleTime int    `mapstructure:"DB_CONN_MAX_IDLE_TIME" validate:"gte=0"`
}

// AppConfig holds configuration for the application server
type AppConfig struct {
	Host                   string `mapstructure:"HOST"`
	Port                   string `mapstructure:"PORT" validate:"required,numeric"`
	SeedOnStartup          bool   `mapstructure:"SEED_ON_STARTUP"`
	GzipEnabled            bool   `mapstructure:"GZIP_ENABLED"`
	ShutdownTimeoutSeconds int    `mapstructure:"SHUTDOWN_TIMEOUT_SECONDS" validate:"gte=1"`
}

// OracleConfig holds configuration for the price oracle client
type OracleConfig struct {
	URL            string `mapstructure:"ORACLE_URL" validate:"required,url"`
	CoinID         string `mapstructure:"ORACLE_COIN_ID" validate:"required"`
	VsCurrency     string `mapstructure:"ORACLE_VS_CURRENCY" validate:"required"`
	TimeoutSeconds int    `mapstructure:"ORACLE_TIMEOUT_SECONDS" validate:"gte=1"`
}

// RedisConfig holds configuration for the Redis connection used by the rate limiter
type RedisConfig struct {
	Host        string `mapstructure:"REDIS_HOST"`
	Port        string `mapstructure:"REDIS_PORT"`
	Password    string `mapstructure:"REDIS_PASSWORD"`
	DB          int    `mapstructure:"REDIS_DB" validate:"gte=0"`
	MaxRetries  int    `mapstructure:"REDIS_MAX_RETRIES" validate:"gte=0"`
	PoolSize    int    `mapstructure:"REDIS_POOL_SIZE" validate:"gte=1"`
	MinIdleConn int    `mapstructure:"REDIS_MIN_IDLE_CONN" validate:"gte=0"`
}

// RateLimitConfig holds configuration for the HTTP rate limiter
type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"RATE_LIMIT_ENABLED"`
	RequestsPerSecond float64 `mapstructure:"RATE_LIMIT_RPS" validate:"gt=0"`
	BurstCapacity     int     `mapstructure:"RATE_LIMIT_BURST" validate:"gte=1"`
}

// LoggerConfig holds configuration for the logger
type LoggerConfig struct {
	Level            string  `mapstructure:"LOG_LEVEL"`
	Format           string  `mapstructure:"LOG_FORMAT" validate:"oneof=json console"`
	OutputPath       string  `mapstructure:"LOG_OUTPUT_PATH"`
	SlowQuerySeconds float64 `mapstructure:"LOG_SLOW_QUERY_SECONDS" validate:"gte=0"`
	EnableSampling   bool    `mapstructure:"LOG_ENABLE_SAMPLING"`
	ServiceName      string  `mapstructure:"SERVICE_NAME"`
	ServiceVersion   string  `mapstructure:"SERVICE_VERSION"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	// Set defaults first
	setDefaults(v)

	v.AddConfigPath(path)
	v.SetConfigName("app") // Look for app.env
	v.SetConfigType("env")

	v.AutomaticEnv() // Read from environment variables

	// Try to read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is okay if we have env vars
	}

	var config Config

	config.DB.URL = v.GetString("DATABASE_URL")
	config.DB.MaxOpenConns = v.GetInt("DB_MAX_OPEN_CONNS")
	config.DB.MaxIdleConns = v.GetInt("DB_MAX_IDLE_CONNS")
	config.DB.ConnMaxLifetime = v.GetInt("DB_CONN_MAX_LIFETIME")
	config.DB.ConnMaxIdleTime = v.GetInt("DB_CONN_MAX_IDLE_TIME")

	config.App.Host = v.GetString("HOST")
	config.App.Port = v.GetString("PORT")
	config.App.SeedOnStartup = v.GetBool("SEED_ON_STARTUP")
	config.App.GzipEnabled = v.GetBool("GZIP_ENABLED")
	config.App.ShutdownTimeoutSeconds = v.GetInt("SHUTDOWN_TIMEOUT_SECONDS")

	config.Oracle.URL = v.GetString("ORACLE_URL")
	config.Oracle.CoinID = v.GetString("ORACLE_COIN_ID")
	config.Oracle.VsCurrency = v.GetString("ORACLE_VS_CURRENCY")
	config.Oracle.TimeoutSeconds = v.GetInt("ORACLE_TIMEOUT_SECONDS")

	config.Redis.Host = v.GetString("REDIS_HOST")
	config.Redis.Port = v.GetString("REDIS_PORT")
	config.Redis.Password = v.GetString("REDIS_PASSWORD")
	config.Redis.DB = v.GetInt("REDIS_DB")
	config.Redis.MaxRetries = v.GetInt("REDIS_MAX_RETRIES")
	config.Redis.PoolSize = v.GetInt("REDIS_POOL_SIZE")
	config.Redis.MinIdleConn = v.GetInt("REDIS_MIN_IDLE_CONN")

	config.RateLimit.Enabled = v.GetBool("RATE_LIMIT_ENABLED")
	config.RateLimit.RequestsPerSecond = v.GetFloat64("RATE_LIMIT_RPS")
	config.RateLimit.BurstCapacity = v.GetInt("RATE_LIMIT_BURST")

	config.Logger.Level = v.GetString("LOG_LEVEL")
	config.Logger.Format = v.GetString("LOG_FORMAT")
	config.Logger.OutputPath = v.GetString("LOG_OUTPUT_PATH")
	config.Logger.SlowQuerySeconds = v.GetFloat64("LOG_SLOW_QUERY_SECONDS")
	config.Logger.EnableSampling = v.GetBool("LOG_ENABLE_SAMPLING")
	config.Logger.ServiceName = v.GetString("SERVICE_NAME")
	config.Logger.ServiceVersion = v.GetString("SERVICE_VERSION")

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("DATABASE_URL", "sqlite://wallet.db")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", 300)
	v.SetDefault("DB_CONN_MAX_IDLE_TIME", 60)

	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("PORT", "8000")
	v.SetDefault("SEED_ON_STARTUP", true)
	v.SetDefault("GZIP_ENABLED", true)
	v.SetDefault("SHUTDOWN_TIMEOUT_SECONDS", 10)

	v.SetDefault("ORACLE_URL", "https://api.coingecko.com/api/v3/simple/price")
	v.SetDefault("ORACLE_COIN_ID", "bitcoin")
	v.SetDefault("ORACLE_VS_CURRENCY", "usd")
	v.SetDefault("ORACLE_TIMEOUT_SECONDS", 10)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_MAX_RETRIES", 3)
	v.SetDefault("REDIS_POOL_SIZE", 10)
	v.SetDefault("REDIS_MIN_IDLE_CONN", 2)

	v.SetDefault("RATE_LIMIT_ENABLED", false)
	v.SetDefault("RATE_LIMIT_RPS", 10.0)
	v.SetDefault("RATE_LIMIT_BURST", 20)

	// Logger defaults
	v.BindEnv("APP_ENV") //nolint:errcheck
	env := v.GetString("APP_ENV")
	if env == "production" {
		v.SetDefault("LOG_LEVEL", "info")
		v.SetDefault("LOG_FORMAT", "json")
		v.SetDefault("LOG_ENABLE_SAMPLING", true)
	} else {
		v.SetDefault("LOG_LEVEL", "debug")
		v.SetDefault("LOG_FORMAT", "console")
		v.SetDefault("LOG_ENABLE_SAMPLING", false)
	}
	v.SetDefault("LOG_OUTPUT_PATH", "stdout")
	v.SetDefault("LOG_SLOW_QUERY_SECONDS", 0.2)
	v.SetDefault("SERVICE_NAME", "coin-wallet-service")
	v.SetDefault("SERVICE_VERSION", "1.0.0")
}

// Validate checks the loaded configuration before any infrastructure is opened.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if _, _, err := c.DB.Dialect(); err != nil {
		return err
	}

	return nil
}

// Address returns the host:port the HTTP server binds to.
func (c *AppConfig) Address() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// Database dialects understood by the record store.
const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

// Dialect resolves DATABASE_URL into a driver name and the DSN that driver expects.
//
// postgres:// and postgresql:// URLs are passed to the PostgreSQL driver
// (postgres:// is rewritten to postgresql://). sqlite://path, sqlite:///path
// and bare file paths select the SQLite driver.
func (c *DatabaseConfig) Dialect() (string, string, error) {
	raw := strings.TrimSpace(c.URL)

	switch {
	case strings.HasPrefix(raw, "postgres://"):
		return DialectPostgres, "postgresql://" + strings.TrimPrefix(raw, "postgres://"), nil
	case strings.HasPrefix(raw, "postgresql://"):
		return DialectPostgres, raw, nil
	case strings.HasPrefix(raw, "sqlite:///"):
		return sqliteDSN(strings.TrimPrefix(raw, "sqlite:///"))
	case strings.HasPrefix(raw, "sqlite://"):
		return sqliteDSN(strings.TrimPrefix(raw, "sqlite://"))
	case strings.Contains(raw, "://"):
		u, err := url.Parse(raw)
		if err != nil {
			return "", "", apperrors.NewValidationError("DATABASE_URL", err.Error())
		}
		return "", "", apperrors.NewValidationError("DATABASE_URL", fmt.Sprintf("unsupported scheme %q", u.Scheme))
	default:
		return sqliteDSN(raw)
	}
}

func sqliteDSN(path string) (string, string, error) {
	if path == "" {
		return "", "", apperrors.NewValidationError("DATABASE_URL", "empty sqlite path")
	}
	return DialectSQLite, path, nil
}

package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration
type Config struct {
	App struct {
		Name     string `envconfig:"APP_NAME" default:"SplitLedger"`
		Port     int    `envconfig:"PORT" default:"8080"`
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	}

	DB struct {
		URL          string `envconfig:"DATABASE_URL" default:"sqlite://splitledger.db"`
		MaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
		MaxIdleConns int    `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
	}

	Auth struct {
		JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
		TokenTTL  time.Duration `envconfig:"JWT_TTL" default:"24h"`
	}

	Cache struct {
		RedisURL   string        `envconfig:"REDIS_URL"` // empty disables the balance cache
		BalanceTTL time.Duration `envconfig:"BALANCE_CACHE_TTL" default:"10m"`
	}

	Server struct {
		CORSAllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
		RequestTimeout     time.Duration `envconfig:"REQUEST_TIMEOUT" default:"15s"`
		ShutdownTimeout    time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	}
}

// Addr is the listen address for the HTTP server
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}

// Load reads a .env file when present, then the environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
		return nil, fmt.Errorf("JWT_SECRET must not be blank")
	}

	return &cfg, nil
}

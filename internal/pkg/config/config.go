package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const devJWTSecret = "dev-only-insecure-secret"

type Config struct {
	Port            string        `env:"PORT,             default=8080"`
	Env             string        `env:"ENV,              default=development"`
	JWTSecret       string        `env:"JWT_SECRET"`
	LogLevel        string        `env:"LOG_LEVEL,        default=info"`
	TokenTTL        time.Duration `env:"TOKEN_TTL,        default=24h"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"`

	Login LoginLimitConfig
}

// LoginLimitConfig bounds login attempts per client address.
type LoginLimitConfig struct {
	RPS   float64 `env:"LOGIN_RATE_LIMIT, default=5"`
	Burst int     `env:"LOGIN_RATE_BURST, default=10"`
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() (*Config, error) {
	return load(envconfig.OsLookuper())
}

func load(l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if cfg.JWTSecret == "" {
		if !cfg.IsDevelopment() {
			return nil, errors.New("config: JWT_SECRET is required outside development")
		}
		cfg.JWTSecret = devJWTSecret
	}
	if cfg.TokenTTL <= 0 {
		return nil, errors.New("config: TOKEN_TTL must be positive")
	}
	return &cfg, nil
}

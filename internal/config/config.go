// Package config reads application settings from the environment only.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	EnvLocal      = "local"
	EnvTest       = "test"
	EnvProduction = "production"
)

type Config struct {
	AppEnv   string `env:"APP_ENV" envDefault:"production"`
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`

	// DatabaseURL may be empty outside production: accounts are then kept in memory.
	DatabaseURL string `env:"DATABASE_URL"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	JWTSigningKey string        `env:"JWT_SIGNING_KEY"`
	JWTAccessTTL  time.Duration `env:"JWT_ACCESS_TTL" envDefault:"15m"`
	JWTRefreshTTL time.Duration `env:"JWT_REFRESH_TTL" envDefault:"720h"`

	SessionTTL          time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	SessionCookieSecure bool          `env:"SESSION_COOKIE_SECURE" envDefault:"true"`

	RateLimitRPS     int      `env:"RATE_LIMIT_RPS" envDefault:"20"`
	CORSAllowOrigins []string `env:"CORS_ALLOW_ORIGINS" envDefault:"*" envSeparator:","`

	// ThemeFile is an optional YAML file merged over the built-in theme.
	ThemeFile string `env:"THEME_FILE"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// LoadFromEnv parses the environment and validates the result.
func LoadFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) IsLocal() bool {
	return c.AppEnv == EnvLocal || c.AppEnv == EnvTest
}

// Validate reports every missing or inconsistent setting.
func (c Config) Validate() error {
	var errs []error
	if c.JWTSigningKey == "" {
		errs = append(errs, errors.New("JWT_SIGNING_KEY is required"))
	} else if len(c.JWTSigningKey) < 32 {
		errs = append(errs, errors.New("JWT_SIGNING_KEY must be at least 32 bytes"))
	}
	if c.DatabaseURL == "" && !c.IsLocal() {
		errs = append(errs, errors.New("DATABASE_URL is required outside local/test"))
	}
	if c.RedisAddr == "" {
		errs = append(errs, errors.New("REDIS_ADDR is required"))
	}
	if c.JWTAccessTTL <= 0 || c.JWTRefreshTTL <= 0 || c.SessionTTL <= 0 {
		errs = append(errs, errors.New("token and session TTLs must be positive"))
	}
	if c.RateLimitRPS < 0 {
		errs = append(errs, errors.New("RATE_LIMIT_RPS must not be negative"))
	}
	return errors.Join(errs...)
}

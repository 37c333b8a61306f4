package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// defaultDevSecret signs tokens when no secret is configured. Acceptable only
// outside production; Load refuses to start production without JWT_SECRET.
const defaultDevSecret = "default-dev-secret"

// Config holds everything read from the environment at startup. It is built
// once in main and passed by reference; nothing reads viper after Load.
type Config struct {
	AppEnv          string
	AppPort         string
	JWTSecret       string
	DatabaseURL     string
	RabbitMQURL     string
	RateLimitMax    int
	RateLimitWindow time.Duration
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Load reads configuration from environment variables, applying development
// defaults. In production a dedicated JWT secret is mandatory: its absence is
// a startup error, never a request-time one.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", ":3001")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("RATE_LIMIT_MAX", 100)
	v.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)
	v.AutomaticEnv()

	cfg := &Config{
		AppEnv:          v.GetString("APP_ENV"),
		AppPort:         v.GetString("APP_PORT"),
		DatabaseURL:     v.GetString("DATABASE_URL"),
		RabbitMQURL:     v.GetString("RABBITMQ_URL"),
		RateLimitMax:    v.GetInt("RATE_LIMIT_MAX"),
		RateLimitWindow: time.Duration(v.GetInt("RATE_LIMIT_WINDOW_SECONDS")) * time.Second,
	}

	if cfg.IsProduction() {
		secret := v.GetString("JWT_SECRET")
		if secret == "" {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = secret
	} else {
		secret := v.GetString("JWT_SECRET_DEV")
		if secret == "" {
			secret = defaultDevSecret
		}
		cfg.JWTSecret = secret
	}

	return cfg, nil
}

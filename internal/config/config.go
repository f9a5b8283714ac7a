package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

// fallbackJWTSecret is used when JWT_SECRET is unset. Tokens signed with a
// well-known constant are forgeable, so startup complains loudly about it.
const fallbackJWTSecret = "secret"

// JWTExpiry is the fixed validity window of issued bearer tokens.
const JWTExpiry = 30 * 24 * time.Hour

// Config holds the environment-supplied process configuration.
type Config struct {
	Port           string `env:"PORT" envDefault:"8080"`
	Env            string `env:"ENV" envDefault:"development"`
	DatabaseDSN    string `env:"DATABASE_DSN" envDefault:"root:password@tcp(127.0.0.1:3306)/cvforge?parseTime=true"`
	JWTSecret      string `env:"JWT_SECRET"`
	GoogleClientID string `env:"GOOGLE_CLIENT_ID"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = fallbackJWTSecret
		slog.Warn("JWT_SECRET not set, falling back to an insecure default — tokens are forgeable, do not run this in production")
	}

	if cfg.Env == "production" && cfg.JWTSecret == fallbackJWTSecret {
		slog.Error("JWT_SECRET must be set in production environment")
		os.Exit(1)
	}

	if cfg.GoogleClientID == "" {
		slog.Warn("GOOGLE_CLIENT_ID not set, Google login will reject every token")
	}

	return cfg, nil
}

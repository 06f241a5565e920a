package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAppName         = "BancoCore"
	defaultAppEnv          = "development"
	defaultPort            = "8080"
	defaultLogLevel        = "info"
	defaultShutdownPeriod  = 10 * time.Second
	defaultAccessTokenTTL  = 15 * time.Minute
	defaultRefreshTokenTTL = 7 * 24 * time.Hour
	defaultIdempotencyTTL  = 24 * time.Hour
)

// Config captures application runtime configuration loaded from environment variables.
type Config struct {
	AppName         string
	AppEnv          string
	Port            string
	LogLevel        string
	DatabaseURL     string
	RedisURL        string
	JWTSecret       string
	RefreshSecret   string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	IdempotencyTTL  time.Duration
	ShutdownPeriod  time.Duration
}

// Load reads configuration from the environment, after sourcing an optional
// .env file, and populates a Config instance. DATABASE_URL, REDIS_URL and
// JWT_SECRET are mandatory outside of development.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		AppName:         getEnv("APP_NAME", defaultAppName),
		AppEnv:          getEnv("APP_ENV", defaultAppEnv),
		Port:            getEnv("PORT", defaultPort),
		LogLevel:        strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RedisURL:        os.Getenv("REDIS_URL"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		RefreshSecret:   os.Getenv("REFRESH_SECRET"),
		AccessTokenTTL:  defaultAccessTokenTTL,
		RefreshTokenTTL: defaultRefreshTokenTTL,
		IdempotencyTTL:  defaultIdempotencyTTL,
		ShutdownPeriod:  defaultShutdownPeriod,
	}

	durations := []struct {
		envVar string
		target *time.Duration
	}{
		{"ACCESS_TOKEN_TTL", &cfg.AccessTokenTTL},
		{"REFRESH_TOKEN_TTL", &cfg.RefreshTokenTTL},
		{"IDEMPOTENCY_TTL", &cfg.IdempotencyTTL},
		{"SHUTDOWN_TIMEOUT", &cfg.ShutdownPeriod},
	}
	for _, d := range durations {
		if v := os.Getenv(d.envVar); v != "" {
			parsed, err := time.ParseDuration(v)
			if err != nil {
				return Config{}, fmt.Errorf("invalid %s: %w", d.envVar, err)
			}
			*d.target = parsed
		}
	}

	if cfg.RefreshSecret == "" {
		cfg.RefreshSecret = cfg.JWTSecret
	}

	if !cfg.IsDev() {
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("DATABASE_URL must be set when APP_ENV=%s", cfg.AppEnv)
		}
		if cfg.RedisURL == "" {
			return Config{}, fmt.Errorf("REDIS_URL must be set when APP_ENV=%s", cfg.AppEnv)
		}
		if cfg.JWTSecret == "" {
			return Config{}, fmt.Errorf("JWT_SECRET must be set when APP_ENV=%s", cfg.AppEnv)
		}
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-secret"
		cfg.RefreshSecret = "dev-refresh-secret"
	}

	return cfg, nil
}

// IsDev reports whether the application runs in a development environment.
func (c Config) IsDev() bool {
	switch strings.ToLower(c.AppEnv) {
	case "dev", "development", "local":
		return true
	default:
		return false
	}
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

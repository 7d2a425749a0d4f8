package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"homewidget/internal/pkg/ratelimit"
)

const (
	defaultListenAddr   = ":8080"
	defaultDatabaseURL  = "homewidget.db"
	defaultJWTSecret    = "change-me-jwt-secret"
	defaultAccessTTL    = "30m"
	defaultRefreshTTL   = "336h" // 14 days
	defaultLoginLimit   = "5/60"
	defaultRefreshLimit = "10/600"
	defaultFeedLimit    = "60/60"
	defaultSweepEvery   = "1h"

	minProdAccessTTL  = 5 * time.Minute
	minProdRefreshTTL = 7 * 24 * time.Hour
)

// Config carries everything the process needs, loaded once at startup.
// Validation is fail-fast: a malformed rate rule or an insecure prod value
// stops the process before it serves a single request.
type Config struct {
	AppEnv      string
	ListenAddr  string
	DatabaseURL string
	RedisAddr   string

	JWTSecret  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	LoginRate   ratelimit.Rule
	RefreshRate ratelimit.Rule
	FeedRate    ratelimit.Rule

	SweepInterval time.Duration
}

// IsProdLike reports whether rate limiting and strict secret checks apply.
func (c *Config) IsProdLike() bool {
	env := strings.ToLower(strings.TrimSpace(c.AppEnv))
	return env == "prod" || env == "production" || env == "release"
}

func Load() (*Config, error) {
	cfg := &Config{}

	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.ListenAddr = strings.TrimSpace(getEnv("LISTEN_ADDR", defaultListenAddr))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.RedisAddr = strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	cfg.JWTSecret = strings.TrimSpace(getEnv("JWT_SECRET", defaultJWTSecret))

	var err error
	if cfg.AccessTTL, err = parseDurationEnv("ACCESS_TOKEN_TTL", defaultAccessTTL); err != nil {
		return nil, err
	}
	if cfg.RefreshTTL, err = parseDurationEnv("REFRESH_TOKEN_TTL", defaultRefreshTTL); err != nil {
		return nil, err
	}
	if cfg.SweepInterval, err = parseDurationEnv("TOKEN_SWEEP_INTERVAL", defaultSweepEvery); err != nil {
		return nil, err
	}

	if cfg.LoginRate, err = parseRuleEnv("LOGIN_RATE_LIMIT", defaultLoginLimit); err != nil {
		return nil, err
	}
	if cfg.RefreshRate, err = parseRuleEnv("REFRESH_RATE_LIMIT", defaultRefreshLimit); err != nil {
		return nil, err
	}
	if cfg.FeedRate, err = parseRuleEnv("FEED_RATE_LIMIT", defaultFeedLimit); err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.AccessTTL <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_TTL must be > 0")
	}
	if cfg.RefreshTTL <= 0 {
		return fmt.Errorf("REFRESH_TOKEN_TTL must be > 0")
	}
	if cfg.SweepInterval <= 0 {
		return fmt.Errorf("TOKEN_SWEEP_INTERVAL must be > 0")
	}

	if cfg.IsProdLike() {
		if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if cfg.AccessTTL < minProdAccessTTL {
			return fmt.Errorf("in prod/release ACCESS_TOKEN_TTL must be at least %s", minProdAccessTTL)
		}
		if cfg.RefreshTTL < minProdRefreshTTL {
			return fmt.Errorf("in prod/release REFRESH_TOKEN_TTL must be at least %s", minProdRefreshTTL)
		}
	}

	return nil
}

func parseRuleEnv(name, fallback string) (ratelimit.Rule, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	rule, err := ratelimit.ParseRule(value)
	if err != nil {
		return ratelimit.Rule{}, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return rule, nil
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment.
//
// Environment variables:
//   - PORT: listen port (default 5050)
//   - DATABASE_URL: Postgres DSN (required)
//   - JWT_SECRET: HMAC key for access/refresh tokens (required)
//   - ACCESS_TOKEN_TTL / REFRESH_TOKEN_TTL: token lifetimes (default 5m / 24h)
//   - CORS_ORIGINS: comma-separated allow-list
//   - RATE_LIMIT_RPS / RATE_LIMIT_BURST: per-IP limit on /api/auth
//   - EXPIRY_SWEEP_SCHEDULE: cron schedule for expiring stale emergency requests
//   - LOG_LEVEL / DB_LOG_LEVEL: logrus level and GORM logger level
type Config struct {
	Port        string `env:"PORT,default=5050"`
	DatabaseURL string `env:"DATABASE_URL,required"`

	JWTSecret       string        `env:"JWT_SECRET,required"`
	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL,default=5m"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL,default=24h"`

	CORSOrigins string `env:"CORS_ORIGINS,default=http://localhost:8081"`

	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS,default=5"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST,default=10"`

	ExpirySweepSchedule string `env:"EXPIRY_SWEEP_SCHEDULE,default=@every 5m"`

	LogLevel   string `env:"LOG_LEVEL,default=info"`
	DBLogLevel string `env:"DB_LOG_LEVEL,default=warn"`
}

// Load reads .env.local and .env when present, then decodes the environment.
func Load() (Config, error) {
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv decodes the process environment without touching dotenv files.
func FromEnv() (Config, error) {
	var cfg Config
	if err := envdecode.StrictDecode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if len(c.JWTSecret) < 32 {
		errs = append(errs, errors.New("JWT_SECRET must be at least 32 bytes"))
	}
	if c.AccessTokenTTL <= 0 {
		errs = append(errs, errors.New("ACCESS_TOKEN_TTL must be positive"))
	}
	if c.RefreshTokenTTL < c.AccessTokenTTL {
		errs = append(errs, errors.New("REFRESH_TOKEN_TTL must not be shorter than ACCESS_TOKEN_TTL"))
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive"))
	}
	return errors.Join(errs...)
}

// AllowedOrigins splits CORS_ORIGINS into a set.
func (c Config) AllowedOrigins() map[string]struct{} {
	out := map[string]struct{}{}
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out[o] = struct{}{}
		}
	}
	return out
}

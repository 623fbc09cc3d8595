package config_test

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/EmpoweredVote/BloodBank-Backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "0123456789abcdef0123456789abcdef"

// unsetEnv clears variables for the duration of the test.
func unsetEnv(t *testing.T, names ...string) {
	t.Helper()
	for _, n := range names {
		t.Setenv(n, "")
		os.Unsetenv(n)
	}
}

func TestFromEnvDefaults(t *testing.T) {
	unsetEnv(t, "PORT", "ACCESS_TOKEN_TTL", "REFRESH_TOKEN_TTL", "EXPIRY_SWEEP_SCHEDULE", "RATE_LIMIT_BURST")
	t.Setenv("DATABASE_URL", "postgres://localhost/bloodbank")
	t.Setenv("JWT_SECRET", secret)

	cfg, err := config.FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "5050", cfg.Port)
	assert.Equal(t, 5*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 24*time.Hour, cfg.RefreshTokenTTL)
	assert.Equal(t, "@every 5m", cfg.ExpirySweepSchedule)
	assert.Equal(t, 10, cfg.RateLimitBurst)
}

func TestFromEnvRequiresDatabaseURL(t *testing.T) {
	unsetEnv(t, "DATABASE_URL")
	t.Setenv("JWT_SECRET", secret)

	_, err := config.FromEnv()
	assert.Error(t, err)
}

func TestValidateCollectsProblems(t *testing.T) {
	cfg := config.Config{
		JWTSecret:       "short",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: time.Minute,
		RateLimitRPS:    1,
		RateLimitBurst:  1,
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "JWT_SECRET"))
	assert.True(t, strings.Contains(err.Error(), "REFRESH_TOKEN_TTL"))
}

func TestAllowedOrigins(t *testing.T) {
	cfg := config.Config{CORSOrigins: "http://localhost:8081, https://app.example.org ,"}
	origins := cfg.AllowedOrigins()
	assert.Len(t, origins, 2)
	assert.Contains(t, origins, "https://app.example.org")
}

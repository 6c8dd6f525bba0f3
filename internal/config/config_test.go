package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DB_PATH", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("CACHE_TTL_SECONDS", "")

	cfg := Load()
	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, "./data/diagnostics.db", cfg.DBPath)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, 300, cfg.CacheTTL)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", ":9999")
	t.Setenv("DB_PATH", "/tmp/test.db")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("CACHE_TTL_SECONDS", "60")

	cfg := Load()
	assert.Equal(t, ":9999", cfg.Port)
	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 60, cfg.CacheTTL)
}

func TestLoadIgnoresBadTTL(t *testing.T) {
	t.Setenv("CACHE_TTL_SECONDS", "not-a-number")

	cfg := Load()
	assert.Equal(t, 300, cfg.CacheTTL)
}

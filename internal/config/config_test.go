package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "Termio", cfg.BotName)
	assert.Equal(t, "+49", cfg.DefaultCountryCode)
	assert.Equal(t, "memory", cfg.SessionBackend)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "primary", cfg.CalendarID)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DEFAULT_COUNTRY_CODE", "43")
	t.Setenv("SESSION_BACKEND", "Redis")
	t.Setenv("SESSION_TTL", "1h")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "+43", cfg.DefaultCountryCode, "prefix should gain a leading +")
	assert.Equal(t, "redis", cfg.SessionBackend)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
}

func TestLoadBadDurationFallsBack(t *testing.T) {
	t.Setenv("SESSION_TTL", "not-a-duration")
	cfg := Load()
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
}

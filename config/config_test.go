package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, 24, cfg.SessionTTLHours)
	assert.NotEmpty(t, cfg.CORSOrigins)
	assert.Contains(t, cfg.DSN(), "sslmode=disable")
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9000")
	t.Setenv("SESSION_TTL_HOURS", "72")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg := Load()
	assert.Equal(t, "9000", cfg.AppPort)
	assert.Equal(t, 72, cfg.SessionTTLHours)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestBadTTLFallsBack(t *testing.T) {
	t.Setenv("SESSION_TTL_HOURS", "abc")
	assert.Equal(t, 24, Load().SessionTTLHours)

	t.Setenv("SESSION_TTL_HOURS", "-1")
	assert.Equal(t, 24, Load().SessionTTLHours)
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromViperDefaults(t *testing.T) {
	cfg := FromViper(newViper())

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.OpenAIModel)
	assert.Equal(t, 60*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 3, cfg.Guest.Limit)
	assert.Equal(t, 24*time.Hour, cfg.Guest.Window)
	assert.Equal(t, "local", cfg.Storage.Type)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
}

func TestFromViperEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://quill@localhost/quill")
	t.Setenv("GUEST_LIMIT_ENABLED", "true")
	t.Setenv("GUEST_LIMIT", "5")
	t.Setenv("GUEST_LIMIT_WINDOW", "1h")
	t.Setenv("LLM_PROVIDER", "Gemini")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://admin.example.com")
	t.Setenv("APP_BASE_URL", "https://app.example.com/")

	cfg := FromViper(newViper())

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "postgres://quill@localhost/quill", cfg.DatabaseURL)
	assert.True(t, cfg.Guest.Enabled)
	assert.Equal(t, 5, cfg.Guest.Limit)
	assert.Equal(t, time.Hour, cfg.Guest.Window)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, "https://app.example.com", cfg.AppBaseURL)
	assert.False(t, cfg.Stripe.Enabled())
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8090, cfg.Server.Port)
	assert.Equal(t, 20*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, 3, cfg.LLM.Retry.MaxAttempts)
	assert.Equal(t, "tr", cfg.Quiz.Locale)
	assert.Equal(t, 5, cfg.Quiz.DefaultQuestionCount)
	assert.Equal(t, "demo@example.com", cfg.Auth.DemoEmail)
	assert.Equal(t, 15*time.Minute, cfg.Auth.JWT.AccessTokenTTL)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("APP_LLM_PROVIDER", "anthropic")
	t.Setenv("APP_QUIZ_LOCALE", "en")
	t.Setenv("GEMINI_API_KEY", "gemini-key")
	t.Setenv("ANTHROPIC_API_KEY", "anthropic-key")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("JWT_SECRET_KEY", "jwt-secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, "en", cfg.Quiz.Locale)
	assert.Equal(t, "gemini-key", cfg.LLM.Gemini.APIKey)
	assert.Equal(t, "anthropic-key", cfg.LLM.Anthropic.APIKey)
	assert.Equal(t, "secret", cfg.DB.Password)
	assert.Equal(t, "jwt-secret", cfg.Auth.JWT.SecretKey)
}

func TestGetDSN(t *testing.T) {
	cfg := &Config{DB: DBConfig{User: "quiz", Password: "pw", Host: "db", Port: 1521, DBName: "FREEPDB1"}}
	assert.Equal(t, "oracle://quiz:pw@db:1521/FREEPDB1", cfg.GetDSN())
}

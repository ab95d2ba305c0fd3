package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setDatabaseEnv(t *testing.T) {
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "postgres")
	t.Setenv("DB_PASS", "secret")
	t.Setenv("DB_NAME", "contacts")
}

func TestFromEnvDefaults(t *testing.T) {
	setDatabaseEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, time.Hour, cfg.Token.AccessTokenTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.Token.EmailTokenTTL)
	assert.Equal(t, bcrypt.DefaultCost, cfg.Token.HashCost)
	assert.Equal(t, "mailgun", cfg.Mail.Provider)
	assert.Equal(t, 10, cfg.RateLimit.MePerMinute)
	assert.Equal(t, int32(5), cfg.Database.MinConns)
}

func TestFromEnvOverrides(t *testing.T) {
	setDatabaseEnv(t)
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("JWT_EXPIRATION_SECONDS", "120")
	t.Setenv("MAIL_TOKEN_EXP_DAYS", "1")
	t.Setenv("MAIL_PROVIDER", "SMTP")
	t.Setenv("HASH_COST", "99")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("PUBLIC_BASE_URL", "https://api.example/")
	t.Setenv("VERIFY_EMAIL_MX", "yes")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 2*time.Minute, cfg.Token.AccessTokenTTL)
	assert.Equal(t, 24*time.Hour, cfg.Token.EmailTokenTTL)
	assert.Equal(t, "smtp", cfg.Mail.Provider)
	assert.Equal(t, bcrypt.DefaultCost, cfg.Token.HashCost, "out of range cost falls back to the default")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowOrigins)
	assert.Equal(t, "https://api.example", cfg.PublicBaseURL)
	assert.True(t, cfg.VerifyEmailMX)
}

func TestFromEnvMissingDatabase(t *testing.T) {
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_USER", "")

	_, err := FromEnv()
	assert.ErrorIs(t, err, ErrMissingDatabaseConfig)
}

func TestFromEnvBlankOriginsFallBackToDefault(t *testing.T) {
	setDatabaseEnv(t)
	t.Setenv("CORS_ALLOWED_ORIGINS", " , ")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.AllowOrigins)
}

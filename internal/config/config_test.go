package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const validConfig = `
server:
  port: "8080"
  mode: debug
database:
  url: "postgres://localhost/test"
auth:
  jwt_secret: "file-secret"
cors:
  allowed_origins:
    - "http://localhost:3000"
`

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, "postgres://localhost/test", cfg.Database.URL)
	assert.Equal(t, "file-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)

	// Unspecified values get their defaults.
	assert.Equal(t, 7*24, cfg.Auth.TokenTTLHours)
	assert.Equal(t, 5, cfg.Auth.LoginMaxAttempts)
	assert.Equal(t, 5, cfg.Auth.LoginWindowMinutes)
	assert.Equal(t, "uploads", cfg.Uploads.Dir)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("JWT_TTL_HOURS", "24")
	t.Setenv("FRONTEND_URLS", "https://a.example.com, https://b.example.com")

	cfg, err := LoadConfig(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Server.Port)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 24, cfg.Auth.TokenTTLHours)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)
}

func TestLoadConfigMissingSecret(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, `
database:
  url: "postgres://localhost/test"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt secret")
}

func TestLoadConfigMissingDatabaseURL(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, `
auth:
  jwt_secret: "s"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database url")
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

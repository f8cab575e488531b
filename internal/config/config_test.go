package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("QUIZ_TOKEN_FILE", filepath.Join(t.TempDir(), "token"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.RequestTimeout())
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "127.0.0.1:8080", cfg.Stub.Addr())
}

func TestLoad_EnvOverrides(t *testing.T) {
	tokenFile := filepath.Join(t.TempDir(), "cred")
	t.Setenv("QUIZ_API_BASE_URL", "https://quiz.example.com")
	t.Setenv("QUIZ_TOKEN_FILE", tokenFile)
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "5")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://quiz.example.com", cfg.API.BaseURL)
	assert.Equal(t, tokenFile, cfg.Session.TokenFile)
	assert.Equal(t, 5*time.Second, cfg.API.RequestTimeout())
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("QUIZ_TOKEN_FILE", filepath.Join(t.TempDir(), "token"))
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.API.RequestTimeoutSeconds)
}

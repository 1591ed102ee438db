package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ABASTO_API_URL", "https://api.abasto.test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.abasto.test", cfg.APIURL)
	assert.Equal(t, "~/.local/share/abasto", cfg.StateDir)
	assert.Equal(t, time.Minute, cfg.SessionCheckEvery)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ABASTO_API_URL", "http://127.0.0.1:8080")
	t.Setenv("ABASTO_STATE_DIR", "/var/lib/abasto")
	t.Setenv("ABASTO_SESSION_CHECK", "30s")
	t.Setenv("ABASTO_LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:8080", cfg.APIURL)
	assert.Equal(t, "/var/lib/abasto", cfg.StateDir)
	assert.Equal(t, 30*time.Second, cfg.SessionCheckEvery)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_MissingAPIURL(t *testing.T) {
	t.Setenv("ABASTO_API_URL", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_BlankAPIURL(t *testing.T) {
	t.Setenv("ABASTO_API_URL", "   ")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ABASTO_API_URL")
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://localhost:5000", c.APIBaseURL)
	assert.Equal(t, "reeldesk.db", c.StateDSN)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, 2, c.VerifyRetries)
	assert.Equal(t, 500*time.Millisecond, c.VerifyRetryDelay)
	assert.Equal(t, "/", c.RedirectTo)
	assert.True(t, c.ShowLoading)
	assert.Equal(t, "info", c.LogLevel)
}

func TestLoad_NoSourcesKeepsDefaults(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)

	var want Config
	want.LoadDefaults()
	assert.Equal(t, want, *cfg)
}

func TestLoad_Precedence(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"api_base_url":    "http://json:1",
		"state_dsn":       "json.db",
		"request_timeout": "3s",
	})
	t.Setenv("REELDESK_API_URL", "http://env:2")
	t.Setenv("REELDESK_VERIFY_RETRIES", "7")

	cfg, err := Load([]string{"-c", path, "-a", "http://flag:3", "positional"})
	require.NoError(t, err)

	assert.Equal(t, "http://flag:3", cfg.APIBaseURL, "flags beat env and json")
	assert.Equal(t, 7, cfg.VerifyRetries, "env beats defaults")
	assert.Equal(t, "json.db", cfg.StateDSN, "json beats defaults")
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
}

func TestLoad_BadEnvValue(t *testing.T) {
	t.Setenv("REELDESK_REQUEST_TIMEOUT", "soon")

	_, err := Load(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, 5*time.Minute, cfg.Tracking.SilenceThreshold)
	assert.Equal(t, 10, cfg.Tracking.MinClipboardChars)
	assert.Equal(t, "dev1", cfg.Tracking.DefaultUserID)
	assert.True(t, cfg.RateLimit.Enabled)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("SILENCE_THRESHOLD", "90s")
	t.Setenv("AI_MODEL", "gemini-2.0-pro")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Server.Port)
	assert.Equal(t, 90*time.Second, cfg.Tracking.SilenceThreshold)
	assert.Equal(t, "gemini-2.0-pro", cfg.AI.Model)
}

func TestDefaultMatchesLoadDefaults(t *testing.T) {
	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default().Tracking, loaded.Tracking)
	assert.Equal(t, Default().RateLimit, loaded.RateLimit)
}

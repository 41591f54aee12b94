package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://coach@localhost/coach")
	t.Setenv("ENGINE_PROVIDER", "")
	t.Setenv("ENGINE_MODEL", "")
	t.Setenv("ENGINE_TIMEOUT_SECONDS", "")
	t.Setenv("ENGINE_TEMPERATURE", "")
	t.Setenv("CORS_ORIGINS", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ProviderOpenAI, cfg.EngineProvider)
	assert.Equal(t, "gpt-4", cfg.EngineModel)
	assert.Equal(t, 60*time.Second, cfg.EngineTimeout)
	assert.InDelta(t, 0.7, cfg.EngineTemp, 1e-9)
	assert.Equal(t, 20, cfg.DBMaxOpenConns)
}

func TestLoadConfigRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfigGeminiModelDefault(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://coach@localhost/coach")
	t.Setenv("ENGINE_PROVIDER", "Gemini")
	t.Setenv("ENGINE_MODEL", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ProviderGemini, cfg.EngineProvider)
	assert.Equal(t, "gemini-1.5-flash", cfg.EngineModel)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://coach@localhost/coach")

	t.Run("provider", func(t *testing.T) {
		t.Setenv("ENGINE_PROVIDER", "carrier-pigeon")
		_, err := LoadConfig()
		require.Error(t, err)
	})
	t.Run("timeout", func(t *testing.T) {
		t.Setenv("ENGINE_PROVIDER", "")
		t.Setenv("ENGINE_TIMEOUT_SECONDS", "soon")
		_, err := LoadConfig()
		require.Error(t, err)
	})
	t.Run("temperature", func(t *testing.T) {
		t.Setenv("ENGINE_PROVIDER", "")
		t.Setenv("ENGINE_TIMEOUT_SECONDS", "")
		t.Setenv("ENGINE_TEMPERATURE", "warm")
		_, err := LoadConfig()
		require.Error(t, err)
	})
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"http://a", "http://b"}, splitList(" http://a, ,http://b "))
	assert.Nil(t, splitList(""))
}

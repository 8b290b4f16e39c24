package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvOverrides(t *testing.T) {
	t.Run("CHATLIST_BASE_URL replaces the collection", func(t *testing.T) {
		t.Setenv("CHATLIST_BASE_URL", "http://collection:8080/chats")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, "http://collection:8080/chats", cfg.Gateway.BaseURL)
	})

	t.Run("empty variables leave values alone", func(t *testing.T) {
		t.Setenv("CHATLIST_BASE_URL", "")
		t.Setenv("CHATLIST_DIAG_DB", "")

		cfg := DefaultConfig()
		cfg.applyEnvOverrides()

		assert.Equal(t, DefaultBaseURL, cfg.Gateway.BaseURL)
		assert.Equal(t, "diagnostics.db", cfg.Diagnostics.DatabasePath)
	})

	t.Run("diagnostics, level and metrics", func(t *testing.T) {
		t.Setenv("CHATLIST_DIAG_DB", "/tmp/diag.db")
		t.Setenv("CHATLIST_LOG_LEVEL", "debug")
		t.Setenv("CHATLIST_METRICS_ADDR", ":9102")

		cfg := &Config{}
		cfg.applyEnvOverrides()

		assert.Equal(t, "/tmp/diag.db", cfg.Diagnostics.DatabasePath)
		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, ":9102", cfg.Metrics.ListenAddr)
	})
}

func TestLoad_EnvWinsOverFile(t *testing.T) {
	path := t.TempDir() + "/config.yaml"
	cfg := DefaultConfig()
	cfg.Gateway.BaseURL = "http://from-file/chats"
	require.NoError(t, cfg.Save(path))

	t.Setenv("CHATLIST_BASE_URL", "http://from-env/chats")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://from-env/chats", loaded.Gateway.BaseURL)
}

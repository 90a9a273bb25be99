package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent.yaml")

	t.Run("loads default configuration", func(t *testing.T) {
		cfg, err := Load(missing)

		require.NoError(t, err)
		assert.Equal(t, ":8080", cfg.Server.Addr)
		assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
		assert.Equal(t, 15*time.Second, cfg.Server.ShutdownTimeout)

		assert.Equal(t, "huggingface", cfg.Classifier.Backend)
		assert.Empty(t, cfg.Classifier.Model)
		assert.Empty(t, cfg.Classifier.BaseURL)
		assert.Equal(t, 60*time.Second, cfg.Classifier.Timeout)
		assert.Equal(t, 2*time.Minute, cfg.Classifier.LoadTimeout)

		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "json", cfg.Log.Format)
	})

	t.Run("reads yaml file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		yml := `
server:
  addr: ":9000"
classifier:
  backend: gemini
  model: gemini-2.0-flash
  timeout: 5s
log:
  format: console
`
		require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))

		cfg, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, ":9000", cfg.Server.Addr)
		assert.Equal(t, "gemini", cfg.Classifier.Backend)
		assert.Equal(t, "gemini-2.0-flash", cfg.Classifier.Model)
		assert.Equal(t, 5*time.Second, cfg.Classifier.Timeout)
		assert.Equal(t, "console", cfg.Log.Format)
		assert.Equal(t, "info", cfg.Log.Level)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("log:\n  level: warn\n"), 0o600))

		t.Setenv("TWEETSENSE_LOG__LEVEL", "debug")
		t.Setenv("TWEETSENSE_CLASSIFIER__API_TOKEN", "hf_secret")
		t.Setenv("TWEETSENSE_SERVER__ADDR", "127.0.0.1:7070")

		cfg, err := Load(path)

		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, "hf_secret", cfg.Classifier.APIToken)
		assert.Equal(t, "127.0.0.1:7070", cfg.Server.Addr)
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0o600))

		_, err := Load(path)

		assert.Error(t, err)
	})
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "classifier.api_token", envKey("TWEETSENSE_CLASSIFIER__API_TOKEN"))
	assert.Equal(t, "log.level", envKey("TWEETSENSE_LOG__LEVEL"))
}

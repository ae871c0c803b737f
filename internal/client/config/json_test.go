package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/sweetshop/internal/flagx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	t.Setenv(flagx.ConfigEnvVar, "")

	full := writeTempJSON(t, map[string]any{
		"api_base_url":       "http://shop.example:9000",
		"store_path":         "/var/lib/sweetshop.db",
		"notification_delay": "10s",
		"request_timeout":    "30s",
		"log_level":          "debug",
		"log_backend":        "zap",
	})

	t.Run("loads every field", func(t *testing.T) {
		cfg := &Config{}
		parseJson(cfg, []string{"-config", full})

		assert.Equal(t, "http://shop.example:9000", cfg.APIBaseURL)
		assert.Equal(t, "/var/lib/sweetshop.db", cfg.StorePath)
		assert.Equal(t, 10*time.Second, cfg.NotificationDelay)
		assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "zap", cfg.LogBackend)
	})

	t.Run("missing keys keep current values", func(t *testing.T) {
		partial := writeTempJSON(t, map[string]any{"request_timeout": "0s"})

		cfg := &Config{}
		cfg.LoadDefaults()
		cfg.RequestTimeout = time.Minute
		parseJson(cfg, []string{"-c", partial})

		assert.Equal(t, "http://localhost:8080", cfg.APIBaseURL)
		assert.Equal(t, 3*time.Second, cfg.NotificationDelay)
		assert.Zero(t, cfg.RequestTimeout)
	})

	t.Run("env var selects the file", func(t *testing.T) {
		t.Setenv(flagx.ConfigEnvVar, full)

		cfg := &Config{}
		parseJson(cfg, nil)

		assert.Equal(t, "http://shop.example:9000", cfg.APIBaseURL)
	})

	t.Run("no file leaves config untouched", func(t *testing.T) {
		cfg := &Config{APIBaseURL: "keep"}
		parseJson(cfg, nil)
		assert.Equal(t, "keep", cfg.APIBaseURL)
	})

	t.Run("invalid JSON panics", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ not json`), 0o600))

		require.Panics(t, func() { parseJson(&Config{}, []string{"-c", bad}) })
	})

	t.Run("missing file panics", func(t *testing.T) {
		require.Panics(t, func() { parseJson(&Config{}, []string{"-c", "/nonexistent/cfg.json"}) })
	})
}

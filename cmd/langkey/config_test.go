package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		cfg, err := loadConfig("", false, map[string]string{})
		require.NoError(t, err)
		require.Equal(t, defaultConfig(), cfg)
		require.NoError(t, cfg.Validate())
	})

	t.Run("missing optional file", func(t *testing.T) {
		t.Parallel()

		_, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"), false, map[string]string{})
		require.NoError(t, err)
	})

	t.Run("missing required file", func(t *testing.T) {
		t.Parallel()

		_, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"), true, map[string]string{})
		require.Error(t, err)
	})

	t.Run("file then environment", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "langkey.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
root: /srv/app
default_locale: es
lang_paths: [resources/lang, "i18n/{locale}/php"]
cache:
  backend: redis
  redis_url: redis://localhost:6379/0
http:
  address: ":9000"
  shutdown_timeout: 5s
watch:
  enabled: false
  flush_schedule: "@every 10m"
log:
  level: debug
sentry:
  dsn: https://key@sentry.example.com/1
`), 0o600))

		cfg, err := loadConfig(path, true, map[string]string{
			"LANGKEY_DEFAULT_LOCALE":     "fr",
			"LANGKEY_CACHE_MAX_ENTRIES":  "64",
			"LANGKEY_LOG_FORMAT":         "json",
			"LANGKEY_LANG_PATHS":         "lang,languages",
			"LANGKEY_SENTRY_ENVIRONMENT": "staging",
		})
		require.NoError(t, err)

		require.Equal(t, "/srv/app", cfg.Root)
		require.Equal(t, "fr", cfg.DefaultLocale)
		require.Equal(t, []string{"lang", "languages"}, cfg.LangPaths)
		require.Equal(t, "lang", cfg.FallbackPath)
		require.Equal(t, backendRedis, cfg.Cache.Backend)
		require.Equal(t, 64, cfg.Cache.MaxEntries)
		require.Equal(t, ":9000", cfg.HTTP.Address)
		require.Equal(t, 5*time.Second, cfg.HTTP.ShutdownTimeout)
		require.False(t, cfg.Watch.Enabled)
		require.Equal(t, "@every 10m", cfg.Watch.FlushSchedule)
		require.Equal(t, "debug", cfg.Log.Level)
		require.Equal(t, "json", cfg.Log.Format)
		require.Equal(t, "https://key@sentry.example.com/1", cfg.Sentry.DSN)
		require.Equal(t, "staging", cfg.Sentry.Environment)
		require.NoError(t, cfg.Validate())
	})

	t.Run("malformed file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("root: [unterminated"), 0o600))

		_, err := loadConfig(path, true, map[string]string{})
		require.Error(t, err)
	})

	t.Run("malformed environment", func(t *testing.T) {
		t.Parallel()

		_, err := loadConfig("", false, map[string]string{"LANGKEY_CACHE_MAX_ENTRIES": "lots"})
		require.Error(t, err)
	})
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()
	cfg.Cache.Backend = "memcached"
	require.ErrorIs(t, cfg.Validate(), errInvalidBackend)

	cfg = defaultConfig()
	cfg.Cache.Backend = backendRedis
	require.ErrorIs(t, cfg.Validate(), errMissingRedis)

	cfg = defaultConfig()
	cfg.Root = ""
	require.ErrorIs(t, cfg.Validate(), errEmptyRoot)
}

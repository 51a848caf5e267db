package main

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/langkey/internal"
	"github.com/dmitrymomot/langkey/pkg/logger"
)

// envPrefix namespaces every environment variable.
const envPrefix = "LANGKEY_"

// defaultConfigFile is read from the working directory when --config is not set.
const defaultConfigFile = ".langkey.yaml"

// Cache backends.
const (
	backendMemory = "memory"
	backendRedis  = "redis"
)

var (
	errInvalidBackend = errors.New("config: cache backend must be memory or redis")
	errMissingRedis   = errors.New("config: redis backend needs a redis url")
	errEmptyRoot      = errors.New("config: workspace root is empty")
)

// Config is the full CLI configuration. Sources apply in order: defaults,
// the YAML file, LANGKEY_* environment variables, then flags.
type Config struct {
	Root          string              `yaml:"root" env:"ROOT"`
	DefaultLocale string              `yaml:"default_locale" env:"DEFAULT_LOCALE"`
	LangPaths     []string            `yaml:"lang_paths" env:"LANG_PATHS" envSeparator:","`
	FallbackPath  string              `yaml:"fallback_path" env:"FALLBACK_PATH"`
	Cache         CacheConfig         `yaml:"cache" envPrefix:"CACHE_"`
	HTTP          HTTPConfig          `yaml:"http" envPrefix:"HTTP_"`
	Watch         WatchConfig         `yaml:"watch" envPrefix:"WATCH_"`
	Log           LogConfig           `yaml:"log" envPrefix:"LOG_"`
	Sentry        logger.SentryConfig `yaml:"sentry"`
}

// CacheConfig selects and tunes the parsed-file cache.
type CacheConfig struct {
	Backend     string `yaml:"backend" env:"BACKEND"`
	MaxEntries  int    `yaml:"max_entries" env:"MAX_ENTRIES"`
	RedisURL    string `yaml:"redis_url" env:"REDIS_URL"`
	RedisPrefix string `yaml:"redis_prefix" env:"REDIS_PREFIX"`
}

// HTTPConfig configures the API server.
type HTTPConfig struct {
	Address         string        `yaml:"address" env:"ADDRESS"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
}

// WatchConfig configures invalidation.
type WatchConfig struct {
	Enabled       bool   `yaml:"enabled" env:"ENABLED"`
	FlushSchedule string `yaml:"flush_schedule" env:"FLUSH_SCHEDULE"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Format string `yaml:"format" env:"FORMAT"`
}

func defaultConfig() Config {
	return Config{
		Root:          ".",
		DefaultLocale: internal.DefaultLocale,
		LangPaths:     slices.Clone(internal.DefaultLangPaths),
		FallbackPath:  internal.DefaultFallbackPath,
		Cache: CacheConfig{
			Backend: backendMemory,
		},
		HTTP: HTTPConfig{
			Address:         ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Watch: WatchConfig{
			Enabled: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// loadConfig builds the configuration from defaults, the YAML file at path
// and the environment. A missing file is an error only when required.
func loadConfig(path string, required bool, environ map[string]string) (Config, error) {
	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("config: parse %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist) && !required:
		default:
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	opts := env.Options{Prefix: envPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return cfg, fmt.Errorf("config: environment: %w", err)
	}

	return cfg, nil
}

// Validate reports configuration that cannot work.
func (c Config) Validate() error {
	if c.Root == "" {
		return errEmptyRoot
	}
	switch c.Cache.Backend {
	case backendMemory:
	case backendRedis:
		if c.Cache.RedisURL == "" {
			return errMissingRedis
		}
	default:
		return fmt.Errorf("%w, got %q", errInvalidBackend, c.Cache.Backend)
	}
	return nil
}

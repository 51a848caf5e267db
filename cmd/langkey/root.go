package main

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/langkey"
	"github.com/dmitrymomot/langkey/pkg/cache"
	"github.com/dmitrymomot/langkey/pkg/logger"
	"github.com/dmitrymomot/langkey/pkg/redis"
)

// cli holds state shared by all commands.
type cli struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	flags      flagOverrides

	cfg Config
	log *slog.Logger

	// redisCheck pings the cache backend; set by openStore for redis.
	redisCheck func(context.Context) error
}

// flagOverrides are applied on top of file and environment configuration,
// but only for flags the user actually set.
type flagOverrides struct {
	root          string
	defaultLocale string
	logLevel      string
	logFormat     string
	cacheBackend  string
	redisURL      string
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	c := &cli{stdout: stdout, stderr: stderr, log: logger.NewNope()}

	root := &cobra.Command{
		Use:   "langkey",
		Short: "Resolve Laravel translation keys",
		Long: `langkey resolves Laravel translation keys such as auth.failed to their
values and source positions by reading lang/<locale>/*.php files.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&c.configPath, "config", "c", "", "config file (default "+defaultConfigFile+" if present)")
	pf.StringVarP(&c.flags.root, "root", "r", "", "workspace root")
	pf.StringVar(&c.flags.defaultLocale, "default-locale", "", "locale used when none is given")
	pf.StringVar(&c.flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&c.flags.logFormat, "log-format", "", "log format: text or json")
	pf.StringVar(&c.flags.cacheBackend, "cache", "", "cache backend: memory or redis")
	pf.StringVar(&c.flags.redisURL, "redis-url", "", "redis URL for the redis cache backend")

	root.AddCommand(
		c.resolveCommand(),
		c.allCommand(),
		c.localesCommand(),
		c.keysCommand(),
		c.extractCommand(),
		c.serveCommand(),
		c.watchCommand(),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	path, required := c.configPath, true
	if path == "" {
		path, required = defaultConfigFile, false
	}

	cfg, err := loadConfig(path, required, nil)
	if err != nil {
		return err
	}

	f := cmd.Flags()
	override := func(name string, dst *string, v string) {
		if f.Changed(name) {
			*dst = v
		}
	}
	override("root", &cfg.Root, c.flags.root)
	override("default-locale", &cfg.DefaultLocale, c.flags.defaultLocale)
	override("log-level", &cfg.Log.Level, c.flags.logLevel)
	override("log-format", &cfg.Log.Format, c.flags.logFormat)
	override("cache", &cfg.Cache.Backend, c.flags.cacheBackend)
	override("redis-url", &cfg.Cache.RedisURL, c.flags.redisURL)

	if err := cfg.Validate(); err != nil {
		return err
	}

	c.cfg = cfg
	c.log = c.newLogger()
	return nil
}

func (c *cli) newLogger(extractors ...logger.ContextExtractor) *slog.Logger {
	return logger.New(
		logger.WithLevel(logger.ParseLevel(c.cfg.Log.Level)),
		logger.WithFormat(c.cfg.Log.Format),
		logger.WithWriter(c.stderr),
		logger.WithExtractors(extractors...),
		logger.WithSentry(c.cfg.Sentry),
	)
}

// openStore builds the store and its cache backend. The returned close
// function releases both.
func (c *cli) openStore(ctx context.Context) (*langkey.Store, func(context.Context) error, error) {
	var (
		backend  cache.Cache
		closeAll = func(context.Context) error { return nil }
	)

	switch c.cfg.Cache.Backend {
	case backendRedis:
		client, err := redis.Open(ctx, c.cfg.Cache.RedisURL, redis.WithLogger(c.log))
		if err != nil {
			return nil, nil, err
		}
		var opts []cache.RedisOption
		if c.cfg.Cache.RedisPrefix != "" {
			opts = append(opts, cache.WithPrefix(c.cfg.Cache.RedisPrefix))
		}
		backend = cache.NewRedis(client, opts...)
		closeAll = redis.Shutdown(client)
		c.redisCheck = redis.Healthcheck(client)
	default:
		var opts []cache.MemoryOption
		if c.cfg.Cache.MaxEntries > 0 {
			opts = append(opts, cache.WithMaxEntries(c.cfg.Cache.MaxEntries))
		}
		backend = cache.NewMemory(opts...)
	}

	store := langkey.NewStore(c.cfg.Root,
		langkey.WithStoreLogger(c.log.With("component", "store")),
		langkey.WithCache(backend),
		langkey.WithDefaultLocale(c.cfg.DefaultLocale),
		langkey.WithLangPaths(c.cfg.LangPaths...),
		langkey.WithFallbackPath(c.cfg.FallbackPath),
	)

	return store, func(ctx context.Context) error {
		return errors.Join(store.Close(), closeAll(ctx))
	}, nil
}

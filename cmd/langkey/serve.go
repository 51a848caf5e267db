package main

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/langkey"
	"github.com/dmitrymomot/langkey/middlewares"
	"github.com/dmitrymomot/langkey/pkg/health"
	"github.com/dmitrymomot/langkey/pkg/watcher"
)

// lifecycle is a background component started before serving and stopped
// on shutdown.
type lifecycle struct {
	start func(context.Context) error
	stop  func(context.Context) error
}

func (c *cli) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the translation API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("addr") {
				c.cfg.HTTP.Address = addr
			}

			store, closeStore, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}

			parts, err := c.invalidators(store)
			if err != nil {
				_ = closeStore(cmd.Context())
				return err
			}

			checks := []langkey.HealthOption{
				langkey.WithReadinessCheck("lang_root", health.DirCheck(filepath.Dir(store.LangDir(store.DefaultLocale())))),
			}
			if c.redisCheck != nil {
				checks = append(checks, langkey.WithReadinessCheck("redis", c.redisCheck))
			}

			app := langkey.NewApp(
				langkey.WithCustomLogger(c.newLogger(middlewares.RequestIDExtractor()).With("component", "api")),
				langkey.WithMiddleware(
					middlewares.RequestID(),
					middlewares.Recover(),
					middlewares.Locale(store.Locales),
				),
				langkey.WithHandlers(langkey.NewAPI(store)),
				langkey.WithHealthChecks(checks...),
			)

			opts := []langkey.RunOption{
				langkey.WithContext(cmd.Context()),
				langkey.Logger(c.log),
				langkey.ShutdownTimeout(c.cfg.HTTP.ShutdownTimeout),
			}
			for _, p := range parts {
				opts = append(opts, langkey.StartupHook(p.start), langkey.ShutdownHook(p.stop))
			}
			opts = append(opts, langkey.ShutdownHook(closeStore))

			return app.Run(c.cfg.HTTP.Address, opts...)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (default :8080)")
	return cmd
}

func (c *cli) watchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Invalidate cached translations when language files change",
		Long: `watch follows the language directories and drops changed files from the
cache. It is useful with the redis backend, where the cache is shared with
running servers.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if c.cfg.Cache.Backend == backendMemory {
				c.log.WarnContext(ctx, "watching with the memory cache only affects this process")
			}

			store, closeStore, err := c.openStore(ctx)
			if err != nil {
				return err
			}

			// The watch command always watches, whatever the config says.
			c.cfg.Watch.Enabled = true
			parts, err := c.invalidators(store)
			if err != nil {
				_ = closeStore(ctx)
				return err
			}

			var started []lifecycle
			for _, p := range parts {
				if err := p.start(ctx); err != nil {
					return errors.Join(err, stopAll(started, c.cfg.HTTP.ShutdownTimeout), closeStore(context.Background()))
				}
				started = append(started, p)
			}

			<-ctx.Done()
			c.log.Info("stopping watcher")
			return errors.Join(stopAll(started, c.cfg.HTTP.ShutdownTimeout), closeStore(context.Background()))
		},
	}
}

// invalidators builds the file watcher and the scheduled flush that the
// configuration enables.
func (c *cli) invalidators(store *langkey.Store) ([]lifecycle, error) {
	var parts []lifecycle

	if c.cfg.Watch.Enabled {
		log := c.log.With("component", "watcher")
		w, err := watcher.New(store.Root(), store.LangPaths(),
			func(ctx context.Context, ev watcher.Event) {
				if err := store.InvalidateFile(ctx, ev.Path); err != nil {
					log.ErrorContext(ctx, "invalidation failed", slog.String("path", ev.Path), slog.Any("error", err))
					return
				}
				log.InfoContext(ctx, "translation file invalidated", slog.String("path", ev.Path), slog.String("op", string(ev.Op)))
			},
			watcher.WithLogger(log),
		)
		if err != nil {
			return nil, err
		}
		parts = append(parts, lifecycle{start: w.Start, stop: w.Shutdown})
	}

	if spec := c.cfg.Watch.FlushSchedule; spec != "" {
		s, err := watcher.Schedule(spec, store.Invalidate, watcher.WithScheduleLogger(c.log.With("component", "flush")))
		if err != nil {
			return nil, err
		}
		parts = append(parts, lifecycle{start: s.Start, stop: s.Shutdown})
	}

	return parts, nil
}

func stopAll(parts []lifecycle, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var errs []error
	for _, p := range parts {
		errs = append(errs, p.stop(ctx))
	}
	return errors.Join(errs...)
}

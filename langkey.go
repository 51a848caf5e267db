package langkey

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/langkey/internal"
	"github.com/dmitrymomot/langkey/pkg/cache"
	"github.com/dmitrymomot/langkey/pkg/health"
	"github.com/dmitrymomot/langkey/pkg/logger"
	"github.com/dmitrymomot/langkey/pkg/preview"
	"github.com/dmitrymomot/langkey/pkg/transkey"
)

// Type aliases - public API
type (
	// Store resolves translation keys against the language files of a workspace.
	Store = internal.Store

	// StoreOption configures a Store.
	StoreOption = internal.StoreOption

	// StoreStats are cumulative cache counters.
	StoreStats = internal.StoreStats

	// Translation is a resolved key with its declaration position.
	Translation = internal.Translation

	// KeyPath is a key split into its file and in-file path.
	KeyPath = transkey.KeyPath

	// Position is a 0-based line and column.
	Position = transkey.Position

	// App is the HTTP host of the translation API.
	App = internal.App

	// API is the handler serving the store over HTTP.
	API = internal.API

	// APIOption configures the API handler.
	APIOption = internal.APIOption

	// HoverResponse is the body of the hover endpoint.
	HoverResponse = internal.HoverResponse

	// Router is the interface handlers use to declare routes.
	Router = internal.Router

	// Context provides request/response access and helper methods.
	Context = internal.Context

	// Handler declares routes on a router.
	Handler = internal.Handler

	// HandlerFunc is the signature for route handlers.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc to add cross-cutting concerns.
	Middleware = internal.Middleware

	// ErrorHandler handles errors returned from handlers.
	ErrorHandler = internal.ErrorHandler

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// HealthOption configures health check endpoints.
	HealthOption = internal.HealthOption

	// ContextExtractor extracts a slog attribute from context.
	ContextExtractor = logger.ContextExtractor
)

// Sentinel errors, checked with errors.Is.
var (
	// ErrNotFound is wrapped by every failed lookup.
	ErrNotFound = transkey.ErrNotFound

	// ErrInvalidKey reports a key with an empty or unsafe file segment.
	ErrInvalidKey = transkey.ErrInvalidKey
)

// Store

// NewStore creates a store for the workspace rooted at root.
//
// Example:
//
//	store := langkey.NewStore(".", langkey.WithDefaultLocale("en"))
//	t, err := store.Resolve(ctx, "auth.failed", "")
func NewStore(root string, opts ...StoreOption) *Store {
	return internal.NewStore(root, opts...)
}

// WithStoreLogger sets the store logger. Defaults to a no-op logger.
func WithStoreLogger(l *slog.Logger) StoreOption {
	return internal.WithStoreLogger(l)
}

// WithCache sets the cache backend. Defaults to an unbounded in-memory cache.
//
// Example:
//
//	langkey.WithCache(cache.NewRedis(client, cache.WithPrefix("myapp")))
func WithCache(c cache.Cache) StoreOption {
	return internal.WithCache(c)
}

// WithLangPaths replaces the probed language directory templates.
// A template may contain {locale}; otherwise "/{locale}" is appended.
func WithLangPaths(paths ...string) StoreOption {
	return internal.WithLangPaths(paths...)
}

// WithFallbackPath sets the template used when no probed template exists.
func WithFallbackPath(path string) StoreOption {
	return internal.WithFallbackPath(path)
}

// WithDefaultLocale sets the locale used when a request names none.
func WithDefaultLocale(locale string) StoreOption {
	return internal.WithDefaultLocale(locale)
}

// SplitKey splits "file.path.to.leaf" at its first dot.
func SplitKey(key string) (KeyPath, error) {
	return transkey.SplitKey(key)
}

// ExtractKey returns the key of the first translation call in text, such as
// __('auth.failed') or @lang("auth.failed").
func ExtractKey(text string) (string, bool) {
	return transkey.ExtractKey(text)
}

// App

// NewApp creates the HTTP host.
//
// Example:
//
//	app := langkey.NewApp(
//	    langkey.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	    langkey.WithHandlers(langkey.NewAPI(store)),
//	)
//	err := app.Run(":8080")
func NewApp(opts ...Option) *App {
	return internal.New(opts...)
}

// NewAPI creates the translation API handler.
func NewAPI(store *Store, opts ...APIOption) *API {
	return internal.NewAPI(store, opts...)
}

// WithRenderer sets the HTML renderer for hover previews.
func WithRenderer(r *preview.Renderer) APIOption {
	return internal.WithRenderer(r)
}

// WithMiddleware adds global middleware to the application.
// Middleware is applied in the order provided.
func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
}

// WithHandlers registers handlers that declare routes.
func WithHandlers(h ...Handler) Option {
	return internal.WithHandlers(h...)
}

// WithErrorHandler replaces the JSON error handler.
func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

// WithNotFoundHandler sets a custom 404 handler.
func WithNotFoundHandler(h HandlerFunc) Option {
	return internal.WithNotFoundHandler(h)
}

// WithMethodNotAllowedHandler sets a custom 405 handler.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return internal.WithMethodNotAllowedHandler(h)
}

// WithHealthChecks enables /health/live and /health/ready.
//
// Example:
//
//	langkey.WithHealthChecks(
//	    langkey.WithReadinessCheck("lang", health.DirCheck(store.LangDir("en"))),
//	)
func WithHealthChecks(opts ...HealthOption) Option {
	return internal.WithHealthChecks(opts...)
}

// WithLogger creates a JSON logger with a component name and extractors.
func WithLogger(component string, extractors ...ContextExtractor) Option {
	return internal.WithLogger(component, extractors...)
}

// WithCustomLogger sets a fully custom logger.
func WithCustomLogger(l *slog.Logger) Option {
	return internal.WithCustomLogger(l)
}

// Health check options

// WithLivenessPath sets a custom liveness endpoint path.
func WithLivenessPath(path string) HealthOption {
	return internal.WithLivenessPath(path)
}

// WithReadinessPath sets a custom readiness endpoint path.
func WithReadinessPath(path string) HealthOption {
	return internal.WithReadinessPath(path)
}

// WithReadinessCheck adds a named readiness check.
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}

// Run options

// Address sets the HTTP server address.
// Defaults to ":8080".
func Address(addr string) RunOption {
	return internal.Address(addr)
}

// Logger sets the server lifecycle logger.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout sets the timeout for graceful shutdown.
// Defaults to 10 seconds.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// StartupHook registers a function run before the server accepts requests.
//
// Example:
//
//	langkey.StartupHook(fileWatcher.Start)
func StartupHook(fn func(context.Context) error) RunOption {
	return internal.StartupHook(fn)
}

// ShutdownHook registers a cleanup function to run during shutdown.
//
// Example:
//
//	langkey.ShutdownHook(redis.Shutdown(client))
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// WithContext sets a custom base context for signal handling.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}

// Context helpers

// ContextValue retrieves a typed value from the context.
// Returns the zero value of T if the key is not found or type assertion fails.
func ContextValue[T any](c Context, key any) T {
	if v, ok := c.Get(key).(T); ok {
		return v
	}
	var zero T
	return zero
}

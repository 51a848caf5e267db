// Package logger builds the slog loggers used across langkey.
//
// [New] returns a JSON or text logger writing to stderr by default, with
// optional context extractors and Sentry fan-out:
//
//	log := logger.New(
//		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
//		logger.WithFormat(cfg.LogFormat),
//		logger.WithExtractors(requestIDExtractor),
//		logger.WithSentry(logger.SentryConfig{DSN: cfg.SentryDSN}),
//	)
//
// # Context Extractors
//
// A [ContextExtractor] pulls one attribute out of a context on every log call,
// so request-scoped values end up on every record logged with that context:
//
//	requestIDExtractor := func(ctx context.Context) (slog.Attr, bool) {
//		if id := middlewares.GetRequestID(ctx); id != "" {
//			return slog.String("request_id", id), true
//		}
//		return slog.Attr{}, false
//	}
//
// [NewLogHandlerDecorator] applies extractors to any slog.Handler.
//
// # Sentry
//
// With a DSN configured, errors create Sentry issues and warnings are stored
// as logs. An empty DSN or a failed initialization falls back to local output
// only, so the same code path works in development.
//
// Library types in this module default to [NewNope].
package logger

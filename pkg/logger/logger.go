package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Option configures a logger built by New.
type Option func(*options)

type options struct {
	writer     io.Writer
	extractors []ContextExtractor
	sentry     SentryConfig
	level      slog.Level
	format     string
}

// WithLevel sets the minimum level written.
// Default: info.
func WithLevel(l slog.Level) Option {
	return func(o *options) {
		o.level = l
	}
}

// WithFormat selects "json" or "text" output.
// Default: json.
func WithFormat(format string) Option {
	return func(o *options) {
		o.format = strings.ToLower(format)
	}
}

// WithWriter sets the destination of log lines.
// Default: stderr, so command output on stdout stays clean.
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.writer = w
		}
	}
}

// WithExtractors adds context extractors applied to every record.
func WithExtractors(extractors ...ContextExtractor) Option {
	return func(o *options) {
		o.extractors = append(o.extractors, extractors...)
	}
}

// WithSentry forwards warnings and errors to Sentry when cfg.DSN is set.
func WithSentry(cfg SentryConfig) Option {
	return func(o *options) {
		o.sentry = cfg
	}
}

// New creates a logger from the given options.
//
//	log := logger.New(
//	    logger.WithLevel(slog.LevelDebug),
//	    logger.WithFormat("text"),
//	    logger.WithExtractors(requestIDExtractor),
//	)
func New(opts ...Option) *slog.Logger {
	o := &options{
		writer: os.Stderr,
		level:  slog.LevelInfo,
		format: "json",
	}
	for _, opt := range opts {
		opt(o)
	}

	hopts := &slog.HandlerOptions{Level: o.level}

	var h slog.Handler
	if o.format == "text" {
		h = slog.NewTextHandler(o.writer, hopts)
	} else {
		h = slog.NewJSONHandler(o.writer, hopts)
	}

	if sh := newSentryHandler(o.sentry, h); sh != nil {
		h = newMultiHandler(h, sh)
	}

	return slog.New(NewLogHandlerDecorator(h, o.extractors...))
}

// ParseLevel converts a level name ("debug", "info", "warn", "error") to a
// slog.Level. Unknown names map to info.
func ParseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return l
}

// NewNope creates a no-op logger that discards all output.
// Use this as a default when logging is not configured.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

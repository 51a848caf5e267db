package internal

import (
	"log/slog"

	"github.com/dmitrymomot/langkey/pkg/cache"
)

// Default language directory templates, relative to the workspace root, in
// probing order. A template without "{locale}" gets "/{locale}" appended.
var DefaultLangPaths = []string{
	"lang",
	"resources/lang",
	"resources/languages",
	"languages",
}

const (
	// DefaultFallbackPath is used when no probed directory exists.
	DefaultFallbackPath = "lang"

	// DefaultLocale is the locale whose directory anchors locale discovery.
	DefaultLocale = "en"
)

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithStoreLogger sets the store logger.
// Default: no-op logger.
func WithStoreLogger(l *slog.Logger) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCache sets the backend holding parsed files.
// Default: unbounded in-memory cache.
func WithCache(c cache.Cache) StoreOption {
	return func(s *Store) {
		if c != nil {
			s.cache = c
		}
	}
}

// WithLangPaths replaces the probed directory templates.
//
//	internal.WithLangPaths("app/lang/{locale}", "lang")
func WithLangPaths(paths ...string) StoreOption {
	return func(s *Store) {
		if len(paths) > 0 {
			s.langPaths = paths
		}
	}
}

// WithFallbackPath sets the template used when no probed directory exists.
// Default: "lang".
func WithFallbackPath(path string) StoreOption {
	return func(s *Store) {
		if path != "" {
			s.fallbackPath = path
		}
	}
}

// WithDefaultLocale sets the locale used when none is given and whose
// directory parent is listed to discover locales.
// Default: "en".
func WithDefaultLocale(locale string) StoreOption {
	return func(s *Store) {
		if locale != "" {
			s.defaultLocale = locale
		}
	}
}

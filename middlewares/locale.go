package middlewares

import (
	"slices"

	"github.com/dmitrymomot/langkey/internal"
	"github.com/dmitrymomot/langkey/pkg/i18n"
)

// LocaleConfig configures the Locale middleware.
type LocaleConfig struct {
	Locales      func() []string
	Fallback     string
	Extractor    internal.Extractor
	extractorSet bool
}

// LocaleOption configures LocaleConfig.
type LocaleOption func(*LocaleConfig)

// WithLocaleFallback sets the locale used when nothing matches.
// Defaults to empty, which leaves the choice to the store.
func WithLocaleFallback(locale string) LocaleOption {
	return func(cfg *LocaleConfig) {
		cfg.Fallback = locale
	}
}

// WithLocaleExtractor replaces the default extractor chain.
func WithLocaleExtractor(ext internal.Extractor) LocaleOption {
	return func(cfg *LocaleConfig) {
		cfg.Extractor = ext
		cfg.extractorSet = true
	}
}

// FromAcceptLanguage returns an ExtractorSource that negotiates the
// Accept-Language header against the available locales.
func FromAcceptLanguage(locales func() []string) internal.ExtractorSource {
	return func(c internal.Context) (string, bool) {
		header := c.Header("Accept-Language")
		if header == "" {
			return "", false
		}
		l := i18n.MatchLocale(header, locales(), "")
		return l, l != ""
	}
}

// FromLocaleHeader returns an ExtractorSource that reads an explicit
// locale header, accepted only when it names an available locale.
func FromLocaleHeader(name string, locales func() []string) internal.ExtractorSource {
	return func(c internal.Context) (string, bool) {
		v := c.Header(name)
		if v == "" || !slices.Contains(locales(), v) {
			return "", false
		}
		return v, true
	}
}

// Locale returns middleware that picks the preferred locale for a request
// and stores it for internal.Context.Locale. locales is called per request
// so directories added on disk are picked up.
//
// The default chain checks the X-Locale header, then Accept-Language.
//
//	internal.WithMiddleware(middlewares.Locale(store.Locales))
func Locale(locales func() []string, opts ...LocaleOption) internal.Middleware {
	cfg := &LocaleConfig{Locales: locales}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Locales == nil {
		cfg.Locales = func() []string { return nil }
	}
	if !cfg.extractorSet {
		cfg.Extractor = internal.NewExtractor(
			FromLocaleHeader("X-Locale", cfg.Locales),
			FromAcceptLanguage(cfg.Locales),
		)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			locale, ok := cfg.Extractor.Extract(c)
			if !ok {
				locale = cfg.Fallback
			}
			if locale != "" {
				c.Set(internal.LocaleKey{}, locale)
				c.SetHeader("Content-Language", locale)
			}
			return next(c)
		}
	}
}

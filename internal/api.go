package internal

import (
	"errors"
	"fmt"
	"maps"
	"net/http"
	"path/filepath"
	"slices"

	"github.com/dmitrymomot/langkey/pkg/i18n"
	"github.com/dmitrymomot/langkey/pkg/preview"
	"github.com/dmitrymomot/langkey/pkg/transkey"
)

// Hover formats.
const (
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// API serves the translation store over HTTP for editor integrations.
type API struct {
	store    *Store
	renderer *preview.Renderer
}

// APIOption configures the API handler.
type APIOption func(*API)

// WithRenderer sets the HTML renderer used for hover previews.
func WithRenderer(r *preview.Renderer) APIOption {
	return func(a *API) {
		if r != nil {
			a.renderer = r
		}
	}
}

// NewAPI creates the API handler.
//
//	app := internal.New(internal.WithHandlers(internal.NewAPI(store)))
func NewAPI(store *Store, opts ...APIOption) *API {
	a := &API{store: store}
	for _, opt := range opts {
		opt(a)
	}
	if a.renderer == nil {
		a.renderer = preview.NewRenderer()
	}
	return a
}

// Routes implements Handler.
func (a *API) Routes(r Router) {
	r.Route("/v1", func(r Router) {
		r.GET("/translations/{key}", a.translation)
		r.GET("/translations/{key}/all", a.allLocales)
		r.GET("/hover/{key}", a.hover)
		r.GET("/locales", a.locales)
		r.GET("/files/{file}/keys", a.keys)
		r.GET("/extract", a.extract)
		r.GET("/stats", a.stats)
		r.POST("/invalidate", a.invalidate)
	})
}

// HoverResponse is the body of the hover endpoint.
type HoverResponse struct {
	Key      string `json:"key"`
	Format   string `json:"format"`
	Contents string `json:"contents"`
}

func (a *API) translation(c Context) error {
	t, err := a.store.Resolve(c, c.Param("key"), a.locale(c))
	if err != nil {
		return notFound(err)
	}
	return c.JSON(http.StatusOK, t)
}

func (a *API) allLocales(c Context) error {
	return c.JSON(http.StatusOK, a.store.ResolveAll(c, c.Param("key")))
}

func (a *API) hover(c Context) error {
	key := c.Param("key")
	format := QueryDefault(c, "format", FormatMarkdown)
	if format != FormatMarkdown && format != FormatHTML {
		return ErrBadRequest(fmt.Sprintf("unsupported format %q", format), WithErrorCode("bad_format"))
	}

	var count *int
	if raw := c.Query("count"); raw != "" {
		n, ok := convertParam[int](raw)
		if !ok {
			return ErrBadRequest("count must be an integer", WithErrorCode("bad_count"))
		}
		count = &n
	}
	replace := QueryMap(c, "replace")

	all := a.store.ResolveAll(c, key)
	entries := make([]preview.Entry, 0, len(all))
	for _, locale := range slices.Sorted(maps.Keys(all)) {
		t := all[locale]
		value := t.Value
		if count != nil {
			chosen, err := i18n.Choose(value, *count, locale)
			if err != nil {
				c.LogDebug("plural selection failed", "key", key, "locale", locale, "error", err)
			} else {
				value = chosen
			}
		}
		entries = append(entries, preview.Entry{
			Locale:   locale,
			Value:    i18n.Replace(value, replace),
			Location: a.location(t),
		})
	}

	contents := preview.Markdown(key, entries)
	if format == FormatHTML {
		html, err := a.renderer.Render(contents)
		if err != nil {
			return ErrInternal("failed to render preview", WithError(err))
		}
		contents = html
	}

	return c.JSON(http.StatusOK, HoverResponse{Key: key, Format: format, Contents: contents})
}

func (a *API) locales(c Context) error {
	locales := a.store.Locales()
	if locales == nil {
		locales = []string{}
	}
	return c.JSON(http.StatusOK, locales)
}

func (a *API) keys(c Context) error {
	keys, err := a.store.Keys(c, c.Param("file"), a.locale(c))
	if err != nil {
		return notFound(err)
	}
	return c.JSON(http.StatusOK, keys)
}

func (a *API) extract(c Context) error {
	text := c.Query("text")
	if text == "" {
		return ErrBadRequest("text is required", WithErrorCode("missing_text"))
	}
	key, ok := transkey.ExtractKey(text)
	if !ok {
		return ErrNotFound("no translation call found", WithErrorCode("no_key"))
	}
	return c.JSON(http.StatusOK, map[string]string{"key": key})
}

func (a *API) stats(c Context) error {
	return c.JSON(http.StatusOK, a.store.Stats())
}

func (a *API) invalidate(c Context) error {
	var err error
	if file := c.Query("file"); file != "" {
		err = a.store.InvalidateFile(c, file)
	} else {
		err = a.store.Invalidate(c)
	}
	if err != nil {
		return ErrServiceUnavailable("cache invalidation failed", WithError(err))
	}
	return c.NoContent(http.StatusNoContent)
}

// requestLocale prefers the explicit query parameter over the locale
// negotiated by middleware.
var requestLocale = NewExtractor(FromQuery("locale"), FromLocale())

// locale returns the locale a request asks for. Empty means the store default.
func (a *API) locale(c Context) string {
	l, _ := requestLocale.Extract(c)
	return l
}

// location formats a declaration as a 1-based path:line:column relative to
// the workspace root.
func (a *API) location(t Translation) string {
	path := t.File
	if rel, err := filepath.Rel(a.store.Root(), t.File); err == nil {
		path = filepath.ToSlash(rel)
	}
	return fmt.Sprintf("%s:%d:%d", path, t.Line+1, t.Column+1)
}

func notFound(err error) error {
	if errors.Is(err, transkey.ErrNotFound) {
		return ErrNotFound("translation not found", WithError(err), WithErrorCode("not_found"))
	}
	return ErrInternal("lookup failed", WithError(err))
}

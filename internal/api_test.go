package internal_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/langkey/internal"
)

func newAPI(t *testing.T, opts ...internal.Option) (string, *internal.Store, *internal.App) {
	t.Helper()

	root, store := newWorkspace(t)
	writeLang(t, root, map[string]string{
		"lang/en/cart.php": "<?php return ['items' => '{0} Your cart is empty|{1} One item for :name|[2,*] :count items for :name'];",
		"lang/es/cart.php": "<?php return ['items' => 'Un artículo|:count artículos'];",
	})

	opts = append(opts, internal.WithHandlers(internal.NewAPI(store)))
	return root, store, internal.New(opts...)
}

func get(t *testing.T, app http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestAPI_Translation(t *testing.T) {
	t.Parallel()

	root, _, app := newAPI(t)

	t.Run("default locale", func(t *testing.T) {
		t.Parallel()

		rec := get(t, app, "/v1/translations/auth.failed")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

		tr := decode[internal.Translation](t, rec)
		require.Equal(t, "Invalid credentials.", tr.Value)
		require.Equal(t, "en", tr.Locale)
		require.Equal(t, filepath.Join(root, "lang", "en", "auth.php"), tr.File)
		require.Equal(t, 2, tr.Line)
	})

	t.Run("explicit locale", func(t *testing.T) {
		t.Parallel()

		rec := get(t, app, "/v1/translations/welcome.title?locale=es")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "Bienvenido", decode[internal.Translation](t, rec).Value)
	})

	t.Run("unknown key", func(t *testing.T) {
		t.Parallel()

		rec := get(t, app, "/v1/translations/auth.missing")
		require.Equal(t, http.StatusNotFound, rec.Code)

		body := decode[map[string]string](t, rec)
		require.Equal(t, "translation not found", body["error"])
		require.Equal(t, "not_found", body["code"])
	})

	t.Run("path escape is not found", func(t *testing.T) {
		t.Parallel()

		rec := get(t, app, "/v1/translations/"+url.PathEscape("..")+"?locale=en")
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAPI_LocaleFromContext(t *testing.T) {
	t.Parallel()

	setLocale := func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			c.Set(internal.LocaleKey{}, "es")
			return next(c)
		}
	}
	_, _, app := newAPI(t, internal.WithMiddleware(setLocale))

	rec := get(t, app, "/v1/translations/welcome.title")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "es", decode[internal.Translation](t, rec).Locale)

	rec = get(t, app, "/v1/translations/welcome.title?locale=en")
	require.Equal(t, "en", decode[internal.Translation](t, rec).Locale)
}

func TestAPI_All(t *testing.T) {
	t.Parallel()

	_, _, app := newAPI(t)

	rec := get(t, app, "/v1/translations/welcome.title/all")
	require.Equal(t, http.StatusOK, rec.Code)

	all := decode[map[string]internal.Translation](t, rec)
	require.Len(t, all, 2)
	require.Equal(t, "Welcome", all["en"].Value)
	require.Equal(t, "Bienvenido", all["es"].Value)

	rec = get(t, app, "/v1/translations/nope.nothing/all")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, decode[map[string]internal.Translation](t, rec))
}

func TestAPI_Hover(t *testing.T) {
	t.Parallel()

	_, _, app := newAPI(t)

	t.Run("markdown", func(t *testing.T) {
		t.Parallel()

		rec := get(t, app, "/v1/hover/welcome.title")
		require.Equal(t, http.StatusOK, rec.Code)

		h := decode[internal.HoverResponse](t, rec)
		assert.Equal(t, "welcome.title", h.Key)
		assert.Equal(t, internal.FormatMarkdown, h.Format)
		assert.Contains(t, h.Contents, "| en | Welcome | `lang/en/welcome.php:1:15` |")
		assert.Contains(t, h.Contents, "| es | Bienvenido |")
	})

	t.Run("count and replacements", func(t *testing.T) {
		t.Parallel()

		rec := get(t, app, "/v1/hover/cart.items?count=3&replace[name]=ada&replace[count]=3")
		require.Equal(t, http.StatusOK, rec.Code)

		h := decode[internal.HoverResponse](t, rec)
		assert.Contains(t, h.Contents, "| en | 3 items for ada |")
		assert.Contains(t, h.Contents, "| es | 3 artículos |")
	})

	t.Run("html", func(t *testing.T) {
		t.Parallel()

		rec := get(t, app, "/v1/hover/welcome.title?format=html")
		require.Equal(t, http.StatusOK, rec.Code)

		h := decode[internal.HoverResponse](t, rec)
		assert.Equal(t, internal.FormatHTML, h.Format)
		assert.Contains(t, h.Contents, "<table>")
		assert.Contains(t, h.Contents, "<td>Bienvenido</td>")
	})

	t.Run("bad input", func(t *testing.T) {
		t.Parallel()

		require.Equal(t, http.StatusBadRequest, get(t, app, "/v1/hover/welcome.title?format=pdf").Code)
		require.Equal(t, http.StatusBadRequest, get(t, app, "/v1/hover/welcome.title?count=many").Code)
	})
}

func TestAPI_LocalesAndKeys(t *testing.T) {
	t.Parallel()

	_, _, app := newAPI(t)

	rec := get(t, app, "/v1/locales")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []string{"en", "es", "fr"}, decode[[]string](t, rec))

	rec = get(t, app, "/v1/files/validation/keys")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, []string{"validation.custom.name", "validation.email"}, decode[[]string](t, rec))

	rec = get(t, app, "/v1/files/missing/keys")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPI_Extract(t *testing.T) {
	t.Parallel()

	_, _, app := newAPI(t)

	rec := get(t, app, "/v1/extract?text="+url.QueryEscape(`{{ __('auth.failed') }}`))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "auth.failed", decode[map[string]string](t, rec)["key"])

	require.Equal(t, http.StatusNotFound, get(t, app, "/v1/extract?text=plain").Code)
	require.Equal(t, http.StatusBadRequest, get(t, app, "/v1/extract").Code)
}

func TestAPI_Invalidate(t *testing.T) {
	t.Parallel()

	root, store, app := newAPI(t)

	rec := get(t, app, "/v1/translations/welcome.title")
	require.Equal(t, "Welcome", decode[internal.Translation](t, rec).Value)

	writeLang(t, root, map[string]string{"lang/en/welcome.php": "<?php return ['title' => 'Hello'];"})

	post := httptest.NewRecorder()
	app.ServeHTTP(post, httptest.NewRequest(http.MethodPost, "/v1/invalidate?file="+url.QueryEscape("lang/en/welcome.php"), nil))
	require.Equal(t, http.StatusNoContent, post.Code)

	rec = get(t, app, "/v1/translations/welcome.title")
	require.Equal(t, "Hello", decode[internal.Translation](t, rec).Value)

	require.NoError(t, os.Remove(filepath.Join(root, "lang", "en", "welcome.php")))
	post = httptest.NewRecorder()
	app.ServeHTTP(post, httptest.NewRequest(http.MethodPost, "/v1/invalidate", nil))
	require.Equal(t, http.StatusNoContent, post.Code)

	require.Equal(t, http.StatusNotFound, get(t, app, "/v1/translations/welcome.title").Code)
	require.Positive(t, store.Stats().Invalidations)

	stats := decode[internal.StoreStats](t, get(t, app, "/v1/stats"))
	require.Equal(t, int64(2), stats.Invalidations)
}

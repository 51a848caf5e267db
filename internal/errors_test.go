package internal_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/langkey/internal"
)

func TestAsHTTPError(t *testing.T) {
	t.Parallel()

	t.Run("direct", func(t *testing.T) {
		t.Parallel()

		got := internal.AsHTTPError(internal.ErrNotFound("translation not found"))
		require.NotNil(t, got)
		require.Equal(t, http.StatusNotFound, got.Code)
		require.True(t, internal.IsHTTPError(got))
	})

	t.Run("wrapped", func(t *testing.T) {
		t.Parallel()

		base := errors.New("disk gone")
		err := fmt.Errorf("handler: %w", internal.ErrInternal("boom", internal.WithError(base), internal.WithErrorCode("io")))

		got := internal.AsHTTPError(err)
		require.NotNil(t, got)
		require.Equal(t, "io", got.ErrorCode)
		require.ErrorIs(t, err, base)
	})

	t.Run("unrelated and nil", func(t *testing.T) {
		t.Parallel()

		require.Nil(t, internal.AsHTTPError(errors.New("plain")))
		require.Nil(t, internal.AsHTTPError(nil))
		require.False(t, internal.IsHTTPError(nil))
	})
}

func TestDefaultErrorHandler(t *testing.T) {
	t.Parallel()

	serve := func(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]string) {
		t.Helper()

		app := internal.New(internal.WithHandlers(handlerFunc(func(r internal.Router) {
			r.GET("/", func(internal.Context) error { return err })
		})))

		rec := httptest.NewRecorder()
		app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		return rec, body
	}

	t.Run("http error keeps status", func(t *testing.T) {
		t.Parallel()

		rec, body := serve(t, internal.ErrNotFound("translation not found", internal.WithErrorCode("not_found")))
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Equal(t, "translation not found", body["error"])
		require.Equal(t, "not_found", body["code"])
	})

	t.Run("plain error hides details", func(t *testing.T) {
		t.Parallel()

		rec, body := serve(t, errors.New("secret path /etc"))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Equal(t, "Internal Server Error", body["error"])
	})
}

// handlerFunc adapts a function to the Handler interface.
type handlerFunc func(r internal.Router)

func (f handlerFunc) Routes(r internal.Router) { f(r) }

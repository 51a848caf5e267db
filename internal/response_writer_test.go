package internal

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResponseWriter(t *testing.T) {
	t.Parallel()

	t.Run("write header once", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		rw := NewResponseWriter(rec)
		require.False(t, rw.Written())

		rw.WriteHeader(http.StatusNotFound)
		rw.WriteHeader(http.StatusOK)

		require.True(t, rw.Written())
		require.Equal(t, http.StatusNotFound, rw.Status())
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("write implies 200", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		rw := NewResponseWriter(rec)

		n, err := rw.Write([]byte("hello"))
		require.NoError(t, err)
		require.Equal(t, 5, n)
		require.Equal(t, int64(5), rw.Size())
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "hello", rec.Body.String())
		require.Same(t, rec, rw.Unwrap())
	})
}

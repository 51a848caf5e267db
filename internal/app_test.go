package internal_test

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/langkey/internal"
)

func TestApp_Routing(t *testing.T) {
	t.Parallel()

	var order []string
	trace := func(name string) internal.Middleware {
		return func(next internal.HandlerFunc) internal.HandlerFunc {
			return func(c internal.Context) error {
				order = append(order, name)
				return next(c)
			}
		}
	}

	app := internal.New(
		internal.WithMiddleware(trace("global")),
		internal.WithHandlers(handlerFunc(func(r internal.Router) {
			r.Group(func(r internal.Router) {
				r.Use(trace("group"))
				r.GET("/ping", func(c internal.Context) error {
					order = append(order, "handler")
					return c.String(http.StatusOK, "pong")
				}, trace("route-a"), trace("route-b"))
			})
			r.DELETE("/item", func(c internal.Context) error {
				return c.NoContent(http.StatusNoContent)
			})
		})),
		internal.WithNotFoundHandler(func(c internal.Context) error {
			return internal.ErrNotFound("no such route", internal.WithErrorCode("route"))
		}),
	)

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "pong", rec.Body.String())
	require.Equal(t, []string{"global", "group", "route-a", "route-b", "handler"}, order)

	rec = httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/item", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"error":"no such route","code":"route"}`, rec.Body.String())

	require.NotNil(t, app.Router())
}

func TestApp_MiddlewareError(t *testing.T) {
	t.Parallel()

	deny := func(internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			return internal.ErrServiceUnavailable("draining")
		}
	}

	app := internal.New(
		internal.WithMiddleware(deny),
		internal.WithHandlers(handlerFunc(func(r internal.Router) {
			r.GET("/", func(c internal.Context) error { return c.NoContent(http.StatusOK) })
		})),
	)

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Contains(t, rec.Body.String(), "draining")
}

func TestApp_HealthChecks(t *testing.T) {
	t.Parallel()

	var healthy atomic.Bool
	app := internal.New(internal.WithHealthChecks(
		internal.WithReadinessPath("/ready"),
		internal.WithReadinessCheck("flag", func(context.Context) error {
			if !healthy.Load() {
				return errors.New("not yet")
			}
			return nil
		}),
	))

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	healthy.Store(true)
	rec = httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func freeAddr(t *testing.T) string {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())
	return addr
}

func TestApp_Run(t *testing.T) {
	t.Parallel()

	t.Run("hooks and graceful shutdown", func(t *testing.T) {
		t.Parallel()

		app := internal.New(internal.WithHandlers(handlerFunc(func(r internal.Router) {
			r.GET("/", func(c internal.Context) error { return c.String(http.StatusOK, "up") })
		})))

		addr := freeAddr(t)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		var started, stopped atomic.Bool
		done := make(chan error, 1)
		go func() {
			done <- app.Run(addr,
				internal.WithContext(ctx),
				internal.ShutdownTimeout(2*time.Second),
				internal.StartupHook(func(context.Context) error {
					started.Store(true)
					return nil
				}),
				internal.ShutdownHook(func(context.Context) error {
					stopped.Store(true)
					return nil
				}),
			)
		}()

		require.Eventually(t, func() bool {
			resp, err := http.Get("http://" + addr + "/")
			if err != nil {
				return false
			}
			defer resp.Body.Close()
			return resp.StatusCode == http.StatusOK
		}, 5*time.Second, 20*time.Millisecond)
		require.True(t, started.Load())

		cancel()
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("server did not stop")
		}
		require.True(t, stopped.Load())
	})

	t.Run("failing startup hook stops what already started", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		var first, stopped atomic.Bool
		err := internal.New().Run(freeAddr(t),
			internal.StartupHook(func(context.Context) error {
				first.Store(true)
				return nil
			}),
			internal.StartupHook(func(context.Context) error { return boom }),
			internal.ShutdownHook(func(context.Context) error {
				stopped.Store(true)
				return nil
			}),
		)
		require.ErrorIs(t, err, boom)
		require.True(t, first.Load())
		require.True(t, stopped.Load())
	})

	t.Run("address in use", func(t *testing.T) {
		t.Parallel()

		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		defer ln.Close()

		var stopped atomic.Bool
		err = internal.New().Run(ln.Addr().String(), internal.ShutdownHook(func(context.Context) error {
			stopped.Store(true)
			return nil
		}))
		require.Error(t, err)
		require.True(t, stopped.Load())
	})
}

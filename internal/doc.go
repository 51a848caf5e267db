// Package internal holds the translation store and the HTTP host that
// serves it.
//
// This package is internal and should not be used directly. Import
// "github.com/dmitrymomot/langkey" instead, which re-exports the public API.
//
// # Store
//
// Store resolves keys such as "auth.failed" against the PHP language files
// of one workspace. The language directory of a locale is found by probing
// path templates in order (lang, resources/lang, resources/languages,
// languages); parsed files are cached until Invalidate or InvalidateFile:
//
//	store := internal.NewStore("/srv/app", internal.WithDefaultLocale("en"))
//	t, err := store.Resolve(ctx, "auth.failed", "es")
//	if errors.Is(err, transkey.ErrNotFound) {
//	    // missing file, missing key, or a key that names a group
//	}
//
// Concurrent misses for one file share a single read. An invalidation that
// happens while a read is in flight keeps that read from being cached.
//
// # Application
//
// App wires chi routing, middleware, health endpoints and graceful shutdown:
//
//	app := internal.New(
//	    internal.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	    internal.WithHandlers(internal.NewAPI(store)),
//	    internal.WithHealthChecks(internal.WithReadinessCheck("lang", health.DirCheck(dir))),
//	)
//	err := app.Run(":8080", internal.StartupHook(w.Start), internal.ShutdownHook(w.Shutdown))
//
// Handlers implement Handler and return errors; the error handler renders
// them as JSON {"error": "...", "code": "..."}. HTTPError carries the
// status code:
//
//	func (h *API) translation(c internal.Context) error {
//	    t, err := h.store.Resolve(c, c.Param("key"), c.Query("locale"))
//	    if err != nil {
//	        return internal.ErrNotFound("translation not found", internal.WithError(err))
//	    }
//	    return c.JSON(http.StatusOK, t)
//	}
//
// Context embeds context.Context, so it can be passed to the store directly.
package internal

// Package langkey resolves Laravel translation keys such as "auth.failed"
// to their values and declaration positions.
//
// Translation files are PHP array literals under a language directory per
// locale:
//
//	lang/en/auth.php
//	<?php
//	return [
//	    'failed' => 'These credentials do not match our records.',
//	];
//
// # Store
//
// A Store finds the language directory of each locale by probing lang,
// resources/lang, resources/languages and languages under the workspace
// root, parses files on first use and caches them until invalidated:
//
//	store := langkey.NewStore("/srv/app")
//	defer store.Close()
//
//	t, err := store.Resolve(ctx, "auth.failed", "en")
//	// t.Value  == "These credentials do not match our records."
//	// t.File   == "/srv/app/lang/en/auth.php"
//	// t.Line   == 3, t.Column == 4 (0-based)
//
//	all := store.ResolveAll(ctx, "auth.failed") // map[locale]Translation
//
// Every failed lookup wraps ErrNotFound. A key naming a group rather than a
// string ("shopify.exceptions") is not found.
//
// Parsing is pattern based, not a PHP parser: flat 'key' => 'value' pairs
// and one level of 'key' => [ ... ] nesting per recursion, where a nested
// body ends at the first ']'.
//
// # HTTP API
//
// App serves the store for editor integrations:
//
//	app := langkey.NewApp(
//	    langkey.WithLogger("langkey", middlewares.RequestIDExtractor()),
//	    langkey.WithMiddleware(
//	        middlewares.RequestID(),
//	        middlewares.Recover(),
//	        middlewares.Locale(store.Locales),
//	    ),
//	    langkey.WithHandlers(langkey.NewAPI(store)),
//	    langkey.WithHealthChecks(),
//	)
//	err := app.Run(":8080", langkey.ShutdownHook(func(context.Context) error { return store.Close() }))
//
// Routes:
//
//	GET  /v1/translations/{key}?locale=
//	GET  /v1/translations/{key}/all
//	GET  /v1/hover/{key}?format=markdown|html&count=&replace[name]=
//	GET  /v1/locales
//	GET  /v1/files/{file}/keys?locale=
//	GET  /v1/extract?text=
//	GET  /v1/stats
//	POST /v1/invalidate?file=
//
// The cmd/langkey binary wraps the same store in a CLI, a server and a
// file watcher that invalidates changed files.
package langkey

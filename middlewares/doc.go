// Package middlewares provides HTTP middleware for the langkey API server.
//
// # Request ID
//
// RequestID tags each request with an ID taken from X-Request-ID or
// X-Correlation-ID, or a new UUID. Use RequestIDExtractor with WithLogger
// to add request_id to every log line:
//
//	app := langkey.NewApp(
//	    langkey.WithLogger("api", middlewares.RequestIDExtractor()),
//	    langkey.WithMiddleware(middlewares.RequestID()),
//	)
//
// # Recover
//
// Recover turns panics into *PanicError. The default error handler renders
// it as a 500 with code "panic" and never exposes the panic value.
//
// # Locale
//
// Locale negotiates the preferred locale from X-Locale and Accept-Language
// against the locales present on disk. Handlers read it via Context.Locale;
// an explicit ?locale= query parameter still wins in the API:
//
//	langkey.WithMiddleware(middlewares.Locale(store.Locales))
package middlewares

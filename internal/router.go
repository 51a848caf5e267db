package internal

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Router declares the routes of a Handler. The API only reads and
// invalidates, so the method set stays small.
type Router interface {
	GET(path string, h HandlerFunc, mw ...Middleware)
	POST(path string, h HandlerFunc, mw ...Middleware)
	DELETE(path string, h HandlerFunc, mw ...Middleware)

	// Group scopes middleware to the routes declared in fn.
	Group(fn func(r Router))

	// Route is Group with a shared path prefix.
	Route(pattern string, fn func(r Router))

	// Use adds middleware to every route declared on this router afterwards.
	Use(mw ...Middleware)
}

// chiRouter declares routes on a chi.Router on behalf of an App.
type chiRouter struct {
	mux chi.Router
	app *App
}

func (r chiRouter) GET(path string, h HandlerFunc, mw ...Middleware) {
	r.handle(http.MethodGet, path, h, mw)
}

func (r chiRouter) POST(path string, h HandlerFunc, mw ...Middleware) {
	r.handle(http.MethodPost, path, h, mw)
}

func (r chiRouter) DELETE(path string, h HandlerFunc, mw ...Middleware) {
	r.handle(http.MethodDelete, path, h, mw)
}

func (r chiRouter) Group(fn func(Router)) {
	r.mux.Group(func(mux chi.Router) { fn(chiRouter{mux: mux, app: r.app}) })
}

func (r chiRouter) Route(pattern string, fn func(Router)) {
	r.mux.Route(pattern, func(mux chi.Router) { fn(chiRouter{mux: mux, app: r.app}) })
}

func (r chiRouter) Use(mw ...Middleware) {
	for _, m := range mw {
		r.mux.Use(r.app.adaptMiddleware(m))
	}
}

// handle registers h behind route middleware. The first middleware listed is
// the outermost one.
func (r chiRouter) handle(method, path string, h HandlerFunc, mw []Middleware) {
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	r.mux.Method(method, path, r.app.wrapHandler(h))
}

// adaptMiddleware lets Context middleware sit in chi's http.Handler chain.
// Errors returned by the middleware itself are rendered here; errors from
// the handler were already rendered by wrapHandler.
func (a *App) adaptMiddleware(mw Middleware) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			c := newContext(w, req, a)
			err := mw(func(c Context) error {
				next.ServeHTTP(c.Response(), c.Request())
				return nil
			})(c)
			if err != nil {
				a.handleError(c, err)
			}
		})
	}
}

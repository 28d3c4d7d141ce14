package httpx

import (
	"net/http"

	"github.com/campuswell/pulse/auth"
)

// IdentityMiddleware bridges the net/http identity middleware into echo.
// The wrapped middleware never fails a request on its own, so the bridge
// only has to propagate the downstream handler's error.
func IdentityMiddleware(mw *auth.Middleware) MiddlewareFunc {
	if mw == nil {
		return func(next HandlerFunc) HandlerFunc {
			return func(c Context) error {
				return HTTPError(StatusInternalError, "identity middleware missing")
			}
		}
	}
	return func(next HandlerFunc) HandlerFunc {
		return func(c Context) error {
			var err error
			downstream := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				c.SetRequest(r)
				err = next(c)
			})
			mw.Handler(downstream).ServeHTTP(c.Response(), c.Request())
			return err
		}
	}
}

package web

import (
	"net/url"

	"github.com/campuswell/pulse/auth"
	"github.com/campuswell/pulse/httpx"
)

// DefaultLoginPath is where browser requests are sent to authenticate.
const DefaultLoginPath = "/auth/login"

// Gate is the access layer mounted on protected routes. The identity
// middleware runs on everything and never rejects; the gate is where
// absence of an identity becomes a 401 or a login redirect.
type Gate struct {
	loginPath string
}

// GateOption customises a Gate.
type GateOption func(*Gate)

// WithLoginPath overrides the login entry point used for redirects.
func WithLoginPath(path string) GateOption {
	return func(g *Gate) {
		if path != "" {
			g.loginPath = path
		}
	}
}

// NewGate builds a Gate with the default login path.
func NewGate(opts ...GateOption) *Gate {
	g := &Gate{loginPath: DefaultLoginPath}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// RequireAuth passes requests with a resolved identity and rejects the
// rest: JSON callers get a generic 401, browsers get a redirect to the
// login page carrying the original destination as "next".
func (g *Gate) RequireAuth() httpx.MiddlewareFunc {
	return func(next httpx.HandlerFunc) httpx.HandlerFunc {
		return func(c httpx.Context) error {
			if _, ok := auth.IdentityFromContext(c.Request().Context()); ok {
				return next(c)
			}
			return g.reject(c)
		}
	}
}

// RequireRole extends RequireAuth with a declarative role allow-list.
// An authenticated identity outside the list gets a 403.
func (g *Gate) RequireRole(roles ...auth.Role) httpx.MiddlewareFunc {
	allowed := make(map[auth.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}
	return func(next httpx.HandlerFunc) httpx.HandlerFunc {
		return func(c httpx.Context) error {
			identity, ok := auth.IdentityFromContext(c.Request().Context())
			if !ok {
				return g.reject(c)
			}
			if _, ok := allowed[identity.Role]; !ok {
				return c.JSON(httpx.StatusForbidden, errorBody{Error: "Forbidden"})
			}
			return next(c)
		}
	}
}

func (g *Gate) reject(c httpx.Context) error {
	if Negotiate(c).JSON {
		return c.JSON(httpx.StatusUnauthorized, errorBody{Error: "Authentication required"})
	}
	// The intended destination goes through the same redirect-safety
	// check it would face coming back out of the login form.
	next := auth.SafeRedirect(c.Request().URL.RequestURI())
	return c.Redirect(httpx.StatusFound, g.loginPath+"?next="+url.QueryEscape(next))
}

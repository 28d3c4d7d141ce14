package auth

import (
	"context"
	"net/http"
)

// TokenVerifier is the codec capability the middleware needs.
type TokenVerifier interface {
	Verify(raw string) (Claims, error)
}

// Middleware resolves a request identity from a bearer header or the
// session cookie. It never rejects a request: a missing or bad token just
// leaves the identity absent, so public pages keep working and the access
// gate decides what is actually protected.
type Middleware struct {
	verifier   TokenVerifier
	cookieName string
	skipper    MiddlewareSkipper
}

type identityContextKey struct{}

// NewMiddleware builds the identity middleware over a token verifier.
func NewMiddleware(verifier TokenVerifier, opts ...MiddlewareOption) (*Middleware, error) {
	if verifier == nil {
		return nil, ErrInvalidInput
	}
	m := &Middleware{
		verifier:   verifier,
		cookieName: DefaultCookieName,
		skipper:    defaultSkipper,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m, nil
}

// Handler wraps next with identity resolution. The Authorization header is
// preferred over the cookie; a token that fails verification out of the
// cookie gets that cookie expired in the response so a stale or forged
// value does not linger client-side.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	if next == nil {
		next = http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.skipper(r) {
			next.ServeHTTP(w, r)
			return
		}

		raw, source := m.extractToken(r)
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.verifier.Verify(raw)
		if err != nil {
			if source == sourceCookie {
				http.SetCookie(w, &http.Cookie{
					Name:     m.cookieName,
					Value:    "",
					Path:     "/",
					MaxAge:   -1,
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), identityContextKey{}, claims.Identity())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// IdentityFromContext returns the identity attached by the middleware, if
// the request carried a valid token.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	if ctx == nil {
		return Identity{}, false
	}
	identity, ok := ctx.Value(identityContextKey{}).(Identity)
	return identity, ok
}

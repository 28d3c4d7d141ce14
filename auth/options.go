package auth

import (
	"net/http"
	"strings"
)

// MiddlewareSkipper lets callers exempt requests (health checks, static
// assets) from identity resolution entirely.
type MiddlewareSkipper func(*http.Request) bool

// MiddlewareOption configures the identity middleware.
type MiddlewareOption func(*Middleware)

// WithMiddlewareCookieName overrides the cookie consulted for tokens.
func WithMiddlewareCookieName(name string) MiddlewareOption {
	return func(m *Middleware) {
		if strings.TrimSpace(name) != "" {
			m.cookieName = strings.TrimSpace(name)
		}
	}
}

// WithMiddlewareSkipper installs a request skipper.
func WithMiddlewareSkipper(skipper MiddlewareSkipper) MiddlewareOption {
	return func(m *Middleware) {
		if skipper != nil {
			m.skipper = skipper
		}
	}
}

func defaultSkipper(*http.Request) bool { return false }

type tokenSource int

const (
	sourceNone tokenSource = iota
	sourceBearer
	sourceCookie
)

// extractToken looks for a candidate token, preferring the Authorization
// header and falling back to the session cookie, and reports where it
// came from so cookie failures can clear the cookie.
func (m *Middleware) extractToken(r *http.Request) (string, tokenSource) {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			if token := strings.TrimSpace(parts[1]); token != "" {
				return token, sourceBearer
			}
		}
	}
	if cookie, err := r.Cookie(m.cookieName); err == nil {
		if token := strings.TrimSpace(cookie.Value); token != "" {
			return token, sourceCookie
		}
	}
	return "", sourceNone
}

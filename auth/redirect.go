package auth

import (
	"net/url"
	"strings"
)

// DefaultRedirectPath is where unsafe or absent "next" targets collapse to.
const DefaultRedirectPath = "/"

// SafeRedirect accepts a caller-supplied post-login destination only when
// it is a same-origin relative path: a single leading slash, no scheme, no
// host. Everything else collapses to DefaultRedirectPath, which closes the
// open-redirect hole on the login flow.
func SafeRedirect(next string) string {
	next = strings.TrimSpace(next)
	if next == "" || !strings.HasPrefix(next, "/") {
		return DefaultRedirectPath
	}
	// "//host" and "/\host" are scheme-relative in browsers.
	if len(next) > 1 && (next[1] == '/' || next[1] == '\\') {
		return DefaultRedirectPath
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return DefaultRedirectPath
	}
	return next
}

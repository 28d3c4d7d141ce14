package auth

import (
	"net/http"
	"time"
)

// DefaultCookieName is the cookie the session token travels in.
const DefaultCookieName = "token"

// SessionIssuer mints a token for an authenticated user and builds the
// cookie that carries it. How the pair is delivered (JSON body vs
// Set-Cookie plus redirect) is the web layer's decision.
type SessionIssuer struct {
	codec      *Codec
	cookieName string
	cookieTTL  time.Duration
	secure     bool
}

// SessionIssuerOption customises a SessionIssuer.
type SessionIssuerOption func(*SessionIssuer)

// WithCookieName overrides the session cookie name.
func WithCookieName(name string) SessionIssuerOption {
	return func(i *SessionIssuer) {
		if name != "" {
			i.cookieName = name
		}
	}
}

// WithCookieTTL overrides the cookie max-age; it defaults to the codec's
// token TTL so cookie and token lapse together.
func WithCookieTTL(d time.Duration) SessionIssuerOption {
	return func(i *SessionIssuer) {
		if d > 0 {
			i.cookieTTL = d
		}
	}
}

// WithSecureCookies marks issued cookies Secure. Enabled in
// production-like environments only, so local HTTP development works.
func WithSecureCookies(secure bool) SessionIssuerOption {
	return func(i *SessionIssuer) { i.secure = secure }
}

// NewSessionIssuer builds an issuer over the given codec.
func NewSessionIssuer(codec *Codec, opts ...SessionIssuerOption) *SessionIssuer {
	issuer := &SessionIssuer{
		codec:      codec,
		cookieName: DefaultCookieName,
		cookieTTL:  codec.TTL(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(issuer)
		}
	}
	return issuer
}

// CookieName reports the configured session cookie name.
func (i *SessionIssuer) CookieName() string { return i.cookieName }

// Issue signs a token from the fixed claim projection of the user record
// (id, email, full name, role; never the password hash) and returns it
// together with the cookie carrying it.
func (i *SessionIssuer) Issue(user User) (string, *http.Cookie, error) {
	token, err := i.codec.Sign(Claims{
		UserID:   user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     user.Role,
	})
	if err != nil {
		return "", nil, err
	}
	return token, i.cookie(token, int(i.cookieTTL.Seconds())), nil
}

// ClearCookie returns an expired cookie that removes the session cookie
// client-side. Tokens already copied elsewhere stay valid until expiry.
func (i *SessionIssuer) ClearCookie() *http.Cookie {
	return i.cookie("", -1)
}

func (i *SessionIssuer) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     i.cookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   i.secure,
	}
}

package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type stubVerifier struct {
	claims Claims
	err    error
	raw    string
	calls  int
}

func (v *stubVerifier) Verify(raw string) (Claims, error) {
	v.raw = raw
	v.calls++
	return v.claims, v.err
}

func TestNewMiddlewareRequiresVerifier(t *testing.T) {
	if _, err := NewMiddleware(nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("NewMiddleware(nil) error = %v, want ErrInvalidInput", err)
	}
}

func TestMiddlewareResolvesBearerToken(t *testing.T) {
	verifier := &stubVerifier{claims: Claims{UserID: "user-1", Email: "a@b.c", Role: RoleStudent}}
	mw, err := NewMiddleware(verifier)
	if err != nil {
		t.Fatalf("NewMiddleware() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer raw-token")
	res := httptest.NewRecorder()

	var invoked bool
	mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		invoked = true
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			t.Fatalf("identity missing from context")
		}
		if identity.ID != "user-1" {
			t.Fatalf("identity id = %q, want user-1", identity.ID)
		}
	})).ServeHTTP(res, req)

	if !invoked {
		t.Fatalf("next handler not invoked")
	}
	if verifier.raw != "raw-token" {
		t.Fatalf("verifier received %q, want raw-token", verifier.raw)
	}
}

func TestMiddlewareResolvesCookieToken(t *testing.T) {
	verifier := &stubVerifier{claims: Claims{UserID: "user-2", Email: "b@b.c", Role: RoleStudent}}
	mw, err := NewMiddleware(verifier)
	if err != nil {
		t.Fatalf("NewMiddleware() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: "cookie-token"})
	res := httptest.NewRecorder()

	mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := IdentityFromContext(r.Context()); !ok {
			t.Fatalf("identity missing from context")
		}
	})).ServeHTTP(res, req)

	if verifier.raw != "cookie-token" {
		t.Fatalf("verifier received %q, want cookie-token", verifier.raw)
	}
}

func TestMiddlewarePrefersBearerOverCookie(t *testing.T) {
	verifier := &stubVerifier{claims: Claims{UserID: "u", Email: "a@b.c", Role: RoleStudent}}
	mw, err := NewMiddleware(verifier)
	if err != nil {
		t.Fatalf("NewMiddleware() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer header-token")
	req.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: "cookie-token"})
	res := httptest.NewRecorder()

	mw.Handler(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).ServeHTTP(res, req)

	if verifier.raw != "header-token" {
		t.Fatalf("verifier received %q, bearer should win", verifier.raw)
	}
}

func TestMiddlewareNoTokenPassesAnonymously(t *testing.T) {
	verifier := &stubVerifier{}
	mw, err := NewMiddleware(verifier)
	if err != nil {
		t.Fatalf("NewMiddleware() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	res := httptest.NewRecorder()

	var invoked bool
	mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		invoked = true
		if _, ok := IdentityFromContext(r.Context()); ok {
			t.Fatalf("unexpected identity on anonymous request")
		}
	})).ServeHTTP(res, req)

	if !invoked {
		t.Fatalf("anonymous request must still reach next")
	}
	if verifier.calls != 0 {
		t.Fatalf("verifier called %d times without a token", verifier.calls)
	}
}

func TestMiddlewareInvalidCookieIsCleared(t *testing.T) {
	verifier := &stubVerifier{err: ErrInvalidToken}
	mw, err := NewMiddleware(verifier)
	if err != nil {
		t.Fatalf("NewMiddleware() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: DefaultCookieName, Value: "forged"})
	res := httptest.NewRecorder()

	var invoked bool
	mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		invoked = true
		if _, ok := IdentityFromContext(r.Context()); ok {
			t.Fatalf("forged token yielded an identity")
		}
	})).ServeHTTP(res, req)

	if !invoked {
		t.Fatalf("request with a bad cookie must still reach next")
	}

	var cleared bool
	for _, cookie := range res.Result().Cookies() {
		if cookie.Name == DefaultCookieName && cookie.Value == "" && cookie.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatalf("stale cookie was not cleared; cookies = %v", res.Result().Cookies())
	}
}

func TestMiddlewareInvalidBearerLeavesCookiesAlone(t *testing.T) {
	verifier := &stubVerifier{err: ErrInvalidToken}
	mw, err := NewMiddleware(verifier)
	if err != nil {
		t.Fatalf("NewMiddleware() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer forged")
	res := httptest.NewRecorder()

	mw.Handler(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).ServeHTTP(res, req)

	if len(res.Result().Cookies()) != 0 {
		t.Fatalf("bad bearer token must not touch cookies; got %v", res.Result().Cookies())
	}
}

func TestMiddlewareSkipper(t *testing.T) {
	verifier := &stubVerifier{}
	mw, err := NewMiddleware(verifier, WithMiddlewareSkipper(func(r *http.Request) bool {
		return r.URL.Path == "/healthz"
	}))
	if err != nil {
		t.Fatalf("NewMiddleware() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Authorization", "Bearer whatever")
	res := httptest.NewRecorder()

	mw.Handler(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).ServeHTTP(res, req)

	if verifier.calls != 0 {
		t.Fatalf("skipped request still hit the verifier")
	}
}

func TestMiddlewareCustomCookieName(t *testing.T) {
	verifier := &stubVerifier{claims: Claims{UserID: "u", Email: "a@b.c", Role: RoleStudent}}
	mw, err := NewMiddleware(verifier, WithMiddlewareCookieName("session"))
	if err != nil {
		t.Fatalf("NewMiddleware() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "session", Value: "cookie-token"})
	res := httptest.NewRecorder()

	mw.Handler(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).ServeHTTP(res, req)

	if verifier.raw != "cookie-token" {
		t.Fatalf("custom cookie name not consulted")
	}
}

func TestIdentityFromContextMissing(t *testing.T) {
	if _, ok := IdentityFromContext(nil); ok {
		t.Fatalf("nil context produced an identity")
	}
}

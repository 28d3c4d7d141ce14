package httpx

import (
	"net/http"
	"net/http/httptest"
)

// TestServer runs a handler on a real listener so tests can drive the
// whole client/server path, cookies and redirects included.
type TestServer struct{ *httptest.Server }

// NewTestServer starts a TestServer for the given handler. Callers own
// the Close.
func NewTestServer(handler http.Handler) *TestServer {
	return &TestServer{httptest.NewServer(handler)}
}

// BaseURL returns the scheme://host:port the server listens on.
func (ts *TestServer) BaseURL() string {
	if ts == nil || ts.Server == nil {
		return ""
	}
	return ts.URL
}

// NewClient returns a resty-backed Client already pointed at this server.
func (ts *TestServer) NewClient(opts ...ClientOption) *Client {
	base := []ClientOption{WithBaseURL(ts.BaseURL())}
	return NewClient(append(base, opts...)...)
}

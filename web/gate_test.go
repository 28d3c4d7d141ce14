package web

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGateRejectsAnonymousJSON(t *testing.T) {
	app := newTestApp(t)

	res := app.do(jsonRequest(t, http.MethodGet, "/me", nil))
	if res.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", res.Code)
	}
	var body errorBody
	decodeJSON(t, res, &body)
	if body.Error != "Authentication required" {
		t.Fatalf("error = %q", body.Error)
	}
}

func TestGateRedirectsAnonymousBrowser(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/moods", nil)
	req.Header.Set("Accept", "text/html")
	res := app.do(req)

	if res.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", res.Code)
	}
	if loc := res.Header().Get("Location"); loc != "/auth/login?next=%2Fmoods" {
		t.Fatalf("Location = %q", loc)
	}
}

func TestGateRedirectPreservesQuery(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/moods?page=2", nil)
	req.Header.Set("Accept", "text/html")
	res := app.do(req)

	if loc := res.Header().Get("Location"); loc != "/auth/login?next=%2Fmoods%3Fpage%3D2" {
		t.Fatalf("Location = %q", loc)
	}
}

func TestMoodLogFlow(t *testing.T) {
	app := newTestApp(t)
	token, _ := registerUser(t, app, "alice@campus.edu", "s3cret-pass", "")

	create := jsonRequest(t, http.MethodPost, "/moods", map[string]any{
		"score": 7,
		"notes": "midterms done",
	})
	create.Header.Set("Authorization", "Bearer "+token)
	res := app.do(create)
	if res.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", res.Code, res.Body.String())
	}

	list := jsonRequest(t, http.MethodGet, "/moods", nil)
	list.Header.Set("Authorization", "Bearer "+token)
	res = app.do(list)
	if res.Code != http.StatusOK {
		t.Fatalf("list status = %d, body = %s", res.Code, res.Body.String())
	}
	var entries []map[string]any
	decodeJSON(t, res, &entries)
	if len(entries) != 1 {
		t.Fatalf("entries = %v, want one", entries)
	}
	if entries[0]["notes"] != "midterms done" {
		t.Fatalf("entry = %v", entries[0])
	}
}

func TestMoodLogInvalidScore(t *testing.T) {
	app := newTestApp(t)
	token, _ := registerUser(t, app, "alice@campus.edu", "s3cret-pass", "")

	req := jsonRequest(t, http.MethodPost, "/moods", map[string]any{"score": 0})
	req.Header.Set("Authorization", "Bearer "+token)
	res := app.do(req)
	if res.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400; body = %s", res.Code, res.Body.String())
	}
	var body errorBody
	decodeJSON(t, res, &body)
	if body.Error != "Score must be between 1 and 10." {
		t.Fatalf("error = %q", body.Error)
	}
}

func TestMoodEntriesAreScopedToCaller(t *testing.T) {
	app := newTestApp(t)
	aliceToken, _ := registerUser(t, app, "alice@campus.edu", "pw-alice", "")
	bobToken, _ := registerUser(t, app, "bob@campus.edu", "pw-bob", "")

	create := jsonRequest(t, http.MethodPost, "/moods", map[string]any{"score": 3})
	create.Header.Set("Authorization", "Bearer "+aliceToken)
	if res := app.do(create); res.Code != http.StatusCreated {
		t.Fatalf("create status = %d", res.Code)
	}

	list := jsonRequest(t, http.MethodGet, "/moods", nil)
	list.Header.Set("Authorization", "Bearer "+bobToken)
	res := app.do(list)
	if res.Code != http.StatusOK {
		t.Fatalf("list status = %d", res.Code)
	}
	var entries []map[string]any
	decodeJSON(t, res, &entries)
	if len(entries) != 0 {
		t.Fatalf("bob sees alice's entries: %v", entries)
	}
}

func TestHelpQueueRoleGate(t *testing.T) {
	app := newTestApp(t)
	studentToken, _ := registerUser(t, app, "student@campus.edu", "pw-student", "")
	staffToken, _ := registerUser(t, app, "staff@campus.edu", "pw-staff", "staff")

	// A student can raise a help request.
	raise := jsonRequest(t, http.MethodPost, "/moods/help", map[string]string{
		"message": "please reach out",
	})
	raise.Header.Set("Authorization", "Bearer "+studentToken)
	res := app.do(raise)
	if res.Code != http.StatusCreated {
		t.Fatalf("help status = %d, body = %s", res.Code, res.Body.String())
	}
	var created map[string]any
	decodeJSON(t, res, &created)
	if created["type"] != "Help Request from student" {
		t.Fatalf("help type = %v", created["type"])
	}

	// But cannot read the queue.
	queue := jsonRequest(t, http.MethodGet, "/moods/help", nil)
	queue.Header.Set("Authorization", "Bearer "+studentToken)
	res = app.do(queue)
	if res.Code != http.StatusForbidden {
		t.Fatalf("student queue status = %d, want 403; body = %s", res.Code, res.Body.String())
	}
	var body errorBody
	decodeJSON(t, res, &body)
	if body.Error != "Forbidden" {
		t.Fatalf("error = %q", body.Error)
	}

	// Staff can.
	queue = jsonRequest(t, http.MethodGet, "/moods/help", nil)
	queue.Header.Set("Authorization", "Bearer "+staffToken)
	res = app.do(queue)
	if res.Code != http.StatusOK {
		t.Fatalf("staff queue status = %d, body = %s", res.Code, res.Body.String())
	}
	var reqs []map[string]any
	decodeJSON(t, res, &reqs)
	if len(reqs) != 1 {
		t.Fatalf("queue = %v, want one request", reqs)
	}
}

func TestNegotiate(t *testing.T) {
	cases := []struct {
		name    string
		headers map[string]string
		json    bool
	}{
		{"accept json", map[string]string{"Accept": "application/json"}, true},
		{"content-type json", map[string]string{"Content-Type": "application/json"}, true},
		{"xhr marker", map[string]string{"X-Requested-With": "XMLHttpRequest"}, true},
		{"xhr marker lowercase", map[string]string{"X-Requested-With": "xmlhttprequest"}, true},
		{"browser accept", map[string]string{"Accept": "text/html,application/xhtml+xml"}, false},
		{"no headers", nil, false},
	}

	app := newTestApp(t)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			res := app.do(req)
			if tc.json && res.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401 JSON rejection", res.Code)
			}
			if !tc.json && res.Code != http.StatusFound {
				t.Fatalf("status = %d, want 302 browser redirect", res.Code)
			}
		})
	}
}

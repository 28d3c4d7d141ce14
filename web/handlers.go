package web

import (
	"fmt"
	"html"

	"github.com/campuswell/pulse/auth"
	"github.com/campuswell/pulse/httpx"
)

// Handlers owns the authentication HTTP surface: register, login, logout,
// and the identity echo endpoint.
type Handlers struct {
	svc    *auth.Service
	issuer *auth.SessionIssuer
}

// NewHandlers wires the credential verifier and session issuer.
func NewHandlers(svc *auth.Service, issuer *auth.SessionIssuer) *Handlers {
	return &Handlers{svc: svc, issuer: issuer}
}

// credentialsRequest binds both JSON and form-encoded bodies.
type credentialsRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
	FullName string `json:"fullName" form:"fullName"`
	Role     string `json:"role" form:"role"`
	Next     string `json:"next" form:"next"`
}

type userResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

type sessionResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func toUserResponse(user auth.User) userResponse {
	return userResponse{
		ID:       user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     string(user.Role),
	}
}

// Register creates an account and immediately starts a session: 201 with
// token and user for JSON callers, cookie plus redirect for browsers.
func (h *Handlers) Register(c httpx.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, auth.ErrInvalidInput)
	}
	strategy := Negotiate(c)

	user, err := h.svc.Register(c.Request().Context(), req.Email, req.Password, req.FullName, req.Role)
	if err != nil {
		return respondError(c, err)
	}
	return h.startSession(c, strategy, user, req.Next, httpx.StatusCreated)
}

// Login verifies credentials and starts a session: 200 with token and
// user for JSON callers, cookie plus redirect for browsers.
func (h *Handlers) Login(c httpx.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, auth.ErrInvalidInput)
	}
	strategy := Negotiate(c)

	user, err := h.svc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return h.startSession(c, strategy, user, req.Next, httpx.StatusOK)
}

func (h *Handlers) startSession(c httpx.Context, strategy ResponseStrategy, user auth.User, next string, jsonStatus int) error {
	token, cookie, err := h.issuer.Issue(user)
	if err != nil {
		return err
	}
	c.SetCookie(cookie)
	if strategy.JSON {
		return c.JSON(jsonStatus, sessionResponse{Token: token, User: toUserResponse(user)})
	}
	return c.Redirect(httpx.StatusSeeOther, auth.SafeRedirect(next))
}

// Logout expires the session cookie. Tokens already copied elsewhere stay
// valid until their expiry; there is no server-side revocation.
func (h *Handlers) Logout(c httpx.Context) error {
	c.SetCookie(h.issuer.ClearCookie())
	if Negotiate(c).JSON {
		return c.JSON(httpx.StatusOK, map[string]any{"success": true})
	}
	return c.Redirect(httpx.StatusSeeOther, "/auth/login")
}

// Me returns the identity resolved for this request. Mounted behind the
// gate, so the identity is always present when it runs.
func (h *Handlers) Me(c httpx.Context) error {
	identity, ok := auth.IdentityFromContext(c.Request().Context())
	if !ok {
		return c.JSON(httpx.StatusUnauthorized, errorBody{Error: "Authentication required"})
	}
	return c.JSON(httpx.StatusOK, userResponse{
		ID:       identity.ID,
		Email:    identity.Email,
		FullName: identity.FullName,
		Role:     string(identity.Role),
	})
}

// LoginPage serves the minimal login form. Already-authenticated visitors
// are sent home. No template engine; the only dynamic value is the safe
// "next" target, escaped into the hidden field.
func (h *Handlers) LoginPage(c httpx.Context) error {
	if _, ok := auth.IdentityFromContext(c.Request().Context()); ok {
		return c.Redirect(httpx.StatusSeeOther, auth.DefaultRedirectPath)
	}
	next := auth.SafeRedirect(c.QueryParam("next"))
	return c.HTML(httpx.StatusOK, fmt.Sprintf(loginPage, html.EscapeString(next)))
}

const loginPage = `<!DOCTYPE html>
<html>
<head><title>Sign in</title></head>
<body>
<h1>Sign in</h1>
<form method="post" action="/auth/login">
  <input type="hidden" name="next" value="%s">
  <label>Email <input type="email" name="email" required></label>
  <label>Password <input type="password" name="password" required></label>
  <button type="submit">Sign in</button>
</form>
</body>
</html>`

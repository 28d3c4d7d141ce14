// Package web is the route-facing layer: it binds requests, negotiates the
// response transport, and maps the auth core's typed outcomes onto HTTP.
// The core packages never see a ResponseWriter.
package web

import (
	"errors"
	"strings"

	"github.com/campuswell/pulse/auth"
	"github.com/campuswell/pulse/httpx"
	"github.com/campuswell/pulse/moods"
)

// ResponseStrategy is the transport decision for one request: JSON body
// or browser-style cookie-and-redirect. It is derived once from the
// request headers and threaded through, never re-derived ad hoc.
type ResponseStrategy struct {
	JSON bool
}

// Negotiate inspects Accept, Content-Type, and the XHR marker to decide
// how responses should be delivered.
func Negotiate(c httpx.Context) ResponseStrategy {
	req := c.Request()
	if strings.Contains(req.Header.Get("Accept"), "application/json") ||
		strings.Contains(req.Header.Get("Content-Type"), "application/json") ||
		strings.EqualFold(req.Header.Get("X-Requested-With"), "XMLHttpRequest") {
		return ResponseStrategy{JSON: true}
	}
	return ResponseStrategy{}
}

// errorBody is the uniform error envelope.
type errorBody struct {
	Error string `json:"error"`
}

// respondError maps a core sentinel to its transport shape. Messages are
// deliberately field-agnostic, and credential failures share one message
// so callers cannot probe which part was wrong.
func respondError(c httpx.Context, err error) error {
	status, message := httpx.StatusInternalError, "Something went wrong."
	switch {
	case errors.Is(err, auth.ErrInvalidInput), errors.Is(err, moods.ErrInvalidInput):
		status, message = httpx.StatusBadRequest, "Missing or invalid required fields."
	case errors.Is(err, moods.ErrInvalidScore):
		status, message = httpx.StatusBadRequest, "Score must be between 1 and 10."
	case errors.Is(err, auth.ErrEmailInUse):
		status, message = httpx.StatusConflict, "Email already registered."
	case errors.Is(err, auth.ErrInvalidCredentials):
		status, message = httpx.StatusUnauthorized, "Invalid email or password."
	case errors.Is(err, auth.ErrTooManyAttempts):
		status, message = httpx.StatusTooManyRequests, "Too many attempts. Try again later."
	case errors.Is(err, auth.ErrMissingSecret):
		// Deployment fault, not a user mistake; echo logs the cause.
		return err
	}
	return c.JSON(status, errorBody{Error: message})
}

var domainErrors = []error{
	auth.ErrInvalidInput,
	auth.ErrEmailInUse,
	auth.ErrInvalidCredentials,
	auth.ErrTooManyAttempts,
	moods.ErrInvalidInput,
	moods.ErrInvalidScore,
}

// ErrorHandler is installed as echo's centralized error handler so
// domain sentinels returned straight from handlers still map to their
// statuses; everything else falls through to the httpx default.
func ErrorHandler(err error, c httpx.Context) {
	if c.Response().Committed {
		return
	}
	for _, sentinel := range domainErrors {
		if errors.Is(err, sentinel) {
			_ = respondError(c, err)
			return
		}
	}
	httpx.DefaultErrorHandler(err, c)
}

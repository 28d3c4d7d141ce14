package auth

import "errors"

var (
	// ErrInvalidInput covers missing or malformed registration and login
	// fields. Surfaced as 400 by the web layer.
	ErrInvalidInput = errors.New("auth: missing or malformed input")

	// ErrEmailInUse is returned when registration collides with an existing
	// email, compared case-insensitively. Surfaced as 409.
	ErrEmailInUse = errors.New("auth: email already registered")

	// ErrInvalidCredentials is the single login failure for both an unknown
	// email and a wrong password; callers must not learn which.
	ErrInvalidCredentials = errors.New("auth: invalid email or password")

	// ErrUserNotFound is a repository-level outcome. The credential
	// verifier collapses it into ErrInvalidCredentials before it can reach
	// a client.
	ErrUserNotFound = errors.New("auth: user not found")

	// ErrInvalidToken covers malformed tokens, signature mismatches, and
	// lapsed expiry alike. The causes are deliberately indistinguishable.
	ErrInvalidToken = errors.New("auth: invalid or expired token")

	// ErrPasswordMismatch is the hasher's verify failure.
	ErrPasswordMismatch = errors.New("auth: password does not match")

	// ErrMissingSecret means the signing secret was absent at construction
	// time. This is a deployment fault, not a per-request condition.
	ErrMissingSecret = errors.New("auth: signing secret not configured")

	// ErrTooManyAttempts is returned when the login throttle is engaged.
	ErrTooManyAttempts = errors.New("auth: too many failed login attempts")
)

package auth

import (
	"context"
	"strings"
	"time"
)

// Role enumerates the access levels the platform recognises. The auth core
// never changes a stored role; privileged flows outside this package do.
type Role string

const (
	RoleStudent Role = "student"
	RoleStaff   Role = "staff"
	RoleAdmin   Role = "admin"
)

// ParseRole maps free-form input onto a known role. Empty input defaults to
// RoleStudent; anything unrecognised is rejected as invalid input.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case "":
		return RoleStudent, nil
	case RoleStudent, RoleStaff, RoleAdmin:
		return r, nil
	default:
		return "", ErrInvalidInput
	}
}

// User models the credential record persisted in the users table.
type User struct {
	ID           string
	Email        string
	FullName     string
	Role         Role
	PasswordHash []byte
	CreatedAt    time.Time
}

// Claims is the signed payload carried inside a session token. A token's
// validity is entirely a function of its signature and expiry; nothing is
// stored server-side, so a token issued before a role change stays valid
// with the old role until it expires.
type Claims struct {
	UserID    string
	Email     string
	FullName  string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Identity is the per-request resolved subject attached by the middleware.
// It lives only for the duration of a single request.
type Identity struct {
	ID       string
	Email    string
	FullName string
	Role     Role
}

// Identity projects the claim set onto the request-scoped identity shape.
func (c Claims) Identity() Identity {
	return Identity{ID: c.UserID, Email: c.Email, FullName: c.FullName, Role: c.Role}
}

// UserRepository abstracts the credential store. FindByEmail receives an
// already-normalized email and returns ErrUserNotFound when no record
// matches; Create returns ErrEmailInUse on a uniqueness conflict.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (User, error)
	Create(ctx context.Context, user User) error
}

// NormalizeEmail trims surrounding whitespace and lowercases, so that
// uniqueness checks and lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// DefaultUserTableSchema is the minimal table this core needs. The citext
// column keeps the uniqueness constraint case-insensitive at the store.
const DefaultUserTableSchema = `CREATE TABLE IF NOT EXISTS users (
    id UUID PRIMARY KEY,
    email CITEXT UNIQUE NOT NULL,
    password_hash TEXT NOT NULL,
    full_name TEXT NOT NULL,
    role TEXT NOT NULL DEFAULT 'student',
    created_at TIMESTAMPTZ NOT NULL
);`

func contextError(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

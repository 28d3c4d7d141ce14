package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/campuswell/pulse/auth"
	"github.com/lib/pq"
)

// UserRepository persists auth.User records inside PostgreSQL. Email
// uniqueness is enforced by the citext unique constraint; a violation is
// translated to auth.ErrEmailInUse so the service never sees pq details.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository wraps an existing *sql.DB connection.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user auth.User) error {
	const query = `INSERT INTO users (id, email, password_hash, full_name, role, created_at)
                   VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, string(user.PasswordHash), user.FullName, string(user.Role), user.CreatedAt)
	return translateUserError(err)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (auth.User, error) {
	const query = `SELECT id, email, password_hash, full_name, role, created_at
                   FROM users WHERE email = $1`
	var (
		user auth.User
		hash string
		role string
	)
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&hash,
		&user.FullName,
		&role,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return auth.User{}, auth.ErrUserNotFound
		}
		return auth.User{}, translateUserError(err)
	}
	user.PasswordHash = []byte(hash)
	user.Role = auth.Role(role)
	return user, nil
}

func translateUserError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			return auth.ErrEmailInUse
		case "22P02":
			return auth.ErrUserNotFound
		}
	}
	return err
}

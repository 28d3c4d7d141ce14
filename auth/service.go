package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Service is the credential verifier: it orchestrates lookup, hashing, and
// the optional login throttle. It returns typed outcomes only and never
// writes HTTP responses.
type Service struct {
	repo     UserRepository
	hasher   PasswordHasher
	throttle *LoginThrottle
	now      func() time.Time
	newID    func() string
}

// ServiceConfig wires the Service dependencies. Repository and Hasher are
// required; Throttle, Now, and NewID are optional.
type ServiceConfig struct {
	Repository UserRepository
	Hasher     PasswordHasher
	Throttle   *LoginThrottle
	Now        func() time.Time
	NewID      func() string
}

// NewService builds a Service from its configuration.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Repository == nil || cfg.Hasher == nil {
		return nil, ErrInvalidInput
	}
	svc := &Service{
		repo:     cfg.Repository,
		hasher:   cfg.Hasher,
		throttle: cfg.Throttle,
		now:      cfg.Now,
		newID:    cfg.NewID,
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	if svc.newID == nil {
		svc.newID = uuid.NewString
	}
	return svc, nil
}

// Register creates a new user. The email is normalized before the
// uniqueness check; the password is hashed with a per-record salt; the
// role defaults to student when empty. Duplicate emails surface as
// ErrEmailInUse regardless of casing.
func (s *Service) Register(ctx context.Context, email, password, fullName, role string) (User, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" || fullName == "" {
		return User{}, ErrInvalidInput
	}
	parsedRole, err := ParseRole(role)
	if err != nil {
		return User{}, err
	}

	hash, err := s.hasher.Hash(ctx, []byte(password))
	if err != nil {
		return User{}, err
	}

	user := User{
		ID:           s.newID(),
		Email:        email,
		FullName:     fullName,
		Role:         parsedRole,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

// Login verifies credentials. An unknown email and a wrong password both
// yield ErrInvalidCredentials; nothing in the outcome distinguishes them.
func (s *Service) Login(ctx context.Context, email, password string) (User, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return User{}, ErrInvalidInput
	}

	if s.throttle != nil {
		if err := s.throttle.Check(ctx, email); err != nil {
			return User{}, err
		}
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			s.recordFailure(ctx, email)
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}

	if err := s.hasher.Compare(ctx, []byte(password), user.PasswordHash); err != nil {
		if errors.Is(err, ErrPasswordMismatch) {
			s.recordFailure(ctx, email)
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}

	if s.throttle != nil {
		s.throttle.Reset(ctx, email)
	}
	return user, nil
}

func (s *Service) recordFailure(ctx context.Context, email string) {
	if s.throttle != nil {
		s.throttle.RecordFailure(ctx, email)
	}
}

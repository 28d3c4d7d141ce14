package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost balances brute-force resistance against login latency.
const DefaultBcryptCost = 10

// PasswordHasher is the one-way hash primitive the credential verifier
// depends on. Compare must be safe against timing probes.
type PasswordHasher interface {
	Hash(ctx context.Context, plain []byte) ([]byte, error)
	Compare(ctx context.Context, plain, hashed []byte) error
}

// BcryptHasher implements PasswordHasher over x/crypto/bcrypt, which salts
// per hash and compares in constant time.
type BcryptHasher struct {
	cost int
}

// BcryptHasherOption configures BcryptHasher.
type BcryptHasherOption func(*BcryptHasher)

// WithBcryptCost overrides the work factor within bcrypt's allowed range.
func WithBcryptCost(cost int) BcryptHasherOption {
	return func(h *BcryptHasher) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			h.cost = cost
		}
	}
}

// NewBcryptHasher creates a hasher with the default work factor.
func NewBcryptHasher(opts ...BcryptHasherOption) *BcryptHasher {
	h := &BcryptHasher{cost: DefaultBcryptCost}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	return h
}

// Hash derives a salted hash of plain.
func (h *BcryptHasher) Hash(ctx context.Context, plain []byte) ([]byte, error) {
	if err := contextError(ctx); err != nil {
		return nil, err
	}
	if len(plain) == 0 {
		return nil, ErrInvalidInput
	}
	hashed, err := bcrypt.GenerateFromPassword(plain, h.cost)
	if err != nil {
		return nil, fmt.Errorf("auth: bcrypt hash: %w", err)
	}
	return hashed, nil
}

// Compare verifies plain against a stored hash, returning
// ErrPasswordMismatch when they disagree.
func (h *BcryptHasher) Compare(ctx context.Context, plain, hashed []byte) error {
	if err := contextError(ctx); err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword(hashed, plain); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrPasswordMismatch
		}
		return fmt.Errorf("auth: bcrypt compare: %w", err)
	}
	return nil
}

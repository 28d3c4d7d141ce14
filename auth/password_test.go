package auth

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func testHasher() *BcryptHasher {
	return NewBcryptHasher(WithBcryptCost(bcrypt.MinCost))
}

func TestBcryptHasherRoundTrip(t *testing.T) {
	hasher := testHasher()
	ctx := context.Background()

	hash, err := hasher.Hash(ctx, []byte("correct horse battery staple"))
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if string(hash) == "correct horse battery staple" {
		t.Fatalf("Hash() returned the plaintext")
	}

	if err := hasher.Compare(ctx, []byte("correct horse battery staple"), hash); err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
}

func TestBcryptHasherMismatch(t *testing.T) {
	hasher := testHasher()
	ctx := context.Background()

	hash, err := hasher.Hash(ctx, []byte("right"))
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if err := hasher.Compare(ctx, []byte("wrong"), hash); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("Compare() error = %v, want ErrPasswordMismatch", err)
	}
}

func TestBcryptHasherSaltsPerHash(t *testing.T) {
	hasher := testHasher()
	ctx := context.Background()

	first, err := hasher.Hash(ctx, []byte("same input"))
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	second, err := hasher.Hash(ctx, []byte("same input"))
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if string(first) == string(second) {
		t.Fatalf("two hashes of the same input are identical, salting broken")
	}
}

func TestBcryptHasherEmptyPassword(t *testing.T) {
	hasher := testHasher()
	if _, err := hasher.Hash(context.Background(), nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Hash(empty) error = %v, want ErrInvalidInput", err)
	}
}

func TestBcryptHasherCanceledContext(t *testing.T) {
	hasher := testHasher()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := hasher.Hash(ctx, []byte("pw")); !errors.Is(err, context.Canceled) {
		t.Fatalf("Hash() error = %v, want context.Canceled", err)
	}
	if err := hasher.Compare(ctx, []byte("pw"), []byte("hash")); !errors.Is(err, context.Canceled) {
		t.Fatalf("Compare() error = %v, want context.Canceled", err)
	}
}

func TestWithBcryptCostBounds(t *testing.T) {
	hasher := NewBcryptHasher(WithBcryptCost(bcrypt.MaxCost + 1))
	if hasher.cost != DefaultBcryptCost {
		t.Fatalf("out-of-range cost applied: %d", hasher.cost)
	}
	hasher = NewBcryptHasher(WithBcryptCost(bcrypt.MinCost))
	if hasher.cost != bcrypt.MinCost {
		t.Fatalf("in-range cost ignored: %d", hasher.cost)
	}
}

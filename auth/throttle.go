package auth

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/campuswell/pulse/cache"
)

// Throttle defaults: ten failures inside fifteen minutes locks the email
// out until the window lapses.
const (
	DefaultThrottleLimit  = 10
	DefaultThrottleWindow = 15 * time.Minute
)

// LoginThrottle counts failed login attempts per normalized email in a
// TTL store. It is advisory hardening on top of the generic credential
// failure, not a replacement for it.
type LoginThrottle struct {
	store  cache.Store
	prefix string
	limit  int
	window time.Duration
}

// LoginThrottleOption customises a LoginThrottle.
type LoginThrottleOption func(*LoginThrottle)

// WithThrottleLimit sets the failure count that triggers lockout.
func WithThrottleLimit(n int) LoginThrottleOption {
	return func(t *LoginThrottle) {
		if n > 0 {
			t.limit = n
		}
	}
}

// WithThrottleWindow sets how long a lockout counter persists.
func WithThrottleWindow(d time.Duration) LoginThrottleOption {
	return func(t *LoginThrottle) {
		if d > 0 {
			t.window = d
		}
	}
}

// NewLoginThrottle builds a throttle over the given store.
func NewLoginThrottle(store cache.Store, opts ...LoginThrottleOption) *LoginThrottle {
	t := &LoginThrottle{
		store:  store,
		prefix: "login-fail",
		limit:  DefaultThrottleLimit,
		window: DefaultThrottleWindow,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	return t
}

// Check returns ErrTooManyAttempts once the failure count for email has
// reached the limit. Store errors are swallowed: a broken throttle store
// must not lock everyone out.
func (t *LoginThrottle) Check(ctx context.Context, email string) error {
	count, err := t.count(ctx, email)
	if err != nil {
		return nil
	}
	if count >= t.limit {
		return ErrTooManyAttempts
	}
	return nil
}

// RecordFailure bumps the counter and refreshes its window.
func (t *LoginThrottle) RecordFailure(ctx context.Context, email string) {
	count, _ := t.count(ctx, email)
	value := []byte(strconv.Itoa(count + 1))
	_ = t.store.Set(ctx, t.key(email), value, t.window)
}

// Reset clears the counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, email string) {
	_ = t.store.Delete(ctx, t.key(email))
}

func (t *LoginThrottle) count(ctx context.Context, email string) (int, error) {
	payload, err := t.store.Get(ctx, t.key(email))
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	count, err := strconv.Atoi(string(payload))
	if err != nil {
		return 0, nil
	}
	return count, nil
}

func (t *LoginThrottle) key(email string) string {
	return t.prefix + ":" + email
}

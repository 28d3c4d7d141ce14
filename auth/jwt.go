package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"
)

// DefaultTokenTTL is the lifetime applied when no override is configured.
const DefaultTokenTTL = time.Hour

// Codec signs and verifies the compact session token: three base64
// raw-URL segments (header.payload.signature) over HMAC-SHA256. Signing
// and verification are pure CPU work, no I/O.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// CodecOption customises a Codec.
type CodecOption func(*Codec)

// WithTokenTTL overrides the default one hour token lifetime.
func WithTokenTTL(d time.Duration) CodecOption {
	return func(c *Codec) {
		if d > 0 {
			c.ttl = d
		}
	}
}

// WithClock injects a deterministic clock for tests.
func WithClock(fn func() time.Time) CodecOption {
	return func(c *Codec) {
		if fn != nil {
			c.now = fn
		}
	}
}

// NewCodec builds a Codec. An empty secret is a configuration fault and
// refuses construction; the process should not start without one.
func NewCodec(secret []byte, opts ...CodecOption) (*Codec, error) {
	if len(secret) == 0 {
		return nil, ErrMissingSecret
	}
	c := &Codec{
		secret: append([]byte(nil), secret...),
		ttl:    DefaultTokenTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// TTL reports the configured token lifetime.
func (c *Codec) TTL() time.Duration { return c.ttl }

type tokenHeader struct {
	Algorithm string `json:"alg"`
	Type      string `json:"typ"`
}

type tokenPayload struct {
	Subject   string `json:"sub"`
	Email     string `json:"email"`
	FullName  string `json:"name,omitempty"`
	Role      string `json:"role"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// Sign mints a token for the given claims. Zero IssuedAt/ExpiresAt are
// filled from the codec clock and TTL.
func (c *Codec) Sign(claims Claims) (string, error) {
	now := c.now()
	if claims.IssuedAt.IsZero() {
		claims.IssuedAt = now
	}
	if claims.ExpiresAt.IsZero() {
		claims.ExpiresAt = claims.IssuedAt.Add(c.ttl)
	}
	if claims.ExpiresAt.Before(claims.IssuedAt) {
		return "", ErrInvalidToken
	}

	headerSeg, err := encodeSegment(tokenHeader{Algorithm: "HS256", Type: "JWT"})
	if err != nil {
		return "", err
	}
	payloadSeg, err := encodeSegment(tokenPayload{
		Subject:   claims.UserID,
		Email:     claims.Email,
		FullName:  claims.FullName,
		Role:      string(claims.Role),
		IssuedAt:  claims.IssuedAt.Unix(),
		ExpiresAt: claims.ExpiresAt.Unix(),
	})
	if err != nil {
		return "", err
	}

	signingInput := headerSeg + "." + payloadSeg
	return signingInput + "." + c.sign(signingInput), nil
}

// Verify checks signature and expiry and returns the embedded claims.
// Malformed input, a bad signature, and a lapsed expiry all yield the same
// ErrInvalidToken so callers cannot probe token structure.
func (c *Codec) Verify(raw string) (Claims, error) {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return Claims{}, ErrInvalidToken
	}

	var header tokenHeader
	if err := decodeSegment(parts[0], &header); err != nil {
		return Claims{}, ErrInvalidToken
	}
	if header.Algorithm != "HS256" {
		return Claims{}, ErrInvalidToken
	}

	provided, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return Claims{}, ErrInvalidToken
	}
	mac := hmac.New(sha256.New, c.secret)
	_, _ = mac.Write([]byte(parts[0] + "." + parts[1]))
	if !hmac.Equal(provided, mac.Sum(nil)) {
		return Claims{}, ErrInvalidToken
	}

	var payload tokenPayload
	if err := decodeSegment(parts[1], &payload); err != nil {
		return Claims{}, ErrInvalidToken
	}

	claims := Claims{
		UserID:    payload.Subject,
		Email:     payload.Email,
		FullName:  payload.FullName,
		Role:      Role(payload.Role),
		IssuedAt:  time.Unix(payload.IssuedAt, 0).UTC(),
		ExpiresAt: time.Unix(payload.ExpiresAt, 0).UTC(),
	}
	if payload.ExpiresAt == 0 || c.now().After(claims.ExpiresAt) {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}

func (c *Codec) sign(input string) string {
	mac := hmac.New(sha256.New, c.secret)
	_, _ = mac.Write([]byte(input))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func encodeSegment(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

func decodeSegment(segment string, dest any) error {
	data, err := base64.RawURLEncoding.DecodeString(segment)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

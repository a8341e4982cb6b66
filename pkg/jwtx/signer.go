package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrEmptySecret is returned when an HMAC key of zero length is supplied.
var ErrEmptySecret = errors.New("jwtx: empty signing secret")

// HS256 signs and verifies session tokens with a shared HMAC-SHA256 secret.
type HS256 struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Option tweaks an HS256 at construction time.
type Option func(*HS256)

// WithTTL overrides DefaultSessionTTL.
func WithTTL(ttl time.Duration) Option {
	return func(h *HS256) {
		if ttl > 0 {
			h.ttl = ttl
		}
	}
}

// WithClock replaces time.Now for both issuing and verifying. Tests use it to
// move across the expiry boundary.
func WithClock(now func() time.Time) Option {
	return func(h *HS256) {
		if now != nil {
			h.now = now
		}
	}
}

// NewHS256 returns an HS256 signer/verifier for secret.
func NewHS256(secret []byte, opts ...Option) (*HS256, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}

	h := &HS256{
		secret: append([]byte(nil), secret...),
		ttl:    DefaultSessionTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// TTL reports the lifetime given to issued tokens.
func (h *HS256) TTL() time.Duration { return h.ttl }

// Sign encodes c as a compact HS256 JWT.
func (h *HS256) Sign(c Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(h.secret)
}

// Issue builds fresh session claims for a user and signs them.
func (h *HS256) Issue(userID int64, username, roleName string) (string, error) {
	return h.Sign(NewSessionClaims(userID, username, roleName, h.ttl, h.now()))
}

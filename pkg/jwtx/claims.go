package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is how long a login token stays valid.
const DefaultSessionTTL = 24 * time.Hour

// Claims are the session-token claims handed out on login. Only iat and exp
// are populated from the registered set; the user id travels as the numeric
// "subject" claim rather than the string "sub".
type Claims struct {
	jwt.RegisteredClaims

	// Store-assigned user id
	UserID int64 `json:"subject"`

	Username string `json:"username"`
	RoleName string `json:"role_name"`
}

// NewSessionClaims builds claims valid from now until now+ttl.
func NewSessionClaims(userID int64, username, roleName string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID:   userID,
		Username: username,
		RoleName: roleName,
	}
}

// Validate rejects claims that cannot identify a user. It is called by the
// jwt parser after the registered claims have been checked.
func (c Claims) Validate() error {
	if c.UserID <= 0 || c.Username == "" {
		return ErrInvalidClaim
	}
	return nil
}

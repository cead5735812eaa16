// Package token extracts lifetime information from backend-issued JWTs.
//
// The client never verifies token signatures: it is not a party to the
// signing key, and a forged expiry only shortens or lengthens the client's
// own bookkeeping. The backend remains the authority on token validity.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoExpiryClaim is returned for a structurally valid token whose payload
// carries no exp claim.
var ErrNoExpiryClaim = errors.New("token has no expiry claim")

// ErrMalformedToken wraps parse failures of a token that is not a JWT.
var ErrMalformedToken = errors.New("malformed token")

// ExpiryClaim decodes the token's payload without verifying its signature
// and returns the instant its exp claim names.
func ExpiryClaim(tok string) (time.Time, error) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, &claims); err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, ErrNoExpiryClaim
	}
	return claims.ExpiresAt.Time, nil
}

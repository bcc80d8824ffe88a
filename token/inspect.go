package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrOpaque is returned when a token cannot be parsed as a JWT. Opaque tokens
// are still usable for requests; they just carry no readable expiry.
var ErrOpaque = errors.New("token is not an inspectable jwt")

// Claims is the readable subset of an access token.
type Claims struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Inspect reads the standard claims of raw without verifying its signature.
func Inspect(raw string) (Claims, error) {
	parser := jwt.NewParser()
	var reg jwt.RegisteredClaims
	if _, _, err := parser.ParseUnverified(raw, &reg); err != nil {
		return Claims{}, ErrOpaque
	}
	c := Claims{Subject: reg.Subject}
	if reg.IssuedAt != nil {
		c.IssuedAt = reg.IssuedAt.Time
	}
	if reg.ExpiresAt != nil {
		c.ExpiresAt = reg.ExpiresAt.Time
	}
	return c, nil
}

// ExpiresWithin reports whether raw carries an expiry claim that falls inside
// the next window. Opaque tokens and tokens without an expiry report false:
// without a readable deadline the client must rely on the 401 path.
func ExpiresWithin(raw string, window time.Duration) bool {
	c, err := Inspect(raw)
	if err != nil || c.ExpiresAt.IsZero() {
		return false
	}
	return time.Until(c.ExpiresAt) <= window
}

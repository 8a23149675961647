// Package auth implements token-based authentication and the role/ownership
// authorization policy for hive records. The token codec signs and verifies
// compact HS256 JWTs carrying the subject id and role; the identity extractor
// turns an inbound request into an Identity or nothing; the policy functions
// decide what an identity may do. All failures collapse to uniform rejections
// so callers cannot distinguish an expired token from a forged one.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the validity window applied when the caller does not
// configure one explicitly.
const DefaultTokenTTL = 7 * 24 * time.Hour

// ErrNoSecret is returned by NewTokenCodec when no signing secret is
// configured. Surfacing this at construction time keeps a missing secret
// from turning into a per-request nil check.
var ErrNoSecret = errors.New("auth: signing secret is not configured")

// ErrInvalidToken is the single error returned for every verification
// failure: bad signature, malformed token, wrong algorithm, missing or
// unknown claims, expiry. Callers only need to know the token is unusable.
var ErrInvalidToken = errors.New("auth: invalid token")

// TokenCodec signs and verifies access tokens. It is constructed once at
// startup with the signing secret and token lifetime and is safe for
// concurrent use.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenCodec builds a codec from the given secret and time-to-live.
// An empty secret yields ErrNoSecret. A non-positive ttl falls back to
// DefaultTokenTTL.
func NewTokenCodec(secret string, ttl time.Duration) (*TokenCodec, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenCodec{secret: []byte(secret), ttl: ttl}, nil
}

// Sign issues an HS256 JWT for the given subject and role. The claims are
// sub (user id), role, iat and exp.
func (tc *TokenCodec) Sign(userID uint64, role Role) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  now.Add(tc.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(tc.secret)
}

// Verify parses and validates a token string and returns the subject id and
// role it carries. Any failure returns ErrInvalidToken.
func (tc *TokenCodec) Verify(token string) (uint64, Role, error) {
	tok, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		// Only HMAC is ever issued; reject tokens signed any other way.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return tc.secret, nil
	})
	if err != nil || !tok.Valid {
		return 0, "", ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", ErrInvalidToken
	}
	sub, ok := claims["sub"].(float64)
	if !ok || sub < 0 {
		return 0, "", ErrInvalidToken
	}
	roleStr, ok := claims["role"].(string)
	if !ok {
		return 0, "", ErrInvalidToken
	}
	role, ok := ParseRole(roleStr)
	if !ok {
		return 0, "", ErrInvalidToken
	}
	return uint64(sub), role, nil
}

// Package jwt provides the maya.TokenService implementation backed by
// HMAC-signed JSON Web Tokens.
package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/rathodv/maya"
)

// DefaultTokenTTL is how long an issued access token stays valid.
const DefaultTokenTTL = 72 * time.Hour

// Ensure TokenService implements maya.TokenService at compile time.
var _ maya.TokenService = (*TokenService)(nil)

// Claims carries the user ID alongside the registered claims.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
}

// TokenService issues and verifies HS256-signed tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration

	// now allows tests to control time.
	now func() time.Time
}

// Option configures a TokenService.
type Option func(*TokenService)

// WithTTL sets the token lifetime. Defaults to DefaultTokenTTL.
func WithTTL(d time.Duration) Option {
	return func(s *TokenService) {
		s.ttl = d
	}
}

// NewTokenService creates a new TokenService signing with the given
// secret.
func NewTokenService(secret string, opts ...Option) *TokenService {
	s := &TokenService{
		secret: []byte(secret),
		ttl:    DefaultTokenTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue returns a signed token carrying the user ID.
func (s *TokenService) Issue(userID string) (string, error) {
	if userID == "" {
		return "", maya.Errorf(maya.EINVALID, "user ID required")
	}
	if len(s.secret) == 0 {
		return "", maya.Errorf(maya.EINTERNAL, "token secret not configured")
	}

	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		UserID: userID,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify parses a token and returns the user ID it carries.
func (s *TokenService) Verify(token string) (string, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, maya.Errorf(maya.EUNAUTHORIZED, "unexpected signing method %q", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))

	if err != nil || !parsed.Valid || claims.UserID == "" {
		return "", maya.Errorf(maya.EUNAUTHORIZED, "invalid or expired token")
	}
	return claims.UserID, nil
}

// Package auth provides token and API-key verification for callers that put
// the extractor behind a service boundary: HS256 JWTs with configurable
// expiry, constant-time API-key comparison, and an origin allowlist.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenExpiry is used when the config leaves expiry unset.
const DefaultTokenExpiry = time.Hour

// ErrInvalidToken is returned for tokens that fail signature, format, or
// expiry checks.
var ErrInvalidToken = errors.New("invalid token")

// Config holds the security settings.
type Config struct {
	JWTSecret      string
	TokenExpiry    time.Duration
	AllowedOrigins []string
}

// Security issues and verifies credentials.
type Security struct {
	config Config
	now    func() time.Time
}

// New creates a Security from config, applying the default expiry.
func New(config Config) *Security {
	if config.TokenExpiry <= 0 {
		config.TokenExpiry = DefaultTokenExpiry
	}
	return &Security{config: config, now: time.Now}
}

// CreateToken mints an HS256 JWT carrying the given claims plus an expiry.
func (s *Security) CreateToken(claims map[string]any) (string, error) {
	if s.config.JWTSecret == "" {
		return "", errors.New("jwt secret not configured")
	}

	mapClaims := jwt.MapClaims{}
	for k, v := range claims {
		mapClaims[k] = v
	}
	mapClaims["exp"] = s.now().Add(s.config.TokenExpiry).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, mapClaims)
	signed, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// VerifyToken validates an HS256 JWT and returns its claims.
// Expired, malformed, or wrongly-signed tokens return ErrInvalidToken.
func (s *Security) VerifyToken(tokenString string) (map[string]any, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.config.JWTSecret), nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// VerifyAPIKey compares an API key against the stored one in constant time.
func (s *Security) VerifyAPIKey(apiKey, storedKey string) bool {
	got := sha256.Sum256([]byte(apiKey))
	want := sha256.Sum256([]byte(storedKey))
	return subtle.ConstantTimeCompare(got[:], want[:]) == 1
}

// IsAllowedOrigin reports whether the origin is on the allowlist.
// A "*" entry allows any origin; an empty allowlist allows none.
func (s *Security) IsAllowedOrigin(origin string) bool {
	for _, allowed := range s.config.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

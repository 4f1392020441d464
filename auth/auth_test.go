package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundtrip(t *testing.T) {
	s := New(Config{JWTSecret: "s3cret"})

	token, err := s.CreateToken(map[string]any{"sub": "ada"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := s.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ada", claims["sub"])
}

func TestExpiredTokenRejected(t *testing.T) {
	base := time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	s := New(Config{JWTSecret: "s3cret", TokenExpiry: time.Minute})
	s.now = func() time.Time { return base }

	token, err := s.CreateToken(nil)
	require.NoError(t, err)

	s.now = func() time.Time { return base.Add(2 * time.Minute) }
	_, err = s.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestWrongSecretRejected(t *testing.T) {
	issuer := New(Config{JWTSecret: "right"})
	verifier := New(Config{JWTSecret: "wrong"})

	token, err := issuer.CreateToken(nil)
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestMalformedTokenRejected(t *testing.T) {
	s := New(Config{JWTSecret: "s3cret"})
	_, err := s.VerifyToken("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCreateTokenRequiresSecret(t *testing.T) {
	s := New(Config{})
	_, err := s.CreateToken(nil)
	assert.Error(t, err)
}

func TestVerifyAPIKey(t *testing.T) {
	s := New(Config{})
	assert.True(t, s.VerifyAPIKey("key-1", "key-1"))
	assert.False(t, s.VerifyAPIKey("key-1", "key-2"))
	assert.True(t, s.VerifyAPIKey("", ""))
}

func TestIsAllowedOrigin(t *testing.T) {
	s := New(Config{AllowedOrigins: []string{"https://a.example.com"}})
	assert.True(t, s.IsAllowedOrigin("https://a.example.com"))
	assert.False(t, s.IsAllowedOrigin("https://b.example.com"))

	wildcard := New(Config{AllowedOrigins: []string{"*"}})
	assert.True(t, wildcard.IsAllowedOrigin("https://anything.example.com"))

	none := New(Config{})
	assert.False(t, none.IsAllowedOrigin("https://a.example.com"))
}

package lib

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestJWTIssuer_SignVerify(t *testing.T) {
	issuer := NewJWTIssuer("test-secret", time.Hour)

	token, err := issuer.Sign("a@x.com")
	require.NoError(t, err)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, "a@x.com", claims.Subject)
}

func TestJWTIssuer_Expired(t *testing.T) {
	issuer := NewJWTIssuer("test-secret", 1500*time.Second)
	issued := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return issued }

	token, err := issuer.Sign("a@x.com")
	require.NoError(t, err)

	issuer.now = func() time.Time { return issued.Add(1499 * time.Second) }
	_, err = issuer.Verify(token)
	require.NoError(t, err)

	issuer.now = func() time.Time { return issued.Add(1501 * time.Second) }
	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWTIssuer_Rejects(t *testing.T) {
	issuer := NewJWTIssuer("test-secret", time.Hour)

	other, err := NewJWTIssuer("other-secret", time.Hour).Sign("a@x.com")
	require.NoError(t, err)
	_, err = issuer.Verify(other)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = issuer.Verify("not.a.token")
	assert.ErrorIs(t, err, ErrUnauthorized)

	noEmail, err := jwt.NewWithClaims(jwt.SigningMethodHS256, TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = issuer.Verify(noEmail)
	assert.ErrorIs(t, err, ErrUnauthorized)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, TokenClaims{Email: "a@x.com"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = issuer.Verify(none)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestBcryptHasher(t *testing.T) {
	hasher := BcryptHasher{Cost: bcrypt.MinCost}

	hash, err := hasher.Hash("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)
	assert.True(t, hasher.Verify("secret123", hash))
	assert.False(t, hasher.Verify("secret124", hash))
	assert.False(t, hasher.Verify("secret123", "not-a-hash"))

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestMessageResponse(t *testing.T) {
	assert.Equal(t, "hello", MessageResponse("hello")["message"])
}

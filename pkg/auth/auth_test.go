package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestJWTManager(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	t.Run("round trip", func(t *testing.T) {
		token, err := m.Generate("u1", "Ann", "a.png")
		require.NoError(t, err)

		claims, err := m.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, "u1", claims.UserID)
		assert.Equal(t, "Ann", claims.Name)
		assert.Equal(t, "a.png", claims.Avatar)
		assert.Equal(t, "u1", claims.Subject)
	})

	t.Run("expired token", func(t *testing.T) {
		issued := time.Now().Add(-2 * time.Hour)
		old := NewJWTManager("secret", time.Hour)
		old.now = func() time.Time { return issued }
		token, err := old.Generate("u1", "Ann", "")
		require.NoError(t, err)

		_, err = m.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := NewJWTManager("other", time.Hour).Generate("u1", "Ann", "")
		require.NoError(t, err)

		_, err = m.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unsigned token", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "u1"}).
			SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = m.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("default ttl", func(t *testing.T) {
		assert.Equal(t, DefaultTokenTTL, NewJWTManager("secret", 0).ttl)
	})
}

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)
	assert.NoError(t, h.Compare(hash, "secret1"))
	assert.Error(t, h.Compare(hash, "secret2"))

	again, err := h.Hash("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again, "salted")

	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(99).cost)
}

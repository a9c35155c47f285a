package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jwtTestSecret = []byte("jwt-test-secret-at-least-32-bytes!!!")

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(jwtTestSecret)
	require.NoError(t, err)
	return signed
}

func TestActorFromToken(t *testing.T) {
	t.Run("full claims", func(t *testing.T) {
		raw := signToken(t, jwt.MapClaims{
			"sub":   "u-42",
			"email": "ada@example.com",
			"roles": []any{"admin", "manager"},
			"exp":   time.Now().Add(time.Hour).Unix(),
		})

		actor, err := ActorFromToken(raw, jwtTestSecret)
		require.NoError(t, err)
		assert.Equal(t, "u-42", actor.ID)
		assert.Equal(t, "ada@example.com", actor.Email)
		assert.Equal(t, []string{"admin", "manager"}, actor.Roles)
	})

	t.Run("sub only", func(t *testing.T) {
		raw := signToken(t, jwt.MapClaims{"sub": "u-1"})

		actor, err := ActorFromToken(raw, jwtTestSecret)
		require.NoError(t, err)
		assert.Equal(t, "u-1", actor.ID)
		assert.Empty(t, actor.Email)
		assert.Empty(t, actor.Roles)
	})

	t.Run("missing sub", func(t *testing.T) {
		raw := signToken(t, jwt.MapClaims{"email": "x@example.com"})

		_, err := ActorFromToken(raw, jwtTestSecret)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		raw := signToken(t, jwt.MapClaims{"sub": "u-1"})

		_, err := ActorFromToken(raw, []byte("another-secret-at-least-32-bytes!!!!"))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		raw := signToken(t, jwt.MapClaims{
			"sub": "u-1",
			"exp": time.Now().Add(-time.Hour).Unix(),
		})

		_, err := ActorFromToken(raw, jwtTestSecret)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("malformed token", func(t *testing.T) {
		_, err := ActorFromToken("not.a.token", jwtTestSecret)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("non-string roles skipped", func(t *testing.T) {
		raw := signToken(t, jwt.MapClaims{
			"sub":   "u-1",
			"roles": []any{"admin", 7, "viewer"},
		})

		actor, err := ActorFromToken(raw, jwtTestSecret)
		require.NoError(t, err)
		assert.Equal(t, []string{"admin", "viewer"}, actor.Roles)
	})
}

func TestActorFromToken_RejectsNone(t *testing.T) {
	// alg=none tokens must never authenticate
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "u-1"})
	raw, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ActorFromToken(raw, jwtTestSecret)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

package tokens

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	secret := []byte("sekret")

	tokenStr, err := NewAccessToken("42", SubjectAdmin, "superadmin", time.Now().Add(time.Minute), secret)
	require.NoError(t, err)

	claims, err := AccessClaimsFromToken(tokenStr, secret)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, SubjectAdmin, claims.Typ)
	assert.Equal(t, "superadmin", claims.Role)
}

func TestAccessTokenWrongSecret(t *testing.T) {
	tokenStr, err := NewAccessToken("1", SubjectUser, "user", time.Now().Add(time.Minute), []byte("right"))
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(tokenStr, []byte("wrong"))
	assert.Error(t, err)
}

func TestAccessTokenExpired(t *testing.T) {
	secret := []byte("sekret")
	tokenStr, err := NewAccessToken("1", SubjectUser, "user", time.Now().Add(-time.Minute), secret)
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(tokenStr, secret)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestOpaqueTokensAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		tok, err := NewOpaqueToken()
		require.NoError(t, err)
		require.NotEmpty(t, tok)
		assert.False(t, seen[tok])
		seen[tok] = true
	}
}

func TestSha256HexIsStable(t *testing.T) {
	assert.Equal(t, Sha256Hex("abc"), Sha256Hex("abc"))
	assert.NotEqual(t, Sha256Hex("abc"), Sha256Hex("abd"))
	assert.Len(t, Sha256Hex("anything"), 64)
}

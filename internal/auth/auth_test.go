package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, CheckPassword(hash, "s3cret-pass"))
	assert.False(t, CheckPassword(hash, "wrong-pass"))
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", time.Minute, time.Hour)

	signed, err := m.IssueAccessToken("usr_1", "installer", true)
	require.NoError(t, err)

	claims, err := m.VerifyAccessToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "usr_1", claims.Subject)
	assert.Equal(t, "installer", claims.Username)
	assert.True(t, claims.IsAdmin)
	assert.NotEmpty(t, claims.ID)
}

func TestAccessTokenJTIUnique(t *testing.T) {
	m := NewTokenManager("test-secret", time.Minute, time.Hour)

	first, err := m.IssueAccessToken("usr_1", "installer", false)
	require.NoError(t, err)
	second, err := m.IssueAccessToken("usr_1", "installer", false)
	require.NoError(t, err)

	a, err := m.VerifyAccessToken(first)
	require.NoError(t, err)
	b, err := m.VerifyAccessToken(second)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", time.Minute, time.Hour)
	verifier := NewTokenManager("secret-b", time.Minute, time.Hour)

	signed, err := issuer.IssueAccessToken("usr_1", "installer", false)
	require.NoError(t, err)

	_, err = verifier.VerifyAccessToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpired(t *testing.T) {
	m := NewTokenManager("test-secret", -time.Minute, time.Hour)

	signed, err := m.IssueAccessToken("usr_1", "installer", false)
	require.NoError(t, err)

	_, err = m.VerifyAccessToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	m := NewTokenManager("test-secret", time.Minute, time.Hour)

	_, err := m.VerifyAccessToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewRefreshToken(t *testing.T) {
	m := NewTokenManager("test-secret", time.Minute, time.Hour)

	tok, expiresAt := m.NewRefreshToken()
	assert.NotEmpty(t, tok)
	assert.True(t, expiresAt.After(time.Now()))

	other, _ := m.NewRefreshToken()
	assert.NotEqual(t, tok, other)
}

package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, CheckPassword("correct horse battery staple", hash))
	assert.False(t, CheckPassword("wrong password", hash))
	assert.False(t, CheckPassword("correct horse battery staple", "not-a-hash"))
}

func TestIssueAndVerifyToken(t *testing.T) {
	mgr := NewManager("test-secret-key", 7)

	token, err := mgr.IssueToken(42, "alice@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	principal, err := mgr.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), principal.UserID)
	assert.Equal(t, "alice@example.com", principal.Email)
}

func TestVerifyTokenRejectsTampered(t *testing.T) {
	mgr := NewManager("test-secret-key", 7)
	token, err := mgr.IssueToken(1, "a@b.com")
	require.NoError(t, err)

	_, err = mgr.VerifyToken(token + "x")
	assert.Error(t, err)

	_, err = mgr.VerifyToken("not.a.token")
	assert.Error(t, err)

	_, err = mgr.VerifyToken("")
	assert.Error(t, err)
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	mgr := NewManager("secret-one", 7)
	other := NewManager("secret-two", 7)

	token, err := mgr.IssueToken(1, "a@b.com")
	require.NoError(t, err)

	_, err = other.VerifyToken(token)
	assert.Error(t, err)
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	mgr := NewManager("test-secret-key", 7)
	// Force an already-expired token.
	mgr.expiry = -time.Hour

	token, err := mgr.IssueToken(1, "a@b.com")
	require.NoError(t, err)

	_, err = mgr.VerifyToken(token)
	assert.Error(t, err)
}

func TestIssueTokenRequiresSecret(t *testing.T) {
	mgr := NewManager("", 7)
	_, err := mgr.IssueToken(1, "a@b.com")
	assert.Error(t, err)
}

func TestTokensCarryUniqueIDs(t *testing.T) {
	mgr := NewManager("test-secret-key", 7)
	t1, err := mgr.IssueToken(1, "a@b.com")
	require.NoError(t, err)
	t2, err := mgr.IssueToken(1, "a@b.com")
	require.NoError(t, err)
	assert.NotEqual(t, t1, t2)
}

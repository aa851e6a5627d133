package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)

	assert.True(t, CheckPassword(hash, "hunter2"))
	assert.False(t, CheckPassword(hash, "hunter3"))
	assert.False(t, CheckPassword("not-a-hash", "hunter2"))
}

func TestIssueAndParseToken(t *testing.T) {
	token, err := IssueToken("secret", "acct-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	accountID, err := ParseToken("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "acct-1", accountID)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := IssueToken("secret", "acct-1")
	require.NoError(t, err)

	_, err = ParseToken("other-secret", token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken("secret", "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenEmptySubject(t *testing.T) {
	token, err := IssueToken("secret", "")
	require.NoError(t, err)

	_, err = ParseToken("secret", token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"showsync/internal/models"
)

func newTestDB(t *testing.T) *BoltDB {
	t.Helper()
	db, err := NewBolt(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestCreateAndGetAccount(t *testing.T) {
	db := newTestDB(t)

	account := &models.Account{
		ID:           "acct-1",
		Email:        "user@example.com",
		PasswordHash: "hash",
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, db.CreateAccount(account))

	got, err := db.GetAccountByEmail("user@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "acct-1", got.ID)
	assert.Equal(t, "hash", got.PasswordHash)
}

func TestGetAccountUnknownEmailIsNil(t *testing.T) {
	db := newTestDB(t)

	got, err := db.GetAccountByEmail("nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCreateAccountDuplicateEmail(t *testing.T) {
	db := newTestDB(t)

	account := &models.Account{ID: "acct-1", Email: "user@example.com"}
	require.NoError(t, db.CreateAccount(account))

	err := db.CreateAccount(&models.Account{ID: "acct-2", Email: "user@example.com"})
	assert.ErrorIs(t, err, ErrAccountExists)

	// the original record must be untouched
	got, err := db.GetAccountByEmail("user@example.com")
	require.NoError(t, err)
	assert.Equal(t, "acct-1", got.ID)
}

func TestBookmarksSortedAndDeduplicated(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.AddBookmark("acct-1", 1399))
	require.NoError(t, db.AddBookmark("acct-1", 550))
	require.NoError(t, db.AddBookmark("acct-1", 550))

	ids, err := db.GetBookmarks("acct-1")
	require.NoError(t, err)
	assert.Equal(t, []int{550, 1399}, ids)
}

func TestRemoveBookmark(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.AddBookmark("acct-1", 550))
	require.NoError(t, db.AddBookmark("acct-1", 1399))
	require.NoError(t, db.RemoveBookmark("acct-1", 550))

	ids, err := db.GetBookmarks("acct-1")
	require.NoError(t, err)
	assert.Equal(t, []int{1399}, ids)
}

func TestRemoveAbsentBookmarkIsNoOp(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.RemoveBookmark("acct-1", 550))

	ids, err := db.GetBookmarks("acct-1")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestBookmarksIsolatedPerAccount(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.AddBookmark("acct-1", 550))
	require.NoError(t, db.AddBookmark("acct-2", 1399))

	ids, err := db.GetBookmarks("acct-1")
	require.NoError(t, err)
	assert.Equal(t, []int{550}, ids)
}

func TestCredentialRoundTrip(t *testing.T) {
	db := newTestDB(t)

	token, err := db.LoadCredential()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, db.SaveCredential("bearer-token"))

	token, err = db.LoadCredential()
	require.NoError(t, err)
	assert.Equal(t, "bearer-token", token)

	require.NoError(t, db.ClearCredential())

	token, err = db.LoadCredential()
	require.NoError(t, err)
	assert.Empty(t, token)
}

// Package database provides data persistence using BoltDB.
package database

import "showsync/internal/models"

// Database defines the persistence operations of the first-party service.
type Database interface {
	// GetAccountByEmail retrieves an account, nil if absent
	GetAccountByEmail(email string) (*models.Account, error)
	// CreateAccount stores a new account; ErrAccountExists on duplicate email
	CreateAccount(account *models.Account) error
	// GetBookmarks retrieves the full bookmark set for an account
	GetBookmarks(accountID string) ([]int, error)
	// AddBookmark inserts an identifier into the account's set
	AddBookmark(accountID string, mediaID int) error
	// RemoveBookmark deletes an identifier from the account's set
	RemoveBookmark(accountID string, mediaID int) error
	// Close closes the underlying store
	Close() error
}

// CredentialStore persists the client-side bearer token under a fixed key,
// read once at startup and written or cleared on login/logout.
type CredentialStore interface {
	// SaveCredential durably stores the bearer token
	SaveCredential(token string) error
	// LoadCredential returns the stored token, empty if none
	LoadCredential() (string, error)
	// ClearCredential removes the stored token
	ClearCredential() error
}

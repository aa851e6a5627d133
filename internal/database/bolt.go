package database

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"

	"showsync/internal/constants"
	"showsync/internal/models"
)

const (
	dbFileMode = 0600
	dbDirMode  = 0755

	defaultDBFile = "showsync.db"
)

var (
	bucketAccounts  = []byte("accounts")
	bucketBookmarks = []byte("bookmarks")
	bucketSession   = []byte("session")
)

// ErrAccountExists is returned when registering an email that is taken.
var ErrAccountExists = errors.New("account already exists")

// storedAccount is the on-disk shape of an account. The API model hides
// the password hash from JSON, so persistence needs its own record.
type storedAccount struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

// BoltDB implements Database and CredentialStore on a single bbolt file.
type BoltDB struct {
	db *bolt.DB
}

// NewBolt opens (creating if needed) the database at dbPath. An empty path
// uses the default file in the current directory.
func NewBolt(dbPath string) (*BoltDB, error) {
	if dbPath == "" {
		dbPath = filepath.Join(".", defaultDBFile)
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), dbDirMode); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := bolt.Open(dbPath, dbFileMode, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketAccounts, bucketBookmarks, bucketSession} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create buckets: %w", err)
	}

	return &BoltDB{db: db}, nil
}

// Close closes the database.
func (b *BoltDB) Close() error {
	return b.db.Close()
}

// GetAccountByEmail retrieves an account by email.
// Returns nil without error when the account does not exist.
func (b *BoltDB) GetAccountByEmail(email string) (*models.Account, error) {
	var account *models.Account
	err := b.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketAccounts).Get([]byte(email))
		if data == nil {
			return nil
		}
		var stored storedAccount
		if err := json.Unmarshal(data, &stored); err != nil {
			return err
		}
		account = &models.Account{
			ID:           stored.ID,
			Email:        stored.Email,
			PasswordHash: stored.PasswordHash,
			CreatedAt:    stored.CreatedAt,
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

// CreateAccount stores a new account keyed by email.
func (b *BoltDB) CreateAccount(account *models.Account) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketAccounts)
		if bucket.Get([]byte(account.Email)) != nil {
			return ErrAccountExists
		}
		data, err := json.Marshal(storedAccount{
			ID:           account.ID,
			Email:        account.Email,
			PasswordHash: account.PasswordHash,
			CreatedAt:    account.CreatedAt,
		})
		if err != nil {
			return err
		}
		return bucket.Put([]byte(account.Email), data)
	})
	if errors.Is(err, ErrAccountExists) {
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// GetBookmarks returns the account's bookmark identifiers in ascending order.
func (b *BoltDB) GetBookmarks(accountID string) ([]int, error) {
	set := make(map[int]struct{})
	err := b.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucketBookmarks).Get([]byte(accountID))
		if data == nil {
			return nil
		}
		var ids []int
		if err := json.Unmarshal(data, &ids); err != nil {
			return err
		}
		for _, id := range ids {
			set[id] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get bookmarks: %w", err)
	}

	ids := make([]int, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}

// AddBookmark inserts mediaID into the account's set. Adding an existing
// identifier is a no-op.
func (b *BoltDB) AddBookmark(accountID string, mediaID int) error {
	return b.mutateBookmarks(accountID, func(set map[int]struct{}) {
		set[mediaID] = struct{}{}
	})
}

// RemoveBookmark deletes mediaID from the account's set. Removing an absent
// identifier is a no-op.
func (b *BoltDB) RemoveBookmark(accountID string, mediaID int) error {
	return b.mutateBookmarks(accountID, func(set map[int]struct{}) {
		delete(set, mediaID)
	})
}

func (b *BoltDB) mutateBookmarks(accountID string, mutate func(map[int]struct{})) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketBookmarks)

		set := make(map[int]struct{})
		if data := bucket.Get([]byte(accountID)); data != nil {
			var ids []int
			if err := json.Unmarshal(data, &ids); err != nil {
				return err
			}
			for _, id := range ids {
				set[id] = struct{}{}
			}
		}

		mutate(set)

		ids := make([]int, 0, len(set))
		for id := range set {
			ids = append(ids, id)
		}
		sort.Ints(ids)

		data, err := json.Marshal(ids)
		if err != nil {
			return err
		}
		return bucket.Put([]byte(accountID), data)
	})
	if err != nil {
		return fmt.Errorf("failed to update bookmarks: %w", err)
	}
	return nil
}

// SaveCredential durably stores the bearer token under the fixed key.
func (b *BoltDB) SaveCredential(token string) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSession).Put([]byte(constants.CredentialKey), []byte(token))
	})
	if err != nil {
		return fmt.Errorf("failed to save credential: %w", err)
	}
	return nil
}

// LoadCredential returns the stored token, empty when none was persisted.
func (b *BoltDB) LoadCredential() (string, error) {
	var token string
	err := b.db.View(func(tx *bolt.Tx) error {
		if data := tx.Bucket(bucketSession).Get([]byte(constants.CredentialKey)); data != nil {
			token = string(data)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to load credential: %w", err)
	}
	return token, nil
}

// ClearCredential removes the stored token.
func (b *BoltDB) ClearCredential() error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSession).Delete([]byte(constants.CredentialKey))
	})
	if err != nil {
		return fmt.Errorf("failed to clear credential: %w", err)
	}
	return nil
}

package services

import (
	"fmt"
	"sort"
	"sync"

	"showsync/pkg/logger"
)

// BookmarkSync owns the authoritative local view of which catalog
// identifiers the current account has bookmarked, reconciled against the
// first-party service. It is the only component that mutates the set.
type BookmarkSync struct {
	session *Session
	client  AccountService
	logger  logger.Logger

	mu          sync.Mutex
	ids         map[int]struct{}
	loaded      bool
	generation  uint64
	inflight    map[int]struct{}
	subscribers []func()
}

// NewBookmarkSync creates the synchronizer and subscribes it to session
// transitions; that subscription is the only implicit Refresh trigger.
func NewBookmarkSync(session *Session, client AccountService, log logger.Logger) *BookmarkSync {
	b := &BookmarkSync{
		session:  session,
		client:   client,
		logger:   log,
		ids:      make(map[int]struct{}),
		inflight: make(map[int]struct{}),
	}

	session.Subscribe(func(state SessionState) {
		if err := b.Refresh(); err != nil {
			b.logger.Errorf("[Bookmarks] refresh after session %s failed: %v", state, err)
		}
	})

	return b
}

// Subscribe registers fn to run after every change to the set.
func (b *BookmarkSync) Subscribe(fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, fn)
}

// Refresh reconciles the local set with the remote store. Unauthenticated
// sessions get an empty, loaded set without any network call; authenticated
// sessions get the remote set as a wholesale replacement, never a merge.
// Safe to call repeatedly; the only path back from a failed state.
func (b *BookmarkSync) Refresh() error {
	switch b.session.State() {
	case SessionUnknown:
		// Startup probe still pending; empty but explicitly not loaded,
		// so consumers can tell "loading" from "no bookmarks".
		b.replace(nil, false)
		return nil

	case SessionUnauthenticated:
		b.replace(nil, true)
		return nil
	}

	token, _ := b.session.Token()
	ids, err := b.client.FetchBookmarks(token)
	if err != nil {
		b.replace(nil, false)
		return fmt.Errorf("failed to fetch bookmarks: %w", err)
	}

	b.replace(ids, true)
	b.logger.Debugf("[Bookmarks] refreshed, %d bookmarked", len(ids))
	return nil
}

// Toggle flips membership of mediaID. It is a silent no-op while no
// account is signed in, rejects a second toggle on an identifier whose
// mutation has not settled, applies the flip optimistically, and restores
// the exact pre-toggle set when the remote call fails.
func (b *BookmarkSync) Toggle(mediaID int) error {
	token, ok := b.session.Token()
	if !ok {
		return nil
	}

	b.mu.Lock()
	if _, busy := b.inflight[mediaID]; busy {
		b.mu.Unlock()
		return ErrToggleInFlight
	}
	b.inflight[mediaID] = struct{}{}
	_, wasBookmarked := b.ids[mediaID]

	// Optimistic local flip
	if wasBookmarked {
		delete(b.ids, mediaID)
	} else {
		b.ids[mediaID] = struct{}{}
	}
	gen := b.generation
	b.mu.Unlock()
	b.notifySubscribers()

	var err error
	if wasBookmarked {
		err = b.client.RemoveBookmark(token, mediaID)
	} else {
		err = b.client.AddBookmark(token, mediaID)
	}

	if err != nil {
		// Restore the exact pre-toggle value, unless a wholesale
		// replacement (logout, refresh) superseded the snapshot while
		// the call was in flight; restoring into the replaced set
		// would resurrect an entry the session no longer owns.
		b.mu.Lock()
		if gen == b.generation {
			if wasBookmarked {
				b.ids[mediaID] = struct{}{}
			} else {
				delete(b.ids, mediaID)
			}
		}
		delete(b.inflight, mediaID)
		b.mu.Unlock()
		b.notifySubscribers()
		return fmt.Errorf("failed to toggle bookmark %d: %w", mediaID, err)
	}

	b.mu.Lock()
	delete(b.inflight, mediaID)
	b.mu.Unlock()

	// Resync with the authoritative remote state; guards against
	// concurrent external changes.
	return b.Refresh()
}

// IDs returns the bookmarked identifiers in ascending order.
func (b *BookmarkSync) IDs() []int {
	b.mu.Lock()
	defer b.mu.Unlock()

	ids := make([]int, 0, len(b.ids))
	for id := range b.ids {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Contains reports membership of mediaID.
func (b *BookmarkSync) Contains(mediaID int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.ids[mediaID]
	return ok
}

// Loaded reports whether the set reflects a completed reconciliation,
// distinguishing an empty set from one still loading.
func (b *BookmarkSync) Loaded() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loaded
}

func (b *BookmarkSync) replace(ids []int, loaded bool) {
	b.mu.Lock()
	b.ids = make(map[int]struct{}, len(ids))
	for _, id := range ids {
		b.ids[id] = struct{}{}
	}
	b.loaded = loaded
	b.generation++
	b.mu.Unlock()

	b.notifySubscribers()
}

func (b *BookmarkSync) notifySubscribers() {
	b.mu.Lock()
	subs := make([]func(), len(b.subscribers))
	copy(subs, b.subscribers)
	b.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}

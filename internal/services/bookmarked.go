package services

import (
	"time"

	"showsync/pkg/logger"
)

// BookmarkedListing is the listing backed by the bookmark set: each
// identifier is hydrated through the detail resolver and the listing is
// recomputed whenever the set changes. It searches locally, since the
// hydrated data is fully loaded client-side.
type BookmarkedListing struct {
	*Listing

	bookmarks *BookmarkSync
	resolver  *Resolver
	logger    logger.Logger
}

// NewBookmarkedListing creates the listing and subscribes it to bookmark
// set changes, which covers session transitions as well since those
// refresh the set.
func NewBookmarkedListing(bookmarks *BookmarkSync, resolver *Resolver, delay time.Duration, log logger.Logger) *BookmarkedListing {
	bl := &BookmarkedListing{
		Listing:   NewListing("bookmarked", "", nil, nil, delay, log),
		bookmarks: bookmarks,
		resolver:  resolver,
		logger:    log,
	}

	bookmarks.Subscribe(bl.Recompute)
	return bl
}

// Recompute rehydrates the listing from the current bookmark set. An empty
// set yields an empty listing; Loading distinguishes that from a set whose
// reconciliation has not finished.
func (bl *BookmarkedListing) Recompute() {
	if !bl.bookmarks.Loaded() {
		bl.SetBase(nil)
		return
	}

	ids := bl.bookmarks.IDs()
	items := bl.resolver.ResolveAll(ids)
	if len(items) < len(ids) {
		bl.logger.Debugf("[Bookmarked] %d of %d identifiers did not resolve", len(ids)-len(items), len(ids))
	}
	bl.SetBase(items)
}

// Loading reports whether the underlying bookmark set is still being
// reconciled.
func (bl *BookmarkedListing) Loading() bool {
	return !bl.bookmarks.Loaded()
}

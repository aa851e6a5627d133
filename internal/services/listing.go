package services

import (
	"strings"
	"sync"
	"time"

	"showsync/internal/models"
	"showsync/pkg/debounce"
	"showsync/pkg/logger"
)

// Listing composes debounced input, the catalog gateway and a base data
// set into one displayable, searchable list.
//
// A listing bound to a kind runs remote searches for non-empty settled
// queries; an unbound listing filters its base data locally. Every remote
// search carries a generation so a late response from a superseded query
// can never overwrite newer results.
type Listing struct {
	name    string
	kind    models.MediaType // empty: local-filter mode
	catalog CatalogService
	logger  logger.Logger

	debouncer *debounce.Debouncer[string]

	mu         sync.Mutex
	base       []models.MediaItem
	displayed  []models.MediaItem
	query      string
	searching  bool
	generation uint64
	onChange   func()
}

// NewListing creates a listing. A zero kind selects local-filter mode;
// otherwise non-empty queries search the catalog under that kind.
func NewListing(name string, kind models.MediaType, base []models.MediaItem, catalog CatalogService, delay time.Duration, log logger.Logger) *Listing {
	l := &Listing{
		name:      name,
		kind:      kind,
		catalog:   catalog,
		logger:    log,
		base:      base,
		displayed: base,
	}
	l.debouncer = debounce.New(delay, l.applyQuery)
	return l
}

// OnChange registers a callback invoked after the displayed data changes.
func (l *Listing) OnChange(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onChange = fn
}

// SetQuery feeds the raw, rapidly-changing input. Only a value that
// settles for the full debounce window is ever applied.
func (l *Listing) SetQuery(query string) {
	l.debouncer.Set(query)
}

// SetBase replaces the source data. While no query is settled the
// displayed data follows the base.
func (l *Listing) SetBase(items []models.MediaItem) {
	l.mu.Lock()
	l.base = items
	if l.query == "" {
		l.displayed = items
	} else if l.kind == "" {
		l.displayed = filterByName(items, l.query)
	}
	l.mu.Unlock()
	l.notifyChange()
}

// Items returns the current listing. Items that still lack a kind are
// defaulted to the listing's bound kind, since trailer playback and
// bookmarking both require one.
func (l *Listing) Items() []models.MediaItem {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.MediaItem, 0, len(l.displayed))
	for _, item := range l.displayed {
		if item.MediaType == "" && l.kind != "" {
			item = item.WithMediaType(l.kind)
		}
		out = append(out, item)
	}
	return out
}

// Searching reports whether a remote search is in flight.
func (l *Listing) Searching() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.searching
}

// Query returns the last settled query.
func (l *Listing) Query() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.query
}

// Close tears the listing down. A pending debounced query will not fire,
// and an already-launched remote search is invalidated so its results and
// change notification never land after teardown.
func (l *Listing) Close() {
	l.debouncer.Stop()

	l.mu.Lock()
	l.generation++
	l.searching = false
	l.onChange = nil
	l.mu.Unlock()
}

// applyQuery runs with each settled query value.
func (l *Listing) applyQuery(query string) {
	query = strings.TrimSpace(query)

	l.mu.Lock()
	l.generation++
	gen := l.generation
	l.query = query

	// Empty query reverts to the base listing.
	if query == "" {
		l.displayed = l.base
		l.searching = false
		l.mu.Unlock()
		l.notifyChange()
		return
	}

	// Local-filter mode: stable-order substring match on display names.
	if l.kind == "" {
		l.displayed = filterByName(l.base, query)
		l.mu.Unlock()
		l.notifyChange()
		return
	}

	l.searching = true
	l.mu.Unlock()
	l.notifyChange()

	go l.remoteSearch(query, gen)
}

func (l *Listing) remoteSearch(query string, gen uint64) {
	var results []models.MediaItem
	if l.kind == models.MediaTypeMovie {
		results = l.catalog.SearchMovies(query)
	} else {
		results = l.catalog.SearchSeries(query)
	}

	l.mu.Lock()
	if gen != l.generation {
		// A newer query superseded this search; its results are inert.
		l.mu.Unlock()
		l.logger.Debugf("[Listing] %s: discarded stale results for %q", l.name, query)
		return
	}
	l.displayed = results
	l.searching = false
	l.mu.Unlock()
	l.notifyChange()
}

func (l *Listing) notifyChange() {
	l.mu.Lock()
	fn := l.onChange
	l.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func filterByName(items []models.MediaItem, query string) []models.MediaItem {
	out := make([]models.MediaItem, 0, len(items))
	for _, item := range items {
		if item.MatchesQuery(query) {
			out = append(out, item)
		}
	}
	return out
}

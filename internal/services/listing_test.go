package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"showsync/internal/models"
)

const testDebounce = 40 * time.Millisecond

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestLocalFilterMatchesDisplayName(t *testing.T) {
	base := []models.MediaItem{
		{ID: 414906, Title: "The Batman", MediaType: models.MediaTypeMovie},
		{ID: 1396, Name: "Breaking Bad", MediaType: models.MediaTypeTV},
	}
	l := NewListing("bookmarked", "", base, newStubCatalog(), testDebounce, testLogger())
	defer l.Close()

	l.SetQuery("batman")

	waitFor(t, func() bool { return l.Query() == "batman" })
	items := l.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "The Batman", items[0].DisplayName())
}

func TestEmptyQueryRevertsToBase(t *testing.T) {
	base := []models.MediaItem{
		{ID: 1, Title: "Alpha"},
		{ID: 2, Title: "Beta"},
	}
	l := NewListing("trending", "", base, newStubCatalog(), testDebounce, testLogger())
	defer l.Close()

	l.SetQuery("alpha")
	waitFor(t, func() bool { return len(l.Items()) == 1 })

	l.SetQuery("")
	waitFor(t, func() bool { return len(l.Items()) == 2 })
	assert.Equal(t, base[0].ID, l.Items()[0].ID)
	assert.Equal(t, base[1].ID, l.Items()[1].ID)
}

func TestLocalFilterPreservesOrder(t *testing.T) {
	base := []models.MediaItem{
		{ID: 1, Title: "Iron Man 3"},
		{ID: 2, Title: "The Iron Giant"},
		{ID: 3, Title: "Man of Steel"},
	}
	l := NewListing("trending", "", base, newStubCatalog(), testDebounce, testLogger())
	defer l.Close()

	l.SetQuery("iron")
	waitFor(t, func() bool { return len(l.Items()) == 2 })

	items := l.Items()
	assert.Equal(t, 1, items[0].ID)
	assert.Equal(t, 2, items[1].ID)
}

func TestRemoteSearchIssuesSingleRequestForBurst(t *testing.T) {
	catalog := newStubCatalog()
	catalog.searches["ab"] = []models.MediaItem{{ID: 10, Title: "Abyss"}}
	l := NewListing("movies", models.MediaTypeMovie, nil, catalog, 300*time.Millisecond, testLogger())
	defer l.Close()

	l.SetQuery("a")
	time.Sleep(100 * time.Millisecond)
	l.SetQuery("ab")

	waitFor(t, func() bool { return len(l.Items()) == 1 })

	// The burst settles to one request, for the final value only
	assert.Equal(t, []string{"ab"}, catalog.recordedQueries())
	assert.Equal(t, "Abyss", l.Items()[0].DisplayName())
}

func TestStaleSearchResultsAreDiscarded(t *testing.T) {
	catalog := newStubCatalog()
	catalog.searches["old"] = []models.MediaItem{{ID: 1, Title: "Old Result"}}
	catalog.searches["new"] = []models.MediaItem{{ID: 2, Title: "New Result"}}
	catalog.searchGate = make(chan struct{})

	l := NewListing("movies", models.MediaTypeMovie, nil, catalog, time.Millisecond, testLogger())
	defer l.Close()

	// First search blocks on the gate while a newer query supersedes it
	l.applyQuery("old")
	l.applyQuery("new")

	// Release both searches; the stale one finishes last
	catalog.searchGate <- struct{}{}
	catalog.searchGate <- struct{}{}

	waitFor(t, func() bool { return !l.Searching() })
	time.Sleep(20 * time.Millisecond)

	items := l.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "New Result", items[0].DisplayName())
}

func TestCloseInvalidatesInFlightSearch(t *testing.T) {
	catalog := newStubCatalog()
	catalog.searches["late"] = []models.MediaItem{{ID: 1, Title: "Late"}}
	catalog.searchGate = make(chan struct{})

	l := NewListing("movies", models.MediaTypeMovie, nil, catalog, time.Millisecond, testLogger())

	l.applyQuery("late")
	l.Close()

	notified := false
	l.OnChange(func() { notified = true })

	catalog.searchGate <- struct{}{}
	time.Sleep(20 * time.Millisecond)

	assert.Empty(t, l.Items())
	assert.False(t, l.Searching())
	assert.False(t, notified, "a search released after Close must not surface")
}

func TestSearchingStateVisibleDuringRemoteSearch(t *testing.T) {
	catalog := newStubCatalog()
	catalog.searchGate = make(chan struct{})
	l := NewListing("series", models.MediaTypeTV, nil, catalog, time.Millisecond, testLogger())
	defer l.Close()

	l.applyQuery("thrones")
	assert.True(t, l.Searching())

	catalog.searchGate <- struct{}{}
	waitFor(t, func() bool { return !l.Searching() })
}

func TestItemsDefaultedToBoundKind(t *testing.T) {
	base := []models.MediaItem{{ID: 1, Title: "Untyped"}}
	l := NewListing("movies", models.MediaTypeMovie, base, newStubCatalog(), testDebounce, testLogger())
	defer l.Close()

	items := l.Items()
	require.Len(t, items, 1)
	assert.Equal(t, models.MediaTypeMovie, items[0].MediaType)
}

func TestBookmarkedListingHydratesSet(t *testing.T) {
	catalog := newStubCatalog()
	catalog.movies[550] = models.MediaItem{ID: 550, Title: "Fight Club"}
	catalog.series[1399] = models.MediaItem{ID: 1399, Name: "Game of Thrones"}

	session := newTestSession(t, "token")
	account := newStubAccount(550, 1399)
	sync := NewBookmarkSync(session, account, testLogger())
	resolver := NewResolver(catalog, testLogger())
	bl := NewBookmarkedListing(sync, resolver, testDebounce, testLogger())
	defer bl.Close()

	assert.True(t, bl.Loading())

	session.Resolve()

	waitFor(t, func() bool { return !bl.Loading() && len(bl.Items()) == 2 })

	kinds := map[int]models.MediaType{}
	for _, item := range bl.Items() {
		kinds[item.ID] = item.MediaType
	}
	assert.Equal(t, models.MediaTypeMovie, kinds[550])
	assert.Equal(t, models.MediaTypeTV, kinds[1399])
}

func TestBookmarkedListingEmptySetIsEmptyNotLoading(t *testing.T) {
	session := newTestSession(t, "token")
	account := newStubAccount()
	sync := NewBookmarkSync(session, account, testLogger())
	resolver := NewResolver(newStubCatalog(), testLogger())
	bl := NewBookmarkedListing(sync, resolver, testDebounce, testLogger())
	defer bl.Close()

	session.Resolve()

	waitFor(t, func() bool { return !bl.Loading() })
	assert.Empty(t, bl.Items())
}

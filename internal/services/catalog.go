// Package services contains the client-side data synchronization and
// search layer: catalog access, account session, bookmark sync, detail
// resolution and the listing view models.
package services

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"showsync/internal/cache"
	"showsync/internal/constants"
	"showsync/internal/models"
	"showsync/pkg/httputil"
	"showsync/pkg/logger"
	"showsync/pkg/ratelimiter"
)

// NoTrailer is the sentinel returned when no suitable trailer exists.
const NoTrailer = ""

// TMDB is the single point of access to the external media catalog. It
// normalizes heterogeneous response shapes, filters person entries, and
// absorbs expected failures so callers never see an error for "no data".
type TMDB struct {
	apiKey      string
	baseURL     string
	cache       *cache.LRUCache
	rateLimiter *ratelimiter.TokenBucket
	httpClient  *http.Client
	logger      logger.Logger
}

// NewTMDB creates a catalog gateway holding the server-side API key.
func NewTMDB(apiKey string, c *cache.LRUCache) *TMDB {
	return &TMDB{
		apiKey:      apiKey,
		baseURL:     constants.TMDBAPIBaseURL,
		cache:       c,
		rateLimiter: ratelimiter.NewTokenBucket(constants.TMDBRateBurst, constants.TMDBRateLimit),
		httpClient:  httputil.NewHTTPClient(constants.CatalogRequestTimeout),
		logger:      logger.New(),
	}
}

// SetBaseURL overrides the catalog endpoint, used by tests.
func (t *TMDB) SetBaseURL(baseURL string) {
	t.baseURL = strings.TrimSuffix(baseURL, "/")
}

// ListTrending returns this week's trending movies and series.
func (t *TMDB) ListTrending() []models.MediaItem {
	return t.fetchList("trending/all/week", nil, "")
}

// ListTrendingMovies returns this week's trending movies.
func (t *TMDB) ListTrendingMovies() []models.MediaItem {
	return t.fetchList("trending/movie/week", nil, models.MediaTypeMovie)
}

// ListTrendingSeries returns this week's trending series.
func (t *TMDB) ListTrendingSeries() []models.MediaItem {
	return t.fetchList("trending/tv/week", nil, models.MediaTypeTV)
}

// ListDiscoverMovies returns the discover listing for movies.
func (t *TMDB) ListDiscoverMovies() []models.MediaItem {
	return t.fetchList("discover/movie", nil, models.MediaTypeMovie)
}

// ListDiscoverSeries returns the discover listing for series.
func (t *TMDB) ListDiscoverSeries() []models.MediaItem {
	return t.fetchList("discover/tv", nil, models.MediaTypeTV)
}

// SearchMovies runs a free-text movie search. A whitespace-only query
// short-circuits to an empty result without a network call.
func (t *TMDB) SearchMovies(query string) []models.MediaItem {
	return t.search("search/movie", query, models.MediaTypeMovie)
}

// SearchSeries runs a free-text series search with the same contract as
// SearchMovies.
func (t *TMDB) SearchSeries(query string) []models.MediaItem {
	return t.search("search/tv", query, models.MediaTypeTV)
}

func (t *TMDB) search(path, query string, mediaType models.MediaType) []models.MediaItem {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.MediaItem{}
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("include_adult", "false")
	return t.fetchList(path, params, mediaType)
}

// GetDetails fetches a single item under the given kind. A catalog 404 is
// an ordinary negative answer and returns nil without error; hard failure
// is reserved for transport-level problems.
func (t *TMDB) GetDetails(mediaType models.MediaType, id int) (*models.MediaItem, error) {
	if !mediaType.Valid() {
		return nil, fmt.Errorf("unsupported media type: %s", mediaType)
	}

	cacheKey := fmt.Sprintf("tmdb:detail:%s:%d", mediaType, id)
	if data, found := t.cache.Get(cacheKey); found {
		item := data.(models.MediaItem)
		return &item, nil
	}

	body, status, err := t.get(fmt.Sprintf("%s/%d", mediaType, id), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch details for %s/%d: %w", mediaType, id, err)
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("catalog error for %s/%d: status %d", mediaType, id, status)
	}

	item, err := decodeItem(body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode details for %s/%d: %w", mediaType, id, err)
	}

	// Detail payloads omit media_type; the probed kind is authoritative.
	tagged := item.WithMediaType(mediaType)
	t.cache.Set(cacheKey, tagged)
	return &tagged, nil
}

// GetTrailerKey returns the key of the first official YouTube trailer for
// the item, or NoTrailer when none exists or the lookup fails. Callers
// decide fallback behavior.
func (t *TMDB) GetTrailerKey(mediaType models.MediaType, id int) string {
	if !mediaType.Valid() {
		return NoTrailer
	}

	cacheKey := fmt.Sprintf("tmdb:videos:%s:%d", mediaType, id)
	if data, found := t.cache.Get(cacheKey); found {
		return data.(string)
	}

	body, status, err := t.get(fmt.Sprintf("%s/%d/videos", mediaType, id), nil)
	if err != nil {
		t.logger.Errorf("[TMDB] failed to fetch videos for %s/%d: %v", mediaType, id, err)
		return NoTrailer
	}
	if status != http.StatusOK {
		t.logger.Debugf("[TMDB] no videos for %s/%d: status %d", mediaType, id, status)
		return NoTrailer
	}

	key := selectTrailer(body)
	t.cache.Set(cacheKey, key)
	return key
}

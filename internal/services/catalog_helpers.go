package services

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/avast/retry-go/v4"

	"showsync/internal/constants"
	"showsync/internal/models"
)

// get performs a rate-limited GET against the catalog, retrying transport
// failures. Non-2xx statuses are returned to the caller, not retried.
func (t *TMDB) get(path string, params url.Values) ([]byte, int, error) {
	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", t.apiKey)

	requestURL := fmt.Sprintf("%s/%s?%s", t.baseURL, path, params.Encode())

	t.rateLimiter.Wait()

	var body []byte
	var status int
	err := retry.Do(
		func() error {
			resp, err := t.httpClient.Get(requestURL)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			body, err = io.ReadAll(resp.Body)
			if err != nil {
				return err
			}
			status = resp.StatusCode
			return nil
		},
		retry.Attempts(uint(constants.CatalogRetryAttempts)+1),
		retry.Delay(constants.CatalogRetryDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return nil, 0, err
	}
	return body, status, nil
}

// fetchList fetches a list endpoint and normalizes the result. All
// failures are absorbed: the caller receives an empty slice and the
// diagnostic goes to the log.
func (t *TMDB) fetchList(path string, params url.Values, defaultType models.MediaType) []models.MediaItem {
	cacheKey := "tmdb:list:" + path
	if params != nil {
		cacheKey += "?" + params.Encode()
	}
	if data, found := t.cache.Get(cacheKey); found {
		return data.([]models.MediaItem)
	}

	body, status, err := t.get(path, params)
	if err != nil {
		t.logger.Errorf("[TMDB] failed to fetch %s: %v", path, err)
		return []models.MediaItem{}
	}
	if status != http.StatusOK {
		t.logger.Errorf("[TMDB] catalog error for %s: status %d", path, status)
		return []models.MediaItem{}
	}

	results, err := decodeList(body)
	if err != nil {
		t.logger.Errorf("[TMDB] failed to decode %s: %v", path, err)
		return []models.MediaItem{}
	}

	items := normalizeListing(results, defaultType)
	t.cache.Set(cacheKey, items)
	return items
}

// decodeList decodes a paginated envelope. A well-formed payload without
// the results array is treated as a single-item response, so detail
// lookups can reuse the list entry point.
func decodeList(body []byte) ([]models.MediaItem, error) {
	var envelope models.ListResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}
	if envelope.Results != nil {
		return envelope.Results, nil
	}

	item, err := decodeItem(body)
	if err != nil {
		return nil, err
	}
	return []models.MediaItem{item}, nil
}

func decodeItem(body []byte) (models.MediaItem, error) {
	var item models.MediaItem
	if err := json.Unmarshal(body, &item); err != nil {
		return models.MediaItem{}, err
	}
	if item.ID == 0 {
		return models.MediaItem{}, fmt.Errorf("payload is not a media item")
	}
	return item, nil
}

// normalizeListing drops person entries and entries without a display
// name, removes duplicate identifiers preserving first occurrence, and
// tags untyped items with defaultType when one is known.
func normalizeListing(items []models.MediaItem, defaultType models.MediaType) []models.MediaItem {
	out := make([]models.MediaItem, 0, len(items))
	seen := make(map[int]struct{}, len(items))

	for _, item := range items {
		if item.MediaType == models.MediaTypePerson {
			continue
		}
		if item.MediaType == "" && defaultType != "" {
			item = item.WithMediaType(defaultType)
		}
		if item.DisplayName() == "" {
			continue
		}
		if _, dup := seen[item.ID]; dup {
			continue
		}
		seen[item.ID] = struct{}{}
		out = append(out, item)
	}
	return out
}

// selectTrailer picks the first official YouTube trailer from a videos
// payload, returning NoTrailer when none qualifies.
func selectTrailer(body []byte) string {
	var videos models.VideoResponse
	if err := json.Unmarshal(body, &videos); err != nil {
		return NoTrailer
	}

	for _, v := range videos.Results {
		if v.Official && v.Site == constants.TrailerSite && v.Type == constants.TrailerType {
			return v.Key
		}
	}
	return NoTrailer
}

// Package models defines data structures for TMDB API responses.
package models

// ListResponse is the paginated envelope TMDB wraps around list queries.
type ListResponse struct {
	Page         int         `json:"page"`
	Results      []MediaItem `json:"results"`
	TotalPages   int         `json:"total_pages"`
	TotalResults int         `json:"total_results"`
}

// VideoResult is one entry of a videos lookup for a movie or series.
type VideoResult struct {
	ISO639      string `json:"iso_639_1"`
	ISO3166     string `json:"iso_3166_1"`
	Name        string `json:"name"`
	Key         string `json:"key"`
	Site        string `json:"site"`
	Size        int    `json:"size"`
	Type        string `json:"type"`
	Official    bool   `json:"official"`
	PublishedAt string `json:"published_at"`
	ID          string `json:"id"`
}

// VideoResponse is the envelope of a videos lookup.
type VideoResponse struct {
	ID      int           `json:"id"`
	Results []VideoResult `json:"results"`
}

// TMDBError is the error payload TMDB returns on non-2xx responses.
type TMDBError struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}

// Package models defines the data structures shared across the application.
package models

import "strings"

// MediaType classifies a catalog entry. TMDB uses "tv" on the wire for
// series; "person" entries must never reach user-facing listings.
type MediaType string

const (
	MediaTypeMovie  MediaType = "movie"
	MediaTypeTV     MediaType = "tv"
	MediaTypePerson MediaType = "person"
)

// Valid reports whether t is a displayable media type.
func (t MediaType) Valid() bool {
	return t == MediaTypeMovie || t == MediaTypeTV
}

// MediaItem is one catalog entry as TMDB returns it. Movies carry Title and
// ReleaseDate, series carry Name and FirstAirDate. Items are immutable once
// decoded; they are replaced, never mutated.
type MediaItem struct {
	ID           int       `json:"id"`
	Title        string    `json:"title,omitempty"`
	Name         string    `json:"name,omitempty"`
	ReleaseDate  string    `json:"release_date,omitempty"`
	FirstAirDate string    `json:"first_air_date,omitempty"`
	MediaType    MediaType `json:"media_type,omitempty"`
	BackdropPath string    `json:"backdrop_path,omitempty"`
	PosterPath   string    `json:"poster_path,omitempty"`
	VoteAverage  float64   `json:"vote_average"`
	Overview     string    `json:"overview,omitempty"`
	GenreIDs     []int     `json:"genre_ids,omitempty"`
}

// DisplayName resolves the kind-dependent title/name split into the single
// logical name shown to users.
func (m MediaItem) DisplayName() string {
	if m.Title != "" {
		return m.Title
	}
	return m.Name
}

// Released returns the kind-dependent release or first-air date.
func (m MediaItem) Released() string {
	if m.ReleaseDate != "" {
		return m.ReleaseDate
	}
	return m.FirstAirDate
}

// MatchesQuery reports whether the display name contains the query,
// case-insensitively.
func (m MediaItem) MatchesQuery(query string) bool {
	return strings.Contains(strings.ToLower(m.DisplayName()), strings.ToLower(query))
}

// WithMediaType returns a copy tagged with the given type, used when an
// endpoint omits media_type and the caller knows the kind from context.
func (m MediaItem) WithMediaType(t MediaType) MediaItem {
	m.MediaType = t
	return m
}

// Package constants defines application-wide constants and default values.
package constants

import "time"

const (
	// Application metadata
	AppName = "ShowSync"

	// Default configuration values
	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	// TMDB endpoints
	TMDBAPIBaseURL = "https://api.themoviedb.org/3"

	// Cache settings
	DefaultCacheSize = 1000
	DefaultCacheTTL  = 24 // hours

	// Rate limiting for the catalog API
	TMDBRateLimit = 20 // requests per second
	TMDBRateBurst = 5  // burst capacity

	// Catalog request handling
	CatalogRequestTimeout = 10 * time.Second
	CatalogRetryAttempts  = 2
	CatalogRetryDelay     = 300 * time.Millisecond

	// Concurrency bound for hydrating bookmarked identifiers
	ResolveGoroutines = 8

	// Search input settling window
	DefaultSearchDebounce = 500 * time.Millisecond

	// Trailer selection
	TrailerSite = "YouTube"
	TrailerType = "Trailer"

	// Fixed key under which the bearer token is persisted client-side
	CredentialKey = "authToken"
)

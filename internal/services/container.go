// Package services provides the dependency injection container for
// application services.
package services

import (
	"showsync/internal/cache"
	"showsync/internal/database"
	"showsync/internal/models"
	"showsync/pkg/logger"
)

// Container holds all application services for dependency injection. One
// container is constructed per running application; nothing here is a
// package-level singleton.
type Container struct {
	Catalog    CatalogService
	Account    AccountService
	Session    *Session
	Bookmarks  *BookmarkSync
	Resolver   *Resolver
	Trailers   *TrailerService
	Bookmarked *BookmarkedListing
	Cache      *cache.LRUCache
	DB         database.Database
	Logger     logger.Logger
}

// CatalogService defines the catalog gateway operations.
type CatalogService interface {
	ListTrending() []models.MediaItem
	ListTrendingMovies() []models.MediaItem
	ListTrendingSeries() []models.MediaItem
	ListDiscoverMovies() []models.MediaItem
	ListDiscoverSeries() []models.MediaItem
	SearchMovies(query string) []models.MediaItem
	SearchSeries(query string) []models.MediaItem
	GetDetails(mediaType models.MediaType, id int) (*models.MediaItem, error)
	GetTrailerKey(mediaType models.MediaType, id int) string
}

// AccountService defines the first-party account/bookmark operations.
type AccountService interface {
	Login(creds models.Credentials) (string, error)
	Register(creds models.Credentials) (string, error)
	FetchBookmarks(token string) ([]int, error)
	AddBookmark(token string, mediaID int) error
	RemoveBookmark(token string, mediaID int) error
}

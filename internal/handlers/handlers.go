// Package handlers implements the HTTP surface: the same-origin catalog
// proxy and the first-party account/bookmark endpoints.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"showsync/internal/config"
	"showsync/internal/constants"
	"showsync/internal/middleware"
	"showsync/internal/services"
	"showsync/pkg/httputil"
)

// Handler bundles the services needed by the HTTP routes.
type Handler struct {
	services *services.Container
	config   *config.Config

	catalogBaseURL string
	catalogClient  *http.Client
}

// New creates a handler backed by the service container.
func New(container *services.Container, cfg *config.Config) *Handler {
	return &Handler{
		services:       container,
		config:         cfg,
		catalogBaseURL: constants.TMDBAPIBaseURL,
		catalogClient:  httputil.NewDefaultHTTPClient(),
	}
}

// RegisterRoutes attaches all routes to the router.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/api/tmdb/*tmdbPath", h.handleCatalogProxy)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/auth/register", h.handleRegister)
		v1.POST("/auth/login", h.handleLogin)

		bookmarks := v1.Group("/bookmarks")
		bookmarks.Use(middleware.RequireAuth(h.config.JWTSecret))
		{
			bookmarks.GET("", h.handleListBookmarks)
			bookmarks.POST("/:id", h.handleAddBookmark)
			bookmarks.DELETE("/:id", h.handleRemoveBookmark)
		}
	}
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"showsync/internal/middleware"
	"showsync/internal/models"
)

// handleListBookmarks returns the account's full bookmark identifier set.
func (h *Handler) handleListBookmarks(c *gin.Context) {
	accountID := c.GetString(middleware.AccountIDKey)

	ids, err := h.services.DB.GetBookmarks(accountID)
	if err != nil {
		h.services.Logger.Errorf("[Bookmarks] failed to list bookmarks: %v", err)
		c.JSON(http.StatusInternalServerError, models.APIError{Message: "could not load bookmarks"})
		return
	}
	c.JSON(http.StatusOK, ids)
}

// handleAddBookmark inserts an identifier into the account's set.
func (h *Handler) handleAddBookmark(c *gin.Context) {
	accountID := c.GetString(middleware.AccountIDKey)

	mediaID, ok := parseMediaID(c)
	if !ok {
		return
	}

	if err := h.services.DB.AddBookmark(accountID, mediaID); err != nil {
		h.services.Logger.Errorf("[Bookmarks] failed to add bookmark %d: %v", mediaID, err)
		c.JSON(http.StatusInternalServerError, models.APIError{Message: "could not add bookmark"})
		return
	}
	c.Status(http.StatusNoContent)
}

// handleRemoveBookmark deletes an identifier from the account's set.
func (h *Handler) handleRemoveBookmark(c *gin.Context) {
	accountID := c.GetString(middleware.AccountIDKey)

	mediaID, ok := parseMediaID(c)
	if !ok {
		return
	}

	if err := h.services.DB.RemoveBookmark(accountID, mediaID); err != nil {
		h.services.Logger.Errorf("[Bookmarks] failed to remove bookmark %d: %v", mediaID, err)
		c.JSON(http.StatusInternalServerError, models.APIError{Message: "could not remove bookmark"})
		return
	}
	c.Status(http.StatusNoContent)
}

func parseMediaID(c *gin.Context) (int, bool) {
	mediaID, err := strconv.Atoi(c.Param("id"))
	if err != nil || mediaID <= 0 {
		c.JSON(http.StatusBadRequest, models.APIError{Message: "invalid media identifier"})
		return 0, false
	}
	return mediaID, true
}

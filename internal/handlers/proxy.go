package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"showsync/internal/models"
)

// handleCatalogProxy forwards a request to the external catalog, injecting
// the server-held API key. The key never reaches the client; query
// parameters are forwarded verbatim and catalog errors come back with the
// catalog's original status code.
func (h *Handler) handleCatalogProxy(c *gin.Context) {
	path := strings.TrimPrefix(c.Param("tmdbPath"), "/")

	params := url.Values{}
	for key, values := range c.Request.URL.Query() {
		for _, value := range values {
			params.Add(key, value)
		}
	}
	params.Set("api_key", h.config.TMDBAPIKey)

	upstream := h.catalogBaseURL + "/" + path + "?" + params.Encode()

	resp, err := h.catalogClient.Get(upstream)
	if err != nil {
		h.services.Logger.Errorf("[Proxy] catalog unreachable: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch data from catalog"})
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		h.services.Logger.Errorf("[Proxy] failed to read catalog response: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to read catalog response"})
		return
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var tmdbErr models.TMDBError
		if err := json.Unmarshal(body, &tmdbErr); err == nil && tmdbErr.StatusMessage != "" {
			c.JSON(resp.StatusCode, gin.H{"error": tmdbErr.StatusMessage})
			return
		}
		c.Data(resp.StatusCode, resp.Header.Get("Content-Type"), body)
		return
	}

	c.Data(http.StatusOK, "application/json", body)
}

package services

import (
	"showsync/internal/models"
	"showsync/pkg/logger"
)

// TrailerService applies the trailer fallback policy on top of the catalog
// gateway. Whether a fixed fallback video plays when no official trailer
// exists is configuration, not hardcoded behavior.
type TrailerService struct {
	catalog     CatalogService
	fallbackKey string
	logger      logger.Logger
}

// NewTrailerService creates the service. An empty fallbackKey disables the
// fallback so callers surface "no trailer available" instead.
func NewTrailerService(catalog CatalogService, fallbackKey string, log logger.Logger) *TrailerService {
	return &TrailerService{catalog: catalog, fallbackKey: fallbackKey, logger: log}
}

// Key returns the video key to play for item and whether it is the
// configured fallback. An empty key with fallback=false means no trailer
// is available at all.
func (s *TrailerService) Key(item models.MediaItem) (string, bool) {
	if item.MediaType.Valid() {
		if key := s.catalog.GetTrailerKey(item.MediaType, item.ID); key != NoTrailer {
			return key, false
		}
		s.logger.Debugf("[Trailer] no official trailer for %q", item.DisplayName())
	} else {
		s.logger.Warnf("[Trailer] unsupported media type %q for %q", item.MediaType, item.DisplayName())
	}

	if s.fallbackKey != "" {
		return s.fallbackKey, true
	}
	return NoTrailer, false
}

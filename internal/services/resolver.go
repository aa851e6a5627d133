package services

import (
	"github.com/sourcegraph/conc/pool"

	"showsync/internal/constants"
	"showsync/internal/models"
	"showsync/pkg/logger"
)

// Resolver turns a bare catalog identifier of unknown kind into a full
// MediaItem by probing movie then series. Bookmark identifiers share one
// namespace across kinds, so this probe is the only way to hydrate them.
type Resolver struct {
	catalog CatalogService
	logger  logger.Logger
}

// NewResolver creates a detail resolver backed by the catalog gateway.
func NewResolver(catalog CatalogService, log logger.Logger) *Resolver {
	return &Resolver{catalog: catalog, logger: log}
}

// Resolve probes each supported kind in order and returns the first hit,
// tagged with the kind that answered. Both kinds a miss, or transport
// failure on both probes, yields nil and a diagnostic only; the caller
// excludes the identifier rather than failing its listing.
func (r *Resolver) Resolve(mediaID int) *models.MediaItem {
	for _, mediaType := range []models.MediaType{models.MediaTypeMovie, models.MediaTypeTV} {
		item, err := r.catalog.GetDetails(mediaType, mediaID)
		if err != nil {
			r.logger.Debugf("[Resolver] probe %s/%d failed: %v", mediaType, mediaID, err)
			continue
		}
		if item != nil {
			return item
		}
	}

	r.logger.Warnf("[Resolver] no catalog entry found for id %d", mediaID)
	return nil
}

// ResolveAll hydrates a batch of identifiers concurrently, preserving
// input order and dropping identifiers that resolve to nothing. The caller
// observes only the fully settled batch.
func (r *Resolver) ResolveAll(mediaIDs []int) []models.MediaItem {
	resolved := make([]*models.MediaItem, len(mediaIDs))

	p := pool.New().WithMaxGoroutines(constants.ResolveGoroutines)
	for i, id := range mediaIDs {
		p.Go(func() {
			resolved[i] = r.Resolve(id)
		})
	}
	p.Wait()

	items := make([]models.MediaItem, 0, len(mediaIDs))
	for _, item := range resolved {
		if item != nil {
			items = append(items, *item)
		}
	}
	return items
}

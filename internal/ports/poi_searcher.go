package ports

import (
	"context"
	"tmap-route-service/internal/domain"
)

// Contract for keyword-based place search.
type POISearcher interface {
	// Return the provider's candidate list for a keyword, in provider order.
	// An empty slice means the provider found nothing.
	SearchPOIs(ctx context.Context, keyword string) ([]domain.POI, error)
}

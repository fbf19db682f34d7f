package ports

import (
	"context"
	"tmap-route-service/internal/domain"
)

// Contract for traffic-aware route prediction with geometry.
type RouteProvider interface {
	PredictRoute(ctx context.Context, q domain.RouteQuery) (domain.RouteResult, error)
}

// Everything the lookup pipeline needs from a mapping provider.
type MapProvider interface {
	POISearcher
	TravelTimeProvider
	RouteProvider
}

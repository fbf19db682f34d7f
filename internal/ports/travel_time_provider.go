package ports

import (
	"context"
	"tmap-route-service/internal/domain"
)

// Contract for retrieving the total driving time between two coordinates.
type TravelTimeProvider interface {
	// Return the trip duration in seconds.
	TotalTime(ctx context.Context, origin, destination domain.Coordinates) (int, error)
}

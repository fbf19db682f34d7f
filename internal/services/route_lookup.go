package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"tmap-route-service/internal/config"
	"tmap-route-service/internal/domain"
	"tmap-route-service/internal/ports"
	"tmap-route-service/internal/render"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

var ErrEmptyKeyword = errors.New("keyword must be non-empty")

// RouteLookupService resolves two keywords, estimates the trip duration and
// builds the route map between them. It holds no per-request state.
type RouteLookupService struct {
	provider       ports.MapProvider
	predictionTime *time.Time
	now            func() time.Time
	log            *zap.Logger
	tracer         trace.Tracer
}

func NewRouteLookupService(provider ports.MapProvider, cfg *config.Config, log *zap.Logger) (*RouteLookupService, error) {
	if provider == nil {
		return nil, errors.New("new route lookup service: provider is nil")
	}
	if log == nil {
		log = zap.NewNop()
	}

	svc := &RouteLookupService{
		provider: provider,
		now:      time.Now,
		log:      log.Named("lookup"),
		tracer:   otel.Tracer("tmap-route-service/services"),
	}
	if cfg != nil && cfg.PredictionTime != nil {
		t := *cfg.PredictionTime
		svc.predictionTime = &t
	}

	return svc, nil
}

// Resolve a free-text keyword to a single POI.
// Zero search results yield a *domain.NoMatchError.
func (s *RouteLookupService) Resolve(ctx context.Context, keyword string) (domain.POI, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return domain.POI{}, fmt.Errorf("resolve: %w", ErrEmptyKeyword)
	}

	candidates, err := s.provider.SearchPOIs(ctx, keyword)
	if err != nil {
		return domain.POI{}, fmt.Errorf("resolve %q: %w", keyword, err)
	}

	poi, ok := selectBestMatch(candidates)
	if !ok {
		return domain.POI{}, &domain.NoMatchError{Keyword: keyword}
	}

	return poi, nil
}

// Estimate the total driving time in seconds between two resolved POIs.
func (s *RouteLookupService) EstimateTravelTime(ctx context.Context, origin, destination domain.POI) (int, error) {
	secs, err := s.provider.TotalTime(ctx, origin.Coordinates, destination.Coordinates)
	if err != nil {
		return 0, fmt.Errorf("estimate travel time %q -> %q: %w", origin.Name, destination.Name, err)
	}
	return secs, nil
}

// Request the predicted route and build its map view.
//
// The returned view is always usable: when the provider call fails the view
// is the bare map with both markers, and the error is returned alongside it.
func (s *RouteLookupService) RenderRoute(
	ctx context.Context,
	origin domain.POI,
	destination domain.POI,
	predictionTime time.Time,
) (render.MapView, error) {
	q := domain.NewRouteQuery(origin, destination, predictionTime)

	route, err := s.provider.PredictRoute(ctx, q)
	if err != nil {
		return render.BuildMapView(origin, destination, domain.RouteResult{}),
			fmt.Errorf("render route %q -> %q: %w", origin.Name, destination.Name, err)
	}

	return render.BuildMapView(origin, destination, route), nil
}

// PredictionTime returns the configured override, or the current time.
func (s *RouteLookupService) PredictionTime() time.Time {
	if s.predictionTime != nil {
		return *s.predictionTime
	}
	return s.now()
}

package services

import (
	"context"
	"fmt"
	"tmap-route-service/internal/domain"
	"tmap-route-service/internal/platform/obs"
	"tmap-route-service/internal/render"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// LookupResult is everything one submission produces. Travel time and map are
// independent: either may carry an error while the other still displays.
type LookupResult struct {
	Departure        domain.POI
	Destination      domain.POI
	TotalTimeSeconds int
	TravelTimeErr    error
	Map              render.MapView
	RouteErr         error
}

// Whole minutes of travel, discarding the remainder.
func (r *LookupResult) Minutes() int {
	return r.TotalTimeSeconds / 60
}

// Summary returns the lines shown under the map.
func (r *LookupResult) Summary() []string {
	lines := []string{
		"출발지: " + r.Departure.Name,
		"도착지: " + r.Destination.Name,
	}
	if r.TravelTimeErr != nil {
		return append(lines, "걸리는 시간: "+domain.UserMessage(r.TravelTimeErr))
	}
	return append(lines, fmt.Sprintf("걸리는 시간: %d분", r.Minutes()))
}

// Errors returns the user-facing messages for the steps that failed.
func (r *LookupResult) Errors() []string {
	var out []string
	if r.RouteErr != nil {
		out = append(out, domain.UserMessage(r.RouteErr))
	}
	return out
}

// Run the full pipeline for one submission.
//
// Both keywords are resolved first; a failure there aborts before any route
// request is sent. Travel time and route prediction failures are recorded on
// the result instead of failing the lookup.
func (s *RouteLookupService) Lookup(ctx context.Context, departureKeyword, destinationKeyword string) (_ *LookupResult, err error) {
	ctx, span := s.tracer.Start(ctx, "RouteLookupService.Lookup")
	defer span.End()
	span.SetAttributes(
		attribute.String("lookup.departure", departureKeyword),
		attribute.String("lookup.destination", destinationKeyword),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()
	defer obs.Time(ctx, s.log, "lookup")(&err)

	dep, err := s.Resolve(ctx, departureKeyword)
	if err != nil {
		return nil, fmt.Errorf("lookup departure: %w", err)
	}

	dest, err := s.Resolve(ctx, destinationKeyword)
	if err != nil {
		return nil, fmt.Errorf("lookup destination: %w", err)
	}

	res := &LookupResult{Departure: dep, Destination: dest}

	res.TotalTimeSeconds, res.TravelTimeErr = s.EstimateTravelTime(ctx, dep, dest)
	if res.TravelTimeErr != nil {
		span.RecordError(res.TravelTimeErr)
		s.log.Warn("travel time unavailable",
			zap.String("req_id", obs.RequestID(ctx)),
			zap.Error(res.TravelTimeErr),
		)
	}

	res.Map, res.RouteErr = s.RenderRoute(ctx, dep, dest, s.PredictionTime())
	if res.RouteErr != nil {
		span.RecordError(res.RouteErr)
		s.log.Warn("route unavailable, showing markers only",
			zap.String("req_id", obs.RequestID(ctx)),
			zap.Error(res.RouteErr),
		)
	}

	s.log.Info("lookup completed",
		zap.String("req_id", obs.RequestID(ctx)),
		zap.String("departure", dep.Name),
		zap.String("destination", dest.Name),
		zap.Int("total_time_seconds", res.TotalTimeSeconds),
		zap.Int("polylines", len(res.Map.Polylines)),
	)

	return res, nil
}

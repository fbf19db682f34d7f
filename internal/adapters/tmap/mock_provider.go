package tmap

import (
	"context"
	"fmt"
	"tmap-route-service/internal/domain"
)

type MockPair struct {
	From, To domain.Coordinates
	Seconds  int
}

// MockProvider serves canned search results, trip durations and routes.
// Keywords without an entry return no results; pairs without an entry
// return a NoRouteError.
type MockProvider struct {
	pois   map[string][]domain.POI
	times  map[string]int
	routes map[string]domain.RouteResult

	// Errors injected per operation, checked before the canned data.
	SearchErr error
	TimeErr   error
	RouteErr  error

	Calls []string
}

func NewMockProvider(pois map[string][]domain.POI, pairs []MockPair) *MockProvider {
	times := make(map[string]int, len(pairs))
	for _, p := range pairs {
		times[pairKey(p.From, p.To)] = p.Seconds
	}
	if pois == nil {
		pois = map[string][]domain.POI{}
	}
	return &MockProvider{
		pois:   pois,
		times:  times,
		routes: map[string]domain.RouteResult{},
	}
}

// WithRoute registers the route prediction result for a pair.
func (m *MockProvider) WithRoute(from, to domain.Coordinates, r domain.RouteResult) *MockProvider {
	m.routes[pairKey(from, to)] = r
	return m
}

func pairKey(from, to domain.Coordinates) string {
	return from.String() + "|" + to.String()
}

func (m *MockProvider) SearchPOIs(ctx context.Context, keyword string) ([]domain.POI, error) {
	m.Calls = append(m.Calls, "SearchPOIs:"+keyword)
	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	return m.pois[keyword], nil
}

func (m *MockProvider) TotalTime(ctx context.Context, origin, destination domain.Coordinates) (int, error) {
	m.Calls = append(m.Calls, "TotalTime")
	if m.TimeErr != nil {
		return 0, m.TimeErr
	}
	s, ok := m.times[pairKey(origin, destination)]
	if !ok {
		return 0, &domain.NoRouteError{Op: fmt.Sprintf("mock.TotalTime %s -> %s", origin, destination)}
	}
	return s, nil
}

func (m *MockProvider) PredictRoute(ctx context.Context, q domain.RouteQuery) (domain.RouteResult, error) {
	m.Calls = append(m.Calls, "PredictRoute")
	if m.RouteErr != nil {
		return domain.RouteResult{}, m.RouteErr
	}
	return m.routes[pairKey(q.Departure.Coordinates, q.Destination.Coordinates)], nil
}

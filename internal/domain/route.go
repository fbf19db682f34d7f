package domain

import "time"

// GeometryType tags a route segment the way the provider's GeoJSON does.
type GeometryType string

const (
	GeometryLineString GeometryType = "LineString"
	GeometryPoint      GeometryType = "Point"
)

// Fixed routing policy flags sent with every route prediction.
type SearchOptions struct {
	DepSearchFlag   string
	DestSearchFlag  string
	PredictionType  string
	SearchOption    string
	TollgateCarType string
	TrafficInfo     string
}

// Car routing, no real-time traffic weighting, departure-based prediction.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		DepSearchFlag:   "05",
		DestSearchFlag:  "03",
		PredictionType:  "departure",
		SearchOption:    "00",
		TollgateCarType: "car",
		TrafficInfo:     "N",
	}
}

// Represents a single route prediction request.
// It is built per user request and passed by value to the route provider.
type RouteQuery struct {
	Departure      POI
	Destination    POI
	PredictionTime time.Time
	Options        SearchOptions
}

func NewRouteQuery(departure, destination POI, predictionTime time.Time) RouteQuery {
	return RouteQuery{
		Departure:      departure,
		Destination:    destination,
		PredictionTime: predictionTime,
		Options:        DefaultSearchOptions(),
	}
}

// One geometry record of a route. Coordinates keep the provider order.
type RouteSegment struct {
	Type        GeometryType
	Coordinates []Coordinates
}

// Represents the route returned by the provider: total duration and
// the ordered geometry used to draw it. It is derived data and is never mutated.
type RouteResult struct {
	TotalTimeSeconds int
	Segments         []RouteSegment
}

// Lines returns only the LineString segments, in order.
func (r RouteResult) Lines() []RouteSegment {
	out := make([]RouteSegment, 0, len(r.Segments))
	for _, s := range r.Segments {
		if s.Type == GeometryLineString {
			out = append(out, s)
		}
	}
	return out
}

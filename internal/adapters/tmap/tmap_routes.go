package tmap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"tmap-route-service/internal/config"
	"tmap-route-service/internal/domain"
	"tmap-route-service/internal/platform/obs"

	"go.uber.org/zap"
)

const (
	routesPath     = "/tmap/routes"
	predictionPath = "/tmap/routes/prediction"
)

type totalTimeRequest struct {
	StartX float64 `json:"startX"`
	StartY float64 `json:"startY"`
	EndX   float64 `json:"endX"`
	EndY   float64 `json:"endY"`
}

type predictionPoint struct {
	Name           string  `json:"name"`
	Lon            float64 `json:"lon"`
	Lat            float64 `json:"lat"`
	DepSearchFlag  string  `json:"depSearchFlag,omitempty"`
	DestSearchFlag string  `json:"destSearchFlag,omitempty"`
}

type predictionRequest struct {
	RoutesInfo struct {
		Departure       predictionPoint `json:"departure"`
		Destination     predictionPoint `json:"destination"`
		PredictionType  string          `json:"predictionType"`
		PredictionTime  string          `json:"predictionTime"`
		SearchOption    string          `json:"searchOption"`
		TollgateCarType string          `json:"tollgateCarType"`
		TrafficInfo     string          `json:"trafficInfo"`
	} `json:"routesInfo"`
}

type feature struct {
	Type     string `json:"type"`
	Geometry *struct {
		Type        string          `json:"type"`
		Coordinates json.RawMessage `json:"coordinates"`
	} `json:"geometry"`
	Properties struct {
		TotalTime *int `json:"totalTime"`
	} `json:"properties"`
}

type featureCollection struct {
	Type     string     `json:"type"`
	Features *[]feature `json:"features"`
}

// TotalTime asks /tmap/routes for the trip summary and returns
// features[0].properties.totalTime in seconds.
func (p *TmapProvider) TotalTime(
	ctx context.Context,
	origin domain.Coordinates,
	destination domain.Coordinates,
) (_ int, err error) {
	const op = "tmap.TotalTime"
	defer obs.Time(ctx, p.log, op)(&err)

	startX, startY := origin.XY()
	endX, endY := destination.XY()
	body := totalTimeRequest{StartX: startX, StartY: startY, EndX: endX, EndY: endY}

	fc, err := p.postFeatures(ctx, op, routesPath, nil, body)
	if err != nil {
		return 0, err
	}

	if len(fc) == 0 {
		return 0, &domain.NoRouteError{Op: op}
	}

	total := fc[0].Properties.TotalTime
	if total == nil {
		return 0, &domain.MalformedResponseError{Op: op, Err: errors.New("features[0].properties.totalTime is missing")}
	}

	return *total, nil
}

// PredictRoute asks /tmap/routes/prediction for a traffic-aware route and
// flattens the returned feature collection into typed segments.
// An empty feature collection is not an error: the result simply has no segments.
func (p *TmapProvider) PredictRoute(ctx context.Context, q domain.RouteQuery) (_ domain.RouteResult, err error) {
	const op = "tmap.PredictRoute"
	defer obs.Time(ctx, p.log, op)(&err)

	var body predictionRequest
	body.RoutesInfo.Departure = predictionPoint{
		Name:          "출발지",
		Lon:           q.Departure.Longitude(),
		Lat:           q.Departure.Latitude(),
		DepSearchFlag: q.Options.DepSearchFlag,
	}
	body.RoutesInfo.Destination = predictionPoint{
		Name:           "도착지",
		Lon:            q.Destination.Longitude(),
		Lat:            q.Destination.Latitude(),
		DestSearchFlag: q.Options.DestSearchFlag,
	}
	body.RoutesInfo.PredictionType = q.Options.PredictionType
	body.RoutesInfo.PredictionTime = q.PredictionTime.Format(config.PredictionTimeLayout)
	body.RoutesInfo.SearchOption = q.Options.SearchOption
	body.RoutesInfo.TollgateCarType = q.Options.TollgateCarType
	body.RoutesInfo.TrafficInfo = q.Options.TrafficInfo

	params := url.Values{}
	params.Set("resCoordType", "WGS84GEO")
	params.Set("reqCoordType", "WGS84GEO")
	params.Set("sort", "index")

	fc, err := p.postFeatures(ctx, op, predictionPath, params, body)
	if err != nil {
		return domain.RouteResult{}, err
	}

	result, err := toRouteResult(fc)
	if err != nil {
		return domain.RouteResult{}, &domain.MalformedResponseError{Op: op, Err: err}
	}

	p.log.Debug("route prediction",
		zap.String("req_id", obs.RequestID(ctx)),
		zap.Int("features", len(fc)),
		zap.Int("total_time", result.TotalTimeSeconds),
	)

	return result, nil
}

func (p *TmapProvider) postFeatures(
	ctx context.Context,
	op string,
	path string,
	params url.Values,
	payload any,
) ([]feature, error) {
	req, err := p.newRequest(ctx, http.MethodPost, path, params, payload)
	if err != nil {
		return nil, fmt.Errorf("%s request: %w", op, err)
	}

	resp, err := p.do(op, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	var fc featureCollection
	ok, err := decodeJSON(op, resp.Body, &fc)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	if fc.Features == nil {
		return nil, &domain.MalformedResponseError{Op: op, Err: errors.New("missing features")}
	}

	return *fc.Features, nil
}

func toRouteResult(features []feature) (domain.RouteResult, error) {
	var result domain.RouteResult

	if len(features) > 0 && features[0].Properties.TotalTime != nil {
		result.TotalTimeSeconds = *features[0].Properties.TotalTime
	}

	result.Segments = make([]domain.RouteSegment, 0, len(features))
	for i, f := range features {
		if f.Geometry == nil {
			return domain.RouteResult{}, fmt.Errorf("feature #%d has no geometry", i)
		}

		switch domain.GeometryType(f.Geometry.Type) {
		case domain.GeometryLineString:
			var raw [][]float64
			if err := json.Unmarshal(f.Geometry.Coordinates, &raw); err != nil {
				return domain.RouteResult{}, fmt.Errorf("feature #%d: decode LineString: %w", i, err)
			}
			coords := make([]domain.Coordinates, 0, len(raw))
			for j, pair := range raw {
				c, err := toCoordinates(pair)
				if err != nil {
					return domain.RouteResult{}, fmt.Errorf("feature #%d point #%d: %w", i, j, err)
				}
				coords = append(coords, c)
			}
			result.Segments = append(result.Segments, domain.RouteSegment{
				Type:        domain.GeometryLineString,
				Coordinates: coords,
			})

		case domain.GeometryPoint:
			var pair []float64
			if err := json.Unmarshal(f.Geometry.Coordinates, &pair); err != nil {
				return domain.RouteResult{}, fmt.Errorf("feature #%d: decode Point: %w", i, err)
			}
			c, err := toCoordinates(pair)
			if err != nil {
				return domain.RouteResult{}, fmt.Errorf("feature #%d: %w", i, err)
			}
			result.Segments = append(result.Segments, domain.RouteSegment{
				Type:        domain.GeometryPoint,
				Coordinates: []domain.Coordinates{c},
			})
		}
	}

	return result, nil
}

// toCoordinates reads a GeoJSON [lon, lat] pair.
func toCoordinates(pair []float64) (domain.Coordinates, error) {
	if len(pair) < 2 {
		return domain.Coordinates{}, fmt.Errorf("invalid coordinate format: %v", pair)
	}
	return domain.Coordinates{Lon: pair[0], Lat: pair[1]}, nil
}

package render

import "tmap-route-service/internal/domain"

const (
	DefaultZoom = 10

	polylineColor   = "#FF0000"
	polylineWeight  = 6
	polylineOpacity = 0.7
)

// LatLng is the map widget's native point order (latitude first).
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func ToLatLng(c domain.Coordinates) LatLng {
	return LatLng{Lat: c.Lat, Lng: c.Lon}
}

type Polyline struct {
	Path          []LatLng `json:"path"`
	StrokeColor   string   `json:"strokeColor"`
	StrokeWeight  int      `json:"strokeWeight"`
	StrokeOpacity float64  `json:"strokeOpacity"`
}

// Marker is a clickable pin whose title is revealed in an info popup.
type Marker struct {
	Position LatLng `json:"position"`
	Title    string `json:"title"`
}

// MapView is the data behind a rendered map document. It is serialized
// into the page as JSON, never spliced into script source.
type MapView struct {
	Center    LatLng     `json:"center"`
	Zoom      int        `json:"zoom"`
	Polylines []Polyline `json:"polylines"`
	Markers   []Marker   `json:"markers"`
}

// BuildMapView centers the map on origin, draws one polyline per LineString
// segment of route and adds a marker for each POI. A route without segments
// produces a bare map carrying only the two markers.
func BuildMapView(origin, destination domain.POI, route domain.RouteResult) MapView {
	lines := route.Lines()

	view := MapView{
		Center:    ToLatLng(origin.Coordinates),
		Zoom:      DefaultZoom,
		Polylines: make([]Polyline, 0, len(lines)),
		Markers: []Marker{
			{Position: ToLatLng(origin.Coordinates), Title: origin.Name},
			{Position: ToLatLng(destination.Coordinates), Title: destination.Name},
		},
	}

	for _, seg := range lines {
		path := make([]LatLng, 0, len(seg.Coordinates))
		for _, c := range seg.Coordinates {
			path = append(path, ToLatLng(c))
		}
		view.Polylines = append(view.Polylines, Polyline{
			Path:          path,
			StrokeColor:   polylineColor,
			StrokeWeight:  polylineWeight,
			StrokeOpacity: polylineOpacity,
		})
	}

	return view
}

package domain

import (
	"errors"
	"strings"
)

// A named geographic location returned by a place search.
// A POI is a value: it is built once from a provider result and never mutated.
type POI struct {
	Name        string
	Coordinates Coordinates
}

func NewPOI(name string, lat, lon float64) (POI, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return POI{}, errors.New("new poi: name must be non-empty")
	}
	if lat < -90 || lat > 90 {
		return POI{}, errors.New("new poi: latitude out of range")
	}
	if lon < -180 || lon > 180 {
		return POI{}, errors.New("new poi: longitude out of range")
	}

	return POI{Name: name, Coordinates: Coordinates{Lon: lon, Lat: lat}}, nil
}

func (p POI) Latitude() float64  { return p.Coordinates.Lat }
func (p POI) Longitude() float64 { return p.Coordinates.Lon }

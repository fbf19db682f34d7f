package domain

import "fmt"

// WGS84 coordinates. Tmap orders them as (x=longitude, y=latitude).
type Coordinates struct {
	Lon float64
	Lat float64
}

// XY returns the pair in the provider's (x, y) order.
func (c Coordinates) XY() (x, y float64) { return c.Lon, c.Lat }

func (c Coordinates) String() string {
	return fmt.Sprintf("(%.6f,%.6f)", c.Lat, c.Lon)
}

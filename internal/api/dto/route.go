package dto

import "tmap-route-service/internal/render"

type RouteRequest struct {
	Departure   string `json:"departure" validate:"required,max=100"`
	Destination string `json:"destination" validate:"required,max=100"`
}

type POIResponse struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

type RouteLookupResponse struct {
	Departure        POIResponse    `json:"departure"`
	Destination      POIResponse    `json:"destination"`
	TotalTimeSeconds *int           `json:"total_time_seconds,omitempty"`
	TotalTimeMinutes *int           `json:"total_time_minutes,omitempty"`
	Summary          []string       `json:"summary"`
	Map              render.MapView `json:"map"`
	Errors           []string       `json:"errors,omitempty"`
}

type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

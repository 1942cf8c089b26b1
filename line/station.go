package line

import "github.com/theoremus-urban-solutions/line-sections/section"

// Station is a registry entry. Lines refer to it by ID only.
type Station struct {
	ID   section.StationID `json:"id"`
	Name string            `json:"name" validate:"required"`
	// Code is an external reference (GTFS stop_id, OSM node id).
	Code string            `json:"code,omitempty"`
	Lat  float64           `json:"lat,omitempty" validate:"gte=-90,lte=90"`
	Lon  float64           `json:"lon,omitempty" validate:"gte=-180,lte=180"`
}

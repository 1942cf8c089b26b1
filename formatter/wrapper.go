package formatter

import (
	"github.com/theoremus-urban-solutions/line-sections/gtfsrt"
	"github.com/theoremus-urban-solutions/line-sections/line"
	"github.com/theoremus-urban-solutions/line-sections/utils"
)

// SectionView is one section of a line response, in path order.
type SectionView struct {
	UpStationID   string `json:"upStationId"`
	DownStationID string `json:"downStationId"`
	Distance      int    `json:"distance"`
}

// LineResponse is the external view of a line with its ordered stations.
type LineResponse struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Color         string         `json:"color,omitempty"`
	RouteRef      string         `json:"routeRef,omitempty"`
	TotalDistance int            `json:"totalDistance"`
	Stations      []line.Station `json:"stations"`
	Sections      []SectionView  `json:"sections"`
}

// VehiclesResponse lists realtime placements along a line.
type VehiclesResponse struct {
	ResponseTimestamp string             `json:"responseTimestamp"`
	LineID            string             `json:"lineId"`
	Vehicles          []gtfsrt.Placement `json:"vehicles"`
}

// WrapLine builds the response for l. stations must be l's resolved stations
// in path order.
func WrapLine(l *line.Line, stations []line.Station) LineResponse {
	ordered := l.Sections.Ordered()
	res := LineResponse{
		ID:            l.ID,
		Name:          l.Name,
		Color:         l.Color,
		RouteRef:      l.RouteRef,
		TotalDistance: l.Sections.TotalDistance().Int(),
		Stations:      stations,
		Sections:      make([]SectionView, 0, len(ordered)),
	}
	if res.Stations == nil {
		res.Stations = []line.Station{}
	}
	for _, s := range ordered {
		res.Sections = append(res.Sections, SectionView{
			UpStationID:   string(s.Up),
			DownStationID: string(s.Down),
			Distance:      s.Distance.Int(),
		})
	}
	return res
}

// WrapVehicles builds a realtime response stamped with the current time.
func WrapVehicles(lineID string, placements []gtfsrt.Placement) VehiclesResponse {
	if placements == nil {
		placements = []gtfsrt.Placement{}
	}
	return VehiclesResponse{
		ResponseTimestamp: utils.Iso8601Now(),
		LineID:            lineID,
		Vehicles:          placements,
	}
}

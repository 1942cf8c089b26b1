package gtfsrt

import (
	"sort"

	"github.com/theoremus-urban-solutions/line-sections/line"
)

// Placement is a vehicle located at a station of a line.
type Placement struct {
	Vehicle      Vehicle      `json:"vehicle"`
	// StationIndex is the station's position along the line, from 0.
	StationIndex int          `json:"stationIndex"`
	Station      line.Station `json:"station"`
}

// Place keeps the vehicles whose stop_id matches the code of one of the
// line's ordered stations. When routeRef is set, vehicles reporting another
// route are dropped; vehicles with no route are kept. Results are ordered
// along the line.
func Place(vehicles []Vehicle, stations []line.Station, routeRef string) []Placement {
	index := make(map[string]int, len(stations))
	for i, st := range stations {
		if st.Code != "" {
			index[st.Code] = i
		}
	}

	out := make([]Placement, 0)
	for _, v := range vehicles {
		if routeRef != "" && v.RouteID != "" && v.RouteID != routeRef {
			continue
		}
		i, ok := index[v.StopID]
		if !ok {
			continue
		}
		out = append(out, Placement{Vehicle: v, StationIndex: i, Station: stations[i]})
	}
	sort.SliceStable(out, func(a, b int) bool {
		if out[a].StationIndex != out[b].StationIndex {
			return out[a].StationIndex < out[b].StationIndex
		}
		return out[a].Vehicle.ID < out[b].Vehicle.ID
	})
	return out
}

package line

import (
	"github.com/theoremus-urban-solutions/line-sections/section"
)

// Line is one transit line and its section path.
type Line struct {
	ID       string
	Name     string
	Color    string
	// RouteRef is an external route reference (GTFS route_id, OSM relation ref).
	RouteRef string
	Sections *section.Sections
}

// NewLine creates a line holding a single first section.
func NewLine(id, name, color, routeRef string, up, down section.StationID, distance section.Distance) (*Line, error) {
	l := &Line{ID: id, Name: name, Color: color, RouteRef: routeRef, Sections: section.New()}
	if err := l.AddSection(up, down, distance); err != nil {
		return nil, err
	}
	return l, nil
}

// AddSection adds an up→down section owned by l.
func (l *Line) AddSection(up, down section.StationID, distance section.Distance) error {
	s := section.NewSection(up, down, distance)
	s.LineID = l.ID
	return l.Sections.Add(s)
}

// RemoveStation drops station from l's path.
func (l *Line) RemoveStation(station section.StationID) error {
	return l.Sections.Remove(station)
}

// StationIDs returns l's stations from start to end.
func (l *Line) StationIDs() []section.StationID {
	return l.Sections.ToStations()
}

// Uses reports whether station lies on l.
func (l *Line) Uses(station section.StationID) bool {
	return l.Sections.Contains(station)
}

package gtfs

// Route is one routes.txt row. AgencyID falls back to the feed's only agency
// when the column is blank.
type Route struct {
	ID        string
	AgencyID  string
	ShortName string
	LongName  string
	Color     string
}

// Trip is one trips.txt row.
type Trip struct {
	ID          string
	RouteID     string
	DirectionID string // "0", "1" or empty
	ShapeID     string
	Headsign    string
}

// Stop is one stops.txt row.
type Stop struct {
	ID   string
	Name string
	Lat  float64
	Lon  float64
}

// StopTime is one stop_times.txt row of a trip.
type StopTime struct {
	StopID   string
	Sequence int
	// ShapeDist is shape_dist_traveled in the feed's unit; HasShapeDist is
	// false when the column is missing or blank.
	ShapeDist    float64
	HasShapeDist bool
}

// Feed is an in-memory GTFS static feed, limited to what a line plan needs.
type Feed struct {
	// AgencyID restricts RouteLine to one agency's routes; empty accepts all.
	AgencyID   string
	Agencies   map[string]string // agency_id -> agency_name
	Routes     map[string]Route
	Trips      map[string]Trip
	Stops      map[string]Stop
	StopTimes  map[string][]StopTime   // trip_id -> stop times ordered by stop_sequence
	Shapes     map[string][][2]float64 // shape_id -> ordered points [lon,lat]
	ShapeCumKM map[string][]float64    // shape_id -> cumulative km at each point
}

func newFeed(agencyID string) *Feed {
	return &Feed{
		AgencyID:   agencyID,
		Agencies:   map[string]string{},
		Routes:     map[string]Route{},
		Trips:      map[string]Trip{},
		Stops:      map[string]Stop{},
		StopTimes:  map[string][]StopTime{},
		Shapes:     map[string][][2]float64{},
		ShapeCumKM: map[string][]float64{},
	}
}

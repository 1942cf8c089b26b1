package gtfs

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/theoremus-urban-solutions/line-sections/line"
	"github.com/theoremus-urban-solutions/line-sections/utils"
)

var (
	ErrRouteNotFound = errors.New("gtfs: route not found")
	ErrNoTrips       = errors.New("gtfs: no usable trip for route")
)

// Unit is the unit of shape_dist_traveled in a feed.
type Unit string

const (
	Metres     Unit = "m"
	Kilometres Unit = "km"
)

func (u Unit) toKM(v float64) float64 {
	if u == Kilometres {
		return v
	}
	return v / 1000
}

// RouteLine builds a line plan for one direction of a route.
//
// The representative trip is the one with the most stops (ties broken by
// trip_id). A stop that repeats inside the trip ends the plan, so loop routes
// become a simple path. Distances come from shape_dist_traveled when both
// stops carry it, then from the stops' positions along the trip's shape, then
// from the straight-line distance between the stops.
//
// An empty directionID accepts trips in either direction. When the feed is
// restricted to an agency, routes of other agencies are not found.
func (f *Feed) RouteLine(routeID, directionID string, unit Unit) (line.Plan, error) {
	route, ok := f.Routes[routeID]
	if !ok {
		return line.Plan{}, fmt.Errorf("%w: %s", ErrRouteNotFound, routeID)
	}
	if f.AgencyID != "" && route.AgencyID != "" && route.AgencyID != f.AgencyID {
		return line.Plan{}, fmt.Errorf("%w: %s is run by %s, not %s",
			ErrRouteNotFound, routeID, f.agencyLabel(route.AgencyID), f.agencyLabel(f.AgencyID))
	}
	trip, ok := f.representativeTrip(routeID, directionID)
	if !ok {
		return line.Plan{}, fmt.Errorf("%w: %s direction %q", ErrNoTrips, routeID, directionID)
	}

	times := cutLoop(f.StopTimes[trip.ID])
	stops := make([]Stop, 0, len(times))
	for _, st := range times {
		s, ok := f.Stops[st.StopID]
		if !ok {
			return line.Plan{}, fmt.Errorf("%w: trip %s references unknown stop %s", ErrNoTrips, trip.ID, st.StopID)
		}
		stops = append(stops, s)
	}
	if len(stops) < 2 {
		return line.Plan{}, fmt.Errorf("%w: trip %s has %d distinct stops", ErrNoTrips, trip.ID, len(stops))
	}

	var along []float64
	if trip.ShapeID != "" {
		along = f.alongShapeKM(trip.ShapeID, stops)
	}

	plan := line.Plan{
		Name:      routeName(route, trip),
		Color:     routeColor(route.Color),
		RouteRef:  route.ID,
		Stops:     make([]line.PlanStop, 0, len(stops)),
		Distances: make([]int, 0, len(stops)-1),
	}
	for i, s := range stops {
		plan.Stops = append(plan.Stops, line.PlanStop{Code: s.ID, Name: s.Name, Lat: s.Lat, Lon: s.Lon})
		if i == 0 {
			continue
		}
		plan.Distances = append(plan.Distances, utils.Metres(segmentKM(times[i-1], times[i], along, i, stops, unit)))
	}
	return plan, nil
}

func segmentKM(prev, cur StopTime, along []float64, i int, stops []Stop, unit Unit) float64 {
	if prev.HasShapeDist && cur.HasShapeDist && cur.ShapeDist > prev.ShapeDist {
		return unit.toKM(cur.ShapeDist - prev.ShapeDist)
	}
	if along != nil && along[i] > along[i-1] {
		return along[i] - along[i-1]
	}
	a, b := stops[i-1], stops[i]
	return utils.HaversineKM(a.Lat, a.Lon, b.Lat, b.Lon)
}

func (f *Feed) representativeTrip(routeID, directionID string) (Trip, bool) {
	var candidates []Trip
	for _, t := range f.Trips {
		if t.RouteID != routeID {
			continue
		}
		if directionID != "" && t.DirectionID != directionID {
			continue
		}
		if len(f.StopTimes[t.ID]) < 2 {
			continue
		}
		candidates = append(candidates, t)
	}
	if len(candidates) == 0 {
		return Trip{}, false
	}
	sort.Slice(candidates, func(i, j int) bool {
		ni, nj := len(f.StopTimes[candidates[i].ID]), len(f.StopTimes[candidates[j].ID])
		if ni != nj {
			return ni > nj
		}
		return candidates[i].ID < candidates[j].ID
	})
	return candidates[0], true
}

// cutLoop truncates times before the first stop that was already visited.
func cutLoop(times []StopTime) []StopTime {
	seen := make(map[string]struct{}, len(times))
	for i, st := range times {
		if _, dup := seen[st.StopID]; dup {
			return times[:i]
		}
		seen[st.StopID] = struct{}{}
	}
	return times
}

func routeName(r Route, t Trip) string {
	name := r.ShortName
	if name == "" {
		name = r.LongName
	}
	if name == "" {
		name = r.ID
	}
	if t.Headsign != "" {
		name += " to " + t.Headsign
	}
	return name
}

func routeColor(c string) string {
	if c == "" || strings.HasPrefix(c, "#") {
		return c
	}
	return "#" + c
}

func (f *Feed) agencyLabel(id string) string {
	if name := f.Agencies[id]; name != "" {
		return name + " (" + id + ")"
	}
	return id
}

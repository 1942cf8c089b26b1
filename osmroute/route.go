package osmroute

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/paulmach/osm"

	"github.com/theoremus-urban-solutions/line-sections/line"
	"github.com/theoremus-urban-solutions/line-sections/utils"
)

var (
	ErrRouteNotFound = errors.New("osmroute: route relation not found")
	ErrTooFewStops   = errors.New("osmroute: route has fewer than two stops")
	ErrMissingNode   = errors.New("osmroute: stop node missing from extract")
)

// Query selects a route relation. RelationID wins when set.
type Query struct {
	RelationID int64
	Ref        string
}

func (q Query) String() string {
	if q.RelationID != 0 {
		return "relation " + strconv.FormatInt(q.RelationID, 10)
	}
	return "ref " + strconv.Quote(q.Ref)
}

var stopRoles = map[string]bool{
	"stop":            true,
	"stop_entry_only": true,
	"stop_exit_only":  true,
}

// matches reports whether r is a route relation selected by q.
func (q Query) matches(r *osm.Relation) bool {
	if r.Tags.Find("type") != "route" {
		return false
	}
	if q.RelationID != 0 {
		return int64(r.ID) == q.RelationID
	}
	return q.Ref != "" && r.Tags.Find("ref") == q.Ref
}

// better picks between two candidate relations: more stops first, then the
// lower id.
func better(a, b *osm.Relation) bool {
	na, nb := len(stopRefs(a)), len(stopRefs(b))
	if na != nb {
		return na > nb
	}
	return a.ID < b.ID
}

// stopRefs returns the relation's stop node ids in order, cut at the first
// repeated node.
func stopRefs(r *osm.Relation) []osm.NodeID {
	seen := map[osm.NodeID]bool{}
	var out []osm.NodeID
	for _, m := range r.Members {
		if m.Type != osm.TypeNode || !stopRoles[m.Role] {
			continue
		}
		id := osm.NodeID(m.Ref)
		if seen[id] {
			break
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// BuildPlan turns a route relation and its resolved stop nodes into a plan.
func BuildPlan(r *osm.Relation, nodes map[osm.NodeID]*osm.Node) (line.Plan, error) {
	refs := stopRefs(r)
	if len(refs) < 2 {
		return line.Plan{}, fmt.Errorf("%w: relation %d has %d", ErrTooFewStops, r.ID, len(refs))
	}

	plan := line.Plan{
		Name:      routeName(r),
		Color:     r.Tags.Find("colour"),
		RouteRef:  r.Tags.Find("ref"),
		Stops:     make([]line.PlanStop, 0, len(refs)),
		Distances: make([]int, 0, len(refs)-1),
	}
	var prev *osm.Node
	for _, id := range refs {
		n, ok := nodes[id]
		if !ok {
			return line.Plan{}, fmt.Errorf("%w: node %d", ErrMissingNode, id)
		}
		plan.Stops = append(plan.Stops, line.PlanStop{
			Code: stopCode(n),
			Name: n.Tags.Find("name"),
			Lat:  n.Lat,
			Lon:  n.Lon,
		})
		if prev != nil {
			plan.Distances = append(plan.Distances, utils.Metres(utils.HaversineKM(prev.Lat, prev.Lon, n.Lat, n.Lon)))
		}
		prev = n
	}
	return plan, nil
}

func routeName(r *osm.Relation) string {
	for _, k := range []string{"name", "ref"} {
		if v := r.Tags.Find(k); v != "" {
			return v
		}
	}
	return "relation " + strconv.FormatInt(int64(r.ID), 10)
}

func stopCode(n *osm.Node) string {
	for _, k := range []string{"gtfs:stop_id", "ref:gtfs"} {
		if v := n.Tags.Find(k); v != "" {
			return v
		}
	}
	return "osm:" + strconv.FormatInt(int64(n.ID), 10)
}

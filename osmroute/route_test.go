package osmroute

import (
	"testing"

	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func relation(id int64, tags osm.Tags, members ...osm.Member) *osm.Relation {
	return &osm.Relation{ID: osm.RelationID(id), Tags: tags, Members: members}
}

func stop(ref int64, role string) osm.Member {
	return osm.Member{Type: osm.TypeNode, Ref: ref, Role: role}
}

func node(id int64, lat, lon float64, tags ...osm.Tag) *osm.Node {
	return &osm.Node{ID: osm.NodeID(id), Lat: lat, Lon: lon, Tags: tags}
}

func TestBuildPlan(t *testing.T) {
	rel := relation(100,
		osm.Tags{{Key: "type", Value: "route"}, {Key: "route", Value: "subway"}, {Key: "name", Value: "Line 2"}, {Key: "ref", Value: "2"}, {Key: "colour", Value: "#00A84D"}},
		stop(1, "stop"),
		osm.Member{Type: osm.TypeNode, Ref: 11, Role: "platform"},
		osm.Member{Type: osm.TypeWay, Ref: 500, Role: ""},
		stop(2, "stop_exit_only"),
		stop(3, "stop_entry_only"),
		stop(1, "stop"),
	)
	nodes := map[osm.NodeID]*osm.Node{
		1: node(1, 0, 0, osm.Tag{Key: "name", Value: "Alpha"}, osm.Tag{Key: "gtfs:stop_id", Value: "A"}),
		2: node(2, 0, 0.01, osm.Tag{Key: "name", Value: "Bravo"}),
		3: node(3, 0, 0.03, osm.Tag{Key: "ref:gtfs", Value: "C"}),
	}

	plan, err := BuildPlan(rel, nodes)
	require.NoError(t, err)
	assert.Equal(t, "Line 2", plan.Name)
	assert.Equal(t, "#00A84D", plan.Color)
	assert.Equal(t, "2", plan.RouteRef)
	require.Len(t, plan.Stops, 3)
	assert.Equal(t, "A", plan.Stops[0].Code)
	assert.Equal(t, "osm:2", plan.Stops[1].Code)
	assert.Equal(t, "Bravo", plan.Stops[1].Name)
	assert.Equal(t, "C", plan.Stops[2].Code)
	require.Len(t, plan.Distances, 2)
	assert.InDelta(t, 1112, plan.Distances[0], 2)
	assert.InDelta(t, 2224, plan.Distances[1], 3)
	assert.NoError(t, plan.Validate())
}

func TestBuildPlan_Errors(t *testing.T) {
	routeTags := osm.Tags{{Key: "type", Value: "route"}}

	_, err := BuildPlan(relation(1, routeTags, stop(1, "stop")), nil)
	assert.ErrorIs(t, err, ErrTooFewStops)

	_, err = BuildPlan(relation(1, routeTags, stop(1, "stop"), stop(2, "stop")),
		map[osm.NodeID]*osm.Node{1: node(1, 0, 0)})
	assert.ErrorIs(t, err, ErrMissingNode)
}

func TestRouteNameFallback(t *testing.T) {
	assert.Equal(t, "7", routeName(relation(5, osm.Tags{{Key: "ref", Value: "7"}})))
	assert.Equal(t, "relation 5", routeName(relation(5, nil)))
}

func TestQuery(t *testing.T) {
	bus := relation(42, osm.Tags{{Key: "type", Value: "route"}, {Key: "ref", Value: "M15"}})
	master := relation(43, osm.Tags{{Key: "type", Value: "route_master"}, {Key: "ref", Value: "M15"}})

	assert.True(t, Query{RelationID: 42}.matches(bus))
	assert.False(t, Query{RelationID: 41}.matches(bus))
	assert.True(t, Query{Ref: "M15"}.matches(bus))
	assert.False(t, Query{Ref: "M15"}.matches(master))
	assert.False(t, Query{}.matches(bus))
	assert.Equal(t, "relation 42", Query{RelationID: 42}.String())
	assert.Equal(t, `ref "M15"`, Query{Ref: "M15"}.String())
}

func TestBetter(t *testing.T) {
	tags := osm.Tags{{Key: "type", Value: "route"}}
	short := relation(1, tags, stop(1, "stop"), stop(2, "stop"))
	long := relation(2, tags, stop(1, "stop"), stop(2, "stop"), stop(3, "stop"))
	twin := relation(3, tags, stop(1, "stop"), stop(2, "stop"))

	assert.True(t, better(long, short))
	assert.False(t, better(short, long))
	assert.True(t, better(short, twin))
}

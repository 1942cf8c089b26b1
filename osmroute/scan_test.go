package osmroute

import (
	"bytes"
	"context"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/theoremus-urban-solutions/line-sections/line"
)

// pbfBlock accumulates one PrimitiveBlock and its string table.
type pbfBlock struct {
	strings []string
	index   map[string]uint64
	groups  []byte
}

func newPBFBlock() *pbfBlock {
	return &pbfBlock{strings: []string{""}, index: map[string]uint64{"": 0}}
}

func (b *pbfBlock) str(s string) uint64 {
	if i, ok := b.index[s]; ok {
		return i
	}
	i := uint64(len(b.strings))
	b.strings = append(b.strings, s)
	b.index[s] = i
	return i
}

func appendPacked(buf []byte, num protowire.Number, vals []uint64) []byte {
	var inner []byte
	for _, v := range vals {
		inner = protowire.AppendVarint(inner, v)
	}
	buf = protowire.AppendTag(buf, num, protowire.BytesType)
	return protowire.AppendBytes(buf, inner)
}

func zigzagDeltas(vals []int64) []uint64 {
	out := make([]uint64, len(vals))
	var prev int64
	for i, v := range vals {
		out[i] = protowire.EncodeZigZag(v - prev)
		prev = v
	}
	return out
}

func appendMessage(buf []byte, num protowire.Number, msg []byte) []byte {
	buf = protowire.AppendTag(buf, num, protowire.BytesType)
	return protowire.AppendBytes(buf, msg)
}

// nodes adds a dense node group. Tags are flattened key, value pairs.
func (b *pbfBlock) nodes(ns ...*osm.Node) {
	var ids, lats, lons []int64
	var kv []uint64
	for _, n := range ns {
		ids = append(ids, int64(n.ID))
		lats = append(lats, int64(math.Round(n.Lat*1e7)))
		lons = append(lons, int64(math.Round(n.Lon*1e7)))
		for _, t := range n.Tags {
			kv = append(kv, b.str(t.Key), b.str(t.Value))
		}
		kv = append(kv, 0)
	}
	var dense []byte
	dense = appendPacked(dense, 1, zigzagDeltas(ids))
	dense = appendPacked(dense, 8, zigzagDeltas(lats))
	dense = appendPacked(dense, 9, zigzagDeltas(lons))
	dense = appendPacked(dense, 10, kv)

	b.groups = appendMessage(b.groups, 2, appendMessage(nil, 2, dense))
}

// relations adds a group holding every relation in rs.
func (b *pbfBlock) relations(rs ...*osm.Relation) {
	var group []byte
	for _, r := range rs {
		var keys, vals, roles, types []uint64
		var refs []int64
		for _, t := range r.Tags {
			keys = append(keys, b.str(t.Key))
			vals = append(vals, b.str(t.Value))
		}
		for _, m := range r.Members {
			roles = append(roles, b.str(m.Role))
			refs = append(refs, m.Ref)
			switch m.Type {
			case osm.TypeWay:
				types = append(types, 1)
			case osm.TypeRelation:
				types = append(types, 2)
			default:
				types = append(types, 0)
			}
		}
		var rel []byte
		rel = protowire.AppendTag(rel, 1, protowire.VarintType)
		rel = protowire.AppendVarint(rel, uint64(r.ID))
		rel = appendPacked(rel, 2, keys)
		rel = appendPacked(rel, 3, vals)
		rel = appendPacked(rel, 8, roles)
		rel = appendPacked(rel, 9, zigzagDeltas(refs))
		rel = appendPacked(rel, 10, types)
		group = appendMessage(group, 4, rel)
	}
	b.groups = appendMessage(b.groups, 2, group)
}

func (b *pbfBlock) bytes() []byte {
	var table []byte
	for _, s := range b.strings {
		table = protowire.AppendTag(table, 1, protowire.BytesType)
		table = protowire.AppendString(table, s)
	}
	out := appendMessage(nil, 1, table)
	out = append(out, b.groups...)
	out = protowire.AppendTag(out, 17, protowire.VarintType)
	out = protowire.AppendVarint(out, 100)
	return out
}

func writeFileBlock(t *testing.T, w *bytes.Buffer, kind string, data []byte) {
	t.Helper()
	var blob []byte
	blob = appendMessage(blob, 1, data)
	blob = protowire.AppendTag(blob, 2, protowire.VarintType)
	blob = protowire.AppendVarint(blob, uint64(len(data)))

	var header []byte
	header = protowire.AppendTag(header, 1, protowire.BytesType)
	header = protowire.AppendString(header, kind)
	header = protowire.AppendTag(header, 3, protowire.VarintType)
	header = protowire.AppendVarint(header, uint64(len(blob)))

	size := make([]byte, 4)
	binary.BigEndian.PutUint32(size, uint32(len(header)))
	w.Write(size)
	w.Write(header)
	w.Write(blob)
}

// extract builds an .osm.pbf with nodes in one block and relations in the next.
func extract(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer

	var header []byte
	for _, f := range []string{"OsmSchema-V0.6", "DenseNodes"} {
		header = protowire.AppendTag(header, 4, protowire.BytesType)
		header = protowire.AppendString(header, f)
	}
	writeFileBlock(t, &buf, "OSMHeader", header)

	nodes := newPBFBlock()
	nodes.nodes(
		node(1, 0, 0, osm.Tag{Key: "name", Value: "Alpha"}, osm.Tag{Key: "gtfs:stop_id", Value: "A"}),
		node(2, 0, 0.01, osm.Tag{Key: "name", Value: "Bravo"}),
		node(3, 0, 0.02, osm.Tag{Key: "name", Value: "Charlie"}),
		node(4, 0.001, 0.02),
		node(5, 0.002, 0.03, osm.Tag{Key: "amenity", Value: "bench"}),
	)
	writeFileBlock(t, &buf, "OSMData", nodes.bytes())

	route := osm.Tags{{Key: "type", Value: "route"}, {Key: "route", Value: "subway"}, {Key: "ref", Value: "2"}}
	rels := newPBFBlock()
	rels.relations(
		relation(100, append(osm.Tags{{Key: "name", Value: "Line 2 outer"}}, route...),
			stop(1, "stop"), osm.Member{Type: osm.TypeNode, Ref: 4, Role: "platform"},
			osm.Member{Type: osm.TypeWay, Ref: 900}, stop(2, "stop"), stop(3, "stop")),
		relation(101, route, stop(3, "stop"), stop(2, "stop")),
		relation(102, osm.Tags{{Key: "type", Value: "multipolygon"}, {Key: "ref", Value: "2"}},
			stop(1, "stop"), stop(2, "stop"), stop(3, "stop"), stop(5, "stop")),
		relation(103, osm.Tags{{Key: "type", Value: "route"}, {Key: "ref", Value: "9"}},
			stop(1, "stop"), stop(77, "stop")),
	)
	writeFileBlock(t, &buf, "OSMData", rels.bytes())
	return buf.Bytes()
}

func TestImport_ByRelation(t *testing.T) {
	plan, err := Import(context.Background(), bytes.NewReader(extract(t)), Query{RelationID: 101})
	require.NoError(t, err)
	assert.Equal(t, "2", plan.Name)
	assert.Equal(t, []string{"osm:3", "osm:2"}, stopCodes(plan.Stops))
	require.Len(t, plan.Distances, 1)
	assert.InDelta(t, 1112, plan.Distances[0], 2)
}

func TestImport_ByRefPrefersMostStops(t *testing.T) {
	plan, err := Import(context.Background(), bytes.NewReader(extract(t)), Query{Ref: "2"})
	require.NoError(t, err)
	assert.Equal(t, "Line 2 outer", plan.Name)
	assert.Equal(t, "2", plan.RouteRef)
	assert.Equal(t, []string{"A", "osm:2", "osm:3"}, stopCodes(plan.Stops))
	assert.Equal(t, "Alpha", plan.Stops[0].Name)
	assert.InDelta(t, 0.01, plan.Stops[1].Lon, 1e-7)
	require.NoError(t, plan.Validate())
}

func TestImport_Errors(t *testing.T) {
	data := extract(t)

	_, err := Import(context.Background(), bytes.NewReader(data), Query{RelationID: 999})
	assert.ErrorIs(t, err, ErrRouteNotFound)

	_, err = Import(context.Background(), bytes.NewReader(data), Query{RelationID: 102})
	assert.ErrorIs(t, err, ErrRouteNotFound, "not a route relation")

	_, err = Import(context.Background(), bytes.NewReader(data), Query{Ref: "9"})
	assert.ErrorIs(t, err, ErrMissingNode)
}

func TestImportFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "extract.osm.pbf")
	require.NoError(t, os.WriteFile(p, extract(t), 0o644))

	plan, err := ImportFile(context.Background(), p, Query{RelationID: 100})
	require.NoError(t, err)
	assert.Len(t, plan.Stops, 3)

	_, err = ImportFile(context.Background(), filepath.Join(t.TempDir(), "missing.osm.pbf"), Query{RelationID: 100})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func stopCodes(stops []line.PlanStop) []string {
	out := make([]string, 0, len(stops))
	for _, s := range stops {
		out = append(out, s.Code)
	}
	return out
}

package osmroute

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"golang.org/x/exp/slog"

	"github.com/theoremus-urban-solutions/line-sections/line"
)

// ImportFile reads the route selected by q from the .osm.pbf at path.
func ImportFile(ctx context.Context, path string, q Query) (line.Plan, error) {
	file, err := os.Open(path)
	if err != nil {
		return line.Plan{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()
	return Import(ctx, file, q)
}

// Import reads the route selected by q from an .osm.pbf stream. The stream is
// rewound between the relation and node passes.
func Import(ctx context.Context, r io.ReadSeeker, q Query) (line.Plan, error) {
	rel, err := findRelation(ctx, r, q)
	if err != nil {
		return line.Plan{}, err
	}
	slog.Debug("route relation found", "relation", rel.ID, "query", q.String())

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return line.Plan{}, fmt.Errorf("failed to rewind extract: %w", err)
	}
	nodes, err := loadNodes(ctx, r, stopRefs(rel))
	if err != nil {
		return line.Plan{}, err
	}
	return BuildPlan(rel, nodes)
}

func findRelation(ctx context.Context, r io.Reader, q Query) (*osm.Relation, error) {
	scanner := osmpbf.New(ctx, r, runtime.GOMAXPROCS(-1))
	defer scanner.Close()
	scanner.SkipNodes = true
	scanner.SkipWays = true

	var best *osm.Relation
	for scanner.Scan() {
		rel, ok := scanner.Object().(*osm.Relation)
		if !ok || !q.matches(rel) {
			continue
		}
		if best == nil || better(rel, best) {
			best = rel
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan relations: %w", err)
	}
	if best == nil {
		return nil, fmt.Errorf("%w: %s", ErrRouteNotFound, q)
	}
	return best, nil
}

func loadNodes(ctx context.Context, r io.Reader, ids []osm.NodeID) (map[osm.NodeID]*osm.Node, error) {
	want := make(map[osm.NodeID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}

	scanner := osmpbf.New(ctx, r, runtime.GOMAXPROCS(-1))
	defer scanner.Close()
	scanner.SkipWays = true
	scanner.SkipRelations = true

	nodes := make(map[osm.NodeID]*osm.Node, len(ids))
	for scanner.Scan() {
		n, ok := scanner.Object().(*osm.Node)
		if !ok || !want[n.ID] {
			continue
		}
		nodes[n.ID] = n
		if len(nodes) == len(want) {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan nodes: %w", err)
	}
	return nodes, nil
}

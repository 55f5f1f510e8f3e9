package bikestress

import (
	"context"

	"github.com/LdDl/ch"
	"github.com/paulmach/osm"
	"github.com/pkg/errors"
)

type vertexPair struct {
	from osm.NodeID
	to   osm.NodeID
}

// contractionEngine answers repeated queries for a single weight selector over contraction hierarchies.
// Queries only read the prepared hierarchies, so it's safe to use from many goroutines
type contractionEngine struct {
	weight Weight
	graph  ch.Graph
	// The edge that was fed into hierarchies for every connected pair
	edges map[vertexPair]*Edge
}

func newContractionEngine(graph *Graph, w Weight) (*contractionEngine, error) {
	engine := &contractionEngine{
		weight: w,
		graph:  ch.Graph{},
		edges:  make(map[vertexPair]*Edge),
	}
	for _, node := range graph.Nodes() {
		err := engine.graph.CreateVertex(int64(node.ID))
		if err != nil {
			return nil, errors.Wrapf(err, "Can't create vertex %d", node.ID)
		}
	}
	for _, node := range graph.Nodes() {
		edges, costs, _ := usableEdges(graph, node.ID, w)
		for i, edge := range edges {
			err := engine.graph.AddEdge(int64(edge.Source), int64(edge.Target), costs[i])
			if err != nil {
				return nil, errors.Wrapf(err, "Can't add edge %d -> %d", edge.Source, edge.Target)
			}
			engine.edges[vertexPair{edge.Source, edge.Target}] = edge
		}
	}
	engine.graph.PrepareContractionHierarchies()
	return engine, nil
}

func (engine *contractionEngine) shortestPath(ctx context.Context, source, target osm.NodeID) (*pathResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if source == target {
		return &pathResult{nodes: []osm.NodeID{source}}, nil
	}
	cost, vertices := engine.graph.ShortestPath(int64(source), int64(target))
	if cost < 0 || len(vertices) < 2 {
		return nil, ErrNoRouteFound
	}
	result := &pathResult{
		nodes: make([]osm.NodeID, len(vertices)),
		edges: make([]*Edge, 0, len(vertices)-1),
		cost:  cost,
	}
	for i, vertex := range vertices {
		result.nodes[i] = osm.NodeID(vertex)
		if i == 0 {
			continue
		}
		edge, ok := engine.edges[vertexPair{osm.NodeID(vertices[i-1]), osm.NodeID(vertex)}]
		if !ok {
			return nil, errors.Errorf("contracted path uses unknown edge %d -> %d", vertices[i-1], vertex)
		}
		result.edges = append(result.edges, edge)
	}
	return result, nil
}

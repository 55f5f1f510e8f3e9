package bikestress

import (
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
)

// RouteStats summarizes composite score along a route.
// Statistics run over edges with known composite only; when there are none they are unknown
type RouteStats struct {
	Mean   Value
	Median Value
	Min    Value
	Max    Value
	// Total raw length in meters
	Length float64
	// Number of route edges without known composite score
	Unscored int
}

// Snap describes how a query coordinate has been attached to the graph
type Snap struct {
	Query  orb.Point
	NodeID osm.NodeID
	// Distance between query and node in meters (graph units for planar graphs)
	Distance float64
}

// RouteResult is immutable outcome of a single route search
type RouteResult struct {
	Weight      Weight
	CRS         string
	Origin      Snap
	Destination Snap
	Nodes       []osm.NodeID
	Geometry    orb.LineString
	// Sum of edge costs for the selected weight
	Cost  float64
	Stats RouteStats

	edges []*Edge
}

// Edges returns route edges in path order
func (route *RouteResult) Edges() []*Edge {
	return route.edges
}

func newRouteResult(graph *Graph, path *pathResult, w Weight, origin, destination Snap) *RouteResult {
	geometry := make(orb.LineString, 0, len(path.nodes))
	for _, id := range path.nodes {
		if node, ok := graph.Node(id); ok {
			geometry = append(geometry, node.Geom)
		}
	}
	return &RouteResult{
		Weight:      w,
		CRS:         graph.CRS,
		Origin:      origin,
		Destination: destination,
		Nodes:       path.nodes,
		Geometry:    geometry,
		Cost:        path.cost,
		Stats:       computeRouteStats(path.edges),
		edges:       path.edges,
	}
}

func computeRouteStats(edges []*Edge) RouteStats {
	stats := RouteStats{}
	scores := make([]float64, 0, len(edges))
	for _, edge := range edges {
		stats.Length += edge.Length
		if v, ok := edge.CompositeScore.Get(); ok {
			scores = append(scores, v)
		} else {
			stats.Unscored++
		}
	}
	if len(scores) == 0 {
		return stats
	}
	sum := 0.0
	for _, v := range scores {
		sum += v
	}
	sort.Float64s(scores)
	stats.Mean = Known(sum / float64(len(scores)))
	// Lower-middle element on even counts
	stats.Median = Known(scores[(len(scores)-1)/2])
	stats.Min = Known(scores[0])
	stats.Max = Known(scores[len(scores)-1])
	return stats
}

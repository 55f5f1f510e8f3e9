package bikestress

import (
	"math"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
)

const (
	CRS_WGS84         = "epsg:4326"
	CRS_WEB_MERCATOR  = "epsg:3857"
	DEFAULT_GRAPH_CRS = CRS_WGS84
)

// Graph is directed multigraph of street segments.
// Nodes and edges keep insertion order, so every traversal over the graph is deterministic
type Graph struct {
	CRS string

	nodes     map[osm.NodeID]*Node
	nodeOrder []osm.NodeID
	edges     []*Edge
	outgoing  map[osm.NodeID][]*Edge
}

// NewGraph creates empty graph. Empty CRS means DEFAULT_GRAPH_CRS
func NewGraph(crs string) *Graph {
	if crs == "" {
		crs = DEFAULT_GRAPH_CRS
	}
	return &Graph{
		CRS:      crs,
		nodes:    make(map[osm.NodeID]*Node),
		outgoing: make(map[osm.NodeID][]*Edge),
	}
}

// IsGeographic reports whether node coordinates are lon/lat degrees
func (graph *Graph) IsGeographic() bool {
	return isCRS(graph.CRS, CRS_WGS84)
}

func isCRS(crs, expected string) bool {
	return strings.EqualFold(strings.TrimSpace(crs), expected)
}

// AddNode adds node or moves existing one
func (graph *Graph) AddNode(id osm.NodeID, pt orb.Point) *Node {
	if node, ok := graph.nodes[id]; ok {
		node.Geom = pt
		return node
	}
	node := &Node{ID: id, Geom: pt}
	graph.nodes[id] = node
	graph.nodeOrder = append(graph.nodeOrder, id)
	return node
}

// AddEdge adds directed edge between existing nodes. Parallel key is assigned in insertion order.
// Dangling endpoints and unusable lengths are *MalformedInputError
func (graph *Graph) AddEdge(source, target osm.NodeID, length float64, attrs Attributes) (*Edge, error) {
	if _, ok := graph.nodes[source]; !ok {
		return nil, malformed("edge %d -> %d references unknown source node", source, target)
	}
	if _, ok := graph.nodes[target]; !ok {
		return nil, malformed("edge %d -> %d references unknown target node", source, target)
	}
	if math.IsNaN(length) || math.IsInf(length, 0) || length < 0 {
		return nil, malformed("edge %d -> %d has invalid length %v", source, target, length)
	}
	if attrs == nil {
		attrs = Attributes{}
	}
	key := len(graph.Parallel(source, target))
	edge := &Edge{
		Source:     source,
		Target:     target,
		Key:        key,
		Length:     length,
		Attributes: attrs,
	}
	graph.edges = append(graph.edges, edge)
	graph.outgoing[source] = append(graph.outgoing[source], edge)
	return edge, nil
}

// Node returns node by its identifier
func (graph *Graph) Node(id osm.NodeID) (*Node, bool) {
	node, ok := graph.nodes[id]
	return node, ok
}

// Nodes returns nodes in insertion order
func (graph *Graph) Nodes() []*Node {
	nodes := make([]*Node, len(graph.nodeOrder))
	for i, id := range graph.nodeOrder {
		nodes[i] = graph.nodes[id]
	}
	return nodes
}

// Edges returns edges in insertion order
func (graph *Graph) Edges() []*Edge {
	return graph.edges
}

// Outgoing returns edges leaving given node in insertion order
func (graph *Graph) Outgoing(id osm.NodeID) []*Edge {
	return graph.outgoing[id]
}

// Parallel returns edges source -> target in insertion order
func (graph *Graph) Parallel(source, target osm.NodeID) []*Edge {
	var parallel []*Edge
	for _, edge := range graph.outgoing[source] {
		if edge.Target == target {
			parallel = append(parallel, edge)
		}
	}
	return parallel
}

func (graph *Graph) NodesNum() int {
	return len(graph.nodeOrder)
}

func (graph *Graph) EdgesNum() int {
	return len(graph.edges)
}

// HasAttribute reports whether any edge carries given raw attribute column
func (graph *Graph) HasAttribute(key string) bool {
	for _, edge := range graph.edges {
		if edge.Attributes.Has(key) {
			return true
		}
	}
	return false
}

// edgeLength returns length of segment between two points in meters, respecting graph CRS
func (graph *Graph) edgeLength(p, q orb.Point) float64 {
	if graph.IsGeographic() {
		return greatCircleDistance(p, q) * 1000.0
	}
	return findDistance(p, q)
}

package bikestress

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	nodeA = osm.NodeID(1)
	nodeB = osm.NodeID(2)
	nodeC = osm.NodeID(3)
	nodeD = osm.NodeID(4)
	nodeE = osm.NodeID(5)
	nodeF = osm.NodeID(6)
	nodeG = osm.NodeID(7)
)

func residentialAttrs() Attributes {
	return Attributes{
		KEY_HIGHWAY:  TextValue("residential"),
		KEY_MAXSPEED: TextValue("25 mph"),
		KEY_LANES:    TextValue("2"),
	}
}

func motorwayAttrs() Attributes {
	return Attributes{
		KEY_HIGHWAY:  TextValue("motorway"),
		KEY_MAXSPEED: TextValue("65 mph"),
		KEY_LANES:    TextValue("4"),
	}
}

func cyclewayAttrs() Attributes {
	return Attributes{
		KEY_HIGHWAY:  TextValue("cycleway"),
		KEY_MAXSPEED: NumberValue(20),
		KEY_LANES:    NumberValue(1),
	}
}

// divergenceGraph is planar graph where the short way crosses a motorway:
//
//	A -100-> B -100-> C -100-> D   (residential, motorway, residential)
//	A -500-> E -500-> D           (cycleway)
//
// plus isolated island F -> G.
func divergenceGraph(t *testing.T) *Graph {
	t.Helper()
	graph := NewGraph(CRS_WEB_MERCATOR)
	graph.AddNode(nodeA, orb.Point{0, 0})
	graph.AddNode(nodeB, orb.Point{100, 0})
	graph.AddNode(nodeC, orb.Point{200, 0})
	graph.AddNode(nodeD, orb.Point{300, 0})
	graph.AddNode(nodeE, orb.Point{150, 400})
	graph.AddNode(nodeF, orb.Point{5000, 5000})
	graph.AddNode(nodeG, orb.Point{5100, 5000})
	mustAddEdge(t, graph, nodeA, nodeB, 100, residentialAttrs())
	mustAddEdge(t, graph, nodeB, nodeC, 100, motorwayAttrs())
	mustAddEdge(t, graph, nodeC, nodeD, 100, residentialAttrs())
	mustAddEdge(t, graph, nodeA, nodeE, 500, cyclewayAttrs())
	mustAddEdge(t, graph, nodeE, nodeD, 500, cyclewayAttrs())
	mustAddEdge(t, graph, nodeF, nodeG, 100, residentialAttrs())
	require.NoError(t, NewPipeline(WithPipelineLogger(zap.NewNop())).Run(graph))
	return graph
}

func mustAddEdge(t *testing.T, graph *Graph, source, target osm.NodeID, length float64, attrs Attributes) *Edge {
	t.Helper()
	edge, err := graph.AddEdge(source, target, length, attrs)
	require.NoError(t, err)
	return edge
}

func newTestRouter(t *testing.T, graph *Graph, options ...func(*Router)) *Router {
	t.Helper()
	options = append([]func(*Router){WithRouterLogger(zap.NewNop())}, options...)
	router, err := NewRouter(graph, options...)
	require.NoError(t, err)
	return router
}
